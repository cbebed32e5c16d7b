package service

import (
	"context"

	"github.com/google/uuid"

	"pos_admin_backend/internal/adapters/storage"
	"pos_admin_backend/internal/catalog/repository"
	"pos_admin_backend/internal/catalog/transport"
	"pos_admin_backend/platform/apperr"
)

// ImageService handles product image assets stored in MinIO. It is split
// from Service so the module can run without storage configured.
type ImageService struct {
	repo    repository.Repository
	storage storage.StorageService
	bucket  string
}

// NewImageService creates a product image service.
func NewImageService(repo repository.Repository, storageSvc storage.StorageService, bucket string) *ImageService {
	return &ImageService{repo: repo, storage: storageSvc, bucket: bucket}
}

// PresignUpload returns a presigned PUT URL for a product image upload.
func (s *ImageService) PresignUpload(ctx context.Context, productID uuid.UUID, req transport.PresignProductImageRequest) (transport.PresignedUploadResponse, error) {
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return transport.PresignedUploadResponse{}, err
	}
	if !storage.IsImageContentType(req.ContentType) {
		return transport.PresignedUploadResponse{}, apperr.Validation("product images must have an image content type")
	}

	presigned, err := s.storage.GenerateUploadURL(ctx, s.bucket, productID.String(), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.PresignedUploadResponse{}, apperr.Wrap(apperr.KindValidation, "could not presign upload", err)
	}

	return transport.PresignedUploadResponse{
		UploadURL: presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt.Unix(),
	}, nil
}

// Register records a completed upload as a product image.
func (s *ImageService) Register(ctx context.Context, productID uuid.UUID, req transport.CreateProductImageRequest) (transport.ProductImageResponse, error) {
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return transport.ProductImageResponse{}, err
	}

	image, err := s.repo.CreateProductImage(ctx, repository.CreateProductImageParams{
		ProductID:   productID,
		FileKey:     req.FileKey,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		return transport.ProductImageResponse{}, err
	}

	return toProductImageResponse(image), nil
}

// List returns the images attached to a product.
func (s *ImageService) List(ctx context.Context, productID uuid.UUID) (transport.ProductImageListResponse, error) {
	items, err := s.repo.ListProductImages(ctx, productID)
	if err != nil {
		return transport.ProductImageListResponse{}, err
	}

	responses := make([]transport.ProductImageResponse, len(items))
	for i, item := range items {
		responses[i] = toProductImageResponse(item)
	}
	return transport.ProductImageListResponse{Items: responses}, nil
}

// PresignDownload returns a presigned GET URL for a product image.
func (s *ImageService) PresignDownload(ctx context.Context, productID, imageID uuid.UUID) (transport.PresignedDownloadResponse, error) {
	image, err := s.repo.GetProductImageByID(ctx, imageID)
	if err != nil {
		return transport.PresignedDownloadResponse{}, err
	}
	if image.ProductID != productID {
		return transport.PresignedDownloadResponse{}, apperr.NotFound("product image not found")
	}

	presigned, err := s.storage.GenerateDownloadURL(ctx, s.bucket, image.FileKey)
	if err != nil {
		return transport.PresignedDownloadResponse{}, apperr.Wrap(apperr.KindInternal, "could not presign download", err)
	}

	return transport.PresignedDownloadResponse{
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt.Unix(),
	}, nil
}

// Delete removes a product image from storage and the database.
func (s *ImageService) Delete(ctx context.Context, productID, imageID uuid.UUID) error {
	image, err := s.repo.GetProductImageByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.ProductID != productID {
		return apperr.NotFound("product image not found")
	}

	if err := s.storage.DeleteObject(ctx, s.bucket, image.FileKey); err != nil {
		return err
	}
	return s.repo.DeleteProductImage(ctx, imageID)
}

func toProductImageResponse(image repository.ProductImage) transport.ProductImageResponse {
	return transport.ProductImageResponse{
		ID:          image.ID,
		ProductID:   image.ProductID,
		FileKey:     image.FileKey,
		FileName:    image.FileName,
		ContentType: image.ContentType,
		SizeBytes:   image.SizeBytes,
		CreatedAt:   image.CreatedAt,
	}
}
