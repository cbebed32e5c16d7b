package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pos_admin_backend/platform/apperr"
)

const productImageNotFoundMessage = "product image not found"

// CreateProductImage records an uploaded product image.
func (r *Repo) CreateProductImage(ctx context.Context, params CreateProductImageParams) (ProductImage, error) {
	query := `
		INSERT INTO catalog_product_images (product_id, file_key, file_name, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, product_id, file_key, file_name, content_type, size_bytes, created_at`

	var image ProductImage
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.ProductID, params.FileKey, params.FileName, params.ContentType, params.SizeBytes,
	).Scan(
		&image.ID, &image.ProductID, &image.FileKey, &image.FileName, &image.ContentType, &image.SizeBytes,
		&createdAt,
	); err != nil {
		return ProductImage{}, fmt.Errorf("create product image: %w", err)
	}

	image.CreatedAt = createdAt.Format(time.RFC3339)
	return image, nil
}

// GetProductImageByID retrieves a product image by ID.
func (r *Repo) GetProductImageByID(ctx context.Context, id uuid.UUID) (ProductImage, error) {
	query := `
		SELECT id, product_id, file_key, file_name, content_type, size_bytes, created_at
		FROM catalog_product_images
		WHERE id = $1`

	var image ProductImage
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&image.ID, &image.ProductID, &image.FileKey, &image.FileName, &image.ContentType, &image.SizeBytes,
		&createdAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductImage{}, apperr.NotFound(productImageNotFoundMessage)
		}
		return ProductImage{}, fmt.Errorf("get product image by id: %w", err)
	}

	image.CreatedAt = createdAt.Format(time.RFC3339)
	return image, nil
}

// ListProductImages lists images attached to a product.
func (r *Repo) ListProductImages(ctx context.Context, productID uuid.UUID) ([]ProductImage, error) {
	query := `
		SELECT id, product_id, file_key, file_name, content_type, size_bytes, created_at
		FROM catalog_product_images
		WHERE product_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()

	items := make([]ProductImage, 0)
	for rows.Next() {
		var image ProductImage
		var createdAt time.Time
		if err := rows.Scan(
			&image.ID, &image.ProductID, &image.FileKey, &image.FileName, &image.ContentType, &image.SizeBytes,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		image.CreatedAt = createdAt.Format(time.RFC3339)
		items = append(items, image)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate product images: %w", rows.Err())
	}

	return items, nil
}

// DeleteProductImage deletes a product image record.
func (r *Repo) DeleteProductImage(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM catalog_product_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productImageNotFoundMessage)
	}
	return nil
}
