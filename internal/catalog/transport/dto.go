package transport

import "github.com/google/uuid"

// Categories

type CreateCategoryRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=100"`
	SubCategories []string `json:"subCategories" validate:"required,min=1,dive,max=100"`
}

type UpdateCategoryRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	SubCategories []string `json:"subCategories,omitempty" validate:"omitempty,min=1,dive,max=100"`
}

type ListCategoriesRequest struct {
	Search    string `form:"search" validate:"max=100"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=name createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type CategoryResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	SubCategories []string  `json:"subCategories"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

type CategoryListResponse struct {
	Items      []CategoryResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

// Products

type CreateProductRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=200"`
	PriceCents  int64     `json:"priceCents" validate:"min=0"`
	CategoryID  uuid.UUID `json:"categoryId" validate:"required"`
	SubCategory string    `json:"subCategory" validate:"required,min=1,max=100"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	PriceCents  *int64     `json:"priceCents,omitempty" validate:"omitempty,min=0"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty" validate:"omitempty"`
	SubCategory *string    `json:"subCategory,omitempty" validate:"omitempty,min=1,max=100"`
}

type ListProductsRequest struct {
	Search      string `form:"search" validate:"max=100"`
	CategoryID  string `form:"categoryId" validate:"omitempty"`
	SubCategory string `form:"subCategory" validate:"omitempty,max=100"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy      string `form:"sortBy" validate:"omitempty,oneof=name priceCents subCategory createdAt updatedAt"`
	SortOrder   string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Name        string    `json:"name"`
	PriceCents  int64     `json:"priceCents"`
	SubCategory string    `json:"subCategory"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Extras

type CreateExtraRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	PriceCents int64  `json:"priceCents" validate:"min=0"`
	IsActive   *bool  `json:"isActive,omitempty"`
}

type UpdateExtraRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	PriceCents *int64  `json:"priceCents,omitempty" validate:"omitempty,min=0"`
	IsActive   *bool   `json:"isActive,omitempty"`
}

type ListExtrasRequest struct {
	Search     string `form:"search" validate:"max=100"`
	ActiveOnly bool   `form:"activeOnly"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy     string `form:"sortBy" validate:"omitempty,oneof=name priceCents createdAt updatedAt"`
	SortOrder  string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type ExtraResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
}

type ExtraListResponse struct {
	Items      []ExtraResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// Product images

type PresignProductImageRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=255"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type PresignedUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresAt int64  `json:"expiresAt"`
}

type CreateProductImageRequest struct {
	FileKey     string `json:"fileKey" validate:"required,min=1"`
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=255"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type ProductImageResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	FileKey     string    `json:"fileKey"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   string    `json:"createdAt"`
}

type ProductImageListResponse struct {
	Items []ProductImageResponse `json:"items"`
}

type PresignedDownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   int64  `json:"expiresAt"`
}
