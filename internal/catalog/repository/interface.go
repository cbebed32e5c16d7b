package repository

import (
	"context"

	"github.com/google/uuid"
)

// Category groups products and carries the ordered list of subcategory
// names products can be placed under.
type Category struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	SubCategories []string  `db:"sub_categories"`
	CreatedAt     string    `db:"created_at"`
	UpdatedAt     string    `db:"updated_at"`
}

// Product is a sellable item placed under a category/subcategory.
type Product struct {
	ID          uuid.UUID `db:"id"`
	CategoryID  uuid.UUID `db:"category_id"`
	Name        string    `db:"name"`
	PriceCents  int64     `db:"price_cents"`
	SubCategory string    `db:"sub_category"`
	CreatedAt   string    `db:"created_at"`
	UpdatedAt   string    `db:"updated_at"`
}

// Extra is a priced add-on selectable on any product. Inactive extras
// stay on past sale lines but are not offered on new carts.
type Extra struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	PriceCents int64     `db:"price_cents"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  string    `db:"created_at"`
	UpdatedAt  string    `db:"updated_at"`
}

// ProductImage is an uploaded image asset attached to a product.
type ProductImage struct {
	ID          uuid.UUID `db:"id"`
	ProductID   uuid.UUID `db:"product_id"`
	FileKey     string    `db:"file_key"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	CreatedAt   string    `db:"created_at"`
}

// CreateCategoryParams contains data for creating a category.
type CreateCategoryParams struct {
	Name          string
	SubCategories []string
}

// UpdateCategoryParams contains data for updating a category.
type UpdateCategoryParams struct {
	ID            uuid.UUID
	Name          *string
	SubCategories []string
}

// ListCategoriesParams defines filters for listing categories.
type ListCategoriesParams struct {
	Search    string
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

// CreateProductParams contains data for creating a product.
type CreateProductParams struct {
	CategoryID  uuid.UUID
	Name        string
	PriceCents  int64
	SubCategory string
}

// UpdateProductParams contains data for updating a product.
type UpdateProductParams struct {
	ID          uuid.UUID
	CategoryID  *uuid.UUID
	Name        *string
	PriceCents  *int64
	SubCategory *string
}

// ListProductsParams defines filters for listing products.
type ListProductsParams struct {
	Search      string
	CategoryID  *uuid.UUID
	SubCategory string
	Offset      int
	Limit       int
	SortBy      string
	SortOrder   string
}

// CreateExtraParams contains data for creating an extra.
type CreateExtraParams struct {
	Name       string
	PriceCents int64
	IsActive   bool
}

// UpdateExtraParams contains data for updating an extra.
type UpdateExtraParams struct {
	ID         uuid.UUID
	Name       *string
	PriceCents *int64
	IsActive   *bool
}

// ListExtrasParams defines filters for listing extras.
type ListExtrasParams struct {
	Search     string
	ActiveOnly bool
	Offset     int
	Limit      int
	SortBy     string
	SortOrder  string
}

// CreateProductImageParams contains data for recording an uploaded image.
type CreateProductImageParams struct {
	ProductID   uuid.UUID
	FileKey     string
	FileName    string
	ContentType string
	SizeBytes   int64
}

// Repository defines catalog storage operations.
type Repository interface {
	CreateCategory(ctx context.Context, params CreateCategoryParams) (Category, error)
	UpdateCategory(ctx context.Context, params UpdateCategoryParams) (Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (Category, error)
	ListCategories(ctx context.Context, params ListCategoriesParams) ([]Category, int, error)
	ListAllCategories(ctx context.Context) ([]Category, error)
	HasProductsInCategory(ctx context.Context, id uuid.UUID) (bool, error)
	ListUsedSubCategories(ctx context.Context, categoryID uuid.UUID) ([]string, error)

	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)
	ListAllProducts(ctx context.Context) ([]Product, error)

	CreateExtra(ctx context.Context, params CreateExtraParams) (Extra, error)
	UpdateExtra(ctx context.Context, params UpdateExtraParams) (Extra, error)
	DeleteExtra(ctx context.Context, id uuid.UUID) error
	GetExtraByID(ctx context.Context, id uuid.UUID) (Extra, error)
	ListExtras(ctx context.Context, params ListExtrasParams) ([]Extra, int, error)
	ListAllExtras(ctx context.Context, activeOnly bool) ([]Extra, error)

	CreateProductImage(ctx context.Context, params CreateProductImageParams) (ProductImage, error)
	GetProductImageByID(ctx context.Context, id uuid.UUID) (ProductImage, error)
	ListProductImages(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)
	DeleteProductImage(ctx context.Context, id uuid.UUID) error
}
