package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pos_admin_backend/platform/apperr"
)

const (
	categoryNotFoundMessage = "category not found"
	productNotFoundMessage  = "product not found"
	extraNotFoundMessage    = "extra not found"
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateCategory creates a category.
func (r *Repo) CreateCategory(ctx context.Context, params CreateCategoryParams) (Category, error) {
	query := `
		INSERT INTO catalog_categories (name, sub_categories)
		VALUES ($1, $2)
		RETURNING id, name, sub_categories, created_at, updated_at`

	var category Category
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, params.Name, params.SubCategories).Scan(
		&category.ID, &category.Name, &category.SubCategories, &createdAt, &updatedAt,
	); err != nil {
		return Category{}, fmt.Errorf("create category: %w", err)
	}

	category.CreatedAt = createdAt.Format(time.RFC3339)
	category.UpdatedAt = updatedAt.Format(time.RFC3339)
	return category, nil
}

// UpdateCategory updates a category. A nil SubCategories slice keeps the
// stored list; a non-nil slice replaces it wholesale.
func (r *Repo) UpdateCategory(ctx context.Context, params UpdateCategoryParams) (Category, error) {
	query := `
		UPDATE catalog_categories
		SET name = COALESCE($2, name),
			sub_categories = COALESCE($3, sub_categories),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, sub_categories, created_at, updated_at`

	var category Category
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, params.ID, params.Name, params.SubCategories).Scan(
		&category.ID, &category.Name, &category.SubCategories, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFound(categoryNotFoundMessage)
		}
		return Category{}, fmt.Errorf("update category: %w", err)
	}

	category.CreatedAt = createdAt.Format(time.RFC3339)
	category.UpdatedAt = updatedAt.Format(time.RFC3339)
	return category, nil
}

// DeleteCategory deletes a category.
func (r *Repo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM catalog_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(categoryNotFoundMessage)
	}
	return nil
}

// GetCategoryByID retrieves a category by ID.
func (r *Repo) GetCategoryByID(ctx context.Context, id uuid.UUID) (Category, error) {
	query := `
		SELECT id, name, sub_categories, created_at, updated_at
		FROM catalog_categories
		WHERE id = $1`

	var category Category
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.SubCategories, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFound(categoryNotFoundMessage)
		}
		return Category{}, fmt.Errorf("get category by id: %w", err)
	}

	category.CreatedAt = createdAt.Format(time.RFC3339)
	category.UpdatedAt = updatedAt.Format(time.RFC3339)
	return category, nil
}

// ListCategories lists categories with filters and pagination.
func (r *Repo) ListCategories(ctx context.Context, params ListCategoriesParams) ([]Category, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM catalog_categories WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	sortColumn := "name"
	switch params.SortBy {
	case "createdAt":
		sortColumn = "created_at"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "ASC"
	if params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, name, sub_categories, created_at, updated_at
		FROM catalog_categories
		WHERE %s
		ORDER BY %s %s, name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := make([]Category, 0)
	for rows.Next() {
		var category Category
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&category.ID, &category.Name, &category.SubCategories, &createdAt, &updatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		category.CreatedAt = createdAt.Format(time.RFC3339)
		category.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, category)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate categories: %w", rows.Err())
	}

	return items, total, nil
}

// ListAllCategories retrieves every category, for cart snapshots.
func (r *Repo) ListAllCategories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, sub_categories, created_at, updated_at
		FROM catalog_categories
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all categories: %w", err)
	}
	defer rows.Close()

	items := make([]Category, 0)
	for rows.Next() {
		var category Category
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&category.ID, &category.Name, &category.SubCategories, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		category.CreatedAt = createdAt.Format(time.RFC3339)
		category.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, category)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate categories: %w", rows.Err())
	}

	return items, nil
}

// HasProductsInCategory checks if any products reference a category.
func (r *Repo) HasProductsInCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM catalog_products WHERE category_id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check category usage: %w", err)
	}
	return exists, nil
}

// ListUsedSubCategories returns the distinct subcategory names products
// of a category currently sit under.
func (r *Repo) ListUsedSubCategories(ctx context.Context, categoryID uuid.UUID) ([]string, error) {
	query := `SELECT DISTINCT sub_category FROM catalog_products WHERE category_id = $1`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list used subcategories: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		names = append(names, name)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate subcategories: %w", rows.Err())
	}

	return names, nil
}

// CreateProduct creates a product.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	query := `
		INSERT INTO catalog_products (category_id, name, price_cents, sub_category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, category_id, name, price_cents, sub_category, created_at, updated_at`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.CategoryID, params.Name, params.PriceCents, params.SubCategory,
	).Scan(
		&product.ID, &product.CategoryID, &product.Name, &product.PriceCents, &product.SubCategory,
		&createdAt, &updatedAt,
	); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// UpdateProduct updates a product.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	query := `
		UPDATE catalog_products
		SET category_id = COALESCE($2, category_id),
			name = COALESCE($3, name),
			price_cents = COALESCE($4, price_cents),
			sub_category = COALESCE($5, sub_category),
			updated_at = now()
		WHERE id = $1
		RETURNING id, category_id, name, price_cents, sub_category, created_at, updated_at`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.ID, params.CategoryID, params.Name, params.PriceCents, params.SubCategory,
	).Scan(
		&product.ID, &product.CategoryID, &product.Name, &product.PriceCents, &product.SubCategory,
		&createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// DeleteProduct deletes a product.
func (r *Repo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM catalog_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

// GetProductByID retrieves a product by ID.
func (r *Repo) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `
		SELECT id, category_id, name, price_cents, sub_category, created_at, updated_at
		FROM catalog_products
		WHERE id = $1`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.CategoryID, &product.Name, &product.PriceCents, &product.SubCategory,
		&createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// ListProducts lists products with filters and pagination.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	if params.CategoryID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("category_id = $%d", argIdx))
		args = append(args, *params.CategoryID)
		argIdx++
	}

	if params.SubCategory != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("sub_category = $%d", argIdx))
		args = append(args, params.SubCategory)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM catalog_products WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	sortColumn := "name"
	switch params.SortBy {
	case "priceCents":
		sortColumn = "price_cents"
	case "subCategory":
		sortColumn = "sub_category"
	case "createdAt":
		sortColumn = "created_at"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "ASC"
	if params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, category_id, name, price_cents, sub_category, created_at, updated_at
		FROM catalog_products
		WHERE %s
		ORDER BY %s %s, name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var product Product
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&product.ID, &product.CategoryID, &product.Name, &product.PriceCents, &product.SubCategory,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		product.CreatedAt = createdAt.Format(time.RFC3339)
		product.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", rows.Err())
	}

	return items, total, nil
}

// ListAllProducts retrieves every product, for cart snapshots.
func (r *Repo) ListAllProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, category_id, name, price_cents, sub_category, created_at, updated_at
		FROM catalog_products
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var product Product
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&product.ID, &product.CategoryID, &product.Name, &product.PriceCents, &product.SubCategory,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		product.CreatedAt = createdAt.Format(time.RFC3339)
		product.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate products: %w", rows.Err())
	}

	return items, nil
}

// CreateExtra creates an extra.
func (r *Repo) CreateExtra(ctx context.Context, params CreateExtraParams) (Extra, error) {
	query := `
		INSERT INTO catalog_extras (name, price_cents, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, name, price_cents, is_active, created_at, updated_at`

	var extra Extra
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, params.Name, params.PriceCents, params.IsActive).Scan(
		&extra.ID, &extra.Name, &extra.PriceCents, &extra.IsActive, &createdAt, &updatedAt,
	); err != nil {
		return Extra{}, fmt.Errorf("create extra: %w", err)
	}

	extra.CreatedAt = createdAt.Format(time.RFC3339)
	extra.UpdatedAt = updatedAt.Format(time.RFC3339)
	return extra, nil
}

// UpdateExtra updates an extra.
func (r *Repo) UpdateExtra(ctx context.Context, params UpdateExtraParams) (Extra, error) {
	query := `
		UPDATE catalog_extras
		SET name = COALESCE($2, name),
			price_cents = COALESCE($3, price_cents),
			is_active = COALESCE($4, is_active),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, price_cents, is_active, created_at, updated_at`

	var extra Extra
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, params.ID, params.Name, params.PriceCents, params.IsActive).Scan(
		&extra.ID, &extra.Name, &extra.PriceCents, &extra.IsActive, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Extra{}, apperr.NotFound(extraNotFoundMessage)
		}
		return Extra{}, fmt.Errorf("update extra: %w", err)
	}

	extra.CreatedAt = createdAt.Format(time.RFC3339)
	extra.UpdatedAt = updatedAt.Format(time.RFC3339)
	return extra, nil
}

// DeleteExtra deletes an extra.
func (r *Repo) DeleteExtra(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM catalog_extras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete extra: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(extraNotFoundMessage)
	}
	return nil
}

// GetExtraByID retrieves an extra by ID.
func (r *Repo) GetExtraByID(ctx context.Context, id uuid.UUID) (Extra, error) {
	query := `
		SELECT id, name, price_cents, is_active, created_at, updated_at
		FROM catalog_extras
		WHERE id = $1`

	var extra Extra
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&extra.ID, &extra.Name, &extra.PriceCents, &extra.IsActive, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Extra{}, apperr.NotFound(extraNotFoundMessage)
		}
		return Extra{}, fmt.Errorf("get extra by id: %w", err)
	}

	extra.CreatedAt = createdAt.Format(time.RFC3339)
	extra.UpdatedAt = updatedAt.Format(time.RFC3339)
	return extra, nil
}

// ListAllExtras retrieves every extra, optionally only active ones, for
// cart snapshots and report appendices.
func (r *Repo) ListAllExtras(ctx context.Context, activeOnly bool) ([]Extra, error) {
	query := `
		SELECT id, name, price_cents, is_active, created_at, updated_at
		FROM catalog_extras
		WHERE ($1 = FALSE OR is_active = TRUE)
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list all extras: %w", err)
	}
	defer rows.Close()

	items := make([]Extra, 0)
	for rows.Next() {
		var extra Extra
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&extra.ID, &extra.Name, &extra.PriceCents, &extra.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan extra: %w", err)
		}
		extra.CreatedAt = createdAt.Format(time.RFC3339)
		extra.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, extra)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate extras: %w", rows.Err())
	}

	return items, nil
}

// ListExtras lists extras with filters and pagination.
func (r *Repo) ListExtras(ctx context.Context, params ListExtrasParams) ([]Extra, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	if params.ActiveOnly {
		whereClauses = append(whereClauses, "is_active = TRUE")
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM catalog_extras WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count extras: %w", err)
	}

	sortColumn := "name"
	switch params.SortBy {
	case "priceCents":
		sortColumn = "price_cents"
	case "createdAt":
		sortColumn = "created_at"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "ASC"
	if params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, name, price_cents, is_active, created_at, updated_at
		FROM catalog_extras
		WHERE %s
		ORDER BY %s %s, name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list extras: %w", err)
	}
	defer rows.Close()

	items := make([]Extra, 0)
	for rows.Next() {
		var extra Extra
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&extra.ID, &extra.Name, &extra.PriceCents, &extra.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan extra: %w", err)
		}
		extra.CreatedAt = createdAt.Format(time.RFC3339)
		extra.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, extra)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate extras: %w", rows.Err())
	}

	return items, total, nil
}
