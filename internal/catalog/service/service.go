package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pos_admin_backend/internal/catalog/repository"
	"pos_admin_backend/internal/catalog/transport"
	"pos_admin_backend/internal/events"
	"pos_admin_backend/platform/apperr"
	"pos_admin_backend/platform/logger"
)

// Service provides business logic for catalog.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// =============================================================================
// Categories
// =============================================================================

// GetCategoryByID retrieves a category by ID.
func (s *Service) GetCategoryByID(ctx context.Context, id uuid.UUID) (transport.CategoryResponse, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return transport.CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

// ListCategoriesWithFilters retrieves categories with search and pagination.
func (s *Service) ListCategoriesWithFilters(ctx context.Context, req transport.ListCategoriesRequest) (transport.CategoryListResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	items, total, err := s.repo.ListCategories(ctx, repository.ListCategoriesParams{
		Search:    strings.TrimSpace(req.Search),
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return transport.CategoryListResponse{}, err
	}

	return toCategoryListResponse(items, total, page, pageSize), nil
}

// CreateCategory creates a new category with a normalized subcategory list.
func (s *Service) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (transport.CategoryResponse, error) {
	subCategories, err := normalizeSubCategories(req.SubCategories)
	if err != nil {
		return transport.CategoryResponse{}, err
	}

	category, err := s.repo.CreateCategory(ctx, repository.CreateCategoryParams{
		Name:          strings.TrimSpace(req.Name),
		SubCategories: subCategories,
	})
	if err != nil {
		return transport.CategoryResponse{}, err
	}

	s.log.Info("category created", "id", category.ID, "name", category.Name)
	s.bus.Publish(ctx, events.CategoryCreated{
		BaseEvent:  events.NewBaseEvent(),
		CategoryID: category.ID,
		Name:       category.Name,
	})
	return toCategoryResponse(category), nil
}

// UpdateCategory updates a category. Replacing the subcategory list is
// rejected while products still sit under a removed name.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, req transport.UpdateCategoryRequest) (transport.CategoryResponse, error) {
	var subCategories []string
	if req.SubCategories != nil {
		normalized, err := normalizeSubCategories(req.SubCategories)
		if err != nil {
			return transport.CategoryResponse{}, err
		}

		used, err := s.repo.ListUsedSubCategories(ctx, id)
		if err != nil {
			return transport.CategoryResponse{}, err
		}
		for _, name := range used {
			if !containsString(normalized, name) {
				return transport.CategoryResponse{}, apperr.Conflict("subcategory " + name + " still has products")
			}
		}
		subCategories = normalized
	}

	category, err := s.repo.UpdateCategory(ctx, repository.UpdateCategoryParams{
		ID:            id,
		Name:          trimPtr(req.Name),
		SubCategories: subCategories,
	})
	if err != nil {
		return transport.CategoryResponse{}, err
	}

	s.log.Info("category updated", "id", category.ID, "name", category.Name)
	s.bus.Publish(ctx, events.CategoryUpdated{
		BaseEvent:  events.NewBaseEvent(),
		CategoryID: category.ID,
		Name:       category.Name,
	})
	return toCategoryResponse(category), nil
}

// DeleteCategory deletes a category if no products reference it.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	used, err := s.repo.HasProductsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.Conflict("category has products")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.log.Info("category deleted", "id", id)
	s.bus.Publish(ctx, events.CategoryDeleted{BaseEvent: events.NewBaseEvent(), CategoryID: id})
	return nil
}

// =============================================================================
// Products
// =============================================================================

// GetProductByID retrieves a product by ID.
func (s *Service) GetProductByID(ctx context.Context, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

// ListProductsWithFilters retrieves products with search and pagination.
func (s *Service) ListProductsWithFilters(ctx context.Context, req transport.ListProductsRequest, categoryID *uuid.UUID) (transport.ProductListResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	items, total, err := s.repo.ListProducts(ctx, repository.ListProductsParams{
		Search:      strings.TrimSpace(req.Search),
		CategoryID:  categoryID,
		SubCategory: strings.TrimSpace(req.SubCategory),
		Offset:      (page - 1) * pageSize,
		Limit:       pageSize,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	return toProductListResponse(items, total, page, pageSize), nil
}

// CreateProduct creates a new product under a category subcategory.
func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	subCategory := strings.TrimSpace(req.SubCategory)
	if err := s.validatePlacement(ctx, req.CategoryID, subCategory); err != nil {
		return transport.ProductResponse{}, err
	}

	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		PriceCents:  req.PriceCents,
		SubCategory: subCategory,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product created", "id", product.ID, "name", product.Name)
	s.bus.Publish(ctx, events.ProductCreated{
		BaseEvent:  events.NewBaseEvent(),
		ProductID:  product.ID,
		CategoryID: product.CategoryID,
		Name:       product.Name,
	})
	return toProductResponse(product), nil
}

// UpdateProduct updates a product, revalidating its placement when the
// category or subcategory changes.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	if req.CategoryID != nil || req.SubCategory != nil {
		current, err := s.repo.GetProductByID(ctx, id)
		if err != nil {
			return transport.ProductResponse{}, err
		}

		categoryID := current.CategoryID
		if req.CategoryID != nil {
			categoryID = *req.CategoryID
		}
		subCategory := current.SubCategory
		if req.SubCategory != nil {
			subCategory = strings.TrimSpace(*req.SubCategory)
		}
		if err := s.validatePlacement(ctx, categoryID, subCategory); err != nil {
			return transport.ProductResponse{}, err
		}
	}

	product, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:          id,
		CategoryID:  req.CategoryID,
		Name:        trimPtr(req.Name),
		PriceCents:  req.PriceCents,
		SubCategory: trimPtr(req.SubCategory),
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product updated", "id", product.ID, "name", product.Name)
	s.bus.Publish(ctx, events.ProductUpdated{
		BaseEvent:  events.NewBaseEvent(),
		ProductID:  product.ID,
		CategoryID: product.CategoryID,
		Name:       product.Name,
		PriceCents: product.PriceCents,
	})
	return toProductResponse(product), nil
}

// DeleteProduct deletes a product.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.log.Info("product deleted", "id", id)
	s.bus.Publish(ctx, events.ProductDeleted{BaseEvent: events.NewBaseEvent(), ProductID: id})
	return nil
}

// validatePlacement checks that the subcategory belongs to the category.
func (s *Service) validatePlacement(ctx context.Context, categoryID uuid.UUID, subCategory string) error {
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if !containsString(category.SubCategories, subCategory) {
		return apperr.Validation("subcategory does not belong to the category")
	}
	return nil
}

// =============================================================================
// Extras
// =============================================================================

// GetExtraByID retrieves an extra by ID.
func (s *Service) GetExtraByID(ctx context.Context, id uuid.UUID) (transport.ExtraResponse, error) {
	extra, err := s.repo.GetExtraByID(ctx, id)
	if err != nil {
		return transport.ExtraResponse{}, err
	}
	return toExtraResponse(extra), nil
}

// ListExtrasWithFilters retrieves extras with search and pagination.
func (s *Service) ListExtrasWithFilters(ctx context.Context, req transport.ListExtrasRequest) (transport.ExtraListResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	items, total, err := s.repo.ListExtras(ctx, repository.ListExtrasParams{
		Search:     strings.TrimSpace(req.Search),
		ActiveOnly: req.ActiveOnly,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		return transport.ExtraListResponse{}, err
	}

	return toExtraListResponse(items, total, page, pageSize), nil
}

// CreateExtra creates a new extra. Extras default to active.
func (s *Service) CreateExtra(ctx context.Context, req transport.CreateExtraRequest) (transport.ExtraResponse, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	extra, err := s.repo.CreateExtra(ctx, repository.CreateExtraParams{
		Name:       strings.TrimSpace(req.Name),
		PriceCents: req.PriceCents,
		IsActive:   isActive,
	})
	if err != nil {
		return transport.ExtraResponse{}, err
	}

	s.log.Info("extra created", "id", extra.ID, "name", extra.Name)
	s.bus.Publish(ctx, events.ExtraCreated{
		BaseEvent: events.NewBaseEvent(),
		ExtraID:   extra.ID,
		Name:      extra.Name,
	})
	return toExtraResponse(extra), nil
}

// UpdateExtra updates an extra, including activation toggles.
func (s *Service) UpdateExtra(ctx context.Context, id uuid.UUID, req transport.UpdateExtraRequest) (transport.ExtraResponse, error) {
	extra, err := s.repo.UpdateExtra(ctx, repository.UpdateExtraParams{
		ID:         id,
		Name:       trimPtr(req.Name),
		PriceCents: req.PriceCents,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return transport.ExtraResponse{}, err
	}

	s.log.Info("extra updated", "id", extra.ID, "name", extra.Name, "isActive", extra.IsActive)
	s.bus.Publish(ctx, events.ExtraUpdated{
		BaseEvent: events.NewBaseEvent(),
		ExtraID:   extra.ID,
		Name:      extra.Name,
		IsActive:  extra.IsActive,
	})
	return toExtraResponse(extra), nil
}

// DeleteExtra deletes an extra. Past sale lines keep their snapshotted
// extra prices, so deletion is never blocked.
func (s *Service) DeleteExtra(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteExtra(ctx, id); err != nil {
		return err
	}

	s.log.Info("extra deleted", "id", id)
	s.bus.Publish(ctx, events.ExtraDeleted{BaseEvent: events.NewBaseEvent(), ExtraID: id})
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// normalizeSubCategories trims names and rejects empties and duplicates.
func normalizeSubCategories(names []string) ([]string, error) {
	result := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, apperr.Validation("subcategory names cannot be empty")
		}
		if _, ok := seen[trimmed]; ok {
			return nil, apperr.Validation("duplicate subcategory name: " + trimmed)
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func toCategoryResponse(category repository.Category) transport.CategoryResponse {
	return transport.CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		SubCategories: category.SubCategories,
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
}

func toCategoryListResponse(items []repository.Category, total, page, pageSize int) transport.CategoryListResponse {
	responses := make([]transport.CategoryResponse, len(items))
	for i, item := range items {
		responses[i] = toCategoryResponse(item)
	}
	return transport.CategoryListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}
}

func toProductResponse(product repository.Product) transport.ProductResponse {
	return transport.ProductResponse{
		ID:          product.ID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		PriceCents:  product.PriceCents,
		SubCategory: product.SubCategory,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductListResponse(items []repository.Product, total, page, pageSize int) transport.ProductListResponse {
	responses := make([]transport.ProductResponse, len(items))
	for i, item := range items {
		responses[i] = toProductResponse(item)
	}
	return transport.ProductListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}
}

func toExtraResponse(extra repository.Extra) transport.ExtraResponse {
	return transport.ExtraResponse{
		ID:         extra.ID,
		Name:       extra.Name,
		PriceCents: extra.PriceCents,
		IsActive:   extra.IsActive,
		CreatedAt:  extra.CreatedAt,
		UpdatedAt:  extra.UpdatedAt,
	}
}

func toExtraListResponse(items []repository.Extra, total, page, pageSize int) transport.ExtraListResponse {
	responses := make([]transport.ExtraResponse, len(items))
	for i, item := range items {
		responses[i] = toExtraResponse(item)
	}
	return transport.ExtraListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}
}

func totalPages(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
