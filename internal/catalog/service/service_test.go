package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"pos_admin_backend/internal/catalog/repository"
	"pos_admin_backend/internal/catalog/transport"
	"pos_admin_backend/internal/events"
	"pos_admin_backend/platform/apperr"
	"pos_admin_backend/platform/logger"
)

// fakeRepo is an in-memory Repository covering the paths the service
// exercises in these tests.
type fakeRepo struct {
	repository.Repository

	categories map[uuid.UUID]repository.Category
	products   map[uuid.UUID]repository.Product
	extras     map[uuid.UUID]repository.Extra
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: make(map[uuid.UUID]repository.Category),
		products:   make(map[uuid.UUID]repository.Product),
		extras:     make(map[uuid.UUID]repository.Extra),
	}
}

func (f *fakeRepo) CreateCategory(_ context.Context, params repository.CreateCategoryParams) (repository.Category, error) {
	category := repository.Category{ID: uuid.New(), Name: params.Name, SubCategories: params.SubCategories}
	f.categories[category.ID] = category
	return category, nil
}

func (f *fakeRepo) UpdateCategory(_ context.Context, params repository.UpdateCategoryParams) (repository.Category, error) {
	category, ok := f.categories[params.ID]
	if !ok {
		return repository.Category{}, apperr.NotFound("category not found")
	}
	if params.Name != nil {
		category.Name = *params.Name
	}
	if params.SubCategories != nil {
		category.SubCategories = params.SubCategories
	}
	f.categories[params.ID] = category
	return category, nil
}

func (f *fakeRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	if _, ok := f.categories[id]; !ok {
		return apperr.NotFound("category not found")
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeRepo) GetCategoryByID(_ context.Context, id uuid.UUID) (repository.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return repository.Category{}, apperr.NotFound("category not found")
	}
	return category, nil
}

func (f *fakeRepo) HasProductsInCategory(_ context.Context, id uuid.UUID) (bool, error) {
	for _, product := range f.products {
		if product.CategoryID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListUsedSubCategories(_ context.Context, categoryID uuid.UUID) ([]string, error) {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, product := range f.products {
		if product.CategoryID != categoryID {
			continue
		}
		if _, ok := seen[product.SubCategory]; ok {
			continue
		}
		seen[product.SubCategory] = struct{}{}
		names = append(names, product.SubCategory)
	}
	return names, nil
}

func (f *fakeRepo) CreateProduct(_ context.Context, params repository.CreateProductParams) (repository.Product, error) {
	product := repository.Product{
		ID:          uuid.New(),
		CategoryID:  params.CategoryID,
		Name:        params.Name,
		PriceCents:  params.PriceCents,
		SubCategory: params.SubCategory,
	}
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeRepo) UpdateProduct(_ context.Context, params repository.UpdateProductParams) (repository.Product, error) {
	product, ok := f.products[params.ID]
	if !ok {
		return repository.Product{}, apperr.NotFound("product not found")
	}
	if params.CategoryID != nil {
		product.CategoryID = *params.CategoryID
	}
	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.PriceCents != nil {
		product.PriceCents = *params.PriceCents
	}
	if params.SubCategory != nil {
		product.SubCategory = *params.SubCategory
	}
	f.products[params.ID] = product
	return product, nil
}

func (f *fakeRepo) GetProductByID(_ context.Context, id uuid.UUID) (repository.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return repository.Product{}, apperr.NotFound("product not found")
	}
	return product, nil
}

func (f *fakeRepo) ListAllCategories(_ context.Context) ([]repository.Category, error) {
	items := make([]repository.Category, 0, len(f.categories))
	for _, category := range f.categories {
		items = append(items, category)
	}
	return items, nil
}

func (f *fakeRepo) ListAllProducts(_ context.Context) ([]repository.Product, error) {
	items := make([]repository.Product, 0, len(f.products))
	for _, product := range f.products {
		items = append(items, product)
	}
	return items, nil
}

func (f *fakeRepo) CreateExtra(_ context.Context, params repository.CreateExtraParams) (repository.Extra, error) {
	extra := repository.Extra{ID: uuid.New(), Name: params.Name, PriceCents: params.PriceCents, IsActive: params.IsActive}
	f.extras[extra.ID] = extra
	return extra, nil
}

func (f *fakeRepo) ListAllExtras(_ context.Context, activeOnly bool) ([]repository.Extra, error) {
	items := make([]repository.Extra, 0, len(f.extras))
	for _, extra := range f.extras {
		if activeOnly && !extra.IsActive {
			continue
		}
		items = append(items, extra)
	}
	return items, nil
}

func newTestService(repo repository.Repository) *Service {
	log := logger.New("test")
	return New(repo, events.NewInMemoryBus(log), log)
}

func TestCreateCategory_NormalizesSubCategories(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	result, err := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{
		Name:          " Waffles ",
		SubCategories: []string{" Clasico ", "Especial"},
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if result.Name != "Waffles" {
		t.Fatalf("name = %q, want trimmed", result.Name)
	}
	if len(result.SubCategories) != 2 || result.SubCategories[0] != "Clasico" {
		t.Fatalf("subcategories = %v", result.SubCategories)
	}
}

func TestCreateCategory_RejectsDuplicateSubCategories(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{
		Name:          "Waffles",
		SubCategories: []string{"Clasico", " Clasico"},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{
		Name:          "Waffles",
		SubCategories: []string{"Clasico", "  "},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
}

func TestUpdateCategory_RejectsDroppingUsedSubCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	category, err := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{
		Name:          "Waffles",
		SubCategories: []string{"Clasico", "Especial"},
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:        "Waffle Clasico",
		PriceCents:  4500,
		CategoryID:  category.ID,
		SubCategory: "Clasico",
	}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	_, err = svc.UpdateCategory(context.Background(), category.ID, transport.UpdateCategoryRequest{
		SubCategories: []string{"Especial"},
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Keeping the used name is fine.
	if _, err := svc.UpdateCategory(context.Background(), category.ID, transport.UpdateCategoryRequest{
		SubCategories: []string{"Clasico"},
	}); err != nil {
		t.Fatalf("update category: %v", err)
	}
}

func TestCreateProduct_RejectsForeignSubCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	category, err := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{
		Name:          "Waffles",
		SubCategories: []string{"Clasico"},
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	_, err = svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:        "Refresco",
		PriceCents:  2000,
		CategoryID:  category.ID,
		SubCategory: "Refrescos",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProduct_RevalidatesPlacementOnCategoryChange(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	waffles, _ := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{
		Name: "Waffles", SubCategories: []string{"Clasico"},
	})
	drinks, _ := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{
		Name: "Bebidas", SubCategories: []string{"Refrescos"},
	})
	product, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name: "Waffle", PriceCents: 4500, CategoryID: waffles.ID, SubCategory: "Clasico",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	// Moving to another category keeps the old subcategory, which that
	// category does not have.
	_, err = svc.UpdateProduct(context.Background(), product.ID, transport.UpdateProductRequest{
		CategoryID: &drinks.ID,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	sub := "Refrescos"
	if _, err := svc.UpdateProduct(context.Background(), product.ID, transport.UpdateProductRequest{
		CategoryID:  &drinks.ID,
		SubCategory: &sub,
	}); err != nil {
		t.Fatalf("update product with matching subcategory: %v", err)
	}
}

func TestDeleteCategory_ConflictWhileProductsExist(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	category, _ := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{
		Name: "Waffles", SubCategories: []string{"Clasico"},
	})
	product, _ := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name: "Waffle", PriceCents: 4500, CategoryID: category.ID, SubCategory: "Clasico",
	})

	err := svc.DeleteCategory(context.Background(), category.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	delete(repo.products, product.ID)
	if err := svc.DeleteCategory(context.Background(), category.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
}

func TestSnapshot_IncludesOnlyActiveExtras(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	active := false
	if _, err := svc.CreateExtra(context.Background(), transport.CreateExtraRequest{
		Name: "Nutella", PriceCents: 1000,
	}); err != nil {
		t.Fatalf("create extra: %v", err)
	}
	if _, err := svc.CreateExtra(context.Background(), transport.CreateExtraRequest{
		Name: "Descontinuado", PriceCents: 500, IsActive: &active,
	}); err != nil {
		t.Fatalf("create extra: %v", err)
	}

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot.Extras) != 1 || snapshot.Extras[0].Name != "Nutella" {
		t.Fatalf("snapshot extras = %+v, want only active", snapshot.Extras)
	}
}
