package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"pos_admin_backend/internal/events"
	"pos_admin_backend/internal/sales/cart"
	"pos_admin_backend/internal/sales/repository"
	"pos_admin_backend/internal/sales/session"
	"pos_admin_backend/internal/sales/transport"
	"pos_admin_backend/platform/apperr"
	"pos_admin_backend/platform/logger"
)

// fakeRepo is an in-memory Repository covering the paths the service
// exercises in these tests.
type fakeRepo struct {
	sales map[uuid.UUID]repository.Sale
	items map[uuid.UUID][]repository.SaleItem

	failCreate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		sales: make(map[uuid.UUID]repository.Sale),
		items: make(map[uuid.UUID][]repository.SaleItem),
	}
}

func (f *fakeRepo) CreateSale(_ context.Context, params repository.CreateSaleParams) (repository.Sale, error) {
	if f.failCreate {
		return repository.Sale{}, fmt.Errorf("insert sale: connection reset")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	sale := repository.Sale{
		ID:           uuid.New(),
		CustomerName: params.CustomerName,
		TotalCents:   params.TotalCents,
		Status:       repository.StatusPending,
		SubmittedBy:  params.SubmittedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.sales[sale.ID] = sale

	items := make([]repository.SaleItem, len(params.Items))
	for i, item := range params.Items {
		items[i] = repository.SaleItem{
			ID:             uuid.New(),
			SaleID:         sale.ID,
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			ExtraIDs:       item.ExtraIDs,
			SubtotalCents:  item.SubtotalCents,
		}
	}
	f.items[sale.ID] = items
	return sale, nil
}

func (f *fakeRepo) GetSaleByID(_ context.Context, id uuid.UUID) (repository.Sale, []repository.SaleItem, error) {
	sale, ok := f.sales[id]
	if !ok {
		return repository.Sale{}, nil, apperr.NotFound("sale not found")
	}
	return sale, f.items[id], nil
}

func (f *fakeRepo) ListSales(_ context.Context, _ repository.ListSalesParams) ([]repository.Sale, int, error) {
	results := make([]repository.Sale, 0, len(f.sales))
	for _, sale := range f.sales {
		results = append(results, sale)
	}
	return results, len(results), nil
}

func (f *fakeRepo) ListSalesBetween(_ context.Context, _, _ time.Time) ([]repository.Sale, []repository.SaleItem, error) {
	return nil, nil, nil
}

func (f *fakeRepo) UpdateSaleStatus(_ context.Context, id uuid.UUID, status string) (repository.Sale, error) {
	sale, ok := f.sales[id]
	if !ok {
		return repository.Sale{}, apperr.NotFound("sale not found")
	}
	sale.Status = status
	f.sales[id] = sale
	return sale, nil
}

func (f *fakeRepo) DeleteSale(_ context.Context, id uuid.UUID) error {
	if _, ok := f.sales[id]; !ok {
		return apperr.NotFound("sale not found")
	}
	delete(f.sales, id)
	delete(f.items, id)
	return nil
}

type fixtureIDs struct {
	waffles uuid.UUID
	clasico uuid.UUID
	nutella uuid.UUID
}

// fakeCatalog serves a fixed snapshot: one category with one product and
// one extra, enough to walk the full builder flow.
type fakeCatalog struct {
	ids fixtureIDs
}

func (f fakeCatalog) Snapshot(_ context.Context) (cart.Catalog, error) {
	return cart.Catalog{
		Categories: []cart.Category{
			{ID: f.ids.waffles, Name: "Waffles", SubCategories: []string{"Clasico"}},
		},
		Products: []cart.Product{
			{ID: f.ids.clasico, Name: "Waffle Clasico", PriceCents: 4500, CategoryID: f.ids.waffles, SubCategory: "Clasico"},
		},
		Extras: []cart.Extra{
			{ID: f.ids.nutella, Name: "Nutella", PriceCents: 1000},
		},
	}, nil
}

func newTestService(t *testing.T) (*Service, *fakeRepo, fixtureIDs) {
	t.Helper()

	ids := fixtureIDs{waffles: uuid.New(), clasico: uuid.New(), nutella: uuid.New()}
	repo := newFakeRepo()
	log := logger.New("test")
	sessions := session.NewManager(time.Hour, time.Minute, log)
	svc := New(repo, fakeCatalog{ids: ids}, sessions, events.NewInMemoryBus(log), log)
	return svc, repo, ids
}

// buildCart walks a fresh session to a reviewing cart with one line:
// 2x Waffle Clasico with Nutella, (4500+1000)*2 = 11000.
func buildCart(t *testing.T, svc *Service, operatorID uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	state, err := svc.CreateCartSession(ctx, operatorID)
	if err != nil {
		t.Fatalf("CreateCartSession: %v", err)
	}
	sessionID := state.SessionID
	categoryID := state.Categories[0].ID

	if _, err := svc.SelectCategory(ctx, sessionID, operatorID, categoryID); err != nil {
		t.Fatalf("SelectCategory: %v", err)
	}
	if _, err := svc.SelectSubcategory(ctx, sessionID, operatorID, "Clasico"); err != nil {
		t.Fatalf("SelectSubcategory: %v", err)
	}
	state, err = svc.GetCartState(ctx, sessionID, operatorID)
	if err != nil {
		t.Fatalf("GetCartState: %v", err)
	}
	productID := state.AvailableProducts[0].ID
	extraID := state.Extras[0].ID

	if _, err := svc.SelectProduct(ctx, sessionID, operatorID, productID); err != nil {
		t.Fatalf("SelectProduct: %v", err)
	}
	if _, err := svc.SetQuantity(ctx, sessionID, operatorID, 2); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if _, err := svc.ToggleExtra(ctx, sessionID, operatorID, extraID); err != nil {
		t.Fatalf("ToggleExtra: %v", err)
	}
	if _, err := svc.AddLineToCart(ctx, sessionID, operatorID); err != nil {
		t.Fatalf("AddLineToCart: %v", err)
	}
	if _, err := svc.SetCustomerName(ctx, sessionID, operatorID, "Maria"); err != nil {
		t.Fatalf("SetCustomerName: %v", err)
	}
	return sessionID
}

func TestSubmitCartPersistsSaleAndClosesSession(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	operatorID := uuid.New()

	sessionID := buildCart(t, svc, operatorID)

	result, err := svc.SubmitCart(ctx, sessionID, operatorID)
	if err != nil {
		t.Fatalf("SubmitCart: %v", err)
	}

	sale, items, err := repo.GetSaleByID(ctx, result.SaleID)
	if err != nil {
		t.Fatalf("GetSaleByID: %v", err)
	}
	if sale.CustomerName != "Maria" {
		t.Fatalf("customer name = %q, want Maria", sale.CustomerName)
	}
	if sale.TotalCents != 11000 {
		t.Fatalf("total = %d, want 11000", sale.TotalCents)
	}
	if sale.Status != repository.StatusPending {
		t.Fatalf("status = %q, want pending", sale.Status)
	}
	if sale.SubmittedBy != operatorID {
		t.Fatalf("submitted by = %s, want %s", sale.SubmittedBy, operatorID)
	}
	if len(items) != 1 {
		t.Fatalf("item count = %d, want 1", len(items))
	}
	if items[0].SubtotalCents != 11000 || items[0].Quantity != 2 {
		t.Fatalf("item = %+v, want quantity 2 subtotal 11000", items[0])
	}

	if _, err := svc.GetCartState(ctx, sessionID, operatorID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("session after submit: err = %v, want not found", err)
	}
}

func TestSubmitCartFailureKeepsSessionForRetry(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	operatorID := uuid.New()

	sessionID := buildCart(t, svc, operatorID)

	repo.failCreate = true
	if _, err := svc.SubmitCart(ctx, sessionID, operatorID); err == nil {
		t.Fatal("SubmitCart succeeded despite repository failure")
	}

	state, err := svc.GetCartState(ctx, sessionID, operatorID)
	if err != nil {
		t.Fatalf("session gone after failed submit: %v", err)
	}
	if len(state.Lines) != 1 || state.TotalCents != 11000 {
		t.Fatalf("cart not preserved after failed submit: %+v", state)
	}

	repo.failCreate = false
	if _, err := svc.SubmitCart(ctx, sessionID, operatorID); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestCartSessionScopedToOperator(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	operatorID := uuid.New()

	sessionID := buildCart(t, svc, operatorID)

	if _, err := svc.GetCartState(ctx, sessionID, uuid.New()); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("other operator: err = %v, want forbidden", err)
	}
}

func TestCancelCartSessionDiscardsCart(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	operatorID := uuid.New()

	sessionID := buildCart(t, svc, operatorID)

	if err := svc.CancelCartSession(ctx, sessionID, operatorID); err != nil {
		t.Fatalf("CancelCartSession: %v", err)
	}
	if _, err := svc.GetCartState(ctx, sessionID, operatorID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("session after cancel: err = %v, want not found", err)
	}
}

func TestUpdateSaleStatusTransitions(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	operatorID := uuid.New()
	actorID := uuid.New()

	sessionID := buildCart(t, svc, operatorID)
	submitted, err := svc.SubmitCart(ctx, sessionID, operatorID)
	if err != nil {
		t.Fatalf("SubmitCart: %v", err)
	}

	if _, err := svc.UpdateSaleStatus(ctx, submitted.SaleID, actorID, "refunded"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("invalid status: err = %v, want validation", err)
	}

	updated, err := svc.UpdateSaleStatus(ctx, submitted.SaleID, actorID, repository.StatusPaid)
	if err != nil {
		t.Fatalf("UpdateSaleStatus pending->paid: %v", err)
	}
	if updated.Status != repository.StatusPaid {
		t.Fatalf("status = %q, want paid", updated.Status)
	}

	// Settled sales are immutable.
	if _, err := svc.UpdateSaleStatus(ctx, submitted.SaleID, actorID, repository.StatusCancelled); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("paid->cancelled: err = %v, want conflict", err)
	}

	sale, _, err := repo.GetSaleByID(ctx, submitted.SaleID)
	if err != nil {
		t.Fatalf("GetSaleByID: %v", err)
	}
	if sale.Status != repository.StatusPaid {
		t.Fatalf("status after rejected transition = %q, want paid", sale.Status)
	}
}

func TestListSalesRejectsMalformedDates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ListSalesWithFilters(ctx, transport.ListSalesRequest{From: "31-12-2025"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("malformed from date: err = %v, want validation", err)
	}
}

func TestDeleteSaleRemovesRecord(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	operatorID := uuid.New()

	sessionID := buildCart(t, svc, operatorID)
	submitted, err := svc.SubmitCart(ctx, sessionID, operatorID)
	if err != nil {
		t.Fatalf("SubmitCart: %v", err)
	}

	if err := svc.DeleteSale(ctx, submitted.SaleID, uuid.New()); err != nil {
		t.Fatalf("DeleteSale: %v", err)
	}
	if _, _, err := repo.GetSaleByID(ctx, submitted.SaleID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("sale after delete: err = %v, want not found", err)
	}
}
