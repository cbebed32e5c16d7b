package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"pos_admin_backend/internal/adapters/storage"
	"pos_admin_backend/internal/events"
	"pos_admin_backend/internal/sales/cart"
	"pos_admin_backend/internal/sales/repository"
	"pos_admin_backend/platform/apperr"
	"pos_admin_backend/platform/logger"
)

type fakeSales struct {
	sales []repository.Sale
	items []repository.SaleItem
}

func (f *fakeSales) ListSalesBetween(_ context.Context, _, _ time.Time) ([]repository.Sale, []repository.SaleItem, error) {
	return f.sales, f.items, nil
}

type fakeCatalog struct{}

var (
	catWaffles = uuid.New()
	catBebidas = uuid.New()
)

func (fakeCatalog) Snapshot(_ context.Context) (cart.Catalog, error) {
	return cart.Catalog{
		Categories: []cart.Category{
			{ID: catWaffles, Name: "Waffles", SubCategories: []string{"Clasico"}},
			{ID: catBebidas, Name: "Bebidas", SubCategories: []string{"Frias"}},
		},
		Products: []cart.Product{
			{ID: uuid.New(), Name: "Waffle Clasico", PriceCents: 4500, CategoryID: catWaffles, SubCategory: "Clasico"},
			{ID: uuid.New(), Name: "Limonada", PriceCents: 2000, CategoryID: catBebidas, SubCategory: "Frias"},
		},
		Extras: []cart.Extra{
			{ID: uuid.New(), Name: "Nutella", PriceCents: 1000},
		},
	}, nil
}

// fakeStore records uploads; the remaining StorageService methods are
// never reached by these tests.
type fakeStore struct {
	storage.StorageService

	uploadedKey  string
	uploadedSize int64
}

func (f *fakeStore) UploadFile(_ context.Context, _, folder, fileName, _ string, reader io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploadedKey = folder + "/" + fileName
	f.uploadedSize = int64(len(data))
	if f.uploadedSize != size {
		return "", io.ErrShortWrite
	}
	return f.uploadedKey, nil
}

func reportSales(day time.Time) *fakeSales {
	paid := repository.Sale{
		ID:           uuid.New(),
		CustomerName: "Maria",
		TotalCents:   11000,
		Status:       repository.StatusPaid,
		CreatedAt:    day.Add(10 * time.Hour).Format(time.RFC3339),
	}
	cancelled := repository.Sale{
		ID:           uuid.New(),
		CustomerName: "Pedro",
		TotalCents:   2000,
		Status:       repository.StatusCancelled,
		CreatedAt:    day.Add(12 * time.Hour).Format(time.RFC3339),
	}
	return &fakeSales{
		sales: []repository.Sale{paid, cancelled},
		items: []repository.SaleItem{
			{ID: uuid.New(), SaleID: paid.ID, Name: "Waffle Clasico", Quantity: 2, SubtotalCents: 11000},
			{ID: uuid.New(), SaleID: cancelled.ID, Name: "Refresco", Quantity: 1, SubtotalCents: 2000},
		},
	}
}

func TestSalesReportRendersPDF(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	log := logger.New("test")
	svc := New(reportSales(day), fakeCatalog{}, nil, "", "Test POS", events.NewInMemoryBus(log), log)

	doc, err := svc.SalesReport(context.Background(), day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("SalesReport: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("report does not start with a PDF header")
	}
}

func TestSalesReportRejectsInvertedRange(t *testing.T) {
	log := logger.New("test")
	svc := New(&fakeSales{}, fakeCatalog{}, nil, "", "Test POS", events.NewInMemoryBus(log), log)

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	_, err := svc.SalesReport(context.Background(), day, day.AddDate(0, 0, -1))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("inverted range: err = %v, want validation", err)
	}
}

func TestCatalogSheetRendersPDF(t *testing.T) {
	log := logger.New("test")
	svc := New(&fakeSales{}, fakeCatalog{}, nil, "", "Test POS", events.NewInMemoryBus(log), log)

	doc, err := svc.CatalogSheet(context.Background())
	if err != nil {
		t.Fatalf("CatalogSheet: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("sheet does not start with a PDF header")
	}
}

func TestCatalogSheetGroupsProductsByCategory(t *testing.T) {
	log := logger.New("test")
	svc := New(&fakeSales{}, fakeCatalog{}, nil, "", "Test POS", events.NewInMemoryBus(log), log)

	snapshot, err := fakeCatalog{}.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	data := svc.buildCatalogSheetData(snapshot)
	if len(data.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(data.Categories))
	}

	waffles := data.Categories[0]
	if waffles.Name != "Waffles" || len(waffles.Products) != 1 {
		t.Fatalf("Waffles section = %q with %d products, want 1", waffles.Name, len(waffles.Products))
	}
	if waffles.Products[0].Name != "Waffle Clasico" || waffles.Products[0].SubCategory != "Clasico" {
		t.Fatalf("Waffles product = %+v", waffles.Products[0])
	}

	bebidas := data.Categories[1]
	if bebidas.Name != "Bebidas" || len(bebidas.Products) != 1 || bebidas.Products[0].Name != "Limonada" {
		t.Fatalf("Bebidas section = %+v", bebidas)
	}

	if len(data.Extras) != 1 || data.Extras[0].Name != "Nutella" {
		t.Fatalf("extras = %+v", data.Extras)
	}
}

func TestGenerateDailySalesReportArchivesAndPublishes(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	store := &fakeStore{}
	svc := New(reportSales(day), fakeCatalog{}, store, "sales-reports", "Test POS", bus, log)

	published := make(chan events.DailySalesReportGenerated, 1)
	bus.Subscribe("reports.daily.generated", events.HandlerFunc(func(_ context.Context, event events.Event) error {
		published <- event.(events.DailySalesReportGenerated)
		return nil
	}))

	fileKey, err := svc.GenerateDailySalesReport(context.Background(), day)
	if err != nil {
		t.Fatalf("GenerateDailySalesReport: %v", err)
	}
	if fileKey != "daily/sales-2026-08-30.pdf" {
		t.Fatalf("fileKey = %q", fileKey)
	}
	if store.uploadedSize == 0 {
		t.Fatal("no report bytes uploaded")
	}

	select {
	case event := <-published:
		if event.FileKey != fileKey {
			t.Fatalf("event fileKey = %q, want %q", event.FileKey, fileKey)
		}
		if event.SaleCount != 2 || event.TotalCents != 11000 {
			t.Fatalf("event totals = %d sales / %d cents, want 2 / 11000", event.SaleCount, event.TotalCents)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completion event not published")
	}
}

func TestGenerateDailySalesReportRequiresStorage(t *testing.T) {
	log := logger.New("test")
	svc := New(&fakeSales{}, fakeCatalog{}, nil, "", "Test POS", events.NewInMemoryBus(log), log)

	if _, err := svc.GenerateDailySalesReport(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error without object storage")
	}
}
