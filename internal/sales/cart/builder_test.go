package cart

import (
	"context"
	"errors"
	"testing"

	"pos_admin_backend/platform/apperr"

	"github.com/google/uuid"
)

var (
	wafflesID = uuid.New()
	drinksID  = uuid.New()

	wafflesClasicoID = uuid.New()
	wafflesSpecialID = uuid.New()
	sodaID           = uuid.New()

	nutellaID  = uuid.New()
	cajetaID   = uuid.New()
	inactiveID = uuid.New()
)

func testCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{ID: wafflesID, Name: "Waffles", SubCategories: []string{"Clasico", "Especial"}},
			{ID: drinksID, Name: "Bebidas", SubCategories: []string{"Refrescos"}},
		},
		Products: []Product{
			{ID: wafflesClasicoID, Name: "Waffle Clasico", PriceCents: 4500, CategoryID: wafflesID, SubCategory: "Clasico"},
			{ID: wafflesSpecialID, Name: "Waffle Especial", PriceCents: 6000, CategoryID: wafflesID, SubCategory: "Especial"},
			{ID: sodaID, Name: "Refresco", PriceCents: 2000, CategoryID: drinksID, SubCategory: "Refrescos"},
		},
		Extras: []Extra{
			{ID: nutellaID, Name: "Nutella", PriceCents: 1000},
			{ID: cajetaID, Name: "Cajeta", PriceCents: 750},
		},
	}
}

// stubSubmitter records whether it was invoked and returns a fixed result.
type stubSubmitter struct {
	calls int
	sale  Sale
	id    uuid.UUID
	err   error
}

func (s *stubSubmitter) Submit(_ context.Context, sale Sale) (uuid.UUID, error) {
	s.calls++
	s.sale = sale
	return s.id, s.err
}

func selectClasicoWaffle(t *testing.T, b *Builder) {
	t.Helper()
	if err := b.SelectCategory(wafflesID); err != nil {
		t.Fatalf("select category: %v", err)
	}
	if err := b.SelectSubcategory("Clasico"); err != nil {
		t.Fatalf("select subcategory: %v", err)
	}
	if err := b.SelectProduct(wafflesClasicoID); err != nil {
		t.Fatalf("select product: %v", err)
	}
}

func TestBuilder_HappyPath_WaffleWithNutella(t *testing.T) {
	b := NewBuilder(testCatalog())

	if b.Step() != StepCategory {
		t.Fatalf("initial step = %v, want category", b.Step())
	}

	selectClasicoWaffle(t, b)
	if err := b.ToggleExtra(nutellaID); err != nil {
		t.Fatalf("toggle extra: %v", err)
	}
	if err := b.SetQuantity(2); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	// (45.00 + 10.00) * 2 = 110.00
	if got := b.DraftSubtotal(); got != 11000 {
		t.Fatalf("draft subtotal = %d, want 11000", got)
	}

	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if b.Step() != StepReviewing {
		t.Fatalf("step after add = %v, want reviewing", b.Step())
	}

	lines := b.Lines()
	if len(lines) != 1 {
		t.Fatalf("line count = %d, want 1", len(lines))
	}
	line := lines[0]
	if line.Name != "Waffle Clasico" || line.UnitPriceCents != 4500 || line.Quantity != 2 {
		t.Fatalf("unexpected line snapshot: %+v", line)
	}
	if line.SubtotalCents != 11000 {
		t.Fatalf("line subtotal = %d, want 11000", line.SubtotalCents)
	}
	if b.TotalCents() != 11000 {
		t.Fatalf("cart total = %d, want 11000", b.TotalCents())
	}
}

func TestBuilder_SelectCategory_UnknownID(t *testing.T) {
	b := NewBuilder(testCatalog())

	err := b.SelectCategory(uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if b.Step() != StepCategory {
		t.Fatalf("step changed on failed selection: %v", b.Step())
	}
}

func TestBuilder_SelectSubcategory_NotInCategory(t *testing.T) {
	b := NewBuilder(testCatalog())
	if err := b.SelectCategory(wafflesID); err != nil {
		t.Fatalf("select category: %v", err)
	}

	err := b.SelectSubcategory("Refrescos")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBuilder_SelectProduct_NotUnderSubcategory(t *testing.T) {
	b := NewBuilder(testCatalog())
	if err := b.SelectCategory(wafflesID); err != nil {
		t.Fatalf("select category: %v", err)
	}
	if err := b.SelectSubcategory("Clasico"); err != nil {
		t.Fatalf("select subcategory: %v", err)
	}

	// Especial product is in the same category but another subcategory.
	err := b.SelectProduct(wafflesSpecialID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBuilder_ReselectCategory_ClearsDownstream(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)

	if err := b.SelectCategory(drinksID); err != nil {
		t.Fatalf("reselect category: %v", err)
	}
	if b.Step() != StepSubcategory {
		t.Fatalf("step = %v, want subcategory", b.Step())
	}
	if b.SelectedSubCategory() != "" || b.DraftProduct() != nil {
		t.Fatal("downstream selections survived category change")
	}
}

func TestBuilder_SelectProduct_ResetsQuantityAndExtras(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)

	if err := b.SetQuantity(5); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if err := b.ToggleExtra(nutellaID); err != nil {
		t.Fatalf("toggle extra: %v", err)
	}

	// Re-choosing the product starts a fresh configuration.
	if err := b.SelectProduct(wafflesClasicoID); err != nil {
		t.Fatalf("reselect product: %v", err)
	}
	if b.DraftQuantity() != 1 {
		t.Fatalf("quantity = %d, want 1", b.DraftQuantity())
	}
	if len(b.DraftExtraIDs()) != 0 {
		t.Fatalf("extras survived product reselection: %v", b.DraftExtraIDs())
	}
}

func TestBuilder_SetQuantity_RejectsBelowOne(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)

	for _, quantity := range []int{0, -3} {
		err := b.SetQuantity(quantity)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("quantity %d: expected validation error, got %v", quantity, err)
		}
	}
	if b.DraftQuantity() != 1 {
		t.Fatalf("quantity = %d, want unchanged 1", b.DraftQuantity())
	}
}

func TestBuilder_ToggleExtra_Involution(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)

	if err := b.ToggleExtra(cajetaID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	before := b.DraftSubtotal()

	if err := b.ToggleExtra(nutellaID); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if err := b.ToggleExtra(nutellaID); err != nil {
		t.Fatalf("toggle off: %v", err)
	}

	ids := b.DraftExtraIDs()
	if len(ids) != 1 || ids[0] != cajetaID {
		t.Fatalf("selection after double toggle = %v, want only cajeta", ids)
	}
	if b.DraftSubtotal() != before {
		t.Fatalf("subtotal changed after double toggle: %d != %d", b.DraftSubtotal(), before)
	}
}

func TestBuilder_ToggleExtra_UnknownID(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)

	err := b.ToggleExtra(inactiveID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBuilder_GoBack_TwiceFromProductIsCleanCategoryStep(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.ToggleExtra(nutellaID); err != nil {
		t.Fatalf("toggle extra: %v", err)
	}

	if err := b.GoBack(); err != nil {
		t.Fatalf("go back: %v", err)
	}
	if b.Step() != StepSubcategory || b.DraftProduct() != nil || b.SelectedSubCategory() != "" {
		t.Fatalf("first go back left draft state: step=%v sub=%q", b.Step(), b.SelectedSubCategory())
	}

	if err := b.GoBack(); err != nil {
		t.Fatalf("go back: %v", err)
	}
	if b.Step() != StepCategory || b.SelectedCategory() != nil {
		t.Fatal("second go back did not reach a clean category step")
	}

	err := b.GoBack()
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error at category step, got %v", err)
	}
}

func TestBuilder_AddAnotherProduct_RestartsSelection(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}

	if err := b.AddAnotherProduct(); err != nil {
		t.Fatalf("add another: %v", err)
	}
	if b.Step() != StepCategory || b.SelectedCategory() != nil {
		t.Fatal("expected clean category step")
	}
	if len(b.Lines()) != 1 {
		t.Fatal("committed lines were lost")
	}

	// Second line through the other category.
	if err := b.SelectCategory(drinksID); err != nil {
		t.Fatalf("select category: %v", err)
	}
	if err := b.SelectSubcategory("Refrescos"); err != nil {
		t.Fatalf("select subcategory: %v", err)
	}
	if err := b.SelectProduct(sodaID); err != nil {
		t.Fatalf("select product: %v", err)
	}
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}

	if b.TotalCents() != 4500+2000 {
		t.Fatalf("total = %d, want 6500", b.TotalCents())
	}
}

func TestBuilder_RemoveLine(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}

	if err := b.RemoveLine(2); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for out of range index, got %v", err)
	}

	if err := b.RemoveLine(0); err != nil {
		t.Fatalf("remove line: %v", err)
	}
	if len(b.Lines()) != 0 || b.TotalCents() != 0 {
		t.Fatalf("cart not empty after removing only line: %d lines, total %d", len(b.Lines()), b.TotalCents())
	}

	// An emptied cart cannot be submitted.
	submitter := &stubSubmitter{id: uuid.New()}
	if err := b.SetCustomerName("Ana"); err != nil {
		t.Fatalf("set customer: %v", err)
	}
	_, err := b.Submit(context.Background(), submitter)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if submitter.calls != 0 {
		t.Fatalf("submitter invoked %d times for empty cart", submitter.calls)
	}
}

func TestBuilder_Submit_AssemblesSale(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.ToggleExtra(nutellaID); err != nil {
		t.Fatalf("toggle extra: %v", err)
	}
	if err := b.SetQuantity(2); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := b.SetCustomerName("  Carlos  "); err != nil {
		t.Fatalf("set customer: %v", err)
	}

	saleID := uuid.New()
	submitter := &stubSubmitter{id: saleID}

	got, err := b.Submit(context.Background(), submitter)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got != saleID {
		t.Fatalf("returned id = %v, want %v", got, saleID)
	}
	if submitter.sale.CustomerName != "Carlos" {
		t.Fatalf("customer name = %q, want trimmed %q", submitter.sale.CustomerName, "Carlos")
	}
	if submitter.sale.TotalCents != 11000 {
		t.Fatalf("sale total = %d, want 11000", submitter.sale.TotalCents)
	}
	if len(submitter.sale.Lines) != 1 {
		t.Fatalf("sale lines = %d, want 1", len(submitter.sale.Lines))
	}
	if !b.Submitted() {
		t.Fatal("builder not marked submitted")
	}

	// The session is terminal after a successful submit.
	_, err = b.Submit(context.Background(), submitter)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict after success, got %v", err)
	}
	if err := b.SelectCategory(wafflesID); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on closed session, got %v", err)
	}
	if submitter.calls != 1 {
		t.Fatalf("submitter invoked %d times, want 1", submitter.calls)
	}
}

func TestBuilder_Submit_RequiresCustomerName(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}

	submitter := &stubSubmitter{}
	_, err := b.Submit(context.Background(), submitter)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if submitter.calls != 0 {
		t.Fatal("submitter invoked without a customer name")
	}
}

func TestBuilder_Submit_RejectsOpenDraft(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := b.AddAnotherProduct(); err != nil {
		t.Fatalf("add another: %v", err)
	}
	selectClasicoWaffle(t, b)
	if err := b.SetCustomerName("Ana"); err != nil {
		t.Fatalf("set customer: %v", err)
	}

	submitter := &stubSubmitter{}
	_, err := b.Submit(context.Background(), submitter)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for open draft, got %v", err)
	}
	if submitter.calls != 0 {
		t.Fatal("submitter invoked with an open draft")
	}
}

func TestBuilder_Submit_RejectsMidSelection(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := b.SetCustomerName("Ana"); err != nil {
		t.Fatalf("set customer: %v", err)
	}
	if err := b.AddAnotherProduct(); err != nil {
		t.Fatalf("add another: %v", err)
	}

	// A category selection alone, with no draft open, is still an
	// in-progress workflow.
	if err := b.SelectCategory(wafflesID); err != nil {
		t.Fatalf("select category: %v", err)
	}
	submitter := &stubSubmitter{}
	if _, err := b.Submit(context.Background(), submitter); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict mid-selection, got %v", err)
	}

	if err := b.SelectSubcategory("Clasico"); err != nil {
		t.Fatalf("select subcategory: %v", err)
	}
	if _, err := b.Submit(context.Background(), submitter); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict with subcategory chosen, got %v", err)
	}
	if submitter.calls != 0 {
		t.Fatalf("submitter invoked %d times mid-selection", submitter.calls)
	}
}

func TestBuilder_Submit_AllowedAfterRestart(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := b.SetCustomerName("Ana"); err != nil {
		t.Fatalf("set customer: %v", err)
	}
	if err := b.AddAnotherProduct(); err != nil {
		t.Fatalf("add another: %v", err)
	}

	// Nothing selected after the restart: the committed lines can still
	// be submitted as-is.
	submitter := &stubSubmitter{id: uuid.New()}
	if _, err := b.Submit(context.Background(), submitter); err != nil {
		t.Fatalf("submit after restart: %v", err)
	}
	if submitter.calls != 1 {
		t.Fatalf("submitter invoked %d times, want 1", submitter.calls)
	}
}

func TestBuilder_Submit_FailurePreservesCart(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := b.SetCustomerName("Ana"); err != nil {
		t.Fatalf("set customer: %v", err)
	}

	submitter := &stubSubmitter{err: errors.New("db down")}
	if _, err := b.Submit(context.Background(), submitter); err == nil {
		t.Fatal("expected submit error")
	}

	if b.Submitted() {
		t.Fatal("builder marked submitted after failure")
	}
	if len(b.Lines()) != 1 || b.CustomerName() != "Ana" {
		t.Fatal("cart state lost after failed submit")
	}

	// Retry against a working submitter succeeds.
	retry := &stubSubmitter{id: uuid.New()}
	if _, err := b.Submit(context.Background(), retry); err != nil {
		t.Fatalf("retry submit: %v", err)
	}
}

func TestBuilder_Cancel_ClosesSession(t *testing.T) {
	b := NewBuilder(testCatalog())
	selectClasicoWaffle(t, b)
	if err := b.AddLineToCart(); err != nil {
		t.Fatalf("add line: %v", err)
	}

	b.Cancel()

	if !b.Cancelled() {
		t.Fatal("builder not marked cancelled")
	}
	if len(b.Lines()) != 0 {
		t.Fatal("lines survived cancel")
	}
	if err := b.SelectCategory(wafflesID); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on cancelled session, got %v", err)
	}
	submitter := &stubSubmitter{}
	if _, err := b.Submit(context.Background(), submitter); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if submitter.calls != 0 {
		t.Fatal("submitter invoked after cancel")
	}
}
