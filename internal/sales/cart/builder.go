package cart

import (
	"context"
	"strings"

	"pos_admin_backend/platform/apperr"

	"github.com/google/uuid"
)

// Step identifies where the operator is in the sale-building workflow.
type Step int

const (
	// StepCategory is the initial step: picking a category.
	StepCategory Step = iota
	// StepSubcategory follows a category selection.
	StepSubcategory
	// StepProduct is the draft-configuration step: product, quantity, extras.
	StepProduct
	// StepReviewing is reached after a line is added and no draft is open.
	StepReviewing
)

// String returns the step name for transport and logging.
func (s Step) String() string {
	switch s {
	case StepCategory:
		return "category"
	case StepSubcategory:
		return "subcategory"
	case StepProduct:
		return "product"
	case StepReviewing:
		return "reviewing"
	default:
		return "unknown"
	}
}

// LineItem is a committed cart line. Name, unit price and subtotal are
// snapshots taken at add-time; later catalog changes never reprice it.
type LineItem struct {
	ProductID      uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
	ExtraIDs       []uuid.UUID
	SubtotalCents  int64
}

// Sale is the assembled payload handed to the Submitter on confirm.
type Sale struct {
	CustomerName string
	Lines        []LineItem
	TotalCents   int64
}

// Submitter persists a finished cart as a sale record. It is implemented
// by the sales service; the builder does not retry and does not interpret
// the returned id beyond passing it to the caller.
type Submitter interface {
	Submit(ctx context.Context, sale Sale) (uuid.UUID, error)
}

// draft is the in-progress product configuration. It exists only between
// subcategory selection and add-to-cart (or a revert).
type draft struct {
	product  *Product
	quantity int
	extraIDs []uuid.UUID
}

// Builder is the sale cart state machine for a single operator session.
// It is not safe for concurrent use; the session manager serializes access.
type Builder struct {
	catalog Catalog

	step                Step
	selectedCategory    *Category
	selectedSubCategory string
	availableProducts   []Product
	draft               draft

	customerName string
	lines        []LineItem

	submitting bool
	submitted  bool
	cancelled  bool
}

// NewBuilder opens an empty cart against the given catalog snapshot.
// The snapshot's extras must already be filtered to active ones.
func NewBuilder(catalog Catalog) *Builder {
	return &Builder{catalog: catalog, step: StepCategory}
}

const msgSessionClosed = "cart session is closed"

func (b *Builder) guardOpen() error {
	if b.submitted || b.cancelled {
		return apperr.Conflict(msgSessionClosed)
	}
	if b.submitting {
		return apperr.Conflict("submission in progress")
	}
	return nil
}

// SelectCategory records the category choice and moves to the subcategory
// step. Selecting a category while a subcategory or product was already
// chosen clears those downstream selections.
func (b *Builder) SelectCategory(id uuid.UUID) error {
	if err := b.guardOpen(); err != nil {
		return err
	}
	if b.step == StepReviewing {
		return apperr.Validation("no product selection in progress; start another product first")
	}

	category, ok := b.catalog.CategoryByID(id)
	if !ok {
		return apperr.NotFound("category not found in catalog")
	}

	b.selectedCategory = &category
	b.selectedSubCategory = ""
	b.availableProducts = nil
	b.draft = draft{}
	b.step = StepSubcategory
	return nil
}

// SelectSubcategory records the subcategory choice, computes the products
// available under it, and opens the draft form.
func (b *Builder) SelectSubcategory(name string) error {
	if err := b.guardOpen(); err != nil {
		return err
	}
	if b.selectedCategory == nil || b.step == StepReviewing {
		return apperr.Validation("select a category first")
	}
	if !b.selectedCategory.HasSubCategory(name) {
		return apperr.Validation("subcategory does not belong to the selected category")
	}

	b.selectedSubCategory = name
	b.availableProducts = b.catalog.ProductsFor(b.selectedCategory.ID, name)
	b.draft = draft{}
	b.step = StepProduct
	return nil
}

// SelectProduct chooses a product from the available set. Choosing a
// product while one is already chosen resets quantity and extras; there
// is no partial carryover between products.
func (b *Builder) SelectProduct(id uuid.UUID) error {
	if err := b.guardOpen(); err != nil {
		return err
	}
	if b.step != StepProduct {
		return apperr.Validation("select a category and subcategory first")
	}

	for _, product := range b.availableProducts {
		if product.ID == id {
			chosen := product
			b.draft = draft{product: &chosen, quantity: 1}
			return nil
		}
	}
	return apperr.NotFound("product not available under the selected subcategory")
}

// SetQuantity sets the draft quantity. Values below 1 are rejected, not
// coerced.
func (b *Builder) SetQuantity(quantity int) error {
	if err := b.guardOpen(); err != nil {
		return err
	}
	if b.step != StepProduct || b.draft.product == nil {
		return apperr.Validation("no product selected")
	}
	if quantity < 1 {
		return apperr.Validation("quantity must be at least 1")
	}

	b.draft.quantity = quantity
	return nil
}

// ToggleExtra adds the extra to the draft selection, or removes it if it
// is already selected. Selection is a set: toggling twice restores the
// prior selection.
func (b *Builder) ToggleExtra(id uuid.UUID) error {
	if err := b.guardOpen(); err != nil {
		return err
	}
	if b.step != StepProduct || b.draft.product == nil {
		return apperr.Validation("no product selected")
	}
	if _, ok := b.catalog.ExtraByID(id); !ok {
		return apperr.NotFound("extra not found in active catalog")
	}

	for i, selected := range b.draft.extraIDs {
		if selected == id {
			b.draft.extraIDs = append(b.draft.extraIDs[:i], b.draft.extraIDs[i+1:]...)
			return nil
		}
	}
	b.draft.extraIDs = append(b.draft.extraIDs, id)
	return nil
}

// DraftSubtotal returns the live subtotal of the in-progress draft, or
// zero when no product is chosen.
func (b *Builder) DraftSubtotal() int64 {
	if b.draft.product == nil {
		return 0
	}
	extras := ExtrasUnitPrice(b.catalog, b.draft.extraIDs)
	return LineSubtotal(b.draft.product.PriceCents, extras, b.draft.quantity)
}

// AddLineToCart commits the draft as a line item, snapshotting the
// product name, unit price and subtotal, and moves to reviewing.
func (b *Builder) AddLineToCart() error {
	if err := b.guardOpen(); err != nil {
		return err
	}
	if b.step != StepProduct || b.draft.product == nil {
		return apperr.Validation("no product selected")
	}

	product := *b.draft.product
	extraIDs := make([]uuid.UUID, len(b.draft.extraIDs))
	copy(extraIDs, b.draft.extraIDs)

	b.lines = append(b.lines, LineItem{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		Quantity:       b.draft.quantity,
		ExtraIDs:       extraIDs,
		SubtotalCents:  b.DraftSubtotal(),
	})

	b.selectedCategory = nil
	b.selectedSubCategory = ""
	b.availableProducts = nil
	b.draft = draft{}
	b.step = StepReviewing
	return nil
}

// RemoveLine deletes the line at the given index. The cart may become
// empty; the builder stays in reviewing.
func (b *Builder) RemoveLine(index int) error {
	if err := b.guardOpen(); err != nil {
		return err
	}
	if b.step != StepReviewing {
		return apperr.Validation("finish the product in progress before editing cart lines")
	}
	if index < 0 || index >= len(b.lines) {
		return apperr.Validation("line index out of range")
	}

	b.lines = append(b.lines[:index], b.lines[index+1:]...)
	return nil
}

// GoBack reverts one workflow step, discarding the draft state beyond the
// step reverted to.
func (b *Builder) GoBack() error {
	if err := b.guardOpen(); err != nil {
		return err
	}

	switch b.step {
	case StepProduct:
		b.selectedSubCategory = ""
		b.availableProducts = nil
		b.draft = draft{}
		b.step = StepSubcategory
		return nil
	case StepSubcategory:
		b.selectedCategory = nil
		b.step = StepCategory
		return nil
	default:
		return apperr.Validation("nothing to go back to")
	}
}

// AddAnotherProduct leaves reviewing and restarts the selection workflow
// with cleared selections.
func (b *Builder) AddAnotherProduct() error {
	if err := b.guardOpen(); err != nil {
		return err
	}
	if b.step != StepReviewing {
		return apperr.Validation("a product selection is already in progress")
	}

	b.selectedCategory = nil
	b.selectedSubCategory = ""
	b.availableProducts = nil
	b.draft = draft{}
	b.step = StepCategory
	return nil
}

// SetCustomerName records the customer the sale is for.
func (b *Builder) SetCustomerName(name string) error {
	if err := b.guardOpen(); err != nil {
		return err
	}

	b.customerName = strings.TrimSpace(name)
	return nil
}

// Submit validates the cart locally, assembles the sale and delegates to
// the submitter. On failure the cart is preserved unchanged so the
// operator can retry; on success the session is terminal. A second submit
// while one is outstanding is rejected.
func (b *Builder) Submit(ctx context.Context, submitter Submitter) (uuid.UUID, error) {
	if err := b.guardOpen(); err != nil {
		return uuid.Nil, err
	}
	// Submit is valid from reviewing, or right after an AddAnotherProduct
	// restart before any new selection is made. A category, subcategory or
	// product selection in progress must be finished or reverted first.
	if b.step != StepReviewing && b.step != StepCategory {
		return uuid.Nil, apperr.Conflict("finish or discard the product in progress before submitting")
	}
	if len(b.lines) == 0 {
		return uuid.Nil, apperr.Validation("cart is empty")
	}
	if b.customerName == "" {
		return uuid.Nil, apperr.Validation("customer name is required")
	}

	lines := make([]LineItem, len(b.lines))
	copy(lines, b.lines)
	sale := Sale{
		CustomerName: b.customerName,
		Lines:        lines,
		TotalCents:   CartTotal(b.lines),
	}

	b.submitting = true
	id, err := submitter.Submit(ctx, sale)
	b.submitting = false
	if err != nil {
		return uuid.Nil, err
	}

	b.submitted = true
	return id, nil
}

// Cancel discards the cart and draft entirely. No submission happens and
// the session is terminal.
func (b *Builder) Cancel() {
	b.cancelled = true
	b.selectedCategory = nil
	b.selectedSubCategory = ""
	b.availableProducts = nil
	b.draft = draft{}
	b.lines = nil
}

// =============================================================================
// Read accessors for the transport layer
// =============================================================================

// Step returns the current workflow step.
func (b *Builder) Step() Step { return b.step }

// Catalog returns the snapshot the builder was opened with.
func (b *Builder) Catalog() Catalog { return b.catalog }

// SelectedCategory returns the chosen category, if any.
func (b *Builder) SelectedCategory() *Category {
	if b.selectedCategory == nil {
		return nil
	}
	category := *b.selectedCategory
	return &category
}

// SelectedSubCategory returns the chosen subcategory name, if any.
func (b *Builder) SelectedSubCategory() string { return b.selectedSubCategory }

// AvailableProducts returns the products selectable under the current
// category/subcategory.
func (b *Builder) AvailableProducts() []Product {
	products := make([]Product, len(b.availableProducts))
	copy(products, b.availableProducts)
	return products
}

// DraftProduct returns the product chosen in the draft, if any.
func (b *Builder) DraftProduct() *Product {
	if b.draft.product == nil {
		return nil
	}
	product := *b.draft.product
	return &product
}

// DraftQuantity returns the draft quantity (zero when no product chosen).
func (b *Builder) DraftQuantity() int { return b.draft.quantity }

// DraftExtraIDs returns the draft's selected extras in toggle order.
func (b *Builder) DraftExtraIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(b.draft.extraIDs))
	copy(ids, b.draft.extraIDs)
	return ids
}

// CustomerName returns the recorded customer name.
func (b *Builder) CustomerName() string { return b.customerName }

// Lines returns a copy of the committed cart lines.
func (b *Builder) Lines() []LineItem {
	lines := make([]LineItem, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// TotalCents returns the derived cart total.
func (b *Builder) TotalCents() int64 { return CartTotal(b.lines) }

// Submitted reports whether the cart was successfully submitted.
func (b *Builder) Submitted() bool { return b.submitted }

// Cancelled reports whether the session was cancelled.
func (b *Builder) Cancelled() bool { return b.cancelled }
