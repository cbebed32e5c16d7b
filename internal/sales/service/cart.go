package service

import (
	"context"

	"github.com/google/uuid"

	"pos_admin_backend/internal/sales/cart"
	"pos_admin_backend/internal/sales/transport"
)

// CreateCartSession opens a new cart against the current catalog and
// returns its initial state.
func (s *Service) CreateCartSession(ctx context.Context, operatorID uuid.UUID) (transport.CartStateResponse, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return transport.CartStateResponse{}, err
	}

	sess := s.sessions.Create(operatorID, snapshot)
	s.log.Info("cart session opened", "sessionId", sess.ID, "operator", operatorID)

	var resp transport.CartStateResponse
	err = sess.Do(func(b *cart.Builder) error {
		resp = toCartState(sess.ID, b)
		return nil
	})
	return resp, err
}

// GetCartState returns the session's current state without mutating it.
func (s *Service) GetCartState(_ context.Context, sessionID, operatorID uuid.UUID) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, nil)
}

// SelectCategory records the category choice.
func (s *Service) SelectCategory(_ context.Context, sessionID, operatorID, categoryID uuid.UUID) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.SelectCategory(categoryID)
	})
}

// SelectSubcategory records the subcategory choice.
func (s *Service) SelectSubcategory(_ context.Context, sessionID, operatorID uuid.UUID, name string) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.SelectSubcategory(name)
	})
}

// SelectProduct chooses a product for the draft line.
func (s *Service) SelectProduct(_ context.Context, sessionID, operatorID, productID uuid.UUID) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.SelectProduct(productID)
	})
}

// SetQuantity sets the draft quantity.
func (s *Service) SetQuantity(_ context.Context, sessionID, operatorID uuid.UUID, quantity int) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.SetQuantity(quantity)
	})
}

// ToggleExtra toggles an extra on the draft.
func (s *Service) ToggleExtra(_ context.Context, sessionID, operatorID, extraID uuid.UUID) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.ToggleExtra(extraID)
	})
}

// AddLineToCart commits the draft as a cart line.
func (s *Service) AddLineToCart(_ context.Context, sessionID, operatorID uuid.UUID) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.AddLineToCart()
	})
}

// RemoveLine removes the cart line at the given index.
func (s *Service) RemoveLine(_ context.Context, sessionID, operatorID uuid.UUID, index int) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.RemoveLine(index)
	})
}

// GoBack reverts one selection step.
func (s *Service) GoBack(_ context.Context, sessionID, operatorID uuid.UUID) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.GoBack()
	})
}

// AddAnotherProduct restarts the selection workflow from reviewing.
func (s *Service) AddAnotherProduct(_ context.Context, sessionID, operatorID uuid.UUID) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.AddAnotherProduct()
	})
}

// SetCustomerName records the customer the sale is for.
func (s *Service) SetCustomerName(_ context.Context, sessionID, operatorID uuid.UUID, name string) (transport.CartStateResponse, error) {
	return s.withSession(sessionID, operatorID, func(b *cart.Builder) error {
		return b.SetCustomerName(name)
	})
}

// SubmitCart persists the cart as a sale. The session is removed on
// success; on failure it stays alive so the operator can retry.
func (s *Service) SubmitCart(ctx context.Context, sessionID, operatorID uuid.UUID) (transport.SubmitCartResponse, error) {
	sess, err := s.sessions.Get(sessionID, operatorID)
	if err != nil {
		return transport.SubmitCartResponse{}, err
	}

	submitter := repoSubmitter{repo: s.repo, bus: s.bus, log: s.log, operatorID: operatorID}

	var saleID uuid.UUID
	err = sess.Do(func(b *cart.Builder) error {
		id, err := b.Submit(ctx, submitter)
		if err != nil {
			return err
		}
		saleID = id
		return nil
	})
	if err != nil {
		return transport.SubmitCartResponse{}, err
	}

	s.sessions.Delete(sessionID)
	return transport.SubmitCartResponse{SaleID: saleID}, nil
}

// CancelCartSession discards the session and its cart.
func (s *Service) CancelCartSession(_ context.Context, sessionID, operatorID uuid.UUID) error {
	if _, err := s.sessions.Get(sessionID, operatorID); err != nil {
		return err
	}
	s.sessions.Delete(sessionID)
	s.log.Info("cart session cancelled", "sessionId", sessionID, "operator", operatorID)
	return nil
}

// withSession runs op under the session lock and renders the resulting
// state. A failed op leaves the builder untouched and returns its error.
func (s *Service) withSession(sessionID, operatorID uuid.UUID, op func(b *cart.Builder) error) (transport.CartStateResponse, error) {
	sess, err := s.sessions.Get(sessionID, operatorID)
	if err != nil {
		return transport.CartStateResponse{}, err
	}

	var resp transport.CartStateResponse
	err = sess.Do(func(b *cart.Builder) error {
		if op != nil {
			if err := op(b); err != nil {
				return err
			}
		}
		resp = toCartState(sess.ID, b)
		return nil
	})
	if err != nil {
		return transport.CartStateResponse{}, err
	}
	return resp, nil
}

func toCartState(sessionID uuid.UUID, b *cart.Builder) transport.CartStateResponse {
	snapshot := b.Catalog()

	resp := transport.CartStateResponse{
		SessionID:    sessionID,
		Step:         b.Step().String(),
		Categories:   make([]transport.CartCategory, len(snapshot.Categories)),
		Extras:       make([]transport.CartExtra, len(snapshot.Extras)),
		CustomerName: b.CustomerName(),
		TotalCents:   b.TotalCents(),
	}

	for i, category := range snapshot.Categories {
		resp.Categories[i] = toCartCategory(category)
	}
	for i, extra := range snapshot.Extras {
		resp.Extras[i] = transport.CartExtra{ID: extra.ID, Name: extra.Name, PriceCents: extra.PriceCents}
	}

	if selected := b.SelectedCategory(); selected != nil {
		category := toCartCategory(*selected)
		resp.SelectedCategory = &category
	}
	resp.SelectedSub = b.SelectedSubCategory()

	available := b.AvailableProducts()
	if len(available) > 0 {
		resp.AvailableProducts = make([]transport.CartProduct, len(available))
		for i, product := range available {
			resp.AvailableProducts[i] = toCartProduct(product)
		}
	}

	if draft := b.DraftProduct(); draft != nil {
		resp.Draft = &transport.CartDraft{
			Product:       toCartProduct(*draft),
			Quantity:      b.DraftQuantity(),
			ExtraIDs:      b.DraftExtraIDs(),
			SubtotalCents: b.DraftSubtotal(),
		}
	}

	lines := b.Lines()
	resp.Lines = make([]transport.CartLine, len(lines))
	for i, line := range lines {
		resp.Lines[i] = transport.CartLine{
			ProductID:      line.ProductID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			ExtraIDs:       line.ExtraIDs,
			SubtotalCents:  line.SubtotalCents,
		}
	}

	return resp
}

func toCartCategory(category cart.Category) transport.CartCategory {
	return transport.CartCategory{
		ID:            category.ID,
		Name:          category.Name,
		SubCategories: category.SubCategories,
	}
}

func toCartProduct(product cart.Product) transport.CartProduct {
	return transport.CartProduct{
		ID:         product.ID,
		Name:       product.Name,
		PriceCents: product.PriceCents,
	}
}
