package service

import (
	"context"

	"pos_admin_backend/internal/sales/cart"
)

// Snapshot captures the current catalog as the read-only data set a cart
// builder works against. Only active extras are included.
func (s *Service) Snapshot(ctx context.Context) (cart.Catalog, error) {
	categories, err := s.repo.ListAllCategories(ctx)
	if err != nil {
		return cart.Catalog{}, err
	}
	products, err := s.repo.ListAllProducts(ctx)
	if err != nil {
		return cart.Catalog{}, err
	}
	extras, err := s.repo.ListAllExtras(ctx, true)
	if err != nil {
		return cart.Catalog{}, err
	}

	snapshot := cart.Catalog{
		Categories: make([]cart.Category, len(categories)),
		Products:   make([]cart.Product, len(products)),
		Extras:     make([]cart.Extra, len(extras)),
	}
	for i, category := range categories {
		snapshot.Categories[i] = cart.Category{
			ID:            category.ID,
			Name:          category.Name,
			SubCategories: category.SubCategories,
		}
	}
	for i, product := range products {
		snapshot.Products[i] = cart.Product{
			ID:          product.ID,
			Name:        product.Name,
			PriceCents:  product.PriceCents,
			CategoryID:  product.CategoryID,
			SubCategory: product.SubCategory,
		}
	}
	for i, extra := range extras {
		snapshot.Extras[i] = cart.Extra{
			ID:         extra.ID,
			Name:       extra.Name,
			PriceCents: extra.PriceCents,
		}
	}

	return snapshot, nil
}
