// Package service orchestrates cart sessions and submitted-sale
// management for the sales bounded context.
package service

import (
	"context"

	"github.com/google/uuid"

	"pos_admin_backend/internal/events"
	"pos_admin_backend/internal/sales/cart"
	"pos_admin_backend/internal/sales/repository"
	"pos_admin_backend/internal/sales/session"
	"pos_admin_backend/platform/logger"
)

// CatalogSource supplies the read-only catalog snapshot a new cart
// session is opened against. Implemented by the catalog service.
type CatalogSource interface {
	Snapshot(ctx context.Context) (cart.Catalog, error)
}

// Service provides business logic for sales.
type Service struct {
	repo     repository.Repository
	catalog  CatalogSource
	sessions *session.Manager
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new sales service.
func New(repo repository.Repository, catalog CatalogSource, sessions *session.Manager, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, sessions: sessions, bus: bus, log: log}
}

// repoSubmitter persists a finished cart for one operator and publishes
// the submission event. It is the cart package's Submitter port.
type repoSubmitter struct {
	repo       repository.Repository
	bus        events.Bus
	log        *logger.Logger
	operatorID uuid.UUID
}

func (r repoSubmitter) Submit(ctx context.Context, sale cart.Sale) (uuid.UUID, error) {
	items := make([]repository.CreateSaleItemParams, len(sale.Lines))
	for i, line := range sale.Lines {
		items[i] = repository.CreateSaleItemParams{
			ProductID:      line.ProductID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			ExtraIDs:       line.ExtraIDs,
			SubtotalCents:  line.SubtotalCents,
		}
	}

	created, err := r.repo.CreateSale(ctx, repository.CreateSaleParams{
		CustomerName: sale.CustomerName,
		TotalCents:   sale.TotalCents,
		SubmittedBy:  r.operatorID,
		Items:        items,
	})
	if err != nil {
		return uuid.Nil, err
	}

	r.log.Info("sale submitted",
		"id", created.ID,
		"customer", created.CustomerName,
		"totalCents", created.TotalCents,
		"lines", len(items),
	)
	r.bus.Publish(ctx, events.SaleSubmitted{
		BaseEvent:    events.NewBaseEvent(),
		SaleID:       created.ID,
		CustomerName: created.CustomerName,
		TotalCents:   created.TotalCents,
		LineCount:    len(items),
		SubmittedBy:  r.operatorID,
	})
	return created.ID, nil
}
