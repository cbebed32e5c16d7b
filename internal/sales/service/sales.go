package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pos_admin_backend/internal/events"
	"pos_admin_backend/internal/sales/repository"
	"pos_admin_backend/internal/sales/transport"
	"pos_admin_backend/platform/apperr"
)

// GetSaleByID retrieves a sale with its items.
func (s *Service) GetSaleByID(ctx context.Context, id uuid.UUID) (transport.SaleResponse, error) {
	sale, items, err := s.repo.GetSaleByID(ctx, id)
	if err != nil {
		return transport.SaleResponse{}, err
	}
	return toSaleResponse(sale, items), nil
}

// ListSalesWithFilters retrieves sales with search, date range and pagination.
func (s *Service) ListSalesWithFilters(ctx context.Context, req transport.ListSalesRequest) (transport.SaleListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	from, err := parseDateBound(req.From, false)
	if err != nil {
		return transport.SaleListResponse{}, err
	}
	to, err := parseDateBound(req.To, true)
	if err != nil {
		return transport.SaleListResponse{}, err
	}

	items, total, err := s.repo.ListSales(ctx, repository.ListSalesParams{
		Search:    strings.TrimSpace(req.Search),
		Status:    req.Status,
		From:      from,
		To:        to,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return transport.SaleListResponse{}, err
	}

	responses := make([]transport.SaleResponse, len(items))
	for i, item := range items {
		responses[i] = toSaleResponse(item, nil)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return transport.SaleListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateSaleStatus moves a pending sale to paid or cancelled.
func (s *Service) UpdateSaleStatus(ctx context.Context, id, actorID uuid.UUID, status string) (transport.SaleResponse, error) {
	current, _, err := s.repo.GetSaleByID(ctx, id)
	if err != nil {
		return transport.SaleResponse{}, err
	}
	if current.Status != repository.StatusPending {
		return transport.SaleResponse{}, apperr.Conflict("only pending sales can change status")
	}
	if status != repository.StatusPaid && status != repository.StatusCancelled {
		return transport.SaleResponse{}, apperr.Validation("invalid sale status")
	}

	sale, err := s.repo.UpdateSaleStatus(ctx, id, status)
	if err != nil {
		return transport.SaleResponse{}, err
	}

	s.log.Info("sale status changed", "id", sale.ID, "from", current.Status, "to", sale.Status)
	s.bus.Publish(ctx, events.SaleStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		SaleID:    sale.ID,
		OldStatus: current.Status,
		NewStatus: sale.Status,
		ActorID:   actorID,
	})
	return toSaleResponse(sale, nil), nil
}

// DeleteSale removes a sale record and its items.
func (s *Service) DeleteSale(ctx context.Context, id, actorID uuid.UUID) error {
	if err := s.repo.DeleteSale(ctx, id); err != nil {
		return err
	}

	s.log.Info("sale deleted", "id", id, "actor", actorID)
	s.bus.Publish(ctx, events.SaleDeleted{BaseEvent: events.NewBaseEvent(), SaleID: id, ActorID: actorID})
	return nil
}

// parseDateBound parses a YYYY-MM-DD filter value. An end bound is
// pushed to the following midnight so the day is inclusive.
func parseDateBound(value string, end bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperr.Validation("dates must be formatted YYYY-MM-DD")
	}
	if end {
		parsed = parsed.AddDate(0, 0, 1)
	}
	return &parsed, nil
}

func toSaleResponse(sale repository.Sale, items []repository.SaleItem) transport.SaleResponse {
	resp := transport.SaleResponse{
		ID:           sale.ID,
		CustomerName: sale.CustomerName,
		TotalCents:   sale.TotalCents,
		Status:       sale.Status,
		SubmittedBy:  sale.SubmittedBy,
		CreatedAt:    sale.CreatedAt,
		UpdatedAt:    sale.UpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = make([]transport.SaleItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = transport.SaleItemResponse{
				ID:             item.ID,
				ProductID:      item.ProductID,
				Name:           item.Name,
				UnitPriceCents: item.UnitPriceCents,
				Quantity:       item.Quantity,
				ExtraIDs:       item.ExtraIDs,
				SubtotalCents:  item.SubtotalCents,
			}
		}
	}
	return resp
}
