package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Sale statuses. A sale starts pending and moves to exactly one of the
// other two.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Sale is a submitted cart persisted with its derived total.
type Sale struct {
	ID           uuid.UUID `db:"id"`
	CustomerName string    `db:"customer_name"`
	TotalCents   int64     `db:"total_cents"`
	Status       string    `db:"status"`
	SubmittedBy  uuid.UUID `db:"submitted_by"`
	CreatedAt    string    `db:"created_at"`
	UpdatedAt    string    `db:"updated_at"`
}

// SaleItem is one cart line frozen at submit time. Name and prices are
// snapshots; catalog changes never touch them.
type SaleItem struct {
	ID             uuid.UUID   `db:"id"`
	SaleID         uuid.UUID   `db:"sale_id"`
	ProductID      uuid.UUID   `db:"product_id"`
	Name           string      `db:"name"`
	UnitPriceCents int64       `db:"unit_price_cents"`
	Quantity       int         `db:"quantity"`
	ExtraIDs       []uuid.UUID `db:"extra_ids"`
	SubtotalCents  int64       `db:"subtotal_cents"`
}

// CreateSaleItemParams contains one line of a sale being created.
type CreateSaleItemParams struct {
	ProductID      uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
	ExtraIDs       []uuid.UUID
	SubtotalCents  int64
}

// CreateSaleParams contains data for persisting a submitted cart.
type CreateSaleParams struct {
	CustomerName string
	TotalCents   int64
	SubmittedBy  uuid.UUID
	Items        []CreateSaleItemParams
}

// ListSalesParams defines filters for listing sales.
type ListSalesParams struct {
	Search    string
	Status    string
	From      *time.Time
	To        *time.Time
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

// Repository defines sales storage operations.
type Repository interface {
	// CreateSale writes the sale and its items in one transaction.
	CreateSale(ctx context.Context, params CreateSaleParams) (Sale, error)
	GetSaleByID(ctx context.Context, id uuid.UUID) (Sale, []SaleItem, error)
	ListSales(ctx context.Context, params ListSalesParams) ([]Sale, int, error)
	ListSalesBetween(ctx context.Context, from, to time.Time) ([]Sale, []SaleItem, error)
	UpdateSaleStatus(ctx context.Context, id uuid.UUID, status string) (Sale, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
}
