// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"pos_admin_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Catalog Domain Events
// =============================================================================

// CategoryCreated is published when a category is created.
type CategoryCreated struct {
	BaseEvent
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
}

func (e CategoryCreated) EventName() string { return "catalog.category.created" }

// CategoryUpdated is published when a category or its subcategory list changes.
type CategoryUpdated struct {
	BaseEvent
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
}

func (e CategoryUpdated) EventName() string { return "catalog.category.updated" }

// CategoryDeleted is published when a category is removed.
type CategoryDeleted struct {
	BaseEvent
	CategoryID uuid.UUID `json:"categoryId"`
}

func (e CategoryDeleted) EventName() string { return "catalog.category.deleted" }

// ProductCreated is published when a product is created.
type ProductCreated struct {
	BaseEvent
	ProductID  uuid.UUID `json:"productId"`
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
}

func (e ProductCreated) EventName() string { return "catalog.product.created" }

// ProductUpdated is published when a product changes, including price changes.
// Committed cart lines keep their snapshotted price; subscribers use this to
// refresh catalog caches for new lines.
type ProductUpdated struct {
	BaseEvent
	ProductID  uuid.UUID `json:"productId"`
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
}

func (e ProductUpdated) EventName() string { return "catalog.product.updated" }

// ProductDeleted is published when a product is removed.
type ProductDeleted struct {
	BaseEvent
	ProductID uuid.UUID `json:"productId"`
}

func (e ProductDeleted) EventName() string { return "catalog.product.deleted" }

// ExtraCreated is published when an extra is created.
type ExtraCreated struct {
	BaseEvent
	ExtraID uuid.UUID `json:"extraId"`
	Name    string    `json:"name"`
}

func (e ExtraCreated) EventName() string { return "catalog.extra.created" }

// ExtraUpdated is published when an extra changes, including isActive toggles.
type ExtraUpdated struct {
	BaseEvent
	ExtraID  uuid.UUID `json:"extraId"`
	Name     string    `json:"name"`
	IsActive bool      `json:"isActive"`
}

func (e ExtraUpdated) EventName() string { return "catalog.extra.updated" }

// ExtraDeleted is published when an extra is removed.
type ExtraDeleted struct {
	BaseEvent
	ExtraID uuid.UUID `json:"extraId"`
}

func (e ExtraDeleted) EventName() string { return "catalog.extra.deleted" }

// =============================================================================
// Sales Domain Events
// =============================================================================

// SaleSubmitted is published when a cart is confirmed and persisted as a sale.
type SaleSubmitted struct {
	BaseEvent
	SaleID       uuid.UUID `json:"saleId"`
	CustomerName string    `json:"customerName"`
	TotalCents   int64     `json:"totalCents"`
	LineCount    int       `json:"lineCount"`
	SubmittedBy  uuid.UUID `json:"submittedBy"`
}

func (e SaleSubmitted) EventName() string { return "sales.sale.submitted" }

// SaleStatusChanged is published when an operator updates a sale's status.
type SaleStatusChanged struct {
	BaseEvent
	SaleID    uuid.UUID `json:"saleId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	ActorID   uuid.UUID `json:"actorId"`
}

func (e SaleStatusChanged) EventName() string { return "sales.sale.status_changed" }

// SaleDeleted is published when a sale record is removed.
type SaleDeleted struct {
	BaseEvent
	SaleID  uuid.UUID `json:"saleId"`
	ActorID uuid.UUID `json:"actorId"`
}

func (e SaleDeleted) EventName() string { return "sales.sale.deleted" }

// =============================================================================
// Reports Domain Events
// =============================================================================

// DailySalesReportGenerated is published when the scheduled daily report
// has been rendered and archived.
type DailySalesReportGenerated struct {
	BaseEvent
	ReportDate time.Time `json:"reportDate"`
	FileKey    string    `json:"fileKey"`
	SaleCount  int       `json:"saleCount"`
	TotalCents int64     `json:"totalCents"`
}

func (e DailySalesReportGenerated) EventName() string { return "reports.daily.generated" }
