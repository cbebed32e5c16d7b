// Package reports provides the PDF reporting module.
package reports

import (
	"pos_admin_backend/internal/adapters/storage"
	"pos_admin_backend/internal/events"
	apphttp "pos_admin_backend/internal/http"
	"pos_admin_backend/internal/reports/handler"
	"pos_admin_backend/internal/reports/service"
	"pos_admin_backend/platform/logger"
	"pos_admin_backend/platform/validator"
)

// Module is the reports module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the reports module. store may be
// nil; on-demand reports work without object storage.
func NewModule(sales service.SalesSource, catalog service.CatalogSource, store storage.StorageService, bucket, businessName string, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(sales, catalog, store, bucket, businessName, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reports"
}

// Service returns the service layer for external use (the scheduled
// daily report task invokes it directly).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts report routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Admin.Group("/reports")
	group.GET("/sales", m.handler.SalesReport)
	group.GET("/catalog", m.handler.CatalogSheet)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
