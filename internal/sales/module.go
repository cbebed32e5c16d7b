// Package sales provides the sales bounded context module: cart sessions
// and submitted-sale management.
package sales

import (
	"context"

	"pos_admin_backend/internal/events"
	apphttp "pos_admin_backend/internal/http"
	"pos_admin_backend/internal/sales/handler"
	"pos_admin_backend/internal/sales/repository"
	"pos_admin_backend/internal/sales/service"
	"pos_admin_backend/internal/sales/session"
	"pos_admin_backend/platform/config"
	"pos_admin_backend/platform/logger"
	"pos_admin_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the sales bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	service  *service.Service
	repo     repository.Repository
	sessions *session.Manager
}

// NewModule creates and initializes the sales module.
func NewModule(pool *pgxpool.Pool, catalog service.CatalogSource, bus events.Bus, val *validator.Validator, cfg config.SessionConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	sessions := session.NewManager(cfg.GetCartSessionTTL(), cfg.GetCartSessionSweepInterval(), log)
	svc := service.New(repo, catalog, sessions, bus, log)

	return &Module{
		handler:  handler.New(svc, val),
		service:  svc,
		repo:     repo,
		sessions: sessions,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "sales"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// StartSessionSweeper runs the idle-session janitor until ctx is cancelled.
func (m *Module) StartSessionSweeper(ctx context.Context) {
	go m.sessions.Run(ctx)
}

// RegisterRoutes mounts sales routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	cart := ctx.Protected.Group("/sales/cart-sessions")
	cart.POST("", m.handler.CreateCartSession)
	cart.GET("/:id", m.handler.GetCartState)
	cart.POST("/:id/category", m.handler.SelectCategory)
	cart.POST("/:id/subcategory", m.handler.SelectSubcategory)
	cart.POST("/:id/product", m.handler.SelectProduct)
	cart.PUT("/:id/quantity", m.handler.SetQuantity)
	cart.POST("/:id/extras/toggle", m.handler.ToggleExtra)
	cart.POST("/:id/lines", m.handler.AddLineToCart)
	cart.DELETE("/:id/lines", m.handler.RemoveLine)
	cart.POST("/:id/back", m.handler.GoBack)
	cart.POST("/:id/new-line", m.handler.AddAnotherProduct)
	cart.PUT("/:id/customer", m.handler.SetCustomerName)
	cart.POST("/:id/submit", m.handler.SubmitCart)
	cart.DELETE("/:id", m.handler.CancelCartSession)

	ctx.Protected.GET("/sales", m.handler.ListSales)
	ctx.Protected.GET("/sales/:id", m.handler.GetSaleByID)

	adminGroup := ctx.Admin.Group("/sales")
	adminGroup.PUT("/:id/status", m.handler.UpdateSaleStatus)
	adminGroup.DELETE("/:id", m.handler.DeleteSale)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
