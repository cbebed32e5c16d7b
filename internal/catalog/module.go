// Package catalog provides the catalog bounded context module.
package catalog

import (
	"pos_admin_backend/internal/adapters/storage"
	"pos_admin_backend/internal/catalog/handler"
	"pos_admin_backend/internal/catalog/repository"
	"pos_admin_backend/internal/catalog/service"
	"pos_admin_backend/internal/events"
	apphttp "pos_admin_backend/internal/http"
	"pos_admin_backend/platform/logger"
	"pos_admin_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler   *handler.Handler
	service   *service.Service
	repo      repository.Repository
	hasImages bool
}

// NewModule creates and initializes the catalog module. storageSvc may be
// nil; product image routes are then not registered.
func NewModule(pool *pgxpool.Pool, storageSvc storage.StorageService, imageBucket string, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)

	var images *service.ImageService
	if storageSvc != nil {
		images = service.NewImageService(repo, storageSvc, imageBucket)
	}

	return &Module{
		handler:   handler.New(svc, images, val),
		service:   svc,
		repo:      repo,
		hasImages: images != nil,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Protected read-only endpoints
	ctx.Protected.GET("/catalog/categories", m.handler.ListCategories)
	ctx.Protected.GET("/catalog/categories/:id", m.handler.GetCategoryByID)
	ctx.Protected.GET("/catalog/products", m.handler.ListProducts)
	ctx.Protected.GET("/catalog/products/:id", m.handler.GetProductByID)
	ctx.Protected.GET("/catalog/extras", m.handler.ListExtras)
	ctx.Protected.GET("/catalog/extras/:id", m.handler.GetExtraByID)

	// Admin CRUD endpoints
	adminGroup := ctx.Admin.Group("/catalog")
	adminGroup.POST("/categories", m.handler.CreateCategory)
	adminGroup.PUT("/categories/:id", m.handler.UpdateCategory)
	adminGroup.DELETE("/categories/:id", m.handler.DeleteCategory)

	adminGroup.POST("/products", m.handler.CreateProduct)
	adminGroup.PUT("/products/:id", m.handler.UpdateProduct)
	adminGroup.DELETE("/products/:id", m.handler.DeleteProduct)

	adminGroup.POST("/extras", m.handler.CreateExtra)
	adminGroup.PUT("/extras/:id", m.handler.UpdateExtra)
	adminGroup.DELETE("/extras/:id", m.handler.DeleteExtra)

	if m.hasImages {
		ctx.Protected.GET("/catalog/products/:id/images", m.handler.ListProductImages)
		ctx.Protected.GET("/catalog/products/:id/images/:imageId/download", m.handler.GetProductImageDownloadURL)
		adminGroup.POST("/products/:id/images/presign", m.handler.PresignProductImage)
		adminGroup.POST("/products/:id/images", m.handler.CreateProductImage)
		adminGroup.DELETE("/products/:id/images/:imageId", m.handler.DeleteProductImage)
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
