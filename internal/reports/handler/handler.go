// Package handler streams generated PDF reports.
package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pos_admin_backend/internal/reports/service"
	"pos_admin_backend/internal/reports/transport"
	"pos_admin_backend/platform/httpkit"
	"pos_admin_backend/platform/validator"
)

// Handler handles HTTP requests for reports.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new reports handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SalesReport streams the sales report PDF for a date range.
// GET /api/v1/reports/sales?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) SalesReport(c *gin.Context) {
	var req transport.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)
	// End bound is inclusive; the service takes an exclusive one.
	to = to.AddDate(0, 0, 1)

	doc, err := h.svc.SalesReport(c.Request.Context(), from, to)
	if httpkit.HandleError(c, err) {
		return
	}

	fileName := fmt.Sprintf("sales-%s-%s.pdf", req.From, req.To)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// CatalogSheet streams the current catalog as a PDF sheet.
// GET /api/v1/reports/catalog
func (h *Handler) CatalogSheet(c *gin.Context) {
	doc, err := h.svc.CatalogSheet(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="catalog.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
