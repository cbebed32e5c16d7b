package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pos_admin_backend/internal/sales/service"
	"pos_admin_backend/internal/sales/transport"
	"pos_admin_backend/platform/httpkit"
	"pos_admin_backend/platform/validator"
)

// Handler handles HTTP requests for sales and cart sessions.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// New creates a new sales handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// sessionScope pulls the session id and authenticated operator out of
// the request. It aborts and returns false on failure.
func sessionScope(c *gin.Context) (sessionID, operatorID uuid.UUID, ok bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid session id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return sessionID, identity.UserID(), true
}

// CreateCartSession opens a new cart session.
// POST /api/v1/sales/cart-sessions
func (h *Handler) CreateCartSession(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.CreateCartSession(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetCartState returns the session's current state.
// GET /api/v1/sales/cart-sessions/:id
func (h *Handler) GetCartState(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	result, err := h.svc.GetCartState(c.Request.Context(), sessionID, operatorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SelectCategory records the category choice.
// POST /api/v1/sales/cart-sessions/:id/category
func (h *Handler) SelectCategory(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	var req transport.SelectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SelectCategory(c.Request.Context(), sessionID, operatorID, req.CategoryID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SelectSubcategory records the subcategory choice.
// POST /api/v1/sales/cart-sessions/:id/subcategory
func (h *Handler) SelectSubcategory(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	var req transport.SelectSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SelectSubcategory(c.Request.Context(), sessionID, operatorID, req.SubCategory)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SelectProduct chooses a product for the draft line.
// POST /api/v1/sales/cart-sessions/:id/product
func (h *Handler) SelectProduct(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	var req transport.SelectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SelectProduct(c.Request.Context(), sessionID, operatorID, req.ProductID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetQuantity sets the draft quantity.
// PUT /api/v1/sales/cart-sessions/:id/quantity
func (h *Handler) SetQuantity(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	var req transport.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.SetQuantity(c.Request.Context(), sessionID, operatorID, req.Quantity)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ToggleExtra toggles an extra on the draft.
// POST /api/v1/sales/cart-sessions/:id/extras/toggle
func (h *Handler) ToggleExtra(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	var req transport.ToggleExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ToggleExtra(c.Request.Context(), sessionID, operatorID, req.ExtraID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddLineToCart commits the draft as a cart line.
// POST /api/v1/sales/cart-sessions/:id/lines
func (h *Handler) AddLineToCart(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	result, err := h.svc.AddLineToCart(c.Request.Context(), sessionID, operatorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RemoveLine removes the cart line at the given index.
// DELETE /api/v1/sales/cart-sessions/:id/lines
func (h *Handler) RemoveLine(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	var req transport.RemoveLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.RemoveLine(c.Request.Context(), sessionID, operatorID, req.Index)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GoBack reverts one selection step.
// POST /api/v1/sales/cart-sessions/:id/back
func (h *Handler) GoBack(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	result, err := h.svc.GoBack(c.Request.Context(), sessionID, operatorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddAnotherProduct restarts product selection from reviewing.
// POST /api/v1/sales/cart-sessions/:id/new-line
func (h *Handler) AddAnotherProduct(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	result, err := h.svc.AddAnotherProduct(c.Request.Context(), sessionID, operatorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetCustomerName records the customer the sale is for.
// PUT /api/v1/sales/cart-sessions/:id/customer
func (h *Handler) SetCustomerName(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	var req transport.SetCustomerNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SetCustomerName(c.Request.Context(), sessionID, operatorID, req.CustomerName)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SubmitCart persists the cart as a sale.
// POST /api/v1/sales/cart-sessions/:id/submit
func (h *Handler) SubmitCart(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	result, err := h.svc.SubmitCart(c.Request.Context(), sessionID, operatorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// CancelCartSession discards the session.
// DELETE /api/v1/sales/cart-sessions/:id
func (h *Handler) CancelCartSession(c *gin.Context) {
	sessionID, operatorID, ok := sessionScope(c)
	if !ok {
		return
	}

	if err := h.svc.CancelCartSession(c.Request.Context(), sessionID, operatorID); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
