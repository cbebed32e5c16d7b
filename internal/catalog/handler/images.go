package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pos_admin_backend/internal/catalog/transport"
	"pos_admin_backend/platform/httpkit"
)

// PresignProductImage returns a presigned upload URL for a product image.
// POST /api/v1/admin/catalog/products/:id/images/presign
func (h *Handler) PresignProductImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.PresignProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.images.PresignUpload(c.Request.Context(), productID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateProductImage records a completed image upload.
// POST /api/v1/admin/catalog/products/:id/images
func (h *Handler) CreateProductImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.CreateProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.images.Register(c.Request.Context(), productID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListProductImages lists images attached to a product.
// GET /api/v1/catalog/products/:id/images
func (h *Handler) ListProductImages(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.images.List(c.Request.Context(), productID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetProductImageDownloadURL returns a presigned download URL for an image.
// GET /api/v1/catalog/products/:id/images/:imageId/download
func (h *Handler) GetProductImageDownloadURL(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.images.PresignDownload(c.Request.Context(), productID, imageID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteProductImage removes a product image.
// DELETE /api/v1/admin/catalog/products/:id/images/:imageId
func (h *Handler) DeleteProductImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.images.Delete(c.Request.Context(), productID, imageID); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
