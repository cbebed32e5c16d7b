package transport

import "github.com/google/uuid"

// Cart session requests

type SelectCategoryRequest struct {
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
}

type SelectSubcategoryRequest struct {
	SubCategory string `json:"subCategory" validate:"required,min=1,max=100"`
}

type SelectProductRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type ToggleExtraRequest struct {
	ExtraID uuid.UUID `json:"extraId" validate:"required"`
}

type RemoveLineRequest struct {
	Index int `json:"index" validate:"min=0"`
}

type SetCustomerNameRequest struct {
	CustomerName string `json:"customerName" validate:"required,min=1,max=200"`
}

// Cart session state

// CartCategory is a selectable category in the session's catalog snapshot.
type CartCategory struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	SubCategories []string  `json:"subCategories"`
}

// CartProduct is a selectable product under the current subcategory.
type CartProduct struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
}

// CartExtra is a selectable add-on from the session's snapshot.
type CartExtra struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
}

// CartDraft is the product configuration in progress.
type CartDraft struct {
	Product       CartProduct `json:"product"`
	Quantity      int         `json:"quantity"`
	ExtraIDs      []uuid.UUID `json:"extraIds"`
	SubtotalCents int64       `json:"subtotalCents"`
}

// CartLine is a committed line with its frozen subtotal.
type CartLine struct {
	ProductID      uuid.UUID   `json:"productId"`
	Name           string      `json:"name"`
	UnitPriceCents int64       `json:"unitPriceCents"`
	Quantity       int         `json:"quantity"`
	ExtraIDs       []uuid.UUID `json:"extraIds"`
	SubtotalCents  int64       `json:"subtotalCents"`
}

// CartStateResponse is the full session state returned after every
// cart operation.
type CartStateResponse struct {
	SessionID         uuid.UUID      `json:"sessionId"`
	Step              string         `json:"step"`
	Categories        []CartCategory `json:"categories"`
	SelectedCategory  *CartCategory  `json:"selectedCategory,omitempty"`
	SelectedSub       string         `json:"selectedSubCategory,omitempty"`
	AvailableProducts []CartProduct  `json:"availableProducts,omitempty"`
	Extras            []CartExtra    `json:"extras"`
	Draft             *CartDraft     `json:"draft,omitempty"`
	CustomerName      string         `json:"customerName"`
	Lines             []CartLine     `json:"lines"`
	TotalCents        int64          `json:"totalCents"`
}

// SubmitCartResponse carries the id of the persisted sale.
type SubmitCartResponse struct {
	SaleID uuid.UUID `json:"saleId"`
}

// Sales management

type ListSalesRequest struct {
	Search    string `form:"search" validate:"max=100"`
	Status    string `form:"status" validate:"omitempty,oneof=pending paid cancelled"`
	From      string `form:"from" validate:"omitempty,max=50"`
	To        string `form:"to" validate:"omitempty,max=50"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=customerName totalCents status createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid cancelled"`
}

type SaleItemResponse struct {
	ID             uuid.UUID   `json:"id"`
	ProductID      uuid.UUID   `json:"productId"`
	Name           string      `json:"name"`
	UnitPriceCents int64       `json:"unitPriceCents"`
	Quantity       int         `json:"quantity"`
	ExtraIDs       []uuid.UUID `json:"extraIds"`
	SubtotalCents  int64       `json:"subtotalCents"`
}

type SaleResponse struct {
	ID           uuid.UUID          `json:"id"`
	CustomerName string             `json:"customerName"`
	TotalCents   int64              `json:"totalCents"`
	Status       string             `json:"status"`
	SubmittedBy  uuid.UUID          `json:"submittedBy"`
	CreatedAt    string             `json:"createdAt"`
	UpdatedAt    string             `json:"updatedAt"`
	Items        []SaleItemResponse `json:"items,omitempty"`
}

type SaleListResponse struct {
	Items      []SaleResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
