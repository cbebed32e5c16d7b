// Package transport contains report request DTOs.
package transport

// SalesReportRequest asks for the sales report over a date range.
// Both bounds are inclusive calendar days.
type SalesReportRequest struct {
	From string `form:"from" validate:"required,datetime=2006-01-02"`
	To   string `form:"to" validate:"required,datetime=2006-01-02"`
}
