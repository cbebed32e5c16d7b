// Package pdf renders the admin panel's printable reports using maroto/v2:
// a sales report over a date range and a product catalog sheet.
package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Colour palette ──────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorAccent    = &props.Color{Red: 37, Green: 99, Blue: 235}   // blue-600
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249} // slate-100
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251} // gray-50
	colorGreen     = &props.Color{Red: 22, Green: 163, Blue: 74}   // green-600
	colorRed       = &props.Color{Red: 220, Green: 38, Blue: 38}   // red-600
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240} // slate-200
)

// ── Data structs ────────────────────────────────────────────────────────

// SalesReportItem is one product line within a reported sale.
type SalesReportItem struct {
	Name          string
	Quantity      int
	SubtotalCents int64
}

// SalesReportSale is one sale row with its snapshotted lines.
type SalesReportSale struct {
	Number       int
	CustomerName string
	Status       string
	CreatedAt    time.Time
	TotalCents   int64
	Items        []SalesReportItem
}

// SalesReportData holds everything needed to render a sales report.
type SalesReportData struct {
	BusinessName string
	From         time.Time
	To           time.Time
	GeneratedAt  time.Time
	Sales        []SalesReportSale

	// Grand totals across the period. Cancelled sales are listed but
	// excluded from the revenue total.
	SaleCount      int
	RevenueCents   int64
	CancelledCount int
}

// GenerateSalesReport renders the date-range sales report.
func GenerateSalesReport(data SalesReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(buildReportFooter(data.BusinessName, data.GeneratedAt)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(buildReportHeader("REPORTE DE VENTAS", data.BusinessName, periodLabel(data.From, data.To))...)
	m.AddRows(separatorRow(), row.New(6))

	m.AddRows(buildSalesTable(data.Sales)...)
	m.AddRows(row.New(4))
	m.AddRows(buildSalesTotals(data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sales table ─────────────────────────────────────────────────────────

func buildSalesTable(sales []SalesReportSale) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(7).Add(
		col.New(12).Add(text.New("VENTAS", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Color: colorAccent,
		})),
	))

	headerStyle := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerStyleRight := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}

	rows = append(rows, row.New(7).Add(
		col.New(1).Add(text.New("#", headerStyle)),
		col.New(3).Add(text.New("Cliente", headerStyle)),
		col.New(4).Add(text.New("Productos", headerStyle)),
		col.New(2).Add(text.New("Estado", headerStyle)),
		col.New(2).Add(text.New("Total", headerStyleRight)),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	}))

	if len(sales) == 0 {
		rows = append(rows, row.New(8).Add(
			col.New(12).Add(text.New("Sin ventas en el periodo.", props.Text{
				Size:  8,
				Color: colorSecondary,
				Top:   2,
			})),
		))
		return rows
	}

	for i, sale := range sales {
		rows = append(rows, buildSaleRow(sale, i))
	}
	return rows
}

func buildSaleRow(sale SalesReportSale, idx int) core.Row {
	textColor := colorPrimary
	if sale.Status == "cancelled" {
		textColor = &props.Color{Red: 160, Green: 160, Blue: 160}
	}

	normalStyle := props.Text{Size: 8, Color: textColor, Top: 1}
	rightStyle := props.Text{Size: 8, Color: textColor, Align: align.Right, Top: 1}

	// One line per product, wrapped inside a single cell.
	itemsLabel := ""
	for i, item := range sale.Items {
		if i > 0 {
			itemsLabel += ", "
		}
		itemsLabel += fmt.Sprintf("%dx %s", item.Quantity, item.Name)
	}

	height := float64(7)
	if len(itemsLabel) > 60 {
		height = 11
	}

	r := row.New(height).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", sale.Number), normalStyle)),
		col.New(3).Add(text.New(sale.CustomerName, normalStyle)),
		col.New(4).Add(text.New(itemsLabel, normalStyle)),
		col.New(2).Add(text.New(statusLabel(sale.Status), props.Text{Size: 8, Color: statusColor(sale.Status), Top: 1})),
		col.New(2).Add(text.New(formatCurrency(sale.TotalCents), rightStyle)),
	)

	if idx%2 == 0 {
		r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
	}
	return r
}

// ── Totals ──────────────────────────────────────────────────────────────

func buildSalesTotals(data SalesReportData) []core.Row {
	var rows []core.Row

	rows = append(rows, separatorRow(), row.New(3))

	labelStyle := props.Text{Size: 9, Color: colorSecondary, Align: align.Right}
	valueStyle := props.Text{Size: 9, Color: colorPrimary, Align: align.Right}

	rows = append(rows, row.New(6).Add(
		col.New(9).Add(text.New("Ventas", labelStyle)),
		col.New(3).Add(text.New(fmt.Sprintf("%d", data.SaleCount), valueStyle)),
	))
	if data.CancelledCount > 0 {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New("Canceladas", labelStyle)),
			col.New(3).Add(text.New(fmt.Sprintf("%d", data.CancelledCount), props.Text{
				Size:  9,
				Color: colorRed,
				Align: align.Right,
			})),
		))
	}

	rows = append(rows, row.New(2))
	rows = append(rows, row.New(10).Add(
		col.New(9).Add(text.New("INGRESOS", props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
		col.New(3).Add(text.New(formatCurrency(data.RevenueCents), props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Top | border.Bottom,
		BorderColor:     colorBorder,
	}))

	return rows
}

// ── Shared layout helpers ───────────────────────────────────────────────

func buildReportHeader(title, businessName, subtitle string) []core.Row {
	return []core.Row{
		row.New(20).Add(
			col.New(4).Add(
				text.New(businessName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Color: colorPrimary,
					Top:   4,
				}),
			),
			col.New(8).Add(
				text.New(title, props.Text{
					Size:  20,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: colorAccent,
				}),
				text.New(subtitle, props.Text{
					Size:  10,
					Align: align.Right,
					Color: colorSecondary,
					Top:   11,
				}),
			),
		),
	}
}

func buildReportFooter(businessName string, generatedAt time.Time) core.Row {
	footerText := fmt.Sprintf("%s  ·  Generado: %s", businessName, generatedAt.Format("02-01-2006 15:04"))
	return row.New(10).Add(
		col.New(12).Add(
			text.New(footerText, props.Text{
				Size:  6.5,
				Color: colorSecondary,
				Align: align.Center,
				Top:   4,
			}),
		),
	).WithStyle(&props.Cell{
		BorderType:  border.Top,
		BorderColor: colorBorder,
	})
}

func separatorRow() core.Row {
	return row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	})
}

func periodLabel(from, to time.Time) string {
	// to is an exclusive bound; display the last included day.
	last := to.AddDate(0, 0, -1)
	if last.Equal(from) || last.Before(from) {
		return from.Format("02-01-2006")
	}
	return from.Format("02-01-2006") + " — " + last.Format("02-01-2006")
}

func statusColor(status string) *props.Color {
	switch status {
	case "paid":
		return colorGreen
	case "cancelled":
		return colorRed
	default:
		return colorSecondary
	}
}

func statusLabel(status string) string {
	switch status {
	case "pending":
		return "Pendiente"
	case "paid":
		return "Pagada"
	case "cancelled":
		return "Cancelada"
	default:
		return status
	}
}

func formatCurrency(cents int64) string {
	return fmt.Sprintf("$ %.2f", float64(cents)/100.0)
}
