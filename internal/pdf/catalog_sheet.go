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

// CatalogSheetProduct is one product line on the catalog sheet.
type CatalogSheetProduct struct {
	Name        string
	SubCategory string
	PriceCents  int64
}

// CatalogSheetCategory groups the sheet's products under one category.
type CatalogSheetCategory struct {
	Name     string
	Products []CatalogSheetProduct
}

// CatalogSheetExtra is one sellable extra in the appendix.
type CatalogSheetExtra struct {
	Name       string
	PriceCents int64
}

// CatalogSheetData holds everything needed to render the catalog sheet.
type CatalogSheetData struct {
	BusinessName string
	GeneratedAt  time.Time
	Categories   []CatalogSheetCategory
	Extras       []CatalogSheetExtra
}

// GenerateCatalogSheet renders the product catalog as a printable sheet:
// products grouped by category and subcategory, extras appended.
func GenerateCatalogSheet(data CatalogSheetData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(buildReportFooter(data.BusinessName, data.GeneratedAt)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(buildReportHeader("CATALOGO", data.BusinessName, data.GeneratedAt.Format("02-01-2006"))...)
	m.AddRows(separatorRow(), row.New(6))

	for _, category := range data.Categories {
		m.AddRows(buildCategorySection(category)...)
		m.AddRows(row.New(4))
	}

	if len(data.Extras) > 0 {
		m.AddRows(buildExtrasSection(data.Extras)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func buildCategorySection(category CatalogSheetCategory) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(7).Add(
		col.New(12).Add(text.New(category.Name, props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Color: colorAccent,
		})),
	).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))

	// Keep the catalog's subcategory order, one block per subcategory.
	for _, sub := range subCategoryOrder(category.Products) {
		rows = append(rows, row.New(6).Add(
			col.New(12).Add(text.New(sub, props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorSecondary,
				Top:   1,
			})),
		))

		idx := 0
		for _, product := range category.Products {
			if product.SubCategory != sub {
				continue
			}
			r := row.New(6).Add(
				col.New(9).Add(text.New(product.Name, props.Text{Size: 8, Color: colorPrimary, Top: 1, Left: 3})),
				col.New(3).Add(text.New(formatCurrency(product.PriceCents), props.Text{Size: 8, Color: colorPrimary, Align: align.Right, Top: 1})),
			)
			if idx%2 == 0 {
				r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
			}
			rows = append(rows, r)
			idx++
		}
	}

	return rows
}

func buildExtrasSection(extras []CatalogSheetExtra) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(text.New("EXTRAS", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Color: colorAccent,
			})),
		).WithStyle(&props.Cell{
			BorderType:  border.Bottom,
			BorderColor: colorBorder,
		}),
	}

	for i, extra := range extras {
		r := row.New(6).Add(
			col.New(9).Add(text.New(extra.Name, props.Text{Size: 8, Color: colorPrimary, Top: 1, Left: 3})),
			col.New(3).Add(text.New(formatCurrency(extra.PriceCents), props.Text{Size: 8, Color: colorPrimary, Align: align.Right, Top: 1})),
		)
		if i%2 == 0 {
			r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
		}
		rows = append(rows, r)
	}

	return rows
}

// subCategoryOrder returns the distinct subcategories in first-seen order.
func subCategoryOrder(products []CatalogSheetProduct) []string {
	seen := make(map[string]bool)
	var order []string
	for _, product := range products {
		if !seen[product.SubCategory] {
			seen[product.SubCategory] = true
			order = append(order, product.SubCategory)
		}
	}
	return order
}
