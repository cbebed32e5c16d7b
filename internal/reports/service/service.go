// Package service builds the printable PDF reports from sales history
// and the current catalog.
package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pos_admin_backend/internal/adapters/storage"
	"pos_admin_backend/internal/events"
	"pos_admin_backend/internal/pdf"
	"pos_admin_backend/internal/sales/cart"
	"pos_admin_backend/internal/sales/repository"
	"pos_admin_backend/platform/apperr"
	"pos_admin_backend/platform/logger"
)

// SalesSource supplies the sales history a report covers. Implemented
// by the sales repository.
type SalesSource interface {
	ListSalesBetween(ctx context.Context, from, to time.Time) ([]repository.Sale, []repository.SaleItem, error)
}

// CatalogSource supplies the catalog snapshot for the catalog sheet.
// Implemented by the catalog service.
type CatalogSource interface {
	Snapshot(ctx context.Context) (cart.Catalog, error)
}

// Service provides business logic for report generation.
type Service struct {
	sales        SalesSource
	catalog      CatalogSource
	storage      storage.StorageService
	bucket       string
	businessName string
	bus          events.Bus
	log          *logger.Logger
}

// New creates a new reports service. storage may be nil when object
// storage is not configured; only report archiving needs it.
func New(sales SalesSource, catalog CatalogSource, store storage.StorageService, bucket, businessName string, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		sales:        sales,
		catalog:      catalog,
		storage:      store,
		bucket:       bucket,
		businessName: businessName,
		bus:          bus,
		log:          log,
	}
}

// SalesReport renders the sales report for [from, to). to is exclusive.
func (s *Service) SalesReport(ctx context.Context, from, to time.Time) ([]byte, error) {
	if !to.After(from) {
		return nil, apperr.Validation("report range must end after it starts")
	}

	data, err := s.buildSalesReportData(ctx, from, to)
	if err != nil {
		return nil, err
	}

	doc, err := pdf.GenerateSalesReport(data)
	if err != nil {
		return nil, fmt.Errorf("render sales report: %w", err)
	}
	return doc, nil
}

// CatalogSheet renders the current catalog as a printable sheet.
func (s *Service) CatalogSheet(ctx context.Context) ([]byte, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := pdf.GenerateCatalogSheet(s.buildCatalogSheetData(snapshot))
	if err != nil {
		return nil, fmt.Errorf("render catalog sheet: %w", err)
	}
	return doc, nil
}

// buildCatalogSheetData groups the snapshot's flat product list under its
// categories, keeping catalog order within each one.
func (s *Service) buildCatalogSheetData(snapshot cart.Catalog) pdf.CatalogSheetData {
	productsByCategory := make(map[uuid.UUID][]pdf.CatalogSheetProduct, len(snapshot.Categories))
	for _, product := range snapshot.Products {
		productsByCategory[product.CategoryID] = append(productsByCategory[product.CategoryID], pdf.CatalogSheetProduct{
			Name:        product.Name,
			SubCategory: product.SubCategory,
			PriceCents:  product.PriceCents,
		})
	}

	data := pdf.CatalogSheetData{
		BusinessName: s.businessName,
		GeneratedAt:  time.Now(),
		Categories:   make([]pdf.CatalogSheetCategory, len(snapshot.Categories)),
		Extras:       make([]pdf.CatalogSheetExtra, len(snapshot.Extras)),
	}
	for i, category := range snapshot.Categories {
		data.Categories[i] = pdf.CatalogSheetCategory{
			Name:     category.Name,
			Products: productsByCategory[category.ID],
		}
	}
	for i, extra := range snapshot.Extras {
		data.Extras[i] = pdf.CatalogSheetExtra{Name: extra.Name, PriceCents: extra.PriceCents}
	}
	return data
}

// GenerateDailySalesReport renders the report for the given calendar day,
// archives it in the reports bucket and publishes the completion event.
// Used by the scheduled nightly task.
func (s *Service) GenerateDailySalesReport(ctx context.Context, day time.Time) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("daily report: object storage is not configured")
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	data, err := s.buildSalesReportData(ctx, from, to)
	if err != nil {
		return "", err
	}

	doc, err := pdf.GenerateSalesReport(data)
	if err != nil {
		return "", fmt.Errorf("render daily report: %w", err)
	}

	fileName := fmt.Sprintf("sales-%s.pdf", from.Format("2006-01-02"))
	fileKey, err := s.storage.UploadFile(ctx, s.bucket, "daily", fileName, "application/pdf", bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return "", fmt.Errorf("archive daily report: %w", err)
	}

	s.log.Info("daily sales report generated",
		"date", from.Format("2006-01-02"),
		"fileKey", fileKey,
		"sales", data.SaleCount,
		"revenueCents", data.RevenueCents,
	)
	s.bus.Publish(ctx, events.DailySalesReportGenerated{
		BaseEvent:  events.NewBaseEvent(),
		ReportDate: from,
		FileKey:    fileKey,
		SaleCount:  data.SaleCount,
		TotalCents: data.RevenueCents,
	})
	return fileKey, nil
}

func (s *Service) buildSalesReportData(ctx context.Context, from, to time.Time) (pdf.SalesReportData, error) {
	sales, items, err := s.sales.ListSalesBetween(ctx, from, to)
	if err != nil {
		return pdf.SalesReportData{}, err
	}

	itemsBySale := make(map[string][]pdf.SalesReportItem)
	for _, item := range items {
		itemsBySale[item.SaleID.String()] = append(itemsBySale[item.SaleID.String()], pdf.SalesReportItem{
			Name:          item.Name,
			Quantity:      item.Quantity,
			SubtotalCents: item.SubtotalCents,
		})
	}

	data := pdf.SalesReportData{
		BusinessName: s.businessName,
		From:         from,
		To:           to,
		GeneratedAt:  time.Now(),
		Sales:        make([]pdf.SalesReportSale, len(sales)),
	}
	for i, sale := range sales {
		createdAt, _ := time.Parse(time.RFC3339, sale.CreatedAt)
		data.Sales[i] = pdf.SalesReportSale{
			Number:       i + 1,
			CustomerName: sale.CustomerName,
			Status:       sale.Status,
			CreatedAt:    createdAt,
			TotalCents:   sale.TotalCents,
			Items:        itemsBySale[sale.ID.String()],
		}
		data.SaleCount++
		if sale.Status == repository.StatusCancelled {
			data.CancelledCount++
		} else {
			data.RevenueCents += sale.TotalCents
		}
	}
	return data, nil
}
