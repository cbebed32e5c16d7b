package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pos_admin_backend/platform/apperr"
)

const saleNotFoundMessage = "sale not found"

// Repo implements the sales repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sales repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateSale writes the sale and its items in one transaction.
func (r *Repo) CreateSale(ctx context.Context, params CreateSaleParams) (Sale, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Sale{}, fmt.Errorf("begin sale transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	saleQuery := `
		INSERT INTO sales (customer_name, total_cents, status, submitted_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, customer_name, total_cents, status, submitted_by, created_at, updated_at`

	var sale Sale
	var createdAt, updatedAt time.Time
	if err := tx.QueryRow(ctx, saleQuery,
		params.CustomerName, params.TotalCents, StatusPending, params.SubmittedBy,
	).Scan(
		&sale.ID, &sale.CustomerName, &sale.TotalCents, &sale.Status, &sale.SubmittedBy,
		&createdAt, &updatedAt,
	); err != nil {
		return Sale{}, fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, product_id, name, unit_price_cents, quantity, extra_ids, subtotal_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, item := range params.Items {
		if _, err := tx.Exec(ctx, itemQuery,
			sale.ID, item.ProductID, item.Name, item.UnitPriceCents, item.Quantity, item.ExtraIDs, item.SubtotalCents,
		); err != nil {
			return Sale{}, fmt.Errorf("insert sale item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Sale{}, fmt.Errorf("commit sale: %w", err)
	}

	sale.CreatedAt = createdAt.Format(time.RFC3339)
	sale.UpdatedAt = updatedAt.Format(time.RFC3339)
	return sale, nil
}

// GetSaleByID retrieves a sale with its items.
func (r *Repo) GetSaleByID(ctx context.Context, id uuid.UUID) (Sale, []SaleItem, error) {
	query := `
		SELECT id, customer_name, total_cents, status, submitted_by, created_at, updated_at
		FROM sales
		WHERE id = $1`

	var sale Sale
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sale.ID, &sale.CustomerName, &sale.TotalCents, &sale.Status, &sale.SubmittedBy,
		&createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sale{}, nil, apperr.NotFound(saleNotFoundMessage)
		}
		return Sale{}, nil, fmt.Errorf("get sale by id: %w", err)
	}
	sale.CreatedAt = createdAt.Format(time.RFC3339)
	sale.UpdatedAt = updatedAt.Format(time.RFC3339)

	items, err := r.listItems(ctx, []uuid.UUID{id})
	if err != nil {
		return Sale{}, nil, err
	}

	return sale, items, nil
}

func (r *Repo) listItems(ctx context.Context, saleIDs []uuid.UUID) ([]SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, name, unit_price_cents, quantity, extra_ids, subtotal_cents
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	items := make([]SaleItem, 0)
	for rows.Next() {
		var item SaleItem
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.Name, &item.UnitPriceCents,
			&item.Quantity, &item.ExtraIDs, &item.SubtotalCents,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate sale items: %w", rows.Err())
	}

	return items, nil
}

// ListSales lists sales with filters and pagination.
func (r *Repo) ListSales(ctx context.Context, params ListSalesParams) ([]Sale, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("customer_name ILIKE $%d", argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}

	if params.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("created_at < $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sales WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	sortColumn := "created_at"
	switch params.SortBy {
	case "customerName":
		sortColumn = "customer_name"
	case "totalCents":
		sortColumn = "total_cents"
	case "status":
		sortColumn = "status"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, customer_name, total_cents, status, submitted_by, created_at, updated_at
		FROM sales
		WHERE %s
		ORDER BY %s %s, created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	items := make([]Sale, 0)
	for rows.Next() {
		var sale Sale
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&sale.ID, &sale.CustomerName, &sale.TotalCents, &sale.Status, &sale.SubmittedBy,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		sale.CreatedAt = createdAt.Format(time.RFC3339)
		sale.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, sale)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate sales: %w", rows.Err())
	}

	return items, total, nil
}

// ListSalesBetween retrieves the sales created in [from, to) with their
// items, oldest first, for report generation.
func (r *Repo) ListSalesBetween(ctx context.Context, from, to time.Time) ([]Sale, []SaleItem, error) {
	query := `
		SELECT id, customer_name, total_cents, status, submitted_by, created_at, updated_at
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("list sales between: %w", err)
	}
	defer rows.Close()

	sales := make([]Sale, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var sale Sale
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&sale.ID, &sale.CustomerName, &sale.TotalCents, &sale.Status, &sale.SubmittedBy,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("scan sale: %w", err)
		}
		sale.CreatedAt = createdAt.Format(time.RFC3339)
		sale.UpdatedAt = updatedAt.Format(time.RFC3339)
		sales = append(sales, sale)
		ids = append(ids, sale.ID)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("iterate sales: %w", rows.Err())
	}

	if len(ids) == 0 {
		return sales, nil, nil
	}

	items, err := r.listItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	return sales, items, nil
}

// UpdateSaleStatus sets a sale's status.
func (r *Repo) UpdateSaleStatus(ctx context.Context, id uuid.UUID, status string) (Sale, error) {
	query := `
		UPDATE sales
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, customer_name, total_cents, status, submitted_by, created_at, updated_at`

	var sale Sale
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, status).Scan(
		&sale.ID, &sale.CustomerName, &sale.TotalCents, &sale.Status, &sale.SubmittedBy,
		&createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sale{}, apperr.NotFound(saleNotFoundMessage)
		}
		return Sale{}, fmt.Errorf("update sale status: %w", err)
	}

	sale.CreatedAt = createdAt.Format(time.RFC3339)
	sale.UpdatedAt = updatedAt.Format(time.RFC3339)
	return sale, nil
}

// DeleteSale deletes a sale; items cascade.
func (r *Repo) DeleteSale(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(saleNotFoundMessage)
	}
	return nil
}
