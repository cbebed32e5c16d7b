package cart

import "github.com/google/uuid"

// ExtrasUnitPrice sums the prices of the given extras, resolved against
// the catalog snapshot. An id with no match contributes zero: committed
// lines are already isolated from catalog drift by price snapshotting,
// so a stale extra id is priced permissively rather than failing the line.
func ExtrasUnitPrice(catalog Catalog, extraIDs []uuid.UUID) int64 {
	var total int64
	for _, id := range extraIDs {
		if extra, ok := catalog.ExtraByID(id); ok {
			total += extra.PriceCents
		}
	}
	return total
}

// LineSubtotal computes (unit price + extras unit price) * quantity.
func LineSubtotal(unitPriceCents, extrasUnitCents int64, quantity int) int64 {
	return (unitPriceCents + extrasUnitCents) * int64(quantity)
}

// CartTotal sums line subtotals. The total is always derived from the
// lines, never stored independently.
func CartTotal(lines []LineItem) int64 {
	var total int64
	for _, line := range lines {
		total += line.SubtotalCents
	}
	return total
}
