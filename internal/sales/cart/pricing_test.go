package cart

import (
	"testing"

	"github.com/google/uuid"
)

func TestLineSubtotal_UnitPlusExtrasTimesQuantity(t *testing.T) {
	// 50.00 unit, extras 5.00 and 2.50, quantity 3 -> 172.50
	extraA := uuid.New()
	extraB := uuid.New()
	catalog := Catalog{Extras: []Extra{
		{ID: extraA, Name: "Cheese", PriceCents: 500},
		{ID: extraB, Name: "Bacon", PriceCents: 250},
	}}

	extras := ExtrasUnitPrice(catalog, []uuid.UUID{extraA, extraB})
	if extras != 750 {
		t.Fatalf("extras unit price = %d, want 750", extras)
	}
	if got := LineSubtotal(5000, extras, 3); got != 17250 {
		t.Fatalf("subtotal = %d, want 17250", got)
	}
}

func TestExtrasUnitPrice_UnknownIDContributesZero(t *testing.T) {
	known := uuid.New()
	catalog := Catalog{Extras: []Extra{{ID: known, PriceCents: 300}}}

	got := ExtrasUnitPrice(catalog, []uuid.UUID{known, uuid.New()})
	if got != 300 {
		t.Fatalf("extras unit price = %d, want 300", got)
	}
}

func TestCartTotal_SumsLineSubtotals(t *testing.T) {
	lines := []LineItem{
		{SubtotalCents: 11000},
		{SubtotalCents: 17250},
		{SubtotalCents: 300},
	}
	if got := CartTotal(lines); got != 28550 {
		t.Fatalf("total = %d, want 28550", got)
	}
	if got := CartTotal(nil); got != 0 {
		t.Fatalf("empty cart total = %d, want 0", got)
	}
}

func TestCartTotal_OrderIndependent(t *testing.T) {
	a := LineItem{SubtotalCents: 1234}
	b := LineItem{SubtotalCents: 5678}
	c := LineItem{SubtotalCents: 91}

	if CartTotal([]LineItem{a, b, c}) != CartTotal([]LineItem{c, a, b}) {
		t.Fatal("cart total depends on line order")
	}
}
