package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{
		UnitPrice: NewMoneyFromDecimal(decimal.RequireFromString("500.00")),
		Quantity:  2,
	}
	if !item.LineTotal().Decimal.Equal(decimal.RequireFromString("1000")) {
		t.Fatalf("expected line total 1000, got %s", item.LineTotal().String())
	}

	item.LineDiscount = NewMoneyFromDecimal(decimal.RequireFromString("150.00"))
	if !item.LineTotal().Decimal.Equal(decimal.RequireFromString("850")) {
		t.Fatalf("expected discounted line total 850, got %s", item.LineTotal().String())
	}
}

func TestOrderItemQtyRemaining(t *testing.T) {
	item := OrderItem{Quantity: 3, QtyReturned: 1}
	if item.QtyRemaining() != 2 {
		t.Fatalf("expected remaining 2, got %d", item.QtyRemaining())
	}
	if item.IsFullyReturned() {
		t.Fatalf("expected not fully returned")
	}

	item.QtyReturned = 5
	if item.QtyRemaining() != 0 {
		t.Fatalf("over-returned remaining should clamp to 0, got %d", item.QtyRemaining())
	}
	if !item.IsFullyReturned() {
		t.Fatalf("expected fully returned")
	}
}
