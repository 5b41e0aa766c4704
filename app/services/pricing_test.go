package services_test

import (
	"testing"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/services"
)

func TestComputeTotals(t *testing.T) {
	items := []models.OrderItem{
		{UnitPrice: 15000, Quantity: 2},
	}

	totals := services.ComputeTotals(items, 2000)
	if totals.Subtotal != 30000 {
		t.Errorf("subtotal = %d, want 30000", totals.Subtotal)
	}
	if totals.TotalAmount != 32000 {
		t.Errorf("total = %d, want 32000", totals.TotalAmount)
	}
}

func TestComputeTotalsMultipleItems(t *testing.T) {
	items := []models.OrderItem{
		{UnitPrice: 1000, Quantity: 3},
		{UnitPrice: 250, Quantity: 4},
	}

	totals := services.ComputeTotals(items, models.ShippingFee)
	if totals.Subtotal != 4000 {
		t.Errorf("subtotal = %d, want 4000", totals.Subtotal)
	}
	if totals.TotalAmount != totals.Subtotal+models.ShippingFee {
		t.Errorf("total = %d, want subtotal+fee", totals.TotalAmount)
	}
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals := services.ComputeTotals(nil, 2000)
	if totals.Subtotal != 0 {
		t.Errorf("subtotal = %d, want 0", totals.Subtotal)
	}
	if totals.TotalAmount != 2000 {
		t.Errorf("total = %d, want 2000", totals.TotalAmount)
	}
}
