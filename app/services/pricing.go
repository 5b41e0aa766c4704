package services

import "github.com/favourfurniture/storefront/app/models"

// Totals is the priced summary of an order, in minor currency units.
type Totals struct {
	Subtotal    int64
	ShippingFee int64
	TotalAmount int64
}

// ComputeTotals prices a set of order items: subtotal is the sum of
// unit price times quantity, total is subtotal plus the shipping fee.
// It is pure and is re-run on every persistence of an order so stored
// totals can never drift from the items.
func ComputeTotals(items []models.OrderItem, shippingFee int64) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		TotalAmount: subtotal + shippingFee,
	}
}
