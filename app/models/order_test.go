package models_test

import (
	"strings"
	"testing"

	"github.com/favourfurniture/storefront/app/models"
)

func TestOrderNumber(t *testing.T) {
	order := models.Order{}
	order.ID = 1
	got := order.OrderNumber()
	if got != "ORD-00000001" {
		t.Errorf("OrderNumber() = %q, want ORD-00000001", got)
	}

	// Deterministic: same id always yields the same number.
	again := models.Order{}
	again.ID = 1
	if again.OrderNumber() != got {
		t.Error("same id produced different order numbers")
	}

	order.ID = 0xABCDEF12
	got = order.OrderNumber()
	if got != "ORD-ABCDEF12" {
		t.Errorf("OrderNumber() = %q, want ORD-ABCDEF12", got)
	}
	if !strings.HasPrefix(got, "ORD-") || len(got) != 12 {
		t.Errorf("OrderNumber() = %q, want ORD- prefix and 8 hex chars", got)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.OrderPending, models.OrderProcessing, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderPending, models.OrderShipped, false},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderProcessing, models.OrderShipped, true},
		{models.OrderProcessing, models.OrderCancelled, true},
		{models.OrderProcessing, models.OrderDelivered, false},
		{models.OrderShipped, models.OrderDelivered, true},
		{models.OrderShipped, models.OrderCancelled, false},
		{models.OrderShipped, models.OrderPending, false},
		{models.OrderDelivered, models.OrderPending, false},
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderPending, false},
		{models.OrderCancelled, models.OrderProcessing, false},
		// Re-requesting the current state is an idempotent no-op.
		{models.OrderDelivered, models.OrderDelivered, true},
		{models.OrderPending, models.OrderPending, true},
	}

	for _, c := range cases {
		if got := models.CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"080-123 abc 4567", "0801234567"},
		{"0801234567", "0801234567"},
		{"+234 801 234 5678", "2348012345678"},
		{"abc", models.DefaultShipPhone},
		{"", models.DefaultShipPhone},
	}
	for _, c := range cases {
		if got := models.NormalizePhone(c.in); got != c.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestShippingAddressDefaults(t *testing.T) {
	var addr models.ShippingAddress
	addr.ApplyDefaults()

	if addr.FullName != "Customer" {
		t.Errorf("FullName = %q, want Customer", addr.FullName)
	}
	if addr.Phone != "08000000000" {
		t.Errorf("Phone = %q, want 08000000000", addr.Phone)
	}
	if addr.City != "Lagos" || addr.State != "Lagos" {
		t.Errorf("City/State = %q/%q, want Lagos/Lagos", addr.City, addr.State)
	}
	if addr.Country != "Nigeria" {
		t.Errorf("Country = %q, want Nigeria", addr.Country)
	}

	// Provided fields survive.
	addr = models.ShippingAddress{
		FullName: "Ada Obi",
		Phone:    "090 1111 2222",
		City:     "Abuja",
		State:    "FCT",
		Country:  "Nigeria",
	}
	addr.ApplyDefaults()
	if addr.FullName != "Ada Obi" || addr.Phone != "09011112222" || addr.City != "Abuja" {
		t.Errorf("unexpected defaults applied: %+v", addr)
	}
}
