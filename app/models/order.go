package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every fulfilment state, in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

// PaymentStatus is the settlement state of an order, tracked independently
// of the fulfilment state.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentStatuses lists every settlement state.
var PaymentStatuses = []PaymentStatus{
	PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded,
}

// PaymentMethodPayOnDelivery is the only supported payment method;
// settlement is manual and tracked via PaymentStatus.
const PaymentMethodPayOnDelivery = "pay_on_delivery"

// ShippingFee is the flat delivery charge in minor currency units (kobo).
const ShippingFee int64 = 2000

// transitions is the legal fulfilment state machine. delivered and
// cancelled are terminal; once shipped an order can no longer be cancelled.
var transitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// CanTransition reports whether moving from one fulfilment state to
// another is legal. Moving to the current state is treated as a no-op
// and is always allowed.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s names a known fulfilment state.
func ValidOrderStatus(s OrderStatus) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// ValidPaymentStatus reports whether s names a known settlement state.
func ValidPaymentStatus(s PaymentStatus) bool {
	for _, st := range PaymentStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Default shipping address values, applied at order creation for any field
// the buyer leaves blank.
const (
	DefaultShipFullName = "Customer"
	DefaultShipPhone    = "08000000000"
	DefaultShipCity     = "Lagos"
	DefaultShipState    = "Lagos"
	DefaultShipCountry  = "Nigeria"
)

// ShippingAddress is snapshotted onto the order at creation and never
// resynchronised with the user's profile.
type ShippingAddress struct {
	FullName string `gorm:"size:255" json:"full_name"`
	Phone    string `gorm:"size:50"  json:"phone"`
	City     string `gorm:"size:100" json:"city"`
	State    string `gorm:"size:100" json:"state"`
	Country  string `gorm:"size:100" json:"country"`
}

// ApplyDefaults fills blank fields and normalises the phone number.
func (a *ShippingAddress) ApplyDefaults() {
	if strings.TrimSpace(a.FullName) == "" {
		a.FullName = DefaultShipFullName
	}
	a.Phone = NormalizePhone(a.Phone)
	if strings.TrimSpace(a.City) == "" {
		a.City = DefaultShipCity
	}
	if strings.TrimSpace(a.State) == "" {
		a.State = DefaultShipState
	}
	if strings.TrimSpace(a.Country) == "" {
		a.Country = DefaultShipCountry
	}
}

// NormalizePhone strips everything but digits. A phone with no digits at
// all falls back to the default.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultShipPhone
	}
	return b.String()
}

// OrderItem is a product snapshot within an order. Name, image and unit
// price are copied from the product at creation and never updated, so
// historical orders keep their original pricing.
type OrderItem struct {
	gorm.Model
	OrderID   uint   `gorm:"not null;index" json:"order_id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Image     string `gorm:"size:255" json:"image"`
	UnitPrice int64  `gorm:"not null" json:"unit_price"`
	Quantity  int    `gorm:"not null" json:"quantity"`
}

// Order is the central entity of the storefront. Monetary amounts are in
// minor currency units and are always recomputed from the items, never
// trusted from caller input.
type Order struct {
	gorm.Model
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            *User           `json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	PaymentMethod   string          `gorm:"size:50;not null;default:pay_on_delivery" json:"payment_method"`
	PaymentStatus   PaymentStatus   `gorm:"size:20;not null;default:pending" json:"payment_status"`
	OrderStatus     OrderStatus     `gorm:"size:20;not null;default:pending;index" json:"order_status"`
	Subtotal        int64           `gorm:"not null" json:"subtotal"`
	ShippingFee     int64           `gorm:"not null" json:"shipping_fee"`
	TotalAmount     int64           `gorm:"not null" json:"total_amount"`
	TrackingNumber  string          `gorm:"size:100" json:"tracking_number"`
	DeliveredAt     *time.Time      `json:"delivered_at"`
	CancelledAt     *time.Time      `json:"cancelled_at"`
}

// OrderNumber derives the display identifier from the storage id: the
// last 8 hex characters, upper-cased, prefixed "ORD-". It is never stored.
func (o *Order) OrderNumber() string {
	hex := fmt.Sprintf("%016x", uint64(o.ID))
	return "ORD-" + strings.ToUpper(hex[len(hex)-8:])
}

// Terminal reports whether the order has reached a final fulfilment state.
func (o *Order) Terminal() bool {
	return o.OrderStatus == OrderDelivered || o.OrderStatus == OrderCancelled
}
