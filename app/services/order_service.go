package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/repositories"
	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/event"
	"github.com/favourfurniture/storefront/pkg/logger"
	"github.com/favourfurniture/storefront/pkg/metrics"
)

// OrderService owns the order lifecycle: creation, fulfilment and payment
// transitions, cancellation, and deletion. All monetary amounts are
// recomputed from the item snapshots on every write.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
	}
}

// CreateOrderInput is the checkout request contract. Shipping fields are
// optional; blanks fall back to the account defaults.
type CreateOrderInput struct {
	ProductID uint   `json:"product_id" validate:"required,numeric"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	FullName  string `json:"full_name" validate:"nullable,max=255"`
	Phone     string `json:"phone" validate:"nullable,max=50"`
	City      string `json:"city" validate:"nullable,max=100"`
	State     string `json:"state" validate:"nullable,max=100"`
	Country   string `json:"country" validate:"nullable,max=100"`
}

// Create places an order for a single product. The product's current
// name, image and price are snapshotted into the order item so later
// catalogue changes never alter the order.
func (s *OrderService) Create(buyerID uint, in CreateOrderInput) (models.Order, error) {
	if in.Quantity < 1 {
		return models.Order{}, ErrInvalidInput
	}

	product, err := s.products.FindByID(in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		logger.Error("order: product lookup failed", "product_id", in.ProductID, "error", err)
		return models.Order{}, ErrUnavailable
	}

	image := product.Image
	if image == "" {
		image = models.DefaultProductImage
	}

	items := []models.OrderItem{{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     image,
		UnitPrice: product.Price,
		Quantity:  in.Quantity,
	}}

	address := models.ShippingAddress{
		FullName: in.FullName,
		Phone:    in.Phone,
		City:     in.City,
		State:    in.State,
		Country:  in.Country,
	}
	address.ApplyDefaults()

	totals := ComputeTotals(items, models.ShippingFee)

	order := models.Order{
		UserID:          buyerID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   models.PaymentMethodPayOnDelivery,
		PaymentStatus:   models.PaymentPending,
		OrderStatus:     models.OrderPending,
		Subtotal:        totals.Subtotal,
		ShippingFee:     totals.ShippingFee,
		TotalAmount:     totals.TotalAmount,
	}

	if err := s.orders.Create(&order); err != nil {
		logger.Error("order: create failed", "error", err)
		return models.Order{}, ErrUnavailable
	}

	metrics.OrdersCreated.Inc()
	event.Fire(event.OrderCreated, &order)
	logger.Info("order placed",
		"order_id", order.ID,
		"order_number", order.OrderNumber(),
		"user_id", buyerID,
		"total", order.TotalAmount,
	)
	return order, nil
}

// UpdateStatus moves an order through the fulfilment state machine.
// Requesting the current status is an idempotent no-op that still stores
// a supplied tracking number; illegal transitions are rejected.
func (s *OrderService) UpdateStatus(orderID uint, requested models.OrderStatus, trackingNumber string) (models.Order, error) {
	if !models.ValidOrderStatus(requested) {
		return models.Order{}, ErrInvalidInput
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, ErrUnavailable
	}

	if !models.CanTransition(order.OrderStatus, requested) {
		return models.Order{}, ErrInvalidTransition
	}

	now := time.Now()
	fields := map[string]interface{}{"order_status": requested}
	if trackingNumber != "" {
		fields["tracking_number"] = trackingNumber
	}

	// Milestone timestamps are set exactly once; repeating a terminal
	// status must not move them.
	switch requested {
	case models.OrderDelivered:
		if order.DeliveredAt == nil {
			fields["delivered_at"] = now
		}
		// Pay-on-delivery settles at the door, unless reconciliation
		// already marked the payment failed or refunded.
		if order.PaymentStatus != models.PaymentFailed && order.PaymentStatus != models.PaymentRefunded {
			fields["payment_status"] = models.PaymentPaid
		}
	case models.OrderCancelled:
		if order.CancelledAt == nil {
			fields["cancelled_at"] = now
		}
	}

	// Totals are derived state; re-assert them on every write so they can
	// never drift from the item snapshots.
	totals := ComputeTotals(order.Items, order.ShippingFee)
	fields["subtotal"] = totals.Subtotal
	fields["total_amount"] = totals.TotalAmount

	rows, err := s.orders.UpdateWhereStatus(orderID, order.OrderStatus, fields)
	if err != nil {
		logger.Error("order: status update failed", "order_id", orderID, "error", err)
		return models.Order{}, ErrUnavailable
	}
	if rows == 0 {
		// A concurrent update moved the order first.
		return models.Order{}, ErrInvalidTransition
	}

	if order.OrderStatus != requested {
		metrics.OrderTransitions.WithLabelValues(string(order.OrderStatus), string(requested)).Inc()
	}

	updated, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, ErrUnavailable
	}

	event.Fire(event.OrderStatusUpdated, &updated)
	if requested == models.OrderCancelled {
		event.Fire(event.OrderCancelled, &updated)
	}
	logger.Info("order status updated",
		"order_id", orderID,
		"from", order.OrderStatus,
		"to", requested,
	)
	return updated, nil
}

// UpdatePaymentStatus overwrites the settlement state. Payment
// reconciliation is manual in this system, so any payment status is
// reachable from any other.
func (s *OrderService) UpdatePaymentStatus(orderID uint, status models.PaymentStatus) (models.Order, error) {
	if !models.ValidPaymentStatus(status) {
		return models.Order{}, ErrInvalidInput
	}

	rows, err := s.orders.UpdatePaymentStatus(orderID, status)
	if err != nil {
		logger.Error("order: payment update failed", "order_id", orderID, "error", err)
		return models.Order{}, ErrUnavailable
	}
	if rows == 0 {
		return models.Order{}, ErrNotFound
	}

	updated, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, ErrUnavailable
	}

	event.Fire(event.OrderStatusUpdated, &updated)
	logger.Info("order payment updated", "order_id", orderID, "payment_status", status)
	return updated, nil
}

// Cancel cancels an order on behalf of its owner or an admin. Orders that
// have shipped can no longer be cancelled.
func (s *OrderService) Cancel(orderID uint, claims *auth.Claims) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, ErrUnavailable
	}

	if !CanAccessOrder(claims, &order) {
		return models.Order{}, ErrForbidden
	}

	if order.OrderStatus != models.OrderPending && order.OrderStatus != models.OrderProcessing {
		return models.Order{}, ErrInvalidTransition
	}

	return s.UpdateStatus(orderID, models.OrderCancelled, "")
}

// Delete permanently removes an order. Only cancelled orders may be
// deleted unless force is set.
func (s *OrderService) Delete(orderID uint, force bool) error {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return ErrUnavailable
	}

	if order.OrderStatus != models.OrderCancelled && !force {
		return ErrInvalidTransition
	}

	if err := s.orders.Delete(&order); err != nil {
		logger.Error("order: delete failed", "order_id", orderID, "error", err)
		return ErrUnavailable
	}

	logger.Info("order deleted", "order_id", orderID, "forced", force)
	return nil
}
