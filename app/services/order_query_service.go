package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/repositories"
	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/cache"
	"github.com/favourfurniture/storefront/pkg/event"
	"github.com/favourfurniture/storefront/pkg/logger"
	"github.com/favourfurniture/storefront/pkg/orm"
)

// Pagination defaults for admin listings.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

const statusCountsCacheKey = "orders:status_counts"

// OrderQueryService serves the read side of orders: buyer listings,
// admin listings with pagination and status filters, detail retrieval,
// and dashboard aggregates.
type OrderQueryService struct {
	orders *repositories.OrderRepository
}

func NewOrderQueryService() *OrderQueryService {
	s := &OrderQueryService{orders: repositories.NewOrderRepository()}

	// Any order write makes the cached dashboard counts stale.
	invalidate := func(interface{}) { cache.Forget(statusCountsCacheKey) }
	event.Listen(event.OrderCreated, invalidate)
	event.Listen(event.OrderStatusUpdated, invalidate)

	return s
}

// ListForUser returns the buyer's orders, newest first.
func (s *OrderQueryService) ListForUser(userID uint) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		logger.Error("orders: list for user failed", "user_id", userID, "error", err)
		return nil, ErrUnavailable
	}
	return orders, nil
}

// ListForAdmin returns one page of all orders, newest first. status "all"
// or "" disables filtering; page and pageSize are clamped to at least
// their defaults' lower bound.
func (s *OrderQueryService) ListForAdmin(status string, page, pageSize int) ([]models.Order, orm.Pagination, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var filter models.OrderStatus
	if status != "" && status != "all" {
		filter = models.OrderStatus(status)
		if !models.ValidOrderStatus(filter) {
			return nil, orm.Pagination{}, ErrInvalidInput
		}
	}

	orders, pagination, err := s.orders.ListPaged(filter, page, pageSize)
	if err != nil {
		logger.Error("orders: admin list failed", "error", err)
		return nil, orm.Pagination{}, ErrUnavailable
	}
	return orders, pagination, nil
}

// StatusCounts aggregates the full order set by fulfilment status for the
// admin dashboard. The result is cached briefly and invalidated on every
// order write.
func (s *OrderQueryService) StatusCounts() (map[models.OrderStatus]int64, error) {
	var counts map[models.OrderStatus]int64
	if cache.Get(statusCountsCacheKey, &counts) {
		return counts, nil
	}

	counts, err := s.orders.StatusCounts()
	if err != nil {
		logger.Error("orders: status counts failed", "error", err)
		return nil, ErrUnavailable
	}

	cache.Set(statusCountsCacheKey, counts, time.Minute)
	return counts, nil
}

// GetDetail returns the order with its items and owner resolved, for the
// owner or an admin.
func (s *OrderQueryService) GetDetail(orderID uint, claims *auth.Claims) (models.Order, error) {
	order, err := s.orders.FindDetail(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		logger.Error("orders: detail lookup failed", "order_id", orderID, "error", err)
		return models.Order{}, ErrUnavailable
	}

	if !CanAccessOrder(claims, &order) {
		return models.Order{}, ErrForbidden
	}
	return order, nil
}
