package repositories

import (
	"gorm.io/gorm"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/pkg/orm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists a new order together with its items.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.DB().Create(order)
}

// FindByID loads an order with its items.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// FindDetail loads an order with its items and owning user, for display.
func (r *OrderRepository) FindDetail(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Preload("User").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// ListByUser returns a buyer's orders, newest first.
func (r *OrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Get(&orders)
	return orders, err
}

// ListPaged returns one page of all orders, newest first, optionally
// filtered by exact fulfilment status.
func (r *OrderRepository) ListPaged(status models.OrderStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{}).Preload("Items").Preload("User")
	if status != "" {
		q = q.Where("order_status = ?", status)
	}

	var orders []models.Order
	pagination, err := q.Order("created_at desc").GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// StatusCounts aggregates the full order set by fulfilment status. Every
// status appears in the result, zero-valued when no orders hold it.
func (r *OrderRepository) StatusCounts() (map[models.OrderStatus]int64, error) {
	var rows []struct {
		OrderStatus models.OrderStatus
		Count       int64
	}
	err := orm.DB().
		Model(&models.Order{}).
		Select("order_status, count(*) as count").
		Group("order_status").
		Scan(&rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.OrderStatus]int64, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.OrderStatus] = row.Count
	}
	return counts, nil
}

// UpdateWhereStatus applies fields to the order only if it still holds
// the expected fulfilment status, and reports how many rows matched.
// The conditional write serialises concurrent transitions on the same
// order: a competing update that already moved the status makes this
// one match zero rows.
func (r *OrderRepository) UpdateWhereStatus(id uint, expected models.OrderStatus, fields map[string]interface{}) (int64, error) {
	return orm.DB().
		Model(&models.Order{}).
		Where("id = ? AND order_status = ?", id, expected).
		Updates(fields)
}

// UpdatePaymentStatus overwrites the settlement state unconditionally.
func (r *OrderRepository) UpdatePaymentStatus(id uint, status models.PaymentStatus) (int64, error) {
	return orm.DB().
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"payment_status": status})
}

// Delete permanently removes an order and its items in one transaction,
// so a failure never leaves an order behind with no items.
func (r *OrderRepository) Delete(order *models.Order) error {
	return orm.DB().Gorm().Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(order).Error
	})
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Order{}).Count(&n)
	return n, err
}
