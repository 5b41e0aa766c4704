package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/repositories"
	"github.com/favourfurniture/storefront/pkg/testkit"
)

func seedOrder(t *testing.T, status models.OrderStatus) (*repositories.OrderRepository, models.Order) {
	t.Helper()

	db := testkit.NewDB(t,
		&models.User{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	)

	buyer := models.User{Name: "Ada", Email: "ada@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&buyer).Error)

	repo := repositories.NewOrderRepository()
	order := models.Order{
		UserID:        buyer.ID,
		OrderStatus:   status,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.PaymentMethodPayOnDelivery,
		Items: []models.OrderItem{
			{Name: "Milan Chair", Image: models.DefaultProductImage, UnitPrice: 15000, Quantity: 1},
		},
		Subtotal:    15000,
		ShippingFee: models.ShippingFee,
		TotalAmount: 15000 + models.ShippingFee,
	}
	order.ShippingAddress.ApplyDefaults()
	require.NoError(t, repo.Create(&order))

	return repo, order
}

// A conditional update keyed on a status the order no longer holds must
// match zero rows and leave the order untouched. This is what stops two
// admins updating the same order from losing writes: the second write
// sees the status the first one already moved.
func TestUpdateWhereStatusStaleExpectationMatchesNothing(t *testing.T) {
	repo, order := seedOrder(t, models.OrderProcessing)

	rows, err := repo.UpdateWhereStatus(order.ID, models.OrderPending, map[string]interface{}{
		"order_status": models.OrderCancelled,
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, rows)

	unchanged, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderProcessing, unchanged.OrderStatus)
}

func TestUpdateWhereStatusMatchingExpectationWrites(t *testing.T) {
	repo, order := seedOrder(t, models.OrderProcessing)

	rows, err := repo.UpdateWhereStatus(order.ID, models.OrderProcessing, map[string]interface{}{
		"order_status":    models.OrderShipped,
		"tracking_number": "TRK-42",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	shipped, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderShipped, shipped.OrderStatus)
	require.Equal(t, "TRK-42", shipped.TrackingNumber)

	// Re-running with the now stale expectation loses the race.
	rows, err = repo.UpdateWhereStatus(order.ID, models.OrderProcessing, map[string]interface{}{
		"order_status": models.OrderCancelled,
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, rows)
}

func TestDeleteRemovesOrderAndItems(t *testing.T) {
	repo, order := seedOrder(t, models.OrderCancelled)

	require.NoError(t, repo.Delete(&order))

	_, err := repo.FindByID(order.ID)
	require.Error(t, err)

	n, err := repo.Count()
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}
