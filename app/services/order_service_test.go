package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/testkit"
)

func newOrderFixture(t *testing.T) (*services.OrderService, models.User, models.Product) {
	t.Helper()

	db := testkit.NewDB(t,
		&models.User{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	)
	testkit.FlushEvents(t)

	buyer := models.User{Name: "Ada", Email: "ada@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&buyer).Error)

	chair := models.Product{Name: "Milan Chair", Type: models.TypeChair, Price: 15000}
	require.NoError(t, db.Create(&chair).Error)

	return services.NewOrderService(), buyer, chair
}

func placeOrder(t *testing.T, svc *services.OrderService, buyerID, productID uint, qty int) models.Order {
	t.Helper()
	order, err := svc.Create(buyerID, services.CreateOrderInput{ProductID: productID, Quantity: qty})
	require.NoError(t, err)
	return order
}

func TestCreateOrderComputesTotals(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)

	order, err := svc.Create(buyer.ID, services.CreateOrderInput{
		ProductID: chair.ID,
		Quantity:  2,
		Phone:     "080-123 abc 4567",
	})
	require.NoError(t, err)

	require.EqualValues(t, 30000, order.Subtotal)
	require.EqualValues(t, 2000, order.ShippingFee)
	require.EqualValues(t, 32000, order.TotalAmount)
	require.Equal(t, models.OrderPending, order.OrderStatus)
	require.Equal(t, models.PaymentPending, order.PaymentStatus)
	require.Equal(t, models.PaymentMethodPayOnDelivery, order.PaymentMethod)

	// Shipping defaults plus normalised phone.
	require.Equal(t, "Customer", order.ShippingAddress.FullName)
	require.Equal(t, "0801234567", order.ShippingAddress.Phone)
	require.Equal(t, "Lagos", order.ShippingAddress.City)
	require.Equal(t, "Nigeria", order.ShippingAddress.Country)

	// Item snapshot.
	require.Len(t, order.Items, 1)
	require.Equal(t, "Milan Chair", order.Items[0].Name)
	require.Equal(t, models.DefaultProductImage, order.Items[0].Image)
	require.EqualValues(t, 15000, order.Items[0].UnitPrice)

	require.NotEmpty(t, order.OrderNumber())
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)

	_, err := svc.Create(buyer.ID, services.CreateOrderInput{ProductID: chair.ID, Quantity: 0})
	require.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Create(buyer.ID, services.CreateOrderInput{ProductID: 9999, Quantity: 1})
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderSnapshotSurvivesPriceChange(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)

	products := services.NewProductService()
	_, err := products.Update(chair.ID, services.ProductInput{
		Name: "Milan Chair MkII", Type: models.TypeChair, Price: 99999,
	})
	require.NoError(t, err)

	// Touch the order so totals are recomputed from its snapshots.
	updated, err := svc.UpdateStatus(order.ID, models.OrderProcessing, "")
	require.NoError(t, err)
	require.EqualValues(t, 15000, updated.Items[0].UnitPrice)
	require.EqualValues(t, 15000+2000, updated.TotalAmount)
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)

	// pending cannot jump straight to shipped.
	_, err := svc.UpdateStatus(order.ID, models.OrderShipped, "")
	require.ErrorIs(t, err, services.ErrInvalidTransition)

	updated, err := svc.UpdateStatus(order.ID, models.OrderProcessing, "")
	require.NoError(t, err)
	require.Equal(t, models.OrderProcessing, updated.OrderStatus)

	updated, err = svc.UpdateStatus(order.ID, models.OrderShipped, "TRK-12345")
	require.NoError(t, err)
	require.Equal(t, models.OrderShipped, updated.OrderStatus)
	require.Equal(t, "TRK-12345", updated.TrackingNumber)

	// Shipped orders cannot regress or be cancelled.
	_, err = svc.UpdateStatus(order.ID, models.OrderPending, "")
	require.ErrorIs(t, err, services.ErrInvalidTransition)
	_, err = svc.UpdateStatus(order.ID, models.OrderCancelled, "")
	require.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = svc.UpdateStatus(order.ID, "teleported", "")
	require.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.UpdateStatus(9999, models.OrderProcessing, "")
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeliveredSettlesPayment(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)

	for _, status := range []models.OrderStatus{models.OrderProcessing, models.OrderShipped} {
		_, err := svc.UpdateStatus(order.ID, status, "")
		require.NoError(t, err)
	}

	delivered, err := svc.UpdateStatus(order.ID, models.OrderDelivered, "")
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, delivered.PaymentStatus)
	require.NotNil(t, delivered.DeliveredAt)
	require.EqualValues(t, delivered.Subtotal+delivered.ShippingFee, delivered.TotalAmount)

	// Repeating the terminal status must not move the timestamp.
	again, err := svc.UpdateStatus(order.ID, models.OrderDelivered, "")
	require.NoError(t, err)
	require.Equal(t, delivered.DeliveredAt.UTC(), again.DeliveredAt.UTC())
}

func TestDeliveredLeavesFailedPaymentAlone(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)

	for _, status := range []models.OrderStatus{models.OrderProcessing, models.OrderShipped} {
		_, err := svc.UpdateStatus(order.ID, status, "")
		require.NoError(t, err)
	}

	_, err := svc.UpdatePaymentStatus(order.ID, models.PaymentFailed)
	require.NoError(t, err)

	delivered, err := svc.UpdateStatus(order.ID, models.OrderDelivered, "")
	require.NoError(t, err)
	require.Equal(t, models.PaymentFailed, delivered.PaymentStatus)
}

func TestUpdatePaymentStatusIsPermissive(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)

	// Payment reconciliation is manual: any settlement state is reachable.
	for _, status := range []models.PaymentStatus{
		models.PaymentPaid, models.PaymentRefunded, models.PaymentFailed, models.PaymentPending,
	} {
		updated, err := svc.UpdatePaymentStatus(order.ID, status)
		require.NoError(t, err)
		require.Equal(t, status, updated.PaymentStatus)
	}

	_, err := svc.UpdatePaymentStatus(order.ID, "iou")
	require.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.UpdatePaymentStatus(9999, models.PaymentPaid)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCancelOrder(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)

	owner := &auth.Claims{UserID: buyer.ID, Role: models.RoleCustomer}
	stranger := &auth.Claims{UserID: buyer.ID + 100, Role: models.RoleCustomer}
	admin := &auth.Claims{UserID: buyer.ID + 200, Role: models.RoleAdmin}

	_, err := svc.Cancel(order.ID, stranger)
	require.ErrorIs(t, err, services.ErrForbidden)

	cancelled, err := svc.Cancel(order.ID, owner)
	require.NoError(t, err)
	require.Equal(t, models.OrderCancelled, cancelled.OrderStatus)
	require.NotNil(t, cancelled.CancelledAt)

	// Second cancel never produces a different timestamp.
	_, err = svc.Cancel(order.ID, owner)
	require.ErrorIs(t, err, services.ErrInvalidTransition)
	after, err := svc.UpdateStatus(order.ID, models.OrderCancelled, "")
	require.NoError(t, err)
	require.Equal(t, cancelled.CancelledAt.UTC(), after.CancelledAt.UTC())

	// Admins may cancel any cancellable order.
	second := placeOrder(t, svc, buyer.ID, chair.ID, 1)
	_, err = svc.Cancel(second.ID, admin)
	require.NoError(t, err)
}

func TestCancelShippedOrderFails(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)

	for _, status := range []models.OrderStatus{models.OrderProcessing, models.OrderShipped} {
		_, err := svc.UpdateStatus(order.ID, status, "")
		require.NoError(t, err)
	}

	_, err := svc.Cancel(order.ID, &auth.Claims{UserID: buyer.ID, Role: models.RoleCustomer})
	require.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestDeleteOrder(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)

	// Pending orders are protected unless force is set.
	err := svc.Delete(order.ID, false)
	require.ErrorIs(t, err, services.ErrInvalidTransition)

	require.NoError(t, svc.Delete(order.ID, true))
	err = svc.Delete(order.ID, true)
	require.ErrorIs(t, err, services.ErrNotFound)

	// Cancelled orders delete without force.
	second := placeOrder(t, svc, buyer.ID, chair.ID, 1)
	_, err = svc.Cancel(second.ID, &auth.Claims{UserID: buyer.ID, Role: models.RoleCustomer})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(second.ID, false))
}

func TestTotalsInvariantAfterEveryMutation(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	order := placeOrder(t, svc, buyer.ID, chair.ID, 3)

	check := func(o models.Order) {
		t.Helper()
		if o.TotalAmount != o.Subtotal+o.ShippingFee {
			t.Fatalf("total %d != subtotal %d + fee %d", o.TotalAmount, o.Subtotal, o.ShippingFee)
		}
	}
	check(order)

	o, err := svc.UpdateStatus(order.ID, models.OrderProcessing, "")
	require.NoError(t, err)
	check(o)

	o, err = svc.UpdatePaymentStatus(order.ID, models.PaymentPaid)
	require.NoError(t, err)
	check(o)

	o, err = svc.UpdateStatus(order.ID, models.OrderShipped, "TRK-9")
	require.NoError(t, err)
	check(o)

	o, err = svc.UpdateStatus(order.ID, models.OrderDelivered, "")
	require.NoError(t, err)
	check(o)
}

func TestCancelMissingOrder(t *testing.T) {
	svc, buyer, _ := newOrderFixture(t)

	_, err := svc.Cancel(12345, &auth.Claims{UserID: buyer.ID, Role: models.RoleCustomer})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
