package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/auth"
)

func TestListForUserNewestFirst(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	queries := services.NewOrderQueryService()

	first := placeOrder(t, svc, buyer.ID, chair.ID, 1)
	second := placeOrder(t, svc, buyer.ID, chair.ID, 2)

	orders, err := queries.ListForUser(buyer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.ID, orders[0].ID)
	require.Equal(t, first.ID, orders[1].ID)

	// Another user's listing is empty.
	orders, err = queries.ListForUser(buyer.ID + 1)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestListForAdminPaginationAndFilter(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	queries := services.NewOrderQueryService()

	// 7 processing orders and 3 left pending.
	for i := 0; i < 10; i++ {
		order := placeOrder(t, svc, buyer.ID, chair.ID, 1)
		if i < 7 {
			_, err := svc.UpdateStatus(order.ID, models.OrderProcessing, "")
			require.NoError(t, err)
		}
	}

	orders, pagination, err := queries.ListForAdmin("processing", 2, 5)
	require.NoError(t, err)
	require.Len(t, orders, 2) // 7 filtered, page 2 of 5 holds the rest
	for _, o := range orders {
		require.Equal(t, models.OrderProcessing, o.OrderStatus)
	}
	require.EqualValues(t, 7, pagination.Total)
	require.Equal(t, 2, pagination.TotalPages)
	require.Equal(t, 2, pagination.Page)

	// "all" and empty filter include everything.
	_, pagination, err = queries.ListForAdmin("all", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 10, pagination.Total)

	// Out-of-range page and size clamp to the defaults.
	orders, pagination, err = queries.ListForAdmin("", 0, -5)
	require.NoError(t, err)
	require.Len(t, orders, 10)
	require.Equal(t, 1, pagination.Page)
	require.Equal(t, 10, pagination.PageSize)

	_, _, err = queries.ListForAdmin("misplaced", 1, 10)
	require.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestStatusCounts(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	queries := services.NewOrderQueryService()

	for i := 0; i < 3; i++ {
		placeOrder(t, svc, buyer.ID, chair.ID, 1)
	}
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)
	_, err := svc.UpdateStatus(order.ID, models.OrderProcessing, "")
	require.NoError(t, err)

	counts, err := queries.StatusCounts()
	require.NoError(t, err)

	require.EqualValues(t, 3, counts[models.OrderPending])
	require.EqualValues(t, 1, counts[models.OrderProcessing])
	// Every status is present, zero-valued when unused.
	for _, status := range models.OrderStatuses {
		_, ok := counts[status]
		require.True(t, ok, "missing status %s", status)
	}
}

func TestGetDetailAuthorization(t *testing.T) {
	svc, buyer, chair := newOrderFixture(t)
	queries := services.NewOrderQueryService()
	order := placeOrder(t, svc, buyer.ID, chair.ID, 1)

	owner := &auth.Claims{UserID: buyer.ID, Role: models.RoleCustomer}
	stranger := &auth.Claims{UserID: buyer.ID + 50, Role: models.RoleCustomer}
	admin := &auth.Claims{UserID: buyer.ID + 60, Role: models.RoleAdmin}

	detail, err := queries.GetDetail(order.ID, owner)
	require.NoError(t, err)
	require.Equal(t, order.ID, detail.ID)
	require.NotNil(t, detail.User)
	require.Len(t, detail.Items, 1)

	_, err = queries.GetDetail(order.ID, stranger)
	require.ErrorIs(t, err, services.ErrForbidden)

	_, err = queries.GetDetail(order.ID, nil)
	require.ErrorIs(t, err, services.ErrForbidden)

	_, err = queries.GetDetail(order.ID, admin)
	require.NoError(t, err)

	_, err = queries.GetDetail(9999, admin)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestGetDetailMissingOrderBeatsForbidden(t *testing.T) {
	_, buyer, _ := newOrderFixture(t)
	queries := services.NewOrderQueryService()

	_, err := queries.GetDetail(404, &auth.Claims{UserID: buyer.ID, Role: models.RoleCustomer})
	require.ErrorIs(t, err, services.ErrNotFound)
}
