package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/favourfurniture/storefront/app/controllers"
	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/router"
	"github.com/favourfurniture/storefront/pkg/testkit"
)

func newOrderAPI(t *testing.T) (http.Handler, models.User, models.Product) {
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

	orderService := services.NewOrderService()
	queryService := services.NewOrderQueryService()
	ctrl := controllers.NewOrderController(orderService, queryService)

	r := router.New()
	api := r.Group("/api")
	api.Post("/orders", "orders.create", ctrl.Create)
	api.Get("/orders", "orders.list", ctrl.List)
	api.Get("/orders/{id}", "orders.show", ctrl.Get)
	api.Post("/orders/{id}/cancel", "orders.cancel", ctrl.Cancel)

	return r.Handler(), buyer, chair
}

func TestOrderEndpointsRoundTrip(t *testing.T) {
	h, buyer, chair := newOrderAPI(t)

	req := testkit.Request(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"product_id": chair.ID,
		"quantity":   2,
	})
	rec, env := testkit.Do(t, h, testkit.AsUser(req, buyer.ID, buyer.Role))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)

	var created struct {
		Order       models.Order `json:"order"`
		OrderNumber string       `json:"order_number"`
	}
	testkit.DecodeData(t, env, &created)
	require.EqualValues(t, 32000, created.Order.TotalAmount)
	require.NotEmpty(t, created.OrderNumber)

	// Owner sees the detail.
	req = testkit.Request(t, http.MethodGet, "/api/orders/1", nil)
	rec, _ = testkit.Do(t, h, testkit.AsUser(req, buyer.ID, buyer.Role))
	require.Equal(t, http.StatusOK, rec.Code)

	// A stranger does not.
	req = testkit.Request(t, http.MethodGet, "/api/orders/1", nil)
	rec, env = testkit.Do(t, h, testkit.AsUser(req, buyer.ID+9, models.RoleCustomer))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, env.Success)

	// Owner cancels; repeating the cancel is a conflict.
	req = testkit.Request(t, http.MethodPost, "/api/orders/1/cancel", nil)
	rec, _ = testkit.Do(t, h, testkit.AsUser(req, buyer.ID, buyer.Role))
	require.Equal(t, http.StatusOK, rec.Code)

	req = testkit.Request(t, http.MethodPost, "/api/orders/1/cancel", nil)
	rec, _ = testkit.Do(t, h, testkit.AsUser(req, buyer.ID, buyer.Role))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	h, buyer, chair := newOrderAPI(t)

	// Zero quantity fails validation at the boundary.
	req := testkit.Request(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"product_id": chair.ID,
		"quantity":   0,
	})
	rec, env := testkit.Do(t, h, testkit.AsUser(req, buyer.ID, buyer.Role))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.False(t, env.Success)

	// Unknown product is a 404.
	req = testkit.Request(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"product_id": 4040,
		"quantity":   1,
	})
	rec, _ = testkit.Do(t, h, testkit.AsUser(req, buyer.ID, buyer.Role))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Anonymous requests are rejected.
	req = testkit.Request(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"product_id": chair.ID,
		"quantity":   1,
	})
	rec, _ = testkit.Do(t, h, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
