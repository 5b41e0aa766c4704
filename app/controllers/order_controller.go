package controllers

import (
	"net/http"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/bind"
	"github.com/favourfurniture/storefront/pkg/middleware"
	"github.com/favourfurniture/storefront/pkg/response"
)

// OrderController serves the buyer-facing order endpoints.
type OrderController struct {
	orders  *services.OrderService
	queries *services.OrderQueryService
}

func NewOrderController(orders *services.OrderService, queries *services.OrderQueryService) *OrderController {
	return &OrderController{orders: orders, queries: queries}
}

// orderView decorates an order with its derived display number.
func orderView(order models.Order) map[string]interface{} {
	return map[string]interface{}{
		"order":        order,
		"order_number": order.OrderNumber(),
	}
}

func orderViews(orders []models.Order) []map[string]interface{} {
	views := make([]map[string]interface{}, len(orders))
	for i, order := range orders {
		views[i] = orderView(order)
	}
	return views
}

// Create handles POST /api/orders (checkout).
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.CreateOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Create(userID, in)
	if err != nil {
		writeServiceError(w, err, "Product not found")
		return
	}
	response.Created(w, "Order placed", orderView(order))
}

// List handles GET /api/orders — the buyer's own orders, newest first.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.queries.ListForUser(userID)
	if err != nil {
		writeServiceError(w, err, "Order not found")
		return
	}
	response.Success(w, orderViews(orders))
}

// Get handles GET /api/orders/{id} for the owner or an admin.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Order not found")
		return
	}

	order, err := c.queries.GetDetail(id, middleware.ClaimsFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Order not found")
		return
	}
	response.Success(w, orderView(order))
}

// Cancel handles POST /api/orders/{id}/cancel for the owner or an admin.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Order not found")
		return
	}

	order, err := c.orders.Cancel(id, middleware.ClaimsFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Order not found")
		return
	}
	response.SuccessMessage(w, "Order cancelled", orderView(order))
}
