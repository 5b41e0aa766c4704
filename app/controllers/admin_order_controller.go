package controllers

import (
	"net/http"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/bind"
	"github.com/favourfurniture/storefront/pkg/middleware"
	"github.com/favourfurniture/storefront/pkg/response"
	"github.com/favourfurniture/storefront/pkg/ws"
)

// AdminOrderController serves the back-office order endpoints.
type AdminOrderController struct {
	orders  *services.OrderService
	queries *services.OrderQueryService
	feed    *ws.Hub
}

func NewAdminOrderController(orders *services.OrderService, queries *services.OrderQueryService, feed *ws.Hub) *AdminOrderController {
	return &AdminOrderController{orders: orders, queries: queries, feed: feed}
}

// List handles GET /api/admin/orders?status=&page=&limit=.
func (c *AdminOrderController) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	page := intQuery(r, "page", services.DefaultPage)
	limit := intQuery(r, "limit", services.DefaultPageSize)

	orders, pagination, err := c.queries.ListForAdmin(status, page, limit)
	if err != nil {
		writeServiceError(w, err, "Order not found")
		return
	}
	response.Paginated(w, orderViews(orders), pagination)
}

// StatusCounts handles GET /api/admin/orders/counts for the dashboard.
func (c *AdminOrderController) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := c.queries.StatusCounts()
	if err != nil {
		writeServiceError(w, err, "Order not found")
		return
	}
	response.Success(w, counts)
}

// Get handles GET /api/admin/orders/{id}.
func (c *AdminOrderController) Get(w http.ResponseWriter, r *http.Request) {
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

// UpdateStatus handles PUT /api/admin/orders/{id}/status.
func (c *AdminOrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Order not found")
		return
	}

	var in struct {
		Status         string `json:"status" validate:"required,in=pending,processing,shipped,delivered,cancelled"`
		TrackingNumber string `json:"tracking_number" validate:"nullable,max=100"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(id, models.OrderStatus(in.Status), in.TrackingNumber)
	if err != nil {
		writeServiceError(w, err, "Order not found")
		return
	}
	response.SuccessMessage(w, "Order status updated", orderView(order))
}

// UpdatePayment handles PUT /api/admin/orders/{id}/payment.
func (c *AdminOrderController) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Order not found")
		return
	}

	var in struct {
		PaymentStatus string `json:"payment_status" validate:"required,in=pending,paid,failed,refunded"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdatePaymentStatus(id, models.PaymentStatus(in.PaymentStatus))
	if err != nil {
		writeServiceError(w, err, "Order not found")
		return
	}
	response.SuccessMessage(w, "Payment status updated", orderView(order))
}

// Delete handles DELETE /api/admin/orders/{id}?force=true.
func (c *AdminOrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Order not found")
		return
	}

	force := r.URL.Query().Get("force") == "true"
	if err := c.orders.Delete(id, force); err != nil {
		writeServiceError(w, err, "Order not found")
		return
	}
	response.SuccessMessage(w, "Order deleted", nil)
}

// Feed handles GET /api/admin/orders/feed: upgrades to a WebSocket that
// streams order events to the dashboard.
func (c *AdminOrderController) Feed(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, c.feed)
}
