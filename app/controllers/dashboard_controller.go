package controllers

import (
	"net/http"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/repositories"
	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/response"
)

// topProductsLimit caps the most-liked list on the dashboard.
const topProductsLimit = 5

// DashboardController serves the admin dashboard summary.
type DashboardController struct {
	queries  *services.OrderQueryService
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	users    *repositories.UserRepository
}

func NewDashboardController(queries *services.OrderQueryService) *DashboardController {
	return &DashboardController{
		queries:  queries,
		products: repositories.NewProductRepository(),
		orders:   repositories.NewOrderRepository(),
		users:    repositories.NewUserRepository(),
	}
}

// Summary handles GET /api/admin/dashboard.
func (c *DashboardController) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := c.queries.StatusCounts()
	if err != nil {
		writeServiceError(w, err, "Dashboard unavailable")
		return
	}

	totalOrders, err := c.orders.Count()
	if err != nil {
		writeServiceError(w, services.ErrUnavailable, "Dashboard unavailable")
		return
	}
	totalProducts, err := c.products.Count()
	if err != nil {
		writeServiceError(w, services.ErrUnavailable, "Dashboard unavailable")
		return
	}
	totalCustomers, err := c.users.CountByRole(models.RoleCustomer)
	if err != nil {
		writeServiceError(w, services.ErrUnavailable, "Dashboard unavailable")
		return
	}
	topProducts, err := c.products.MostLiked(topProductsLimit)
	if err != nil {
		writeServiceError(w, services.ErrUnavailable, "Dashboard unavailable")
		return
	}

	response.Success(w, map[string]interface{}{
		"total_orders":    totalOrders,
		"total_products":  totalProducts,
		"total_customers": totalCustomers,
		"status_counts":   counts,
		"top_products":    topProducts,
	})
}
