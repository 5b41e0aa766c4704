// Package routes wires every HTTP endpoint to its controller.
package routes

import (
	"net/http"

	"github.com/favourfurniture/storefront/app/controllers"
	appgraphql "github.com/favourfurniture/storefront/app/graphql"
	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/services"
	pkggraphql "github.com/favourfurniture/storefront/pkg/graphql"
	"github.com/favourfurniture/storefront/pkg/logger"
	"github.com/favourfurniture/storefront/pkg/metrics"
	"github.com/favourfurniture/storefront/pkg/middleware"
	"github.com/favourfurniture/storefront/pkg/rbac"
	"github.com/favourfurniture/storefront/pkg/response"
	"github.com/favourfurniture/storefront/pkg/router"
	"github.com/favourfurniture/storefront/pkg/ws"
)

// RegisterAPI mounts the full operation surface onto the router. feed is
// the admin order feed hub, already running.
func RegisterAPI(r *router.Router, feed *ws.Hub) {
	orderService := services.NewOrderService()
	queryService := services.NewOrderQueryService()
	productService := services.NewProductService()

	authCtrl := controllers.NewAuthController()
	productCtrl := controllers.NewProductController(productService)
	orderCtrl := controllers.NewOrderController(orderService, queryService)
	adminOrderCtrl := controllers.NewAdminOrderController(orderService, queryService, feed)
	dashboardCtrl := controllers.NewDashboardController(queryService)

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.HandleFunc("/metrics", metrics.Handler())

	api := r.Group("/api")

	// Public: identity resolved when a credential is present, never required.
	public := api.Group("", middleware.Identify)
	public.Post("/auth/logout", "auth.logout", authCtrl.Logout)
	public.Get("/products", "products.list", productCtrl.List)
	public.Get("/products/{id}", "products.show", productCtrl.Get)
	public.Post("/products/{id}/like", "products.like", productCtrl.Like)

	// Guest-only: a logged-in user cannot register or log in again.
	guest := api.Group("", middleware.Identify, rbac.Guest)
	guest.Post("/auth/register", "auth.register", authCtrl.Register)
	guest.Post("/auth/login", "auth.login", authCtrl.Login)

	schema, err := pkggraphql.NewSchema(appgraphql.NewRootQuery(productService))
	if err != nil {
		logger.Error("routes: graphql schema invalid", "error", err)
	} else {
		public.Post("/graphql", "graphql", pkggraphql.Handler(schema))
	}

	// Authenticated buyers
	buyer := api.Group("", middleware.Authenticate)
	buyer.Get("/auth/me", "auth.me", authCtrl.Profile)
	buyer.Post("/orders", "orders.create", orderCtrl.Create)
	buyer.Get("/orders", "orders.list", orderCtrl.List)
	buyer.Get("/orders/{id}", "orders.show", orderCtrl.Get)
	buyer.Post("/orders/{id}/cancel", "orders.cancel", orderCtrl.Cancel)

	// Admin back-office
	admin := api.Group("/admin", middleware.Authenticate, rbac.HasRole(models.RoleAdmin))
	admin.Get("/dashboard", "admin.dashboard", dashboardCtrl.Summary)
	admin.Get("/orders", "admin.orders.list", adminOrderCtrl.List)
	admin.Get("/orders/counts", "admin.orders.counts", adminOrderCtrl.StatusCounts)
	admin.Get("/orders/feed", "admin.orders.feed", adminOrderCtrl.Feed)
	admin.Get("/orders/{id}", "admin.orders.show", adminOrderCtrl.Get)
	admin.Put("/orders/{id}/status", "admin.orders.status", adminOrderCtrl.UpdateStatus)
	admin.Put("/orders/{id}/payment", "admin.orders.payment", adminOrderCtrl.UpdatePayment)
	admin.Delete("/orders/{id}", "admin.orders.delete", adminOrderCtrl.Delete)
	admin.Post("/products", "admin.products.create", productCtrl.Create)
	admin.Put("/products/{id}", "admin.products.update", productCtrl.Update)
	admin.Delete("/products/{id}", "admin.products.delete", productCtrl.Delete)
	admin.Post("/products/{id}/image", "admin.products.image", productCtrl.UploadImage)
}
