package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/routes"
	"github.com/favourfurniture/storefront/config"
	"github.com/favourfurniture/storefront/pkg/cache"
	"github.com/favourfurniture/storefront/pkg/database"
	"github.com/favourfurniture/storefront/pkg/event"
	grpcserver "github.com/favourfurniture/storefront/pkg/grpc"
	"github.com/favourfurniture/storefront/pkg/logger"
	"github.com/favourfurniture/storefront/pkg/metrics"
	"github.com/favourfurniture/storefront/pkg/middleware"
	"github.com/favourfurniture/storefront/pkg/reqid"
	"github.com/favourfurniture/storefront/pkg/router"
	"github.com/favourfurniture/storefront/pkg/storage"
	"github.com/favourfurniture/storefront/pkg/ws"
)

// storefront serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	if err := config.Load(); err != nil {
		return err
	}

	// Optional MongoDB log sink; local/dev runs log to stdout only.
	if uri := config.LogMongoURI(); uri != "" {
		sink, err := logger.EnableMongo(uri, config.LogMongoDatabase(), config.LogMongoCollection())
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			defer sink.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	// Admin order feed: every order event is pushed to connected
	// dashboards.
	feed := ws.NewHub()
	go feed.Run()
	broadcast := func(name string) event.Handler {
		return func(payload interface{}) {
			order, ok := payload.(*models.Order)
			if !ok {
				return
			}
			feed.BroadcastJSON(map[string]interface{}{
				"event":        name,
				"order_id":     order.ID,
				"order_number": order.OrderNumber(),
				"order_status": order.OrderStatus,
				"total_amount": order.TotalAmount,
			})
		}
	}
	event.Listen(event.OrderCreated, broadcast(event.OrderCreated))
	event.Listen(event.OrderStatusUpdated, broadcast(event.OrderStatusUpdated))

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.RegisterAPI(r, feed)

	// Optional gRPC sidecar for health probes.
	if port := config.GRPCPort(); port != "" {
		srv, _, err := grpcserver.Start(port)
		if err != nil {
			return err
		}
		defer grpcserver.Stop(srv)
	}

	addr := ":" + config.AppPort()
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      r.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", "addr", addr, "env", config.AppEnv())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
