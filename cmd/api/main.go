package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/config"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/handler"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/middleware"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/service"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		log.Error("open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	log.Info("store opened", "path", cfg.Store.Path)

	// Services
	catalogSvc := service.NewCatalogService(st)
	cartSvc := service.NewCartService(st)
	orderSvc := service.NewOrderService(st)
	sessionSvc := service.NewSessionService(st, cfg.Session.Secret, cfg.Session.Expiry)

	cartSvc.Subscribe(func() {
		log.Debug("cart changed")
	})

	// Handlers
	catalogH := handler.NewCatalogHandler(catalogSvc)
	cartH := handler.NewCartHandler(cartSvc, catalogSvc)
	orderH := handler.NewOrderHandler(orderSvc, cartSvc, cfg.Shop)
	sessionH := handler.NewSessionHandler(sessionSvc)
	healthH := handler.NewHealthHandler(st)

	// Router
	router := gin.Default()
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/shop", orderH.ShopInfo)

		products := v1.Group("/products")
		products.GET("", catalogH.List)
		products.GET("/:id", catalogH.GetByID)

		cart := v1.Group("/cart")
		cart.GET("", cartH.Get)
		cart.POST("/items", cartH.AddItem)
		cart.PUT("/items", cartH.UpdateItem)
		cart.DELETE("/items", cartH.RemoveItem)
		cart.DELETE("", cartH.Clear)

		v1.POST("/checkout", orderH.Checkout)

		admin := v1.Group("/admin")
		admin.POST("/login", sessionH.Login)

		protected := admin.Group("", middleware.AdminOnly(sessionSvc))
		protected.POST("/logout", sessionH.Logout)
		protected.PUT("/password", sessionH.ChangePassword)
		protected.POST("/products", catalogH.Create)
		protected.PUT("/products/:id", catalogH.Update)
		protected.DELETE("/products/:id", catalogH.Delete)
		protected.PATCH("/products/:id/stock", catalogH.SetStock)
		protected.GET("/orders", orderH.List)
		protected.GET("/orders/:id", orderH.GetByID)
		protected.PUT("/orders/:id/status", orderH.UpdateStatus)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	log.Info("server stopped")
}
