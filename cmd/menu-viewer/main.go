package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/config"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/handlers"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/menu"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/money"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/notify"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/tenant"
	"github.com/gin-gonic/gin"
)

// Menu viewer - public, read-only menu pages
func main() {
	log.Println("Starting menu viewer...")

	cfg := config.Load()
	gin.SetMode(cfg.Viewer.GinMode)

	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// anonymous client; every menu request names its restaurant explicitly
	client := api.NewClient(api.Options{
		BaseURL:         cfg.API.BaseURL,
		HTTPClient:      &http.Client{Timeout: timeout},
		Tenants:         tenant.NewResolver(nil),
		Notifier:        notify.Log{},
		FallbackMessage: cfg.API.FallbackMessage,
	})

	loader := menu.NewLoader(client, money.Converter{Rate: cfg.Money.EURRate})
	menuHandler := handlers.NewMenuHandler(loader, timeout)
	router := handlers.NewRouter(menuHandler, cfg.Viewer.AllowOrigin)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Viewer.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Menu viewer listening on port %s (API %s)", cfg.Viewer.Port, cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down menu viewer...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Menu viewer forced to shutdown: %v", err)
	}

	log.Println("Menu viewer exited")
}
