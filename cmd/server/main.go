package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiwari-pos/restaurant/internal/config"
	"github.com/kiwari-pos/restaurant/internal/logger"
	"github.com/kiwari-pos/restaurant/internal/menu"
	"github.com/kiwari-pos/restaurant/internal/notify"
	"github.com/kiwari-pos/restaurant/internal/pricing"
	"github.com/kiwari-pos/restaurant/internal/router"
	"github.com/kiwari-pos/restaurant/internal/service"
	"github.com/kiwari-pos/restaurant/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("restaurant-api", cfg.LogLevel)
	if len(cfg.Staff) == 0 {
		log.Warn("config_staff", "STAFF is empty, nobody can log in")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	go hub.Run(ctx)

	restaurant := config.NewRestaurant(cfg.Restaurant)
	catalog := menu.DefaultCatalog()
	prices := pricing.NewService(nil)

	orders := service.NewOrderService(restaurant, catalog, prices, log,
		notify.NewKitchen("Cozinha Principal", log),
		notify.NewWaiter("Garçom", log),
		notify.NewPaymentSystem(prices, log),
		ws.NewBroadcaster(hub, log),
	)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Port),
		Handler: router.New(router.Deps{
			Config:     cfg,
			Restaurant: restaurant,
			Catalog:    catalog,
			Orders:     orders,
			Hub:        hub,
			Log:        log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_start", "starting server", slog.String("addr", srv.Addr),
			slog.String("restaurant", cfg.Restaurant.Name))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_start", "server failed", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("server_shutdown", "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server_shutdown", "graceful shutdown failed", err)
		}
	}
}
