package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shreepawar22/quickserve/internal/admin"
	"github.com/shreepawar22/quickserve/internal/cart"
	"github.com/shreepawar22/quickserve/internal/config"
	"github.com/shreepawar22/quickserve/internal/handler"
	"github.com/shreepawar22/quickserve/internal/order"
	"github.com/shreepawar22/quickserve/internal/restaurant"
	"github.com/shreepawar22/quickserve/internal/storage"
	"github.com/shreepawar22/quickserve/internal/watch"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "quickserve").Logger()

	log.Info().Msg("QuickServe starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	store, err := storage.OpenBolt(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer store.Close()

	restaurantRepo := restaurant.NewRepository(store)
	restaurantSvc := restaurant.NewService(restaurantRepo)

	cartRepo := cart.NewRepository(store)
	profiles := admin.NewCustomerProfiles(store)

	orderRepo := order.NewRepository(store)
	orderSvc := order.NewService(orderRepo, restaurantSvc, cartRepo, profiles, cfg.Orders.RetentionWindow)

	adminRepo := admin.NewRepository(store)
	adminSvc := admin.NewService(adminRepo, restaurantRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The dashboard side of the marker protocol: whenever a writer
	// bumps orderStatusUpdated, re-read and sweep aged-out orders.
	watcher := watch.New(store, storage.KeyOrderMarker, cfg.Orders.PollInterval, func() {
		if _, err := orderSvc.SweepArchive(ctx, time.Now()); err != nil {
			log.Error().Err(err).Msg("Background sweep failed")
		}
	})
	go watcher.Run(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	handler.NewAdminHandler(adminSvc, cfg.App.UploadDir).RegisterRoutes(router)
	handler.NewOrderHandler(orderSvc).RegisterRoutes(router)
	handler.NewTableHandler(restaurantSvc).RegisterRoutes(router)
	handler.NewMenuHandler(restaurantSvc).RegisterRoutes(router)
	handler.NewCartHandler(cartRepo).RegisterRoutes(router)
	handler.NewDashboardHandler(orderSvc, restaurantSvc).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
