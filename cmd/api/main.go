package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quickmart/storefront-backend/api/routes"
	"github.com/quickmart/storefront-backend/internal/cart"
	"github.com/quickmart/storefront-backend/internal/catalog"
	"github.com/quickmart/storefront-backend/internal/checkout"
	"github.com/quickmart/storefront-backend/internal/notify"
	"github.com/quickmart/storefront-backend/internal/orders"
	"github.com/quickmart/storefront-backend/pkg/config"
	"github.com/quickmart/storefront-backend/pkg/db"
	"github.com/quickmart/storefront-backend/pkg/logger"
	"github.com/quickmart/storefront-backend/pkg/metrics"
	"github.com/quickmart/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := db.MaybeAutoMigrate(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedOrders && cfg.App.IsDev() {
		if err := orders.SeedOrders(ctx, dbClient, logg); err != nil {
			logg.Error(ctx, "failed to seed demo orders", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	storeMetrics := metrics.NewStoreMetrics(registry)

	catalogSvc, err := catalog.NewService(catalog.Options{SimLatency: cfg.Store.SimLatency})
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	cartRepo, err := cart.NewRepo(dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create cart repo", err)
		os.Exit(1)
	}
	cartSvc, err := cart.NewService(logg, cart.Options{
		Storage:    cartRepo,
		Metrics:    storeMetrics,
		SimLatency: cfg.Store.SimLatency,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	mailer, err := notify.NewLogMailer(logg, notify.Options{
		FromAddress: cfg.Notify.FromAddress,
		SimLatency:  cfg.Store.SimLatency,
	})
	if err != nil {
		logg.Error(ctx, "failed to create mailer", err)
		os.Exit(1)
	}

	orderRepo, err := orders.NewRepo(dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create order repo", err)
		os.Exit(1)
	}
	orderSvc, err := orders.NewService(ctx, logg, orders.Options{
		Storage:          orderRepo,
		Notifier:         mailer,
		Metrics:          storeMetrics,
		RecentLimit:      cfg.Store.RecentLimit,
		DeliveryOffset:   cfg.Store.DeliveryOffset,
		DefaultRecipient: cfg.Notify.DefaultRecipient,
		SimLatency:       cfg.Store.SimLatency,
	})
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		os.Exit(1)
	}

	checkoutSvc, err := checkout.NewService(cartSvc, orderSvc, catalogSvc, logg)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Metrics:  registry,
			Catalog:  catalogSvc,
			Cart:     cartSvc,
			Orders:   orderSvc,
			Checkout: checkoutSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(startCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
