package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/mvillegas/cabstock-backend/api/routes"
	"github.com/mvillegas/cabstock-backend/internal/activitylog"
	"github.com/mvillegas/cabstock-backend/internal/auth"
	"github.com/mvillegas/cabstock-backend/internal/customers"
	"github.com/mvillegas/cabstock-backend/internal/dashboard"
	"github.com/mvillegas/cabstock-backend/internal/inventory"
	"github.com/mvillegas/cabstock-backend/internal/sales"
	"github.com/mvillegas/cabstock-backend/internal/users"
	"github.com/mvillegas/cabstock-backend/pkg/auth/session"
	"github.com/mvillegas/cabstock-backend/pkg/config"
	"github.com/mvillegas/cabstock-backend/pkg/db"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	"github.com/mvillegas/cabstock-backend/pkg/images"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
	"github.com/mvillegas/cabstock-backend/pkg/metrics"
	"github.com/mvillegas/cabstock-backend/pkg/migrate"
	"github.com/mvillegas/cabstock-backend/pkg/redis"
)

// inventoryStatsLoader sums stock value and low/out-of-stock counts across
// all three inventory lines. Unpriced materials contribute counts only.
func inventoryStatsLoader(cabs inventory.CabService, accessories inventory.AccessoryService, materials inventory.MaterialService) dashboard.StatsLoader {
	return func(ctx context.Context) (dashboard.InventoryStats, error) {
		stats := dashboard.InventoryStats{TotalValue: decimal.Zero}
		tally := func(qty int, price decimal.Decimal, status enums.StockStatus) {
			stats.TotalValue = stats.TotalValue.Add(price.Mul(decimal.NewFromInt(int64(qty))))
			switch status {
			case enums.StockStatusLow:
				stats.LowStock++
			case enums.StockStatusOut:
				stats.OutOfStock++
			}
		}

		cabRows, err := cabs.List(ctx, inventory.Filter{})
		if err != nil {
			return dashboard.InventoryStats{}, err
		}
		for _, row := range cabRows {
			tally(row.Quantity, row.Price, row.Status)
		}

		accessoryRows, err := accessories.List(ctx, inventory.Filter{})
		if err != nil {
			return dashboard.InventoryStats{}, err
		}
		for _, row := range accessoryRows {
			tally(row.Quantity, row.Price, row.Status)
		}

		materialRows, err := materials.List(ctx, inventory.Filter{})
		if err != nil {
			return dashboard.InventoryStats{}, err
		}
		for _, row := range materialRows {
			price := decimal.Zero
			if row.Price != nil {
				price = *row.Price
			}
			tally(row.Quantity, price, row.Status)
		}

		return stats, nil
	}
}

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

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	sanitizer := images.NewSanitizer(cfg.Inventory).WithProber(images.NewProber(cfg.Inventory))

	cabRepo := inventory.NewCabRepository(dbClient.DB())
	accessoryRepo := inventory.NewAccessoryRepository(dbClient.DB())
	materialRepo := inventory.NewMaterialRepository(dbClient.DB())

	cabService, err := inventory.NewCabService(ctx, cabRepo, sanitizer)
	if err != nil {
		logg.Error(ctx, "failed to create cab service", err)
		os.Exit(1)
	}
	accessoryService, err := inventory.NewAccessoryService(ctx, accessoryRepo, sanitizer)
	if err != nil {
		logg.Error(ctx, "failed to create accessory service", err)
		os.Exit(1)
	}
	materialService, err := inventory.NewMaterialService(materialRepo, sanitizer)
	if err != nil {
		logg.Error(ctx, "failed to create material service", err)
		os.Exit(1)
	}

	customerService, err := customers.NewService(customers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create customer service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.NewRepository(dbClient.DB()), cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to create user service", err)
		os.Exit(1)
	}

	activityService, err := activitylog.NewService(activitylog.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(ctx, "failed to create activity log service", err)
		os.Exit(1)
	}

	// The dashboard loader replays the sale ledger; the sales service is
	// built right after, and Rehydrate runs only once both exist.
	var salesService sales.Service
	dashboardService, err := dashboard.NewService(cfg.Dashboard, redisClient, func(ctx context.Context) ([]dashboard.SaleEvent, error) {
		return salesService.LoadEvents(ctx)
	}, inventoryStatsLoader(cabService, accessoryService, materialService), logg)
	if err != nil {
		logg.Error(ctx, "failed to create dashboard service", err)
		os.Exit(1)
	}

	salesService, err = sales.NewService(sales.Deps{
		Tx:             dbClient,
		Cabs:           cabRepo,
		Accessories:    accessoryRepo,
		Customers:      customers.NewRepository(dbClient.DB()),
		Ledger:         sales.NewRepository(dbClient.DB()),
		CabCache:       cabService,
		AccessoryCache: accessoryService,
		Dashboard:      dashboardService,
		Audit:          activityService,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create sales service", err)
		os.Exit(1)
	}

	if err := dashboardService.Rehydrate(ctx); err != nil {
		logg.Error(ctx, "failed to rehydrate dashboard aggregates", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.Deps{
		Users:     userService,
		Sessions:  sessionManager,
		LastLogin: users.NewRepository(dbClient.DB()),
		Audit:     activityService,
		JWT:       cfg.JWT,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Sessions:    sessionManager,
		Auth:        authService,
		Cabs:        cabService,
		Accessories: accessoryService,
		Materials:   materialService,
		Customers:   customerService,
		Users:       userService,
		Sales:       salesService,
		Dashboard:   dashboardService,
		ActivityLog: activityService,
		HTTPMetrics: httpMetrics,
		Registry:    registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(runCtx, "shutdown signal received")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(runCtx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
