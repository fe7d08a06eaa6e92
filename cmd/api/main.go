package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calatours/backoffice/internal/app"
	"github.com/calatours/backoffice/internal/clock"
	"github.com/calatours/backoffice/internal/config"
	"github.com/calatours/backoffice/internal/plugin"
	"github.com/calatours/backoffice/internal/storage/postgres"
	transporthttp "github.com/calatours/backoffice/internal/transport/http"
	"github.com/calatours/backoffice/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Tour-operator inventory and pricing service",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd(), sweepCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg := config.Load(logger)
			if err := cfg.ValidateForServe(); err != nil {
				return err
			}

			startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			pool, err := connect(startupCtx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := migrations.Apply(startupCtx, pool); err != nil {
				return fmt.Errorf("apply migrations: %w", err)
			}

			clk := clock.NewSystem()
			ledger := app.NewLedger(postgres.NewLedgerStore(pool), clk)
			registry := plugin.NewRegistry(plugin.NewHotelStrategy())

			catalogRepo := postgres.NewCatalogRepository(pool)
			allocationSvc := app.NewAllocationService(postgres.NewAllocationRepository(pool), ledger, clk)
			holdSvc := app.NewHoldService(postgres.NewHoldRepository(pool), ledger, clk, app.WithHoldTTL(cfg.HoldTTL))
			bookingSvc := app.NewBookingService(postgres.NewBookingRepository(pool), ledger, clk)
			stockSvc := app.NewStockService(postgres.NewStockRepository(pool), ledger, clk, logger)
			pricingSvc := app.NewPricingService(catalogRepo, registry, stockSvc)
			adminSvc := app.NewAdminService(catalogRepo, clk)
			authSvc := app.NewAuthService(postgres.NewUserRepository(pool), clk, cfg.JWTSecret)

			mux := http.NewServeMux()
			mux.HandleFunc("GET /health", transporthttp.HealthHandler)
			mux.Handle("POST /login", transporthttp.HandleLogin(authSvc))

			protected := http.NewServeMux()
			protected.Handle("POST /admin/suppliers", transporthttp.HandleCreateSupplier(adminSvc))
			protected.Handle("GET /admin/suppliers", transporthttp.HandleListSuppliers(adminSvc))
			protected.Handle("POST /admin/suppliers/{id}/resources", transporthttp.HandleCreateResource(adminSvc))
			protected.Handle("GET /admin/suppliers/{id}/resources", transporthttp.HandleListResources(adminSvc))
			protected.Handle("POST /admin/products", transporthttp.HandleCreateProduct(adminSvc))
			protected.Handle("POST /admin/offers", transporthttp.HandleCreateOffer(adminSvc))
			protected.Handle("POST /admin/contracts", transporthttp.HandleCreateContract(adminSvc))
			protected.Handle("POST /admin/pools", transporthttp.HandleCreatePool(adminSvc))
			protected.Handle("GET /admin/resources/{id}/pools", transporthttp.HandleListPools(adminSvc))
			protected.Handle("POST /allocations", transporthttp.HandleCreateAllocation(allocationSvc))
			protected.Handle("PATCH /allocations/{id}", transporthttp.HandleUpdateAllocation(allocationSvc))
			protected.Handle("DELETE /allocations/{id}", transporthttp.HandleDeleteAllocation(allocationSvc))
			protected.Handle("POST /holds", transporthttp.HandleCreateHold(holdSvc))
			protected.Handle("DELETE /holds/{id}", transporthttp.HandleReleaseHold(holdSvc))
			protected.Handle("POST /bookings", transporthttp.HandleCreateBooking(bookingSvc))
			protected.Handle("DELETE /bookings/{id}", transporthttp.HandleCancelBooking(bookingSvc))
			protected.Handle("GET /pools/{id}/ledger", transporthttp.HandleGetLedger(stockSvc))
			protected.Handle("GET /pools/{id}/availability", transporthttp.HandleGetAvailability(pricingSvc))
			protected.Handle("POST /pricing/quote", transporthttp.HandleQuote(pricingSvc))
			protected.Handle("/", transporthttp.NotFoundHandler())
			mux.Handle("/", transporthttp.RequireAuth(cfg.JWTSecret, protected))

			handler := transporthttp.RequestLogger(transporthttp.CORS(parseCSV(cfg.CORSOrigins), mux), logger)

			server := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: handler,
			}

			stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go stockSvc.Run(stopCtx, cfg.SweepInterval)

			logger.Info("api listening", zap.String("port", cfg.Port))

			srvErr := make(chan error, 1)
			go func() {
				srvErr <- server.ListenAndServe()
			}()

			select {
			case err := <-srvErr:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server error", zap.Error(err))
				}
			case <-stopCtx.Done():
				logger.Info("shutdown signal received, stopping server")
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server shutdown error", zap.Error(err))
			}
			logger.Info("server stopped")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg := config.Load(logger)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := migrations.Apply(ctx, pool); err != nil {
				return fmt.Errorf("apply migrations: %w", err)
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Release expired holds once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg := config.Load(logger)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			clk := clock.NewSystem()
			ledger := app.NewLedger(postgres.NewLedgerStore(pool), clk)
			stockSvc := app.NewStockService(postgres.NewStockRepository(pool), ledger, clk, logger)

			n, err := stockSvc.SweepExpired(ctx)
			if err != nil {
				return err
			}
			logger.Info("sweep complete", zap.Int("released", n))
			return nil
		},
	}
}

func connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return pool, nil
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
