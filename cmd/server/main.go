package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/config"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/database"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/marketdata"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/scheduler"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logg := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	tokenKeys, err := cfg.Auth.Keys()
	if err != nil {
		logg.Fatal().Err(err).Msg("Invalid auth configuration")
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logg.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	dbVersion, err := database.Migrate(context.Background(), db)
	if err != nil {
		logg.Fatal().Err(err).Msg("Failed to migrate database")
	}

	logg.Info().
		Str("path", cfg.Database.Path).
		Int64("schemaVersion", dbVersion).
		Msg("Connected to database")

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	categoryRepo := repository.NewExpenseCategoryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	fuelLogRepo := repository.NewFuelLogRepository(db)

	// Market data
	httpClient := &http.Client{Timeout: cfg.Prices.FetchTimeout}
	fetcher, err := marketdata.NewFetcher(
		marketdata.Config{
			CacheSize:   cfg.Prices.CacheSize,
			CacheTTL:    cfg.Prices.CacheTTL,
			Concurrency: cfg.Prices.FetchConcurrency,
			Timeout:     cfg.Prices.FetchTimeout,
		},
		priceRepo,
		logg,
		marketdata.NewSSIClient(httpClient, cfg.Prices.SSIBaseURL),
		marketdata.NewVNDirectClient(httpClient, cfg.Prices.VNDirectBaseURL),
	)
	if err != nil {
		logg.Fatal().Err(err).Msg("Failed to create price fetcher")
	}

	// Create services
	expenseService := service.NewExpenseService(categoryRepo, expenseRepo, logg)
	services := api.Services{
		System: service.NewSystemService(db, map[string]bool{
			"import":       true,
			"priceRefresh": cfg.Prices.RefreshEnabled,
		}),
		Transaction: service.NewTransactionService(transactionRepo, logg),
		Price:       service.NewPriceService(fetcher, priceRepo, transactionRepo, logg),
		Portfolio:   service.NewPortfolioService(transactionRepo, fetcher, logg),
		Expense:     expenseService,
		Fuel:        service.NewFuelService(vehicleRepo, fuelLogRepo, expenseService, cfg.Fuel.CategoryName, logg),
	}

	// Create router
	router := api.NewRouter(services, api.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TokenKeys:      tokenKeys,
		TokenTTL:       cfg.Auth.TokenTTL,
		Logger:         logg,
	})

	// Background price refresh
	sched := scheduler.New(logg)
	if cfg.Prices.RefreshEnabled {
		job := scheduler.NewPriceRefreshJob(services.Price, 2*time.Minute, logg)
		if err := sched.AddJob(cfg.Prices.RefreshSchedule, job); err != nil {
			logg.Fatal().Err(err).Str("schedule", cfg.Prices.RefreshSchedule).Msg("Invalid price refresh schedule")
		}
	}
	sched.Start()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logg.Info().Str("addr", cfg.Server.Addr).Str("version", version.Version).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info().Msg("Shutting down server...")
	sched.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error().Err(err).Msg("Server forced to shutdown")
	}

	logg.Info().Msg("Server exited")
}
