package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/marketdata"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
)

// TestFuelCategory is the fuel expense category name used by NewTestFuelService.
const TestFuelCategory = "Xăng xe"

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(repository.NewTransactionRepository(db), zerolog.Nop())
}

// NewTestFetcher creates a price fetcher persisting into db and asking the
// given providers, in order.
func NewTestFetcher(t *testing.T, db *sql.DB, providers ...marketdata.Provider) *marketdata.Fetcher {
	t.Helper()

	fetcher, err := marketdata.NewFetcher(marketdata.Config{}, repository.NewPriceRepository(db), zerolog.Nop(), providers...)
	if err != nil {
		t.Fatalf("Failed to create price fetcher: %v", err)
	}
	return fetcher
}

func NewTestPriceService(t *testing.T, db *sql.DB, providers ...marketdata.Provider) *service.PriceService {
	t.Helper()

	return service.NewPriceService(
		NewTestFetcher(t, db, providers...),
		repository.NewPriceRepository(db),
		repository.NewTransactionRepository(db),
		zerolog.Nop(),
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB, providers ...marketdata.Provider) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewTransactionRepository(db),
		NewTestFetcher(t, db, providers...),
		zerolog.Nop(),
	)
}

func NewTestExpenseService(t *testing.T, db *sql.DB) *service.ExpenseService {
	t.Helper()

	return service.NewExpenseService(
		repository.NewExpenseCategoryRepository(db),
		repository.NewExpenseRepository(db),
		zerolog.Nop(),
	)
}

func NewTestFuelService(t *testing.T, db *sql.DB) *service.FuelService {
	t.Helper()

	return service.NewFuelService(
		repository.NewVehicleRepository(db),
		repository.NewFuelLogRepository(db),
		NewTestExpenseService(t, db),
		TestFuelCategory,
		zerolog.Nop(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{"import": true})
}

// MakeID returns a fresh random UUID string.
func MakeID() string {
	return uuid.New().String()
}
