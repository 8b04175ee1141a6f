package api

import (
	"net/http"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
)

// Services bundles the services the router exposes.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Price       *service.PriceService
	Portfolio   *service.PortfolioService
	Expense     *service.ExpenseService
	Fuel        *service.FuelService
}

// Options configures the cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	TokenKeys      []*fernet.Key
	TokenTTL       time.Duration
	Logger         zerolog.Logger
}

// NewRouter creates and configures the HTTP router. System endpoints are
// public; everything else requires a bearer token.
func NewRouter(s Services, opts Options) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(opts.Logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(opts.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(s.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.Authenticate(opts.TokenKeys, opts.TokenTTL))

			r.Route("/transactions", func(r chi.Router) {
				transactionHandler := handlers.NewTransactionHandler(s.Transaction)
				r.Get("/", transactionHandler.ListTransactions)
				r.Post("/", transactionHandler.CreateTransaction)
				r.Post("/import", transactionHandler.ImportTransactions)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.RequireUUID("uuid"))
					r.Get("/", transactionHandler.GetTransaction)
					r.Put("/", transactionHandler.UpdateTransaction)
					r.Delete("/", transactionHandler.DeleteTransaction)
				})
			})

			r.Route("/prices", func(r chi.Router) {
				priceHandler := handlers.NewPriceHandler(s.Price)
				r.Get("/", priceHandler.GetPrices)
				r.Post("/refresh", priceHandler.RefreshPrices)
				r.Put("/{symbol}", priceHandler.UpdatePrice)
			})

			portfolioHandler := handlers.NewPortfolioHandler(s.Portfolio)
			r.Get("/portfolio", portfolioHandler.GetPortfolio)
			r.Get("/report", portfolioHandler.GetReport)

			r.Route("/expenses", func(r chi.Router) {
				expenseHandler := handlers.NewExpenseHandler(s.Expense)
				r.Get("/", expenseHandler.ListExpenses)
				r.Post("/", expenseHandler.CreateExpense)
				r.Get("/summary", expenseHandler.GetSummary)

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", expenseHandler.ListCategories)
					r.Post("/", expenseHandler.CreateCategory)

					r.Route("/{uuid}", func(r chi.Router) {
						r.Use(custommiddleware.RequireUUID("uuid"))
						r.Put("/", expenseHandler.UpdateCategory)
						r.Delete("/", expenseHandler.DeleteCategory)
					})
				})

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.RequireUUID("uuid"))
					r.Get("/", expenseHandler.GetExpense)
					r.Put("/", expenseHandler.UpdateExpense)
					r.Delete("/", expenseHandler.DeleteExpense)
				})
			})

			r.Route("/fuel", func(r chi.Router) {
				fuelHandler := handlers.NewFuelHandler(s.Fuel)
				r.Get("/report", fuelHandler.GetReport)

				r.Route("/vehicles", func(r chi.Router) {
					r.Get("/", fuelHandler.ListVehicles)
					r.Post("/", fuelHandler.CreateVehicle)

					r.Route("/{uuid}", func(r chi.Router) {
						r.Use(custommiddleware.RequireUUID("uuid"))
						r.Put("/", fuelHandler.UpdateVehicle)
						r.Delete("/", fuelHandler.DeleteVehicle)
					})
				})

				r.Route("/logs", func(r chi.Router) {
					r.Get("/", fuelHandler.ListFuelLogs)
					r.Post("/", fuelHandler.CreateFuelLog)

					r.Route("/{uuid}", func(r chi.Router) {
						r.Use(custommiddleware.RequireUUID("uuid"))
						r.Put("/", fuelHandler.UpdateFuelLog)
						r.Delete("/", fuelHandler.DeleteFuelLog)
					})
				})
			})
		})
	})

	return r
}
