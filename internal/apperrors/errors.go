package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist for the user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPriceNotFound indicates that no price has ever been stored for a symbol.
	ErrPriceNotFound = errors.New("price not found")

	// ErrCategoryNotFound indicates that an expense category with the given ID does not exist for the user.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrExpenseNotFound indicates that an expense entry with the given ID does not exist for the user.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrVehicleNotFound indicates that a vehicle with the given ID does not exist for the user.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrFuelLogNotFound indicates that a fuel log with the given ID does not exist for the user.
	ErrFuelLogNotFound = errors.New("fuel log not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrCategoryTypeMismatch indicates an entry whose type differs from its category's type.
	ErrCategoryTypeMismatch = errors.New("category type does not match entry type")

	// ErrUnauthorized indicates a missing, malformed or expired bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNothingToImport indicates an uploaded file without a single usable row.
	ErrNothingToImport = errors.New("no transactions found in file")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToImportTransactions   = errors.New("failed to import transactions")

	ErrFailedToRetrievePrices = errors.New("failed to retrieve prices")
	ErrFailedToUpdatePrice    = errors.New("failed to update price")
	ErrFailedToRefreshPrices  = errors.New("failed to refresh prices")

	ErrFailedToGetPortfolio = errors.New("failed to get portfolio")
	ErrFailedToGetReport    = errors.New("failed to get report")

	ErrFailedToRetrieveCategories = errors.New("failed to retrieve categories")
	ErrFailedToRetrieveExpenses   = errors.New("failed to retrieve expenses")
	ErrFailedToGetExpenseSummary  = errors.New("failed to get expense summary")

	ErrFailedToRetrieveVehicles = errors.New("failed to retrieve vehicles")
	ErrFailedToRetrieveFuelLogs = errors.New("failed to retrieve fuel logs")
	ErrFailedToGetFuelReport    = errors.New("failed to get fuel report")

	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
