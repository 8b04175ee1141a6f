package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
)

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - symbol: non-empty, at most 16 characters
//   - type: BUY or SELL, case-insensitive
//   - date: YYYY-MM-DD or RFC3339
//   - quantity: must be positive
//   - price: must not be negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	checkName(errors, "symbol", accounting.NormalizeSymbol(req.Symbol), 16)
	checkTransactionType(errors, req.Type)
	checkDate(errors, "date", strings.TrimSpace(req.Date))

	if !req.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price.IsNegative() {
		errors["price"] = "price cannot be negative"
	}

	return orNil(errors)
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Symbol != nil {
		checkName(errors, "symbol", accounting.NormalizeSymbol(*req.Symbol), 16)
	}
	if req.Type != nil {
		checkTransactionType(errors, *req.Type)
	}
	if req.Date != nil {
		checkDate(errors, "date", strings.TrimSpace(*req.Date))
	}
	if req.Quantity != nil && !req.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price != nil && req.Price.IsNegative() {
		errors["price"] = "price cannot be negative"
	}

	return orNil(errors)
}

// ValidateUpdatePrice validates a manual price override. The price must be positive.
func ValidateUpdatePrice(symbol string, req request.UpdatePriceRequest) error {
	errors := make(map[string]string)

	checkName(errors, "symbol", accounting.NormalizeSymbol(symbol), 16)
	if !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	return orNil(errors)
}

func checkTransactionType(errors map[string]string, value string) {
	t := strings.TrimSpace(value)
	if t == "" {
		errors["type"] = "type is required"
	} else if !accounting.TransactionType(strings.ToUpper(t)).Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", value)
	}
}
