package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/household"
)

func ValidateCreateCategory(req request.CreateCategoryRequest) error {
	errors := make(map[string]string)

	checkName(errors, "name", strings.TrimSpace(req.Name), 100)
	checkEntryType(errors, req.Type)

	return orNil(errors)
}

func ValidateUpdateCategory(req request.UpdateCategoryRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		checkName(errors, "name", strings.TrimSpace(*req.Name), 100)
	}
	if req.Type != nil {
		checkEntryType(errors, *req.Type)
	}

	return orNil(errors)
}

// ValidateCreateExpense validates a household entry creation request.
//
// Required fields:
//   - type: income or expense
//   - date: YYYY-MM-DD or RFC3339
//   - amount: must be positive
//
// categoryId is optional but must be a UUID when set.
func ValidateCreateExpense(req request.CreateExpenseRequest) error {
	errors := make(map[string]string)

	checkEntryType(errors, req.Type)
	checkDate(errors, "date", strings.TrimSpace(req.Date))

	if !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}
	if req.CategoryID != "" {
		if err := ValidateUUID(req.CategoryID); err != nil {
			errors["categoryId"] = err.Error()
		}
	}

	return orNil(errors)
}

// ValidateUpdateExpense validates a household entry update request. An empty
// categoryId clears the category.
func ValidateUpdateExpense(req request.UpdateExpenseRequest) error {
	errors := make(map[string]string)

	if req.Type != nil {
		checkEntryType(errors, *req.Type)
	}
	if req.Date != nil {
		checkDate(errors, "date", strings.TrimSpace(*req.Date))
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		if err := ValidateUUID(*req.CategoryID); err != nil {
			errors["categoryId"] = err.Error()
		}
	}

	return orNil(errors)
}

func checkEntryType(errors map[string]string, value string) {
	t := strings.TrimSpace(value)
	if t == "" {
		errors["type"] = "type is required"
	} else if !household.EntryType(strings.ToLower(t)).Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", value)
	}
}
