package request

import "github.com/shopspring/decimal"

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

// CreateExpenseRequest creates a household entry. An empty CategoryID leaves
// the entry uncategorized.
type CreateExpenseRequest struct {
	Type       string          `json:"type"`
	CategoryID string          `json:"categoryId"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

type UpdateExpenseRequest struct {
	Type       *string          `json:"type,omitempty"`
	CategoryID *string          `json:"categoryId,omitempty"`
	Date       *string          `json:"date,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Note       *string          `json:"note,omitempty"`
}
