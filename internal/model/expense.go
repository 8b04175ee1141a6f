package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory groups income or expense entries.
type ExpenseCategory struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expense is a household income or expense entry. CategoryID is empty when
// the entry is uncategorized.
type Expense struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	CategoryID   string          `json:"categoryId,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
	Type         string          `json:"type"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ExpenseFilter narrows an expense listing. Zero values match everything.
type ExpenseFilter struct {
	Type       string
	CategoryID string
	Month      int
	Year       int
}
