package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
)

// Transaction represents a stock buy or sell owned by a user.
type Transaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Symbol    string          `json:"symbol"`
	Type      string          `json:"type"`
	Date      time.Time       `json:"date"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Accounting converts the row into the replay engine's input type.
func (t Transaction) Accounting() accounting.Transaction {
	return accounting.Transaction{
		ID:       t.ID,
		Symbol:   t.Symbol,
		Type:     accounting.TransactionType(t.Type),
		Date:     t.Date,
		Quantity: t.Quantity,
		Price:    t.Price,
		Note:     t.Note,
	}
}

// TransactionResponse is a transaction enriched for listing. RealizedPL is
// the profit of a sell at the average cost it was replayed against.
type TransactionResponse struct {
	Transaction
	TotalValue decimal.Decimal  `json:"totalValue"`
	RealizedPL *decimal.Decimal `json:"realizedPL,omitempty"`
}

// TransactionFilter narrows a transaction listing. Empty fields match everything.
type TransactionFilter struct {
	Symbol    string
	Type      string
	StartDate time.Time
	EndDate   time.Time
}

// ImportResponse reports the outcome of a spreadsheet import.
type ImportResponse struct {
	Imported int              `json:"imported"`
	Skipped  []ImportRowError `json:"skipped"`
}

// ImportRowError describes a spreadsheet row that was not imported.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
