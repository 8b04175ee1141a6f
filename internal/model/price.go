package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketPrice is the last known price of a symbol.
type MarketPrice struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Source    string          `json:"source"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PriceRefreshResponse represents the response for a forced price refresh.
// Updated counts the symbols a live provider answered for out of Total.
type PriceRefreshResponse struct {
	Updated int                        `json:"updated"`
	Total   int                        `json:"total"`
	Missing []string                   `json:"missing"`
	Prices  map[string]decimal.Decimal `json:"prices"`
}
