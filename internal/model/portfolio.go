package model

import "github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"

// PriceStatus tells the client how complete the valuation is.
type PriceStatus struct {
	Requested int      `json:"requested"`
	Resolved  int      `json:"resolved"`
	Missing   []string `json:"missing"`
}

// PortfolioResponse is the current portfolio of a user.
type PortfolioResponse struct {
	Holdings    []accounting.Holding            `json:"holdings"`
	Summary     accounting.Summary              `json:"summary"`
	Skipped     []accounting.SkippedTransaction `json:"skipped,omitempty"`
	PriceStatus PriceStatus                     `json:"priceStatus"`
}
