// Package accounting replays stock transactions into weighted-average-cost
// positions and derives holdings, portfolio totals and period reports.
//
// Every function in this package is a pure function of its arguments. Callers
// load transactions and market prices beforehand; nothing here performs I/O or
// keeps state between calls, so concurrent use is safe as long as each call
// gets its own transaction slice.
package accounting

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the side of a stock transaction.
type TransactionType string

const (
	Buy  TransactionType = "BUY"
	Sell TransactionType = "SELL"
)

// Valid reports whether t is BUY or SELL.
func (t TransactionType) Valid() bool {
	return t == Buy || t == Sell
}

// Transaction is a single buy or sell of a stock symbol.
type Transaction struct {
	ID       string          `json:"id"`
	Symbol   string          `json:"symbol"`
	Type     TransactionType `json:"type"`
	Date     time.Time       `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Note     string          `json:"note,omitempty"`
}

// AnnotatedTransaction is a transaction as seen by a replay.
// RealizedPL is set for sells only and holds that sell's own contribution.
type AnnotatedTransaction struct {
	Transaction
	RealizedPL decimal.NullDecimal `json:"realizedPL"`
}

// SkippedTransaction is an input row the replay ignored.
type SkippedTransaction struct {
	Transaction
	Reason string `json:"reason"`
}

// Prices maps an upper-case symbol to its current market price.
// A missing or non-positive entry means no live price is known.
type Prices map[string]decimal.Decimal

func (p Prices) lookup(symbol string) decimal.Decimal {
	price, ok := p[symbol]
	if !ok || !price.IsPositive() {
		return decimal.Zero
	}
	return price
}

// Holding is the replayed state of one symbol.
type Holding struct {
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgPrice     decimal.Decimal `json:"avgPrice"`
	AvgSellPrice decimal.Decimal `json:"avgSellPrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	MarketValue  decimal.Decimal `json:"marketValue"`
	RealizedPL   decimal.Decimal `json:"realizedPL"`
	UnrealizedPL decimal.Decimal `json:"unrealizedPL"`
	TotalPL      decimal.Decimal `json:"totalPL"`
	ChartValue   decimal.Decimal `json:"chartValue"`
	Allocation   decimal.Decimal `json:"allocation"`
	// Oversold is set when recorded sells exceed recorded buys.
	Oversold bool `json:"oversold"`
}

// Summary aggregates all holdings of a portfolio.
type Summary struct {
	TotalInvested     decimal.Decimal `json:"totalInvested"`
	TotalMarketValue  decimal.Decimal `json:"totalMarketValue"`
	TotalRealizedPL   decimal.Decimal `json:"totalRealizedPL"`
	TotalUnrealizedPL decimal.Decimal `json:"totalUnrealizedPL"`
	TotalPL           decimal.Decimal `json:"totalPL"`
	ReturnRate        decimal.Decimal `json:"returnRate"`
}

// Portfolio is the result of ComputePortfolio.
type Portfolio struct {
	Holdings     []Holding              `json:"holdings"`
	Summary      Summary                `json:"summary"`
	Transactions []AnnotatedTransaction `json:"transactions"`
	Skipped      []SkippedTransaction   `json:"skipped,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// sanitize normalizes symbols and types and splits off rows the replay cannot use.
func sanitize(txs []Transaction) ([]Transaction, []SkippedTransaction) {
	valid := make([]Transaction, 0, len(txs))
	var skipped []SkippedTransaction

	for _, t := range txs {
		t.Symbol = NormalizeSymbol(t.Symbol)
		t.Type = TransactionType(strings.ToUpper(strings.TrimSpace(string(t.Type))))

		reason := ""
		switch {
		case t.Symbol == "":
			reason = "missing symbol"
		case !t.Type.Valid():
			reason = "unknown transaction type"
		case !t.Quantity.IsPositive():
			reason = "quantity must be positive"
		case t.Price.IsNegative():
			reason = "price cannot be negative"
		}

		if reason != "" {
			skipped = append(skipped, SkippedTransaction{Transaction: t, Reason: reason})
			continue
		}
		valid = append(valid, t)
	}

	return valid, skipped
}
