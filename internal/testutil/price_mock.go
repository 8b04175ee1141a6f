package testutil

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/marketdata"
)

// MockPriceProvider is a marketdata.Provider returning predefined prices
// instead of calling a market data API.
type MockPriceProvider struct {
	mu sync.Mutex
	// Prices maps an upper-case symbol to the price to return.
	Prices map[string]decimal.Decimal
	// MockError, when set, is returned for every symbol.
	MockError error
	// QueryCount tracks how many lookups were made.
	QueryCount int
}

// NewMockPriceProvider creates a provider answering with the given prices.
//
// Example usage:
//
//	provider := testutil.NewMockPriceProvider(map[string]float64{"VNM": 70000})
func NewMockPriceProvider(prices map[string]float64) *MockPriceProvider {
	m := &MockPriceProvider{Prices: make(map[string]decimal.Decimal, len(prices))}
	for sym, p := range prices {
		m.Prices[sym] = decimal.NewFromFloat(p)
	}
	return m
}

// Name implements marketdata.Provider.
func (m *MockPriceProvider) Name() string {
	return "mock"
}

// LatestPrice implements marketdata.Provider.
func (m *MockPriceProvider) LatestPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCount++
	if m.MockError != nil {
		return decimal.Zero, m.MockError
	}
	p, ok := m.Prices[symbol]
	if !ok {
		return decimal.Zero, marketdata.ErrNoPrice
	}
	return p, nil
}

// WithError configures the mock to return the specified error.
func (m *MockPriceProvider) WithError(err error) *MockPriceProvider {
	m.MockError = err
	return m
}

// Queries returns the number of lookups made so far.
func (m *MockPriceProvider) Queries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}
