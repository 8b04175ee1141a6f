package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func at(s string) time.Time {
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return d
}

func buy(id, symbol string, date time.Time, qty, price float64) Transaction {
	return Transaction{
		ID:       id,
		Symbol:   symbol,
		Type:     Buy,
		Date:     date,
		Quantity: decimal.NewFromFloat(qty),
		Price:    decimal.NewFromFloat(price),
	}
}

func sell(id, symbol string, date time.Time, qty, price float64) Transaction {
	t := buy(id, symbol, date, qty, price)
	t.Type = Sell
	return t
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "expected %s, got %s", want, got.String())
}

func holdingFor(t *testing.T, p Portfolio, symbol string) Holding {
	t.Helper()
	for _, h := range p.Holdings {
		if h.Symbol == symbol {
			return h
		}
	}
	t.Fatalf("holding %s not found", symbol)
	return Holding{}
}
