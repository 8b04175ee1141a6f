package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
)

// PriceRepository stores the last known price of each symbol.
// It is the persistence sink of the market data fetcher.
type PriceRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db, now: time.Now}
}

// LoadPrices returns the stored prices of the given symbols. Symbols without a
// stored price are absent from the result. An empty symbols list loads everything.
func (r *PriceRepository) LoadPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	prices, err := r.ListPrices(ctx, symbols)
	if err != nil {
		return nil, err
	}

	out := make(map[string]decimal.Decimal, len(prices))
	for _, p := range prices {
		out[p.Symbol] = p.Price
	}
	return out, nil
}

// ListPrices returns the stored price rows of the given symbols ordered by
// symbol. An empty symbols list returns every row.
func (r *PriceRepository) ListPrices(ctx context.Context, symbols []string) ([]model.MarketPrice, error) {
	query := `SELECT symbol, price, source, updated_at FROM market_price`
	args := make([]any, 0, len(symbols))

	if len(symbols) > 0 {
		query += ` WHERE symbol IN (` + placeholders(len(symbols)) + `)`
		for _, s := range symbols {
			args = append(args, s)
		}
	}
	query += ` ORDER BY symbol ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query market_price table: %w", err)
	}
	defer rows.Close()

	prices := []model.MarketPrice{}
	for rows.Next() {
		var p model.MarketPrice
		var updatedAtStr string
		if err := rows.Scan(&p.Symbol, &p.Price, &p.Source, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan market_price results: %w", err)
		}
		if p.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market_price table: %w", err)
	}

	return prices, nil
}

// GetPrice returns the stored price of one symbol.
// Returns apperrors.ErrPriceNotFound when nothing is stored.
func (r *PriceRepository) GetPrice(ctx context.Context, symbol string) (model.MarketPrice, error) {
	prices, err := r.ListPrices(ctx, []string{symbol})
	if err != nil {
		return model.MarketPrice{}, err
	}
	if len(prices) == 0 {
		return model.MarketPrice{}, apperrors.ErrPriceNotFound
	}
	return prices[0], nil
}

// SavePrice inserts or replaces the stored price of a symbol.
func (r *PriceRepository) SavePrice(ctx context.Context, symbol string, price decimal.Decimal, source string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO market_price (symbol, price, source, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			price = excluded.price,
			source = excluded.source,
			updated_at = excluded.updated_at
	`, symbol, price, source, FormatTime(r.now()))
	if err != nil {
		return fmt.Errorf("failed to save price for %s: %w", symbol, err)
	}
	return nil
}
