package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/marketdata"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
)

// PriceFetcher resolves current market prices.
type PriceFetcher interface {
	Fetch(ctx context.Context, symbols []string, force bool) (marketdata.Result, error)
	Override(ctx context.Context, symbol string, price decimal.Decimal) error
}

// PriceService exposes stored prices and drives refreshes of the prices the
// users' open positions need.
type PriceService struct {
	fetcher         PriceFetcher
	priceRepo       *repository.PriceRepository
	transactionRepo *repository.TransactionRepository
	log             zerolog.Logger
}

// NewPriceService creates a new PriceService.
func NewPriceService(
	fetcher PriceFetcher,
	priceRepo *repository.PriceRepository,
	transactionRepo *repository.TransactionRepository,
	log zerolog.Logger,
) *PriceService {
	return &PriceService{
		fetcher:         fetcher,
		priceRepo:       priceRepo,
		transactionRepo: transactionRepo,
		log:             log.With().Str("service", "price").Logger(),
	}
}

// GetPrices returns the persisted prices of symbols, or of every symbol when
// none are given. Nothing is fetched.
func (s *PriceService) GetPrices(ctx context.Context, symbols []string) ([]model.MarketPrice, error) {
	normalized := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if sym = accounting.NormalizeSymbol(sym); sym != "" {
			normalized = append(normalized, sym)
		}
	}
	return s.priceRepo.ListPrices(ctx, normalized)
}

// UpdatePrice stores a manual price for symbol. It is used until the next
// forced refresh replaces it.
func (s *PriceService) UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal) (model.MarketPrice, error) {
	symbol = accounting.NormalizeSymbol(symbol)
	if err := s.fetcher.Override(ctx, symbol, price); err != nil {
		return model.MarketPrice{}, err
	}

	s.log.Info().Str("symbol", symbol).Str("price", price.String()).Msg("Manual price set")

	return s.priceRepo.GetPrice(ctx, symbol)
}

// RefreshPrices force-fetches the prices of the user's open positions.
func (s *PriceService) RefreshPrices(ctx context.Context, userID string) (model.PriceRefreshResponse, error) {
	symbols, err := s.openSymbols(ctx, userID)
	if err != nil {
		return model.PriceRefreshResponse{}, err
	}

	res, err := s.fetcher.Fetch(ctx, symbols, true)
	if err != nil {
		return model.PriceRefreshResponse{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRefreshPrices, err)
	}

	return model.PriceRefreshResponse{
		Updated: res.Updated,
		Total:   res.Requested,
		Missing: res.Missing,
		Prices:  res.Prices,
	}, nil
}

// RefreshAllPrices force-fetches the open symbols of every user.
func (s *PriceService) RefreshAllPrices(ctx context.Context) (marketdata.Result, error) {
	users, err := s.transactionRepo.ListUserIDs(ctx)
	if err != nil {
		return marketdata.Result{}, err
	}

	seen := map[string]bool{}
	var symbols []string
	for _, userID := range users {
		open, err := s.openSymbols(ctx, userID)
		if err != nil {
			return marketdata.Result{}, err
		}
		for _, sym := range open {
			if !seen[sym] {
				seen[sym] = true
				symbols = append(symbols, sym)
			}
		}
	}

	return s.fetcher.Fetch(ctx, symbols, true)
}

func (s *PriceService) openSymbols(ctx context.Context, userID string) ([]string, error) {
	txs, err := s.transactionRepo.ListByUser(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	return accounting.OpenSymbols(toAccounting(txs)), nil
}
