package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
)

// PortfolioService values a user's stock holdings and builds period reports.
type PortfolioService struct {
	source  TransactionSource
	fetcher PriceFetcher
	log     zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(source TransactionSource, fetcher PriceFetcher, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{
		source:  source,
		fetcher: fetcher,
		log:     log.With().Str("service", "portfolio").Logger(),
	}
}

// GetPortfolio replays the user's transactions against current prices.
//
// Only symbols with an open position are priced. Price lookup failures leave
// those symbols at zero and are listed in PriceStatus.Missing; they never fail
// the request.
func (s *PortfolioService) GetPortfolio(ctx context.Context, userID string) (model.PortfolioResponse, error) {
	rows, err := s.source.ListByUser(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return model.PortfolioResponse{}, err
	}
	txs := toAccounting(rows)

	open := accounting.OpenSymbols(txs)
	status := model.PriceStatus{Requested: len(open), Missing: []string{}}

	prices := accounting.Prices{}
	if len(open) > 0 {
		res, err := s.fetcher.Fetch(ctx, open, false)
		if err != nil {
			s.log.Warn().Err(err).Str("user", userID).Msg("Price fetch interrupted")
		}
		for sym, p := range res.Prices {
			prices[sym] = p
		}
		status.Missing = res.Missing
		status.Resolved = status.Requested - len(res.Missing)
	}

	p := accounting.ComputePortfolio(txs, prices)
	if len(p.Skipped) > 0 {
		s.log.Warn().Str("user", userID).Int("skipped", len(p.Skipped)).Msg("Malformed transactions ignored")
	}

	return model.PortfolioResponse{
		Holdings:    p.Holdings,
		Summary:     p.Summary,
		Skipped:     p.Skipped,
		PriceStatus: status,
	}, nil
}

// GetReport computes the period report for the user. History after the end
// of the window is never loaded.
func (s *PortfolioService) GetReport(ctx context.Context, userID string, q accounting.ReportQuery) (accounting.Report, error) {
	if q.Start.IsZero() || q.End.IsZero() {
		return accounting.ComputeReport(nil, q), nil
	}

	rows, err := s.source.ListByUserUntil(ctx, userID, q.Cutoff().UTC().Truncate(time.Second))
	if err != nil {
		return accounting.Report{}, err
	}

	return accounting.ComputeReport(toAccounting(rows), q), nil
}
