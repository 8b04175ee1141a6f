package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/marketdata"
)

// PriceRefresher refreshes the prices of every open position.
type PriceRefresher interface {
	RefreshAllPrices(ctx context.Context) (marketdata.Result, error)
}

// PriceRefreshJob force-fetches the prices of every symbol some user still holds.
type PriceRefreshJob struct {
	refresher PriceRefresher
	timeout   time.Duration
	log       zerolog.Logger
}

// NewPriceRefreshJob creates the job. Each run is bounded by timeout.
func NewPriceRefreshJob(refresher PriceRefresher, timeout time.Duration, log zerolog.Logger) *PriceRefreshJob {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &PriceRefreshJob{
		refresher: refresher,
		timeout:   timeout,
		log:       log.With().Str("job", "price_refresh").Logger(),
	}
}

func (j *PriceRefreshJob) Name() string {
	return "price_refresh"
}

func (j *PriceRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	res, err := j.refresher.RefreshAllPrices(ctx)
	if err != nil {
		return err
	}

	j.log.Info().
		Int("requested", res.Requested).
		Int("updated", res.Updated).
		Strs("missing", res.Missing).
		Msg("Prices refreshed")

	return nil
}
