package marketdata

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
)

// SourceManual marks prices entered by the user rather than fetched.
const SourceManual = "manual"

// PriceStore persists the last known price of each symbol.
type PriceStore interface {
	LoadPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
	SavePrice(ctx context.Context, symbol string, price decimal.Decimal, source string) error
}

// Config tunes a Fetcher. Zero values fall back to defaults.
type Config struct {
	CacheSize   int
	CacheTTL    time.Duration
	Concurrency int
	Timeout     time.Duration
}

// Result is the outcome of a Fetch.
type Result struct {
	// Prices holds a price for every requested symbol, 0 when none is known.
	Prices map[string]decimal.Decimal
	// Requested is the number of distinct symbols asked for.
	Requested int
	// Updated counts symbols refreshed from a live provider in this call.
	Updated int
	// Missing lists, sorted, the symbols that ended up without a price.
	Missing []string
}

type cachedPrice struct {
	price     decimal.Decimal
	source    string
	fetchedAt time.Time
}

// Fetcher resolves prices in order: in-memory cache, live providers (first
// success wins), last persisted price. Live prices are written back to the
// cache and the store.
type Fetcher struct {
	providers []Provider
	store     PriceStore
	cache     *lru.Cache
	ttl       time.Duration
	limit     int
	timeout   time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// NewFetcher builds a Fetcher over providers, tried in the given order.
func NewFetcher(cfg Config, store PriceStore, log zerolog.Logger, providers ...Provider) (*Fetcher, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 512
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create price cache: %w", err)
	}

	return &Fetcher{
		providers: providers,
		store:     store,
		cache:     cache,
		ttl:       cfg.CacheTTL,
		limit:     cfg.Concurrency,
		timeout:   cfg.Timeout,
		now:       time.Now,
		log:       log.With().Str("service", "marketdata").Logger(),
	}, nil
}

// Fetch returns a price for each symbol. Unless force is set, symbols with a
// fresh cache entry are not fetched again. Provider and store failures are
// logged and never fail the call; only cancellation of ctx is returned, along
// with whatever was resolved so far.
func (f *Fetcher) Fetch(ctx context.Context, symbols []string, force bool) (Result, error) {
	wanted := normalize(symbols)
	result := Result{
		Prices:    make(map[string]decimal.Decimal, len(wanted)),
		Requested: len(wanted),
		Missing:   []string{},
	}
	if len(wanted) == 0 {
		return result, nil
	}

	stored := map[string]decimal.Decimal{}
	if f.store != nil {
		loaded, err := f.store.LoadPrices(ctx, wanted)
		if err != nil {
			f.log.Warn().Err(err).Msg("Failed to load stored prices")
		} else {
			stored = loaded
		}
	}

	var toFetch []string
	for _, symbol := range wanted {
		if !force {
			if c, ok := f.cached(symbol); ok {
				result.Prices[symbol] = c.price
				continue
			}
		}
		toFetch = append(toFetch, symbol)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.limit)

	for _, symbol := range toFetch {
		symbol := symbol
		g.Go(func() error {
			price, source, ok := f.fetchLive(gctx, symbol)
			if !ok {
				return nil
			}

			f.remember(symbol, price, source)
			if f.store != nil {
				if err := f.store.SavePrice(gctx, symbol, price, source); err != nil {
					f.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to persist price")
				}
			}

			mu.Lock()
			result.Prices[symbol] = price
			result.Updated++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, symbol := range wanted {
		if _, ok := result.Prices[symbol]; ok {
			continue
		}
		if p, ok := stored[symbol]; ok && p.IsPositive() {
			result.Prices[symbol] = p
			continue
		}
		result.Prices[symbol] = decimal.Zero
		result.Missing = append(result.Missing, symbol)
	}
	sort.Strings(result.Missing)

	f.log.Debug().
		Int("requested", result.Requested).
		Int("updated", result.Updated).
		Int("missing", len(result.Missing)).
		Msg("Fetched prices")

	return result, ctx.Err()
}

// Override records a user supplied price, replacing any cached value.
func (f *Fetcher) Override(ctx context.Context, symbol string, price decimal.Decimal) error {
	symbol = accounting.NormalizeSymbol(symbol)
	if f.store != nil {
		if err := f.store.SavePrice(ctx, symbol, price, SourceManual); err != nil {
			return fmt.Errorf("failed to save price: %w", err)
		}
	}
	f.remember(symbol, price, SourceManual)
	return nil
}

// Invalidate drops every cached price.
func (f *Fetcher) Invalidate() {
	f.cache.Purge()
}

func (f *Fetcher) fetchLive(ctx context.Context, symbol string) (decimal.Decimal, string, bool) {
	for _, p := range f.providers {
		if ctx.Err() != nil {
			return decimal.Zero, "", false
		}

		pctx, cancel := context.WithTimeout(ctx, f.timeout)
		price, err := p.LatestPrice(pctx, symbol)
		cancel()

		if err == nil && price.IsPositive() {
			return price, p.Name(), true
		}
		f.log.Debug().Err(err).Str("provider", p.Name()).Str("symbol", symbol).Msg("Provider returned no price")
	}

	f.log.Warn().Str("symbol", symbol).Msg("No provider returned a price")
	return decimal.Zero, "", false
}

func (f *Fetcher) cached(symbol string) (cachedPrice, bool) {
	v, ok := f.cache.Get(symbol)
	if !ok {
		return cachedPrice{}, false
	}
	c := v.(cachedPrice)
	if c.source != SourceManual && f.now().Sub(c.fetchedAt) > f.ttl {
		return cachedPrice{}, false
	}
	return c, true
}

func (f *Fetcher) remember(symbol string, price decimal.Decimal, source string) {
	f.cache.Add(symbol, cachedPrice{price: price, source: source, fetchedAt: f.now()})
}

func normalize(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = accounting.NormalizeSymbol(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
