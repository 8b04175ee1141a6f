// Package marketdata fetches latest stock prices from public Vietnamese market
// data endpoints, caches them in memory and persists them as last known prices.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

// ErrNoPrice is returned by a provider that answered but had no usable price.
var ErrNoPrice = errors.New("no price returned")

// Provider returns the latest traded price of a symbol.
type Provider interface {
	Name() string
	LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// queryJSON performs a GET against url and decodes the JSON body into out.
//
// The request carries a browser User-Agent; both upstream APIs reject the Go
// default. Any non-2xx status is an error.
func queryJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
