package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSSIBaseURL is the public SSI iBoard API host.
const DefaultSSIBaseURL = "https://iboard-api.ssi.com.vn"

// SSIClient reads prices from the SSI iBoard intraday chart.
type SSIClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewSSIClient creates an SSI client. An empty baseURL selects DefaultSSIBaseURL.
func NewSSIClient(httpClient *http.Client, baseURL string) *SSIClient {
	if baseURL == "" {
		baseURL = DefaultSSIBaseURL
	}
	return &SSIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns "ssi".
func (c *SSIClient) Name() string {
	return "ssi"
}

// LatestPrice returns the close price of the newest chart point, falling back
// to its traded price when the close is not yet set.
func (c *SSIClient) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/statistics/charts/symbols/%s", c.baseURL, url.PathEscape(symbol))

	var body ssiChartResponse
	if err := queryJSON(ctx, c.httpClient, endpoint, &body); err != nil {
		return decimal.Zero, fmt.Errorf("ssi %s: %w", symbol, err)
	}

	if len(body.Data) == 0 {
		return decimal.Zero, fmt.Errorf("ssi %s: %w", symbol, ErrNoPrice)
	}

	latest := body.Data[len(body.Data)-1]
	price, ok := firstPositive(latest.ClosePrice, latest.Price)
	if !ok {
		return decimal.Zero, fmt.Errorf("ssi %s: %w", symbol, ErrNoPrice)
	}

	return price, nil
}
