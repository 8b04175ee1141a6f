package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultVNDirectBaseURL is the public VNDirect finfo API host.
const DefaultVNDirectBaseURL = "https://finfo-api.vndirect.com.vn"

// VNDirectClient reads today's end-of-day price from VNDirect.
type VNDirectClient struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

// NewVNDirectClient creates a VNDirect client. An empty baseURL selects
// DefaultVNDirectBaseURL.
func NewVNDirectClient(httpClient *http.Client, baseURL string) *VNDirectClient {
	if baseURL == "" {
		baseURL = DefaultVNDirectBaseURL
	}
	return &VNDirectClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
}

// Name returns "vndirect".
func (c *VNDirectClient) Name() string {
	return "vndirect"
}

// LatestPrice asks for the newest price row dated today or later and returns
// its close, or the adjusted close when the close is missing.
func (c *VNDirectClient) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("sort", "date")
	q.Set("q", fmt.Sprintf("code:%s~date:gte:%s", symbol, c.now().UTC().Format("2006-01-02")))
	q.Set("size", "1")
	endpoint := c.baseURL + "/v4/stock_prices?" + q.Encode()

	var body vndirectPriceResponse
	if err := queryJSON(ctx, c.httpClient, endpoint, &body); err != nil {
		return decimal.Zero, fmt.Errorf("vndirect %s: %w", symbol, err)
	}

	if len(body.Data) == 0 {
		return decimal.Zero, fmt.Errorf("vndirect %s: %w", symbol, ErrNoPrice)
	}

	price, ok := firstPositive(body.Data[0].Close, body.Data[0].AdClose)
	if !ok {
		return decimal.Zero, fmt.Errorf("vndirect %s: %w", symbol, ErrNoPrice)
	}

	return price, nil
}
