package marketdata

import "github.com/shopspring/decimal"

// ssiChartResponse is the body of the SSI iBoard chart endpoint. Only the
// fields used to read the latest price are mapped; data is ordered oldest
// first.
type ssiChartResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    []struct {
		Time       int64           `json:"time"`
		ClosePrice decimal.Decimal `json:"closePrice"`
		Price      decimal.Decimal `json:"price"`
	} `json:"data"`
}

// vndirectPriceResponse is the body of the VNDirect stock_prices endpoint,
// newest row first.
type vndirectPriceResponse struct {
	Data []struct {
		Code    string          `json:"code"`
		Date    string          `json:"date"`
		Close   decimal.Decimal `json:"close"`
		AdClose decimal.Decimal `json:"adClose"`
	} `json:"data"`
	CurrentPage   int `json:"currentPage"`
	TotalElements int `json:"totalElements"`
}

// firstPositive returns the first strictly positive value.
func firstPositive(values ...decimal.Decimal) (decimal.Decimal, bool) {
	for _, v := range values {
		if v.IsPositive() {
			return v, true
		}
	}
	return decimal.Zero, false
}
