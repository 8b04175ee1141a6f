package request

import "github.com/shopspring/decimal"

type CreateTransactionRequest struct {
	Symbol   string          `json:"symbol"`
	Type     string          `json:"type"`
	Date     string          `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Note     string          `json:"note"`
}

type UpdateTransactionRequest struct {
	Symbol   *string          `json:"symbol,omitempty"`
	Type     *string          `json:"type,omitempty"`
	Date     *string          `json:"date,omitempty"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Note     *string          `json:"note,omitempty"`
}

type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}
