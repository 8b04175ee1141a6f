// Package importer turns trade spreadsheets into stock transactions.
//
// The expected layout is one trade per row after a header row:
//
//	symbol | buy price | sell price | quantity | P/L | date
//
// A row produces a BUY when the buy price is set and a SELL when the sell
// price is set; a row with both yields one of each for the same quantity.
// The P/L column is informational and ignored.
package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
)

const (
	colSymbol = iota
	colBuyPrice
	colSellPrice
	colQuantity
	colPL
	colDate
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// RowError describes a data row that produced no transaction.
// Row is 1-based and counts the header.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result is the outcome of ParseRows.
type Result struct {
	Transactions []accounting.Transaction
	Skipped      []RowError
}

// ParseRows converts spreadsheet rows into transactions. The first row is the
// header. Rows without a date are stamped with now.
func ParseRows(rows [][]string, now time.Time) Result {
	res := Result{Transactions: []accounting.Transaction{}, Skipped: []RowError{}}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		rowNum := i + 1

		symbol := accounting.NormalizeSymbol(cell(row, colSymbol))
		if symbol == "" {
			res.Skipped = append(res.Skipped, RowError{Row: rowNum, Reason: "missing symbol"})
			continue
		}

		qty, err := parseNumber(cell(row, colQuantity))
		if err != nil || !qty.IsPositive() {
			res.Skipped = append(res.Skipped, RowError{Row: rowNum, Reason: "missing or invalid quantity"})
			continue
		}

		buyPrice, err := parseNumber(cell(row, colBuyPrice))
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Row: rowNum, Reason: "invalid buy price"})
			continue
		}
		sellPrice, err := parseNumber(cell(row, colSellPrice))
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Row: rowNum, Reason: "invalid sell price"})
			continue
		}
		if !buyPrice.IsPositive() && !sellPrice.IsPositive() {
			res.Skipped = append(res.Skipped, RowError{Row: rowNum, Reason: "no buy or sell price"})
			continue
		}

		date, err := parseDate(cell(row, colDate), now)
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		if buyPrice.IsPositive() {
			res.Transactions = append(res.Transactions, accounting.Transaction{
				Symbol: symbol, Type: accounting.Buy, Date: date, Quantity: qty, Price: buyPrice,
			})
		}
		if sellPrice.IsPositive() {
			res.Transactions = append(res.Transactions, accounting.Transaction{
				Symbol: symbol, Type: accounting.Sell, Date: date, Quantity: qty, Price: sellPrice,
			})
		}
	}

	return res
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber reads a plain or thousands-separated number. Empty is zero.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.ReplaceAll(s, ",", ""), " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// parseDate accepts ISO dates, dd/mm/yyyy and spreadsheet serial day numbers.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q", s)
		}
		return t.UTC(), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
