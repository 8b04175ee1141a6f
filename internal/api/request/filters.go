package request

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/household"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/model"
)

// ParseTransactionFilter converts transaction listing query parameters into a
// model.TransactionFilter. All parameters are optional.
//
// Validation rules:
//   - type: BUY or SELL, case-insensitive
//   - startDate/endDate: YYYY-MM-DD or RFC3339; a plain endDate covers the whole day
//   - startDate must not be after endDate
func ParseTransactionFilter(symbolParam, typeParam, startDateParam, endDateParam string) (model.TransactionFilter, error) {
	filter := model.TransactionFilter{
		Symbol: accounting.NormalizeSymbol(symbolParam),
	}

	if typeParam != "" {
		t := accounting.TransactionType(strings.ToUpper(strings.TrimSpace(typeParam)))
		if !t.Valid() {
			return filter, fmt.Errorf("invalid type: %s", typeParam)
		}
		filter.Type = string(t)
	}

	var err error
	if startDateParam != "" {
		if filter.StartDate, err = parseFilterTime(startDateParam); err != nil {
			return filter, fmt.Errorf("invalid startDate format: %w", err)
		}
	}
	if endDateParam != "" {
		if filter.EndDate, err = parseFilterTime(endDateParam); err != nil {
			return filter, fmt.Errorf("invalid endDate format: %w", err)
		}
		if isDateOnly(endDateParam) {
			filter.EndDate = filter.EndDate.AddDate(0, 0, 1).Add(-time.Second)
		}
	}

	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() && filter.StartDate.After(filter.EndDate) {
		return filter, fmt.Errorf("startDate must be before endDate")
	}

	return filter, nil
}

// ParseReportQuery converts report query parameters into an accounting.ReportQuery.
// Missing dates are left zero, which yields an empty report.
func ParseReportQuery(startDateParam, endDateParam, symbolParam string) (accounting.ReportQuery, error) {
	q := accounting.ReportQuery{Symbol: accounting.NormalizeSymbol(symbolParam)}

	var err error
	if startDateParam != "" {
		if q.Start, err = parseFilterTime(startDateParam); err != nil {
			return q, fmt.Errorf("invalid startDate format: %w", err)
		}
	}
	if endDateParam != "" {
		if q.End, err = parseFilterTime(endDateParam); err != nil {
			return q, fmt.Errorf("invalid endDate format: %w", err)
		}
	}

	return q, nil
}

// ParseExpenseFilter converts household listing query parameters into a
// model.ExpenseFilter.
//
// Validation rules:
//   - type: income or expense
//   - month: 1-12, or empty/"all"
//   - year: a positive number, or empty/"all"
func ParseExpenseFilter(typeParam, categoryParam, monthParam, yearParam string) (model.ExpenseFilter, error) {
	filter := model.ExpenseFilter{CategoryID: strings.TrimSpace(categoryParam)}

	if typeParam != "" {
		t := household.EntryType(strings.ToLower(strings.TrimSpace(typeParam)))
		if !t.Valid() {
			return filter, fmt.Errorf("invalid type: %s", typeParam)
		}
		filter.Type = string(t)
	}

	var err error
	if filter.Month, err = parseMonth(monthParam); err != nil {
		return filter, err
	}
	if filter.Year, err = parseYear(yearParam); err != nil {
		return filter, err
	}

	return filter, nil
}

// ParseFuelQuery converts fuel report query parameters. An empty year means
// the year of now; an empty or "all" month reports the whole year.
func ParseFuelQuery(yearParam, monthParam string, now time.Time) (household.FuelQuery, error) {
	q := household.FuelQuery{Year: now.Year()}

	year, err := parseYear(yearParam)
	if err != nil {
		return q, err
	}
	if year > 0 {
		q.Year = year
	}

	if q.Month, err = parseMonth(monthParam); err != nil {
		return q, err
	}

	return q, nil
}

func parseMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return 0, nil
	}
	m, err := strconv.Atoi(s)
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("invalid month: must be between 1 and 12")
	}
	return m, nil
}

func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return 0, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1 {
		return 0, fmt.Errorf("invalid year: %s", s)
	}
	return y, nil
}

// parseFilterTime parses date strings for filter parameters.
// Accepts YYYY-MM-DD, RFC3339, and RFC3339 with milliseconds formats.
func parseFilterTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date or datetime", str)
}

func isDateOnly(str string) bool {
	_, err := time.Parse("2006-01-02", str)
	return err == nil
}
