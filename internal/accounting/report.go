package accounting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// ReportQuery selects the reporting window and an optional symbol.
// Start and End are calendar days; the window covers Start from midnight
// through the last instant of End, in the location of each value.
type ReportQuery struct {
	Start  time.Time
	End    time.Time
	Symbol string
}

// Cutoff is the last instant of the window. Transactions after it never affect
// a report, so callers may stop loading history there.
func (q ReportQuery) Cutoff() time.Time {
	return startOfDay(q.End).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func (q ReportQuery) window() (from, to time.Time, ok bool) {
	if q.Start.IsZero() || q.End.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	from = startOfDay(q.Start)
	to = q.Cutoff()
	if to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SellDetail is one in-window sell with the cost basis it was realized against.
type SellDetail struct {
	Transaction
	CostPrice      decimal.Decimal `json:"costPrice"`
	Profit         decimal.Decimal `json:"profit"`
	TotalSellValue decimal.Decimal `json:"totalSellValue"`
}

// SymbolStat counts in-window sells of one symbol.
type SymbolStat struct {
	Symbol  string          `json:"symbol"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

// SellStats describes the distribution of per-sell profit inside the window.
type SellStats struct {
	Count        int     `json:"count"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"winRate"`
	MeanProfit   float64 `json:"meanProfit"`
	ProfitStdDev float64 `json:"profitStdDev"`
}

// Report is the result of ComputeReport.
type Report struct {
	Start       time.Time       `json:"startDate"`
	End         time.Time       `json:"endDate"`
	Symbol      string          `json:"symbol,omitempty"`
	TotalBuy    decimal.Decimal `json:"totalBuy"`
	TotalSell   decimal.Decimal `json:"totalSell"`
	NetFlow     decimal.Decimal `json:"netFlow"`
	RealizedPL  decimal.Decimal `json:"realizedPL"`
	ROI         decimal.Decimal `json:"roi"`
	Details     []SellDetail    `json:"details"`
	SymbolStats []SymbolStat    `json:"symbolStats"`
	SellStats   SellStats       `json:"sellStats"`
}

// ComputeReport replays the whole history in txs so that the average cost
// entering the window reflects everything before it, and accumulates buy/sell
// value, realized P&L and sell details only for transactions inside the
// window that match the symbol filter.
//
// ROI is realizedPL / (totalSell - realizedPL) * 100, i.e. relative to the
// cost basis of the shares sold in the window. It is 0 when nothing was sold.
//
// An inverted or unset window returns an empty report.
func ComputeReport(txs []Transaction, q ReportQuery) Report {
	symbol := NormalizeSymbol(q.Symbol)
	report := Report{
		Start:       q.Start,
		End:         q.End,
		Symbol:      symbol,
		Details:     []SellDetail{},
		SymbolStats: []SymbolStat{},
	}

	from, to, ok := q.window()
	if !ok {
		return report
	}

	valid, _ := sanitize(txs)
	b := newBook()
	counts := make(map[string]int)

	for _, t := range SortTransactions(valid) {
		if t.Date.After(to) {
			break
		}

		p := b.position(t.Symbol)
		tracked := !t.Date.Before(from) && (symbol == "" || t.Symbol == symbol)
		value := t.Quantity.Mul(t.Price)

		switch t.Type {
		case Buy:
			p.buy(t.Quantity, t.Price)
			if tracked {
				report.TotalBuy = report.TotalBuy.Add(value)
			}
		case Sell:
			costPrice := p.avgCost
			profit := p.sell(t.Quantity, t.Price)
			if tracked {
				report.TotalSell = report.TotalSell.Add(value)
				report.RealizedPL = report.RealizedPL.Add(profit)
				report.Details = append(report.Details, SellDetail{
					Transaction:    t,
					CostPrice:      costPrice,
					Profit:         profit,
					TotalSellValue: value,
				})
				counts[t.Symbol]++
			}
		}
	}

	report.NetFlow = report.TotalSell.Sub(report.TotalBuy)
	if report.TotalSell.IsPositive() {
		basis := report.TotalSell.Sub(report.RealizedPL)
		if !basis.IsZero() {
			report.ROI = report.RealizedPL.Div(basis).Mul(hundred)
		}
	}

	sort.SliceStable(report.Details, func(i, j int) bool {
		return report.Details[i].Date.After(report.Details[j].Date)
	})

	report.SymbolStats = symbolStats(counts, len(report.Details))
	report.SellStats = sellStats(report.Details)

	return report
}

func symbolStats(counts map[string]int, total int) []SymbolStat {
	stats := make([]SymbolStat, 0, len(counts))
	if total == 0 {
		return stats
	}

	for symbol, count := range counts {
		stats = append(stats, SymbolStat{
			Symbol:  symbol,
			Count:   count,
			Percent: decimal.NewFromInt(int64(count)).Div(decimal.NewFromInt(int64(total))).Mul(hundred),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Symbol < stats[j].Symbol
	})

	return stats
}

func sellStats(details []SellDetail) SellStats {
	s := SellStats{Count: len(details)}
	if s.Count == 0 {
		return s
	}

	profits := make([]float64, len(details))
	for i, d := range details {
		profits[i] = d.Profit.InexactFloat64()
		switch {
		case d.Profit.IsPositive():
			s.Wins++
		case d.Profit.IsNegative():
			s.Losses++
		}
	}

	s.WinRate = float64(s.Wins) / float64(s.Count) * 100
	s.MeanProfit = stat.Mean(profits, nil)
	if len(profits) > 1 {
		s.ProfitStdDev = stat.StdDev(profits, nil)
	}

	return s
}
