package accounting

import "github.com/shopspring/decimal"

// ComputePortfolio replays txs in SortTransactions order with the weighted
// average cost method and values the result against prices.
//
// Processing per transaction:
//   - BUY: avg = (qty*avg + q*price) / (qty + q) when qty + q > 0; qty += q
//   - SELL: realized += (price - avg) * q; qty -= q; avg unchanged
//
// A symbol appears in Holdings while it has a positive quantity or a non-zero
// realized P&L. Portfolio totals for value, cost basis and unrealized P&L only
// include positive quantities; realized P&L includes every symbol.
//
// Rows with an empty symbol, unknown type, non-positive quantity or negative
// price are left out of the replay and listed in Skipped. An empty input yields
// no holdings and a zero summary.
func ComputePortfolio(txs []Transaction, prices Prices) Portfolio {
	valid, skipped := sanitize(txs)
	sorted := SortTransactions(valid)

	b := newBook()
	annotated := make([]AnnotatedTransaction, 0, len(sorted))

	for _, t := range sorted {
		p := b.position(t.Symbol)
		entry := AnnotatedTransaction{Transaction: t}

		switch t.Type {
		case Buy:
			p.buy(t.Quantity, t.Price)
		case Sell:
			entry.RealizedPL = decimal.NewNullDecimal(p.sell(t.Quantity, t.Price))
		}

		annotated = append(annotated, entry)
	}

	holdings := make([]Holding, 0, len(b.order))
	var summary Summary

	for _, symbol := range b.order {
		p := b.positions[symbol]
		open := p.quantity.IsPositive()

		if !open && p.realized.IsZero() {
			continue
		}

		price := prices.lookup(symbol)
		marketValue := decimal.Zero
		unrealized := decimal.Zero
		if open && price.IsPositive() {
			marketValue = price.Mul(p.quantity)
			unrealized = price.Sub(p.avgCost).Mul(p.quantity)
		}

		if open {
			summary.TotalMarketValue = summary.TotalMarketValue.Add(marketValue)
			summary.TotalInvested = summary.TotalInvested.Add(p.avgCost.Mul(p.quantity))
			summary.TotalUnrealizedPL = summary.TotalUnrealizedPL.Add(unrealized)
		}
		summary.TotalRealizedPL = summary.TotalRealizedPL.Add(p.realized)

		holdings = append(holdings, Holding{
			Symbol:       symbol,
			Quantity:     p.quantity,
			AvgPrice:     p.avgCost,
			AvgSellPrice: p.avgSellPrice(),
			CurrentPrice: price,
			MarketValue:  marketValue,
			RealizedPL:   p.realized,
			UnrealizedPL: unrealized,
			TotalPL:      p.realized.Add(unrealized),
			Oversold:     p.quantity.IsNegative(),
		})
	}

	allocate(holdings)

	summary.TotalPL = summary.TotalRealizedPL.Add(summary.TotalUnrealizedPL)
	if summary.TotalInvested.IsPositive() {
		summary.ReturnRate = summary.TotalPL.Div(summary.TotalInvested).Mul(hundred)
	}

	return Portfolio{
		Holdings:     holdings,
		Summary:      summary,
		Transactions: annotated,
		Skipped:      skipped,
	}
}

// allocate sets ChartValue and Allocation on every holding. The chart value is
// the market value when a live price exists and the cost basis otherwise; it
// never goes below zero, so oversold positions take no share.
func allocate(holdings []Holding) {
	total := decimal.Zero

	for i := range holdings {
		h := &holdings[i]
		chart := h.MarketValue
		if !chart.IsPositive() {
			chart = h.Quantity.Mul(h.AvgPrice)
		}
		if chart.IsNegative() {
			chart = decimal.Zero
		}
		h.ChartValue = chart
		total = total.Add(chart)
	}

	if !total.IsPositive() {
		return
	}

	for i := range holdings {
		holdings[i].Allocation = holdings[i].ChartValue.Div(total).Mul(hundred)
	}
}
