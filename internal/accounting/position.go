package accounting

import (
	"sort"

	"github.com/shopspring/decimal"
)

// position is the running weighted-average-cost state of one symbol.
type position struct {
	quantity decimal.Decimal
	avgCost  decimal.Decimal
	realized decimal.Decimal
	bought   decimal.Decimal
	sold     decimal.Decimal
	soldQty  decimal.Decimal
}

// buy folds a purchase into the average cost. The average is only recomputed
// while the resulting quantity stays positive; an oversold position that a buy
// does not lift above zero keeps its previous average.
func (p *position) buy(qty, price decimal.Decimal) {
	value := qty.Mul(price)
	newQty := p.quantity.Add(qty)

	if newQty.IsPositive() {
		p.avgCost = p.quantity.Mul(p.avgCost).Add(value).Div(newQty)
	}

	p.quantity = newQty
	p.bought = p.bought.Add(value)
}

// sell realizes (price - avgCost) * qty and returns it. The average cost is
// not touched. Quantity may go negative.
func (p *position) sell(qty, price decimal.Decimal) decimal.Decimal {
	profit := price.Sub(p.avgCost).Mul(qty)

	p.realized = p.realized.Add(profit)
	p.quantity = p.quantity.Sub(qty)
	p.sold = p.sold.Add(qty.Mul(price))
	p.soldQty = p.soldQty.Add(qty)

	return profit
}

func (p *position) avgSellPrice() decimal.Decimal {
	if !p.soldQty.IsPositive() {
		return decimal.Zero
	}
	return p.sold.Div(p.soldQty)
}

// book keeps positions in the order their symbols were first replayed.
type book struct {
	positions map[string]*position
	order     []string
}

func newBook() *book {
	return &book{positions: make(map[string]*position)}
}

func (b *book) position(symbol string) *position {
	p, ok := b.positions[symbol]
	if !ok {
		p = &position{}
		b.positions[symbol] = p
		b.order = append(b.order, symbol)
	}
	return p
}

// OpenSymbols replays txs and returns, sorted, the symbols still held in a
// positive quantity. Callers use it to decide which prices to fetch.
func OpenSymbols(txs []Transaction) []string {
	valid, _ := sanitize(txs)
	b := newBook()

	for _, t := range SortTransactions(valid) {
		p := b.position(t.Symbol)
		switch t.Type {
		case Buy:
			p.buy(t.Quantity, t.Price)
		case Sell:
			p.sell(t.Quantity, t.Price)
		}
	}

	symbols := make([]string, 0, len(b.order))
	for _, symbol := range b.order {
		if b.positions[symbol].quantity.IsPositive() {
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)

	return symbols
}
