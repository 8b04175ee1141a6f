package accounting

import "sort"

// SortTransactions returns a copy of txs in replay order: date ascending, and
// on identical timestamps every BUY ahead of every SELL so a same-day sell is
// costed against the same-day buy. Rows equal on both keys keep their input
// order. The input slice is left untouched.
func SortTransactions(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return replayBefore(sorted[i], sorted[j])
	})

	return sorted
}

func replayBefore(a, b Transaction) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.Type == Buy && b.Type != Buy
}
