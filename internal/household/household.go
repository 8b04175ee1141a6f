// Package household aggregates income/expense entries and vehicle fuel logs.
// Like the accounting package it performs no I/O.
package household

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the direction of a household cash entry.
type EntryType string

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

// Valid reports whether t is income or expense.
func (t EntryType) Valid() bool {
	return t == Income || t == Expense
}

// UncategorizedName labels entries without a category in breakdowns.
const UncategorizedName = "Khác"

// Entry is one income or expense line.
type Entry struct {
	ID           string
	Date         time.Time
	Type         EntryType
	CategoryID   string
	CategoryName string
	Amount       decimal.Decimal
}

// Filter narrows entries. Zero values mean "all".
type Filter struct {
	Type       EntryType
	CategoryID string
	Month      int
	Year       int
}

// Match reports whether e passes every set criterion of f.
func (f Filter) Match(e Entry) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && e.CategoryID != f.CategoryID {
		return false
	}
	if f.Month != 0 && int(e.Date.Month()) != f.Month {
		return false
	}
	if f.Year != 0 && e.Date.Year() != f.Year {
		return false
	}
	return true
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	CategoryID string          `json:"categoryId,omitempty"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
}

// Summary is the result of Summarize.
type Summary struct {
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpense      decimal.Decimal `json:"totalExpense"`
	Balance           decimal.Decimal `json:"balance"`
	Count             int             `json:"count"`
	IncomeByCategory  []CategoryTotal `json:"incomeByCategory"`
	ExpenseByCategory []CategoryTotal `json:"expenseByCategory"`
}

// Summarize totals the entries matching f and splits them per category.
// Breakdowns are sorted by amount descending, then by name.
func Summarize(entries []Entry, f Filter) Summary {
	s := Summary{}
	income := newCategoryAccumulator()
	expense := newCategoryAccumulator()

	for _, e := range entries {
		if !f.Match(e) {
			continue
		}
		s.Count++

		switch e.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(e.Amount)
			income.add(e)
		case Expense:
			s.TotalExpense = s.TotalExpense.Add(e.Amount)
			expense.add(e)
		}
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	s.IncomeByCategory = income.totals()
	s.ExpenseByCategory = expense.totals()

	return s
}

type categoryAccumulator struct {
	byKey map[string]*CategoryTotal
}

func newCategoryAccumulator() *categoryAccumulator {
	return &categoryAccumulator{byKey: make(map[string]*CategoryTotal)}
}

func (a *categoryAccumulator) add(e Entry) {
	name := e.CategoryName
	if e.CategoryID == "" || name == "" {
		name = UncategorizedName
	}

	key := e.CategoryID
	if key == "" {
		key = "\x00" + name
	}

	t, ok := a.byKey[key]
	if !ok {
		t = &CategoryTotal{CategoryID: e.CategoryID, Name: name}
		a.byKey[key] = t
	}
	t.Amount = t.Amount.Add(e.Amount)
}

func (a *categoryAccumulator) totals() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(a.byKey))
	for _, t := range a.byKey {
		out = append(out, *t)
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})

	return out
}
