package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyTotals holds independent running totals per currency. No
// conversion between the two is ever performed.
type CurrencyTotals struct {
	PEN decimal.Decimal `json:"PEN"`
	USD decimal.Decimal `json:"USD"`
}

func (t CurrencyTotals) add(c Currency, amount decimal.Decimal) CurrencyTotals {
	switch c {
	case PEN:
		t.PEN = t.PEN.Add(amount)
	case USD:
		t.USD = t.USD.Add(amount)
	}
	return t
}

// Summary aggregates a set of expenses into per-currency grand totals and
// per-category, per-subcategory and per-owner subtotals. Keys with no
// matching expense are absent from the maps.
type Summary struct {
	TotalPEN      decimal.Decimal           `json:"totalPEN"`
	TotalUSD      decimal.Decimal           `json:"totalUSD"`
	ByCategory    map[string]CurrencyTotals `json:"byCategory"`
	BySubcategory map[string]CurrencyTotals `json:"bySubcategory"`
	ByOwner       map[string]CurrencyTotals `json:"byOwner"`
}

// Summarize folds once over the expenses, routing each amount into the
// bucket matching its currency within every grouping.
func Summarize(expenses []Expense) Summary {
	s := Summary{
		ByCategory:    make(map[string]CurrencyTotals),
		BySubcategory: make(map[string]CurrencyTotals),
		ByOwner:       make(map[string]CurrencyTotals),
	}
	for _, e := range expenses {
		switch e.Currency {
		case PEN:
			s.TotalPEN = s.TotalPEN.Add(e.Amount)
		case USD:
			s.TotalUSD = s.TotalUSD.Add(e.Amount)
		}
		s.ByCategory[e.Category] = s.ByCategory[e.Category].add(e.Currency, e.Amount)
		s.BySubcategory[e.Subcategory] = s.BySubcategory[e.Subcategory].add(e.Currency, e.Amount)
		s.ByOwner[e.Owner] = s.ByOwner[e.Owner].add(e.Currency, e.Amount)
	}
	return s
}

// MonthBounds returns the first and last calendar day of now's month as ISO
// date strings, both inclusive, in now's location.
func MonthBounds(now time.Time) (first, last string) {
	year, month, _ := now.Date()
	loc := now.Location()
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	return firstDay.Format(DateLayout), lastDay.Format(DateLayout)
}
