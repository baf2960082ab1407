// Package slabs resolves fixed annual interest rates from amount thresholds.
//
// A rate never depends on tenure: the same principal earns or costs the same
// rate whether it is placed for six months or three years.
package slabs

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Slab applies Rate to every amount up to and including Threshold.
type Slab struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

type Table struct {
	slabs       []Slab
	defaultRate decimal.Decimal
}

func NewTable(defaultRate decimal.Decimal, slabs ...Slab) (Table, error) {
	if defaultRate.IsNegative() {
		return Table{}, fmt.Errorf("default rate cannot be negative")
	}

	sorted := make([]Slab, len(slabs))
	copy(sorted, slabs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold.LessThan(sorted[j].Threshold)
	})

	for i, slab := range sorted {
		if slab.Rate.IsNegative() {
			return Table{}, fmt.Errorf("rate for threshold %s cannot be negative", slab.Threshold)
		}
		if i > 0 && slab.Threshold.Equal(sorted[i-1].Threshold) {
			return Table{}, fmt.Errorf("duplicate threshold %s", slab.Threshold)
		}
	}

	return Table{slabs: sorted, defaultRate: defaultRate}, nil
}

func MustTable(defaultRate decimal.Decimal, slabs ...Slab) Table {
	table, err := NewTable(defaultRate, slabs...)
	if err != nil {
		panic(err)
	}
	return table
}

// Resolve returns the rate of the first threshold >= amount, or the default
// rate when amount is above every threshold.
func (t Table) Resolve(amount decimal.Decimal) decimal.Decimal {
	for _, slab := range t.slabs {
		if amount.LessThanOrEqual(slab.Threshold) {
			return slab.Rate
		}
	}
	return t.defaultRate
}

func (t Table) Slabs() []Slab {
	out := make([]Slab, len(t.slabs))
	copy(out, t.slabs)
	return out
}

func (t Table) DefaultRate() decimal.Decimal {
	return t.defaultRate
}

func d(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

// Loan is keyed on principal.
var Loan = MustTable(d("8.50"),
	Slab{Threshold: d("50000"), Rate: d("14.00")},
	Slab{Threshold: d("200000"), Rate: d("12.00")},
	Slab{Threshold: d("500000"), Rate: d("10.00")},
)

// FixedDeposit is keyed on principal.
var FixedDeposit = MustTable(d("8.00"),
	Slab{Threshold: d("50000"), Rate: d("6.50")},
	Slab{Threshold: d("200000"), Rate: d("7.00")},
	Slab{Threshold: d("500000"), Rate: d("7.50")},
)

// RecurringDeposit is keyed on the monthly installment.
var RecurringDeposit = MustTable(d("7.00"),
	Slab{Threshold: d("5000"), Rate: d("6.00")},
	Slab{Threshold: d("20000"), Rate: d("6.50")},
)
