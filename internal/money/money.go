// Package money provides cent-safe arithmetic helpers for monetary
// amounts. All rounding and summing of ledger amounts goes through this
// package so that repeated reads never accumulate floating-point drift.
package money

import "github.com/shopspring/decimal"

// SumTolerance is the slack allowed when comparing a split sum against
// its expense amount. Covers rounding noise from clients that divide
// amounts before submitting.
const SumTolerance = 0.01

// Round2 rounds v to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Sum adds the given amounts with decimal precision and returns the
// exact (unrounded) result.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}

// Equal reports whether a and b are within SumTolerance of each other.
func Equal(a, b float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(SumTolerance))
}
