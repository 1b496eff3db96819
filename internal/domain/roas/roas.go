// Package roas computes return-on-ad-spend ratios with an explicit
// divide-by-zero policy.
//
// A ratio is undefined when the payout is missing or zero. Undefined ratios
// carry the Sentinel value and a false "defined" flag; callers must exclude
// them from threshold filters and rankings rather than compare the sentinel.
package roas

import (
	"github.com/shopspring/decimal"
)

// Sentinel is the value stored for an undefined ROAS.
const Sentinel = 0.0

// Ratio returns revenue/payout and whether the ratio is defined.
func Ratio(revenue decimal.Decimal, payout *decimal.Decimal) (float64, bool) {
	if payout == nil || payout.IsZero() {
		return Sentinel, false
	}
	return revenue.Div(*payout).InexactFloat64(), true
}

// Overall is the coarse ratio over a set of rows: total revenue divided by
// total payout, or 0 when the payout total is zero. It is not an average of
// per-row ratios.
func Overall(totalRevenue, totalPayout decimal.Decimal) float64 {
	if totalPayout.IsZero() {
		return 0
	}
	return totalRevenue.Div(totalPayout).InexactFloat64()
}
