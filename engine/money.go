package engine

import "github.com/shopspring/decimal"

// =============================================================================
// MONEY - Rounding discipline for monetary amounts
// =============================================================================
//
// Every monetary value is rounded at the point of computation, not deferred:
// batch totals are sums of already-rounded line items, which keeps repeated
// payroll runs bit-identical.

// RoundMoney rounds to the nearest whole currency unit.
func RoundMoney(d decimal.Decimal) decimal.Decimal { return d.Round(0) }

// RoundHours rounds an hours figure to two decimal places.
func RoundHours(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// NonNegative clamps a monetary amount at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// HoursFromSeconds converts a seconds figure into decimal hours (2 dp).
func HoursFromSeconds(seconds int64) decimal.Decimal {
	return RoundHours(decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600)))
}

// ClampScore clamps a score component into [0, 100].
func ClampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
