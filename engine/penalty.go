package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PENALTY - Ledger entry shared by leave validation and payroll deduction
// =============================================================================
//
// The leave validator emits penalties; the payroll calculator sums them into
// the weekly deduction ledger. A penalty never blocks a request by itself -
// hard rejections are expressed as validation errors, not penalties.

type PenaltyType string

const (
	PenaltyShortNotice    PenaltyType = "short_notice"
	PenaltyExcessiveLeave PenaltyType = "excessive_leave"
	PenaltyWeekend        PenaltyType = "weekend_penalty"
)

// Penalty is a single costed infraction. Amount is always positive and
// already rounded to a whole currency unit.
type Penalty struct {
	Type        PenaltyType
	Amount      decimal.Decimal
	Description string
}

// SumPenalties totals a penalty ledger. The individual amounts are already
// rounded, so the sum needs no further rounding.
func SumPenalties(penalties []Penalty) decimal.Decimal {
	total := decimal.Zero
	for _, p := range penalties {
		total = total.Add(p.Amount)
	}
	return total
}
