/*
Package payroll implements the weekly payroll calculator.

PURPOSE:
  Composes a week's timer summary, the user's payroll history, the penalty
  ledger and the rate configuration into a per-employee payroll line:
  eligibility gates, base pay, streak bonus, deductions and the clamped net.
  A batch variant folds per-user lines into run totals with no extra rules.

KEY CONCEPTS:
  - Pay weeks are Monday-anchored. The first-salary gate measures profile
    age from the Monday on or before the week start, not the week start.
  - An ineligible line is still a line: reasons are itemized and every
    amount is returned as zero. The calculator never returns an error.
  - Rounding happens at the point of computation. Batch totals sum already
    rounded line items so repeated runs stay bit-identical.

SEE ALSO:
  - calculate.go: The per-employee calculation
  - batch.go: The pure batch fold
  - store.go: Persistence collaborator interface
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// INPUTS - Read-only snapshots from the collaborators
// =============================================================================

// TimerSummary aggregates one user's tracked time for one Monday-anchored
// week. Produced by the activity pipeline, consumed here untouched.
type TimerSummary struct {
	UserID    string
	WeekStart engine.Date

	TotalSeconds    int64
	BillableSeconds int64
	DaysWorked      int
	DailyMinimumMet int // days meeting the daily minimum

	AverageDailyHours decimal.Decimal
}

// History is the user's payroll-relevant record.
type History struct {
	ProfileCreatedAt time.Time
	EmploymentStart  engine.Date

	SecurityFundDeducted bool
	WeeksPaid            int
	CurrentStreak        int // days, from the activity streak detector
}

// =============================================================================
// OUTPUTS
// =============================================================================

// Deductions itemizes what comes off the gross. Every field is already
// rounded to a whole currency unit.
type Deductions struct {
	SecurityFund decimal.Decimal
	Penalties    decimal.Decimal
	Taxes        decimal.Decimal
	Total        decimal.Decimal
}

// StreakInfo reports the consecutive-week scan backing the bonus decision.
type StreakInfo struct {
	CurrentWeeks  int
	RequiredWeeks int
	Qualifies     bool
	Bonus         decimal.Decimal
}

// Calculation is one employee's payroll line for one week.
type Calculation struct {
	UserID      string
	WeekStart   engine.Date
	PeriodLabel string // ISO week label, e.g. "2025-W32"

	IsEligible           bool
	IneligibilityReasons []string

	BillableHours decimal.Decimal
	BaseAmount    decimal.Decimal
	Streak        StreakInfo
	Deductions    Deductions
	GrossAmount   decimal.Decimal
	NetAmount     decimal.Decimal
}

// =============================================================================
// BATCH
// =============================================================================

// BatchItem is one employee's inputs for a batch run.
type BatchItem struct {
	Summary    TimerSummary
	History    History
	Penalties  []engine.Penalty
	Historical []TimerSummary
}

// BatchSummary aggregates a run by folding over already-computed lines.
type BatchSummary struct {
	Employees       int
	EligibleCount   int
	BonusRecipients int
	TotalGross      decimal.Decimal
	TotalNet        decimal.Decimal
	TotalDeductions decimal.Decimal
	AverageHours    decimal.Decimal
}

// BatchResult pairs the per-employee lines with the run summary.
type BatchResult struct {
	Lines   []Calculation
	Summary BatchSummary
}

// =============================================================================
// CONFIGURATION
// =============================================================================

type Config struct {
	// HourlyRate prices one billable hour.
	HourlyRate decimal.Decimal

	// MinimumWeeklyHours of billable time gate the week's salary.
	MinimumWeeklyHours int

	// FirstSalaryGatingDays is the minimum profile age, measured from the
	// Monday on or before the week start.
	FirstSalaryGatingDays int

	// StreakBonus is the flat bonus paid when the consecutive-week streak
	// covers StreakRequirementDays.
	StreakBonus           decimal.Decimal
	StreakRequirementDays int

	// SecurityFund is deducted once, on the first paid week.
	SecurityFund decimal.Decimal

	// TaxRate applies to the base net of the security fund deduction.
	TaxRate decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		HourlyRate:            decimal.NewFromInt(125),
		MinimumWeeklyHours:    30,
		FirstSalaryGatingDays: 7,
		StreakBonus:           decimal.NewFromInt(1500),
		StreakRequirementDays: 28,
		SecurityFund:          decimal.NewFromInt(2500),
		TaxRate:               decimal.NewFromFloat(0.05),
	}
}
