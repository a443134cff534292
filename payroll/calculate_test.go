package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// weekStart is Monday 2025-08-04, ISO week 2025-W32.
var weekStart = engine.NewDate(2025, time.August, 4)

func weekSummary(ws engine.Date, hours int64, daysWorked int) payroll.TimerSummary {
	return payroll.TimerSummary{
		UserID:          "user-1",
		WeekStart:       ws,
		TotalSeconds:    hours * 3600,
		BillableSeconds: hours * 3600,
		DaysWorked:      daysWorked,
		DailyMinimumMet: daysWorked,
	}
}

func seasonedHistory() payroll.History {
	return payroll.History{
		ProfileCreatedAt:     time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC),
		EmploymentStart:      engine.NewDate(2025, time.July, 1),
		SecurityFundDeducted: true,
		WeeksPaid:            4,
	}
}

func money(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func assertMoney(t *testing.T, want int64, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, money(want).Equal(got), "%s: want %d, got %s", label, want, got)
}

// =============================================================================
// ELIGIBILITY GATE TESTS
// =============================================================================

func TestCalculate_FirstSalaryGatedByMondayAnchor(t *testing.T) {
	// GIVEN: A profile created the Wednesday before the pay week
	// WHEN: Measured from the Monday anchor (5 days old, 7 required)
	// THEN: Ineligible with zero amounts, reasons itemized

	history := seasonedHistory()
	history.ProfileCreatedAt = time.Date(2025, time.July, 30, 15, 0, 0, 0, time.UTC)

	calc := payroll.Calculate(weekSummary(weekStart, 36, 5), history, nil, nil, payroll.DefaultConfig())

	assert.False(t, calc.IsEligible)
	require.Len(t, calc.IneligibilityReasons, 1)
	assert.Contains(t, calc.IneligibilityReasons[0], "first salary")
	assertMoney(t, 0, calc.BaseAmount, "base")
	assertMoney(t, 0, calc.GrossAmount, "gross")
	assertMoney(t, 0, calc.NetAmount, "net")
	assert.Equal(t, "2025-W32", calc.PeriodLabel)
}

func TestCalculate_ProfileExactlySevenDaysOld(t *testing.T) {
	// GIVEN: A profile created exactly 7 days before the Monday anchor
	// THEN: The gate passes

	history := seasonedHistory()
	history.ProfileCreatedAt = time.Date(2025, time.July, 28, 23, 0, 0, 0, time.UTC)

	calc := payroll.Calculate(weekSummary(weekStart, 36, 5), history, nil, nil, payroll.DefaultConfig())

	assert.True(t, calc.IsEligible)
}

func TestCalculate_MinimumWeeklyHoursGate(t *testing.T) {
	// GIVEN: 29 billable hours against a 30-hour minimum
	// THEN: Ineligible, but the hours figure is still reported

	calc := payroll.Calculate(weekSummary(weekStart, 29, 5), seasonedHistory(), nil, nil, payroll.DefaultConfig())

	assert.False(t, calc.IsEligible)
	require.Len(t, calc.IneligibilityReasons, 1)
	assert.Contains(t, calc.IneligibilityReasons[0], "minimum")
	assert.True(t, decimal.NewFromInt(29).Equal(calc.BillableHours))
	assertMoney(t, 0, calc.NetAmount, "net")
}

// =============================================================================
// AMOUNT TESTS
// =============================================================================

func TestCalculate_BaseTaxAndSecurityFund(t *testing.T) {
	// GIVEN: 36 billable hours at rate 125, first paid week
	// THEN: base 4500, fund 2500, tax 5% of 2000 = 100, net 1900

	history := seasonedHistory()
	history.SecurityFundDeducted = false
	history.WeeksPaid = 0

	calc := payroll.Calculate(weekSummary(weekStart, 36, 5), history, nil, nil, payroll.DefaultConfig())

	require.True(t, calc.IsEligible)
	assertMoney(t, 4500, calc.BaseAmount, "base")
	assertMoney(t, 2500, calc.Deductions.SecurityFund, "fund")
	assertMoney(t, 100, calc.Deductions.Taxes, "tax")
	assertMoney(t, 2600, calc.Deductions.Total, "deductions")
	assertMoney(t, 4500, calc.GrossAmount, "gross")
	assertMoney(t, 1900, calc.NetAmount, "net")
}

func TestCalculate_SecurityFundIsOneTime(t *testing.T) {
	// GIVEN: The fund was already deducted in an earlier week
	// THEN: Tax applies to the full base

	calc := payroll.Calculate(weekSummary(weekStart, 36, 5), seasonedHistory(), nil, nil, payroll.DefaultConfig())

	assertMoney(t, 0, calc.Deductions.SecurityFund, "fund")
	assertMoney(t, 225, calc.Deductions.Taxes, "tax")
	assertMoney(t, 4275, calc.NetAmount, "net")
}

func TestCalculate_PenaltiesDeductedAndNetClamped(t *testing.T) {
	// GIVEN: A penalty ledger exceeding the week's gross
	// THEN: Net clamps at zero instead of going negative

	penalties := []engine.Penalty{
		{Type: engine.PenaltyExcessiveLeave, Amount: money(9000)},
		{Type: engine.PenaltyWeekend, Amount: money(80)},
	}

	calc := payroll.Calculate(weekSummary(weekStart, 36, 5), seasonedHistory(), penalties, nil, payroll.DefaultConfig())

	require.True(t, calc.IsEligible)
	assertMoney(t, 9080, calc.Deductions.Penalties, "penalties")
	assertMoney(t, 0, calc.NetAmount, "net")
}

// =============================================================================
// STREAK BONUS TESTS
// =============================================================================

func TestCalculate_FourConsecutiveWeeksEarnBonus(t *testing.T) {
	// GIVEN: Three qualifying historical weeks directly before a qualifying
	//        current week (28-day requirement = 4 weeks)
	// THEN: Flat bonus added to gross

	historical := []payroll.TimerSummary{
		weekSummary(weekStart.AddDays(-21), 35, 5),
		weekSummary(weekStart.AddDays(-14), 40, 6),
		weekSummary(weekStart.AddDays(-7), 33, 5),
	}

	calc := payroll.Calculate(weekSummary(weekStart, 36, 5), seasonedHistory(), nil, historical, payroll.DefaultConfig())

	assert.Equal(t, 4, calc.Streak.CurrentWeeks)
	assert.Equal(t, 4, calc.Streak.RequiredWeeks)
	assert.True(t, calc.Streak.Qualifies)
	assertMoney(t, 1500, calc.Streak.Bonus, "bonus")
	assertMoney(t, 6000, calc.GrossAmount, "gross")
	assertMoney(t, 5775, calc.NetAmount, "net")
}

func TestCalculate_MissingWeekBreaksStreak(t *testing.T) {
	// GIVEN: A hole two weeks back
	// THEN: The scan stops at the hole

	historical := []payroll.TimerSummary{
		weekSummary(weekStart.AddDays(-21), 35, 5),
		weekSummary(weekStart.AddDays(-7), 33, 5),
	}

	calc := payroll.Calculate(weekSummary(weekStart, 36, 5), seasonedHistory(), nil, historical, payroll.DefaultConfig())

	assert.Equal(t, 2, calc.Streak.CurrentWeeks)
	assert.False(t, calc.Streak.Qualifies)
	assertMoney(t, 0, calc.Streak.Bonus, "bonus")
}

func TestCalculate_NonQualifyingWeekBreaksStreak(t *testing.T) {
	// GIVEN: Enough hours but only 4 days worked two weeks back
	historical := []payroll.TimerSummary{
		weekSummary(weekStart.AddDays(-14), 38, 4),
		weekSummary(weekStart.AddDays(-7), 33, 5),
	}

	calc := payroll.Calculate(weekSummary(weekStart, 36, 5), seasonedHistory(), nil, historical, payroll.DefaultConfig())

	assert.Equal(t, 2, calc.Streak.CurrentWeeks)
	assert.False(t, calc.Streak.Qualifies)
}

func TestCalculate_FutureWeeksIgnoredByScan(t *testing.T) {
	historical := []payroll.TimerSummary{
		weekSummary(weekStart.AddDays(7), 40, 5), // future, must not count
		weekSummary(weekStart.AddDays(-7), 33, 5),
	}

	calc := payroll.Calculate(weekSummary(weekStart, 36, 5), seasonedHistory(), nil, historical, payroll.DefaultConfig())

	assert.Equal(t, 2, calc.Streak.CurrentWeeks)
}

func TestCalculate_IneligibleLineStillReportsStreak(t *testing.T) {
	// GIVEN: An ineligible week on hours, but a warm 4-week history
	// THEN: Streak standing is reported; amounts stay zero

	historical := []payroll.TimerSummary{
		weekSummary(weekStart.AddDays(-21), 35, 5),
		weekSummary(weekStart.AddDays(-14), 40, 6),
		weekSummary(weekStart.AddDays(-7), 33, 5),
	}

	calc := payroll.Calculate(weekSummary(weekStart, 10, 2), seasonedHistory(), nil, historical, payroll.DefaultConfig())

	assert.False(t, calc.IsEligible)
	assert.Equal(t, 0, calc.Streak.CurrentWeeks, "current week does not qualify")
	assertMoney(t, 0, calc.GrossAmount, "gross")
}

// =============================================================================
// BATCH TESTS
// =============================================================================

func TestCalculateBatch_FoldsLines(t *testing.T) {
	// GIVEN: One eligible employee with a bonus, one ineligible on hours
	// THEN: Summary is pure arithmetic over the two lines

	bonusHistorical := []payroll.TimerSummary{
		weekSummary(weekStart.AddDays(-21), 35, 5),
		weekSummary(weekStart.AddDays(-14), 40, 6),
		weekSummary(weekStart.AddDays(-7), 33, 5),
	}
	items := []payroll.BatchItem{
		{Summary: weekSummary(weekStart, 36, 5), History: seasonedHistory(), Historical: bonusHistorical},
		{Summary: weekSummary(weekStart, 10, 2), History: seasonedHistory()},
	}

	res := payroll.CalculateBatch(items, payroll.DefaultConfig())

	require.Len(t, res.Lines, 2)
	assert.Equal(t, 2, res.Summary.Employees)
	assert.Equal(t, 1, res.Summary.EligibleCount)
	assert.Equal(t, 1, res.Summary.BonusRecipients)
	assertMoney(t, 6000, res.Summary.TotalGross, "total gross")
	assertMoney(t, 5775, res.Summary.TotalNet, "total net")
	assertMoney(t, 225, res.Summary.TotalDeductions, "total deductions")
	assert.True(t, decimal.NewFromInt(23).Equal(res.Summary.AverageHours),
		"average of 36h and 10h, got %s", res.Summary.AverageHours)
}

func TestCalculateBatch_Reproducible(t *testing.T) {
	items := []payroll.BatchItem{
		{Summary: weekSummary(weekStart, 36, 5), History: seasonedHistory()},
		{Summary: weekSummary(weekStart, 42, 6), History: seasonedHistory()},
	}
	cfg := payroll.DefaultConfig()

	first := payroll.CalculateBatch(items, cfg)
	second := payroll.CalculateBatch(items, cfg)

	assert.Equal(t, first, second)
}

func TestCalculateBatch_Empty(t *testing.T) {
	res := payroll.CalculateBatch(nil, payroll.DefaultConfig())

	assert.Equal(t, 0, res.Summary.Employees)
	assertMoney(t, 0, res.Summary.TotalGross, "total gross")
	assert.Empty(t, res.Lines)
}
