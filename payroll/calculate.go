package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// PER-EMPLOYEE CALCULATION
// =============================================================================

// Calculate produces one employee's payroll line for the week described by
// summary. An ineligible week returns a fully-formed line with itemized
// reasons and zero amounts; the function never returns an error.
func Calculate(summary TimerSummary, history History, penalties []engine.Penalty, historical []TimerSummary, cfg Config) Calculation {
	calc := Calculation{
		UserID:        summary.UserID,
		WeekStart:     summary.WeekStart,
		PeriodLabel:   summary.WeekStart.WeekLabel(),
		BillableHours: engine.HoursFromSeconds(summary.BillableSeconds),
	}

	calc.IneligibilityReasons = eligibilityReasons(summary, history, cfg)
	calc.IsEligible = len(calc.IneligibilityReasons) == 0

	// The streak scan runs either way so an ineligible line still reports
	// where the employee stands toward the bonus.
	calc.Streak = scanStreak(summary, historical, cfg)

	if !calc.IsEligible {
		calc.BaseAmount = decimal.Zero
		calc.GrossAmount = decimal.Zero
		calc.NetAmount = decimal.Zero
		return calc
	}

	calc.BaseAmount = engine.RoundMoney(calc.BillableHours.Mul(cfg.HourlyRate))
	calc.Deductions = buildDeductions(calc.BaseAmount, history, penalties, cfg)
	calc.GrossAmount = calc.BaseAmount.Add(calc.Streak.Bonus)
	calc.NetAmount = engine.NonNegative(calc.GrossAmount.Sub(calc.Deductions.Total))
	return calc
}

// eligibilityReasons applies the two salary gates. Profile age is measured
// from the Monday on or before the week start, so a profile created midweek
// does not slip through on a partial week.
func eligibilityReasons(summary TimerSummary, history History, cfg Config) []string {
	var reasons []string

	anchor := summary.WeekStart.StartOfWeek()
	profileAge := engine.DaysBetween(engine.DateOf(history.ProfileCreatedAt), anchor)
	if profileAge < cfg.FirstSalaryGatingDays {
		reasons = append(reasons, fmt.Sprintf(
			"profile is %d day(s) old at the week anchor; first salary requires %d",
			profileAge, cfg.FirstSalaryGatingDays))
	}

	hours := summary.BillableSeconds / 3600
	if hours < int64(cfg.MinimumWeeklyHours) {
		reasons = append(reasons, fmt.Sprintf(
			"%d billable hour(s) this week, minimum is %d",
			hours, cfg.MinimumWeeklyHours))
	}

	return reasons
}

// =============================================================================
// STREAK BONUS - Consecutive-week scan over the historical summaries
// =============================================================================

// scanStreak counts consecutive qualifying weeks walking backward from the
// current week. A week qualifies on both billable hours and days worked;
// the first missing or non-qualifying week stops the scan.
func scanStreak(current TimerSummary, historical []TimerSummary, cfg Config) StreakInfo {
	byWeek := make(map[string]TimerSummary, len(historical)+1)
	for _, s := range historical {
		if s.WeekStart.After(current.WeekStart) {
			continue // future weeks never count
		}
		byWeek[s.WeekStart.String()] = s
	}
	byWeek[current.WeekStart.String()] = current

	info := StreakInfo{
		RequiredWeeks: (cfg.StreakRequirementDays + 6) / 7,
		Bonus:         decimal.Zero,
	}

	expected := current.WeekStart
	for {
		s, ok := byWeek[expected.String()]
		if !ok || !weekQualifies(s, cfg) {
			break
		}
		info.CurrentWeeks++
		expected = expected.AddDays(-7)
	}

	if info.CurrentWeeks >= info.RequiredWeeks {
		info.Qualifies = true
		info.Bonus = cfg.StreakBonus
	}
	return info
}

func weekQualifies(s TimerSummary, cfg Config) bool {
	return s.BillableSeconds >= int64(cfg.MinimumWeeklyHours)*3600 && s.DaysWorked >= 5
}

// =============================================================================
// DEDUCTIONS
// =============================================================================

func buildDeductions(base decimal.Decimal, history History, penalties []engine.Penalty, cfg Config) Deductions {
	d := Deductions{
		SecurityFund: decimal.Zero,
		Penalties:    engine.SumPenalties(penalties),
		Taxes:        decimal.Zero,
	}

	if !history.SecurityFundDeducted {
		d.SecurityFund = cfg.SecurityFund
	}

	taxable := base.Sub(d.SecurityFund)
	if taxable.IsPositive() {
		d.Taxes = engine.RoundMoney(taxable.Mul(cfg.TaxRate))
	}

	d.Total = d.SecurityFund.Add(d.Penalties).Add(d.Taxes)
	return d
}
