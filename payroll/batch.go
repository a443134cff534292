package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// BATCH RUN - A pure fold over per-employee calculations
// =============================================================================

// CalculateBatch runs Calculate for every item and folds the lines into a
// run summary. No business rule lives at the batch level; the summary is
// arithmetic over already-rounded lines, so rerunning a batch reproduces
// it exactly.
func CalculateBatch(items []BatchItem, cfg Config) BatchResult {
	lines := make([]Calculation, 0, len(items))
	for _, item := range items {
		lines = append(lines, Calculate(item.Summary, item.History, item.Penalties, item.Historical, cfg))
	}
	return BatchResult{Lines: lines, Summary: FoldSummary(lines)}
}

// FoldSummary aggregates already-computed lines into a run summary.
func FoldSummary(lines []Calculation) BatchSummary {
	summary := BatchSummary{
		TotalGross:      decimal.Zero,
		TotalNet:        decimal.Zero,
		TotalDeductions: decimal.Zero,
		AverageHours:    decimal.Zero,
	}

	totalHours := decimal.Zero
	for _, line := range lines {
		summary.Employees++
		if line.IsEligible {
			summary.EligibleCount++
		}
		if line.IsEligible && line.Streak.Qualifies {
			summary.BonusRecipients++
		}
		summary.TotalGross = summary.TotalGross.Add(line.GrossAmount)
		summary.TotalNet = summary.TotalNet.Add(line.NetAmount)
		summary.TotalDeductions = summary.TotalDeductions.Add(line.Deductions.Total)
		totalHours = totalHours.Add(line.BillableHours)
	}

	if summary.Employees > 0 {
		summary.AverageHours = engine.RoundHours(
			totalHours.Div(decimal.NewFromInt(int64(summary.Employees))))
	}
	return summary
}
