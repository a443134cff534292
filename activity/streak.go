/*
streak.go - Gap-tolerant streak detection over the daily history

The streak is recomputed wholesale from the full DailyActivity history on
every run: given the same history and the same "as of" date, the output is
bit-identical. This is what lets the nightly batch re-derive streak state
instead of patching it.

GROUPING RULE:
  Only days meeting the daily minimum qualify. Consecutive qualifying days
  whose calendar gap is at most the tolerance (default 3 days) belong to the
  same run; a gap of 4+ days starts a new run. The tolerance absorbs
  weekends and single holidays without special-casing the calendar.

CURRENT STREAK:
  The length of the most recent run, but only while it is still warm: if the
  most recent qualifying day is more than one day before "as of", the
  current streak is 0 (the run remains in Periods and LongestStreak).
*/
package activity

import (
	"sort"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// ComputeStreak derives StreakData from the full daily history. Pure and
// idempotent; malformed or empty history yields an empty StreakData rather
// than an error.
func ComputeStreak(userID string, days []DailyActivity, asOf engine.Date, cfg Config) StreakData {
	qualifying := qualifyingDates(days)
	data := StreakData{UserID: userID, TotalQualifyingDays: len(qualifying)}
	if len(qualifying) == 0 {
		return data
	}

	last := qualifying[len(qualifying)-1]
	data.LastActiveDate = &last

	// Group oldest-first into gap-tolerant runs.
	periods := groupPeriods(qualifying, cfg.StreakGapToleranceDays)
	for _, p := range periods {
		if p.Length > data.LongestStreak {
			data.LongestStreak = p.Length
		}
	}

	// The current streak is the final run, if it is still warm.
	if engine.DaysBetween(last, asOf) <= 1 {
		data.CurrentStreak = periods[len(periods)-1].Length
		periods[len(periods)-1].End = nil // still open
	}

	data.Periods = periods
	return data
}

// QualifiesForBonus reports whether the current streak unlocks the payroll
// streak bonus.
func QualifiesForBonus(s StreakData, cfg Config) bool {
	return s.CurrentStreak >= cfg.MinimumDaysForBonus
}

// qualifyingDates filters to minimum-met days, deduplicates by date and
// sorts ascending.
func qualifyingDates(days []DailyActivity) []engine.Date {
	seen := make(map[string]bool, len(days))
	var dates []engine.Date
	for _, d := range days {
		if !d.MeetsDailyMinimum {
			continue
		}
		key := d.Date.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, d.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// groupPeriods folds the ascending qualifying dates into runs, breaking
// whenever the calendar gap exceeds the tolerance.
func groupPeriods(dates []engine.Date, toleranceDays int) []StreakPeriod {
	var periods []StreakPeriod

	start := dates[0]
	prev := dates[0]
	length := 1

	flush := func(end engine.Date) {
		e := end
		periods = append(periods, StreakPeriod{Start: start, End: &e, Length: length})
	}

	for _, d := range dates[1:] {
		if engine.DaysBetween(prev, d) > toleranceDays {
			flush(prev)
			start = d
			length = 1
		} else {
			length++
		}
		prev = d
	}
	flush(prev)

	return periods
}
