package leave

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// VALIDATION PIPELINE - Ordered gates, accumulated outcome
// =============================================================================

// Validate runs the request through the ordered gate pipeline and returns
// the accumulated Result. Penalties never reject on their own; the request
// is valid exactly when no gate recorded an error.
func Validate(req Request, history History, cfg Config) Result {
	res := Result{
		NoticeHours: noticeHours(req),
	}

	// A reversed range makes every later rule meaningless.
	if req.DateTo.Before(req.DateFrom) {
		res.Errors = append(res.Errors, "leave end date must not precede the start date")
		return res
	}

	res.LeaveDays = leaveDays(req)

	checkNotInPast(req, &res)
	checkDuration(req, &res, cfg)
	checkSuspended(history, &res)
	checkNotice(req, &res, cfg)
	checkWeeklyCap(req, history, &res, cfg)
	checkMonthlyCap(req, history, &res, cfg)
	checkWeekendDays(req, &res, cfg)
	checkPatterns(req, history, &res, cfg)

	res.IsValid = len(res.Errors) == 0
	return res
}

// noticeHours is the whole hours between submission and the leave start,
// where the start is taken as midnight of the first requested day.
func noticeHours(req Request) int {
	h := req.DateFrom.Time().Sub(req.RequestedAt).Hours()
	return int(math.Floor(h))
}

// leaveDays is the inclusive span in days; a same-day SHORT counts 0.5.
func leaveDays(req Request) float64 {
	span := float64(engine.DaysBetween(req.DateFrom, req.DateTo) + 1)
	if req.Type == TypeShort && req.DateFrom.Equal(req.DateTo) {
		return 0.5
	}
	return span
}

// =============================================================================
// HARD GATES
// =============================================================================

func checkNotInPast(req Request, res *Result) {
	today := engine.DateOf(req.RequestedAt)
	if req.DateFrom.Before(today) {
		res.Errors = append(res.Errors, "leave cannot start in the past")
	}
}

func checkDuration(req Request, res *Result, cfg Config) {
	span := engine.DaysBetween(req.DateFrom, req.DateTo) + 1

	switch req.Type {
	case TypeShort:
		if span != 1 {
			res.Errors = append(res.Errors,
				"a SHORT leave is a half day and cannot span multiple days")
		}
	case TypeOneDay:
		if span != 1 {
			res.Errors = append(res.Errors,
				"a ONE_DAY leave must cover exactly one day")
		}
	case TypeLong:
		if span < 2 {
			res.Errors = append(res.Errors,
				"a LONG leave must span at least two days")
		}
	default:
		res.Errors = append(res.Errors,
			fmt.Sprintf("unknown leave type %q", req.Type))
	}

	if span > cfg.MaxConsecutiveDays {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"leave spans %d days, exceeding the %d consecutive day limit",
			span, cfg.MaxConsecutiveDays))
	}
}

func checkSuspended(history History, res *Result) {
	if history.Suspended {
		res.Errors = append(res.Errors,
			"account is suspended and cannot request leave")
	}
}

// Weekly caps reject outright, unlike monthly caps which only cost.
func checkWeeklyCap(req Request, history History, res *Result, cfg Config) {
	limit, ok := cfg.WeeklyCaps[req.Type]
	if !ok {
		return
	}
	if countType(history.WeekRequests, req.Type) >= limit {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"weekly limit of %d %s leave(s) already reached", limit, req.Type))
	}
}

// =============================================================================
// SOFT GATES - Penalty plus warning, request stays valid
// =============================================================================

func checkNotice(req Request, res *Result, cfg Config) {
	required, ok := cfg.NoticeHours[req.Type]
	if !ok || res.NoticeHours >= required {
		return
	}

	amount := cfg.ShortNoticePenalty[req.Type]
	res.Penalties = append(res.Penalties, engine.Penalty{
		Type:   engine.PenaltyShortNotice,
		Amount: amount,
		Description: fmt.Sprintf("%d hours notice given, %d required for %s leave",
			res.NoticeHours, required, req.Type),
	})
	res.Warnings = append(res.Warnings, fmt.Sprintf(
		"short notice: %s leave requires %d hours notice", req.Type, required))
}

func checkMonthlyCap(req Request, history History, res *Result, cfg Config) {
	limit, ok := cfg.MonthlyCaps[req.Type]
	if !ok {
		return
	}
	if countType(history.MonthRequests, req.Type) < limit {
		return
	}

	amount := cfg.ExcessiveLeavePenaltyPerDay.Mul(decimal.NewFromFloat(res.LeaveDays))
	res.Penalties = append(res.Penalties, engine.Penalty{
		Type:   engine.PenaltyExcessiveLeave,
		Amount: engine.RoundMoney(amount),
		Description: fmt.Sprintf("monthly limit of %d %s leave(s) exceeded",
			limit, req.Type),
	})
	res.Warnings = append(res.Warnings, fmt.Sprintf(
		"monthly %s leave limit exceeded; this request is penalized", req.Type))
}

func checkWeekendDays(req Request, res *Result, cfg Config) {
	weekendDays := 0
	for d := req.DateFrom; !d.After(req.DateTo); d = d.AddDays(1) {
		if d.IsWeekend() {
			weekendDays++
		}
	}
	if weekendDays == 0 {
		return
	}

	amount := cfg.WeekendPenaltyPerDay.Mul(decimal.NewFromInt(int64(weekendDays)))
	res.Penalties = append(res.Penalties, engine.Penalty{
		Type:   engine.PenaltyWeekend,
		Amount: amount,
		Description: fmt.Sprintf("%d requested day(s) fall on a weekend",
			weekendDays),
	})
	res.Warnings = append(res.Warnings,
		"leave includes weekend days and carries a weekend penalty")
}

// Pattern heuristics warn without costing. Kept warning-only pending a
// product decision on whether they should ever penalize.
func checkPatterns(req Request, history History, res *Result, cfg Config) {
	if req.Type == TypeShort &&
		countType(history.MonthRequests, TypeShort) >= cfg.PatternShortLeavesPerMonth {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"frequent SHORT leaves: %d or more already requested this month",
			cfg.PatternShortLeavesPerMonth))
	}

	if history.LastLeaveEnd != nil {
		gap := engine.DaysBetween(*history.LastLeaveEnd, req.DateFrom)
		if gap >= 0 && gap <= cfg.PatternMinDaysBetween {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"leave starts only %d day(s) after the previous leave ended", gap))
		}
	}
}

func countType(requests []Request, t Type) int {
	n := 0
	for _, r := range requests {
		if r.Type == t {
			n++
		}
	}
	return n
}
