package leave_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/leave"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// submittedAt is a Monday morning; leave dates below are relative to it.
var submittedAt = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

func request(t leave.Type, from, to engine.Date) leave.Request {
	return leave.Request{
		UserID:      "user-1",
		Type:        t,
		DateFrom:    from,
		DateTo:      to,
		Reason:      "personal",
		RequestedAt: submittedAt,
	}
}

func day(d int) engine.Date { return engine.NewDate(2025, time.June, d) }

// =============================================================================
// HARD GATE TESTS
// =============================================================================

func TestValidate_CleanLongLeave(t *testing.T) {
	// GIVEN: A LONG weekday leave with a week of notice and an empty history
	// THEN: Valid with no penalties or warnings

	req := request(leave.TypeLong, day(9), day(10))

	res := leave.Validate(req, leave.History{}, leave.DefaultConfig())

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.Penalties)
	assert.Equal(t, 2.0, res.LeaveDays)
	assert.Equal(t, 159, res.NoticeHours)
}

func TestValidate_ReversedRangeShortCircuits(t *testing.T) {
	// GIVEN: dateTo before dateFrom
	// THEN: A single error; no later gate runs

	req := request(leave.TypeLong, day(5), day(3))

	res := leave.Validate(req, leave.History{Suspended: true}, leave.DefaultConfig())

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "precede")
	assert.Empty(t, res.Penalties)
}

func TestValidate_ShortLeaveCannotSpanDays(t *testing.T) {
	// GIVEN: A SHORT request spanning three days
	// THEN: Invalid regardless of every other field

	req := request(leave.TypeShort, day(3), day(5))

	res := leave.Validate(req, leave.History{}, leave.DefaultConfig())

	assert.False(t, res.IsValid)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "half day")
	assert.Equal(t, 3.0, res.LeaveDays)
}

func TestValidate_TypeDurationConsistency(t *testing.T) {
	cfg := leave.DefaultConfig()

	// ONE_DAY spanning two days rejects.
	res := leave.Validate(request(leave.TypeOneDay, day(3), day(4)), leave.History{}, cfg)
	assert.False(t, res.IsValid)

	// LONG covering a single day rejects.
	res = leave.Validate(request(leave.TypeLong, day(3), day(3)), leave.History{}, cfg)
	assert.False(t, res.IsValid)

	// A half-day SHORT counts 0.5 days.
	res = leave.Validate(request(leave.TypeShort, day(3), day(3)), leave.History{}, cfg)
	assert.True(t, res.IsValid)
	assert.Equal(t, 0.5, res.LeaveDays)
}

func TestValidate_PastStartRejected(t *testing.T) {
	req := request(leave.TypeOneDay, engine.NewDate(2025, time.May, 30), engine.NewDate(2025, time.May, 30))

	res := leave.Validate(req, leave.History{}, leave.DefaultConfig())

	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "past")
}

func TestValidate_ConsecutiveDayCeiling(t *testing.T) {
	// GIVEN: An eight day LONG leave (ceiling is 7)
	req := request(leave.TypeLong, day(9), day(16))

	res := leave.Validate(req, leave.History{}, leave.DefaultConfig())

	assert.False(t, res.IsValid)
}

func TestValidate_SuspendedUserRejected(t *testing.T) {
	req := request(leave.TypeOneDay, day(4), day(4))

	res := leave.Validate(req, leave.History{Suspended: true}, leave.DefaultConfig())

	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "suspended")
}

func TestValidate_WeeklyCapIsHard(t *testing.T) {
	// GIVEN: A ONE_DAY already taken this week (weekly cap 1)
	// THEN: Rejected, not merely penalized

	history := leave.History{
		WeekRequests: []leave.Request{request(leave.TypeOneDay, day(3), day(3))},
	}
	req := request(leave.TypeOneDay, day(5), day(5))

	res := leave.Validate(req, history, leave.DefaultConfig())

	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "weekly limit")
	assert.Empty(t, res.Penalties)
}

// =============================================================================
// SOFT GATE TESTS
// =============================================================================

func TestValidate_ShortNoticePenalizedNotRejected(t *testing.T) {
	// GIVEN: A ONE_DAY starting tomorrow midnight (15h notice, 24h required)
	// THEN: Valid with a short_notice penalty of 100

	req := request(leave.TypeOneDay, day(3), day(3))

	res := leave.Validate(req, leave.History{}, leave.DefaultConfig())

	assert.True(t, res.IsValid)
	assert.Equal(t, 15, res.NoticeHours)
	require.Len(t, res.Penalties, 1)
	assert.Equal(t, engine.PenaltyShortNotice, res.Penalties[0].Type)
	assert.True(t, decimal.NewFromInt(100).Equal(res.Penalties[0].Amount))
	assert.Len(t, res.Warnings, 1)
}

func TestValidate_MonthlyCapPenalizedPerDay(t *testing.T) {
	// GIVEN: A LONG already taken this month (monthly cap 1), a new 3-day LONG
	// THEN: Valid with an excessive_leave penalty of 75 x 3

	history := leave.History{
		MonthRequests: []leave.Request{request(leave.TypeLong, day(3), day(4))},
	}
	req := request(leave.TypeLong, day(9), day(11))

	res := leave.Validate(req, history, leave.DefaultConfig())

	assert.True(t, res.IsValid)
	require.Len(t, res.Penalties, 1)
	assert.Equal(t, engine.PenaltyExcessiveLeave, res.Penalties[0].Type)
	assert.True(t, decimal.NewFromInt(225).Equal(res.Penalties[0].Amount),
		"got %s", res.Penalties[0].Amount)
}

func TestValidate_WeekendDaysPenalized(t *testing.T) {
	// GIVEN: A LONG leave covering Saturday and Sunday, penalty 40 per day
	// THEN: One weekend_penalty entry of amount 80

	req := request(leave.TypeLong, day(7), day(8))

	res := leave.Validate(req, leave.History{}, leave.DefaultConfig())

	assert.True(t, res.IsValid)
	require.Len(t, res.Penalties, 1)
	assert.Equal(t, engine.PenaltyWeekend, res.Penalties[0].Type)
	assert.True(t, decimal.NewFromInt(80).Equal(res.Penalties[0].Amount),
		"got %s", res.Penalties[0].Amount)
}

func TestValidate_PatternAbuseWarnsOnly(t *testing.T) {
	// GIVEN: Four SHORT leaves this month and a previous leave ending two
	//        days before the new start
	// THEN: Two warnings, zero penalties, still valid

	lastEnd := day(1)
	var month []leave.Request
	for i := 0; i < 4; i++ {
		month = append(month, request(leave.TypeShort, day(i+1), day(i+1)))
	}
	history := leave.History{MonthRequests: month, LastLeaveEnd: &lastEnd}

	req := request(leave.TypeShort, day(3), day(3))
	res := leave.Validate(req, history, leave.DefaultConfig())

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Penalties)
	assert.Len(t, res.Warnings, 2)
}

// =============================================================================
// SUSPENSION AND RESIGNATION TESTS
// =============================================================================

func TestCheckSuspension_Threshold(t *testing.T) {
	cfg := leave.DefaultConfig()

	var month []leave.Request
	for i := 0; i < 9; i++ {
		month = append(month, request(leave.TypeShort, day(i+1), day(i+1)))
	}
	assert.False(t, leave.CheckSuspension(leave.History{MonthRequests: month}, cfg).ShouldSuspend)

	month = append(month, request(leave.TypeShort, day(10), day(10)))
	check := leave.CheckSuspension(leave.History{MonthRequests: month}, cfg)
	assert.True(t, check.ShouldSuspend)
	assert.Equal(t, 10, check.MonthlyLeaves)
	assert.NotEmpty(t, check.Reason)
}

func TestCheckResignationNotice(t *testing.T) {
	cfg := leave.DefaultConfig()

	// Exactly 14 days of notice meets the requirement.
	n := leave.CheckResignationNotice(day(2), day(16), cfg)
	assert.True(t, n.MeetsRequired)
	assert.Equal(t, 14, n.NoticeDays)

	n = leave.CheckResignationNotice(day(2), day(15), cfg)
	assert.False(t, n.MeetsRequired)

	// A last working day in the past never counts as notice.
	n = leave.CheckResignationNotice(day(16), day(2), cfg)
	assert.Equal(t, 0, n.NoticeDays)
	assert.False(t, n.MeetsRequired)
}
