/*
Package leave implements the leave request validator.

PURPOSE:
  Validates a leave request against the user's leave history and the leave
  policy configuration: notice periods, weekly and monthly caps per type,
  weekend and short-notice penalties, pattern-abuse warnings, and the
  suspension gate. The validator never mutates the request or the history;
  it returns a structured Result and the caller decides what to do with it.

KEY CONCEPTS:
  - Hard gates add errors and reject the request (date ordering, duration
    consistency per type, the consecutive-day ceiling, suspension, weekly
    caps).
  - Soft gates keep the request valid but attach a costed penalty and a
    warning (short notice, monthly cap overflow, weekend days).
  - Pattern-abuse heuristics are warning-only. They attach no penalty.

GATE ORDER:
  Gates run in a fixed order and accumulate; only a reversed date range
  short-circuits, because no later rule is meaningful without a valid span.

SEE ALSO:
  - validate.go: The ordered gate pipeline
  - suspension.go: Auto-suspension and resignation notice checks
  - store.go: Persistence collaborator interface
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// REQUEST AND HISTORY - Immutable inputs
// =============================================================================

// Type classifies a leave request by duration.
type Type string

const (
	// TypeShort is a half-day leave. DateFrom must equal DateTo.
	TypeShort Type = "SHORT"

	// TypeOneDay is a single full day.
	TypeOneDay Type = "ONE_DAY"

	// TypeLong spans two or more days.
	TypeLong Type = "LONG"
)

// Request is a leave request as submitted. The validator only reads it;
// approval decisions happen outside the engine.
type Request struct {
	UserID      string
	Type        Type
	DateFrom    engine.Date
	DateTo      engine.Date
	Reason      string
	RequestedAt time.Time
}

// History is a read-only snapshot of the user's leave record, supplied by
// the persistence collaborator per validation call.
type History struct {
	WeekRequests  []Request // requests falling in the current week
	MonthRequests []Request // requests falling in the current month

	TotalLeaves     int
	SuspensionCount int
	Suspended       bool

	// LastLeaveEnd is the final day of the user's most recent leave,
	// nil when the user has never taken leave.
	LastLeaveEnd *engine.Date
}

// =============================================================================
// RESULT
// =============================================================================

// Result is the structured outcome of a validation. A request with
// penalties is still valid; only errors reject.
type Result struct {
	IsValid   bool
	Errors    []string
	Warnings  []string
	Penalties []engine.Penalty

	// NoticeHours is the whole hours between submission and the leave start.
	NoticeHours int

	// LeaveDays is the requested span in days; 0.5 for a half-day SHORT.
	LeaveDays float64
}

// =============================================================================
// CONFIGURATION
// =============================================================================

type Config struct {
	// MaxConsecutiveDays caps any single request's span.
	MaxConsecutiveDays int

	// NoticeHours is the required notice per type, in hours.
	NoticeHours map[Type]int

	// WeeklyCaps and MonthlyCaps limit requests per type per period.
	// Exceeding a weekly cap rejects; exceeding a monthly cap only costs.
	WeeklyCaps  map[Type]int
	MonthlyCaps map[Type]int

	// ShortNoticePenalty is the flat penalty per type when notice falls
	// short of the requirement.
	ShortNoticePenalty map[Type]decimal.Decimal

	// ExcessiveLeavePenaltyPerDay prices each requested day once the
	// monthly cap for the type is exhausted.
	ExcessiveLeavePenaltyPerDay decimal.Decimal

	// WeekendPenaltyPerDay prices each requested day landing on a weekend.
	WeekendPenaltyPerDay decimal.Decimal

	// SuspensionMonthlyLeaves is the monthly request count that triggers
	// auto-suspension.
	SuspensionMonthlyLeaves int

	// ResignationNoticeDays is the required resignation notice.
	ResignationNoticeDays int

	// PatternShortLeavesPerMonth and PatternMinDaysBetween drive the
	// warning-only pattern heuristics.
	PatternShortLeavesPerMonth int
	PatternMinDaysBetween      int
}

func DefaultConfig() Config {
	return Config{
		MaxConsecutiveDays: 7,
		NoticeHours: map[Type]int{
			TypeShort:  4,
			TypeOneDay: 24,
			TypeLong:   72,
		},
		WeeklyCaps: map[Type]int{
			TypeShort:  2,
			TypeOneDay: 1,
			TypeLong:   1,
		},
		MonthlyCaps: map[Type]int{
			TypeShort:  6,
			TypeOneDay: 4,
			TypeLong:   1,
		},
		ShortNoticePenalty: map[Type]decimal.Decimal{
			TypeShort:  decimal.NewFromInt(50),
			TypeOneDay: decimal.NewFromInt(100),
			TypeLong:   decimal.NewFromInt(250),
		},
		ExcessiveLeavePenaltyPerDay: decimal.NewFromInt(75),
		WeekendPenaltyPerDay:        decimal.NewFromInt(40),
		SuspensionMonthlyLeaves:     10,
		ResignationNoticeDays:       14,
		PatternShortLeavesPerMonth:  4,
		PatternMinDaysBetween:       3,
	}
}
