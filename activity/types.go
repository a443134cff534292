/*
Package activity implements the streak and pause detector.

PURPOSE:
  Converts a raw activity-event timeline plus a nominal elapsed-time figure
  into billable seconds (after subtracting inactivity pauses), a per-day
  compliance flag, and a multi-day streak with weekend-gap tolerance.

KEY CONCEPTS:
  - ActivityEvent: immutable input produced by the external monitoring
    collaborator. Active kinds (mouse, keyboard, focus) advance the
    "last active" clock; idle markers never do.
  - Pause: a detected inactivity gap of at least the configured threshold.
  - DailyActivity: derived record, one per (user, date); superseded by
    recomputation, never mutated.
  - StreakData: recomputed wholesale from the full DailyActivity history so
    that a nightly batch re-derives identical output (idempotence).

FAILURE SEMANTICS:
  Malformed input (empty event list, single event, unsorted events) degrades
  to "no pauses" / "no streak". Nothing in this package returns an error.

SEE ALSO:
  - pauses.go: Gap detection over the event timeline
  - daily.go: Billable time and the daily-minimum compliance flag
  - streak.go: Gap-tolerant streak grouping
*/
package activity

import (
	"time"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// EVENTS
// =============================================================================

type EventKind string

const (
	KindMouseMove   EventKind = "mouse_move"
	KindMouseClick  EventKind = "mouse_click"
	KindKeyPress    EventKind = "key_press"
	KindWindowFocus EventKind = "window_focus"
	KindAppSwitch   EventKind = "app_switch"
	KindIdleStart   EventKind = "idle_start"
	KindIdleEnd     EventKind = "idle_end"
)

// Active reports whether the event kind advances the last-active clock.
// Idle markers may appear in the stream without resetting the gap clock.
func (k EventKind) Active() bool {
	switch k {
	case KindMouseMove, KindMouseClick, KindKeyPress, KindWindowFocus, KindAppSwitch:
		return true
	default:
		return false
	}
}

// ActivityEvent is a single observation from the activity monitor.
// Consumed only; never mutated.
type ActivityEvent struct {
	Timestamp time.Time
	Kind      EventKind
	SessionID string
}

// =============================================================================
// PAUSES
// =============================================================================

type PauseReason string

const (
	PauseBrief    PauseReason = "brief_inactivity"
	PauseExtended PauseReason = "extended_inactivity"
)

// Pause is a detected inactivity gap between two active events.
type Pause struct {
	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds int64
	Reason          PauseReason
}

// =============================================================================
// DAILY ACTIVITY - Derived, one per (user, date)
// =============================================================================

type DailyActivity struct {
	UserID string
	Date   engine.Date

	TotalSeconds    int64
	BillableSeconds int64
	PauseSeconds    int64

	ActiveEvents      int
	MeetsDailyMinimum bool
	LastActivity      *time.Time
	PauseReasons      []PauseReason
}

// =============================================================================
// STREAKS
// =============================================================================

// StreakPeriod is one gap-tolerant run of qualifying days. End is nil for
// the run that is still open as of the computation date.
type StreakPeriod struct {
	Start  engine.Date
	End    *engine.Date
	Length int
}

// StreakData is recomputed wholesale from the full history on each run.
type StreakData struct {
	UserID string

	CurrentStreak       int
	LongestStreak       int
	TotalQualifyingDays int
	LastActiveDate      *engine.Date
	Periods             []StreakPeriod // chronological, oldest first
}

// =============================================================================
// CONFIGURATION
// =============================================================================

type Config struct {
	// InactivityThresholdSeconds is the minimum gap between active events
	// that counts as a pause.
	InactivityThresholdSeconds int64

	// ExtendedPauseSeconds separates brief_inactivity from extended_inactivity.
	ExtendedPauseSeconds int64

	// MinimumDailyHours of billable time for a day to qualify.
	MinimumDailyHours float64

	// StreakGapToleranceDays is the largest calendar-day gap between
	// qualifying days that keeps a streak alive (absorbs weekends).
	StreakGapToleranceDays int

	// MinimumDaysForBonus is the current-streak length that unlocks the
	// payroll streak bonus.
	MinimumDaysForBonus int
}

func DefaultConfig() Config {
	return Config{
		InactivityThresholdSeconds: 40,
		ExtendedPauseSeconds:       300,
		MinimumDailyHours:          6,
		StreakGapToleranceDays:     3,
		MinimumDaysForBonus:        28,
	}
}
