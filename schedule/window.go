/*
Package schedule implements the operational window evaluator.

PURPOSE:
  Decides whether a given instant falls inside a permitted working window.
  The business operates on a single fixed timezone; windows are local
  time-of-day intervals that may wrap past midnight (e.g. 23:00-02:00).
  A second "special" window is unlocked by tenure.

KEY CONCEPTS:
  - ClockTime: minutes since local midnight
  - Window: a [Start, End) time-of-day interval, wrap-aware
  - Tenure unlock: whole days since profile creation gates special access

DESIGN:
  CheckWindow is a pure function of (profile creation time, now, config).
  It performs no I/O and keeps no state; the surrounding application calls
  it per request as a synchronous gate.

EXAMPLE:
  cfg := schedule.DefaultConfig()
  d := schedule.CheckWindow(profileCreatedAt, time.Now(), cfg)
  if !d.Allowed {
      // d.Reason, d.MinutesUntilNext
  }
*/
package schedule

import (
	"fmt"
	"time"
)

// =============================================================================
// CLOCK TIME - Minutes since local midnight
// =============================================================================

// ClockTime is a time of day expressed as minutes since midnight [0, 1440).
type ClockTime int

const minutesPerDay = 24 * 60

// At constructs a ClockTime from hour and minute.
func At(hour, minute int) ClockTime {
	return ClockTime((hour*60 + minute) % minutesPerDay)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// ParseClock parses a "15:04" string into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return At(hour, minute), nil
}

// =============================================================================
// WINDOW - [Start, End) interval, wrap-aware
// =============================================================================

// Window is a time-of-day interval. When Start > End the window wraps past
// midnight: 23:00-02:00 contains 23:30, 00:30 and 01:59 but not 02:01.
type Window struct {
	Start ClockTime
	End   ClockTime
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t ClockTime) bool {
	if w.Start > w.End {
		return t >= w.Start || t < w.End
	}
	return t >= w.Start && t < w.End
}

// =============================================================================
// CONFIGURATION
// =============================================================================

type Config struct {
	// Timezone is the single business timezone; all windows are local to it.
	Timezone string

	Standard Window
	Special  Window

	// SpecialAccessTenureDays is the whole-day tenure needed before the
	// special window opens for an account.
	SpecialAccessTenureDays int
}

// DefaultConfig returns the production defaults: an evening standard window
// wrapping past midnight and an afternoon special window for tenured staff.
func DefaultConfig() Config {
	return Config{
		Timezone:                "Asia/Karachi",
		Standard:                Window{Start: At(18, 0), End: At(2, 0)},
		Special:                 Window{Start: At(14, 0), End: At(18, 0)},
		SpecialAccessTenureDays: 90,
	}
}

// =============================================================================
// DECISION
// =============================================================================

type WindowKind string

const (
	WindowStandard WindowKind = "standard"
	WindowSpecial  WindowKind = "special"
	WindowNone     WindowKind = "none"
)

// Decision is the result of a window check. When denied, Reason explains why
// and MinutesUntilNext counts to the next window start the account can use.
type Decision struct {
	Allowed          bool
	Window           WindowKind
	Reason           string
	MinutesUntilNext int
}

// =============================================================================
// EVALUATION
// =============================================================================

// CheckWindow evaluates whether 'now' is inside a permitted window for an
// account created at profileCreatedAt. Pure; no side effects.
func CheckWindow(profileCreatedAt, now time.Time, cfg Config) Decision {
	local := now.In(location(cfg.Timezone))
	t := At(local.Hour(), local.Minute())

	tenureDays := int(now.Sub(profileCreatedAt).Hours() / 24)
	specialUnlocked := tenureDays >= cfg.SpecialAccessTenureDays

	if cfg.Standard.Contains(t) {
		return Decision{Allowed: true, Window: WindowStandard}
	}
	if specialUnlocked && cfg.Special.Contains(t) {
		return Decision{Allowed: true, Window: WindowSpecial}
	}

	reason := fmt.Sprintf("outside operational hours (standard window %s-%s)",
		cfg.Standard.Start, cfg.Standard.End)
	if !specialUnlocked && cfg.Special.Contains(t) {
		reason = fmt.Sprintf("special window %s-%s requires %d days of tenure (current: %d)",
			cfg.Special.Start, cfg.Special.End, cfg.SpecialAccessTenureDays, tenureDays)
	}

	return Decision{
		Allowed:          false,
		Window:           WindowNone,
		Reason:           reason,
		MinutesUntilNext: minutesUntilNext(t, cfg, specialUnlocked),
	}
}

// minutesUntilNext finds the smallest window start strictly after t among the
// windows the account may use, wrapping to the next day when none remain.
func minutesUntilNext(t ClockTime, cfg Config, specialUnlocked bool) int {
	starts := []ClockTime{cfg.Standard.Start}
	if specialUnlocked {
		starts = append(starts, cfg.Special.Start)
	}

	best := minutesPerDay
	for _, s := range starts {
		delta := (int(s) - int(t) + minutesPerDay) % minutesPerDay
		if delta == 0 {
			delta = minutesPerDay
		}
		if delta < best {
			best = delta
		}
	}
	return best
}

// location resolves the configured timezone, falling back to UTC rather than
// failing: a bad timezone name must not take down the request gate.
func location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
