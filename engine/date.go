/*
Package engine provides the shared primitives for the workforce compliance
and compensation engine.

PURPOSE:
  This package contains the domain-agnostic building blocks used by every
  computation package: civil dates, money rounding, the penalty ledger
  entry, collaborator interfaces, and sentinel errors. The computation
  packages (schedule, eligibility, activity, leave, payroll) are pure
  functions over immutable inputs; everything stateful lives behind the
  interfaces declared here and in the domain packages.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A civil calendar date with day granularity (no wall-clock part)
  - Week arithmetic: Monday anchoring and ISO week labels for payroll

DESIGN PRINCIPLES:
  1. Determinism: callers inject "now"/"today"; nothing here reads a clock
     except the explicit Today() convenience used only by the shells
  2. Immutability: Date is a value type; arithmetic returns new values
  3. Precision: money uses decimal.Decimal, never float64 (money.go)

SEE ALSO:
  - money.go: Monetary rounding helpers
  - penalty.go: The penalty ledger entry shared by leave and payroll
  - notify.go: Notification collaborator interface
*/
package engine

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// DATE - Civil calendar date (day granularity)
// =============================================================================

// Date is a calendar date without a time-of-day component. All engine
// computations that reason about days (streaks, leave spans, pay weeks)
// use Date so that wall-clock noise cannot leak into day arithmetic.
type Date struct {
	t time.Time // normalized to midnight UTC
}

// NewDate constructs a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date (in the instant's location).
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date. Only the shells (api, jobs) call
// this; the computation packages take an explicit "as of" date instead.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return d.t }

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string { return d.t.Format("2006-01-02") }

// MarshalJSON encodes the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "2006-01-02" or an empty string for the zero date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween returns the number of calendar days from 'from' to 'to'.
// Negative when 'to' precedes 'from'.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// WEEK ARITHMETIC - Payroll weeks are Monday-anchored
// =============================================================================

// StartOfWeek returns the Monday on or before the date.
func (d Date) StartOfWeek() Date {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return d.AddDays(-offset)
}

// WeekLabel returns the ISO week label for the date, e.g. "2025-W32".
// Weeks are zero-padded so labels sort lexically.
func (d Date) WeekLabel() string {
	year, week := d.t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
