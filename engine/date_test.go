package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

func TestStartOfWeek_MondayAnchor(t *testing.T) {
	// GIVEN a Monday, a midweek day and a Sunday in the same week
	monday := engine.NewDate(2025, time.August, 4)

	// THEN all of them anchor to that Monday
	assert.True(t, monday.StartOfWeek().Equal(monday))
	assert.True(t, engine.NewDate(2025, time.August, 7).StartOfWeek().Equal(monday))
	assert.True(t, engine.NewDate(2025, time.August, 10).StartOfWeek().Equal(monday))

	// AND the next Monday anchors to itself, not backwards
	next := engine.NewDate(2025, time.August, 11)
	assert.True(t, next.StartOfWeek().Equal(next))
}

func TestWeekLabel_ISOYearBoundary(t *testing.T) {
	assert.Equal(t, "2025-W32", engine.NewDate(2025, time.August, 4).WeekLabel())

	// Jan 1 2027 falls in the last ISO week of 2026.
	assert.Equal(t, "2026-W53", engine.NewDate(2027, time.January, 1).WeekLabel())

	// Single-digit weeks are zero padded so labels sort lexically.
	assert.Equal(t, "2025-W02", engine.NewDate(2025, time.January, 8).WeekLabel())
}

func TestDaysBetween_SignedSpan(t *testing.T) {
	from := engine.NewDate(2025, time.June, 2)
	assert.Equal(t, 0, engine.DaysBetween(from, from))
	assert.Equal(t, 5, engine.DaysBetween(from, from.AddDays(5)))
	assert.Equal(t, -3, engine.DaysBetween(from, from.AddDays(-3)))
}

func TestDateOf_StripsWallClock(t *testing.T) {
	instant := time.Date(2025, time.June, 2, 23, 59, 59, 0, time.UTC)
	assert.True(t, engine.DateOf(instant).Equal(engine.NewDate(2025, time.June, 2)))
}

func TestDate_JSONRoundTrip(t *testing.T) {
	date := engine.NewDate(2025, time.June, 2)

	encoded, err := json.Marshal(date)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-02"`, string(encoded))

	var decoded engine.Date
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, decoded.Equal(date))
}
