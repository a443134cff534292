package activity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/activity"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var dayStart = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func active(offsetSeconds int64) activity.ActivityEvent {
	return activity.ActivityEvent{
		Timestamp: dayStart.Add(time.Duration(offsetSeconds) * time.Second),
		Kind:      activity.KindKeyPress,
		SessionID: "sess-1",
	}
}

func idle(offsetSeconds int64, kind activity.EventKind) activity.ActivityEvent {
	return activity.ActivityEvent{
		Timestamp: dayStart.Add(time.Duration(offsetSeconds) * time.Second),
		Kind:      kind,
		SessionID: "sess-1",
	}
}

// =============================================================================
// PAUSE THRESHOLD TESTS
// =============================================================================

func TestDetectPauses_BelowThreshold_NoPause(t *testing.T) {
	// GIVEN: Two active events 39s apart (threshold is 40s)
	// THEN: No pause

	pauses := activity.DetectPauses([]activity.ActivityEvent{
		active(0), active(39),
	}, activity.DefaultConfig())

	assert.Empty(t, pauses)
}

func TestDetectPauses_AtThreshold_OnePause(t *testing.T) {
	// GIVEN: Two active events exactly 40s apart
	// THEN: One pause of duration 40, classified brief

	pauses := activity.DetectPauses([]activity.ActivityEvent{
		active(0), active(40),
	}, activity.DefaultConfig())

	assert.Len(t, pauses, 1)
	assert.Equal(t, int64(40), pauses[0].DurationSeconds)
	assert.Equal(t, activity.PauseBrief, pauses[0].Reason)
	assert.Equal(t, dayStart, pauses[0].StartTime)
	assert.Equal(t, dayStart.Add(40*time.Second), pauses[0].EndTime)
}

func TestDetectPauses_ExtendedClassification(t *testing.T) {
	// GIVEN: A 300s gap (the extended cutoff)
	// THEN: Classified extended_inactivity

	pauses := activity.DetectPauses([]activity.ActivityEvent{
		active(0), active(300),
	}, activity.DefaultConfig())

	assert.Len(t, pauses, 1)
	assert.Equal(t, activity.PauseExtended, pauses[0].Reason)

	pauses = activity.DetectPauses([]activity.ActivityEvent{
		active(0), active(299),
	}, activity.DefaultConfig())
	assert.Equal(t, activity.PauseBrief, pauses[0].Reason)
}

func TestDetectPauses_IdleMarkersDoNotResetClock(t *testing.T) {
	// GIVEN: Active at 0s, idle markers at 20s/50s, active at 60s
	// THEN: The gap is measured active-to-active (60s) -> one pause

	pauses := activity.DetectPauses([]activity.ActivityEvent{
		active(0),
		idle(20, activity.KindIdleStart),
		idle(50, activity.KindIdleEnd),
		active(60),
	}, activity.DefaultConfig())

	assert.Len(t, pauses, 1)
	assert.Equal(t, int64(60), pauses[0].DurationSeconds)
}

func TestDetectPauses_UnsortedInput(t *testing.T) {
	// GIVEN: Events supplied out of order
	// THEN: Detection sorts defensively and finds the single 120s gap

	pauses := activity.DetectPauses([]activity.ActivityEvent{
		active(150), active(0), active(30), active(151),
	}, activity.DefaultConfig())

	assert.Len(t, pauses, 1)
	assert.Equal(t, int64(120), pauses[0].DurationSeconds)
}

func TestDetectPauses_SparseInput_Degrades(t *testing.T) {
	cfg := activity.DefaultConfig()

	assert.Empty(t, activity.DetectPauses(nil, cfg))
	assert.Empty(t, activity.DetectPauses([]activity.ActivityEvent{active(0)}, cfg))
	// Only idle markers: nothing to measure between.
	assert.Empty(t, activity.DetectPauses([]activity.ActivityEvent{
		idle(0, activity.KindIdleStart), idle(500, activity.KindIdleEnd),
	}, cfg))
}

// =============================================================================
// DAILY ACTIVITY TESTS
// =============================================================================

func TestBuildDailyActivity_BillableSubtractsPauses(t *testing.T) {
	// GIVEN: 8h elapsed with one 600s pause
	// THEN: billable = 28200s, minimum met (>= 6h), pause reason recorded

	date := engine.NewDate(2025, time.March, 10)
	events := []activity.ActivityEvent{active(0), active(600), active(700)}

	day := activity.BuildDailyActivity("user-1", date, 8*3600, events, activity.DefaultConfig())

	assert.Equal(t, int64(8*3600), day.TotalSeconds)
	assert.Equal(t, int64(600), day.PauseSeconds)
	assert.Equal(t, int64(8*3600-600), day.BillableSeconds)
	assert.True(t, day.MeetsDailyMinimum)
	assert.Equal(t, 3, day.ActiveEvents)
	assert.Equal(t, []activity.PauseReason{activity.PauseExtended}, day.PauseReasons)
	assert.Equal(t, dayStart.Add(700*time.Second), *day.LastActivity)
}

func TestBuildDailyActivity_BillableNeverNegative(t *testing.T) {
	// GIVEN: Pauses exceeding the nominal elapsed time
	// THEN: billable clamps at 0 and the day does not qualify

	date := engine.NewDate(2025, time.March, 10)
	events := []activity.ActivityEvent{active(0), active(4000)}

	day := activity.BuildDailyActivity("user-1", date, 100, events, activity.DefaultConfig())

	assert.Equal(t, int64(0), day.BillableSeconds)
	assert.False(t, day.MeetsDailyMinimum)
	assert.LessOrEqual(t, day.BillableSeconds, day.TotalSeconds)
}

func TestBuildDailyActivity_NoEvents(t *testing.T) {
	date := engine.NewDate(2025, time.March, 10)

	day := activity.BuildDailyActivity("user-1", date, 7*3600, nil, activity.DefaultConfig())

	assert.Equal(t, int64(7*3600), day.BillableSeconds)
	assert.Equal(t, 0, day.ActiveEvents)
	assert.Nil(t, day.LastActivity)
	assert.True(t, day.MeetsDailyMinimum)
}
