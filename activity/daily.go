package activity

import (
	"time"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// DAILY ACTIVITY - Billable time and the compliance flag
// =============================================================================

// BuildDailyActivity derives the DailyActivity record for one (user, date)
// from the nominal elapsed seconds and the day's event timeline. The record
// is created fresh on every run; recomputation supersedes, never mutates.
func BuildDailyActivity(userID string, date engine.Date, elapsedSeconds int64, events []ActivityEvent, cfg Config) DailyActivity {
	pauses := DetectPauses(events, cfg)

	var pauseSeconds int64
	reasons := make([]PauseReason, 0, len(pauses))
	for _, p := range pauses {
		pauseSeconds += p.DurationSeconds
		reasons = append(reasons, p.Reason)
	}

	billable := elapsedSeconds - pauseSeconds
	if billable < 0 {
		billable = 0
	}

	var lastActivity *time.Time
	activeCount := 0
	for _, ev := range events {
		if !ev.Kind.Active() {
			continue
		}
		activeCount++
		if lastActivity == nil || ev.Timestamp.After(*lastActivity) {
			ts := ev.Timestamp
			lastActivity = &ts
		}
	}

	return DailyActivity{
		UserID:            userID,
		Date:              date,
		TotalSeconds:      elapsedSeconds,
		BillableSeconds:   billable,
		PauseSeconds:      pauseSeconds,
		ActiveEvents:      activeCount,
		MeetsDailyMinimum: float64(billable)/3600.0 >= cfg.MinimumDailyHours,
		LastActivity:      lastActivity,
		PauseReasons:      reasons,
	}
}
