package activity

import (
	"sort"
	"time"
)

// =============================================================================
// PAUSE DETECTION - Gaps between active events
// =============================================================================

// DetectPauses walks the event timeline and emits a pause for every gap of
// at least the configured threshold between consecutive active events.
// Events are sorted defensively; callers may supply them out of order.
// Fewer than two events yields no pauses.
func DetectPauses(events []ActivityEvent, cfg Config) []Pause {
	if len(events) < 2 {
		return nil
	}

	sorted := make([]ActivityEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var pauses []Pause
	var lastActive time.Time

	for _, ev := range sorted {
		// Only active events move the clock; idle markers pass through.
		if !ev.Kind.Active() {
			continue
		}
		if !lastActive.IsZero() {
			gap := int64(ev.Timestamp.Sub(lastActive) / time.Second)
			if gap >= cfg.InactivityThresholdSeconds {
				pauses = append(pauses, Pause{
					StartTime:       lastActive,
					EndTime:         ev.Timestamp,
					DurationSeconds: gap,
					Reason:          classifyPause(gap, cfg),
				})
			}
		}
		lastActive = ev.Timestamp
	}

	return pauses
}

func classifyPause(durationSeconds int64, cfg Config) PauseReason {
	if durationSeconds < cfg.ExtendedPauseSeconds {
		return PauseBrief
	}
	return PauseExtended
}
