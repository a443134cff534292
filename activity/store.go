package activity

import (
	"context"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// Store is the persistence collaborator for the activity pipeline. The
// computation functions in this package never touch it; the shells load
// events through it and persist the derived records.
type Store interface {
	// AppendEvents adds raw monitor events to a user's timeline.
	AppendEvents(ctx context.Context, userID string, events []ActivityEvent) error

	// EventsForDate returns a user's events for one calendar date.
	EventsForDate(ctx context.Context, userID string, date engine.Date) ([]ActivityEvent, error)

	// SaveDailyActivity persists a derived daily record, superseding any
	// existing record for the same (user, date).
	SaveDailyActivity(ctx context.Context, day DailyActivity) error

	// DailyActivities returns a user's daily records in [from, to],
	// oldest first.
	DailyActivities(ctx context.Context, userID string, from, to engine.Date) ([]DailyActivity, error)

	// SaveStreak persists a recomputed streak, superseding the previous one.
	SaveStreak(ctx context.Context, s StreakData) error

	// Streak returns the stored streak for a user.
	Streak(ctx context.Context, userID string) (StreakData, error)
}
