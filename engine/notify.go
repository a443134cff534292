package engine

import "context"

// =============================================================================
// NOTIFIER - Notification collaborator (email/SMS delivery is external)
// =============================================================================

// StreakMilestone is emitted when a nightly recompute crosses a streak
// threshold (bonus qualification, round numbers).
type StreakMilestone struct {
	UserID     string
	StreakDays int
	Date       Date
}

// ComplianceWarning is emitted when a day closes below the daily minimum.
type ComplianceWarning struct {
	UserID          string
	Date            Date
	BillableSeconds int64
}

// Notifier consumes engine events. Delivery (email, SMS, in-app) is the
// collaborator's concern; the engine only produces the events.
type Notifier interface {
	StreakMilestone(ctx context.Context, ev StreakMilestone) error
	ComplianceWarning(ctx context.Context, ev ComplianceWarning) error
}

// NopNotifier discards all events. Used when notifications are disabled.
type NopNotifier struct{}

func (NopNotifier) StreakMilestone(context.Context, StreakMilestone) error     { return nil }
func (NopNotifier) ComplianceWarning(context.Context, ComplianceWarning) error { return nil }

var _ Notifier = NopNotifier{}
