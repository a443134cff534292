package leave

import (
	"context"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// Store is the persistence collaborator for leave requests and the
// penalty ledger. The validator itself never touches it; the shells load
// a History snapshot through it before each validation call.
type Store interface {
	// SaveRequest persists a validated request.
	SaveRequest(ctx context.Context, req Request) error

	// HistoryFor assembles the read-only History snapshot for a user,
	// with week and month windows anchored on asOf.
	HistoryFor(ctx context.Context, userID string, asOf engine.Date) (History, error)

	// SavePenalties appends ledger entries produced by a validation.
	SavePenalties(ctx context.Context, userID string, asOf engine.Date, penalties []engine.Penalty) error

	// PenaltiesForWeek returns the ledger entries charged to the user in
	// the Monday-anchored week containing weekStart.
	PenaltiesForWeek(ctx context.Context, userID string, weekStart engine.Date) ([]engine.Penalty, error)

	// SetSuspended records a suspension decision.
	SetSuspended(ctx context.Context, userID string, suspended bool) error
}
