package payroll

import (
	"context"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// Store is the persistence collaborator for payroll inputs and outputs.
// The calculator never touches it; the shells load snapshots through it
// and persist the resulting lines.
type Store interface {
	// SaveTimerSummary persists a week's aggregate for a user.
	SaveTimerSummary(ctx context.Context, s TimerSummary) error

	// TimerSummary returns the aggregate for one (user, weekStart).
	TimerSummary(ctx context.Context, userID string, weekStart engine.Date) (TimerSummary, error)

	// TimerSummaries returns every stored weekly aggregate for a user,
	// oldest first.
	TimerSummaries(ctx context.Context, userID string) ([]TimerSummary, error)

	// PayrollHistory returns the user's payroll record.
	PayrollHistory(ctx context.Context, userID string) (History, error)

	// SaveCalculation persists a computed line under a run identifier.
	SaveCalculation(ctx context.Context, runID string, c Calculation) error

	// MarkSecurityFundDeducted records that the one-time deduction has
	// been taken.
	MarkSecurityFundDeducted(ctx context.Context, userID string) error
}
