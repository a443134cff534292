package eligibility

import "context"

// Store is the persistence collaborator for evaluation outcomes. The
// evaluator itself is pure; the shells persist results through it.
type Store interface {
	// SaveEvaluation persists an evaluation outcome for a candidate.
	SaveEvaluation(ctx context.Context, candidateID string, res EvaluationResult) error

	// LatestEvaluation returns the most recent outcome for a candidate.
	LatestEvaluation(ctx context.Context, candidateID string) (EvaluationResult, error)
}
