/*
Package eligibility implements the candidate eligibility scorer.

PURPOSE:
  Evaluates a candidate's self-reported attributes against weighted criteria
  and classifies them ELIGIBLE / PENDING / REJECTED with a numeric score and
  a per-category breakdown. Six independent sub-evaluators contribute:
  age, hardware, internet, availability, professional background, and
  compliance.

KEY CONCEPTS:
  - EvaluationData: the flat record of candidate-declared attributes.
    Free-text fields (RAM, processor, link speed) are parsed best-effort;
    unparsable values default to 0 and depress the score instead of failing.
  - Absolute gates: declining confidentiality, or an age outside the
    configured range, rejects regardless of score.
  - Reasons: every sub-evaluator appends human-readable reasons for the
    points it withheld; concatenation order matches evaluation order and is
    part of the contract.

EXAMPLE:
  result := eligibility.Evaluate(data, eligibility.DefaultConfig())
  // result.Status, result.Score, result.Breakdown, result.Reasons
*/
package eligibility

// =============================================================================
// INPUT - Candidate-declared attributes
// =============================================================================

// EvaluationData is the flat application record as the candidate declared it.
// Text fields are free-form and parsed defensively; the scorer never mutates
// or validates this struct beyond reading it.
type EvaluationData struct {
	Age int

	// Hardware
	DeviceType string // "Desktop", "Laptop", ...
	RAM        string // free text, e.g. "16GB DDR4"
	Processor  string // free text, e.g. "Intel Core i7-10700K"

	// Internet
	StableInternet bool
	InternetSpeed  string // free text, e.g. "100 Mbps"
	SharedUsers    int    // people sharing the connection
	SpeedTestRef   string // link/reference to a speed test, optional

	// Availability
	DailyTimeAvailable bool
	TimeWindows        []string // declared daily availability windows

	// Professional background
	Profession    string
	Qualification string

	// Compliance
	ConfidentialityAccepted bool
	TypingSkill             bool
}

// =============================================================================
// OUTPUT
// =============================================================================

type Status string

const (
	StatusEligible Status = "ELIGIBLE"
	StatusPending  Status = "PENDING"
	StatusRejected Status = "REJECTED"
)

// Breakdown holds the six category scores, each clamped to [0, 100].
type Breakdown struct {
	Age          int
	Hardware     int
	Internet     int
	Availability int
	Professional int
	Compliance   int
}

// EvaluationResult is the scorer's complete verdict.
type EvaluationResult struct {
	Status    Status
	Score     int // weighted total, 0-100
	Breakdown Breakdown
	Reasons   []string // in evaluation order: age, hardware, internet, availability, professional, compliance
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// Weights are the relative weights of the six categories. They need not sum
// to 100; the final score divides by their sum.
type Weights struct {
	Age          int
	Hardware     int
	Internet     int
	Availability int
	Professional int
	Compliance   int
}

func (w Weights) total() int {
	return w.Age + w.Hardware + w.Internet + w.Availability + w.Professional + w.Compliance
}

type Config struct {
	Weights Weights

	MinAge int
	MaxAge int

	EligibleThreshold int
	PendingThreshold  int
}

// DefaultConfig returns the production defaults (weights sum to 100).
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Age:          15,
			Hardware:     20,
			Internet:     20,
			Availability: 10,
			Professional: 20,
			Compliance:   15,
		},
		MinAge:            18,
		MaxAge:            55,
		EligibleThreshold: 80,
		PendingThreshold:  60,
	}
}
