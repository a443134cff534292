/*
parse.go - Best-effort classifiers for free-text hardware fields

The application form captures RAM, processor and link speed as free text.
These classifiers extract what they can and fall back to 0 / "unknown" on
anything unrecognizable, which naturally depresses the score instead of
failing the evaluation.
*/
package eligibility

import (
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parseLeadingNumber extracts the first integer/decimal token from free text.
// Returns 0 when no number is present.
func parseLeadingNumber(s string) float64 {
	token := numberPattern.FindString(s)
	if token == "" {
		return 0
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return v
}

// =============================================================================
// PROCESSOR TIERS
// =============================================================================

type processorTier int

const (
	tierUnknown processorTier = iota
	tierLow
	tierMid
	tierUpper
	tierHigh
)

// classifyProcessor buckets a free-text processor description by keyword
// containment. Unrecognized descriptions land in tierUnknown.
func classifyProcessor(s string) processorTier {
	p := strings.ToLower(s)
	switch {
	case containsAny(p, "i9", "ryzen 9", "xeon", "threadripper", "m3", "m2"):
		return tierHigh
	case containsAny(p, "i7", "ryzen 7", "m1"):
		return tierUpper
	case containsAny(p, "i5", "ryzen 5"):
		return tierMid
	case containsAny(p, "i3", "ryzen 3", "celeron", "pentium", "athlon"):
		return tierLow
	default:
		return tierUnknown
	}
}

// =============================================================================
// PROFESSION TIERS
// =============================================================================

type professionTier int

const (
	professionUnknown professionTier = iota
	professionEntry
	professionSkilled
	professionTechnical
)

// classifyProfession buckets free-text profession/qualification fields.
func classifyProfession(profession, qualification string) professionTier {
	p := strings.ToLower(profession + " " + qualification)
	switch {
	case containsAny(p, "software", "developer", "engineer", "programmer", "computer science", "information technology"):
		return professionTechnical
	case containsAny(p, "data", "analyst", "designer", "accountant", "teacher", "writer", "graduate", "bachelor", "master"):
		return professionSkilled
	case containsAny(p, "student", "intern", "matric", "intermediate"):
		return professionEntry
	default:
		return professionUnknown
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
