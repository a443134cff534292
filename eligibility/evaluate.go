package eligibility

import (
	"fmt"
	"math"
	"strings"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// EVALUATION - Weighted multi-factor scoring
// =============================================================================

// Evaluate scores a candidate against the configured criteria. Pure function;
// never fails - malformed text fields simply score low.
func Evaluate(data EvaluationData, cfg Config) EvaluationResult {
	var reasons []string

	ageScore, ageReasons := evaluateAge(data, cfg)
	hwScore, hwReasons := evaluateHardware(data)
	netScore, netReasons := evaluateInternet(data)
	availScore, availReasons := evaluateAvailability(data)
	profScore, profReasons := evaluateProfessional(data)
	compScore, compReasons := evaluateCompliance(data)

	// Reason order mirrors evaluation order; callers and tests rely on it.
	reasons = append(reasons, ageReasons...)
	reasons = append(reasons, hwReasons...)
	reasons = append(reasons, netReasons...)
	reasons = append(reasons, availReasons...)
	reasons = append(reasons, profReasons...)
	reasons = append(reasons, compReasons...)

	breakdown := Breakdown{
		Age:          engine.ClampScore(ageScore),
		Hardware:     engine.ClampScore(hwScore),
		Internet:     engine.ClampScore(netScore),
		Availability: engine.ClampScore(availScore),
		Professional: engine.ClampScore(profScore),
		Compliance:   engine.ClampScore(compScore),
	}

	score := weightedScore(breakdown, cfg.Weights)

	status := StatusRejected
	switch {
	case !data.ConfidentialityAccepted:
		// Absolute gate: no confidentiality, no engagement.
		status = StatusRejected
	case data.Age < cfg.MinAge || data.Age > cfg.MaxAge:
		status = StatusRejected
	case score >= cfg.EligibleThreshold:
		status = StatusEligible
	case score >= cfg.PendingThreshold:
		status = StatusPending
	}

	return EvaluationResult{
		Status:    status,
		Score:     score,
		Breakdown: breakdown,
		Reasons:   reasons,
	}
}

func weightedScore(b Breakdown, w Weights) int {
	total := w.total()
	if total == 0 {
		return 0
	}
	sum := b.Age*w.Age +
		b.Hardware*w.Hardware +
		b.Internet*w.Internet +
		b.Availability*w.Availability +
		b.Professional*w.Professional +
		b.Compliance*w.Compliance
	return engine.ClampScore(int(math.Round(float64(sum) / float64(total))))
}

// =============================================================================
// SUB-EVALUATORS - Each returns (score 0-100, reasons)
// =============================================================================

func evaluateAge(data EvaluationData, cfg Config) (int, []string) {
	switch {
	case data.Age < cfg.MinAge:
		return 0, []string{fmt.Sprintf("age %d is below the minimum of %d", data.Age, cfg.MinAge)}
	case data.Age > cfg.MaxAge:
		return 0, []string{fmt.Sprintf("age %d is above the maximum of %d", data.Age, cfg.MaxAge)}
	case data.Age >= 21 && data.Age <= 45:
		return 100, nil
	default:
		// Inside the eligible range but near a boundary.
		return 70, []string{fmt.Sprintf("age %d is near the eligibility boundary", data.Age)}
	}
}

func evaluateHardware(data EvaluationData) (int, []string) {
	var reasons []string
	score := 0

	switch classifyDevice(data.DeviceType) {
	case "desktop":
		score += 40
	case "laptop":
		score += 30
	default:
		score += 10
		reasons = append(reasons, fmt.Sprintf("device type %q is not suitable for sustained work", data.DeviceType))
	}

	ramGB := parseLeadingNumber(data.RAM)
	switch {
	case ramGB >= 16:
		score += 40
	case ramGB >= 8:
		score += 30
	case ramGB >= 4:
		score += 15
		reasons = append(reasons, fmt.Sprintf("%.0fGB RAM is below the recommended 8GB", ramGB))
	default:
		reasons = append(reasons, "RAM could not be determined from the application")
	}

	switch classifyProcessor(data.Processor) {
	case tierHigh, tierUpper:
		score += 20
	case tierMid:
		score += 15
	case tierLow:
		score += 8
		reasons = append(reasons, "processor is an entry-level model")
	default:
		reasons = append(reasons, fmt.Sprintf("processor %q was not recognized", data.Processor))
	}

	return score, reasons
}

func evaluateInternet(data EvaluationData) (int, []string) {
	var reasons []string
	score := 0

	if data.StableInternet {
		score += 35
	} else {
		reasons = append(reasons, "internet connection reported as unstable")
	}

	speedMbps := parseLeadingNumber(data.InternetSpeed)
	switch {
	case speedMbps >= 50:
		score += 35
	case speedMbps >= 20:
		score += 25
	case speedMbps >= 10:
		score += 15
		reasons = append(reasons, fmt.Sprintf("%.0f Mbps is below the recommended 20 Mbps", speedMbps))
	default:
		reasons = append(reasons, "link speed could not be determined from the application")
	}

	switch {
	case data.SharedUsers <= 2:
		score += 20
	case data.SharedUsers <= 4:
		score += 10
		reasons = append(reasons, fmt.Sprintf("connection shared with %d users", data.SharedUsers))
	default:
		reasons = append(reasons, fmt.Sprintf("connection shared with %d users is too contended", data.SharedUsers))
	}

	// A speed-test reference corroborates the declared figures.
	if data.SpeedTestRef != "" {
		score += 10
	}

	return score, reasons
}

func evaluateAvailability(data EvaluationData) (int, []string) {
	var reasons []string
	score := 0

	if data.DailyTimeAvailable {
		score += 60
	} else {
		reasons = append(reasons, "daily time availability was not confirmed")
	}

	switch {
	case len(data.TimeWindows) >= 2:
		score += 40
	case len(data.TimeWindows) == 1:
		score += 25
	default:
		reasons = append(reasons, "no availability windows were declared")
	}

	return score, reasons
}

func evaluateProfessional(data EvaluationData) (int, []string) {
	switch classifyProfession(data.Profession, data.Qualification) {
	case professionTechnical:
		return 100, nil
	case professionSkilled:
		return 70, nil
	case professionEntry:
		return 50, []string{"professional background is entry-level"}
	default:
		return 30, []string{fmt.Sprintf("profession %q was not recognized", data.Profession)}
	}
}

func evaluateCompliance(data EvaluationData) (int, []string) {
	if !data.ConfidentialityAccepted {
		// Absolute gate; the status decision also rejects outright.
		return 0, []string{"confidentiality agreement was not accepted"}
	}
	if !data.TypingSkill {
		return 50, []string{"typing skill was not confirmed"}
	}
	return 100, nil
}

func classifyDevice(s string) string {
	d := strings.ToLower(s)
	switch {
	case containsAny(d, "desktop", "pc", "workstation"):
		return "desktop"
	case containsAny(d, "laptop", "notebook", "macbook"):
		return "laptop"
	default:
		return "other"
	}
}
