/*
dto.go - Request/response data structures

PURPOSE:
  JSON shapes for the HTTP surface. DTOs keep the wire format independent
  of the engine types: dates travel as "2006-01-02" strings, instants as
  RFC3339, money as decimal strings.

SEE ALSO:
  - handlers.go: Handler implementations using these DTOs
*/
package api

import (
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/eligibility"
)

// =============================================================================
// WINDOW CHECK
// =============================================================================

type WindowCheckRequest struct {
	ProfileCreatedAt string `json:"profile_created_at"` // RFC3339
	At               string `json:"at,omitempty"`       // RFC3339, defaults to now
}

type WindowCheckResponse struct {
	Allowed          bool   `json:"allowed"`
	Window           string `json:"window"`
	Reason           string `json:"reason,omitempty"`
	MinutesUntilNext int    `json:"minutes_until_next,omitempty"`
}

// =============================================================================
// ELIGIBILITY
// =============================================================================

// EligibilityRequest carries the candidate's declared attributes verbatim.
type EligibilityRequest struct {
	CandidateID string                     `json:"candidate_id"`
	Data        eligibility.EvaluationData `json:"data"`
}

type EligibilityResponse struct {
	Status    string                `json:"status"`
	Score     int                   `json:"score"`
	Breakdown eligibility.Breakdown `json:"breakdown"`
	Reasons   []string              `json:"reasons"`
}

// =============================================================================
// ACTIVITY
// =============================================================================

type ActivityEventDTO struct {
	Timestamp string `json:"timestamp"` // RFC3339
	Kind      string `json:"kind"`
	SessionID string `json:"session_id,omitempty"`
}

type AppendEventsRequest struct {
	Events []ActivityEventDTO `json:"events"`
}

type BuildDayRequest struct {
	Date           string `json:"date"` // 2006-01-02
	ElapsedSeconds int64  `json:"elapsed_seconds"`
}

type DailyActivityDTO struct {
	Date              string   `json:"date"`
	TotalSeconds      int64    `json:"total_seconds"`
	BillableSeconds   int64    `json:"billable_seconds"`
	PauseSeconds      int64    `json:"pause_seconds"`
	ActiveEvents      int      `json:"active_events"`
	MeetsDailyMinimum bool     `json:"meets_daily_minimum"`
	PauseReasons      []string `json:"pause_reasons,omitempty"`
}

type StreakDTO struct {
	CurrentStreak       int    `json:"current_streak"`
	LongestStreak       int    `json:"longest_streak"`
	TotalQualifyingDays int    `json:"total_qualifying_days"`
	LastActiveDate      string `json:"last_active_date,omitempty"`
	QualifiesForBonus   bool   `json:"qualifies_for_bonus"`
}

// =============================================================================
// LEAVE
// =============================================================================

type LeaveRequestDTO struct {
	Type     string `json:"type"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Reason   string `json:"reason,omitempty"`
}

type PenaltyDTO struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

type LeaveValidationResponse struct {
	IsValid       bool         `json:"is_valid"`
	Errors        []string     `json:"errors,omitempty"`
	Warnings      []string     `json:"warnings,omitempty"`
	Penalties     []PenaltyDTO `json:"penalties,omitempty"`
	NoticeHours   int          `json:"notice_hours"`
	LeaveDays     float64      `json:"leave_days"`
	Suspended     bool         `json:"suspended"`
	SuspendReason string       `json:"suspend_reason,omitempty"`
}

// =============================================================================
// PAYROLL
// =============================================================================

type PayrollCalculateRequest struct {
	UserID    string `json:"user_id"`
	WeekStart string `json:"week_start"` // 2006-01-02, a Monday
}

type PayrollRunRequest struct {
	WeekStart string   `json:"week_start"`
	UserIDs   []string `json:"user_ids"`
}

type DeductionsDTO struct {
	SecurityFund string `json:"security_fund"`
	Penalties    string `json:"penalties"`
	Taxes        string `json:"taxes"`
	Total        string `json:"total"`
}

type StreakInfoDTO struct {
	CurrentWeeks  int    `json:"current_weeks"`
	RequiredWeeks int    `json:"required_weeks"`
	Qualifies     bool   `json:"qualifies"`
	Bonus         string `json:"bonus"`
}

type PayrollLineDTO struct {
	UserID               string        `json:"user_id"`
	WeekStart            string        `json:"week_start"`
	PeriodLabel          string        `json:"period_label"`
	IsEligible           bool          `json:"is_eligible"`
	IneligibilityReasons []string      `json:"ineligibility_reasons,omitempty"`
	BillableHours        string        `json:"billable_hours"`
	BaseAmount           string        `json:"base_amount"`
	Streak               StreakInfoDTO `json:"streak"`
	Deductions           DeductionsDTO `json:"deductions"`
	GrossAmount          string        `json:"gross_amount"`
	NetAmount            string        `json:"net_amount"`
}

type PayrollRunResponse struct {
	RunID           string           `json:"run_id"`
	Lines           []PayrollLineDTO `json:"lines"`
	Employees       int              `json:"employees"`
	EligibleCount   int              `json:"eligible_count"`
	BonusRecipients int              `json:"bonus_recipients"`
	TotalGross      string           `json:"total_gross"`
	TotalNet        string           `json:"total_net"`
	TotalDeductions string           `json:"total_deductions"`
	AverageHours    string           `json:"average_hours"`
}

// =============================================================================
// SHARED
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
