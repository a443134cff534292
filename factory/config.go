/*
Package factory provides JSON to Go configuration conversion.

PURPOSE:
  Converts the admin settings document into the engine config structs. This
  enables policy tuning without code changes - operations staff edit one
  JSON document, and the factory overlays it on the compiled defaults.

WHY JSON?
  - Non-developers can adjust rates, thresholds and windows
  - Easy integration with an admin UI
  - Version control for the settings document
  - Database storage of the active document (store/sqlite settings table)

JSON SCHEMA (all sections and fields optional; absent fields keep defaults):
  {
    "schedule": {
      "timezone": "Asia/Karachi",
      "standard_window": {"start": "18:00", "end": "02:00"},
      "special_window": {"start": "14:00", "end": "18:00"},
      "special_access_tenure_days": 90
    },
    "eligibility": {
      "weights": {"age": 15, "hardware": 20, "internet": 20,
                  "availability": 10, "professional": 20, "compliance": 15},
      "min_age": 18, "max_age": 55,
      "eligible_threshold": 80, "pending_threshold": 60
    },
    "activity": {
      "inactivity_threshold_seconds": 40, "extended_pause_seconds": 300,
      "minimum_daily_hours": 6, "streak_gap_tolerance_days": 3,
      "minimum_days_for_bonus": 28
    },
    "leave": {
      "max_consecutive_days": 7,
      "notice_hours": {"SHORT": 4, "ONE_DAY": 24, "LONG": 72},
      "weekly_caps": {"SHORT": 2, "ONE_DAY": 1, "LONG": 1},
      "monthly_caps": {"SHORT": 6, "ONE_DAY": 4, "LONG": 1},
      "short_notice_penalty": {"SHORT": 50, "ONE_DAY": 100, "LONG": 250},
      "excessive_leave_penalty_per_day": 75,
      "weekend_penalty_per_day": 40,
      "suspension_monthly_leaves": 10,
      "resignation_notice_days": 14
    },
    "payroll": {
      "hourly_rate": 125, "minimum_weekly_hours": 30,
      "first_salary_gating_days": 7,
      "streak_bonus": 1500, "streak_requirement_days": 28,
      "security_fund": 2500, "tax_rate": 0.05
    }
  }

USAGE:
  settings, err := factory.Parse(document)
  if err != nil { ... }
  decision := schedule.CheckWindow(createdAt, now, settings.Schedule)

SEE ALSO:
  - schedule, eligibility, activity, leave, payroll: Config consumers
  - store/sqlite: Persistence of the active document
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/activity"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/eligibility"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/leave"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/payroll"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/schedule"
)

// =============================================================================
// SETTINGS - The five engine configs as one unit
// =============================================================================

// Settings bundles every engine config. Built once at startup (or on
// settings change) and passed read-only to the computation packages.
type Settings struct {
	Schedule    schedule.Config
	Eligibility eligibility.Config
	Activity    activity.Config
	Leave       leave.Config
	Payroll     payroll.Config
}

// Defaults returns the compiled-in production defaults.
func Defaults() Settings {
	return Settings{
		Schedule:    schedule.DefaultConfig(),
		Eligibility: eligibility.DefaultConfig(),
		Activity:    activity.DefaultConfig(),
		Leave:       leave.DefaultConfig(),
		Payroll:     payroll.DefaultConfig(),
	}
}

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// Pointer fields distinguish "absent" (keep default) from zero values.

type documentJSON struct {
	Schedule    *scheduleJSON    `json:"schedule,omitempty"`
	Eligibility *eligibilityJSON `json:"eligibility,omitempty"`
	Activity    *activityJSON    `json:"activity,omitempty"`
	Leave       *leaveJSON       `json:"leave,omitempty"`
	Payroll     *payrollJSON     `json:"payroll,omitempty"`
}

type windowJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type scheduleJSON struct {
	Timezone                *string     `json:"timezone,omitempty"`
	StandardWindow          *windowJSON `json:"standard_window,omitempty"`
	SpecialWindow           *windowJSON `json:"special_window,omitempty"`
	SpecialAccessTenureDays *int        `json:"special_access_tenure_days,omitempty"`
}

type weightsJSON struct {
	Age          *int `json:"age,omitempty"`
	Hardware     *int `json:"hardware,omitempty"`
	Internet     *int `json:"internet,omitempty"`
	Availability *int `json:"availability,omitempty"`
	Professional *int `json:"professional,omitempty"`
	Compliance   *int `json:"compliance,omitempty"`
}

type eligibilityJSON struct {
	Weights           *weightsJSON `json:"weights,omitempty"`
	MinAge            *int         `json:"min_age,omitempty"`
	MaxAge            *int         `json:"max_age,omitempty"`
	EligibleThreshold *int         `json:"eligible_threshold,omitempty"`
	PendingThreshold  *int         `json:"pending_threshold,omitempty"`
}

type activityJSON struct {
	InactivityThresholdSeconds *int64   `json:"inactivity_threshold_seconds,omitempty"`
	ExtendedPauseSeconds       *int64   `json:"extended_pause_seconds,omitempty"`
	MinimumDailyHours          *float64 `json:"minimum_daily_hours,omitempty"`
	StreakGapToleranceDays     *int     `json:"streak_gap_tolerance_days,omitempty"`
	MinimumDaysForBonus        *int     `json:"minimum_days_for_bonus,omitempty"`
}

type leaveJSON struct {
	MaxConsecutiveDays          *int               `json:"max_consecutive_days,omitempty"`
	NoticeHours                 map[string]int     `json:"notice_hours,omitempty"`
	WeeklyCaps                  map[string]int     `json:"weekly_caps,omitempty"`
	MonthlyCaps                 map[string]int     `json:"monthly_caps,omitempty"`
	ShortNoticePenalty          map[string]float64 `json:"short_notice_penalty,omitempty"`
	ExcessiveLeavePenaltyPerDay *float64           `json:"excessive_leave_penalty_per_day,omitempty"`
	WeekendPenaltyPerDay        *float64           `json:"weekend_penalty_per_day,omitempty"`
	SuspensionMonthlyLeaves     *int               `json:"suspension_monthly_leaves,omitempty"`
	ResignationNoticeDays       *int               `json:"resignation_notice_days,omitempty"`
	PatternShortLeavesPerMonth  *int               `json:"pattern_short_leaves_per_month,omitempty"`
	PatternMinDaysBetween       *int               `json:"pattern_min_days_between,omitempty"`
}

type payrollJSON struct {
	HourlyRate            *float64 `json:"hourly_rate,omitempty"`
	MinimumWeeklyHours    *int     `json:"minimum_weekly_hours,omitempty"`
	FirstSalaryGatingDays *int     `json:"first_salary_gating_days,omitempty"`
	StreakBonus           *float64 `json:"streak_bonus,omitempty"`
	StreakRequirementDays *int     `json:"streak_requirement_days,omitempty"`
	SecurityFund          *float64 `json:"security_fund,omitempty"`
	TaxRate               *float64 `json:"tax_rate,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse overlays a JSON settings document on the compiled defaults. An
// empty document yields Defaults(); a malformed one returns an error and
// no partial settings.
func Parse(document []byte) (Settings, error) {
	settings := Defaults()
	if len(document) == 0 {
		return settings, nil
	}

	var doc documentJSON
	if err := json.Unmarshal(document, &doc); err != nil {
		return Settings{}, fmt.Errorf("invalid settings document: %w", err)
	}

	if err := applySchedule(&settings.Schedule, doc.Schedule); err != nil {
		return Settings{}, err
	}
	applyEligibility(&settings.Eligibility, doc.Eligibility)
	applyActivity(&settings.Activity, doc.Activity)
	applyLeave(&settings.Leave, doc.Leave)
	applyPayroll(&settings.Payroll, doc.Payroll)

	return settings, nil
}

func applySchedule(cfg *schedule.Config, doc *scheduleJSON) error {
	if doc == nil {
		return nil
	}
	if doc.Timezone != nil {
		cfg.Timezone = *doc.Timezone
	}
	if doc.StandardWindow != nil {
		w, err := parseWindow(*doc.StandardWindow)
		if err != nil {
			return fmt.Errorf("standard_window: %w", err)
		}
		cfg.Standard = w
	}
	if doc.SpecialWindow != nil {
		w, err := parseWindow(*doc.SpecialWindow)
		if err != nil {
			return fmt.Errorf("special_window: %w", err)
		}
		cfg.Special = w
	}
	if doc.SpecialAccessTenureDays != nil {
		cfg.SpecialAccessTenureDays = *doc.SpecialAccessTenureDays
	}
	return nil
}

func parseWindow(doc windowJSON) (schedule.Window, error) {
	start, err := schedule.ParseClock(doc.Start)
	if err != nil {
		return schedule.Window{}, err
	}
	end, err := schedule.ParseClock(doc.End)
	if err != nil {
		return schedule.Window{}, err
	}
	return schedule.Window{Start: start, End: end}, nil
}

func applyEligibility(cfg *eligibility.Config, doc *eligibilityJSON) {
	if doc == nil {
		return
	}
	if doc.Weights != nil {
		setInt(&cfg.Weights.Age, doc.Weights.Age)
		setInt(&cfg.Weights.Hardware, doc.Weights.Hardware)
		setInt(&cfg.Weights.Internet, doc.Weights.Internet)
		setInt(&cfg.Weights.Availability, doc.Weights.Availability)
		setInt(&cfg.Weights.Professional, doc.Weights.Professional)
		setInt(&cfg.Weights.Compliance, doc.Weights.Compliance)
	}
	setInt(&cfg.MinAge, doc.MinAge)
	setInt(&cfg.MaxAge, doc.MaxAge)
	setInt(&cfg.EligibleThreshold, doc.EligibleThreshold)
	setInt(&cfg.PendingThreshold, doc.PendingThreshold)
}

func applyActivity(cfg *activity.Config, doc *activityJSON) {
	if doc == nil {
		return
	}
	if doc.InactivityThresholdSeconds != nil {
		cfg.InactivityThresholdSeconds = *doc.InactivityThresholdSeconds
	}
	if doc.ExtendedPauseSeconds != nil {
		cfg.ExtendedPauseSeconds = *doc.ExtendedPauseSeconds
	}
	if doc.MinimumDailyHours != nil {
		cfg.MinimumDailyHours = *doc.MinimumDailyHours
	}
	setInt(&cfg.StreakGapToleranceDays, doc.StreakGapToleranceDays)
	setInt(&cfg.MinimumDaysForBonus, doc.MinimumDaysForBonus)
}

func applyLeave(cfg *leave.Config, doc *leaveJSON) {
	if doc == nil {
		return
	}
	setInt(&cfg.MaxConsecutiveDays, doc.MaxConsecutiveDays)
	for typ, hours := range doc.NoticeHours {
		cfg.NoticeHours[leave.Type(typ)] = hours
	}
	for typ, n := range doc.WeeklyCaps {
		cfg.WeeklyCaps[leave.Type(typ)] = n
	}
	for typ, n := range doc.MonthlyCaps {
		cfg.MonthlyCaps[leave.Type(typ)] = n
	}
	for typ, amount := range doc.ShortNoticePenalty {
		cfg.ShortNoticePenalty[leave.Type(typ)] = decimal.NewFromFloat(amount)
	}
	if doc.ExcessiveLeavePenaltyPerDay != nil {
		cfg.ExcessiveLeavePenaltyPerDay = decimal.NewFromFloat(*doc.ExcessiveLeavePenaltyPerDay)
	}
	if doc.WeekendPenaltyPerDay != nil {
		cfg.WeekendPenaltyPerDay = decimal.NewFromFloat(*doc.WeekendPenaltyPerDay)
	}
	setInt(&cfg.SuspensionMonthlyLeaves, doc.SuspensionMonthlyLeaves)
	setInt(&cfg.ResignationNoticeDays, doc.ResignationNoticeDays)
	setInt(&cfg.PatternShortLeavesPerMonth, doc.PatternShortLeavesPerMonth)
	setInt(&cfg.PatternMinDaysBetween, doc.PatternMinDaysBetween)
}

func applyPayroll(cfg *payroll.Config, doc *payrollJSON) {
	if doc == nil {
		return
	}
	if doc.HourlyRate != nil {
		cfg.HourlyRate = decimal.NewFromFloat(*doc.HourlyRate)
	}
	setInt(&cfg.MinimumWeeklyHours, doc.MinimumWeeklyHours)
	setInt(&cfg.FirstSalaryGatingDays, doc.FirstSalaryGatingDays)
	if doc.StreakBonus != nil {
		cfg.StreakBonus = decimal.NewFromFloat(*doc.StreakBonus)
	}
	setInt(&cfg.StreakRequirementDays, doc.StreakRequirementDays)
	if doc.SecurityFund != nil {
		cfg.SecurityFund = decimal.NewFromFloat(*doc.SecurityFund)
	}
	if doc.TaxRate != nil {
		cfg.TaxRate = decimal.NewFromFloat(*doc.TaxRate)
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
