package leave

import (
	"fmt"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
)

// =============================================================================
// SUSPENSION AND RESIGNATION - Checks independent of per-request gates
// =============================================================================

// SuspensionCheck is the outcome of the auto-suspension evaluation.
type SuspensionCheck struct {
	ShouldSuspend bool
	MonthlyLeaves int
	Reason        string
}

// CheckSuspension flags a user for auto-suspension when their monthly leave
// count reaches the configured threshold. Flagging is advisory; applying
// the suspension is the caller's decision.
func CheckSuspension(history History, cfg Config) SuspensionCheck {
	check := SuspensionCheck{MonthlyLeaves: len(history.MonthRequests)}
	if check.MonthlyLeaves >= cfg.SuspensionMonthlyLeaves {
		check.ShouldSuspend = true
		check.Reason = fmt.Sprintf(
			"%d leave requests this month, threshold is %d",
			check.MonthlyLeaves, cfg.SuspensionMonthlyLeaves)
	}
	return check
}

// ResignationNotice is the outcome of the resignation notice check.
type ResignationNotice struct {
	NoticeDays    int
	RequiredDays  int
	MeetsRequired bool
}

// CheckResignationNotice compares the notice actually given, from the day
// the resignation is submitted to the declared last working day, against
// the fixed requirement. Independent of leave-type rules.
func CheckResignationNotice(submittedOn, lastWorkingDay engine.Date, cfg Config) ResignationNotice {
	days := engine.DaysBetween(submittedOn, lastWorkingDay)
	if days < 0 {
		days = 0
	}
	return ResignationNotice{
		NoticeDays:    days,
		RequiredDays:  cfg.ResignationNoticeDays,
		MeetsRequired: days >= cfg.ResignationNoticeDays,
	}
}
