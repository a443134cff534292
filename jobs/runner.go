/*
runner.go - Scheduled derivation runs

PURPOSE:
  Drives the periodic recomputations the engine itself never schedules:
  weekly timer aggregation, nightly streak recompute and the weekly
  payroll run. Every job is a re-runnable derivation over stored state;
  running one twice produces the same records.

SCHEDULE (business timezone is handled upstream; cron runs in server time):
  - Hourly:        aggregate the current week's daily activity into the
                   timer summary payroll reads
  - Nightly 02:30: recompute every user's streak from daily history and
                   notify users who just crossed the bonus threshold
  - Monday 06:00:  compose the payroll run for the week that just ended

USAGE:
  runner := jobs.NewRunner(deps)
  if err := runner.Start(); err != nil { ... }
  // ... later
  runner.Stop()

SEE ALSO:
  - api/handlers.go: The on-demand versions of these derivations
  - payroll/batch.go: The fold the weekly run persists
*/
package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/activity"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/factory"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/leave"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/payroll"
)

// streakWindowDays bounds how far back the nightly recompute reads.
const streakWindowDays = 180

// Directory lists the users scheduled runs iterate over. Both store
// implementations provide it.
type Directory interface {
	UserIDs(ctx context.Context) ([]string, error)
}

// Deps are the runner's collaborators.
type Deps struct {
	Directory Directory
	Activity  activity.Store
	Leave     leave.Store
	Payroll   payroll.Store

	// Settings returns the active settings snapshot; the API handler's
	// accessor plugs in here so admin updates reach scheduled runs.
	Settings func() factory.Settings

	Notifier engine.Notifier

	// Now is injectable so tests pin the clock.
	Now func() time.Time
}

// Runner owns the cron schedule.
type Runner struct {
	deps Deps
	cron *cron.Cron
}

// NewRunner creates a runner. Deps.Notifier and Deps.Now may be nil.
func NewRunner(deps Deps) *Runner {
	if deps.Notifier == nil {
		deps.Notifier = engine.NopNotifier{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Runner{deps: deps}
}

// Start registers the schedule and begins running jobs.
func (r *Runner) Start() error {
	r.cron = cron.New()

	jobs := []struct {
		spec string
		name string
		fn   func(context.Context) error
	}{
		{"0 * * * *", "aggregate-week", r.AggregateWeek},
		{"30 2 * * *", "recompute-streaks", r.RecomputeStreaks},
		{"0 6 * * 1", "weekly-payroll", r.RunWeeklyPayroll},
	}
	for _, job := range jobs {
		job := job
		if _, err := r.cron.AddFunc(job.spec, func() {
			if err := job.fn(context.Background()); err != nil {
				log.Printf("[Jobs] %s failed: %v", job.name, err)
			}
		}); err != nil {
			return err
		}
	}

	r.cron.Start()
	log.Printf("[Jobs] Started %d scheduled jobs", len(jobs))
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (r *Runner) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
		log.Println("[Jobs] Stopped")
	}
}

// =============================================================================
// AGGREGATE WEEK - daily activity -> timer summary
// =============================================================================

// AggregateWeek folds each user's daily activity for the current week into
// the timer summary the payroll calculator reads. Reruns overwrite.
func (r *Runner) AggregateWeek(ctx context.Context) error {
	users, err := r.deps.Directory.UserIDs(ctx)
	if err != nil {
		return err
	}

	weekStart := engine.DateOf(r.deps.Now()).StartOfWeek()
	for _, userID := range users {
		days, err := r.deps.Activity.DailyActivities(ctx, userID, weekStart, weekStart.AddDays(6))
		if err != nil {
			return err
		}
		if len(days) == 0 {
			continue
		}
		if err := r.deps.Payroll.SaveTimerSummary(ctx, composeSummary(userID, weekStart, days)); err != nil {
			return err
		}
	}

	log.Printf("[Jobs] Aggregated week %s for %d users", weekStart, len(users))
	return nil
}

// composeSummary folds one week of daily records into a timer summary.
func composeSummary(userID string, weekStart engine.Date, days []activity.DailyActivity) payroll.TimerSummary {
	summary := payroll.TimerSummary{UserID: userID, WeekStart: weekStart}
	for _, day := range days {
		summary.TotalSeconds += day.TotalSeconds
		summary.BillableSeconds += day.BillableSeconds
		if day.BillableSeconds > 0 {
			summary.DaysWorked++
		}
		if day.MeetsDailyMinimum {
			summary.DailyMinimumMet++
		}
	}
	if summary.DaysWorked > 0 {
		summary.AverageDailyHours = engine.RoundHours(
			engine.HoursFromSeconds(summary.BillableSeconds).
				Div(decimal.NewFromInt(int64(summary.DaysWorked))))
	}
	return summary
}

// =============================================================================
// RECOMPUTE STREAKS - nightly full-history derivation
// =============================================================================

// RecomputeStreaks rebuilds every user's streak from the daily history and
// notifies users whose streak just reached the bonus threshold.
func (r *Runner) RecomputeStreaks(ctx context.Context) error {
	users, err := r.deps.Directory.UserIDs(ctx)
	if err != nil {
		return err
	}

	cfg := r.deps.Settings().Activity
	asOf := engine.DateOf(r.deps.Now())

	for _, userID := range users {
		previous, err := r.deps.Activity.Streak(ctx, userID)
		if err != nil && !errors.Is(err, engine.ErrNotFound) {
			return err
		}

		days, err := r.deps.Activity.DailyActivities(ctx, userID, asOf.AddDays(-streakWindowDays), asOf)
		if err != nil {
			return err
		}

		streak := activity.ComputeStreak(userID, days, asOf, cfg)
		if err := r.deps.Activity.SaveStreak(ctx, streak); err != nil {
			return err
		}

		// Notify only on the run that crosses the threshold, not every night after.
		if activity.QualifiesForBonus(streak, cfg) && !activity.QualifiesForBonus(previous, cfg) {
			r.deps.Notifier.StreakMilestone(ctx, engine.StreakMilestone{
				UserID:     userID,
				StreakDays: streak.CurrentStreak,
				Date:       asOf,
			})
		}
	}

	log.Printf("[Jobs] Recomputed streaks for %d users as of %s", len(users), asOf)
	return nil
}

// =============================================================================
// WEEKLY PAYROLL - compose the run for the week that just ended
// =============================================================================

// RunWeeklyPayroll computes and persists a payroll line for every user with
// timer data in the previous week.
func (r *Runner) RunWeeklyPayroll(ctx context.Context) error {
	users, err := r.deps.Directory.UserIDs(ctx)
	if err != nil {
		return err
	}

	cfg := r.deps.Settings().Payroll
	weekStart := engine.DateOf(r.deps.Now()).StartOfWeek().AddDays(-7)
	runID := uuid.NewString()

	var lines []payroll.Calculation
	for _, userID := range users {
		summary, err := r.deps.Payroll.TimerSummary(ctx, userID, weekStart)
		if errors.Is(err, engine.ErrNotFound) {
			continue // no timer data for the week; nothing to pay
		}
		if err != nil {
			return err
		}
		history, err := r.deps.Payroll.PayrollHistory(ctx, userID)
		if errors.Is(err, engine.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		penalties, err := r.deps.Leave.PenaltiesForWeek(ctx, userID, weekStart)
		if err != nil {
			return err
		}
		historical, err := r.deps.Payroll.TimerSummaries(ctx, userID)
		if err != nil {
			return err
		}

		line := payroll.Calculate(summary, history, penalties, historical, cfg)
		if err := r.deps.Payroll.SaveCalculation(ctx, runID, line); err != nil {
			return err
		}
		if line.IsEligible && line.Deductions.SecurityFund.IsPositive() {
			if err := r.deps.Payroll.MarkSecurityFundDeducted(ctx, userID); err != nil {
				return err
			}
		}
		lines = append(lines, line)
	}

	summary := payroll.FoldSummary(lines)
	log.Printf("[Jobs] Payroll run %s for week %s: %d lines, %d eligible, net %s",
		runID, weekStart, summary.Employees, summary.EligibleCount, summary.TotalNet)
	return nil
}
