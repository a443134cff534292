package jobs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/activity"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/factory"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/jobs"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/payroll"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/store/memory"
)

// recordingNotifier captures engine events for assertions.
type recordingNotifier struct {
	mu         sync.Mutex
	milestones []engine.StreakMilestone
	warnings   []engine.ComplianceWarning
}

func (n *recordingNotifier) StreakMilestone(_ context.Context, ev engine.StreakMilestone) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.milestones = append(n.milestones, ev)
	return nil
}

func (n *recordingNotifier) ComplianceWarning(_ context.Context, ev engine.ComplianceWarning) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, ev)
	return nil
}

func newRunner(store *memory.Store, notifier engine.Notifier, now time.Time) *jobs.Runner {
	return jobs.NewRunner(jobs.Deps{
		Directory: store,
		Activity:  store,
		Leave:     store,
		Payroll:   store,
		Settings:  factory.Defaults,
		Notifier:  notifier,
		Now:       func() time.Time { return now },
	})
}

func seedDay(t *testing.T, store *memory.Store, userID string, date engine.Date, billable, total int64, met bool) {
	t.Helper()
	require.NoError(t, store.SaveDailyActivity(context.Background(), activity.DailyActivity{
		UserID:            userID,
		Date:              date,
		TotalSeconds:      total,
		BillableSeconds:   billable,
		PauseSeconds:      total - billable,
		MeetsDailyMinimum: met,
	}))
}

func TestAggregateWeek_ComposesTimerSummary(t *testing.T) {
	// GIVEN two worked days in the current week, one below the daily minimum
	store := memory.New()
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC) // Wednesday
	weekStart := engine.NewDate(2025, time.June, 2)

	seedDay(t, store, "user-1", weekStart, 25200, 27000, true)             // Mon: 7h billable
	seedDay(t, store, "user-1", weekStart.AddDays(1), 16200, 18000, false) // Tue: 4.5h billable

	// WHEN the hourly aggregation runs
	runner := newRunner(store, nil, now)
	require.NoError(t, runner.AggregateWeek(context.Background()))

	// THEN the week's timer summary reflects both days
	summary, err := store.TimerSummary(context.Background(), "user-1", weekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), summary.TotalSeconds)
	assert.Equal(t, int64(41400), summary.BillableSeconds)
	assert.Equal(t, 2, summary.DaysWorked)
	assert.Equal(t, 1, summary.DailyMinimumMet)
	assert.Equal(t, "5.75", summary.AverageDailyHours.String())
}

func TestAggregateWeek_Rerunnable(t *testing.T) {
	// GIVEN an already aggregated week
	store := memory.New()
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	weekStart := engine.NewDate(2025, time.June, 2)
	seedDay(t, store, "user-1", weekStart, 25200, 27000, true)

	runner := newRunner(store, nil, now)
	require.NoError(t, runner.AggregateWeek(context.Background()))

	// WHEN a day is amended and the job reruns
	seedDay(t, store, "user-1", weekStart, 21600, 27000, true)
	require.NoError(t, runner.AggregateWeek(context.Background()))

	// THEN the summary is replaced, not accumulated
	summary, err := store.TimerSummary(context.Background(), "user-1", weekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(21600), summary.BillableSeconds)
	assert.Equal(t, 1, summary.DaysWorked)
}

func TestRecomputeStreaks_NotifiesOnThresholdCrossOnly(t *testing.T) {
	// GIVEN 28 consecutive qualifying days ending today
	store := memory.New()
	notifier := &recordingNotifier{}
	asOf := engine.NewDate(2025, time.June, 30)
	for i := 0; i < 28; i++ {
		seedDay(t, store, "user-1", asOf.AddDays(-i), 6*3600, 7*3600, true)
	}

	// WHEN the nightly recompute runs
	runner := newRunner(store, notifier, asOf.Time().Add(2*time.Hour+30*time.Minute))
	require.NoError(t, runner.RecomputeStreaks(context.Background()))

	// THEN the streak is stored and a single milestone is emitted
	streak, err := store.Streak(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 28, streak.CurrentStreak)

	require.Len(t, notifier.milestones, 1)
	assert.Equal(t, "user-1", notifier.milestones[0].UserID)
	assert.Equal(t, 28, notifier.milestones[0].StreakDays)

	// WHEN it runs again the next night with one more qualifying day
	seedDay(t, store, "user-1", asOf.AddDays(1), 6*3600, 7*3600, true)
	nextNight := newRunner(store, notifier, asOf.AddDays(1).Time().Add(2*time.Hour+30*time.Minute))
	require.NoError(t, nextNight.RecomputeStreaks(context.Background()))

	// THEN no second milestone fires for a streak already over the threshold
	assert.Len(t, notifier.milestones, 1)
}

func TestRunWeeklyPayroll_PersistsAndMarksFund(t *testing.T) {
	// GIVEN a user with timer data for the week that just ended
	store := memory.New()
	ctx := context.Background()
	now := time.Date(2025, time.June, 9, 6, 0, 0, 0, time.UTC) // Monday
	weekStart := engine.NewDate(2025, time.June, 2)

	require.NoError(t, store.SaveTimerSummary(ctx, payroll.TimerSummary{
		UserID:          "user-1",
		WeekStart:       weekStart,
		TotalSeconds:    40 * 3600,
		BillableSeconds: 36 * 3600,
		DaysWorked:      5,
	}))
	require.NoError(t, store.SavePayrollHistory(ctx, "user-1", payroll.History{
		ProfileCreatedAt: now.AddDate(0, -3, 0),
		EmploymentStart:  engine.NewDate(2025, time.March, 1),
	}))

	// WHEN the weekly run executes
	runner := newRunner(store, nil, now)
	require.NoError(t, runner.RunWeeklyPayroll(ctx))

	// THEN the one-time security fund is recorded as taken
	history, err := store.PayrollHistory(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, history.SecurityFundDeducted)
}

func TestRunWeeklyPayroll_SkipsUsersWithoutData(t *testing.T) {
	// GIVEN a user known only through activity events, with no timer data
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.AppendEvents(ctx, "user-1", []activity.ActivityEvent{
		{Timestamp: time.Date(2025, time.June, 2, 19, 0, 0, 0, time.UTC), Kind: activity.KindKeyPress},
	}))

	// WHEN the weekly run executes
	runner := newRunner(store, nil, time.Date(2025, time.June, 9, 6, 0, 0, 0, time.UTC))

	// THEN it completes without error
	require.NoError(t, runner.RunWeeklyPayroll(ctx))
}
