// Package memory provides an in-memory store implementation (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/activity"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/eligibility"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/leave"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/payroll"
)

// =============================================================================
// MEMORY STORE - Implements every domain Store interface
// =============================================================================

// Store holds everything in maps guarded by one RWMutex. It implements
// activity.Store, leave.Store, payroll.Store and eligibility.Store, so a
// single instance can back the whole API in tests.
type Store struct {
	mu sync.RWMutex

	events      map[string][]activity.ActivityEvent       // by user
	daily       map[string]map[string]activity.DailyActivity // user -> date
	streaks     map[string]activity.StreakData
	requests    map[string][]leave.Request
	penalties   map[string][]datedPenalty
	suspended   map[string]bool
	summaries   map[string]map[string]payroll.TimerSummary // user -> weekStart
	histories   map[string]payroll.History
	lines       map[string][]payroll.Calculation // by run ID
	evaluations map[string][]eligibility.EvaluationResult
}

type datedPenalty struct {
	date    engine.Date
	penalty engine.Penalty
}

func New() *Store {
	return &Store{
		events:      make(map[string][]activity.ActivityEvent),
		daily:       make(map[string]map[string]activity.DailyActivity),
		streaks:     make(map[string]activity.StreakData),
		requests:    make(map[string][]leave.Request),
		penalties:   make(map[string][]datedPenalty),
		suspended:   make(map[string]bool),
		summaries:   make(map[string]map[string]payroll.TimerSummary),
		histories:   make(map[string]payroll.History),
		lines:       make(map[string][]payroll.Calculation),
		evaluations: make(map[string][]eligibility.EvaluationResult),
	}
}

// =============================================================================
// ACTIVITY
// =============================================================================

func (s *Store) AppendEvents(_ context.Context, userID string, events []activity.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[userID] = append(s.events[userID], events...)
	return nil
}

func (s *Store) EventsForDate(_ context.Context, userID string, date engine.Date) ([]activity.ActivityEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []activity.ActivityEvent
	for _, ev := range s.events[userID] {
		if engine.DateOf(ev.Timestamp).Equal(date) {
			result = append(result, ev)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

// SaveDailyActivity supersedes any record for the same (user, date).
func (s *Store) SaveDailyActivity(_ context.Context, day activity.DailyActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.daily[day.UserID] == nil {
		s.daily[day.UserID] = make(map[string]activity.DailyActivity)
	}
	s.daily[day.UserID][day.Date.String()] = day
	return nil
}

func (s *Store) DailyActivities(_ context.Context, userID string, from, to engine.Date) ([]activity.DailyActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []activity.DailyActivity
	for _, day := range s.daily[userID] {
		if !day.Date.Before(from) && !day.Date.After(to) {
			result = append(result, day)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (s *Store) SaveStreak(_ context.Context, streak activity.StreakData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaks[streak.UserID] = streak
	return nil
}

func (s *Store) Streak(_ context.Context, userID string) (activity.StreakData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	streak, ok := s.streaks[userID]
	if !ok {
		return activity.StreakData{}, engine.ErrNotFound
	}
	return streak, nil
}

// =============================================================================
// LEAVE
// =============================================================================

func (s *Store) SaveRequest(_ context.Context, req leave.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.UserID] = append(s.requests[req.UserID], req)
	return nil
}

// HistoryFor anchors the week window on the Monday of asOf and the month
// window on asOf's calendar month.
func (s *Store) HistoryFor(_ context.Context, userID string, asOf engine.Date) (leave.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	weekStart := asOf.StartOfWeek()
	weekEnd := weekStart.AddDays(6)

	history := leave.History{
		Suspended:   s.suspended[userID],
		TotalLeaves: len(s.requests[userID]),
	}

	for _, req := range s.requests[userID] {
		if !req.DateFrom.Before(weekStart) && !req.DateFrom.After(weekEnd) {
			history.WeekRequests = append(history.WeekRequests, req)
		}
		if req.DateFrom.Year() == asOf.Year() && req.DateFrom.Month() == asOf.Month() {
			history.MonthRequests = append(history.MonthRequests, req)
		}
		if history.LastLeaveEnd == nil || req.DateTo.After(*history.LastLeaveEnd) {
			end := req.DateTo
			history.LastLeaveEnd = &end
		}
	}
	return history, nil
}

func (s *Store) SavePenalties(_ context.Context, userID string, asOf engine.Date, penalties []engine.Penalty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range penalties {
		s.penalties[userID] = append(s.penalties[userID], datedPenalty{date: asOf, penalty: p})
	}
	return nil
}

func (s *Store) PenaltiesForWeek(_ context.Context, userID string, weekStart engine.Date) ([]engine.Penalty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := weekStart.StartOfWeek()
	end := start.AddDays(6)

	var result []engine.Penalty
	for _, dp := range s.penalties[userID] {
		if !dp.date.Before(start) && !dp.date.After(end) {
			result = append(result, dp.penalty)
		}
	}
	return result, nil
}

func (s *Store) SetSuspended(_ context.Context, userID string, suspended bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended[userID] = suspended
	return nil
}

// =============================================================================
// PAYROLL
// =============================================================================

func (s *Store) SaveTimerSummary(_ context.Context, summary payroll.TimerSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.summaries[summary.UserID] == nil {
		s.summaries[summary.UserID] = make(map[string]payroll.TimerSummary)
	}
	s.summaries[summary.UserID][summary.WeekStart.String()] = summary
	return nil
}

func (s *Store) TimerSummary(_ context.Context, userID string, weekStart engine.Date) (payroll.TimerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.summaries[userID][weekStart.String()]
	if !ok {
		return payroll.TimerSummary{}, engine.ErrNotFound
	}
	return summary, nil
}

func (s *Store) TimerSummaries(_ context.Context, userID string) ([]payroll.TimerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []payroll.TimerSummary
	for _, summary := range s.summaries[userID] {
		result = append(result, summary)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].WeekStart.Before(result[j].WeekStart)
	})
	return result, nil
}

func (s *Store) PayrollHistory(_ context.Context, userID string) (payroll.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.histories[userID]
	if !ok {
		return payroll.History{}, engine.ErrNotFound
	}
	return history, nil
}

// SavePayrollHistory seeds or replaces a user's payroll record. Not part
// of payroll.Store; tests and the API use it to arrange state.
func (s *Store) SavePayrollHistory(_ context.Context, userID string, history payroll.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[userID] = history
	return nil
}

func (s *Store) SaveCalculation(_ context.Context, runID string, c payroll.Calculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[runID] = append(s.lines[runID], c)
	return nil
}

// Calculations returns the lines persisted under a run, in insertion order.
func (s *Store) Calculations(_ context.Context, runID string) ([]payroll.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]payroll.Calculation(nil), s.lines[runID]...), nil
}

func (s *Store) MarkSecurityFundDeducted(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.histories[userID]
	history.SecurityFundDeducted = true
	s.histories[userID] = history
	return nil
}

// =============================================================================
// ELIGIBILITY
// =============================================================================

func (s *Store) SaveEvaluation(_ context.Context, candidateID string, res eligibility.EvaluationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluations[candidateID] = append(s.evaluations[candidateID], res)
	return nil
}

func (s *Store) LatestEvaluation(_ context.Context, candidateID string) (eligibility.EvaluationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	evals := s.evaluations[candidateID]
	if len(evals) == 0 {
		return eligibility.EvaluationResult{}, engine.ErrNotFound
	}
	return evals[len(evals)-1], nil
}

// =============================================================================
// DIRECTORY
// =============================================================================

// UserIDs returns every user the store has seen, sorted. The jobs runner
// iterates this to drive scheduled recomputes.
func (s *Store) UserIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for id := range s.events {
		seen[id] = struct{}{}
	}
	for id := range s.daily {
		seen[id] = struct{}{}
	}
	for id := range s.summaries {
		seen[id] = struct{}{}
	}
	for id := range s.histories {
		seen[id] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
