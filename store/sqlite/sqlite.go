/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements every persistence collaborator the engine declares (activity,
  leave, payroll, eligibility stores) plus the settings document used by
  the factory. In production the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

KEY TABLES:
  activity_events:  Raw monitor events, append-only
  daily_activity:   Derived per-day records, superseded on recompute
  streaks:          One recomputed streak row per user
  leave_requests:   Submitted leave requests
  penalties:        The costed infraction ledger
  timer_summaries:  Weekly aggregates feeding payroll
  payroll_history:  Per-user payroll record (fund flag, weeks paid)
  payroll_lines:    Computed lines grouped by run ID
  evaluations:      Eligibility evaluation outcomes
  settings:         The JSON settings document consumed by factory

SERIALIZATION:
  Dates are stored as "2006-01-02" strings, instants as RFC3339, money as
  decimal strings, and nested structures (streak periods, payroll lines,
  evaluation results) as JSON blobs.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL so
  readers do not block each other.

USAGE:
  store, err := sqlite.New("./data/engine.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - store/memory: In-memory implementation for testing
  - activity/store.go, leave/store.go, payroll/store.go: Interfaces
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/activity"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/eligibility"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/leave"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/payroll"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Raw monitor events (append-only)
	CREATE TABLE IF NOT EXISTS activity_events (
		user_id TEXT NOT NULL,
		ts TEXT NOT NULL,
		kind TEXT NOT NULL,
		session_id TEXT,
		date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_user_date
		ON activity_events(user_id, date);

	-- Derived daily records, superseded on recompute
	CREATE TABLE IF NOT EXISTS daily_activity (
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		total_seconds INTEGER NOT NULL,
		billable_seconds INTEGER NOT NULL,
		pause_seconds INTEGER NOT NULL,
		active_events INTEGER NOT NULL,
		meets_minimum BOOLEAN NOT NULL,
		last_activity TEXT,
		pause_reasons_json TEXT,
		PRIMARY KEY (user_id, date)
	);

	-- One streak row per user, replaced wholesale on recompute
	CREATE TABLE IF NOT EXISTS streaks (
		user_id TEXT PRIMARY KEY,
		current_streak INTEGER NOT NULL,
		longest_streak INTEGER NOT NULL,
		qualifying_days INTEGER NOT NULL,
		last_active_date TEXT,
		periods_json TEXT NOT NULL
	);

	-- Leave requests
	CREATE TABLE IF NOT EXISTS leave_requests (
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		date_from TEXT NOT NULL,
		date_to TEXT NOT NULL,
		reason TEXT,
		requested_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leave_user_from
		ON leave_requests(user_id, date_from);

	-- Suspension flags
	CREATE TABLE IF NOT EXISTS suspensions (
		user_id TEXT PRIMARY KEY,
		suspended BOOLEAN NOT NULL
	);

	-- Penalty ledger
	CREATE TABLE IF NOT EXISTS penalties (
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_penalties_user_date
		ON penalties(user_id, date);

	-- Weekly aggregates feeding payroll
	CREATE TABLE IF NOT EXISTS timer_summaries (
		user_id TEXT NOT NULL,
		week_start TEXT NOT NULL,
		total_seconds INTEGER NOT NULL,
		billable_seconds INTEGER NOT NULL,
		days_worked INTEGER NOT NULL,
		daily_minimum_met INTEGER NOT NULL,
		average_daily_hours TEXT NOT NULL,
		PRIMARY KEY (user_id, week_start)
	);

	-- Per-user payroll record
	CREATE TABLE IF NOT EXISTS payroll_history (
		user_id TEXT PRIMARY KEY,
		profile_created_at TEXT NOT NULL,
		employment_start TEXT NOT NULL,
		security_fund_deducted BOOLEAN NOT NULL,
		weeks_paid INTEGER NOT NULL,
		current_streak INTEGER NOT NULL
	);

	-- Computed payroll lines grouped by run
	CREATE TABLE IF NOT EXISTS payroll_lines (
		run_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		week_start TEXT NOT NULL,
		period_label TEXT NOT NULL,
		is_eligible BOOLEAN NOT NULL,
		net_amount TEXT NOT NULL,
		line_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lines_run
		ON payroll_lines(run_id);

	-- Eligibility evaluation outcomes
	CREATE TABLE IF NOT EXISTS evaluations (
		candidate_id TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_candidate
		ON evaluations(candidate_id, created_at);

	-- Settings document consumed by factory
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		document TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ACTIVITY STORE (activity.Store interface)
// =============================================================================

// AppendEvents adds raw monitor events. Append-only.
func (s *Store) AppendEvents(ctx context.Context, userID string, events []activity.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ev := range events {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO activity_events (user_id, ts, kind, session_id, date) VALUES (?, ?, ?, ?, ?)",
			userID,
			ev.Timestamp.Format(time.RFC3339Nano),
			string(ev.Kind),
			ev.SessionID,
			engine.DateOf(ev.Timestamp).String(),
		)
		if err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}
	}
	return tx.Commit()
}

// EventsForDate returns a user's events for one date, oldest first.
func (s *Store) EventsForDate(ctx context.Context, userID string, date engine.Date) ([]activity.ActivityEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT ts, kind, session_id FROM activity_events WHERE user_id = ? AND date = ? ORDER BY ts ASC",
		userID, date.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []activity.ActivityEvent
	for rows.Next() {
		var ts, kind string
		var sessionID sql.NullString
		if err := rows.Scan(&ts, &kind, &sessionID); err != nil {
			return nil, err
		}
		t, _ := time.Parse(time.RFC3339Nano, ts)
		events = append(events, activity.ActivityEvent{
			Timestamp: t,
			Kind:      activity.EventKind(kind),
			SessionID: sessionID.String,
		})
	}
	return events, rows.Err()
}

// SaveDailyActivity supersedes any record for the same (user, date).
func (s *Store) SaveDailyActivity(ctx context.Context, day activity.DailyActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reasonsJSON, _ := json.Marshal(day.PauseReasons)
	var lastActivity *string
	if day.LastActivity != nil {
		v := day.LastActivity.Format(time.RFC3339Nano)
		lastActivity = &v
	}

	query := `
		INSERT INTO daily_activity
		(user_id, date, total_seconds, billable_seconds, pause_seconds,
		 active_events, meets_minimum, last_activity, pause_reasons_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			total_seconds = excluded.total_seconds,
			billable_seconds = excluded.billable_seconds,
			pause_seconds = excluded.pause_seconds,
			active_events = excluded.active_events,
			meets_minimum = excluded.meets_minimum,
			last_activity = excluded.last_activity,
			pause_reasons_json = excluded.pause_reasons_json
	`

	_, err := s.db.ExecContext(ctx, query,
		day.UserID, day.Date.String(),
		day.TotalSeconds, day.BillableSeconds, day.PauseSeconds,
		day.ActiveEvents, day.MeetsDailyMinimum, lastActivity, string(reasonsJSON),
	)
	return err
}

// DailyActivities returns daily records in [from, to], oldest first.
func (s *Store) DailyActivities(ctx context.Context, userID string, from, to engine.Date) ([]activity.DailyActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT date, total_seconds, billable_seconds, pause_seconds,
		       active_events, meets_minimum, last_activity, pause_reasons_json
		FROM daily_activity
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []activity.DailyActivity
	for rows.Next() {
		day := activity.DailyActivity{UserID: userID}
		var dateStr string
		var lastActivity, reasonsJSON sql.NullString

		if err := rows.Scan(&dateStr, &day.TotalSeconds, &day.BillableSeconds,
			&day.PauseSeconds, &day.ActiveEvents, &day.MeetsDailyMinimum,
			&lastActivity, &reasonsJSON); err != nil {
			return nil, err
		}

		day.Date, _ = engine.ParseDate(dateStr)
		if lastActivity.Valid {
			t, _ := time.Parse(time.RFC3339Nano, lastActivity.String)
			day.LastActivity = &t
		}
		if reasonsJSON.Valid && reasonsJSON.String != "" {
			json.Unmarshal([]byte(reasonsJSON.String), &day.PauseReasons)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// SaveStreak replaces the user's streak row wholesale.
func (s *Store) SaveStreak(ctx context.Context, streak activity.StreakData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	periodsJSON, _ := json.Marshal(streak.Periods)
	var lastActive *string
	if streak.LastActiveDate != nil {
		v := streak.LastActiveDate.String()
		lastActive = &v
	}

	query := `
		INSERT INTO streaks
		(user_id, current_streak, longest_streak, qualifying_days, last_active_date, periods_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			qualifying_days = excluded.qualifying_days,
			last_active_date = excluded.last_active_date,
			periods_json = excluded.periods_json
	`

	_, err := s.db.ExecContext(ctx, query,
		streak.UserID, streak.CurrentStreak, streak.LongestStreak,
		streak.TotalQualifyingDays, lastActive, string(periodsJSON),
	)
	return err
}

// Streak returns the stored streak for a user.
func (s *Store) Streak(ctx context.Context, userID string) (activity.StreakData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	streak := activity.StreakData{UserID: userID}
	var lastActive, periodsJSON sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT current_streak, longest_streak, qualifying_days, last_active_date, periods_json FROM streaks WHERE user_id = ?",
		userID,
	).Scan(&streak.CurrentStreak, &streak.LongestStreak, &streak.TotalQualifyingDays,
		&lastActive, &periodsJSON)

	if err == sql.ErrNoRows {
		return activity.StreakData{}, engine.ErrNotFound
	}
	if err != nil {
		return activity.StreakData{}, err
	}

	if lastActive.Valid {
		d, _ := engine.ParseDate(lastActive.String)
		streak.LastActiveDate = &d
	}
	if periodsJSON.Valid && periodsJSON.String != "" {
		json.Unmarshal([]byte(periodsJSON.String), &streak.Periods)
	}
	return streak, nil
}

// =============================================================================
// LEAVE STORE (leave.Store interface)
// =============================================================================

// SaveRequest persists a leave request.
func (s *Store) SaveRequest(ctx context.Context, req leave.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO leave_requests (user_id, type, date_from, date_to, reason, requested_at) VALUES (?, ?, ?, ?, ?, ?)",
		req.UserID, string(req.Type),
		req.DateFrom.String(), req.DateTo.String(),
		req.Reason, req.RequestedAt.Format(time.RFC3339),
	)
	return err
}

// HistoryFor anchors the week window on the Monday of asOf and the month
// window on asOf's calendar month.
func (s *Store) HistoryFor(ctx context.Context, userID string, asOf engine.Date) (leave.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT type, date_from, date_to, reason, requested_at FROM leave_requests WHERE user_id = ? ORDER BY date_from ASC",
		userID,
	)
	if err != nil {
		return leave.History{}, err
	}
	defer rows.Close()

	weekStart := asOf.StartOfWeek()
	weekEnd := weekStart.AddDays(6)
	history := leave.History{}

	for rows.Next() {
		var typ, fromStr, toStr, requestedAt string
		var reason sql.NullString
		if err := rows.Scan(&typ, &fromStr, &toStr, &reason, &requestedAt); err != nil {
			return leave.History{}, err
		}

		req := leave.Request{UserID: userID, Type: leave.Type(typ), Reason: reason.String}
		req.DateFrom, _ = engine.ParseDate(fromStr)
		req.DateTo, _ = engine.ParseDate(toStr)
		req.RequestedAt, _ = time.Parse(time.RFC3339, requestedAt)

		history.TotalLeaves++
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
	if err := rows.Err(); err != nil {
		return leave.History{}, err
	}

	var suspended bool
	err = s.db.QueryRowContext(ctx,
		"SELECT suspended FROM suspensions WHERE user_id = ?", userID,
	).Scan(&suspended)
	if err != nil && err != sql.ErrNoRows {
		return leave.History{}, err
	}
	history.Suspended = suspended

	return history, nil
}

// SavePenalties appends ledger entries.
func (s *Store) SavePenalties(ctx context.Context, userID string, asOf engine.Date, penalties []engine.Penalty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range penalties {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO penalties (user_id, date, type, amount, description) VALUES (?, ?, ?, ?, ?)",
			userID, asOf.String(), string(p.Type), p.Amount.String(), p.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to append penalty: %w", err)
		}
	}
	return tx.Commit()
}

// PenaltiesForWeek returns entries charged in the Monday-anchored week.
func (s *Store) PenaltiesForWeek(ctx context.Context, userID string, weekStart engine.Date) ([]engine.Penalty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := weekStart.StartOfWeek()
	end := start.AddDays(6)

	rows, err := s.db.QueryContext(ctx,
		"SELECT type, amount, description FROM penalties WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date ASC",
		userID, start.String(), end.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var penalties []engine.Penalty
	for rows.Next() {
		var typ, amount string
		var description sql.NullString
		if err := rows.Scan(&typ, &amount, &description); err != nil {
			return nil, err
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("bad penalty amount %q: %w", amount, err)
		}
		penalties = append(penalties, engine.Penalty{
			Type:        engine.PenaltyType(typ),
			Amount:      amt,
			Description: description.String,
		})
	}
	return penalties, rows.Err()
}

// SetSuspended records a suspension decision.
func (s *Store) SetSuspended(ctx context.Context, userID string, suspended bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO suspensions (user_id, suspended) VALUES (?, ?) ON CONFLICT(user_id) DO UPDATE SET suspended = excluded.suspended",
		userID, suspended,
	)
	return err
}

// =============================================================================
// PAYROLL STORE (payroll.Store interface)
// =============================================================================

// SaveTimerSummary persists a week's aggregate, superseding any existing row.
func (s *Store) SaveTimerSummary(ctx context.Context, summary payroll.TimerSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO timer_summaries
		(user_id, week_start, total_seconds, billable_seconds, days_worked, daily_minimum_met, average_daily_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, week_start) DO UPDATE SET
			total_seconds = excluded.total_seconds,
			billable_seconds = excluded.billable_seconds,
			days_worked = excluded.days_worked,
			daily_minimum_met = excluded.daily_minimum_met,
			average_daily_hours = excluded.average_daily_hours
	`

	_, err := s.db.ExecContext(ctx, query,
		summary.UserID, summary.WeekStart.String(),
		summary.TotalSeconds, summary.BillableSeconds,
		summary.DaysWorked, summary.DailyMinimumMet,
		summary.AverageDailyHours.String(),
	)
	return err
}

// TimerSummary returns the aggregate for one (user, weekStart).
func (s *Store) TimerSummary(ctx context.Context, userID string, weekStart engine.Date) (payroll.TimerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := payroll.TimerSummary{UserID: userID, WeekStart: weekStart}
	var avg string

	err := s.db.QueryRowContext(ctx,
		"SELECT total_seconds, billable_seconds, days_worked, daily_minimum_met, average_daily_hours FROM timer_summaries WHERE user_id = ? AND week_start = ?",
		userID, weekStart.String(),
	).Scan(&summary.TotalSeconds, &summary.BillableSeconds,
		&summary.DaysWorked, &summary.DailyMinimumMet, &avg)

	if err == sql.ErrNoRows {
		return payroll.TimerSummary{}, engine.ErrNotFound
	}
	if err != nil {
		return payroll.TimerSummary{}, err
	}

	summary.AverageDailyHours, _ = decimal.NewFromString(avg)
	return summary, nil
}

// TimerSummaries returns every stored weekly aggregate, oldest first.
func (s *Store) TimerSummaries(ctx context.Context, userID string) ([]payroll.TimerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT week_start, total_seconds, billable_seconds, days_worked, daily_minimum_met, average_daily_hours FROM timer_summaries WHERE user_id = ? ORDER BY week_start ASC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []payroll.TimerSummary
	for rows.Next() {
		summary := payroll.TimerSummary{UserID: userID}
		var weekStart, avg string
		if err := rows.Scan(&weekStart, &summary.TotalSeconds, &summary.BillableSeconds,
			&summary.DaysWorked, &summary.DailyMinimumMet, &avg); err != nil {
			return nil, err
		}
		summary.WeekStart, _ = engine.ParseDate(weekStart)
		summary.AverageDailyHours, _ = decimal.NewFromString(avg)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// PayrollHistory returns the user's payroll record.
func (s *Store) PayrollHistory(ctx context.Context, userID string) (payroll.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var history payroll.History
	var createdAt, employmentStart string

	err := s.db.QueryRowContext(ctx,
		"SELECT profile_created_at, employment_start, security_fund_deducted, weeks_paid, current_streak FROM payroll_history WHERE user_id = ?",
		userID,
	).Scan(&createdAt, &employmentStart, &history.SecurityFundDeducted,
		&history.WeeksPaid, &history.CurrentStreak)

	if err == sql.ErrNoRows {
		return payroll.History{}, engine.ErrNotFound
	}
	if err != nil {
		return payroll.History{}, err
	}

	history.ProfileCreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	history.EmploymentStart, _ = engine.ParseDate(employmentStart)
	return history, nil
}

// SavePayrollHistory seeds or replaces a user's payroll record.
func (s *Store) SavePayrollHistory(ctx context.Context, userID string, history payroll.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO payroll_history
		(user_id, profile_created_at, employment_start, security_fund_deducted, weeks_paid, current_streak)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			profile_created_at = excluded.profile_created_at,
			employment_start = excluded.employment_start,
			security_fund_deducted = excluded.security_fund_deducted,
			weeks_paid = excluded.weeks_paid,
			current_streak = excluded.current_streak
	`

	_, err := s.db.ExecContext(ctx, query,
		userID,
		history.ProfileCreatedAt.Format(time.RFC3339),
		history.EmploymentStart.String(),
		history.SecurityFundDeducted,
		history.WeeksPaid,
		history.CurrentStreak,
	)
	return err
}

// SaveCalculation persists a computed line under a run identifier.
func (s *Store) SaveCalculation(ctx context.Context, runID string, c payroll.Calculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lineJSON, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode payroll line: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO payroll_lines (run_id, user_id, week_start, period_label, is_eligible, net_amount, line_json, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		runID, c.UserID, c.WeekStart.String(), c.PeriodLabel,
		c.IsEligible, c.NetAmount.String(), string(lineJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Calculations returns the lines persisted under a run, in insertion order.
func (s *Store) Calculations(ctx context.Context, runID string) ([]payroll.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT line_json FROM payroll_lines WHERE run_id = ? ORDER BY rowid ASC",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []payroll.Calculation
	for rows.Next() {
		var lineJSON string
		if err := rows.Scan(&lineJSON); err != nil {
			return nil, err
		}
		var line payroll.Calculation
		if err := json.Unmarshal([]byte(lineJSON), &line); err != nil {
			return nil, fmt.Errorf("failed to decode payroll line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// MarkSecurityFundDeducted records that the one-time deduction was taken.
func (s *Store) MarkSecurityFundDeducted(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"UPDATE payroll_history SET security_fund_deducted = TRUE WHERE user_id = ?",
		userID,
	)
	return err
}

// =============================================================================
// DIRECTORY
// =============================================================================

// UserIDs returns every user with stored activity or payroll data, sorted.
// The jobs runner iterates this to drive scheduled recomputes.
func (s *Store) UserIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id FROM daily_activity
		UNION SELECT user_id FROM activity_events
		UNION SELECT user_id FROM timer_summaries
		UNION SELECT user_id FROM payroll_history
		ORDER BY user_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// =============================================================================
// ELIGIBILITY STORE (eligibility.Store interface)
// =============================================================================

// SaveEvaluation persists an evaluation outcome.
func (s *Store) SaveEvaluation(ctx context.Context, candidateID string, res eligibility.EvaluationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resultJSON, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode evaluation: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO evaluations (candidate_id, result_json, created_at) VALUES (?, ?, ?)",
		candidateID, string(resultJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// LatestEvaluation returns the most recent outcome for a candidate.
func (s *Store) LatestEvaluation(ctx context.Context, candidateID string) (eligibility.EvaluationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resultJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT result_json FROM evaluations WHERE candidate_id = ? ORDER BY created_at DESC LIMIT 1",
		candidateID,
	).Scan(&resultJSON)

	if err == sql.ErrNoRows {
		return eligibility.EvaluationResult{}, engine.ErrNotFound
	}
	if err != nil {
		return eligibility.EvaluationResult{}, err
	}

	var res eligibility.EvaluationResult
	if err := json.Unmarshal([]byte(resultJSON), &res); err != nil {
		return eligibility.EvaluationResult{}, fmt.Errorf("failed to decode evaluation: %w", err)
	}
	return res, nil
}

// =============================================================================
// SETTINGS DOCUMENT
// =============================================================================

// SaveSettings replaces the JSON settings document.
func (s *Store) SaveSettings(ctx context.Context, document []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settings (id, document, updated_at) VALUES (1, ?, ?) ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at",
		string(document), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoadSettings returns the stored JSON settings document.
func (s *Store) LoadSettings(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var document string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM settings WHERE id = 1").Scan(&document)
	if err == sql.ErrNoRows {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(document), nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"activity_events", "daily_activity", "streaks",
		"leave_requests", "suspensions", "penalties",
		"timer_summaries", "payroll_history", "payroll_lines",
		"evaluations", "settings",
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
