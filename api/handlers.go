/*
handlers.go - HTTP API handlers for the compliance and compensation engine

PURPOSE:
  Exposes the engine via REST. Handlers parse HTTP, load read-only
  snapshots from the stores, call the pure computation packages, persist
  the derived records, and serialize responses. No business rule lives
  here.

ENDPOINTS:
  Window:
    POST   /api/window/check             Operational window gate

  Eligibility:
    POST   /api/eligibility/evaluate     Score a candidate
    GET    /api/eligibility/{id}         Latest stored outcome

  Activity:
    POST   /api/users/{id}/activity/events  Append monitor events
    POST   /api/users/{id}/activity/days    Derive one day's record
    GET    /api/users/{id}/streak           Recompute and return the streak

  Leave:
    POST   /api/users/{id}/leave/requests   Validate (and store) a request

  Payroll:
    POST   /api/payroll/calculate        One user's line, not persisted
    POST   /api/payroll/run              Batch run, lines persisted

  Admin:
    POST   /api/admin/settings           Replace the settings document

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed input
  - 404: Unknown user/candidate
  - 500: Store failures

  Engine-level rejections (invalid leave, ineligible payroll, REJECTED
  candidates) are NOT errors: they come back 200 with the structured
  result, and the caller decides what to do.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/activity"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/eligibility"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/factory"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/leave"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/payroll"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/schedule"
)

// streakWindowDays bounds how far back the streak recompute reads.
const streakWindowDays = 180

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Stores bundles the persistence collaborators. A single implementation
// (store/memory, store/sqlite) usually provides all four.
type Stores struct {
	Activity    activity.Store
	Leave       leave.Store
	Payroll     payroll.Store
	Eligibility eligibility.Store
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Stores   Stores
	Notifier engine.Notifier

	// SettingsSink persists an applied settings document so it survives a
	// restart. Nil disables persistence.
	SettingsSink func(ctx context.Context, document []byte) error

	// Now is injectable so tests pin the clock.
	Now func() time.Time

	mu       sync.RWMutex
	settings factory.Settings
}

// NewHandler creates a handler with the given stores and settings.
func NewHandler(stores Stores, settings factory.Settings, notifier engine.Notifier) *Handler {
	if notifier == nil {
		notifier = engine.NopNotifier{}
	}
	return &Handler{
		Stores:   stores,
		Notifier: notifier,
		Now:      time.Now,
		settings: settings,
	}
}

// Settings returns the active settings snapshot.
func (h *Handler) Settings() factory.Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settings
}

// =============================================================================
// WINDOW HANDLERS
// =============================================================================

// CheckWindow evaluates the operational window gate.
// POST /api/window/check
func (h *Handler) CheckWindow(w http.ResponseWriter, r *http.Request) {
	var req WindowCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	createdAt, err := time.Parse(time.RFC3339, req.ProfileCreatedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile_created_at", err)
		return
	}

	at := h.Now()
	if req.At != "" {
		if at, err = time.Parse(time.RFC3339, req.At); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid at", err)
			return
		}
	}

	d := schedule.CheckWindow(createdAt, at, h.Settings().Schedule)
	writeJSON(w, http.StatusOK, WindowCheckResponse{
		Allowed:          d.Allowed,
		Window:           string(d.Window),
		Reason:           d.Reason,
		MinutesUntilNext: d.MinutesUntilNext,
	})
}

// =============================================================================
// ELIGIBILITY HANDLERS
// =============================================================================

// EvaluateEligibility scores a candidate and stores the outcome when a
// candidate ID is supplied.
// POST /api/eligibility/evaluate
func (h *Handler) EvaluateEligibility(w http.ResponseWriter, r *http.Request) {
	var req EligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result := eligibility.Evaluate(req.Data, h.Settings().Eligibility)

	if req.CandidateID != "" {
		if err := h.Stores.Eligibility.SaveEvaluation(r.Context(), req.CandidateID, result); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store evaluation", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toEligibilityResponse(result))
}

// GetEligibility returns the latest stored outcome for a candidate.
// GET /api/eligibility/{candidateID}
func (h *Handler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	candidateID := chi.URLParam(r, "candidateID")

	result, err := h.Stores.Eligibility.LatestEvaluation(r.Context(), candidateID)
	if errors.Is(err, engine.ErrNotFound) {
		writeError(w, http.StatusNotFound, "No evaluation for candidate", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load evaluation", err)
		return
	}

	writeJSON(w, http.StatusOK, toEligibilityResponse(result))
}

func toEligibilityResponse(res eligibility.EvaluationResult) EligibilityResponse {
	return EligibilityResponse{
		Status:    string(res.Status),
		Score:     res.Score,
		Breakdown: res.Breakdown,
		Reasons:   res.Reasons,
	}
}

// =============================================================================
// ACTIVITY HANDLERS
// =============================================================================

// AppendEvents adds raw monitor events to a user's timeline.
// POST /api/users/{id}/activity/events
func (h *Handler) AppendEvents(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req AppendEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	events := make([]activity.ActivityEvent, 0, len(req.Events))
	for _, dto := range req.Events {
		ts, err := time.Parse(time.RFC3339, dto.Timestamp)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid event timestamp", err)
			return
		}
		events = append(events, activity.ActivityEvent{
			Timestamp: ts,
			Kind:      activity.EventKind(dto.Kind),
			SessionID: dto.SessionID,
		})
	}

	if err := h.Stores.Activity.AppendEvents(r.Context(), userID, events); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store events", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"accepted": len(events)})
}

// BuildDay derives and stores one day's activity record from the stored
// event timeline, notifying when the day misses the compliance minimum.
// POST /api/users/{id}/activity/days
func (h *Handler) BuildDay(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req BuildDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	events, err := h.Stores.Activity.EventsForDate(r.Context(), userID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load events", err)
		return
	}

	day := activity.BuildDailyActivity(userID, date, req.ElapsedSeconds, events, h.Settings().Activity)
	if err := h.Stores.Activity.SaveDailyActivity(r.Context(), day); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store daily activity", err)
		return
	}

	if !day.MeetsDailyMinimum {
		h.Notifier.ComplianceWarning(r.Context(), engine.ComplianceWarning{
			UserID:          userID,
			Date:            date,
			BillableSeconds: day.BillableSeconds,
		})
	}

	writeJSON(w, http.StatusOK, toDailyActivityDTO(day))
}

// GetStreak recomputes the user's streak from the stored daily history,
// persists it and returns the result.
// GET /api/users/{id}/streak
func (h *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	cfg := h.Settings().Activity
	asOf := engine.DateOf(h.Now())

	days, err := h.Stores.Activity.DailyActivities(r.Context(), userID, asOf.AddDays(-streakWindowDays), asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load daily history", err)
		return
	}

	streak := activity.ComputeStreak(userID, days, asOf, cfg)
	if err := h.Stores.Activity.SaveStreak(r.Context(), streak); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store streak", err)
		return
	}

	dto := StreakDTO{
		CurrentStreak:       streak.CurrentStreak,
		LongestStreak:       streak.LongestStreak,
		TotalQualifyingDays: streak.TotalQualifyingDays,
		QualifiesForBonus:   activity.QualifiesForBonus(streak, cfg),
	}
	if streak.LastActiveDate != nil {
		dto.LastActiveDate = streak.LastActiveDate.String()
	}
	writeJSON(w, http.StatusOK, dto)
}

func toDailyActivityDTO(day activity.DailyActivity) DailyActivityDTO {
	reasons := make([]string, 0, len(day.PauseReasons))
	for _, reason := range day.PauseReasons {
		reasons = append(reasons, string(reason))
	}
	return DailyActivityDTO{
		Date:              day.Date.String(),
		TotalSeconds:      day.TotalSeconds,
		BillableSeconds:   day.BillableSeconds,
		PauseSeconds:      day.PauseSeconds,
		ActiveEvents:      day.ActiveEvents,
		MeetsDailyMinimum: day.MeetsDailyMinimum,
		PauseReasons:      reasons,
	}
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// SubmitLeave validates a leave request against the stored history. A
// valid request and its penalties are persisted; a rejected one is not.
// POST /api/users/{id}/leave/requests
func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var dto LeaveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	dateFrom, err := engine.ParseDate(dto.DateFrom)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date_from", err)
		return
	}
	dateTo, err := engine.ParseDate(dto.DateTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date_to", err)
		return
	}

	now := h.Now()
	req := leave.Request{
		UserID:      userID,
		Type:        leave.Type(dto.Type),
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Reason:      dto.Reason,
		RequestedAt: now,
	}

	cfg := h.Settings().Leave
	history, err := h.Stores.Leave.HistoryFor(r.Context(), userID, engine.DateOf(now))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave history", err)
		return
	}

	result := leave.Validate(req, history, cfg)
	resp := toLeaveResponse(result)

	if result.IsValid {
		if err := h.Stores.Leave.SaveRequest(r.Context(), req); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store request", err)
			return
		}
		if len(result.Penalties) > 0 {
			if err := h.Stores.Leave.SavePenalties(r.Context(), userID, engine.DateOf(now), result.Penalties); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to store penalties", err)
				return
			}
		}

		// The just-saved request counts toward the suspension threshold.
		history.MonthRequests = append(history.MonthRequests, req)
		if check := leave.CheckSuspension(history, cfg); check.ShouldSuspend {
			if err := h.Stores.Leave.SetSuspended(r.Context(), userID, true); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to store suspension", err)
				return
			}
			resp.Suspended = true
			resp.SuspendReason = check.Reason
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func toLeaveResponse(res leave.Result) LeaveValidationResponse {
	penalties := make([]PenaltyDTO, 0, len(res.Penalties))
	for _, p := range res.Penalties {
		penalties = append(penalties, PenaltyDTO{
			Type:        string(p.Type),
			Amount:      p.Amount.String(),
			Description: p.Description,
		})
	}
	return LeaveValidationResponse{
		IsValid:     res.IsValid,
		Errors:      res.Errors,
		Warnings:    res.Warnings,
		Penalties:   penalties,
		NoticeHours: res.NoticeHours,
		LeaveDays:   res.LeaveDays,
	}
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// CalculatePayroll computes one user's line without persisting it.
// POST /api/payroll/calculate
func (h *Handler) CalculatePayroll(w http.ResponseWriter, r *http.Request) {
	var req PayrollCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	weekStart, err := engine.ParseDate(req.WeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid week_start", err)
		return
	}

	line, err := h.calculateLine(r, req.UserID, weekStart)
	if errors.Is(err, engine.ErrNotFound) {
		writeError(w, http.StatusNotFound, "No payroll inputs for user/week", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payroll inputs", err)
		return
	}

	writeJSON(w, http.StatusOK, toPayrollLineDTO(line))
}

// RunPayroll computes and persists a batch of lines under a fresh run ID.
// POST /api/payroll/run
func (h *Handler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	var req PayrollRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	weekStart, err := engine.ParseDate(req.WeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid week_start", err)
		return
	}

	runID := uuid.NewString()
	var lines []payroll.Calculation

	for _, userID := range req.UserIDs {
		line, err := h.calculateLine(r, userID, weekStart)
		if errors.Is(err, engine.ErrNotFound) {
			continue // no inputs for this user/week; skip, don't fail the run
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load payroll inputs", err)
			return
		}

		if err := h.Stores.Payroll.SaveCalculation(r.Context(), runID, line); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store payroll line", err)
			return
		}
		if line.IsEligible && line.Deductions.SecurityFund.IsPositive() {
			if err := h.Stores.Payroll.MarkSecurityFundDeducted(r.Context(), userID); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to record security fund", err)
				return
			}
		}
		lines = append(lines, line)
	}

	writeJSON(w, http.StatusOK, toRunResponse(runID, lines))
}

// calculateLine loads a user's payroll inputs and runs the calculator.
func (h *Handler) calculateLine(r *http.Request, userID string, weekStart engine.Date) (payroll.Calculation, error) {
	ctx := r.Context()
	cfg := h.Settings().Payroll

	summary, err := h.Stores.Payroll.TimerSummary(ctx, userID, weekStart)
	if err != nil {
		return payroll.Calculation{}, err
	}
	history, err := h.Stores.Payroll.PayrollHistory(ctx, userID)
	if err != nil {
		return payroll.Calculation{}, err
	}
	penalties, err := h.Stores.Leave.PenaltiesForWeek(ctx, userID, weekStart)
	if err != nil {
		return payroll.Calculation{}, err
	}
	historical, err := h.Stores.Payroll.TimerSummaries(ctx, userID)
	if err != nil {
		return payroll.Calculation{}, err
	}

	return payroll.Calculate(summary, history, penalties, historical, cfg), nil
}

func toPayrollLineDTO(c payroll.Calculation) PayrollLineDTO {
	return PayrollLineDTO{
		UserID:               c.UserID,
		WeekStart:            c.WeekStart.String(),
		PeriodLabel:          c.PeriodLabel,
		IsEligible:           c.IsEligible,
		IneligibilityReasons: c.IneligibilityReasons,
		BillableHours:        c.BillableHours.String(),
		BaseAmount:           c.BaseAmount.String(),
		Streak: StreakInfoDTO{
			CurrentWeeks:  c.Streak.CurrentWeeks,
			RequiredWeeks: c.Streak.RequiredWeeks,
			Qualifies:     c.Streak.Qualifies,
			Bonus:         c.Streak.Bonus.String(),
		},
		Deductions: DeductionsDTO{
			SecurityFund: c.Deductions.SecurityFund.String(),
			Penalties:    c.Deductions.Penalties.String(),
			Taxes:        c.Deductions.Taxes.String(),
			Total:        c.Deductions.Total.String(),
		},
		GrossAmount: c.GrossAmount.String(),
		NetAmount:   c.NetAmount.String(),
	}
}

func toRunResponse(runID string, lines []payroll.Calculation) PayrollRunResponse {
	resp := PayrollRunResponse{RunID: runID, Lines: make([]PayrollLineDTO, 0, len(lines))}

	summary := payroll.FoldSummary(lines)
	resp.Employees = summary.Employees
	resp.EligibleCount = summary.EligibleCount
	resp.BonusRecipients = summary.BonusRecipients
	resp.TotalGross = summary.TotalGross.String()
	resp.TotalNet = summary.TotalNet.String()
	resp.TotalDeductions = summary.TotalDeductions.String()
	resp.AverageHours = summary.AverageHours.String()

	for _, line := range lines {
		resp.Lines = append(resp.Lines, toPayrollLineDTO(line))
	}
	return resp
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// UpdateSettings replaces the active settings from a JSON document.
// POST /api/admin/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var document json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&document); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	settings, err := factory.Parse(document)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings document", err)
		return
	}

	if h.SettingsSink != nil {
		if err := h.SettingsSink(r.Context(), document); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to persist settings", err)
			return
		}
	}

	h.mu.Lock()
	h.settings = settings
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "applied"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
