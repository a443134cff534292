/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, the middleware stack and the route table.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address behind proxies
  3. httplog:    Structured request logging (slog, ECS schema)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for the admin frontend

ROUTE GROUPS:
  /api/window/*       Operational window gate
  /api/eligibility/*  Candidate scoring
  /api/users/*        Activity, streaks and leave per user
  /api/payroll/*      Per-user and batch payroll
  /api/admin/*        Settings management

SECURITY NOTE:
  No authentication middleware; the service is deployed behind the
  application gateway which owns sessions.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "compliance-engine"),
	)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Heartbeat("/healthz"))

	r.Route("/api", func(r chi.Router) {
		r.Post("/window/check", h.CheckWindow)

		r.Route("/eligibility", func(r chi.Router) {
			r.Post("/evaluate", h.EvaluateEligibility)
			r.Get("/{candidateID}", h.GetEligibility)
		})

		r.Route("/users/{id}", func(r chi.Router) {
			r.Post("/activity/events", h.AppendEvents)
			r.Post("/activity/days", h.BuildDay)
			r.Get("/streak", h.GetStreak)
			r.Post("/leave/requests", h.SubmitLeave)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Post("/calculate", h.CalculatePayroll)
			r.Post("/run", h.RunPayroll)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/settings", h.UpdateSettings)
		})
	})

	return r
}
