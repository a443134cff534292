/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the workforce compliance and compensation engine
  server. Handles configuration, dependency injection, the scheduled jobs
  runner and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse command-line flags
  2. Initialize SQLite store
  3. Load the persisted settings document (defaults when absent)
  4. Create the API handler and router
  5. Start the scheduled jobs runner
  6. Start the server with graceful shutdown

COMMAND-LINE FLAGS (environment variables override the defaults):
  -port    HTTP server port (default: 8080, env PORT)
  -db      SQLite database path (default: compliance.db, env DB_PATH)
           Use ":memory:" for an in-memory database
  -jobs    Enable the cron runner (default: true)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the jobs runner and wait for a running job
  4. Close the database connection

EXAMPLES:
  # Run with file database
  ./server -db="./data/compliance.db"

  # Run on a different port without scheduled jobs
  ./server -port=3000 -jobs=false

SEE ALSO:
  - api/server.go: Router configuration
  - jobs/runner.go: Scheduled derivations
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/api"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/engine"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/factory"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/jobs"
	"github.com/primerdpvps-ai/Tech-and-Talent-sub004/store/sqlite"
)

// logNotifier writes engine events to the process log. Real delivery
// (email, SMS) is owned by a separate service that tails these.
type logNotifier struct{}

func (logNotifier) StreakMilestone(_ context.Context, ev engine.StreakMilestone) error {
	log.Printf("[Notify] streak milestone: user=%s days=%d date=%s", ev.UserID, ev.StreakDays, ev.Date)
	return nil
}

func (logNotifier) ComplianceWarning(_ context.Context, ev engine.ComplianceWarning) error {
	log.Printf("[Notify] compliance warning: user=%s date=%s billable=%ds", ev.UserID, ev.Date, ev.BillableSeconds)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Flags, with environment defaults
	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envString("DB_PATH", "compliance.db"), "SQLite database path")
	jobsEnabled := flag.Bool("jobs", true, "run the scheduled jobs")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Load the persisted settings document; a fresh database runs on defaults
	settings := factory.Defaults()
	document, err := store.LoadSettings(context.Background())
	switch {
	case errors.Is(err, engine.ErrNotFound):
		log.Println("No settings document stored, using defaults")
	case err != nil:
		log.Fatalf("Failed to load settings: %v", err)
	default:
		if settings, err = factory.Parse(document); err != nil {
			log.Fatalf("Stored settings document is invalid: %v", err)
		}
	}

	notifier := logNotifier{}
	stores := api.Stores{
		Activity:    store,
		Leave:       store,
		Payroll:     store,
		Eligibility: store,
	}
	handler := api.NewHandler(stores, settings, notifier)
	handler.SettingsSink = store.SaveSettings
	router := api.NewRouter(handler)

	// Scheduled derivations read the handler's live settings snapshot
	runner := jobs.NewRunner(jobs.Deps{
		Directory: store,
		Activity:  store,
		Leave:     store,
		Payroll:   store,
		Settings:  handler.Settings,
		Notifier:  notifier,
	})
	if *jobsEnabled {
		if err := runner.Start(); err != nil {
			log.Fatalf("Failed to start jobs runner: %v", err)
		}
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if *jobsEnabled {
		runner.Stop()
	}

	log.Println("Server stopped")
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
