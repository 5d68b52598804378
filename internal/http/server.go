// Package http exposes the budget API: dashboard aggregates, ledger CRUD,
// statement import, and the subscription / scheduled-income / goal
// registries.
package http

import (
	"net/http"
	"time"

	"budget/internal/cache"
	"budget/internal/log"
	"budget/internal/services"
)

type Server struct {
	http.Server

	ledger   *services.LedgerService
	registry *services.RegistryService
	logger   *log.Logger

	// Default projection horizon in months; overridable per request.
	horizon int

	// Dashboard aggregates are recomputed from the full ledger on every
	// read, so responses are cached until the next mutation.
	dashCache *cache.Cache[[]byte]
}

type Options struct {
	Addr              string
	Ledger            *services.LedgerService
	Registry          *services.RegistryService
	Logger            *log.Logger
	ProjectionHorizon int
}

func NewServer(opts Options) *Server {
	horizon := opts.ProjectionHorizon
	if horizon < 1 {
		horizon = 3
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		ledger:    opts.Ledger,
		registry:  opts.Registry,
		logger:    logger.WithComponent(log.ComponentHTTP),
		horizon:   horizon,
		dashCache: cache.New[[]byte](50, 5*time.Minute),
	}
	// Ledger writes can come from outside a request, like the periodic
	// materializer, so cache invalidation hangs off the service rather than
	// the handlers alone.
	if s.ledger != nil {
		s.ledger.OnMutation(s.invalidate)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/projection", s.handleProjection)

	mux.HandleFunc("GET /api/entries", s.handleListEntries)
	mux.HandleFunc("POST /api/entries", s.handleCreateEntry)
	mux.HandleFunc("DELETE /api/entries/{id}", s.handleDeleteEntry)
	mux.HandleFunc("POST /api/import", s.handleImport)

	mux.HandleFunc("GET /api/subscriptions", s.handleListSubscriptions)
	mux.HandleFunc("POST /api/subscriptions", s.handleCreateSubscription)
	mux.HandleFunc("POST /api/subscriptions/{id}/toggle", s.handleToggleSubscription)
	mux.HandleFunc("DELETE /api/subscriptions/{id}", s.handleDeleteSubscription)

	mux.HandleFunc("GET /api/scheduled-income", s.handleListScheduledIncome)
	mux.HandleFunc("POST /api/scheduled-income", s.handleCreateScheduledIncome)
	mux.HandleFunc("POST /api/scheduled-income/{id}/toggle", s.handleToggleScheduledIncome)
	mux.HandleFunc("DELETE /api/scheduled-income/{id}", s.handleDeleteScheduledIncome)
	mux.HandleFunc("POST /api/scheduled-income/process", s.handleProcessScheduledIncome)

	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("POST /api/goals/{id}/funds", s.handleAddGoalFunds)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           log.Middleware(s.logger)(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// invalidate drops cached dashboard responses after any mutation.
func (s *Server) invalidate() {
	s.dashCache.Purge()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
