// Package server implements the HTTP rendering feed for the dashboard.
//
// The server is read-only: it polls the record store on an interval, runs
// the computation pipeline over each snapshot, and serves the latest view
// to the browser front end. Edits happen elsewhere (the scenario engine and
// the editing UI write to the store directly); the server only observes
// their effects on the next poll.
//
// # Error state
//
// A snapshot that fails the pass with a data-integrity error (dangling
// dependency, self-dependency, cycle) puts the server into a persistent
// error state: /api/view answers 422 with the structured error until a
// clean snapshot arrives. The previously computed view is deliberately not
// served in its place - a stale graph presented as current is worse than an
// explicit failure.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/helmward/helmboard/pkg/cache"
	errs "github.com/helmward/helmboard/pkg/errors"
	"github.com/helmward/helmboard/pkg/graph"
	"github.com/helmward/helmboard/pkg/pipeline"
	"github.com/helmward/helmboard/pkg/render"
	"github.com/helmward/helmboard/pkg/store"
	"github.com/helmward/helmboard/pkg/view"
)

// Server polls the store and serves computed views.
type Server struct {
	cfg    *Config
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	seq    *pipeline.Sequencer

	mu      sync.RWMutex
	current *view.View
	failure *errs.Error
}

// New creates a server. The runner and logger may be nil, in which case an
// uncached runner and the default logger are used.
func New(cfg *Config, st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg,
		store:  st,
		runner: runner,
		logger: logger,
		seq:    pipeline.NewSequencer(),
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/view", s.handleView)
		r.Get("/view.svg", s.handleViewSVG)
		r.Get("/subsystems", s.handleSubsystems)
		r.Get("/subsystems/{id}", s.handleSubsystem)
	})
	return r
}

// Run starts the poller and the HTTP listener and blocks until ctx is
// cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	// Prime the view before accepting traffic; a failed first refresh is
	// not fatal, it just starts the server in its error state.
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("initial refresh failed", "error", err)
	}

	go s.poll(ctx)

	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// poll refreshes the view on the configured interval until ctx is cancelled.
func (s *Server) poll(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PollInterval.Duration)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("refresh failed", "error", err)
			}
		}
	}
}

// Refresh takes one snapshot, computes its view, and applies the result
// under the last-snapshot-wins guard. A data-integrity failure replaces the
// served view with the error state; a transient store failure leaves the
// previous state untouched.
func (s *Server) Refresh(ctx context.Context) error {
	// Store failures are transient by definition here (connectivity to
	// mongo, etc.), so retry a few times before giving up on this tick.
	var snap *store.Snapshot
	err := cache.RetryWithBackoff(ctx, func() error {
		fetched, err := s.store.Snapshot(ctx)
		if err != nil {
			return cache.Retryable(err)
		}
		snap = fetched
		return nil
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeStoreUnavailable, err, "snapshot fetch failed")
	}

	v, err := s.runner.Compute(ctx, snap, pipeline.Options{
		CanvasWidth:  s.cfg.Canvas.Width,
		CanvasHeight: s.cfg.Canvas.Height,
		Padding:      s.cfg.Canvas.Padding,
	})
	if err != nil {
		structured := classify(err)
		if errs.IsDataIntegrity(structured) && s.seq.Commit(snap) {
			s.mu.Lock()
			s.current = nil
			s.failure = structured
			s.mu.Unlock()
		}
		return structured
	}

	if !s.seq.Commit(snap) {
		s.logger.Debug("discarding stale result", "snapshot", snap.ID)
		return nil
	}

	s.mu.Lock()
	s.current = v
	s.failure = nil
	s.mu.Unlock()
	return nil
}

// state returns the served view or the active failure under the read lock.
func (s *Server) state() (*view.View, *errs.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.failure
}

// classify translates pipeline errors into structured API errors.
func classify(err error) *errs.Error {
	var (
		unknownDep *graph.UnknownDependencyError
		selfDep    *graph.SelfDependencyError
		cycle      *graph.CycleDetectedError
	)
	switch {
	case errors.As(err, &unknownDep):
		return errs.Wrap(errs.ErrCodeUnknownDependency, err,
			"subsystem %q depends on unknown subsystem %q", unknownDep.NodeID, unknownDep.MissingID)
	case errors.As(err, &selfDep):
		return errs.Wrap(errs.ErrCodeSelfDependency, err,
			"subsystem %q depends on itself", selfDep.NodeID)
	case errors.As(err, &cycle):
		return errs.Wrap(errs.ErrCodeCycleDetected, err,
			"dependency cycle: %s", cycle.Error())
	default:
		return errs.Wrap(errs.ErrCodeInternal, err, "computation failed")
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, failure := s.state()
	if failure != nil {
		writeError(w, http.StatusUnprocessableEntity, failure)
		return
	}
	if v == nil {
		writeError(w, http.StatusServiceUnavailable,
			errs.New(errs.ErrCodeNotFound, "no view computed yet"))
		return
	}
	data, err := view.MarshalView(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError,
			errs.Wrap(errs.ErrCodeInternal, err, "encode view"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleViewSVG(w http.ResponseWriter, r *http.Request) {
	v, failure := s.state()
	if failure != nil {
		writeError(w, http.StatusUnprocessableEntity, failure)
		return
	}
	if v == nil {
		writeError(w, http.StatusServiceUnavailable,
			errs.New(errs.ErrCodeNotFound, "no view computed yet"))
		return
	}
	svg, err := render.RenderDOTSVG(r.Context(), render.ToDOT(v))
	if err != nil {
		writeError(w, http.StatusInternalServerError,
			errs.Wrap(errs.ErrCodeInternal, err, "render svg"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// handleSubsystems serves the raw records from a fresh snapshot, bypassing
// the computed view. The scenario engine's debugging tools read this.
func (s *Server) handleSubsystems(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable,
			errs.Wrap(errs.ErrCodeStoreUnavailable, err, "snapshot fetch failed"))
		return
	}
	writeJSON(w, http.StatusOK, snap.Records)
}

// handleSubsystem serves a single record by ID. The ID is caller-controlled,
// so it is validated before it reaches the store.
func (s *Server) handleSubsystem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errs.ValidateSubsystemID(id); err != nil {
		var e *errs.Error
		errors.As(err, &e)
		writeError(w, http.StatusBadRequest, e)
		return
	}

	snap, err := s.store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable,
			errs.Wrap(errs.ErrCodeStoreUnavailable, err, "snapshot fetch failed"))
		return
	}
	for _, rec := range snap.Records {
		if rec.ID == id {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeError(w, http.StatusNotFound,
		errs.New(errs.ErrCodeNotFound, "subsystem %q not found", id))
}

// =============================================================================
// Response helpers
// =============================================================================

// apiError is the wire shape for error responses.
type apiError struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func writeError(w http.ResponseWriter, status int, e *errs.Error) {
	writeJSON(w, status, map[string]apiError{
		"error": {Code: e.Code, Message: e.Message},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
