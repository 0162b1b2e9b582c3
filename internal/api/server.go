// Package api exposes the read-only ops HTTP interface: health probes,
// Prometheus metrics, and a crawl progress snapshot. The crawl engine
// never depends on it.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kstoykov/webkin/internal/metrics"
	"github.com/kstoykov/webkin/internal/progress/sinks"
)

// Server wires the ops routes to the progress store.
type Server struct {
	router chi.Router
	store  *sinks.Store
	logger *zap.Logger
}

// NewServer constructs a Server over the given progress store.
func NewServer(store *sinks.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/v1/targets", s.getTargets)
	s.router = r
	return s
}

// Router returns the HTTP handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ops server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ops server: %w", err)
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		http.Error(w, "progress store not configured", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type targetsResponse struct {
	RunID   string              `json:"run_id"`
	Done    bool                `json:"done"`
	Targets []sinks.TargetStats `json:"targets"`
}

func (s *Server) getTargets(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		http.Error(w, "progress store not configured", http.StatusServiceUnavailable)
		return
	}
	runID, targets, done := s.store.Snapshot()
	s.writeJSON(w, http.StatusOK, targetsResponse{
		RunID:   runID.String(),
		Done:    done,
		Targets: targets,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("write response failed", zap.Error(err))
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("ops request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("dur", time.Since(start)),
		)
	})
}
