package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/fantasy-season-service/internal/observability"
	"github.com/couchcryptid/fantasy-season-service/internal/season"
)

// SeasonSource produces season snapshots for the current or a supplied instant.
type SeasonSource interface {
	Snapshot() season.Snapshot
	SnapshotAt(t time.Time) season.Snapshot
	Calendar() season.Calendar
}

// Server exposes health, readiness, metrics, and season HTTP endpoints.
type Server struct {
	httpServer *http.Server
	seasons    SeasonSource
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /v1/season routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, seasons SeasonSource, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		seasons: seasons,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/season", s.instrument("/v1/season", s.handleSeason))
	mux.HandleFunc("GET /v1/season/standings", s.instrument("/v1/season/standings", s.handleStandings))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleSeason(w http.ResponseWriter, r *http.Request) int {
	snap, err := s.snapshotFor(r)
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return http.StatusBadRequest
	}
	if s.metrics != nil {
		s.metrics.Evaluations.Inc()
	}
	sharedobs.WriteJSON(w, http.StatusOK, snap)
	return http.StatusOK
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) int {
	snap, err := s.snapshotFor(r)
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return http.StatusBadRequest
	}
	if s.metrics != nil {
		s.metrics.Evaluations.Inc()
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"year":           snap.Year,
		"status":         snap.Status,
		"show_standings": snap.ShowStandings,
	})
	return http.StatusOK
}

// snapshotFor evaluates the instant in the optional "at" query parameter,
// falling back to the current time.
func (s *Server) snapshotFor(r *http.Request) (season.Snapshot, error) {
	at := r.URL.Query().Get("at")
	if at == "" {
		return s.seasons.Snapshot(), nil
	}
	t, err := season.ParseInstant(at, s.seasons.Calendar().Zone())
	if err != nil {
		return season.Snapshot{}, err
	}
	return s.seasons.SnapshotAt(t), nil
}

// instrument records request duration by route and status code.
func (s *Server) instrument(route string, h func(http.ResponseWriter, *http.Request) int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		code := h(w, r)
		if s.metrics != nil {
			s.metrics.HTTPRequestDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(time.Since(start).Seconds())
		}
		s.logger.Debug("season request", "route", route, "code", code, "at", r.URL.Query().Get("at"))
	}
}
