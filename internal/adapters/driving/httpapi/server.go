// Package httpapi serves the aggregation pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

const (
	// RequestTimeout bounds one HTTP request, including every provider call.
	RequestTimeout = 60 * time.Second

	shutdownTimeout = 10 * time.Second
)

// DefaultsFunc returns the search defaults applied to parameters a client
// leaves out. It is called per request so reloaded settings take effect.
type DefaultsFunc func() domain.SearchSettings

// Server exposes search, health and metrics endpoints.
type Server struct {
	aggregator driving.AggregationService
	defaults   DefaultsFunc
	metrics    http.Handler
	router     chi.Router
}

// NewServer creates a server. metrics may be nil to omit /metrics.
// A nil defaults uses domain.DefaultAppSettings.
func NewServer(aggregator driving.AggregationService, defaults DefaultsFunc, metrics http.Handler) *Server {
	if defaults == nil {
		defaults = func() domain.SearchSettings { return domain.DefaultAppSettings().Search }
	}
	s := &Server{aggregator: aggregator, defaults: defaults, metrics: metrics}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/search", s.handleSearch)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// SearchResponse is the body of a successful /api/search call.
type SearchResponse struct {
	Query     string                  `json:"query"`
	Count     int                     `json:"count"`
	ElapsedMS int64                   `json:"elapsed_ms"`
	Sections  domain.SectionedResults `json:"sections"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	start := time.Now()
	results, err := s.aggregator.Aggregate(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:     req.TrimmedQuery(),
		Count:     results.TotalItems(),
		ElapsedMS: time.Since(start).Milliseconds(),
		Sections:  results,
	})
}

// parseRequest reads q, max, web and videos. max is passed through
// unclamped so out-of-range values are reported rather than corrected.
func (s *Server) parseRequest(r *http.Request) (domain.AggregateRequest, error) {
	q := r.URL.Query()
	defaults := s.defaults()
	req := domain.AggregateRequest{
		Query:              q.Get("q"),
		MaxItemsPerSection: domain.ClampItemsPerSection(defaults.MaxItems),
		IncludeWeb:         defaults.IncludeWeb,
		IncludeVideo:       defaults.IncludeVideos,
	}

	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("max must be an integer")
		}
		req.MaxItemsPerSection = n
	}
	if v := q.Get("web"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, errors.New("web must be true or false")
		}
		req.IncludeWeb = b
	}
	if v := q.Get("videos"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, errors.New("videos must be true or false")
		}
		req.IncludeVideo = b
	}
	return req, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.With("request_id", middleware.GetReqID(r.Context())).
			Debug("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response: %v", err)
	}
}
