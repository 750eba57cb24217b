// Package searchapi exposes a searchindex.Collection over HTTP.
package searchapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/0xZaitsev/polaris/pkg/searchindex"
	"github.com/0xZaitsev/polaris/pkg/searchquery"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Service serves search queries against a live, hot-swappable
// Collection. Swap lets a caller (the watch-mode rebuild loop) install
// a freshly built Collection without restarting the server or
// disrupting in-flight requests — readers always see either the old or
// the new generation in full, never a half-built one.
type Service struct {
	coll    atomic.Pointer[searchindex.Collection]
	buildID atomic.Pointer[string]

	cache *ResultCache
	audit *AuditLog
}

// New returns a Service serving the given initial Collection.
func New(initial *searchindex.Collection) *Service {
	s := &Service{}
	s.Swap(initial)
	return s
}

// WithCache attaches a result cache. Returns s for chaining.
func (s *Service) WithCache(c *ResultCache) *Service {
	s.cache = c
	return s
}

// WithAudit attaches an audit log. Returns s for chaining.
func (s *Service) WithAudit(a *AuditLog) *Service {
	s.audit = a
	return s
}

// Swap installs coll as the live collection under a freshly minted
// build ID, making it visible to subsequent requests.
func (s *Service) Swap(coll *searchindex.Collection) {
	id := uuid.NewString()
	s.coll.Store(coll)
	s.buildID.Store(&id)
	slog.Info("searchapi: index generation installed", "build_id", id, "songs", coll.Catalog.Len())
}

// Routes registers search endpoints on r.
func (s *Service) Routes(r chi.Router) {
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestLogMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Get("/search", s.search)
}

func (s *Service) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type searchResponse struct {
	Query   string   `json:"query"`
	BuildID string   `json:"build_id"`
	Results []string `json:"results"`
}

func (s *Service) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeErr(w, http.StatusBadRequest, "missing required query parameter: q")
		return
	}

	buildID := *s.buildID.Load()

	if cached, ok := s.cache.Get(r.Context(), buildID, query); ok {
		writeJSON(w, http.StatusOK, searchResponse{Query: query, BuildID: buildID, Results: cached})
		return
	}

	coll := s.coll.Load()
	results, err := searchquery.FindSongs(coll, query)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	s.cache.Set(r.Context(), buildID, query, results)
	s.recordAudit(r.Context(), query, len(results), buildID)

	writeJSON(w, http.StatusOK, searchResponse{Query: query, BuildID: buildID, Results: results})
}

func (s *Service) recordAudit(ctx context.Context, query string, resultCount int, buildID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, query, resultCount, buildID); err != nil {
		slog.Warn("searchapi: audit record failed", "err", err)
	}
}

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
