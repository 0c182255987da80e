// Package chi exposes the ranking engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/request"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/result"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/strategy"
	healthuc "github.com/kailas-cloud/dsaranker/internal/usecase/health"
)

// Searcher runs a validated search request.
type Searcher interface {
	Search(ctx context.Context, req request.Request) (result.Page, error)
}

// PlatformLister lists the platform tags present in the corpus.
type PlatformLister interface {
	Platforms() []string
}

// HealthReporter aggregates component health.
type HealthReporter interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search API.
type Server struct {
	search        Searcher
	platforms     PlatformLister
	health        HealthReporter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, platforms PlatformLister, health HealthReporter, logger *zap.Logger) *Server {
	s := &Server{
		search:    search,
		platforms: platforms,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrModelUnavailable, http.StatusBadGateway, CodeModelUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, CodeTimeout),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/search/{strategy}", s.SearchByStrategy)
	r.Get("/api/bm25", s.fixedStrategy(strategy.BM25))
	r.Get("/api/tfidf", s.fixedStrategy(strategy.TFIDF))
	r.Get("/api/bert", s.fixedStrategy(strategy.Embedding))
	r.Get("/api/platforms", s.ListPlatforms)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
}

// SearchByStrategy handles GET /api/search/{strategy}.
func (s *Server) SearchByStrategy(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "strategy")
	strat, ok := strategy.Parse(name)
	if !ok {
		s.handleDomainError(w, r, fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidRequest, name))
		return
	}
	s.serveSearch(w, r, strat)
}

func (s *Server) fixedStrategy(strat strategy.Strategy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveSearch(w, r, strat)
	}
}

func (s *Server) serveSearch(w http.ResponseWriter, r *http.Request, strat strategy.Strategy) {
	req, err := searchRequestFromQuery(strat, r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	page, err := s.search.Search(ctx, req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, searchResponse{
		Data:  page.Data(),
		Time:  page.TimeMillis(),
		Count: page.Count(),
	})
}

// ListPlatforms handles GET /api/platforms.
func (s *Server) ListPlatforms(w http.ResponseWriter, _ *http.Request) {
	platforms := s.platforms.Platforms()
	if platforms == nil {
		platforms = []string{}
	}
	writeJSON(w, http.StatusOK, platformsResponse{Platforms: platforms})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// searchRequestFromQuery reads search parameters. "search" is the historical
// name of the query parameter; "q" is accepted as well.
func searchRequestFromQuery(strat strategy.Strategy, r *http.Request) (request.Request, error) {
	q := r.URL.Query()

	text := q.Get("q")
	if text == "" {
		text = q.Get("search")
	}

	page, err := intParam(q.Get("page"), "page")
	if err != nil {
		return request.Request{}, err
	}
	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		return request.Request{}, err
	}

	return request.New(strat, text, parseAutocorrect(q.Get("autocorrect")), q.Get("filter"), page, limit)
}

// intParam parses an optional integer parameter; empty means 0 (use default).
func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, value: raw}
	}
	return v, nil
}

// parseAutocorrect accepts "yes" as the historical spelling, plus the usual booleans.
func parseAutocorrect(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1", "on":
		return true
	default:
		return false
	}
}

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + " " + strconv.Quote(e.value) + ": must be an integer"
}

func (e *paramError) Unwrap() error { return domain.ErrInvalidRequest }

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Invalid requests carry the validation detail; other sentinels only their name.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrModelUnavailable,
		domain.ErrEmbeddingProviderError,
		context.DeadlineExceeded,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger
	if reqID := requestID(r); reqID != "" {
		log = log.With(zap.String("request_id", reqID))
	}
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
