// Package httpadapter exposes the search engine over HTTP.
package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/core/ports"
	"github.com/nyayashield/legal-answer-engine/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	search  ports.LegalSearchService
	queue   ports.ReindexQueue
	metrics *metrics.HTTPServerMetrics
	logger  *slog.Logger

	rateLimitRPS   float64
	rateLimitBurst int
	maxInFlight    int
}

type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
}

func NewRouter(
	search ports.LegalSearchService,
	queue ports.ReindexQueue,
	m *metrics.HTTPServerMetrics,
	logger *slog.Logger,
	opts Options,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		search:         search,
		queue:          queue,
		metrics:        m,
		logger:         logger,
		rateLimitRPS:   opts.RateLimitRPS,
		rateLimitBurst: opts.RateLimitBurst,
		maxInFlight:    opts.MaxInFlight,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/search", rt.searchHandler)
	mux.HandleFunc("/v1/domains", rt.domainsHandler)
	mux.HandleFunc("/v1/suggestions", rt.suggestionsHandler)
	mux.HandleFunc("/v1/reindex", rt.reindexHandler)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.maxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.maxInFlight, 50*time.Millisecond)
	}
	if rt.rateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	}
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(rt.logger, handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type searchRequest struct {
	Question  string  `json:"question"`
	Category  string  `json:"category"`
	Threshold float64 `json:"threshold"`
}

type searchResponse struct {
	*domain.SearchResult
	SuggestedQuestions []string `json:"suggested_questions"`
}

func (rt *Router) searchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	start := time.Now()
	result, err := rt.search.Search(r.Context(), req.Question, ports.SearchOptions{
		DomainHint: req.Category,
		Threshold:  req.Threshold,
	})
	if err != nil {
		rt.logger.Error("search_failed",
			"request_id", requestIDFromContext(r.Context()), "error", err)
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	rt.recordSearch(result, time.Since(start))

	writeJSON(w, http.StatusOK, searchResponse{
		SearchResult:       result,
		SuggestedQuestions: SuggestFollowups(result.Category),
	})
}

func (rt *Router) recordSearch(result *domain.SearchResult, elapsed time.Duration) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordSearch(serviceName, searchOutcome(result), result.FoundMatches, result.Confidence, elapsed)
	if result.CacheHit {
		// The fallback sweep recorded in the search path ran when the
		// result was first computed, not on this request.
		return
	}
	for _, step := range result.SearchPath {
		if step == "all_datasets (fallback)" {
			rt.metrics.RecordFallback(serviceName)
			break
		}
	}
}

func searchOutcome(result *domain.SearchResult) metrics.SearchOutcome {
	switch {
	case result.CacheHit:
		return metrics.OutcomeCacheHit
	case result.FoundMatches == 0:
		return metrics.OutcomeNoMatch
	default:
		return metrics.OutcomeMatched
	}
}

func (rt *Router) domainsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"domains": rt.search.RegisteredDomains()})
}

func (rt *Router) suggestionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	category := r.URL.Query().Get("category")
	writeJSON(w, http.StatusOK, map[string]any{
		"category":    category,
		"suggestions": SuggestFollowups(category),
	})
}

func (rt *Router) reindexHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "reindex queue not configured"})
		return
	}

	var req struct {
		Domain string `json:"domain"`
	}
	if r.Body != nil {
		// Body is optional; an empty request reindexes everything.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Domain != "" && !domain.KnownDomain(req.Domain) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown domain: " + req.Domain})
		return
	}

	if err := rt.queue.PublishReindexRequested(r.Context(), req.Domain); err != nil {
		rt.logger.Error("reindex_publish_failed",
			"request_id", requestIDFromContext(r.Context()), "error", err)
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued", "domain": req.Domain})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
