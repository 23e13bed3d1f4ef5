package ports

import (
	"context"
	"time"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

// DomainSearcher answers nearest-neighbor lookups against one domain's
// lexical index. Query text must already be normalized with the same
// pipeline used at index-build time.
type DomainSearcher interface {
	// Query returns up to topK hits ordered by descending similarity,
	// ties broken by corpus order. An all-zero query vector still yields
	// topK hits with score 0; callers treat 0 as "no match".
	Query(normalized string, topK int) []domain.IndexHit
	// Record returns the corpus entry backing matrix row i.
	Record(row int) (domain.QARecord, bool)
	// Size reports the number of corpus rows.
	Size() int
}

// IndexRegistry is the read-only view over the loaded domain indices.
// Populated once before any query touches it; absence of a domain means
// that domain is skipped during search, not an error.
type IndexRegistry interface {
	Searcher(name string) (DomainSearcher, bool)
	// Domains lists the registered per-domain indices in canonical
	// order, excluding the global catch-all.
	Domains() []string
}

// DomainClassifier assigns a query to legal domains with confidence.
// The concrete variant (learned, heuristic, or tiered) is selected once
// at registry construction, not re-detected per call.
type DomainClassifier interface {
	// Classify returns candidate domains ranked by descending
	// confidence. An unclassifiable query yields a single
	// ("general", 0.1) entry, never an error.
	Classify(query string) []domain.DomainScore
}

// TextNormalizer canonicalizes free text for index comparability. Must
// be deterministic, pure, and idempotent.
type TextNormalizer interface {
	Normalize(text string) string
}

// ResultCache memoizes final search results for hot queries. A nil or
// no-op implementation is valid; the cache is an optimization, never a
// correctness dependency.
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.SearchResult, bool)
	Set(ctx context.Context, key string, result *domain.SearchResult, ttl time.Duration)
}

// CorpusRepository persists the combined QA corpus produced by the
// dataset ETL and feeds index builds.
type CorpusRepository interface {
	EnsureSchema(ctx context.Context) error
	ReplaceAll(ctx context.Context, records []domain.QARecord) error
	ListAll(ctx context.Context) ([]domain.QARecord, error)
	ListByCategory(ctx context.Context, category string) ([]domain.QARecord, error)
}

// ReindexQueue carries rebuild requests from the API to the worker.
type ReindexQueue interface {
	PublishReindexRequested(ctx context.Context, domainName string) error
	SubscribeReindexRequested(ctx context.Context, handler func(context.Context, string) error) error
}
