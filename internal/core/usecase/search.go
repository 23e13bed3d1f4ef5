package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/core/ports"
)

// Config carries the orchestrator's tunables. Defaults follow the
// original engine: a minority keyword contribution and a "weak but
// usable" cosine threshold.
type Config struct {
	DefaultThreshold   float64
	KeywordBoostWeight float64
	PrimaryTopK        int
	FallbackTopK       int
	GlobalTopK         int
	MaxDetectedDomains int
	CacheTTL           time.Duration
}

func DefaultConfig() Config {
	return Config{
		DefaultThreshold:   0.3,
		KeywordBoostWeight: 0.4,
		PrimaryTopK:        5,
		FallbackTopK:       3,
		GlobalTopK:         5,
		MaxDetectedDomains: 2,
		CacheTTL:           5 * time.Minute,
	}
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()

	if out.DefaultThreshold <= 0 || out.DefaultThreshold > 1 {
		out.DefaultThreshold = def.DefaultThreshold
	}
	if out.KeywordBoostWeight < 0 || out.KeywordBoostWeight > 1 {
		out.KeywordBoostWeight = def.KeywordBoostWeight
	}
	if out.PrimaryTopK <= 0 {
		out.PrimaryTopK = def.PrimaryTopK
	}
	if out.FallbackTopK <= 0 {
		out.FallbackTopK = def.FallbackTopK
	}
	if out.GlobalTopK <= 0 {
		out.GlobalTopK = def.GlobalTopK
	}
	if out.MaxDetectedDomains <= 0 {
		out.MaxDetectedDomains = def.MaxDetectedDomains
	}
	if out.CacheTTL <= 0 {
		out.CacheTTL = def.CacheTTL
	}
	return out
}

// SearchEngine is the multi-domain search orchestrator: it decides which
// indices to consult, blends lexical similarity with keyword boosting,
// falls back across domains when the primary search is weak, and frames
// the final answer.
type SearchEngine struct {
	registry   ports.IndexRegistry
	classifier ports.DomainClassifier
	normalizer ports.TextNormalizer
	cache      ports.ResultCache
	logger     *slog.Logger
	cfg        Config
}

func NewSearchEngine(
	registry ports.IndexRegistry,
	classifier ports.DomainClassifier,
	normalizer ports.TextNormalizer,
	cache ports.ResultCache,
	logger *slog.Logger,
	cfg Config,
) *SearchEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchEngine{
		registry:   registry,
		classifier: classifier,
		normalizer: normalizer,
		cache:      cache,
		logger:     logger,
		cfg:        cfg.normalize(),
	}
}

func (e *SearchEngine) RegisteredDomains() []string {
	return e.registry.Domains()
}

// Search implements the caller contract: it never fails for reachable
// input. Empty queries and queries without any corpus overlap produce
// the deterministic no-match result.
func (e *SearchEngine) Search(ctx context.Context, query string, opts ports.SearchOptions) (*domain.SearchResult, error) {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = e.cfg.DefaultThreshold
	}

	cacheKey := resultCacheKey(query, opts.DomainHint, threshold)
	if e.cache != nil {
		if cached, ok := e.cache.Get(ctx, cacheKey); ok {
			cached.CacheHit = true
			return cached, nil
		}
	}

	normalized := e.normalizer.Normalize(query)

	// Domain-hint short-circuit: a caller that already knows the domain
	// (a domain-scoped page) skips detection entirely when the hinted
	// index alone clears the threshold.
	if hint := strings.TrimSpace(opts.DomainHint); hint != "" {
		if result, ok := e.searchHinted(query, normalized, hint, threshold); ok {
			e.store(ctx, cacheKey, result)
			return result, nil
		}
	}

	result := e.searchAllDatasets(query, normalized, threshold)
	e.store(ctx, cacheKey, result)
	return result, nil
}

func (e *SearchEngine) searchHinted(query, normalized, hint string, threshold float64) (*domain.SearchResult, bool) {
	candidates := e.searchDomain(query, normalized, hint, e.cfg.PrimaryTopK)
	if len(candidates) == 0 || candidates[0].CombinedScore < threshold {
		return nil, false
	}

	best := candidates[0]
	return &domain.SearchResult{
		Answer:       best.Record.Answer,
		Confidence:   best.CombinedScore,
		Category:     hint,
		Sources:      []string{best.Record.Source},
		SearchPath:   []string{hint + " (hinted)"},
		FoundMatches: len(candidates),
	}, true
}

// searchAllDatasets runs the full state machine: DOMAIN_DETECTED ->
// PRIMARY_SEARCHED -> (THRESHOLD_MET | FALLBACK_SEARCHED) -> RANKED ->
// FRAMED.
func (e *SearchEngine) searchAllDatasets(query, normalized string, threshold float64) *domain.SearchResult {
	searchPath := []string{}
	pool := []domain.SearchCandidate{}

	detected := e.classifier.Classify(query)
	if len(detected) > e.cfg.MaxDetectedDomains {
		detected = detected[:e.cfg.MaxDetectedDomains]
	}

	searchedDomains := make(map[string]struct{}, len(detected))
	for _, ds := range detected {
		if _, ok := e.registry.Searcher(ds.Domain); !ok {
			continue
		}
		searchedDomains[ds.Domain] = struct{}{}
		searchPath = append(searchPath, fmt.Sprintf("%s (detected: %.2f)", ds.Domain, ds.Confidence))
		pool = append(pool, e.searchDomain(query, normalized, ds.Domain, e.cfg.PrimaryTopK)...)
	}

	best := bestScore(pool)
	if best < threshold {
		searchPath = append(searchPath, "all_datasets (fallback)")
		for _, name := range e.registry.Domains() {
			if _, done := searchedDomains[name]; done {
				continue
			}
			pool = append(pool, e.searchDomain(query, normalized, name, e.cfg.FallbackTopK)...)
		}
		if _, ok := e.registry.Searcher(domain.GlobalDomain); ok {
			searchPath = append(searchPath, "global_model")
			pool = append(pool, e.searchDomain(query, normalized, domain.GlobalDomain, e.cfg.GlobalTopK)...)
		}
	}

	if len(pool) == 0 {
		return domain.NoMatchResult(searchPath)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].CombinedScore > pool[j].CombinedScore
	})

	bestMatch := pool[0]
	answer := bestMatch.Record.Answer
	if len(pool) > 1 && pool[1].CombinedScore > threshold*0.8 {
		answer = frameCombinedAnswer(pool[:min(3, len(pool))])
	}

	return &domain.SearchResult{
		Answer:       answer,
		Confidence:   bestMatch.CombinedScore,
		Category:     bestMatch.Record.Category,
		Sources:      uniqueSources(pool, 5),
		SearchPath:   searchPath,
		FoundMatches: len(pool),
	}
}

// searchDomain runs one index lookup and applies the keyword booster to
// each hit. A failure inside a single domain search is contained here:
// it yields zero candidates and a log line, never an aborted search.
func (e *SearchEngine) searchDomain(query, normalized, name string, topK int) (out []domain.SearchCandidate) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("domain_search_failed", "domain", name, "panic", r)
			out = nil
		}
	}()

	searcher, ok := e.registry.Searcher(name)
	if !ok {
		return nil
	}

	w := e.cfg.KeywordBoostWeight
	for _, hit := range searcher.Query(normalized, topK) {
		record, ok := searcher.Record(hit.Row)
		if !ok {
			continue
		}
		kw := keywordScore(query, record.Question, record.Answer)
		combined := (1-w)*hit.Score + w*kw
		if combined <= 0 {
			continue
		}
		out = append(out, domain.SearchCandidate{
			Record:        record,
			Domain:        name,
			LexicalScore:  hit.Score,
			KeywordScore:  kw,
			CombinedScore: combined,
		})
	}
	return out
}

func (e *SearchEngine) store(ctx context.Context, key string, result *domain.SearchResult) {
	if e.cache == nil {
		return
	}
	e.cache.Set(ctx, key, result, e.cfg.CacheTTL)
}

func bestScore(pool []domain.SearchCandidate) float64 {
	best := 0.0
	for _, c := range pool {
		if c.CombinedScore > best {
			best = c.CombinedScore
		}
	}
	return best
}

func resultCacheKey(query, hint string, threshold float64) string {
	return fmt.Sprintf("search:%s|%s|%.4f", strings.ToLower(strings.TrimSpace(query)), hint, threshold)
}
