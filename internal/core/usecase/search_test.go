package usecase

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/core/ports"
)

type fakeSearcher struct {
	records []domain.QARecord
	scores  []float64
	calls   int
}

func (f *fakeSearcher) Query(_ string, topK int) []domain.IndexHit {
	f.calls++
	if topK > len(f.records) {
		topK = len(f.records)
	}
	order := make([]int, len(f.records))
	for i := range order {
		order[i] = i
	}
	// Descending by fixed score, corpus order on ties.
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if f.scores[order[j]] > f.scores[order[i]] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	hits := make([]domain.IndexHit, 0, topK)
	for _, row := range order[:topK] {
		hits = append(hits, domain.IndexHit{Row: row, Score: f.scores[row]})
	}
	return hits
}

func (f *fakeSearcher) Record(row int) (domain.QARecord, bool) {
	if row < 0 || row >= len(f.records) {
		return domain.QARecord{}, false
	}
	return f.records[row], true
}

func (f *fakeSearcher) Size() int { return len(f.records) }

type fakeRegistry struct {
	searchers map[string]*fakeSearcher
	order     []string
}

func (r *fakeRegistry) Searcher(name string) (ports.DomainSearcher, bool) {
	s, ok := r.searchers[name]
	if !ok {
		return nil, false
	}
	return s, true
}

func (r *fakeRegistry) Domains() []string { return r.order }

type fakeClassifier struct {
	ranked []domain.DomainScore
}

func (c *fakeClassifier) Classify(string) []domain.DomainScore { return c.ranked }

type rawNormalizer struct{}

func (rawNormalizer) Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func record(category, source, question, answer string) domain.QARecord {
	return domain.QARecord{Question: question, Answer: answer, Category: category, Source: source}
}

func newEngine(registry *fakeRegistry, classifier *fakeClassifier) *SearchEngine {
	return NewSearchEngine(registry, classifier, rawNormalizer{}, nil, nil, DefaultConfig())
}

func testRegistry() *fakeRegistry {
	return &fakeRegistry{
		searchers: map[string]*fakeSearcher{
			domain.DomainIPC: {
				records: []domain.QARecord{
					record("ipc", "IndianLaws", "What is the punishment for theft?", "Theft is punishable under the penal code."),
					record("ipc", "IndianLaws", "What is Section 420?", "Section 420 covers cheating and dishonesty."),
				},
				scores: []float64{0.9, 0.5},
			},
			domain.DomainConsumer: {
				records: []domain.QARecord{
					record("consumer", "ConsumerActs", "How to file a consumer complaint?", "File the complaint before the district forum."),
				},
				scores: []float64{0.85},
			},
			domain.DomainFamily: {
				records: []domain.QARecord{
					record("family", "FamilyLaw", "How to get a divorce?", "A divorce petition is filed in family court."),
				},
				scores: []float64{1.0},
			},
			domain.GlobalDomain: {
				records: []domain.QARecord{
					record("general", "Combined", "What is a legal notice?", "A legal notice is a formal intimation."),
				},
				scores: []float64{0.2},
			},
		},
		order: []string{domain.DomainIPC, domain.DomainConsumer, domain.DomainFamily},
	}
}

func TestSearchDeterministic(t *testing.T) {
	registry := testRegistry()
	engine := newEngine(registry, &fakeClassifier{ranked: []domain.DomainScore{{Domain: "ipc", Confidence: 0.4}}})

	first, err := engine.Search(context.Background(), "punishment for theft", ports.SearchOptions{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	second, err := engine.Search(context.Background(), "punishment for theft", ports.SearchOptions{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("search not deterministic:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestSearchEmptyQuerySafe(t *testing.T) {
	registry := testRegistry()
	for _, s := range registry.searchers {
		for i := range s.scores {
			s.scores[i] = 0
		}
	}
	engine := newEngine(registry, &fakeClassifier{ranked: []domain.DomainScore{{Domain: domain.CategoryGeneral, Confidence: 0.1}}})

	result, err := engine.Search(context.Background(), "", ports.SearchOptions{})
	if err != nil {
		t.Fatalf("Search(\"\") error = %v", err)
	}
	if result.Confidence != 0.0 || result.FoundMatches != 0 || result.Category != domain.CategoryUnknown {
		t.Fatalf("expected no-match result, got %+v", result)
	}
	if result.Answer != domain.NoMatchAnswer {
		t.Fatalf("expected deterministic no-match answer, got %q", result.Answer)
	}
}

func TestSearchHintShortCircuit(t *testing.T) {
	registry := testRegistry()
	engine := newEngine(registry, &fakeClassifier{ranked: []domain.DomainScore{{Domain: "ipc", Confidence: 0.9}}})

	result, err := engine.Search(context.Background(), "How to file a consumer complaint?", ports.SearchOptions{DomainHint: "consumer"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.SearchPath) != 1 || result.SearchPath[0] != "consumer (hinted)" {
		t.Fatalf("expected single hinted search-path entry, got %v", result.SearchPath)
	}
	if result.Category != "consumer" {
		t.Fatalf("expected hinted category, got %q", result.Category)
	}
	if registry.searchers[domain.DomainIPC].calls != 0 {
		t.Fatalf("hint short-circuit still queried ipc index %d times", registry.searchers[domain.DomainIPC].calls)
	}
	if registry.searchers[domain.GlobalDomain].calls != 0 {
		t.Fatalf("hint short-circuit still queried global index")
	}
}

func TestSearchFallbackCompleteness(t *testing.T) {
	registry := testRegistry()
	// Primary detection points at ipc, but only family holds the
	// perfectly matching record.
	registry.searchers[domain.DomainIPC].scores = []float64{0.05, 0.01}
	engine := newEngine(registry, &fakeClassifier{ranked: []domain.DomainScore{{Domain: "ipc", Confidence: 0.6}}})

	result, err := engine.Search(context.Background(), "How to get a divorce?", ports.SearchOptions{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Category != "family" {
		t.Fatalf("expected fallback to surface family record, got category %q (result %+v)", result.Category, result)
	}
	if !containsEntry(result.SearchPath, "all_datasets (fallback)") {
		t.Fatalf("expected fallback trace entry, got %v", result.SearchPath)
	}
	if !containsEntry(result.SearchPath, "global_model") {
		t.Fatalf("expected global trace entry, got %v", result.SearchPath)
	}
}

func TestSearchThresholdMonotonicity(t *testing.T) {
	registry := testRegistry()
	classifier := &fakeClassifier{ranked: []domain.DomainScore{{Domain: "ipc", Confidence: 0.7}}}

	low, err := newEngine(testRegistry(), classifier).Search(context.Background(), "punishment for theft", ports.SearchOptions{Threshold: 0.3})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	high, err := newEngine(registry, classifier).Search(context.Background(), "punishment for theft", ports.SearchOptions{Threshold: 0.95})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if containsEntry(low.SearchPath, "all_datasets (fallback)") {
		t.Fatalf("low threshold should not have triggered fallback: %v", low.SearchPath)
	}
	if !containsEntry(high.SearchPath, "all_datasets (fallback)") {
		t.Fatalf("high threshold should have triggered fallback: %v", high.SearchPath)
	}
}

func TestSearchMissingDomainSkipped(t *testing.T) {
	registry := testRegistry()
	delete(registry.searchers, domain.DomainFamily)
	engine := newEngine(registry, &fakeClassifier{ranked: []domain.DomainScore{{Domain: "family", Confidence: 0.8}}})

	result, err := engine.Search(context.Background(), "divorce custody maintenance", ports.SearchOptions{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, entry := range result.SearchPath {
		if strings.HasPrefix(entry, "family") {
			t.Fatalf("missing family index must not appear in search path: %v", result.SearchPath)
		}
	}
}

func TestSearchKeywordScoreZeroWhenNoKeywords(t *testing.T) {
	registry := testRegistry()
	engine := newEngine(registry, &fakeClassifier{ranked: []domain.DomainScore{{Domain: "ipc", Confidence: 0.5}}})

	candidates := engine.searchDomain("zzz qqq", "zzz qqq", domain.DomainIPC, 5)
	for _, c := range candidates {
		if c.KeywordScore != 0 {
			t.Fatalf("expected zero keyword score, got %f", c.KeywordScore)
		}
		want := 0.6 * c.LexicalScore
		if diff := c.CombinedScore - want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("combined %f should equal 0.6*lexical %f", c.CombinedScore, want)
		}
	}
	if len(candidates) == 0 {
		t.Fatalf("expected lexical-only candidates")
	}
}

type memoryCache struct {
	entries map[string]*domain.SearchResult
}

func (c *memoryCache) Get(_ context.Context, key string) (*domain.SearchResult, bool) {
	result, ok := c.entries[key]
	return result, ok
}

func (c *memoryCache) Set(_ context.Context, key string, result *domain.SearchResult, _ time.Duration) {
	c.entries[key] = result
}

func TestSearchMarksCacheHits(t *testing.T) {
	registry := testRegistry()
	cache := &memoryCache{entries: map[string]*domain.SearchResult{}}
	engine := NewSearchEngine(registry, &fakeClassifier{ranked: []domain.DomainScore{{Domain: "ipc", Confidence: 0.4}}},
		rawNormalizer{}, cache, nil, DefaultConfig())

	first, err := engine.Search(context.Background(), "punishment for theft", ports.SearchOptions{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if first.CacheHit {
		t.Fatalf("fresh result must not be marked as a cache hit")
	}

	second, err := engine.Search(context.Background(), "punishment for theft", ports.SearchOptions{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !second.CacheHit {
		t.Fatalf("repeated query should be served from the cache")
	}
	if second.Answer != first.Answer || second.Confidence != first.Confidence {
		t.Fatalf("cached result diverged: first %+v, second %+v", first, second)
	}
}

func containsEntry(path []string, entry string) bool {
	for _, p := range path {
		if p == entry {
			return true
		}
	}
	return false
}
