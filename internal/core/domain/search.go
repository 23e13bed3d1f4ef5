package domain

// QARecord is one immutable corpus entry. Records are produced by the
// offline indexer and never mutated at query time.
type QARecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

// IndexHit is a raw lexical-index match: a corpus row and its cosine
// similarity against the query vector.
type IndexHit struct {
	Row   int
	Score float64
}

// SearchCandidate is a transient per-query scoring unit. CombinedScore
// blends lexical and keyword scores with the configured boost weight.
type SearchCandidate struct {
	Record        QARecord
	Domain        string
	LexicalScore  float64
	KeywordScore  float64
	CombinedScore float64
}

// DomainScore is a classifier verdict for a single legal domain.
type DomainScore struct {
	Domain     string
	Confidence float64
}

// SearchResult is the orchestrator's output contract. Every field is
// always present; empty values are explicit sentinels, never absent keys.
type SearchResult struct {
	Answer       string   `json:"answer"`
	Confidence   float64  `json:"confidence"`
	Category     string   `json:"category"`
	Sources      []string `json:"sources"`
	SearchPath   []string `json:"search_path"`
	FoundMatches int      `json:"found_matches"`

	// CacheHit marks a result served from the result cache. Set on the
	// read path only; not part of the JSON contract or cached payload.
	CacheHit bool `json:"-"`
}

const (
	// CategoryUnknown is reported when no dataset yields any candidate.
	CategoryUnknown = "unknown"
	// CategoryGeneral is the classifier's low-confidence default.
	CategoryGeneral = "general"
)

// NoMatchAnswer is the deterministic terminal answer for an empty
// candidate pool. Matches the corpus-independent wording users see.
const NoMatchAnswer = "I couldn't find a relevant answer in any of the legal datasets. " +
	"Please rephrase your question with more specific details about the legal issue, " +
	"relevant sections, or acts."

// NoMatchResult returns the defined terminal outcome for a search that
// exhausted every registered domain without finding a candidate.
func NoMatchResult(searchPath []string) *SearchResult {
	if searchPath == nil {
		searchPath = []string{}
	}
	return &SearchResult{
		Answer:       NoMatchAnswer,
		Confidence:   0.0,
		Category:     CategoryUnknown,
		Sources:      []string{},
		SearchPath:   searchPath,
		FoundMatches: 0,
	}
}
