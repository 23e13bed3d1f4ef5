package ports

import (
	"context"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

// SearchOptions carries the caller-tunable knobs of a search. Zero
// values fall back to configured defaults inside the orchestrator.
type SearchOptions struct {
	// DomainHint pins the initial search to one domain (e.g. a
	// domain-scoped UI page). Empty means automatic domain detection.
	DomainHint string
	// Threshold is the minimum combined score considered a confident
	// match; below it the orchestrator falls back to all other domains.
	Threshold float64
}

// LegalSearchService is the sole entry point the transport layers
// invoke. Implementations never fail for reachable input: empty or
// unmatched queries produce a no-match SearchResult, not an error.
type LegalSearchService interface {
	Search(ctx context.Context, query string, opts SearchOptions) (*domain.SearchResult, error)
	// RegisteredDomains lists the domains whose indices are loaded.
	RegisteredDomains() []string
}
