// Package classifier decides which legal domains a query most likely
// belongs to. It layers a trained naive Bayes model over a keyword
// heuristic so detection degrades gracefully when no model artifact is
// available.
package classifier

import (
	"sort"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

// domainKeywords maps each legal domain to the surface terms that mark
// a query as belonging to it. Multi-word entries score higher than
// single words because they are far less ambiguous.
var domainKeywords = map[string][]string{
	domain.DomainIPC:      {"ipc", "criminal", "murder", "theft", "assault", "section", "punishment", "crime", "offense", "penal code"},
	domain.DomainConsumer: {"consumer", "defective", "product", "service", "complaint", "refund", "warranty", "forum", "seller"},
	domain.DomainCrPC:     {"crpc", "procedure", "arrest", "bail", "fir", "investigation", "trial", "magistrate", "warrant"},
	domain.DomainFamily:   {"family", "marriage", "divorce", "custody", "maintenance", "alimony", "adoption", "matrimonial"},
	domain.DomainProperty: {"property", "land", "title", "deed", "registration", "mutation", "ownership", "inheritance", "estate"},
	domain.DomainITAct:    {"cyber", "it act", "online", "internet", "hacking", "digital", "data", "privacy", "phishing", "fraud"},
}

// Heuristic scores query text against the fixed per-domain keyword
// sets. It needs no training data and is the fallback tier of the
// classifier stack.
type Heuristic struct{}

func NewHeuristic() *Heuristic { return &Heuristic{} }

// Classify returns the matching domains ranked by normalized keyword
// score. A query that matches nothing yields the single low-confidence
// "general" entry so callers always receive at least one domain.
func (h *Heuristic) Classify(query string) []domain.DomainScore {
	lower := strings.ToLower(query)

	scores := make([]domain.DomainScore, 0, len(domainKeywords))
	for name, keywords := range domainKeywords {
		score := 0
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				score += len(strings.Fields(keyword))
			}
		}
		if score > 0 {
			scores = append(scores, domain.DomainScore{
				Domain:     name,
				Confidence: float64(score) / float64(len(keywords)),
			})
		}
	}

	if len(scores) == 0 {
		return []domain.DomainScore{{Domain: domain.CategoryGeneral, Confidence: 0.1}}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Confidence != scores[j].Confidence {
			return scores[i].Confidence > scores[j].Confidence
		}
		return scores[i].Domain < scores[j].Domain
	})
	return scores
}
