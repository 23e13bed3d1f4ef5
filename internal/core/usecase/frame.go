package usecase

import (
	"fmt"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

const (
	// Supplementary matches below this combined score are not worth
	// echoing next to the primary answer.
	supplementMinScore = 0.4
	supplementMax      = 2
	dedupePrefixLen    = 100
)

// frameCombinedAnswer builds one response out of several strong
// candidates: the primary answer first, then up to two distinct
// supplementary answers. Near-identical corpus entries (same first 100
// characters) are skipped so the response never echoes itself.
func frameCombinedAnswer(matches []domain.SearchCandidate) string {
	if len(matches) == 0 {
		return "No relevant information found."
	}

	primary := matches[0].Record.Answer
	supplementary := make([]string, 0, supplementMax)
	for _, match := range matches[1:] {
		if match.CombinedScore <= supplementMinScore {
			continue
		}
		if answerPrefix(match.Record.Answer) == answerPrefix(primary) {
			continue
		}
		supplementary = append(supplementary, match.Record.Answer)
		if len(supplementary) == supplementMax {
			break
		}
	}
	if len(supplementary) == 0 {
		return primary
	}

	var b strings.Builder
	b.WriteString(primary)
	b.WriteString("\n\n**Additional Information:**\n")
	for i, supp := range supplementary {
		b.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, supp))
	}
	return b.String()
}

func answerPrefix(answer string) string {
	if len(answer) > dedupePrefixLen {
		return answer[:dedupePrefixLen]
	}
	return answer
}

// uniqueSources collects the distinct provenance tags of the top
// candidates, preserving rank order.
func uniqueSources(matches []domain.SearchCandidate, limit int) []string {
	if limit > len(matches) {
		limit = len(matches)
	}
	seen := make(map[string]struct{}, limit)
	sources := make([]string, 0, limit)
	for _, match := range matches[:limit] {
		if _, dup := seen[match.Record.Source]; dup {
			continue
		}
		seen[match.Record.Source] = struct{}{}
		sources = append(sources, match.Record.Source)
	}
	return sources
}
