package httpadapter

import (
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

const maxSuggestions = 4

var baseFollowups = []string{
	"Could you share any dates or documents related to this?",
	"Do you want guidance on filing a complaint or drafting a notice?",
}

var categoryFollowups = map[string][]string{
	domain.DomainIPC: {
		"Do you need help understanding the FIR or bail process?",
		"Were there any witnesses or medical records?",
	},
	domain.DomainCrPC: {
		"Do you need help understanding the FIR or bail process?",
		"Do you want the procedure for anticipatory bail?",
	},
	domain.DomainFamily: {
		"Do you want to discuss mediation or custody documentation?",
		"Do you need help with the maintenance or alimony process?",
	},
	domain.DomainConsumer: {
		"Do you need a draft for a consumer complaint?",
		"Do you have receipts, bills, or warranty details?",
	},
	domain.DomainProperty: {
		"Do you want a checklist for property title and registration?",
		"Do you need steps for an eviction or tenant dispute?",
	},
	domain.DomainITAct: {
		"Do you want steps for reporting a cybercrime complaint?",
		"Do you have screenshots or transaction records of the incident?",
	},
}

// SuggestFollowups returns up to four follow-up questions for the
// category: the generic pair first, then category-specific ones.
func SuggestFollowups(category string) []string {
	followups := make([]string, 0, maxSuggestions)
	followups = append(followups, baseFollowups...)
	followups = append(followups, categoryFollowups[strings.ToLower(strings.TrimSpace(category))]...)

	seen := make(map[string]struct{}, len(followups))
	unique := followups[:0]
	for _, s := range followups {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	if len(unique) > maxSuggestions {
		unique = unique[:maxSuggestions]
	}
	return unique
}
