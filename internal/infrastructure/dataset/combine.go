// Package dataset ingests the heterogeneous legal QA sources (JSON,
// CSV, XLSX, PDF) and combines them into one cleaned corpus for the
// indexer.
package dataset

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

const minFieldLen = 5

var wsRe = regexp.MustCompile(`\s+`)

// placeholderAnswers are outputs that carry no information; records
// with one of these answers are dropped during combination.
var placeholderAnswers = map[string]struct{}{
	"n/a":           {},
	"na":            {},
	"none":          {},
	"null":          {},
	"?":             {},
	"no answer":     {},
	"not available": {},
}

// Combine merges the loaded sources into one corpus: whitespace is
// collapsed, trivially short or self-answering rows are dropped,
// placeholder answers are removed, and exact question/answer
// duplicates are kept once, first occurrence winning.
func Combine(sources ...[]domain.QARecord) []domain.QARecord {
	seen := make(map[[2]string]struct{})
	var combined []domain.QARecord

	for _, source := range sources {
		for _, record := range source {
			record.Question = collapseWhitespace(record.Question)
			record.Answer = collapseWhitespace(record.Answer)

			if len(record.Question) < minFieldLen || len(record.Answer) < minFieldLen {
				continue
			}
			if record.Question == record.Answer {
				continue
			}
			if _, bad := placeholderAnswers[strings.ToLower(record.Answer)]; bad {
				continue
			}

			key := [2]string{record.Question, record.Answer}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			if record.Category == "" {
				record.Category = domain.CategoryGeneral
			}
			combined = append(combined, record)
		}
	}
	return combined
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
}

// CategoryForFilename infers the legal domain a source file covers
// from its name, for sources that carry no per-record category.
func CategoryForFilename(path string) string {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "consumer"):
		return domain.DomainConsumer
	case strings.Contains(name, "crpc"):
		return domain.DomainCrPC
	case strings.Contains(name, "cyber"), strings.Contains(name, "it"):
		return domain.DomainITAct
	case strings.Contains(name, "ipc"), strings.Contains(name, "criminal"):
		return domain.DomainIPC
	case strings.Contains(name, "family"):
		return domain.DomainFamily
	case strings.Contains(name, "property"):
		return domain.DomainProperty
	default:
		return domain.CategoryGeneral
	}
}
