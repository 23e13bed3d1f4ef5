package classifier

import (
	"errors"
	"math"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

var (
	errNoLabels      = errors.New("classifier model has no labels")
	errShapeMismatch = errors.New("classifier model arrays disagree on shape")
)

// Model is a trained multinomial naive Bayes text classifier over the
// normalized token vocabulary. It is persisted alongside the search
// indices and rebuilt by the same reindex run.
type Model struct {
	Labels        []string
	Vocabulary    map[string]int32
	ClassLogPrior []float64
	// FeatureLogProb[class][term] holds the Laplace-smoothed log
	// likelihood of term under class.
	FeatureLogProb [][]float64
}

// Validate checks the shape invariants a loaded artifact must satisfy
// before Predict may dereference it.
func (m *Model) Validate() error {
	if len(m.Labels) == 0 {
		return domain.WrapError(domain.ErrMalformedArtifact, "classifier.validate", errNoLabels)
	}
	if len(m.ClassLogPrior) != len(m.Labels) || len(m.FeatureLogProb) != len(m.Labels) {
		return domain.WrapError(domain.ErrMalformedArtifact, "classifier.validate", errShapeMismatch)
	}
	for _, row := range m.FeatureLogProb {
		if len(row) != len(m.Vocabulary) {
			return domain.WrapError(domain.ErrMalformedArtifact, "classifier.validate", errShapeMismatch)
		}
	}
	return nil
}

// Predict scores the normalized query against every class and returns
// the most likely label with its posterior probability. Tokens outside
// the training vocabulary are ignored; a query with no known tokens
// predicts nothing.
func (m *Model) Predict(normalized string) (string, float64) {
	tokens := strings.Fields(normalized)

	logScores := make([]float64, len(m.Labels))
	copy(logScores, m.ClassLogPrior)

	known := 0
	for _, token := range tokens {
		term, ok := m.Vocabulary[token]
		if !ok {
			continue
		}
		known++
		for class := range logScores {
			logScores[class] += m.FeatureLogProb[class][term]
		}
	}
	if known == 0 {
		return "", 0
	}

	// Softmax over log scores, shifted by the max for stability.
	maxScore := logScores[0]
	best := 0
	for i, s := range logScores {
		if s > maxScore {
			maxScore = s
			best = i
		}
	}
	var total float64
	for _, s := range logScores {
		total += math.Exp(s - maxScore)
	}
	return m.Labels[best], 1.0 / total
}
