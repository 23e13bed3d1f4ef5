package classifier

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/core/ports"
)

var errNoTrainingData = errors.New("no labeled records to train on")

// Train fits a multinomial naive Bayes model on the corpus questions,
// labeled by record category. Labels and vocabulary are sorted so the
// same corpus always produces an identical artifact.
func Train(records []domain.QARecord, normalizer ports.TextNormalizer) (*Model, error) {
	tokensByLabel := make(map[string][][]string)
	for _, record := range records {
		label := strings.TrimSpace(record.Category)
		if label == "" {
			label = domain.CategoryGeneral
		}
		tokens := strings.Fields(normalizer.Normalize(record.Question))
		if len(tokens) == 0 {
			continue
		}
		tokensByLabel[label] = append(tokensByLabel[label], tokens)
	}
	if len(tokensByLabel) == 0 {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "classifier.train", errNoTrainingData)
	}

	labels := make([]string, 0, len(tokensByLabel))
	for label := range tokensByLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	vocabSet := make(map[string]struct{})
	for _, docs := range tokensByLabel {
		for _, doc := range docs {
			for _, token := range doc {
				vocabSet[token] = struct{}{}
			}
		}
	}
	terms := make([]string, 0, len(vocabSet))
	for term := range vocabSet {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int32, len(terms))
	for i, term := range terms {
		vocabulary[term] = int32(i)
	}

	totalDocs := 0
	for _, docs := range tokensByLabel {
		totalDocs += len(docs)
	}

	priors := make([]float64, len(labels))
	likelihoods := make([][]float64, len(labels))
	for class, label := range labels {
		docs := tokensByLabel[label]
		priors[class] = math.Log(float64(len(docs)) / float64(totalDocs))

		counts := make([]float64, len(terms))
		classTotal := 0.0
		for _, doc := range docs {
			for _, token := range doc {
				counts[vocabulary[token]]++
				classTotal++
			}
		}

		// Laplace smoothing with alpha = 1.
		row := make([]float64, len(terms))
		denom := classTotal + float64(len(terms))
		for term := range counts {
			row[term] = math.Log((counts[term] + 1) / denom)
		}
		likelihoods[class] = row
	}

	return &Model{
		Labels:         labels,
		Vocabulary:     vocabulary,
		ClassLogPrior:  priors,
		FeatureLogProb: likelihoods,
	}, nil
}
