package classifier

import (
	"log/slog"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/core/ports"
)

// learnedMinConfidence is the posterior below which the trained model's
// prediction is not trusted and the keyword heuristic decides instead.
const learnedMinConfidence = 0.5

// Tiered consults the trained model first and falls back to the
// keyword heuristic when the model is absent, cannot read the query,
// or is unsure.
type Tiered struct {
	model      *Model
	heuristic  *Heuristic
	normalizer ports.TextNormalizer
	logger     *slog.Logger
}

func NewTiered(model *Model, normalizer ports.TextNormalizer, logger *slog.Logger) *Tiered {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tiered{
		model:      model,
		heuristic:  NewHeuristic(),
		normalizer: normalizer,
		logger:     logger,
	}
}

func (t *Tiered) Classify(query string) []domain.DomainScore {
	if t.model != nil {
		label, confidence := t.model.Predict(t.normalizer.Normalize(query))
		if label != "" && confidence >= learnedMinConfidence {
			t.logger.Debug("classifier_learned_hit", "label", label, "confidence", confidence)
			return []domain.DomainScore{{Domain: label, Confidence: confidence}}
		}
	}
	return t.heuristic.Classify(query)
}
