package classifier

import (
	"strings"
	"testing"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

type lowerNormalizer struct{}

func (lowerNormalizer) Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func TestHeuristicRanksMatchingDomains(t *testing.T) {
	got := NewHeuristic().Classify("What is the punishment for theft under the penal code?")

	if len(got) == 0 || got[0].Domain != domain.DomainIPC {
		t.Fatalf("expected ipc first, got %v", got)
	}
	// "punishment", "theft" and the two-word "penal code" match: 4/10.
	if got[0].Confidence != 0.4 {
		t.Fatalf("expected confidence 0.4, got %f", got[0].Confidence)
	}
}

func TestHeuristicMultiDomainQuery(t *testing.T) {
	got := NewHeuristic().Classify("arrest and bail procedure after a consumer complaint")

	names := make(map[string]bool, len(got))
	for _, ds := range got {
		names[ds.Domain] = true
	}
	if !names[domain.DomainCrPC] || !names[domain.DomainConsumer] {
		t.Fatalf("expected crpc and consumer among %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Fatalf("scores not sorted descending: %v", got)
		}
	}
}

func TestHeuristicFallsBackToGeneral(t *testing.T) {
	got := NewHeuristic().Classify("completely unrelated gibberish")
	if len(got) != 1 || got[0].Domain != domain.CategoryGeneral || got[0].Confidence != 0.1 {
		t.Fatalf("expected single general/0.1 entry, got %v", got)
	}
}

func trainingRecords() []domain.QARecord {
	return []domain.QARecord{
		{Question: "punishment for theft and murder", Category: "ipc"},
		{Question: "theft under the penal code", Category: "ipc"},
		{Question: "murder trial and sentencing", Category: "ipc"},
		{Question: "divorce petition in family court", Category: "family"},
		{Question: "child custody after divorce", Category: "family"},
		{Question: "maintenance and alimony rules", Category: "family"},
	}
}

func TestTrainPredictRoundTrip(t *testing.T) {
	model, err := Train(trainingRecords(), lowerNormalizer{})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if err := model.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	label, confidence := model.Predict("theft punishment")
	if label != "ipc" {
		t.Fatalf("Predict() label = %q, want ipc (confidence %f)", label, confidence)
	}
	if confidence <= 0 || confidence > 1 {
		t.Fatalf("Predict() confidence = %f, want within (0,1]", confidence)
	}

	label, _ = model.Predict("divorce custody")
	if label != "family" {
		t.Fatalf("Predict() label = %q, want family", label)
	}
}

func TestTrainDeterministic(t *testing.T) {
	first, err := Train(trainingRecords(), lowerNormalizer{})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	second, err := Train(trainingRecords(), lowerNormalizer{})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	if len(first.Labels) != len(second.Labels) {
		t.Fatalf("label sets differ: %v vs %v", first.Labels, second.Labels)
	}
	for i := range first.Labels {
		if first.Labels[i] != second.Labels[i] {
			t.Fatalf("label order differs: %v vs %v", first.Labels, second.Labels)
		}
	}
	for term, id := range first.Vocabulary {
		if second.Vocabulary[term] != id {
			t.Fatalf("vocabulary id for %q differs", term)
		}
	}
}

func TestTrainRejectsEmptyCorpus(t *testing.T) {
	if _, err := Train(nil, lowerNormalizer{}); !domain.IsKind(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected data-unavailable error, got %v", err)
	}
}

func TestPredictUnknownTokens(t *testing.T) {
	model, err := Train(trainingRecords(), lowerNormalizer{})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if label, confidence := model.Predict("zzz qqq"); label != "" || confidence != 0 {
		t.Fatalf("expected no prediction for unknown tokens, got %q/%f", label, confidence)
	}
}

func TestTieredShortCircuitsOnConfidentModel(t *testing.T) {
	model, err := Train(trainingRecords(), lowerNormalizer{})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	tiered := NewTiered(model, lowerNormalizer{}, nil)

	got := tiered.Classify("theft murder punishment sentencing")
	if len(got) != 1 {
		t.Fatalf("expected single learned prediction, got %v", got)
	}
	if got[0].Domain != "ipc" || got[0].Confidence < learnedMinConfidence {
		t.Fatalf("unexpected learned prediction %v", got)
	}
}

func TestTieredFallsBackWithoutModel(t *testing.T) {
	tiered := NewTiered(nil, lowerNormalizer{}, nil)

	got := tiered.Classify("how to file a consumer complaint for a defective product")
	if len(got) == 0 || got[0].Domain != domain.DomainConsumer {
		t.Fatalf("expected heuristic consumer detection, got %v", got)
	}
}

func TestModelValidateRejectsShapeMismatch(t *testing.T) {
	model := &Model{
		Labels:         []string{"a", "b"},
		Vocabulary:     map[string]int32{"x": 0},
		ClassLogPrior:  []float64{0},
		FeatureLogProb: [][]float64{{0}},
	}
	if err := model.Validate(); !domain.IsKind(err, domain.ErrMalformedArtifact) {
		t.Fatalf("expected malformed-artifact error, got %v", err)
	}
}
