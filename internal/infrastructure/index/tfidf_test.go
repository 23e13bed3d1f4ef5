package index

import (
	"strings"
	"testing"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

// passthroughNormalizer keeps tests independent of the real pipeline.
type passthroughNormalizer struct{}

func (passthroughNormalizer) Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func corpus() []domain.QARecord {
	return []domain.QARecord{
		{Question: "punishment for theft under penal code", Answer: "a1", Category: "ipc", Source: "s1"},
		{Question: "how to file consumer complaint refund", Answer: "a2", Category: "consumer", Source: "s2"},
		{Question: "bail procedure after arrest warrant", Answer: "a3", Category: "crpc", Source: "s3"},
		{Question: "divorce custody maintenance family court", Answer: "a4", Category: "family", Source: "s4"},
		{Question: "property registration title deed process", Answer: "a5", Category: "property", Source: "s5"},
	}
}

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	artifact, err := Build("test", corpus(), passthroughNormalizer{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ix, err := FromArtifact(artifact)
	if err != nil {
		t.Fatalf("FromArtifact() error = %v", err)
	}
	return ix
}

func TestBuildAlignsRowsWithRecords(t *testing.T) {
	artifact, err := Build("test", corpus(), passthroughNormalizer{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(artifact.Rows) != len(artifact.Records) {
		t.Fatalf("rows %d != records %d", len(artifact.Rows), len(artifact.Records))
	}
	if len(artifact.IDF) != len(artifact.Vocabulary) {
		t.Fatalf("idf %d != vocabulary %d", len(artifact.IDF), len(artifact.Vocabulary))
	}
}

func TestBuildRejectsEmptyCorpus(t *testing.T) {
	if _, err := Build("test", nil, passthroughNormalizer{}); err == nil {
		t.Fatalf("expected error for empty corpus")
	}
}

func TestQueryRanksBestMatchFirst(t *testing.T) {
	ix := buildTestIndex(t)
	hits := ix.Query("punishment for theft", 3)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].Row != 0 {
		t.Fatalf("expected theft record ranked first, got row %d", hits[0].Row)
	}
	if hits[0].Score <= 0 {
		t.Fatalf("expected positive score for overlapping query, got %f", hits[0].Score)
	}
	if hits[0].Score > 1.0000001 {
		t.Fatalf("cosine similarity above 1: %f", hits[0].Score)
	}
}

func TestQueryDeterministic(t *testing.T) {
	ix := buildTestIndex(t)
	first := ix.Query("consumer complaint refund", 5)
	second := ix.Query("consumer complaint refund", 5)
	if len(first) != len(second) {
		t.Fatalf("hit count differs between runs")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("hit %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestQueryZeroOverlapReturnsTopKInCorpusOrder(t *testing.T) {
	ix := buildTestIndex(t)
	hits := ix.Query("zzz qqq xxx", 3)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits for zero-overlap query, got %d", len(hits))
	}
	for i, hit := range hits {
		if hit.Score != 0 {
			t.Fatalf("expected zero score, got %f", hit.Score)
		}
		if hit.Row != i {
			t.Fatalf("expected corpus-order tie break, hit %d has row %d", i, hit.Row)
		}
	}
}

func TestQueryTopKBoundedByCorpusSize(t *testing.T) {
	ix := buildTestIndex(t)
	hits := ix.Query("theft", 50)
	if len(hits) != ix.Size() {
		t.Fatalf("expected %d hits, got %d", ix.Size(), len(hits))
	}
}

func TestFromArtifactRejectsMisalignedRows(t *testing.T) {
	artifact, err := Build("test", corpus(), passthroughNormalizer{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	artifact.Rows = artifact.Rows[:len(artifact.Rows)-1]
	if _, err := FromArtifact(artifact); !domain.IsKind(err, domain.ErrMalformedArtifact) {
		t.Fatalf("expected ErrMalformedArtifact, got %v", err)
	}
}

func TestRecordLookup(t *testing.T) {
	ix := buildTestIndex(t)
	rec, ok := ix.Record(1)
	if !ok || rec.Category != "consumer" {
		t.Fatalf("Record(1) = %+v, %v", rec, ok)
	}
	if _, ok := ix.Record(99); ok {
		t.Fatalf("expected out-of-range lookup to fail")
	}
}
