package index

import (
	"math"
	"sort"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

// TermWeight is one non-zero component of a sparse TF-IDF vector, with
// term ids ascending within a row.
type TermWeight struct {
	Term   int32
	Weight float64
}

// Artifact is the persistable form of one domain index: the fitted
// vocabulary and IDF weights, the L2-normalized row vectors, and the
// row-aligned corpus. Row i of Rows always corresponds to Records[i].
type Artifact struct {
	Domain     string
	Vocabulary map[string]int32
	IDF        []float64
	Rows       [][]TermWeight
	Records    []domain.QARecord
}

// Validate enforces the row/record alignment invariant and the presence
// of the fitted transform.
func (a *Artifact) Validate() error {
	switch {
	case a == nil:
		return domain.ErrMalformedArtifact
	case len(a.Vocabulary) == 0:
		return domain.WrapError(domain.ErrMalformedArtifact, "artifact "+a.Domain, errEmptyVocabulary)
	case len(a.IDF) != len(a.Vocabulary):
		return domain.WrapError(domain.ErrMalformedArtifact, "artifact "+a.Domain, errIDFMismatch)
	case len(a.Rows) != len(a.Records):
		return domain.WrapError(domain.ErrMalformedArtifact, "artifact "+a.Domain, errRowMismatch)
	}
	return nil
}

type posting struct {
	row    int32
	weight float64
}

// Index is an in-memory domain index ready for querying. Immutable after
// construction, safe for concurrent readers without locking.
type Index struct {
	artifact *Artifact
	postings [][]posting
}

// FromArtifact validates a loaded artifact and builds the inverted
// posting lists used for cosine scoring.
func FromArtifact(a *Artifact) (*Index, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	postings := make([][]posting, len(a.Vocabulary))
	for row, vec := range a.Rows {
		for _, tw := range vec {
			if int(tw.Term) < 0 || int(tw.Term) >= len(postings) {
				return nil, domain.WrapError(domain.ErrMalformedArtifact, "artifact "+a.Domain, errTermOutOfRange)
			}
			postings[tw.Term] = append(postings[tw.Term], posting{row: int32(row), weight: tw.Weight})
		}
	}
	return &Index{artifact: a, postings: postings}, nil
}

func (ix *Index) Size() int {
	return len(ix.artifact.Records)
}

func (ix *Index) Record(row int) (domain.QARecord, bool) {
	if row < 0 || row >= len(ix.artifact.Records) {
		return domain.QARecord{}, false
	}
	return ix.artifact.Records[row], true
}

// Query vectorizes the normalized text with the fitted transform and
// scores every corpus row by cosine similarity. Rows and query vectors
// are both L2-normalized, so the accumulated dot product is the cosine.
// Ties (including the all-zero query) break by corpus order.
func (ix *Index) Query(normalized string, topK int) []domain.IndexHit {
	if topK <= 0 {
		return nil
	}
	if topK > ix.Size() {
		topK = ix.Size()
	}

	queryVec := ix.vectorize(normalized)
	scores := make([]float64, ix.Size())
	for _, tw := range queryVec {
		for _, p := range ix.postings[tw.Term] {
			scores[p.row] += p.weight * tw.Weight
		}
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	hits := make([]domain.IndexHit, 0, topK)
	for _, row := range order[:topK] {
		hits = append(hits, domain.IndexHit{Row: row, Score: scores[row]})
	}
	return hits
}

// vectorize maps normalized text onto the fitted vocabulary: n-gram
// term frequencies weighted by IDF, then L2-normalized.
func (ix *Index) vectorize(normalized string) []TermWeight {
	tf := make(map[int32]float64)
	for _, gram := range ngrams(strings.Fields(normalized), maxNGram) {
		if id, ok := ix.artifact.Vocabulary[gram]; ok {
			tf[id]++
		}
	}
	if len(tf) == 0 {
		return nil
	}

	vec := make([]TermWeight, 0, len(tf))
	var sumSquares float64
	for id, count := range tf {
		w := count * ix.artifact.IDF[id]
		vec = append(vec, TermWeight{Term: id, Weight: w})
		sumSquares += w * w
	}
	norm := math.Sqrt(sumSquares)
	if norm > 0 {
		for i := range vec {
			vec[i].Weight /= norm
		}
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Term < vec[j].Term })
	return vec
}

// ngrams emits word 1..n-grams joined by single spaces.
func ngrams(tokens []string, n int) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens)*n)
	for size := 1; size <= n; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+size], " "))
		}
	}
	return out
}
