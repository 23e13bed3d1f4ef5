package index

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

const (
	maxNGram       = 3
	maxFeatures    = 10000
	defaultMinDF   = 2
	smallCorpusLen = 50
	maxDFFraction  = 0.8
)

var (
	errNoRecords       = errors.New("no records to index")
	errEmptyVocabulary = errors.New("empty vocabulary after pruning")
	errIDFMismatch     = errors.New("idf length does not match vocabulary")
	errRowMismatch     = errors.New("row count does not match record count")
	errTermOutOfRange  = errors.New("term id out of vocabulary range")
)

// Normalizer is the query/corpus text canonicalizer; build and query
// time must share one implementation.
type Normalizer interface {
	Normalize(text string) string
}

// Build fits a TF-IDF vector space over the record questions and
// produces the persistable artifact. Records are indexed in input
// order; that order is the tie-break for ranking, so it must be stable
// between builds for reproducibility.
func Build(domainName string, records []domain.QARecord, normalizer Normalizer) (*Artifact, error) {
	if len(records) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "build index "+domainName, errNoRecords)
	}

	docs := make([][]string, len(records))
	for i, rec := range records {
		docs[i] = ngrams(strings.Fields(normalizer.Normalize(rec.Question)), maxNGram)
	}

	vocabulary := fitVocabulary(docs)
	if len(vocabulary) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "build index "+domainName, errEmptyVocabulary)
	}

	idf := fitIDF(docs, vocabulary)
	rows := make([][]TermWeight, len(docs))
	for i, doc := range docs {
		rows[i] = vectorizeDoc(doc, vocabulary, idf)
	}

	return &Artifact{
		Domain:     domainName,
		Vocabulary: vocabulary,
		IDF:        idf,
		Rows:       rows,
		Records:    records,
	}, nil
}

// fitVocabulary prunes terms by document frequency (rare terms overfit,
// ubiquitous terms drown) and caps the feature budget, keeping the
// highest-count terms. Final ids are assigned in lexicographic term
// order so builds are deterministic.
func fitVocabulary(docs [][]string) map[string]int32 {
	df := make(map[string]int)
	total := make(map[string]int)
	seen := make(map[string]struct{})
	for _, doc := range docs {
		clear(seen)
		for _, gram := range doc {
			total[gram]++
			if _, dup := seen[gram]; !dup {
				seen[gram] = struct{}{}
				df[gram]++
			}
		}
	}

	minDF := defaultMinDF
	if len(docs) < smallCorpusLen {
		minDF = 1
	}
	maxDF := int(maxDFFraction * float64(len(docs)))
	if maxDF < minDF {
		maxDF = len(docs)
	}

	kept := make([]string, 0, len(df))
	for gram, freq := range df {
		if freq >= minDF && freq <= maxDF {
			kept = append(kept, gram)
		}
	}

	if len(kept) > maxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:maxFeatures]
	}
	sort.Strings(kept)

	vocabulary := make(map[string]int32, len(kept))
	for id, gram := range kept {
		vocabulary[gram] = int32(id)
	}
	return vocabulary
}

// fitIDF uses the smoothed formulation ln((1+n)/(1+df)) + 1, which keeps
// every weight positive and tolerates unseen terms.
func fitIDF(docs [][]string, vocabulary map[string]int32) []float64 {
	df := make([]int, len(vocabulary))
	seen := make(map[int32]struct{})
	for _, doc := range docs {
		clear(seen)
		for _, gram := range doc {
			if id, ok := vocabulary[gram]; ok {
				if _, dup := seen[id]; !dup {
					seen[id] = struct{}{}
					df[id]++
				}
			}
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocabulary))
	for id, freq := range df {
		idf[id] = math.Log((1+n)/(1+float64(freq))) + 1
	}
	return idf
}

func vectorizeDoc(doc []string, vocabulary map[string]int32, idf []float64) []TermWeight {
	tf := make(map[int32]float64)
	for _, gram := range doc {
		if id, ok := vocabulary[gram]; ok {
			tf[id]++
		}
	}
	if len(tf) == 0 {
		return nil
	}

	vec := make([]TermWeight, 0, len(tf))
	var sumSquares float64
	for id, count := range tf {
		w := count * idf[id]
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
