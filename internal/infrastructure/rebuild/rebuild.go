// Package rebuild turns the stored corpus into a fresh artifact
// snapshot: one index per legal domain, the global index over the
// whole corpus, and the trained domain classifier.
package rebuild

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/core/ports"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/artifact"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/classifier"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/index"
)

var errEmptyCorpus = errors.New("corpus is empty")

// Stats reports what one rebuild produced.
type Stats struct {
	TotalRecords  int
	DomainRecords map[string]int
	Indices       int
	HasClassifier bool
}

type Rebuilder struct {
	repo         ports.CorpusRepository
	normalizer   ports.TextNormalizer
	artifactPath string
	logger       *slog.Logger
}

func New(repo ports.CorpusRepository, normalizer ports.TextNormalizer, artifactPath string, logger *slog.Logger) *Rebuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rebuilder{
		repo:         repo,
		normalizer:   normalizer,
		artifactPath: artifactPath,
		logger:       logger,
	}
}

// Rebuild reads the whole corpus and replaces the snapshot. The
// snapshot is a single file, so a rebuild always covers every domain;
// a domain whose corpus slice is too small simply has no index in the
// new snapshot.
func (r *Rebuilder) Rebuild(ctx context.Context) (Stats, error) {
	records, err := r.repo.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	if len(records) == 0 {
		return Stats{}, domain.WrapError(domain.ErrDataUnavailable, "rebuild", errEmptyCorpus)
	}

	stats := Stats{
		TotalRecords:  len(records),
		DomainRecords: make(map[string]int),
	}

	indices := make(map[string]*index.Artifact)
	for _, name := range domain.Domains() {
		slice, err := r.repo.ListByCategory(ctx, name)
		if err != nil {
			r.logger.Warn("domain_listing_failed", "domain", name, "error", err)
			continue
		}
		if len(slice) == 0 {
			continue
		}
		art, err := index.Build(name, slice, r.normalizer)
		if err != nil {
			r.logger.Warn("domain_index_skipped", "domain", name, "records", len(slice), "error", err)
			continue
		}
		indices[name] = art
		stats.DomainRecords[name] = len(slice)
	}

	globalArt, err := index.Build(domain.GlobalDomain, records, r.normalizer)
	if err != nil {
		return Stats{}, err
	}
	indices[domain.GlobalDomain] = globalArt
	stats.DomainRecords[domain.GlobalDomain] = len(records)
	stats.Indices = len(indices)

	snapshot := &artifact.Snapshot{Indices: indices}
	model, err := classifier.Train(records, r.normalizer)
	if err != nil {
		// A corpus without usable labels still gets indices; search
		// falls back to the keyword heuristic.
		r.logger.Warn("classifier_training_skipped", "error", err)
	} else {
		snapshot.Classifier = model
		stats.HasClassifier = true
	}

	if err := artifact.WriteSnapshot(r.artifactPath, snapshot); err != nil {
		return Stats{}, err
	}

	r.logger.Info("snapshot_rebuilt",
		"path", r.artifactPath,
		"records", stats.TotalRecords,
		"indices", stats.Indices,
		"has_classifier", stats.HasClassifier,
	)
	return stats, nil
}
