// Package registry loads the artifact snapshot and exposes the
// per-domain search indices behind the ports.IndexRegistry contract.
package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/core/ports"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/artifact"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/classifier"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/index"
)

// Registry materializes the snapshot's indices once, on first use, and
// serves them read-only afterwards. Domains missing from the snapshot
// are simply absent: a partial snapshot still serves the domains it
// has.
type Registry struct {
	path   string
	logger *slog.Logger

	once    sync.Once
	loadErr error
	indices map[string]*index.Index
	names   []string
	trained *classifier.Model
}

func New(path string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{path: path, logger: logger}
}

func (r *Registry) load() {
	snapshot, err := artifact.LoadSnapshot(r.path)
	if err != nil {
		r.loadErr = err
		return
	}

	r.indices = make(map[string]*index.Index, len(snapshot.Indices))
	for name, art := range snapshot.Indices {
		idx, err := index.FromArtifact(art)
		if err != nil {
			r.logger.Warn("index_artifact_skipped", "domain", name, "error", err)
			continue
		}
		r.indices[name] = idx
		if name != domain.GlobalDomain {
			r.names = append(r.names, name)
		}
	}
	sort.Strings(r.names)
	r.trained = snapshot.Classifier

	r.logger.Info("registry_loaded",
		"path", r.path,
		"domains", len(r.names),
		"has_global", r.indices[domain.GlobalDomain] != nil,
		"has_classifier", r.trained != nil,
	)
}

// Load forces the snapshot read and reports its error, for callers
// that want to fail fast at startup instead of at first query.
func (r *Registry) Load() error {
	r.once.Do(r.load)
	return r.loadErr
}

func (r *Registry) Searcher(name string) (ports.DomainSearcher, bool) {
	r.once.Do(r.load)
	idx, ok := r.indices[name]
	if !ok {
		return nil, false
	}
	return idx, true
}

// Domains lists the loaded domain names in sorted order, the global
// index excluded.
func (r *Registry) Domains() []string {
	r.once.Do(r.load)
	return r.names
}

// Classifier returns the trained model carried by the snapshot, or nil
// when the snapshot was built without one.
func (r *Registry) Classifier() *classifier.Model {
	r.once.Do(r.load)
	return r.trained
}
