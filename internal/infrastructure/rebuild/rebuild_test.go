package rebuild

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/artifact"
)

type memoryRepo struct {
	records         []domain.QARecord
	categoryQueries []string
}

func (m *memoryRepo) EnsureSchema(context.Context) error { return nil }

func (m *memoryRepo) ReplaceAll(_ context.Context, records []domain.QARecord) error {
	m.records = records
	return nil
}

func (m *memoryRepo) ListAll(context.Context) ([]domain.QARecord, error) {
	return m.records, nil
}

func (m *memoryRepo) ListByCategory(_ context.Context, category string) ([]domain.QARecord, error) {
	m.categoryQueries = append(m.categoryQueries, category)
	var out []domain.QARecord
	for _, r := range m.records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out, nil
}

type fieldsNormalizer struct{}

func (fieldsNormalizer) Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func corpus() []domain.QARecord {
	return []domain.QARecord{
		{Question: "punishment for theft offence", Answer: "a", Category: "ipc", Source: "s"},
		{Question: "punishment for murder offence", Answer: "a", Category: "ipc", Source: "s"},
		{Question: "cheating and fraud offence", Answer: "a", Category: "ipc", Source: "s"},
		{Question: "divorce petition family court", Answer: "a", Category: "family", Source: "s"},
		{Question: "custody after divorce decree", Answer: "a", Category: "family", Source: "s"},
		{Question: "maintenance and alimony claim", Answer: "a", Category: "family", Source: "s"},
		{Question: "explain this constitutional provision", Answer: "a", Category: "constitutional_law", Source: "s"},
	}
}

func TestRebuildWritesFullSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indices.db")
	rebuilder := New(&memoryRepo{records: corpus()}, fieldsNormalizer{}, path, nil)

	stats, err := rebuilder.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if stats.TotalRecords != 7 {
		t.Fatalf("TotalRecords = %d", stats.TotalRecords)
	}
	if stats.DomainRecords["ipc"] != 3 || stats.DomainRecords["family"] != 3 {
		t.Fatalf("DomainRecords = %v", stats.DomainRecords)
	}
	if !stats.HasClassifier {
		t.Fatalf("expected trained classifier")
	}

	snapshot, err := artifact.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if _, ok := snapshot.Indices[domain.GlobalDomain]; !ok {
		t.Fatalf("global index missing: %v", snapshot.Indices)
	}
	if _, ok := snapshot.Indices["ipc"]; !ok {
		t.Fatalf("ipc index missing: %v", snapshot.Indices)
	}
	// constitutional_law is not a registered domain; its records only
	// reach the global index.
	if _, ok := snapshot.Indices["constitutional_law"]; ok {
		t.Fatalf("unregistered category must not get its own index")
	}
	if snapshot.Indices[domain.GlobalDomain].Records[6].Category != "constitutional_law" {
		t.Fatalf("global index must cover the whole corpus")
	}
}

func TestRebuildListsEachRegisteredDomain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indices.db")
	repo := &memoryRepo{records: corpus()}

	if _, err := New(repo, fieldsNormalizer{}, path, nil).Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	queried := make(map[string]bool, len(repo.categoryQueries))
	for _, category := range repo.categoryQueries {
		queried[category] = true
	}
	for _, name := range domain.Domains() {
		if !queried[name] {
			t.Fatalf("domain %q not listed from the repository: %v", name, repo.categoryQueries)
		}
	}
	if queried[domain.GlobalDomain] {
		t.Fatalf("global index must come from the full listing, not a category query")
	}
}

func TestRebuildEmptyCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indices.db")
	rebuilder := New(&memoryRepo{}, fieldsNormalizer{}, path, nil)

	if _, err := rebuilder.Rebuild(context.Background()); !domain.IsKind(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected data-unavailable error, got %v", err)
	}
}
