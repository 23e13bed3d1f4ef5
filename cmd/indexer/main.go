// Command indexer runs the dataset ETL end to end: it loads the raw
// legal QA sources, stores the cleaned corpus in Postgres, and builds
// the artifact snapshot the api serves from.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/config"
	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/dataset"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/rebuild"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/repository/postgres"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/textnorm"
	"github.com/nyayashield/legal-answer-engine/internal/observability/logging"
)

func main() {
	datasetsDir := flag.String("datasets", "./datasets", "directory holding the raw dataset files")
	skipDB := flag.Bool("skip-db", false, "build the snapshot without writing the corpus to Postgres")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.NewTextLogger("indexer", "info").Error("config error", "error", err)
		os.Exit(1)
	}
	logger := logging.NewTextLogger("indexer", cfg.LogLevel)
	ctx := context.Background()

	corpus := loadCorpus(*datasetsDir, logger)
	if len(corpus) == 0 {
		logger.Error("no_records_loaded", "dir", *datasetsDir)
		os.Exit(1)
	}
	logger.Info("corpus_combined", "records", len(corpus))

	var rebuilder *rebuild.Rebuilder
	if *skipDB {
		rebuilder = rebuild.New(&staticCorpus{records: corpus}, textnorm.New(), cfg.ArtifactPath, logger)
	} else {
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			logger.Error("open_postgres_failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := postgres.NewCorpusRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("ensure_schema_failed", "error", err)
			os.Exit(1)
		}
		if err := repo.ReplaceAll(ctx, corpus); err != nil {
			logger.Error("store_corpus_failed", "error", err)
			os.Exit(1)
		}
		logger.Info("corpus_stored", "records", len(corpus))
		rebuilder = rebuild.New(repo, textnorm.New(), cfg.ArtifactPath, logger)
	}

	stats, err := rebuilder.Rebuild(ctx)
	if err != nil {
		logger.Error("rebuild_failed", "error", err)
		os.Exit(1)
	}
	logger.Info("snapshot_written",
		"path", cfg.ArtifactPath,
		"indices", stats.Indices,
		"has_classifier", stats.HasClassifier,
	)
}

// loadCorpus walks the datasets directory and ingests every file it
// recognizes. Individual source failures are logged and skipped; one
// corrupt file must not abort the whole run.
func loadCorpus(dir string, logger *slog.Logger) []domain.QARecord {
	var sources [][]domain.QARecord

	add := func(records []domain.QARecord, err error, path string) {
		if err != nil {
			logger.Warn("source_skipped", "path", path, "error", err)
			return
		}
		logger.Info("source_loaded", "path", path, "records", len(records))
		sources = append(sources, records)
	}

	walk := func(path string, info os.FileInfo) {
		name := strings.ToLower(filepath.Base(path))
		switch {
		case name == "indian_laws.json":
			records, err := dataset.LoadIndianLaws(path)
			add(records, err, path)
		case strings.Contains(name, "indiclegalqa") && strings.HasSuffix(name, ".json"):
			records, err := dataset.LoadCaseQA(path)
			add(records, err, path)
		case strings.HasSuffix(name, ".json"):
			records, err := dataset.LoadFlexibleJSON(path)
			add(records, err, path)
		case name == "text.csv":
			records, err := dataset.LoadTextCSV(path, "Constitution", "constitutional_law")
			add(records, err, path)
		case strings.HasSuffix(name, ".csv"):
			records, err := dataset.LoadInstructionCSV(path, "CourtCases")
			add(records, err, path)
		case strings.HasSuffix(name, ".xlsx"):
			records, err := dataset.LoadXLSX(path, "LawWorkbook")
			add(records, err, path)
		case strings.HasSuffix(name, ".pdf"):
			records, err := dataset.LoadBareActPDF(path, "BareAct")
			add(records, err, path)
		}
		_ = info
	}

	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		walk(path, info)
		return nil
	})

	return dataset.Combine(sources...)
}

// staticCorpus satisfies the corpus port from memory for -skip-db runs.
type staticCorpus struct {
	records []domain.QARecord
}

func (s *staticCorpus) EnsureSchema(context.Context) error { return nil }

func (s *staticCorpus) ReplaceAll(_ context.Context, records []domain.QARecord) error {
	s.records = records
	return nil
}

func (s *staticCorpus) ListAll(context.Context) ([]domain.QARecord, error) {
	return s.records, nil
}

func (s *staticCorpus) ListByCategory(_ context.Context, category string) ([]domain.QARecord, error) {
	var out []domain.QARecord
	for _, r := range s.records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out, nil
}
