package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

// CorpusRepository stores the combined QA corpus the dataset ETL
// produces. The indexer replaces the whole table per ingest run and
// the worker reads it back when rebuilding indices.
type CorpusRepository struct {
	db *sql.DB
}

func NewCorpusRepository(db *sql.DB) *CorpusRepository {
	return &CorpusRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *CorpusRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across indexer/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082701)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS qa_corpus (
	id BIGSERIAL PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	category TEXT NOT NULL,
	source TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_qa_corpus_category ON qa_corpus(category);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// ReplaceAll swaps the stored corpus for the given records in one
// transaction, so readers observe either the old corpus or the new
// one, never a mix.
func (r *CorpusRepository) ReplaceAll(ctx context.Context, records []domain.QARecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM qa_corpus`); err != nil {
		return fmt.Errorf("clear corpus: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO qa_corpus (question, answer, category, source) VALUES ($1,$2,$3,$4)
`)
	if err != nil {
		return fmt.Errorf("prepare corpus insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, record.Question, record.Answer, record.Category, record.Source); err != nil {
			return fmt.Errorf("insert corpus record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tx: %w", err)
	}
	return nil
}

func (r *CorpusRepository) ListAll(ctx context.Context) ([]domain.QARecord, error) {
	return r.list(ctx, `
SELECT question, answer, category, source FROM qa_corpus ORDER BY id
`)
}

func (r *CorpusRepository) ListByCategory(ctx context.Context, category string) ([]domain.QARecord, error) {
	return r.list(ctx, `
SELECT question, answer, category, source FROM qa_corpus WHERE category = $1 ORDER BY id
`, category)
}

func (r *CorpusRepository) list(ctx context.Context, query string, args ...any) ([]domain.QARecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	defer rows.Close()

	var records []domain.QARecord
	for rows.Next() {
		var record domain.QARecord
		if err := rows.Scan(&record.Question, &record.Answer, &record.Category, &record.Source); err != nil {
			return nil, fmt.Errorf("scan corpus record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corpus rows: %w", err)
	}
	return records, nil
}
