// Package bootstrap wires the services' dependency graphs.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nyayashield/legal-answer-engine/internal/config"
	"github.com/nyayashield/legal-answer-engine/internal/core/ports"
	"github.com/nyayashield/legal-answer-engine/internal/core/usecase"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/cache/redis"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/classifier"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/queue/nats"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/rebuild"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/registry"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/repository/postgres"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/resilience"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/textnorm"
)

// App is the wired dependency graph for the api and worker services.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue     ports.ReindexQueue
	Repo      ports.CorpusRepository
	Search    ports.LegalSearchService
	Rebuilder *rebuild.Rebuilder

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewCorpusRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig(), logger)
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		Executor: executor,
		Logger:   logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init reindex queue: %w", err)
	}

	var cache ports.ResultCache = redis.Noop{}
	var closeCache func()
	if cfg.RedisAddr != "" {
		redisCache, err := redis.New(redis.Config{
			Addrs:    []string{cfg.RedisAddr},
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			queue.Close()
			_ = db.Close()
			return nil, fmt.Errorf("init result cache: %w", err)
		}
		cache = redisCache
		closeCache = redisCache.Close
	}

	normalizer := textnorm.New()
	search := buildSearchEngine(cfg, normalizer, cache, logger)
	rebuilder := rebuild.New(repo, normalizer, cfg.ArtifactPath, logger)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Queue:     queue,
		Repo:      repo,
		Search:    search,
		Rebuilder: rebuilder,

		closeFn: func() {
			queue.Close()
			if closeCache != nil {
				closeCache()
			}
			_ = db.Close()
		},
	}, nil
}

// NewSearchOnly wires just the query path: snapshot registry,
// classifier, and search engine. Used by the MCP server, which needs
// neither Postgres nor NATS.
func NewSearchOnly(cfg config.Config, logger *slog.Logger) (ports.LegalSearchService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	engine := buildSearchEngine(cfg, textnorm.New(), redis.Noop{}, logger)
	return engine, nil
}

func buildSearchEngine(
	cfg config.Config,
	normalizer ports.TextNormalizer,
	cache ports.ResultCache,
	logger *slog.Logger,
) *usecase.SearchEngine {
	reg := registry.New(cfg.ArtifactPath, logger)
	if err := reg.Load(); err != nil {
		// Serving starts even without a snapshot; every search yields
		// the no-match answer until the worker builds one.
		logger.Warn("artifact_snapshot_unavailable", "path", cfg.ArtifactPath, "error", err)
	}

	tiered := classifier.NewTiered(reg.Classifier(), normalizer, logger)

	return usecase.NewSearchEngine(reg, tiered, normalizer, cache, logger, usecase.Config{
		DefaultThreshold:   cfg.SearchThreshold,
		KeywordBoostWeight: cfg.KeywordBoostWeight,
		PrimaryTopK:        cfg.PrimaryTopK,
		FallbackTopK:       cfg.FallbackTopK,
		GlobalTopK:         cfg.GlobalTopK,
		CacheTTL:           time.Duration(cfg.CacheTTLSeconds) * time.Second,
	})
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
