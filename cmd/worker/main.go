package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nyayashield/legal-answer-engine/internal/bootstrap"
	"github.com/nyayashield/legal-answer-engine/internal/config"
	"github.com/nyayashield/legal-answer-engine/internal/observability/logging"
	"github.com/nyayashield/legal-answer-engine/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewJSONLogger("worker", "info").Error("config error", "error", err)
		os.Exit(1)
	}
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	m := metrics.NewWorkerMetrics("worker")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		logger.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := http.ListenAndServe(":"+cfg.WorkerMetricsPort, mux); err != nil {
			logger.Error("worker_metrics_server_error", "error", err)
		}
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeReindexRequested(ctx, func(handlerCtx context.Context, domainName string) error {
		rebuildCtx, cancel := context.WithTimeout(handlerCtx, 10*time.Minute)
		defer cancel()

		m.StartReindex()
		start := time.Now()
		stats, err := app.Rebuilder.Rebuild(rebuildCtx)
		m.FinishReindex("worker", time.Since(start), err)
		if err != nil {
			return err
		}

		for name, count := range stats.DomainRecords {
			m.SetCorpusRecords("worker", name, count)
		}
		logger.Info("reindex_done",
			"requested_domain", domainName,
			"records", stats.TotalRecords,
			"indices", stats.Indices,
		)
		return nil
	})
	if err != nil {
		logger.Error("worker_subscribe_error", "error", err)
		os.Exit(1)
	}
}
