// Command mcp serves the legal search tools over stdio for MCP hosts.
package main

import (
	"os"

	mcpadapter "github.com/nyayashield/legal-answer-engine/internal/adapters/mcp"
	"github.com/nyayashield/legal-answer-engine/internal/bootstrap"
	"github.com/nyayashield/legal-answer-engine/internal/config"
	"github.com/nyayashield/legal-answer-engine/internal/observability/logging"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewTextLogger("mcp", "info").Error("config error", "error", err)
		os.Exit(1)
	}
	// Logs go to stderr: stdout belongs to the MCP session.
	logger := logging.NewTextLogger("mcp", cfg.LogLevel)

	search, err := bootstrap.NewSearchOnly(cfg, logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}

	if err := mcpadapter.NewServer(search, version).ServeStdio(); err != nil {
		logger.Error("mcp_server_error", "error", err)
		os.Exit(1)
	}
}
