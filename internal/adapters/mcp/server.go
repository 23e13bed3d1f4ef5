// Package mcpadapter exposes the search engine as MCP tools over
// stdio, so agent hosts can consult the legal corpus directly.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nyayashield/legal-answer-engine/internal/core/ports"
)

type Server struct {
	search ports.LegalSearchService
	mcp    *server.MCPServer
}

func NewServer(search ports.LegalSearchService, version string) *Server {
	s := &Server{
		search: search,
		mcp: server.NewMCPServer(
			"legal-answer-engine",
			version,
			server.WithToolCapabilities(false),
		),
	}

	s.mcp.AddTool(mcp.NewTool("legal_search",
		mcp.WithDescription("Search the Indian legal QA corpus for an answer to a legal question."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The legal question to answer."),
		),
		mcp.WithString("category",
			mcp.Description("Optional domain hint: ipc, consumer, crpc, family, property, or it_act."),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Optional minimum confidence in (0,1]; defaults to the server setting."),
		),
	), s.handleSearch)

	s.mcp.AddTool(mcp.NewTool("list_legal_domains",
		mcp.WithDescription("List the legal domains with a loaded search index."),
	), s.handleListDomains)

	return s
}

// ServeStdio blocks serving the MCP session on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question must not be empty"), nil
	}

	result, err := s.search.Search(ctx, question, ports.SearchOptions{
		DomainHint: req.GetString("category", ""),
		Threshold:  req.GetFloat("threshold", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode search result: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleListDomains(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(map[string]any{"domains": s.search.RegisteredDomains()})
	if err != nil {
		return nil, fmt.Errorf("encode domains: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
