// Package mcp exposes the perfume search tool over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/usecase/tool"
)

// ToolAdapter is the consumer interface for the search_perfumes tool.
type ToolAdapter interface {
	SearchPerfumes(ctx context.Context, in tool.Input) (tool.Envelope, error)
}

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "scentdex").
	Name string
	// Version is the server version.
	Version string
	Logger  *zap.Logger
}

// Server wraps an MCP server with the perfume tools registered.
type Server struct {
	mcp     *mcp.Server
	adapter ToolAdapter
	logger  *zap.Logger
}

// NewServer creates an MCP server and registers search_perfumes.
func NewServer(cfg *Config, adapter ToolAdapter) (*Server, error) {
	if adapter == nil {
		return nil, fmt.Errorf("tool adapter is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	name := cfg.Name
	if name == "" {
		name = "scentdex"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mcp:     mcp.NewServer(&mcp.Implementation{Name: name, Version: cfg.Version}, nil),
		adapter: adapter,
		logger:  logger,
	}
	s.registerTools()

	return s, nil
}

// Run serves MCP on stdin/stdout until ctx is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio transport")
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}

// Handler returns a streamable HTTP handler serving the same server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}
