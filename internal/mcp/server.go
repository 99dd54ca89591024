package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"filemcp/internal/config"
	"filemcp/internal/logging"
	"filemcp/internal/search"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	registry  *ToolRegistry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance. Nothing is built until Init.
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
	}
}

// Init builds the mcp-go server and registers the tools
func (s *Server) Init() error {
	if s.mcpServer != nil {
		return fmt.Errorf("server already initialized")
	}
	if s.config == nil {
		return fmt.Errorf("server config is nil")
	}

	executor := search.NewExecutor(s.config.MaxFileSize)

	s.logger.Info("Initializing MCP server",
		"name", s.config.ServerName,
		"version", s.config.ServerVersion,
		"maxFileSize", executor.MaxFileSize(),
		"readTimeout", s.config.ReadTimeout,
	)

	s.registry = NewToolRegistry(s.logger, executor, s.config.ReadTimeout)

	s.mcpServer = server.NewMCPServer(
		s.config.ServerName,
		s.config.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registry.Register(s.mcpServer)

	s.logger.Info("MCP server initialized", "tools", len(s.registry.ListOperations()))
	return nil
}

// Run serves JSON-RPC over the given streams until in reaches EOF or ctx is
// cancelled. Cancellation is a normal shutdown and returns nil.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.mcpServer == nil {
		return fmt.Errorf("server not initialized")
	}

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLog())

	s.logger.Info("Serving MCP over stdio")
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Shutdown releases the mcp-go server. It is safe to call more than once.
func (s *Server) Shutdown() error {
	if s.mcpServer == nil {
		return nil
	}
	s.logger.Info("Stopping MCP server")
	s.mcpServer = nil
	s.registry = nil
	return nil
}

// Start runs the full init, run, shutdown sequence on the process's stdin and
// stdout. Shutdown happens on every exit path.
func (s *Server) Start(ctx context.Context) (err error) {
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize MCP server: %w", err)
	}
	defer func() {
		if shutdownErr := s.Shutdown(); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	return s.Run(ctx, os.Stdin, os.Stdout)
}

// ListOperations returns the advertised tools, or nil before Init
func (s *Server) ListOperations() []mcp.Tool {
	if s.registry == nil {
		return nil
	}
	return s.registry.ListOperations()
}

// MCPServer exposes the underlying mcp-go server, mainly for in-process clients
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}
