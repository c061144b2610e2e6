// ABOUTME: MCP server implementation for daterange
// ABOUTME: Provides tools, resources, and prompts for AI agents to resolve and save date ranges

package mcp

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/storage"
)

// Server wraps the MCP server with daterange-specific context
type Server struct {
	mcpServer *server.MCPServer
	store     storage.Store
	res       *daterange.Resolver
	hourShift int
	logger    *log.Logger
	storeMu   sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithHourShift sets the day start hour used for ranges that do not give one.
func WithHourShift(h int) Option {
	return func(s *Server) { s.hourShift = h }
}

// WithLogger sets the logger for tool activity.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a new MCP server instance
func NewServer(store storage.Store, res *daterange.Resolver, version string, opts ...Option) *Server {
	s := &Server{
		store:  store,
		res:    res,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		"daterange",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
