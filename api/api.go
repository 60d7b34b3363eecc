package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/pkg/llm"
	"github.com/outfitterco/outfitter/pkg/search"
)

// Searcher is the slice of the search service the server needs.
type Searcher interface {
	Search(ctx context.Context, req search.Request) ([]search.Result, error)
}

// Assistant is the slice of the shopping agent the server needs.
type Assistant interface {
	Run(ctx context.Context, input string, history []llm.Message) (string, error)
}

// Server is the HTTP API server. The searcher and assistant are injected so
// the CLI, the MCP server, and this server can share one set of clients.
type Server struct {
	config    Config
	searcher  Searcher
	assistant Assistant
	logger    *zap.Logger
	app       *fiber.App
}

// NewServer creates a new API server. A nil assistant disables /v1/chat with
// a 503 rather than an error at construction, so search-only deployments
// work without LLM credentials.
func NewServer(config Config, searcher Searcher, assistant Assistant, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:    config,
		searcher:  searcher,
		assistant: assistant,
		logger:    logger,
		app:       app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/v1/search", s.handleSearch)
	app.Post("/v1/chat", s.handleChat)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}
