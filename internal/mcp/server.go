package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/domain/summary"
)

// EntryService defines entry operations needed by MCP.
type EntryService interface {
	Insert(ctx context.Context, c entry.Candidate) error
	Find(ctx context.Context, name string) (entry.Entry, error)
	List(ctx context.Context) ([]entry.Entry, error)
}

// SummaryService defines summary operations needed by MCP.
type SummaryService interface {
	Summarize(ctx context.Context, recipeName string) (*summary.Summary, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Entries   EntryService
	Summaries SummaryService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "cookbook",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
