package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/domain/summary"
	"github.com/rpggio/cookbook/internal/mcp"
	"github.com/rpggio/cookbook/internal/memory"
	"github.com/rpggio/cookbook/internal/sqlite"
	"github.com/rpggio/cookbook/internal/transport"
)

// Store drivers accepted by New.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Drivers lists every backend, for tests that run against each one.
var Drivers = []string{DriverMemory, DriverSQLite}

type TestServer struct {
	Server  *httptest.Server
	Entries *entry.Service
}

// Options adjusts the server built by New.
type Options struct {
	Driver    string
	MaxDepth  int
	RateLimit float64
	RateBurst int
}

// New starts an HTTP server backed by a fresh store of the given driver.
func New(t *testing.T, driver string) *TestServer {
	return NewWithOptions(t, Options{Driver: driver})
}

func NewWithOptions(t *testing.T, opts Options) *TestServer {
	t.Helper()

	var repo entry.Repository
	var ready func(context.Context) error
	switch opts.Driver {
	case DriverSQLite:
		db, err := sqlite.New(strings.ReplaceAll(t.Name(), "/", "_"))
		require.NoError(t, err)
		require.NoError(t, db.RunMigrations())
		t.Cleanup(func() { _ = db.Close() })
		repo = sqlite.NewEntryRepository(db)
		ready = db.PingContext
	default:
		repo = memory.New()
	}

	entries := entry.NewService(repo, nil)
	summaries := summary.NewService(repo, opts.MaxDepth, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Entries: entries, Summaries: summaries},
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Entries:   entries,
		Summaries: summaries,
		RateLimit: opts.RateLimit,
		RateBurst: opts.RateBurst,
		MCP:       mcpHandler,
		Ready:     ready,
	}))
	t.Cleanup(server.Close)

	return &TestServer{Server: server, Entries: entries}
}

// URL returns the absolute URL for path.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
