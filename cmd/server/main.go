package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/rpggio/cookbook/internal/config"
	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/domain/summary"
	"github.com/rpggio/cookbook/internal/mcp"
	"github.com/rpggio/cookbook/internal/memory"
	"github.com/rpggio/cookbook/internal/sqlite"
	"github.com/rpggio/cookbook/internal/transport"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := newLogger(logWriter, cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	repo, ready, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	entries := entry.NewService(repo, logger)
	summaries := summary.NewService(repo, cfg.Summary.MaxDepth, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Entries: entries, Summaries: summaries},
		Version:  version,
		Logger:   logger,
	})

	logger.Info("starting cookbook",
		"version", version,
		"transport", cfg.Transport.Mode,
		"store", cfg.Store.Driver,
		"max_depth", cfg.Summary.MaxDepth,
	)

	if cfg.Transport.Mode == "stdio" {
		// Run blocks until stdin closes or the context is canceled.
		if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil
	}

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)

	router := transport.NewServer(transport.Config{
		Entries:   entries,
		Summaries: summaries,
		Logger:    logger,
		RateLimit: cfg.RateLimit.RPS,
		RateBurst: cfg.RateLimit.Burst,
		MCP:       mcpHandler,
		Ready:     ready,
	})

	return serveHTTP(ctx, logger, &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	})
}

// openStore builds the configured entry backend. The returned readiness
// check is nil when the backend cannot become unavailable.
func openStore(cfg config.StoreConfig) (entry.Repository, func(context.Context) error, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.New(cfg.Name)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return sqlite.NewEntryRepository(db), db.PingContext, func() { _ = db.Close() }, nil
	default:
		return memory.New(), nil, func() {}, nil
	}
}

func serveHTTP(ctx context.Context, logger *slog.Logger, server *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
