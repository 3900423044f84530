package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/domain/name"
	"github.com/rpggio/cookbook/internal/domain/summary"
)

const maxBodyBytes = 1 << 20

// EntryService stores and reads entries.
type EntryService interface {
	Insert(ctx context.Context, c entry.Candidate) error
	Find(ctx context.Context, name string) (entry.Entry, error)
	List(ctx context.Context) ([]entry.Entry, error)
}

// SummaryService expands recipes.
type SummaryService interface {
	Summarize(ctx context.Context, recipeName string) (*summary.Summary, error)
}

// Config holds what the router needs.
type Config struct {
	Entries   EntryService
	Summaries SummaryService
	Logger    *slog.Logger

	// RateLimit is requests per second for the API routes. Zero disables it.
	RateLimit float64
	RateBurst int

	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
	// Ready, when set, backs /ready.
	Ready func(ctx context.Context) error
}

// Server wires HTTP handlers.
type Server struct {
	entries   EntryService
	summaries SummaryService
	ready     func(ctx context.Context) error
	logger    *slog.Logger
}

type parseRequest struct {
	Input string `json:"input"`
}

type parseResponse struct {
	Msg string `json:"msg"`
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	srv := &Server{
		entries:   cfg.Entries,
		summaries: cfg.Summaries,
		ready:     cfg.Ready,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(metricsMiddleware)
	r.Use(requestIDMiddleware)
	r.Use(recoveryMiddleware(logger))
	r.Use(loggingMiddleware(logger))

	r.Get("/health", srv.handleHealth)
	r.Get("/ready", srv.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.RateLimit > 0 {
			burst := cfg.RateBurst
			if burst <= 0 {
				burst = 1
			}
			r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)))
		}

		r.Post("/parse", srv.handleParse)
		r.Post("/entry", srv.handleCreateEntry)
		r.Get("/entry/{name}", srv.handleGetEntry)
		r.Get("/entries", srv.handleListEntries)
		r.Get("/summary", srv.handleSummary)

		if cfg.MCP != nil {
			r.Handle("/mcp", cfg.MCP)
			r.Handle("/mcp/*", cfg.MCP)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", "error", err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, MapError(err))
		return
	}

	normalized, err := name.Normalize(req.Input)
	if err != nil {
		writeError(w, MapError(err))
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{Msg: normalized})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var c entry.Candidate
	if err := decodeBody(w, r, &c); err != nil {
		writeError(w, MapError(err))
		return
	}

	if err := s.entries.Insert(r.Context(), c); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.entries.Find(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e.View())
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.entries.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	views := make([]entry.View, 0, len(entries))
	for _, e := range entries {
		views = append(views, e.View())
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.summaries.Summarize(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := MapError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		requestID, _ := RequestIDFromContext(r.Context())
		s.logger.Error("request failed", "request_id", requestID, "path", r.URL.Path, "error", err)
	}
	writeError(w, apiErr)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ErrInvalidBody
	}
	return nil
}

// writeError writes the reason as plain text. The classification travels in
// the X-Error-Code header.
func writeError(w http.ResponseWriter, apiErr *APIError) {
	domainErrors.WithLabelValues(apiErr.Code).Inc()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Error-Code", apiErr.Code)
	w.WriteHeader(apiErr.Status)
	_, _ = w.Write([]byte(apiErr.Message))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
