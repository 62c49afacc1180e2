// Package api serves the HTTP status surface.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StatusSource provides the live data reported by /status.
type StatusSource interface {
	Channel(ctx context.Context) (int64, bool, error)
	Statistics(ctx context.Context) (model.Statistics, error)
}

// StatusResponse is the /status payload.
type StatusResponse struct {
	ChannelID         *int64           `json:"channel_id"`
	Status            string           `json:"status"`
	Timestamp         string           `json:"timestamp"`
	Stats             model.Statistics `json:"stats"`
	ChannelConfigured bool             `json:"channel_configured"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server handles HTTP requests.
type Server struct {
	source StatusSource
	logger *slog.Logger
	now    func() time.Time
}

// NewServer creates a new API server.
func NewServer(source StatusSource, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>suitwatch - round results</title>
    <meta charset="utf-8">
</head>
<body>
    <h1>suitwatch</h1>
    <p>The result recorder is online.</p>
    <ul>
        <li><a href="/health">Health check</a></li>
        <li><a href="/status">Status and statistics (JSON)</a></li>
    </ul>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.source.Statistics(ctx)
	if err != nil {
		s.logger.Error("Failed to load statistics", "error", err, "request_id", middleware.GetReqID(ctx))
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "statistics unavailable"})
		return
	}

	resp := StatusResponse{
		Status:    "running",
		Stats:     stats,
		Timestamp: s.now().Format(time.RFC3339),
	}

	channel, ok, err := s.source.Channel(ctx)
	if err != nil {
		s.logger.Warn("Failed to load monitored channel", "error", err)
	} else if ok {
		resp.ChannelConfigured = true
		resp.ChannelID = &channel
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
