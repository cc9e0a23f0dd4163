// Package server exposes the current log summary over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fendlabs/fend-sentry/pkg/parser"
	"github.com/fendlabs/fend-sentry/pkg/report"
)

// DefaultTrendHours is the trend window used when the request does not
// specify one.
const DefaultTrendHours = 24

// LineLoader fetches the current log lines for a request.
type LineLoader func(ctx context.Context) ([]string, error)

// Server serves on-demand health checks over HTTP. Each request re-reads
// the log source so results are always current.
type Server struct {
	app         string
	environment string
	loadLines   LineLoader
	parser      *parser.Parser
}

// New creates a server for the given application.
func New(app, environment string, loadLines LineLoader) *Server {
	return &Server{
		app:         app,
		environment: environment,
		loadLines:   loadLines,
		parser:      parser.New(),
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.healthzHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/summary", s.summaryHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/trends", s.trendsHandler).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the server until the listener fails or the context
// is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.check(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read logs: %v", err), http.StatusBadGateway)
		return
	}

	trends, err := summary.ErrorTrends(DefaultTrendHours)
	if err != nil {
		http.Error(w, "trend computation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, report.New(s.app, s.environment, summary, trends))
}

func (s *Server) trendsHandler(w http.ResponseWriter, r *http.Request) {
	hours := DefaultTrendHours
	if v := r.URL.Query().Get("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "hours must be a positive integer", http.StatusBadRequest)
			return
		}
		hours = n
	}

	summary, err := s.check(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read logs: %v", err), http.StatusBadGateway)
		return
	}

	trends, err := summary.ErrorTrends(hours)
	if err != nil {
		http.Error(w, "trend computation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, trends)
}

func (s *Server) check(ctx context.Context) (*parser.Summary, error) {
	lines, err := s.loadLines(ctx)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(lines), nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding error", http.StatusInternalServerError)
	}
}
