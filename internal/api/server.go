// Package api exposes the score and metrics store over a small REST
// surface, for companion tools and site integrations.
package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/birdrush/birdrush/internal/storage"
)

// ServerConfig holds configuration for the REST server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// DBPath is the path to the scores database.
	DBPath string
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address: ":8080",
		DBPath:  "~/.birdrush/scores.db",
	}
}

// Server is the REST API server.
type Server struct {
	config ServerConfig
	store  *storage.Store
	logger *log.Logger
	http   *http.Server
}

// NewServer opens the store and builds the server. The store is owned by
// the server and closed on shutdown.
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "birdrush-api",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}
	srv.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return srv, nil
}

// routes builds the request mux.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/scores", s.handleSaveScore)
	mux.HandleFunc("GET /api/scores", s.handleTopScores)
	mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	mux.HandleFunc("POST /api/metrics", s.handleRecordGame)
	return s.logRequests(mux)
}

// logRequests logs method, path and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// ListenAndServe starts the server and blocks until SIGINT/SIGTERM.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting REST server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server and closes the store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	if closeErr := s.store.Close(); err == nil {
		err = closeErr
	}
	return err
}
