// Package server exposes the loaded corpus to the presentation layer as a
// JSON REST API plus a websocket search stream. The server is thin glue:
// every endpoint is a direct call into the pure core (edition, concord,
// locus) over the immutable corpus, so handlers need no locking.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/scriptoria/witness/core/concord"
	"github.com/scriptoria/witness/core/edition"
	"github.com/scriptoria/witness/internal/logging"
)

// Config controls the HTTP server.
type Config struct {
	// Addr is the listen address, e.g. ":8744".
	Addr string

	// AllowedOrigins is the CORS allow-list. Empty allows any origin,
	// suitable for a local reading environment.
	AllowedOrigins []string

	// ChapterMarker overrides the chapter-opening literal for witnesses
	// that configure none.
	ChapterMarker string
}

// Server serves a loaded corpus.
type Server struct {
	cfg      Config
	corpus   *edition.Corpus
	engine   *concord.Engine
	upgrader websocket.Upgrader
}

// New creates a Server over corpus.
func New(cfg Config, corpus *edition.Corpus) *Server {
	return &Server{
		cfg:      cfg,
		corpus:   corpus,
		engine:   concord.NewEngine(corpus, concord.WithLogger(logging.Logger())),
		upgrader: newUpgrader(cfg.AllowedOrigins),
	}
}

// Handler builds the full middleware chain and route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents", s.handleDocuments)
	mux.HandleFunc("GET /api/documents/{id}", s.handleDocument)
	mux.HandleFunc("GET /api/documents/{id}/chapters", s.handleChapters)
	mux.HandleFunc("GET /api/documents/{id}/units", s.handleUnits)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /ws/search", s.handleSearchSocket)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})

	return logging.CombinedMiddleware(c.Handler(mux))
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server_startup", "addr", s.cfg.Addr, "witnesses", s.corpus.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
