// Package server implements the JSONLens HTTP API.
//
// The API exposes document analysis over HTTP for clients that cannot
// shell out to the CLI:
//   - POST /api/v1/analyze: analyze a JSON body directly
//   - POST /api/v1/documents: store a document for later analysis
//   - GET /api/v1/documents: list stored documents
//   - GET /api/v1/documents/{id}: fetch a stored document
//   - GET /api/v1/documents/{id}/analysis: analyze a stored document
//   - DELETE /api/v1/documents/{id}: remove a stored document
//
// Analysis results are cached by document content hash, so repeated
// requests for identical content never rebuild the tree.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jsonlens/pkg/cache"
	"github.com/matzehuels/jsonlens/pkg/store"
)

// rootLabel names the tree root in API analysis results.
const rootLabel = "document"

// Config holds server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// MaxBodyBytes caps uploaded document size.
	MaxBodyBytes int64

	// CacheTTL is the lifetime of cached analysis results.
	CacheTTL time.Duration
}

// Server serves the JSONLens HTTP API.
type Server struct {
	cfg    Config
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	http   *http.Server
}

// New creates a server. A nil cache disables analysis caching and a nil
// keyer falls back to the default derivation.
func New(cfg Config, st store.Store, c cache.Cache, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10 << 20
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		cache:  c,
		keyer:  cache.NewScopedKeyer(nil, "server:"),
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the chi route tree. Exposed for tests.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", s.handleDocumentCreate)
			r.Get("/", s.handleDocumentList)
			r.Get("/{id}", s.handleDocumentGet)
			r.Get("/{id}/analysis", s.handleDocumentAnalysis)
			r.Delete("/{id}", s.handleDocumentDelete)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", s.cfg.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("Shutting down")
	return s.http.Shutdown(shutdownCtx)
}
