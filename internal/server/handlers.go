package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/jsonlens/pkg/cache"
	"github.com/matzehuels/jsonlens/pkg/doctree"
	"github.com/matzehuels/jsonlens/pkg/errors"
	"github.com/matzehuels/jsonlens/pkg/jsonvalue"
	"github.com/matzehuels/jsonlens/pkg/observability"
	"github.com/matzehuels/jsonlens/pkg/render"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze analyzes the raw JSON request body and returns the
// tree report without storing the document.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := s.analyze(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report)
}

// handleDocumentCreate validates and stores the request body as a
// document. The optional ?name= query labels it.
func (s *Server) handleDocumentCreate(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Reject documents that would fail analysis later
	if _, err := jsonvalue.Decode(bytes.NewReader(body)); err != nil {
		writeError(w, err)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "untitled.json"
	}

	doc, err := s.store.Put(r.Context(), name, body, cache.Hash(body))
	if err != nil {
		writeError(w, err)
		return
	}

	// Echo metadata only
	doc.Content = nil
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleDocumentList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleDocumentGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleDocumentAnalysis analyzes a stored document.
func (s *Server) handleDocumentAnalysis(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := s.analyze(r.Context(), doc.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report)
}

func (s *Server) handleDocumentDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// analyze builds the report for raw document bytes, consulting the
// cache by content hash first.
func (s *Server) analyze(ctx context.Context, body []byte) ([]byte, error) {
	hash := cache.Hash(body)
	key := s.keyer.ReportKey(hash, cache.ReportKeyOpts{RootLabel: rootLabel})

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "report")
		return data, nil
	} else if err != nil {
		s.logger.Warn("Cache get failed", "error", err)
	}
	observability.Cache().OnCacheMiss(ctx, "report")

	start := time.Now()
	observability.Analysis().OnAnalyzeStart(ctx, hash, len(body))

	value, err := jsonvalue.Decode(bytes.NewReader(body))
	if err != nil {
		observability.Analysis().OnAnalyzeComplete(ctx, hash, 0, time.Since(start), err)
		return nil, err
	}

	root, stats := doctree.Build(value, rootLabel)
	observability.Analysis().OnAnalyzeComplete(ctx, hash, stats.NodeCount, time.Since(start), nil)

	report, err := render.MarshalReport(root, stats)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal report")
	}

	if err := s.cache.Set(ctx, key, report, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("Cache set failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "report", len(report))
	}
	return report, nil
}

// readBody reads the request body up to the configured limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "request body is empty")
	}
	return body, nil
}
