package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsonlens/pkg/cache"
	"github.com/matzehuels/jsonlens/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	return New(Config{}, store.NewMemoryStore(), cache.NewNullCache(), logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r := newTestServer(t).Router()

	rec := do(t, r, "GET", "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestAnalyze(t *testing.T) {
	r := newTestServer(t).Router()

	rec := do(t, r, "POST", "/api/v1/analyze", `{"name":"app","tags":["a","b"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var report struct {
		Tree struct {
			Name     string `json:"name"`
			Kind     string `json:"kind"`
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"tree"`
		Stats struct {
			NodeCount int `json:"node_count"`
			MaxDepth  int `json:"max_depth"`
		} `json:"stats"`
	}
	decodeBody(t, rec, &report)

	if report.Tree.Name != "document" {
		t.Errorf("root name = %q", report.Tree.Name)
	}
	if report.Tree.Kind != "object" {
		t.Errorf("root kind = %q", report.Tree.Kind)
	}
	if len(report.Tree.Children) != 2 {
		t.Fatalf("children = %d", len(report.Tree.Children))
	}
	// Key order preserved
	if report.Tree.Children[0].Name != "name" || report.Tree.Children[1].Name != "tags" {
		t.Errorf("child order = [%s %s]", report.Tree.Children[0].Name, report.Tree.Children[1].Name)
	}
	if report.Stats.NodeCount != 5 {
		t.Errorf("node_count = %d, want 5", report.Stats.NodeCount)
	}
	if report.Stats.MaxDepth != 2 {
		t.Errorf("max_depth = %d, want 2", report.Stats.MaxDepth)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	r := newTestServer(t).Router()

	tests := []struct {
		name string
		body string
		code string
	}{
		{"empty body", "", "EMPTY_INPUT"},
		{"whitespace body", "   \n", "EMPTY_INPUT"},
		{"malformed", `{"a":`, "PARSE_ERROR"},
		{"trailing data", `{} []`, "TRAILING_DATA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, "POST", "/api/v1/analyze", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			var body errorBody
			decodeBody(t, rec, &body)
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
			if body.Error.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestAnalyzeUsesCache(t *testing.T) {
	logger := log.New(io.Discard)
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := New(Config{}, store.NewMemoryStore(), fileCache, logger).Router()

	doc := `{"cached":true}`
	first := do(t, r, "POST", "/api/v1/analyze", doc)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	second := do(t, r, "POST", "/api/v1/analyze", doc)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response should be byte-identical")
	}
}

func TestDocumentLifecycle(t *testing.T) {
	r := newTestServer(t).Router()

	// Create
	rec := do(t, r, "POST", "/api/v1/documents?name=pkg.json", `{"version":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created store.Document
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Fatal("created document should have an ID")
	}
	if created.Name != "pkg.json" {
		t.Errorf("name = %q", created.Name)
	}
	if created.Hash == "" {
		t.Error("created document should have a content hash")
	}

	// List
	rec = do(t, r, "GET", "/api/v1/documents", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listing struct {
		Documents []store.Document `json:"documents"`
	}
	decodeBody(t, rec, &listing)
	if len(listing.Documents) != 1 || listing.Documents[0].ID != created.ID {
		t.Errorf("listing = %+v", listing.Documents)
	}

	// Get
	rec = do(t, r, "GET", "/api/v1/documents/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var fetched store.Document
	decodeBody(t, rec, &fetched)
	if string(fetched.Content) != `{"version":1}` {
		t.Errorf("content = %q", fetched.Content)
	}

	// Analysis of stored document
	rec = do(t, r, "GET", "/api/v1/documents/"+created.ID+"/analysis", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("analysis status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report struct {
		Stats struct {
			NodeCount int `json:"node_count"`
		} `json:"stats"`
	}
	decodeBody(t, rec, &report)
	if report.Stats.NodeCount != 2 {
		t.Errorf("node_count = %d, want 2", report.Stats.NodeCount)
	}

	// Delete
	rec = do(t, r, "DELETE", "/api/v1/documents/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Gone
	rec = do(t, r, "GET", "/api/v1/documents/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
	var body errorBody
	decodeBody(t, rec, &body)
	if body.Error.Code != "DOCUMENT_NOT_FOUND" {
		t.Errorf("code = %q", body.Error.Code)
	}
}

func TestDocumentCreateRejectsInvalidJSON(t *testing.T) {
	r := newTestServer(t).Router()

	rec := do(t, r, "POST", "/api/v1/documents", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	// Nothing was stored
	rec = do(t, r, "GET", "/api/v1/documents", "")
	var listing struct {
		Documents []store.Document `json:"documents"`
	}
	decodeBody(t, rec, &listing)
	if len(listing.Documents) != 0 {
		t.Errorf("invalid document should not be stored: %+v", listing.Documents)
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestServer(t).Router()

	// Server assigns one when absent
	rec := do(t, r, "GET", "/healthz", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry X-Request-ID")
	}

	// Client-supplied ID is echoed
	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-id-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-id-1" {
		t.Errorf("request ID = %q, want client-id-1", got)
	}
}
