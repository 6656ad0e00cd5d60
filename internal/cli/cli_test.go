package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/jsonlens/pkg/config"
	"github.com/matzehuels/jsonlens/pkg/errors"
)

// newTestCLI builds a CLI with defaults, bypassing the user config file.
func newTestCLI() *CLI {
	return &CLI{
		Logger: newLogger(io.Discard, LogInfo),
		Config: config.Default(),
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{"stats", "tree", "explore", "export", "serve", "cache", "completion"}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}

	for _, name := range want {
		if !have[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"a":1}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := loadDocument(path)
	if err != nil {
		t.Fatalf("loadDocument: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("data = %q", data)
	}
}

func TestLoadDocumentMissing(t *testing.T) {
	_, err := loadDocument(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("missing file should error")
	}
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestAnalyzeDocument(t *testing.T) {
	a, err := analyzeDocument([]byte(`{"a":[1,2],"b":"x"}`))
	if err != nil {
		t.Fatalf("analyzeDocument: %v", err)
	}

	if a.Stats.NodeCount != 5 {
		t.Errorf("NodeCount = %d, want 5", a.Stats.NodeCount)
	}
	if a.Stats.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", a.Stats.MaxDepth)
	}
	if a.Root.Name != rootLabel {
		t.Errorf("root name = %q", a.Root.Name)
	}
	if a.Hash == "" {
		t.Error("analysis should carry a content hash")
	}
}

func TestAnalyzeDocumentInvalid(t *testing.T) {
	_, err := analyzeDocument([]byte(`{"a":`))
	if err == nil {
		t.Fatal("malformed document should error")
	}
	if errors.GetCode(err) != errors.ErrCodeParse {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeParse)
	}
}

func TestDocumentStatsCaching(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"a":[1,2,3]}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := newTestCLI()
	ctx := t.Context()

	stats, cached, err := c.documentStats(ctx, path, false)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if cached {
		t.Error("first run should not be cached")
	}
	if stats.NodeCount != 5 {
		t.Errorf("NodeCount = %d, want 5", stats.NodeCount)
	}

	stats2, cached2, err := c.documentStats(ctx, path, false)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !cached2 {
		t.Error("second run should hit the cache")
	}
	if stats2 != stats {
		t.Errorf("cached stats %+v != fresh stats %+v", stats2, stats)
	}
}

func TestDocumentStatsNoCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`[true,false]`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := newTestCLI()
	for i := 0; i < 2; i++ {
		_, cached, err := c.documentStats(t.Context(), path, true)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if cached {
			t.Errorf("run %d: --no-cache should never hit the cache", i)
		}
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range exportFormats {
		if !validFormat(f) {
			t.Errorf("validFormat(%q) = false", f)
		}
	}
	for _, f := range []string{"pdf", "jpeg", ""} {
		if validFormat(f) {
			t.Errorf("validFormat(%q) = true", f)
		}
	}
}

func TestDefaultExportPath(t *testing.T) {
	tests := []struct {
		input  string
		format string
		want   string
	}{
		{"data.json", "dot", "data.dot"},
		{"/tmp/deep/config.json", "svg", "config.svg"},
		{"noext", "png", "noext.png"},
		{"-", "dot", "document.dot"},
	}
	for _, tt := range tests {
		if got := defaultExportPath(tt.input, tt.format); got != tt.want {
			t.Errorf("defaultExportPath(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
