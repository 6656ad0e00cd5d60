package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/jsonlens/pkg/doctree"
	"github.com/matzehuels/jsonlens/pkg/jsonvalue"
)

func buildTree(t *testing.T, src string) (*doctree.Node, doctree.Stats) {
	t.Helper()
	v, err := jsonvalue.DecodeString(src)
	if err != nil {
		t.Fatalf("decode %q: %v", src, err)
	}
	return doctree.Build(v, "document")
}

func TestTextGlyphs(t *testing.T) {
	root, _ := buildTree(t, `{"name":"app","deps":[1,2]}`)

	got := Text(root, TextOptions{})
	want := strings.Join([]string{
		`document {2 keys}`,
		`├── name: "app"`,
		`└── deps [2 items]`,
		`    ├── [0]: 1`,
		`    └── [1]: 2`,
		``,
	}, "\n")
	if got != want {
		t.Errorf("Text output:\n%s\nwant:\n%s", got, want)
	}
}

func TestTextContinuationLines(t *testing.T) {
	// A non-last container child must draw a vertical rule for its subtree.
	root, _ := buildTree(t, `{"a":{"b":1},"c":2}`)

	got := Text(root, TextOptions{})
	want := strings.Join([]string{
		`document {2 keys}`,
		`├── a {1 key}`,
		`│   └── b: 1`,
		`└── c: 2`,
		``,
	}, "\n")
	if got != want {
		t.Errorf("Text output:\n%s\nwant:\n%s", got, want)
	}
}

func TestTextMaxDepth(t *testing.T) {
	root, _ := buildTree(t, `{"a":{"b":{"c":1}}}`)

	got := Text(root, TextOptions{MaxDepth: 1})
	if strings.Contains(got, "b") {
		t.Errorf("depth-limited output should omit depth-2 nodes:\n%s", got)
	}
	if !strings.Contains(got, "a {1 key}") {
		t.Errorf("depth-1 container summary missing:\n%s", got)
	}
}

func TestTextPrimitiveRoot(t *testing.T) {
	root, _ := buildTree(t, `42`)

	got := Text(root, TextOptions{})
	if got != "document: 42\n" {
		t.Errorf("primitive root = %q", got)
	}
}

func TestTextNilRoot(t *testing.T) {
	if got := Text(nil, TextOptions{}); got != "" {
		t.Errorf("nil root rendered %q", got)
	}
}

func TestTextValueTruncation(t *testing.T) {
	root, _ := buildTree(t, `{"s":"`+strings.Repeat("x", 200)+`"}`)

	got := Text(root, TextOptions{MaxValueLen: 20})
	for _, line := range strings.Split(got, "\n") {
		if len([]rune(line)) > 40 {
			t.Errorf("line exceeds truncated width: %q", line)
		}
	}
}
