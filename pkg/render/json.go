package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/jsonlens/pkg/doctree"
)

// =============================================================================
// Report Serialization API
// =============================================================================

// TreeNode is the JSON wire form of a doctree.Node. Primitive values are
// inlined as previews; container children are nested.
type TreeNode struct {
	Name        string     `json:"name,omitempty"`
	Kind        string     `json:"kind"`
	Type        string     `json:"type,omitempty"` // primitive sub-kind
	Depth       int        `json:"depth"`
	Value       string     `json:"value,omitempty"`
	LastSibling bool       `json:"last_sibling,omitempty"`
	DefaultOpen bool       `json:"default_open,omitempty"`
	Children    []TreeNode `json:"children,omitempty"`
}

// Report bundles the render tree and document statistics produced by one
// build, so consumers always receive both outputs of the same traversal.
type Report struct {
	Tree  TreeNode      `json:"tree"`
	Stats doctree.Stats `json:"stats"`
}

// NewReport converts a built tree and its stats into the wire form.
func NewReport(root *doctree.Node, stats doctree.Stats) Report {
	return Report{Tree: fromNode(root), Stats: stats}
}

// MarshalReport converts a built tree and its stats to indented JSON bytes.
func MarshalReport(root *doctree.Node, stats doctree.Stats) ([]byte, error) {
	data, err := json.MarshalIndent(NewReport(root, stats), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return data, nil
}

// WriteReport writes the JSON report to an io.Writer.
func WriteReport(w io.Writer, root *doctree.Node, stats doctree.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(root, stats)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteReportFile writes the JSON report to a file.
// The file is created with 0644 permissions.
func WriteReportFile(root *doctree.Node, stats doctree.Stats, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteReport(f, root, stats)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func fromNode(n *doctree.Node) TreeNode {
	out := TreeNode{
		Name:        n.Name,
		Kind:        n.Kind.String(),
		Depth:       n.Depth,
		LastSibling: n.LastSibling,
		DefaultOpen: n.DefaultOpen,
	}
	if n.Kind == doctree.KindPrimitive {
		out.Type = n.PrimitiveKind.String()
		out.Value = n.Value.Preview(0)
	}
	if len(n.Children) > 0 {
		out.Children = make([]TreeNode, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = fromNode(c)
		}
	}
	return out
}
