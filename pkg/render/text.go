// Package render produces output renditions of a document tree.
//
// Three sinks are provided: an indented branch-glyph text rendering for
// terminals ([WriteText]), a JSON export of the tree and its statistics
// ([MarshalReport], [WriteReport]), and a Graphviz DOT export with SVG/PNG
// rasterization ([ToDOT], [RenderSVG], [RenderPNG]).
//
// All sinks are read-only over the tree; none of them mutate nodes or keep
// state between calls.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/jsonlens/pkg/doctree"
	"github.com/matzehuels/jsonlens/pkg/jsonvalue"
)

// DefaultMaxValueLen caps primitive value previews in text output.
const DefaultMaxValueLen = 60

// Styles holds per-element lipgloss styles for text rendering.
// A nil *Styles renders plain text with no escape sequences.
type Styles struct {
	Branch    lipgloss.Style // tree glyphs
	Key       lipgloss.Style // object keys and array indices
	Container lipgloss.Style // {n keys} / [n items] summaries
	String    lipgloss.Style
	Number    lipgloss.Style
	Bool      lipgloss.Style
	Null      lipgloss.Style
}

// DefaultStyles returns the standard terminal palette.
func DefaultStyles() *Styles {
	return &Styles{
		Branch:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Key:       lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
		Container: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		String:    lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		Number:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Bool:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Null:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	}
}

// TextOptions configures text tree rendering.
type TextOptions struct {
	// MaxDepth limits how deep the rendering descends; deeper nodes are
	// omitted (container lines already summarize their child counts).
	// 0 means unlimited.
	MaxDepth int

	// MaxValueLen truncates primitive previews; 0 uses DefaultMaxValueLen.
	MaxValueLen int

	// Styles colors the output; nil renders plain text.
	Styles *Styles
}

// textFrame carries one pending line plus the glyph prefix its subtree
// inherits from the ancestor chain.
type textFrame struct {
	node   *doctree.Node
	prefix string // accumulated glyphs for this node's children
	branch string // glyph immediately before this node's label
}

// WriteText renders the tree as indented lines with branch glyphs:
//
//	document {2 keys}
//	├── name: "app"
//	└── deps [2 items]
//	    ├── [0]: 1
//	    └── [1]: 2
//
// Sibling glyphs come from each node's LastSibling flag; the final sibling
// gets a closing corner, every other one a tee. Traversal is iterative so
// deep documents cannot exhaust the stack.
func WriteText(w io.Writer, root *doctree.Node, opts TextOptions) error {
	if root == nil {
		return nil
	}
	maxLen := opts.MaxValueLen
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}

	stack := []textFrame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node

		if _, err := fmt.Fprintln(w, formatLine(f, maxLen, opts.Styles)); err != nil {
			return err
		}

		if opts.MaxDepth > 0 && n.Depth >= opts.MaxDepth {
			continue
		}

		// Push children in reverse so they pop in document order.
		for i := len(n.Children) - 1; i >= 0; i-- {
			c := n.Children[i]
			branch, cont := "├── ", "│   "
			if c.LastSibling {
				branch, cont = "└── ", "    "
			}
			stack = append(stack, textFrame{
				node:   c,
				prefix: f.prefix + cont,
				branch: f.prefix + branch,
			})
		}
	}
	return nil
}

// Text renders the tree to a string. Convenience wrapper around WriteText.
func Text(root *doctree.Node, opts TextOptions) string {
	var b strings.Builder
	_ = WriteText(&b, root, opts)
	return b.String()
}

func formatLine(f textFrame, maxLen int, st *Styles) string {
	n := f.node

	glyphs := f.branch
	label := n.Name
	value := n.Value.Preview(maxLen)

	sep := ": "
	if n.IsContainer() {
		sep = " "
	}

	if st == nil {
		return glyphs + label + sep + value
	}

	return st.Branch.Render(glyphs) + st.Key.Render(label) + sep + styleValue(st, n).Render(value)
}

func styleValue(st *Styles, n *doctree.Node) lipgloss.Style {
	if n.IsContainer() {
		return st.Container
	}
	switch n.PrimitiveKind {
	case jsonvalue.String:
		return st.String
	case jsonvalue.Number:
		return st.Number
	case jsonvalue.Bool:
		return st.Bool
	default:
		return st.Null
	}
}
