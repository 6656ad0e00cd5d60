package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jsonlens/pkg/doctree"
	"github.com/matzehuels/jsonlens/pkg/jsonvalue"
)

// DOTOptions configures Graphviz DOT export.
type DOTOptions struct {
	// Detailed includes primitive value previews in node labels.
	// When false, only names and container summaries are shown.
	Detailed bool

	// MaxDepth limits the exported depth; 0 means unlimited.
	MaxDepth int
}

// ToDOT converts a document tree to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
//
// Container nodes are drawn as filled boxes, primitives as plain boxes.
// Node IDs are root-relative paths, so they are stable across exports of
// the same document.
func ToDOT(root *doctree.Node, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	type dotFrame struct {
		node *doctree.Node
		id   string
	}

	stack := []dotFrame{{node: root, id: "$"}}
	var edges []string
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fmt.Fprintf(&buf, "  %q [%s];\n", f.id, strings.Join(fmtAttrs(f.node, opts), ", "))

		if opts.MaxDepth > 0 && f.node.Depth >= opts.MaxDepth {
			continue
		}
		for _, c := range f.node.Children {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", f.id, childPath(f.id, c.Name)))
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			c := f.node.Children[i]
			stack = append(stack, dotFrame{node: c, id: childPath(f.id, c.Name)})
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// childPath extends a node path with a key or index step.
func childPath(parent, name string) string {
	if strings.HasPrefix(name, "[") {
		return parent + name
	}
	return parent + "." + name
}

func fmtLabel(n *doctree.Node, detailed bool) string {
	label := n.Name
	switch {
	case n.IsContainer():
		label += "\n" + n.Value.Preview(0)
	case detailed:
		label += "\n" + n.Value.Preview(24)
	}
	return label
}

func fmtAttrs(n *doctree.Node, opts DOTOptions) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
	switch {
	case n.Kind == doctree.KindObject:
		attrs = append(attrs, "fillcolor=lightblue")
	case n.Kind == doctree.KindArray:
		attrs = append(attrs, "fillcolor=lightgrey")
	case n.PrimitiveKind == jsonvalue.Null:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=grey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderFormat(dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderFormat(dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderFormat(dot string, format graphviz.Format, buf *bytes.Buffer) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
