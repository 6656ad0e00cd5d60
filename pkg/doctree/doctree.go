// Package doctree derives a renderable tree and aggregate statistics from a
// decoded JSON document.
//
// This is the core of JSONLens: [Build] walks a [jsonvalue.Value] once and
// produces both a [Node] hierarchy (labels, depths, sibling markers, default
// expansion) and a [Stats] record (node counts by kind, maximum nesting
// depth). Both outputs derive from the same immutable snapshot, so a caller
// that swaps in a new document replaces them together and never observes a
// tree and stats computed from different inputs.
//
// The traversal uses an explicit work stack rather than recursion, so
// arbitrarily deep documents are bounded by heap rather than goroutine
// stack. The builder cannot fail: classification is total over the closed
// jsonvalue.Kind set.
//
// # Usage
//
//	v, err := jsonvalue.DecodeFile("package.json")
//	if err != nil {
//	    return err // previous tree/stats stay untouched
//	}
//	root, stats := doctree.Build(v, "package.json")
//	fmt.Println(stats.NodeCount, stats.MaxDepth)
package doctree

import (
	"fmt"

	"github.com/matzehuels/jsonlens/pkg/jsonvalue"
)

// Kind classifies a tree node for rendering. Null, Bool, Number, and String
// values all collapse into KindPrimitive; the node's PrimitiveKind keeps the
// original JSON type for display.
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindObject
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// DefaultOpenDepth is the depth below which nodes start expanded: the root
// and its immediate container children are open, deeper nodes collapsed.
const DefaultOpenDepth = 2

// Node is a derived, read-only view of one JSON value for rendering.
//
// The tree's shape mirrors the document exactly: no reordering, no dropped
// nodes, and every child's Depth is its parent's Depth plus one.
type Node struct {
	// Name labels the node: the object key or "[i]" array index that led
	// here, or the caller-supplied root label for the root.
	Name string

	// Kind is the render classification; PrimitiveKind refines
	// KindPrimitive with the original JSON type.
	Kind          Kind
	PrimitiveKind jsonvalue.Kind

	// Depth is the distance from the root (root is 0).
	Depth int

	// Children holds the node's entries in document order: index order for
	// arrays, key-insertion order for objects. Empty for primitives.
	Children []*Node

	// LastSibling is true iff this node is the final entry among its
	// immediate siblings. The root, having no siblings, is always last.
	LastSibling bool

	// DefaultOpen seeds the initial expand state: true iff Depth < DefaultOpenDepth.
	// Ephemeral expand/collapse toggling beyond this default is view state
	// and lives in the presentation layer, not here.
	DefaultOpen bool

	// Value references the underlying document node for value display.
	Value *jsonvalue.Value
}

// IsContainer reports whether the node is an object or array.
func (n *Node) IsContainer() bool {
	return n.Kind == KindObject || n.Kind == KindArray
}

// Stats aggregates whole-document structural counts.
//
// NodeCount always equals ObjectCount + ArrayCount + PrimitiveCount.
// MaxDepth is the greatest Depth reached by any node, containers included:
// an empty array at depth 0 still contributes MaxDepth 0.
type Stats struct {
	NodeCount      int `json:"node_count"`
	ObjectCount    int `json:"object_count"`
	ArrayCount     int `json:"array_count"`
	PrimitiveCount int `json:"primitive_count"`
	MaxDepth       int `json:"max_depth"`
}

// classify maps a value onto its render kind. Total over the closed Kind
// set: every decoded value is exactly one of object, array, or primitive.
func classify(v *jsonvalue.Value) Kind {
	switch v.Kind {
	case jsonvalue.Object:
		return KindObject
	case jsonvalue.Array:
		return KindArray
	default:
		return KindPrimitive
	}
}

// frame is one unit of traversal work: a value to classify, the node slot
// its result lands in, and the labeling context it inherits.
type frame struct {
	value *jsonvalue.Value
	name  string
	depth int
	last  bool

	// parent and index locate the produced node in its parent's Children
	// slice, so the tree keeps document order regardless of stack order.
	parent *Node
	index  int
}

// Build derives the render tree and document statistics for a decoded value
// in a single depth-first traversal.
//
// A nil value is treated as JSON null, which is itself a one-node document.
// Build is deterministic and pure: running it twice on the same value yields
// an identical tree shape and identical stats.
func Build(v *jsonvalue.Value, rootLabel string) (*Node, Stats) {
	if v == nil {
		v = &jsonvalue.Value{Kind: jsonvalue.Null}
	}

	var stats Stats
	var root *Node

	stack := []frame{{value: v, name: rootLabel, depth: 0, last: true}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &Node{
			Name:          f.name,
			Kind:          classify(f.value),
			PrimitiveKind: f.value.Kind,
			Depth:         f.depth,
			LastSibling:   f.last,
			DefaultOpen:   f.depth < DefaultOpenDepth,
			Value:         f.value,
		}

		if f.parent == nil {
			root = node
		} else {
			f.parent.Children[f.index] = node
		}

		stats.NodeCount++
		if f.depth > stats.MaxDepth {
			stats.MaxDepth = f.depth
		}

		switch node.Kind {
		case KindObject:
			stats.ObjectCount++
			node.Children = make([]*Node, len(f.value.Members))
			for i, m := range f.value.Members {
				stack = append(stack, frame{
					value:  m.Value,
					name:   m.Key,
					depth:  f.depth + 1,
					last:   i == len(f.value.Members)-1,
					parent: node,
					index:  i,
				})
			}
		case KindArray:
			stats.ArrayCount++
			node.Children = make([]*Node, len(f.value.Elems))
			for i, e := range f.value.Elems {
				stack = append(stack, frame{
					value:  e,
					name:   fmt.Sprintf("[%d]", i),
					depth:  f.depth + 1,
					last:   i == len(f.value.Elems)-1,
					parent: node,
					index:  i,
				})
			}
		default:
			stats.PrimitiveCount++
		}
	}

	return root, stats
}

// Walk visits every node in depth-first document order, calling fn with each
// node. Traversal is iterative for the same stack-safety reason as Build.
func Walk(root *Node, fn func(*Node)) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
