package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/jsonlens/pkg/doctree"
	"github.com/matzehuels/jsonlens/pkg/jsonvalue"
)

// Explorer styles
var (
	treeCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeBranchStyle = lipgloss.NewStyle().Foreground(colorDim)
	treeKeyStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	treeStringStyle = lipgloss.NewStyle().Foreground(colorGreen)
	treeNumberStyle = lipgloss.NewStyle().Foreground(colorBlue)
	treeBoolStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	treeNullStyle   = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	treeDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TreeModel - Interactive document tree explorer
// =============================================================================

// visibleRow is one rendered line of the flattened tree.
type visibleRow struct {
	node   *doctree.Node
	branch string // glyphs before the label
	prefix string // glyphs inherited by children
	path   string // dotted path from the root, e.g. $.deps[0].name
}

// TreeModel is the bubbletea model for interactive tree exploration.
// Containers start expanded or collapsed according to their DefaultOpen
// flag, so shallow structure is visible immediately while deep subtrees
// stay folded.
type TreeModel struct {
	Root  *doctree.Node
	Stats doctree.Stats

	expanded map[*doctree.Node]bool
	visible  []visibleRow

	Cursor      int
	Offset      int
	Height      int
	MaxValueLen int
}

// NewTreeModel creates an explorer model for the given tree.
func NewTreeModel(root *doctree.Node, stats doctree.Stats) TreeModel {
	m := TreeModel{
		Root:        root,
		Stats:       stats,
		expanded:    make(map[*doctree.Node]bool),
		Height:      20,
		MaxValueLen: 60,
	}
	doctree.Walk(root, func(n *doctree.Node) {
		if n.IsContainer() {
			m.expanded[n] = n.DefaultOpen
		}
	})
	m.flatten()
	return m
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
			}
		case "pgup":
			m.Cursor -= m.Height
			if m.Cursor < 0 {
				m.Cursor = 0
			}
		case "pgdown":
			m.Cursor += m.Height
			if m.Cursor > len(m.visible)-1 {
				m.Cursor = len(m.visible) - 1
			}
		case "g", "home":
			m.Cursor = 0
		case "G", "end":
			m.Cursor = len(m.visible) - 1
		case "enter", " ":
			m.toggle(m.currentNode())
		case "right", "l":
			m.setExpanded(m.currentNode(), true)
		case "left", "h":
			m.setExpanded(m.currentNode(), false)
		case "e":
			m.setAll(true)
		case "c":
			m.setAll(false)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 5
		if m.Height < 5 {
			m.Height = 5
		}
	}

	m.clampScroll()
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("JSONLens"))
	b.WriteString("  ")
	b.WriteString(treeDimStyle.Render("↑/↓ move  ⏎ toggle  e expand all  c collapse all  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for i := m.Offset; i < end; i++ {
		row := m.visible[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = treeCursorStyle.Render("▸ ")
		}

		b.WriteString(cursor)
		b.WriteString(treeBranchStyle.Render(row.branch))
		b.WriteString(m.renderLabel(row, i == m.Cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// renderLabel formats one node's label, marker and value preview.
func (m TreeModel) renderLabel(row visibleRow, current bool) string {
	n := row.node

	keyStyle := treeKeyStyle
	if current {
		keyStyle = keyStyle.Bold(true)
	}

	if n.IsContainer() {
		marker := "▸ "
		if m.expanded[n] {
			marker = "▾ "
		}
		return treeDimStyle.Render(marker) + keyStyle.Render(n.Name) + " " +
			treeDimStyle.Render(n.Value.Preview(m.MaxValueLen))
	}

	return keyStyle.Render(n.Name) + ": " + m.valueStyle(n).Render(n.Value.Preview(m.MaxValueLen))
}

func (m TreeModel) valueStyle(n *doctree.Node) lipgloss.Style {
	switch n.PrimitiveKind {
	case jsonvalue.String:
		return treeStringStyle
	case jsonvalue.Number:
		return treeNumberStyle
	case jsonvalue.Bool:
		return treeBoolStyle
	default:
		return treeNullStyle
	}
}

// footer shows the cursor position, document stats and the current path.
func (m TreeModel) footer() string {
	pos := fmt.Sprintf("[%d/%d]", m.Cursor+1, len(m.visible))
	stats := fmt.Sprintf("%d nodes · depth %d", m.Stats.NodeCount, m.Stats.MaxDepth)

	path := ""
	if m.Cursor < len(m.visible) {
		path = m.visible[m.Cursor].path
	}

	return treeDimStyle.Render("  "+pos+"  "+stats+"  ") + StyleHighlight.Render(path)
}

// currentNode returns the node under the cursor, or nil when the tree
// is empty.
func (m *TreeModel) currentNode() *doctree.Node {
	if m.Cursor < 0 || m.Cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.Cursor].node
}

// toggle flips a container between expanded and collapsed.
func (m *TreeModel) toggle(n *doctree.Node) {
	if n == nil || !n.IsContainer() {
		return
	}
	m.expanded[n] = !m.expanded[n]
	m.reflatten(n)
}

// setExpanded expands or collapses a single container.
func (m *TreeModel) setExpanded(n *doctree.Node, open bool) {
	if n == nil || !n.IsContainer() || m.expanded[n] == open {
		return
	}
	m.expanded[n] = open
	m.reflatten(n)
}

// setAll expands or collapses every container, keeping the cursor on
// a valid row.
func (m *TreeModel) setAll(open bool) {
	target := m.currentNode()
	for n := range m.expanded {
		m.expanded[n] = open
	}
	m.flatten()
	m.moveCursorTo(target)
}

// reflatten rebuilds the visible rows after a toggle and keeps the
// cursor on the toggled node.
func (m *TreeModel) reflatten(n *doctree.Node) {
	m.flatten()
	m.moveCursorTo(n)
}

// moveCursorTo places the cursor on the given node if it is still
// visible, otherwise clamps it into range.
func (m *TreeModel) moveCursorTo(n *doctree.Node) {
	for i, row := range m.visible {
		if row.node == n {
			m.Cursor = i
			return
		}
	}
	if m.Cursor > len(m.visible)-1 {
		m.Cursor = len(m.visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// flatten produces the visible rows for the current expansion state.
// Children of collapsed containers are skipped entirely.
func (m *TreeModel) flatten() {
	m.visible = m.visible[:0]
	if m.Root == nil {
		return
	}

	type frame struct {
		row visibleRow
	}
	stack := []frame{{row: visibleRow{node: m.Root, path: "$"}}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		m.visible = append(m.visible, f.row)

		n := f.row.node
		if !n.IsContainer() || !m.expanded[n] {
			continue
		}

		// Push children in reverse so they pop in document order.
		for i := len(n.Children) - 1; i >= 0; i-- {
			c := n.Children[i]
			branch, cont := "├── ", "│   "
			if c.LastSibling {
				branch, cont = "└── ", "    "
			}
			stack = append(stack, frame{row: visibleRow{
				node:   c,
				branch: f.row.prefix + branch,
				prefix: f.row.prefix + cont,
				path:   childPath(f.row.path, c.Name),
			}})
		}
	}
}

// clampScroll keeps the cursor inside the visible window.
func (m *TreeModel) clampScroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

// childPath appends a step to a dotted document path. Array indices
// already carry brackets in their names.
func childPath(parent, name string) string {
	if strings.HasPrefix(name, "[") {
		return parent + name
	}
	return parent + "." + name
}
