package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/buildboard/internal/domain"
)

// StepListModel is an immutable model for a tree of stages and steps,
// rendered flat with indentation.
type StepListModel struct {
	nodes  []domain.FlatNode
	cursor int
}

// NewStepListModel creates a step list model.
func NewStepListModel(nodes []domain.FlatNode) StepListModel {
	return StepListModel{nodes: nodes}
}

// NewStageListModel lists stages at the top level, for picking one.
func NewStageListModel(stages []domain.Node) StepListModel {
	nodes := make([]domain.FlatNode, len(stages))
	for i, s := range stages {
		nodes[i] = domain.FlatNode{Node: s}
	}
	return StepListModel{nodes: nodes}
}

// UpdateNodes swaps in a refreshed tree, keeping the cursor on the same
// node id when it is still present.
func (m StepListModel) UpdateNodes(nodes []domain.FlatNode) StepListModel {
	selected, ok := m.Selected()
	m.nodes = nodes
	m.cursor = 0
	if ok {
		m = m.Select(selected.ID)
	}
	return m
}

// Select moves the cursor to the node with the given id, if present.
func (m StepListModel) Select(id int) StepListModel {
	for i, f := range m.nodes {
		if f.Node.ID == id {
			m.cursor = i
			break
		}
	}
	return m
}

// MoveDown returns a new model with the cursor moved down by one.
func (m StepListModel) MoveDown() StepListModel {
	if m.cursor < len(m.nodes)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m StepListModel) MoveUp() StepListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// Cursor returns the current cursor position.
func (m StepListModel) Cursor() int {
	return m.cursor
}

// Selected returns the node under the cursor.
func (m StepListModel) Selected() (domain.Node, bool) {
	if len(m.nodes) == 0 {
		return domain.Node{}, false
	}
	return m.nodes[m.cursor].Node, true
}

// View renders the tree as a string with cursor indicators.
func (m StepListModel) View() string {
	if len(m.nodes) == 0 {
		return "No stages found.\n"
	}
	var sb strings.Builder
	for i, f := range m.nodes {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		n := f.Node
		name := truncate(n.Title(), 40-2*f.Depth)
		if n.Type != domain.NodeStep {
			name = titleStyle.Render(name)
		}
		sb.WriteString(fmt.Sprintf("%s%s%s %s %s%s\n",
			prefix,
			strings.Repeat("  ", f.Depth),
			statusIcon(n.Category()),
			name,
			dimStyle.Render(formatDuration(n.Duration())),
			nodeBadges(n),
		))
	}
	return sb.String()
}

func nodeBadges(n domain.Node) string {
	var badges []string
	if n.Tests != nil {
		badges = append(badges, fmt.Sprintf("tests %d/%d", n.Tests.Passed, n.Tests.Total))
	}
	if n.Artifacts > 0 {
		badges = append(badges, fmt.Sprintf("artifacts %d", n.Artifacts))
	}
	if len(badges) == 0 {
		return ""
	}
	return "  " + dimStyle.Render("["+strings.Join(badges, ", ")+"]")
}
