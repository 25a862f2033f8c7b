package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/buildboard/internal/domain"
)

type artifactRow struct {
	item  domain.Artifact
	depth int
}

// ArtifactListModel is an immutable model for the artifact tree of a stage.
type ArtifactListModel struct {
	rows   []artifactRow
	cursor int
}

// NewArtifactListModel creates an artifact list model, directories first
// as delivered by the API.
func NewArtifactListModel(items []domain.Artifact) ArtifactListModel {
	var m ArtifactListModel
	var walk func(items []domain.Artifact, depth int)
	walk = func(items []domain.Artifact, depth int) {
		for _, a := range items {
			m.rows = append(m.rows, artifactRow{item: a, depth: depth})
			walk(a.Children, depth+1)
		}
	}
	walk(items, 0)
	return m
}

// MoveDown returns a new model with the cursor moved down by one.
func (m ArtifactListModel) MoveDown() ArtifactListModel {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m ArtifactListModel) MoveUp() ArtifactListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// Selected returns the artifact under the cursor.
func (m ArtifactListModel) Selected() (domain.Artifact, bool) {
	if len(m.rows) == 0 {
		return domain.Artifact{}, false
	}
	return m.rows[m.cursor].item, true
}

// View renders the tree as a string.
func (m ArtifactListModel) View() string {
	if len(m.rows) == 0 {
		return "No artifacts.\n"
	}
	var sb strings.Builder
	for i, r := range m.rows {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		name := r.item.Name
		if r.item.IsDir() {
			name = titleStyle.Render(name + "/")
		}
		sb.WriteString(fmt.Sprintf("%s%s%s\n", prefix, strings.Repeat("  ", r.depth), name))
	}
	return sb.String()
}
