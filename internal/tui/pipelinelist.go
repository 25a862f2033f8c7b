package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/waabox/buildboard/internal/domain"
	"github.com/waabox/buildboard/internal/status"
)

// PipelineListModel is an immutable model for one page of the pipeline list.
type PipelineListModel struct {
	page   domain.PipelinePage
	cursor int
}

// NewPipelineListModel creates a pipeline list model for the given page.
func NewPipelineListModel(page domain.PipelinePage) PipelineListModel {
	return PipelineListModel{page: page}
}

// UpdatePage swaps in a refreshed page, keeping the cursor on the same
// pipeline when it is still listed.
func (m PipelineListModel) UpdatePage(page domain.PipelinePage) PipelineListModel {
	selected := m.SelectedPipeline().ID
	m.page = page
	m.cursor = 0
	for i, p := range page.Items {
		if p.ID == selected {
			m.cursor = i
			break
		}
	}
	return m
}

// MoveDown returns a new model with the cursor moved down by one.
func (m PipelineListModel) MoveDown() PipelineListModel {
	if m.cursor < len(m.page.Items)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m PipelineListModel) MoveUp() PipelineListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// SelectedIndex returns the current cursor position.
func (m PipelineListModel) SelectedIndex() int {
	return m.cursor
}

// SelectedPipeline returns the currently highlighted pipeline.
// Returns zero-value PipelineInfo if the list is empty.
func (m PipelineListModel) SelectedPipeline() domain.PipelineInfo {
	if len(m.page.Items) == 0 {
		return domain.PipelineInfo{}
	}
	return m.page.Items[m.cursor]
}

// Page returns the page being shown.
func (m PipelineListModel) Page() domain.PipelinePage {
	return m.page
}

// AnyRunning reports whether a listed pipeline is still running.
func (m PipelineListModel) AnyRunning() bool {
	for _, p := range m.page.Items {
		if p.Category() == status.CategoryInProgress {
			return true
		}
	}
	return false
}

// View renders the pipeline list as a string.
func (m PipelineListModel) View() string {
	if len(m.page.Items) == 0 {
		return "No pipelines found.\n"
	}
	var sb strings.Builder
	for i, p := range m.page.Items {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%s #%-6s %-24s %-16s %8s  %s\n",
			prefix,
			statusIcon(p.Category()),
			p.ID,
			truncate(p.Name, 24),
			truncate(p.Head, 16),
			formatDuration(p.Duration()),
			formatAge(p.Date),
		))
	}
	sb.WriteString(dimStyle.Render(fmt.Sprintf("page %d/%d", m.page.PageNum, max(m.page.TotalPages, 1))))
	sb.WriteString("\n")
	return sb.String()
}

func formatAge(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		if date == "" {
			return "--"
		}
		return date
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 2 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
