package tui

import (
	"strings"

	"github.com/waabox/buildboard/internal/domain"
)

// LogViewModel is an immutable scrollable text viewer for step output and
// artifact content.
type LogViewModel struct {
	title    string
	lines    []string
	offset   int
	position int64
	// partial is set when the last line has no terminating newline yet.
	partial bool
}

// NewLogViewModel creates a viewer for content.
func NewLogViewModel(title, content string) LogViewModel {
	return LogViewModel{title: title, lines: splitLines(content), partial: isPartial(content)}
}

// NewOutputViewModel creates a viewer for a step output segment.
func NewOutputViewModel(title string, out domain.Output) LogViewModel {
	m := NewLogViewModel(title, out.Content)
	m.position = out.Position
	return m
}

// Append adds a follow-up output segment. A segment that continues an
// unterminated line is joined onto it. The viewer stays on the tail when
// it was already there.
func (m LogViewModel) Append(out domain.Output, visible int) LogViewModel {
	atTail := m.offset >= m.maxOffset(visible)
	if out.Content != "" {
		lines := append([]string(nil), m.lines...)
		next := strings.Split(strings.TrimSuffix(out.Content, "\n"), "\n")
		if m.partial && len(lines) > 0 {
			lines[len(lines)-1] += next[0]
			next = next[1:]
		}
		m.lines = append(lines, next...)
		m.partial = isPartial(out.Content)
	}
	if out.Position > 0 {
		m.position = out.Position
	}
	if atTail {
		m.offset = m.maxOffset(visible)
	}
	return m
}

// Position is the offset the next output segment starts at.
func (m LogViewModel) Position() int64 {
	return m.position
}

// Title returns the viewer title.
func (m LogViewModel) Title() string {
	return m.title
}

// Offset returns the index of the first visible line.
func (m LogViewModel) Offset() int {
	return m.offset
}

func (m LogViewModel) maxOffset(visible int) int {
	if n := len(m.lines) - visible; n > 0 {
		return n
	}
	return 0
}

// ScrollBy moves the view by delta lines, clamped to the content.
func (m LogViewModel) ScrollBy(delta, visible int) LogViewModel {
	m.offset += delta
	if limit := m.maxOffset(visible); m.offset > limit {
		m.offset = limit
	}
	if m.offset < 0 {
		m.offset = 0
	}
	return m
}

// Top jumps to the first line.
func (m LogViewModel) Top() LogViewModel {
	m.offset = 0
	return m
}

// Bottom jumps to the last page.
func (m LogViewModel) Bottom(visible int) LogViewModel {
	m.offset = m.maxOffset(visible)
	return m
}

// View renders visible lines starting at the current offset.
func (m LogViewModel) View(visible int) string {
	if len(m.lines) == 0 {
		return dimStyle.Render("(no output)") + "\n"
	}
	start := min(m.offset, len(m.lines)-1)
	end := min(start+visible, len(m.lines))
	return strings.Join(m.lines[start:end], "\n") + "\n"
}

func isPartial(s string) bool {
	return s != "" && !strings.HasSuffix(s, "\n")
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
