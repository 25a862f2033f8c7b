package tui_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/waabox/buildboard/internal/domain"
	"github.com/waabox/buildboard/internal/tui"
)

func numbered(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "line%d\n", i)
	}
	return sb.String()
}

func TestLogViewModel_ScrollIsClamped(t *testing.T) {
	m := tui.NewLogViewModel("sh", numbered(30))

	m = m.ScrollBy(-5, 10)
	if m.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", m.Offset())
	}
	m = m.ScrollBy(100, 10)
	if m.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", m.Offset())
	}
	if !strings.HasPrefix(m.View(10), "line21\n") {
		t.Errorf("expected view to start at line21, got:\n%s", m.View(10))
	}
}

func TestLogViewModel_TopAndBottom(t *testing.T) {
	m := tui.NewLogViewModel("sh", numbered(25)).Bottom(10)
	if m.Offset() != 15 {
		t.Errorf("expected offset 15, got %d", m.Offset())
	}
	if m.Top().Offset() != 0 {
		t.Error("expected Top to reset offset")
	}
}

func TestLogViewModel_AppendJoinsSplitLine(t *testing.T) {
	m := tui.NewOutputViewModel("sh", domain.Output{Content: "[INFO] Buil", Position: 11})

	m = m.Append(domain.Output{Content: "ding module\n[INFO] Done", Position: 35}, 10)
	m = m.Append(domain.Output{Content: "\n", Position: 36}, 10)
	m = m.Append(domain.Output{Content: "next\n", Position: 41}, 10)

	want := "[INFO] Building module\n[INFO] Done\nnext\n"
	if got := m.View(10); got != want {
		t.Errorf("expected joined lines %q, got %q", want, got)
	}
}

func TestLogViewModel_AppendFollowsTail(t *testing.T) {
	m := tui.NewOutputViewModel("sh", domain.Output{Content: numbered(12), Position: 100}).Bottom(10)

	m = m.Append(domain.Output{Content: "line13\nline14\n", Position: 114}, 10)
	if m.Offset() != 4 {
		t.Errorf("expected offset to follow the tail, got %d", m.Offset())
	}
	if m.Position() != 114 {
		t.Errorf("expected position 114, got %d", m.Position())
	}
	if !strings.Contains(m.View(10), "line14") {
		t.Errorf("expected appended line in view, got:\n%s", m.View(10))
	}
}

func TestLogViewModel_AppendKeepsScrolledPosition(t *testing.T) {
	m := tui.NewLogViewModel("sh", numbered(30))
	m = m.Append(domain.Output{Content: "line31\n"}, 10)
	if m.Offset() != 0 {
		t.Errorf("expected offset to stay at the top, got %d", m.Offset())
	}
}

func TestLogViewModel_EmptyContent(t *testing.T) {
	m := tui.NewLogViewModel("sh", "")
	if !strings.Contains(m.View(10), "no output") {
		t.Errorf("expected placeholder, got:\n%s", m.View(10))
	}
}
