package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/buildboard/internal/domain"
	"github.com/waabox/buildboard/internal/status"
)

type testRow struct {
	suite int
	test  int // -1 for the suite header
}

// TestListModel is an immutable model for the test results of a stage.
// The cursor moves over test cases; enter toggles the output of the
// selected case.
type TestListModel struct {
	suites   []domain.TestSuite
	rows     []testRow
	cursor   int
	expanded bool
}

// NewTestListModel creates a test list model.
func NewTestListModel(suites []domain.TestSuite) TestListModel {
	m := TestListModel{suites: suites}
	for si, s := range suites {
		m.rows = append(m.rows, testRow{suite: si, test: -1})
		for ti := range s.Tests {
			m.rows = append(m.rows, testRow{suite: si, test: ti})
		}
	}
	m.cursor = m.next(-1, 1)
	return m
}

func (m TestListModel) next(from, step int) int {
	for i := from + step; i >= 0 && i < len(m.rows); i += step {
		if m.rows[i].test >= 0 {
			return i
		}
	}
	if from < 0 {
		return 0
	}
	return from
}

// MoveDown returns a new model with the cursor on the next test case.
func (m TestListModel) MoveDown() TestListModel {
	m.cursor = m.next(m.cursor, 1)
	m.expanded = false
	return m
}

// MoveUp returns a new model with the cursor on the previous test case.
func (m TestListModel) MoveUp() TestListModel {
	m.cursor = m.next(m.cursor, -1)
	m.expanded = false
	return m
}

// Toggle shows or hides the output of the selected case.
func (m TestListModel) Toggle() TestListModel {
	m.expanded = !m.expanded
	return m
}

// Selected returns the test case under the cursor.
func (m TestListModel) Selected() (domain.TestResult, bool) {
	if m.cursor >= len(m.rows) || m.rows[m.cursor].test < 0 {
		return domain.TestResult{}, false
	}
	r := m.rows[m.cursor]
	return m.suites[r.suite].Tests[r.test], true
}

// View renders the suites with their test cases.
func (m TestListModel) View() string {
	if len(m.suites) == 0 {
		return "No test results.\n"
	}
	var sb strings.Builder
	for i, r := range m.rows {
		s := m.suites[r.suite]
		if r.test < 0 {
			c := status.CategorySuccess
			if s.Failed > 0 {
				c = status.CategoryFailure
			}
			sb.WriteString(fmt.Sprintf("%s %s  %s\n",
				statusIcon(c),
				titleStyle.Render(s.Name),
				dimStyle.Render(fmt.Sprintf("%d passed, %d failed, %d skipped of %d",
					s.Passed, s.Failed, s.Skipped, s.Total)),
			))
			continue
		}
		t := s.Tests[r.test]
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		c := status.OfTest(t.Status)
		sb.WriteString(fmt.Sprintf("%s  %s %s %s\n", prefix, statusIcon(c), t.Name, dimStyle.Render(c.Label())))
		if i == m.cursor && m.expanded && t.Output != "" {
			for _, line := range strings.Split(strings.TrimRight(t.Output, "\n"), "\n") {
				sb.WriteString("      " + line + "\n")
			}
		}
	}
	return sb.String()
}
