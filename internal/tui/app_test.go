package tui_test

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/buildboard/internal/domain"
	"github.com/waabox/buildboard/internal/route"
	"github.com/waabox/buildboard/internal/session"
	"github.com/waabox/buildboard/internal/tui"
)

func newApp(src *fakeSource, w *session.Window) tui.AppModel {
	return tui.NewAppModel(tui.Options{
		Source: src,
		Window: w,
		Repo:   domain.Repository{Owner: "oracle", Name: "helidon"},
	})
}

func TestApp_RootListsPipelines(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/")

	view := m.View()
	assert.Equal(t, route.ViewPipelines, m.Resolution().View)
	assert.Contains(t, view, "#42")
	assert.Contains(t, view, "page 1/2")
	assert.Contains(t, view, "oracle/helidon")
}

func TestApp_PagingLoadsNextAndPrevious(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/")

	m = update(t, m, key("n"))
	assert.Contains(t, m.View(), "#7")
	assert.Contains(t, m.View(), "page 2/2")

	m = update(t, m, key("n"))
	assert.Contains(t, m.View(), "page 2/2", "no page after the last")

	m = update(t, m, key("p"))
	assert.Contains(t, m.View(), "#42")
}

func TestApp_EnterOpensPipelineView(t *testing.T) {
	w := session.NewWindow()
	m := navigate(t, newApp(newSource(), w), "/")

	m = update(t, m, key("enter"))

	res := m.Resolution()
	assert.Equal(t, route.ViewSteps, res.View)
	assert.Equal(t, "/42/view", res.Path)
	assert.Equal(t, session.WindowView, w.Get())
	view := m.View()
	assert.Contains(t, view, "compile")
	assert.Contains(t, view, "tests 1/2")
}

func TestApp_PipelineRootRedirectsToView(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/42")

	res := m.Resolution()
	assert.Equal(t, route.ViewSteps, res.View)
	assert.Equal(t, "/42/view", res.Path)
	assert.Equal(t, "/42", res.RedirectedFrom)
}

func TestApp_RefreshPreservesSelection(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/")
	m = update(t, m, key("down"))

	refreshed := domain.PipelinePage{PageNum: 1, TotalPages: 1, Items: []domain.PipelineInfo{
		{ID: "43"}, {ID: "42"}, {ID: "41"},
	}}
	m = update(t, m, tui.PipelinesLoadedMsg{Page: refreshed, Refresh: true})

	// Cursor was on #41, now the third row.
	assert.Contains(t, m.View(), "> "+"? #41")
}

func TestApp_DeepLinkToTestsStage(t *testing.T) {
	w := session.NewWindow()
	m := navigate(t, newApp(newSource(), w), "/42/tests/2")

	assert.Equal(t, session.WindowTests, w.Get())
	view := m.View()
	assert.Contains(t, view, "FooTest")
	assert.Contains(t, view, "1 passed, 1 failed")

	m = update(t, m, key("down"))
	m = update(t, m, key("enter"))
	assert.Contains(t, m.View(), "expected 1 got 2")
}

func TestApp_TestsWithoutStageListsStages(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/42/tests")
	assert.Contains(t, m.View(), "compile")

	m = update(t, m, key("enter"))
	assert.Equal(t, "/42/tests/2", m.Resolution().Path)
	assert.Contains(t, m.View(), "FooTest")

	m = update(t, m, key("esc"))
	assert.Equal(t, "/42/tests", m.Resolution().Path)
}

func TestApp_TabCyclesWindowsThroughRoutes(t *testing.T) {
	w := session.NewWindow()
	m := navigate(t, newApp(newSource(), w), "/42/view")

	m = update(t, m, key("tab"))
	assert.Equal(t, "/42/tests", m.Resolution().Path)
	assert.Equal(t, session.WindowTests, w.Get())

	m = update(t, m, key("tab"))
	assert.Equal(t, "/42/artifacts", m.Resolution().Path)
	assert.Equal(t, session.WindowArtifacts, w.Get())

	m = update(t, m, key("tab"))
	assert.Equal(t, "/42/view", m.Resolution().Path)
	assert.Equal(t, session.WindowView, w.Get())
}

func TestApp_TabBarRendersFromWindowSubscription(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/42/view")
	assert.Contains(t, m.View(), "[View]")

	next, _ := m.Update(tui.WindowChangedMsg{ID: session.WindowArtifacts})
	view := next.(tui.AppModel).View()
	assert.Contains(t, view, "[Artifacts]")
	assert.NotContains(t, view, "[View]")
}

func TestApp_CloseDropsWindowSubscription(t *testing.T) {
	w := session.NewWindow()
	m := newApp(newSource(), w)

	w.Set(session.WindowTests)
	select {
	case id := <-m.WindowChannel():
		assert.Equal(t, session.WindowTests, id)
	default:
		t.Fatal("expected the window change to be delivered")
	}

	m.Close()
	w.Set(session.WindowArtifacts)
	select {
	case id := <-m.WindowChannel():
		t.Fatalf("expected no delivery after Close, got %d", id)
	default:
	}
}

func TestApp_StepOutputDeepLink(t *testing.T) {
	src := newSource()
	m := navigate(t, newApp(src, nil), "/42/view")

	// build, compile, sh
	m = update(t, m, key("down"))
	m = update(t, m, key("down"))
	m = update(t, m, key("enter"))

	assert.Equal(t, "/42/view/3", m.Resolution().Path)
	assert.Contains(t, m.View(), "BUILD SUCCESS")

	m = update(t, m, key("esc"))
	assert.Equal(t, "/42/view", m.Resolution().Path)
}

func TestApp_RunningStepOutputIsFollowed(t *testing.T) {
	src := newSource()
	src.pipelines["42"] = samplePipeline("RUNNING")
	m := navigate(t, newApp(src, nil), "/42/view/3")

	m = update(t, m, tui.OutputLoadedMsg{
		PipelineID: "42", StepID: 3, Append: true,
		Output: domain.Output{Content: "[INFO] still going\n", Position: 40},
	})
	view := m.View()
	assert.Contains(t, view, "BUILD SUCCESS")
	assert.Contains(t, view, "still going")
}

func TestApp_StepOutputOpensAtTail(t *testing.T) {
	src := newSource()
	navigate(t, newApp(src, nil), "/42/view/3")

	require.NotEmpty(t, src.outputQueries)
	q := src.outputQueries[0]
	assert.True(t, q.Backward)
	assert.True(t, q.LinesOnly)
	assert.Positive(t, q.Lines)
}

func TestOutputQuery_FollowStaysOnLineBoundaries(t *testing.T) {
	q := tui.OutputQuery(21, true)
	assert.Equal(t, domain.OutputQuery{Position: 21, LinesOnly: true}, q)
}

func TestApp_UnknownStepIsNotFound(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/42/view/99")
	assert.Equal(t, route.ViewNotFound, m.Resolution().View)
}

func TestApp_MalformedStageIsNotFound(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/42/tests/abc")
	assert.Equal(t, route.ViewNotFound, m.Resolution().View)
}

func TestApp_MissingPipelineIsNotFound(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/999/view")

	assert.Equal(t, route.ViewNotFound, m.Resolution().View)
	assert.Contains(t, m.View(), "Nothing found")

	m = update(t, m, key("esc"))
	assert.Equal(t, route.ViewPipelines, m.Resolution().View)
}

func TestApp_UnknownPathIsNotFound(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/bogus/path/deeper")
	assert.Equal(t, route.ViewNotFound, m.Resolution().View)
	assert.Contains(t, m.View(), "/bogus/path/deeper")
}

func TestApp_ServerErrorShowsErrorViewAndRetries(t *testing.T) {
	src := newSource()
	src.err = errors.New("connection refused")
	m := navigate(t, newApp(src, nil), "/42/view")

	assert.Equal(t, route.ViewError, m.Resolution().View)
	assert.Contains(t, m.View(), "connection refused")

	src.err = nil
	m = update(t, m, key("ctrl+r"))
	assert.Equal(t, "/42/view", m.Resolution().Path)
	assert.Contains(t, m.View(), "compile")
}

func TestApp_ArtifactContentOpensViewer(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/42/artifacts/2")
	assert.Contains(t, m.View(), "target/")

	m = update(t, m, key("down"))
	m = update(t, m, key("enter"))
	assert.Contains(t, m.View(), "PK binary")

	m = update(t, m, key("esc"))
	assert.Equal(t, "/42/artifacts/2", m.Resolution().Path)
	assert.NotContains(t, m.View(), "PK binary")
}

func TestApp_QuitKey(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/")
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_HeaderShowsPipelineStatus(t *testing.T) {
	m := navigate(t, newApp(newSource(), nil), "/42/view")
	header := strings.SplitN(m.View(), "\n", 2)[0]
	assert.Contains(t, header, "#42")
	assert.Contains(t, header, "abc1234")
	assert.Contains(t, header, "Passed")
}
