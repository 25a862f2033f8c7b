package tui_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waabox/buildboard/internal/domain"
	"github.com/waabox/buildboard/internal/status"
	"github.com/waabox/buildboard/internal/tui"
)

// fakeSource satisfies domain.PipelineSource for TUI tests.
type fakeSource struct {
	pages     map[int]domain.PipelinePage
	pipelines map[string]domain.Pipeline
	outputs   map[int]domain.Output
	tests     map[int][]domain.TestSuite
	artifacts map[int][]domain.Artifact
	files     map[string]string
	err       error

	outputQueries []domain.OutputQuery
}

func (f *fakeSource) ListPipelines(_ context.Context, page, _ int) (domain.PipelinePage, error) {
	if f.err != nil {
		return domain.PipelinePage{}, f.err
	}
	return f.pages[page], nil
}

func (f *fakeSource) GetPipeline(_ context.Context, id string) (domain.Pipeline, error) {
	if f.err != nil {
		return domain.Pipeline{}, f.err
	}
	p, ok := f.pipelines[id]
	if !ok {
		return domain.Pipeline{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeSource) GetOutput(_ context.Context, _ string, stepID int, q domain.OutputQuery) (domain.Output, error) {
	f.outputQueries = append(f.outputQueries, q)
	return f.outputs[stepID], f.err
}

func (f *fakeSource) GetTests(_ context.Context, _ string, stageID int) ([]domain.TestSuite, error) {
	suites, ok := f.tests[stageID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return suites, f.err
}

func (f *fakeSource) GetArtifacts(_ context.Context, _ string, stageID int) ([]domain.Artifact, error) {
	return f.artifacts[stageID], f.err
}

func (f *fakeSource) GetArtifact(_ context.Context, _ string, _ int, path string) (string, error) {
	return f.files[path], f.err
}

// samplePipeline has one stage (id 2) with tests and artifacts, holding one step (id 3).
func samplePipeline(state string) domain.Pipeline {
	var p domain.Pipeline
	p.ID = "42"
	p.Name = "helidon-build"
	p.Head = "master"
	p.Commit = "abc1234def"
	p.State = status.Parse(state)
	p.Result = status.Success
	p.Items = []domain.Node{{
		ID: 1, Type: domain.NodeSequence, Name: "build",
		Children: []domain.Node{{
			ID: 2, Type: domain.NodeSteps, Name: "compile", Artifacts: 1,
			Tests:    &domain.TestsInfo{Total: 2, Passed: 1, Failed: 1},
			Children: []domain.Node{{ID: 3, Type: domain.NodeStep, Name: "sh", Args: "mvn install"}},
		}},
	}}
	return p
}

func newSource() *fakeSource {
	return &fakeSource{
		pages: map[int]domain.PipelinePage{
			1: {PageNum: 1, TotalPages: 2, Items: []domain.PipelineInfo{{ID: "42", Name: "helidon-build"}, {ID: "41", Name: "helidon-build"}}},
			2: {PageNum: 2, TotalPages: 2, Items: []domain.PipelineInfo{{ID: "7", Name: "old-build"}}},
		},
		pipelines: map[string]domain.Pipeline{"42": samplePipeline("FINISHED")},
		outputs:   map[int]domain.Output{3: {Content: "[INFO] BUILD SUCCESS\n", Lines: 1, Position: 21}},
		tests: map[int][]domain.TestSuite{2: {{
			Name: "FooTest", Total: 2, Passed: 1, Failed: 1,
			Tests: []domain.TestResult{{Name: "ok"}, {Name: "bad", Output: "expected 1 got 2"}},
		}}},
		artifacts: map[int][]domain.Artifact{2: {{Type: "dir", Name: "target", Path: "/target", Children: []domain.Artifact{
			{Type: "file", Name: "app.jar", Path: "/target/app.jar"},
		}}}},
		files: map[string]string{"/target/app.jar": "PK binary"},
	}
}

// update feeds msg to m and keeps feeding the results of load commands
// until the app settles. Never pass WindowChangedMsg: its follow-up
// command blocks on the window channel.
func update(t *testing.T, m tui.AppModel, msg tea.Msg) tui.AppModel {
	t.Helper()
	for i := 0; i < 10 && msg != nil; i++ {
		next, cmd := m.Update(msg)
		m = next.(tui.AppModel)
		msg = nil
		if cmd == nil {
			break
		}
		switch out := cmd().(type) {
		case tui.NavigateMsg, tui.PipelinesLoadedMsg, tui.PipelineLoadedMsg, tui.OutputLoadedMsg,
			tui.TestsLoadedMsg, tui.ArtifactsLoadedMsg, tui.ArtifactContentMsg:
			msg = out
		}
	}
	return m
}

func navigate(t *testing.T, m tui.AppModel, path string) tui.AppModel {
	t.Helper()
	return update(t, m, tui.NavigateMsg{Path: path})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
