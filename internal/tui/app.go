package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/waabox/buildboard/internal/domain"
	"github.com/waabox/buildboard/internal/route"
	"github.com/waabox/buildboard/internal/session"
	"github.com/waabox/buildboard/internal/status"
)

const (
	fastRefresh = 5 * time.Second
	slowRefresh = 30 * time.Second
	// outputTail is how many lines a step log opens with.
	outputTail = 1000
)

// NavigateMsg asks the app to resolve and mount a path.
type NavigateMsg struct {
	Path string
}

// PipelinesLoadedMsg is sent when a page of pipelines has been fetched.
// It is exported so that tests can inject it directly into AppModel.Update.
type PipelinesLoadedMsg struct {
	Page    domain.PipelinePage
	Err     error
	Refresh bool
}

// PipelineLoadedMsg is sent when a pipeline with its stage tree has been fetched.
type PipelineLoadedMsg struct {
	Pipeline domain.Pipeline
	Err      error
	Refresh  bool
}

// OutputLoadedMsg carries a segment of a step log.
type OutputLoadedMsg struct {
	PipelineID string
	StepID     int
	Output     domain.Output
	Err        error
	// Append marks a follow-up segment of an output already shown.
	Append bool
}

// TestsLoadedMsg carries the test suites of a stage.
type TestsLoadedMsg struct {
	PipelineID string
	StageID    int
	Suites     []domain.TestSuite
	Err        error
}

// ArtifactsLoadedMsg carries the artifact tree of a stage.
type ArtifactsLoadedMsg struct {
	PipelineID string
	StageID    int
	Items      []domain.Artifact
	Err        error
}

// ArtifactContentMsg carries the content of one artifact file.
type ArtifactContentMsg struct {
	Path    string
	Content string
	Err     error
}

// WindowChangedMsg is delivered from the session window subscription.
type WindowChangedMsg struct {
	ID int
}

type tickMsg struct{}

var windowViews = map[int]route.View{
	session.WindowView:      route.ViewSteps,
	session.WindowTests:     route.ViewTests,
	session.WindowArtifacts: route.ViewArtifacts,
}

var windowTitles = []string{"View", "Tests", "Artifacts"}

func windowOf(v route.View) int {
	for id, view := range windowViews {
		if view == v {
			return id
		}
	}
	return session.WindowView
}

// Options wires the app to its collaborators.
type Options struct {
	Source   domain.PipelineSource
	Resolver *route.Resolver
	Window   *session.Window
	Repo     domain.Repository
	// Server is shown in the header when no repository is known.
	Server   string
	PageSize int
	Log      *zap.Logger
}

// AppModel is the root Bubbletea model for buildboard. Every screen
// change goes through navigate, which resolves a path and mounts its view.
type AppModel struct {
	source   domain.PipelineSource
	resolver *route.Resolver
	window   *session.Window
	windowCh <-chan int
	unsub    func()
	repo     domain.Repository
	server   string
	pageSize int
	log      *zap.Logger

	res       route.Resolution
	retryPath string
	// Pipeline list
	pageNum int
	list    PipelineListModel
	// Pipeline layout
	pipeline     domain.Pipeline
	steps        StepListModel
	stages       StepListModel
	tests        TestListModel
	artifacts    ArtifactListModel
	viewer       LogViewModel
	showViewer   bool
	activeWindow int
	// General state
	loading    bool
	err        error
	refreshErr error
	width      int
	height     int
}

// NewAppModel creates the root application model.
func NewAppModel(opts Options) AppModel {
	if opts.Resolver == nil {
		opts.Resolver = route.Default()
	}
	if opts.Window == nil {
		opts.Window = session.NewWindow()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	ch, unsub := opts.Window.Channel()
	return AppModel{
		source:       opts.Source,
		resolver:     opts.Resolver,
		window:       opts.Window,
		windowCh:     ch,
		unsub:        unsub,
		repo:         opts.Repo,
		server:       opts.Server,
		pageSize:     opts.PageSize,
		log:          opts.Log.Named("tui"),
		pageNum:      1,
		activeWindow: opts.Window.Get(),
		loading:      true,
	}
}

// Close drops the window subscription. The model stops receiving
// WindowChangedMsg afterwards.
func (m AppModel) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

// Resolution returns the route currently mounted.
func (m AppModel) Resolution() route.Resolution {
	return m.res
}

// Init mounts the start path and starts the refresh ticker.
func (m AppModel) Init() tea.Cmd {
	return m.InitAt("/")
}

// InitAt is Init for a start path other than the root.
func (m AppModel) InitAt(path string) tea.Cmd {
	return tea.Batch(navigateTo(path), waitForWindow(m.windowCh), tickEvery(fastRefresh))
}

func navigateTo(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

func waitForWindow(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return WindowChangedMsg{ID: id}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m AppModel) loadPipelines(page int, refresh bool) tea.Cmd {
	return func() tea.Msg {
		result, err := m.source.ListPipelines(context.Background(), page, m.pageSize)
		return PipelinesLoadedMsg{Page: result, Err: err, Refresh: refresh}
	}
}

func (m AppModel) loadPipeline(id string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		p, err := m.source.GetPipeline(context.Background(), id)
		return PipelineLoadedMsg{Pipeline: p, Err: err, Refresh: refresh}
	}
}

// outputQuery opens a log at its tail, then follows it from position.
// Segments always end on a line boundary.
func outputQuery(position int64, follow bool) domain.OutputQuery {
	if follow {
		return domain.OutputQuery{Position: position, LinesOnly: true}
	}
	return domain.OutputQuery{Lines: outputTail, Backward: true, LinesOnly: true}
}

func (m AppModel) loadOutput(pipelineID string, stepID int, position int64, appendTo bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.source.GetOutput(context.Background(), pipelineID, stepID, outputQuery(position, appendTo))
		return OutputLoadedMsg{PipelineID: pipelineID, StepID: stepID, Output: out, Err: err, Append: appendTo}
	}
}

func (m AppModel) loadTests(pipelineID string, stageID int) tea.Cmd {
	return func() tea.Msg {
		suites, err := m.source.GetTests(context.Background(), pipelineID, stageID)
		return TestsLoadedMsg{PipelineID: pipelineID, StageID: stageID, Suites: suites, Err: err}
	}
}

func (m AppModel) loadArtifacts(pipelineID string, stageID int) tea.Cmd {
	return func() tea.Msg {
		items, err := m.source.GetArtifacts(context.Background(), pipelineID, stageID)
		return ArtifactsLoadedMsg{PipelineID: pipelineID, StageID: stageID, Items: items, Err: err}
	}
}

func (m AppModel) loadArtifact(pipelineID string, stageID int, path string) tea.Cmd {
	return func() tea.Msg {
		content, err := m.source.GetArtifact(context.Background(), pipelineID, stageID, path)
		return ArtifactContentMsg{Path: path, Content: content, Err: err}
	}
}

// optionalInt parses an optional numeric route parameter. An empty value
// yields (0, false, true); a malformed one yields ok=false.
func optionalInt(s string) (n int, set, ok bool) {
	if s == "" {
		return 0, false, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false, false
	}
	return n, true, true
}

func (m AppModel) pipelineID() string {
	return m.res.Param(route.ParamPipeline)
}

func (m AppModel) inPipeline() bool {
	return m.res.Layout == route.ViewPipeline
}

func (m AppModel) href(v route.View, params route.Params) string {
	return m.resolver.Href(v, params)
}

// navigate resolves path and mounts the resulting view.
func (m AppModel) navigate(path string) (AppModel, tea.Cmd) {
	res := m.resolver.Resolve(path)
	m.log.Debug("navigate",
		zap.String("path", path),
		zap.String("resolved", res.Path),
		zap.String("view", string(res.View)),
		zap.String("redirectedFrom", res.RedirectedFrom))
	m.res = res
	m.showViewer = false
	m.refreshErr = nil
	if res.View != route.ViewError {
		m.err = nil
	}

	switch res.View {
	case route.ViewPipelines:
		m.loading = len(m.list.Page().Items) == 0
		return m, m.loadPipelines(m.pageNum, false)
	case route.ViewSteps, route.ViewTests, route.ViewArtifacts:
		return m.mountPipeline()
	}
	m.loading = false
	return m, nil
}

func (m AppModel) mountPipeline() (AppModel, tea.Cmd) {
	_, _, stageOK := optionalInt(m.res.Param(route.ParamStage))
	_, _, stepOK := optionalInt(m.res.Param(route.ParamStep))
	if !stageOK || !stepOK {
		return m.navigate(route.NotFoundPath)
	}
	m.window.Set(windowOf(m.res.View))

	if m.pipeline.ID != m.pipelineID() {
		m.pipeline = domain.Pipeline{}
		m.loading = true
		return m, m.loadPipeline(m.pipelineID(), false)
	}
	return m.mountWindow()
}

// mountWindow prepares the active pipeline window once the pipeline is known.
func (m AppModel) mountWindow() (AppModel, tea.Cmd) {
	id := m.pipelineID()
	stage, stageSet, _ := optionalInt(m.res.Param(route.ParamStage))
	m.loading = false

	switch m.res.View {
	case route.ViewSteps:
		m.steps = m.steps.UpdateNodes(m.pipeline.Flatten())
		step, stepSet, _ := optionalInt(m.res.Param(route.ParamStep))
		if !stepSet {
			return m, nil
		}
		node, ok := m.pipeline.Find(step)
		if !ok {
			return m.navigate(route.NotFoundPath)
		}
		m.steps = m.steps.Select(step)
		m.viewer = NewLogViewModel(node.Title(), "")
		m.showViewer = true
		m.loading = true
		return m, m.loadOutput(id, step, 0, false)

	case route.ViewTests:
		if !stageSet {
			m.stages = NewStageListModel(m.pipeline.StagesWith(func(n domain.Node) bool { return n.Tests != nil }))
			return m, nil
		}
		m.loading = true
		return m, m.loadTests(id, stage)

	case route.ViewArtifacts:
		if !stageSet {
			m.stages = NewStageListModel(m.pipeline.StagesWith(func(n domain.Node) bool { return n.Artifacts > 0 }))
			return m, nil
		}
		m.loading = true
		return m, m.loadArtifacts(id, stage)
	}
	return m, nil
}

// fail routes a load error: 404 goes to the not-found view, anything else
// to the error view with the current path kept for retry.
func (m AppModel) fail(err error) (AppModel, tea.Cmd) {
	m.loading = false
	if errors.Is(err, domain.ErrNotFound) {
		m.log.Info("not found", zap.String("path", m.res.Path))
		return m.navigate(route.NotFoundPath)
	}
	m.log.Warn("load failed", zap.String("path", m.res.Path), zap.Error(err))
	m.err = err
	m.retryPath = m.res.Path
	return m.navigate("/error")
}

func (m AppModel) running() bool {
	if m.inPipeline() && m.pipeline.Category() == status.CategoryInProgress {
		return true
	}
	return m.res.View == route.ViewPipelines && m.list.AnyRunning()
}

func (m AppModel) refresh() tea.Cmd {
	switch {
	case m.res.View == route.ViewPipelines:
		return m.loadPipelines(m.pageNum, true)
	case m.inPipeline() && m.pipeline.ID != "" && m.pipeline.Category() == status.CategoryInProgress:
		cmds := []tea.Cmd{m.loadPipeline(m.pipeline.ID, true)}
		if step, set, _ := optionalInt(m.res.Param(route.ParamStep)); set && m.res.View == route.ViewSteps {
			cmds = append(cmds, m.loadOutput(m.pipeline.ID, step, m.viewer.Position(), true))
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// Update handles all incoming messages and key events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case NavigateMsg:
		return m.navigate(msg.Path)

	case WindowChangedMsg:
		m.activeWindow = msg.ID
		return m, waitForWindow(m.windowCh)

	case tickMsg:
		interval := slowRefresh
		if m.running() {
			interval = fastRefresh
		}
		return m, tea.Batch(m.refresh(), tickEvery(interval))

	case PipelinesLoadedMsg:
		if m.res.View != route.ViewPipelines {
			return m, nil
		}
		if msg.Err != nil {
			if msg.Refresh {
				m.refreshErr = msg.Err
				m.log.Warn("refresh failed", zap.Error(msg.Err))
				return m, nil
			}
			return m.fail(msg.Err)
		}
		m.loading = false
		m.refreshErr = nil
		m.list = m.list.UpdatePage(msg.Page)
		if msg.Page.PageNum > 0 {
			m.pageNum = msg.Page.PageNum
		}

	case PipelineLoadedMsg:
		if !m.inPipeline() {
			return m, nil
		}
		if msg.Err != nil {
			if msg.Refresh {
				m.refreshErr = msg.Err
				m.log.Warn("refresh failed", zap.Error(msg.Err))
				return m, nil
			}
			return m.fail(msg.Err)
		}
		if msg.Pipeline.ID != "" && msg.Pipeline.ID != m.pipelineID() {
			return m, nil
		}
		m.pipeline = msg.Pipeline
		m.pipeline.ID = m.pipelineID()
		m.refreshErr = nil
		if msg.Refresh {
			m.steps = m.steps.UpdateNodes(m.pipeline.Flatten())
			return m, nil
		}
		return m.mountWindow()

	case OutputLoadedMsg:
		step, set, _ := optionalInt(m.res.Param(route.ParamStep))
		if m.res.View != route.ViewSteps || !set || step != msg.StepID || msg.PipelineID != m.pipelineID() {
			return m, nil
		}
		if msg.Err != nil {
			if msg.Append {
				m.refreshErr = msg.Err
				return m, nil
			}
			return m.fail(msg.Err)
		}
		m.loading = false
		if msg.Append {
			m.viewer = m.viewer.Append(msg.Output, m.visibleLines())
		} else {
			m.viewer = NewOutputViewModel(m.viewer.Title(), msg.Output)
		}
		m.showViewer = true

	case TestsLoadedMsg:
		stage, _, _ := optionalInt(m.res.Param(route.ParamStage))
		if m.res.View != route.ViewTests || stage != msg.StageID || msg.PipelineID != m.pipelineID() {
			return m, nil
		}
		if msg.Err != nil {
			return m.fail(msg.Err)
		}
		m.loading = false
		m.tests = NewTestListModel(msg.Suites)

	case ArtifactsLoadedMsg:
		stage, _, _ := optionalInt(m.res.Param(route.ParamStage))
		if m.res.View != route.ViewArtifacts || stage != msg.StageID || msg.PipelineID != m.pipelineID() {
			return m, nil
		}
		if msg.Err != nil {
			return m.fail(msg.Err)
		}
		m.loading = false
		m.artifacts = NewArtifactListModel(msg.Items)

	case ArtifactContentMsg:
		if m.res.View != route.ViewArtifacts {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			// Unreadable files stay in the tree view.
			m.refreshErr = msg.Err
			m.log.Warn("artifact failed", zap.String("path", msg.Path), zap.Error(msg.Err))
			return m, nil
		}
		m.viewer = NewLogViewModel(msg.Path, msg.Content)
		m.showViewer = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			path := m.res.Path
			if m.res.View == route.ViewError && m.retryPath != "" {
				path = m.retryPath
			}
			m.pipeline = domain.Pipeline{}
			return m.navigate(path)
		}
		if m.showViewer {
			return m.updateViewer(msg)
		}
		switch m.res.View {
		case route.ViewPipelines:
			return m.updatePipelines(msg)
		case route.ViewSteps:
			return m.updateSteps(msg)
		case route.ViewTests:
			return m.updateTests(msg)
		case route.ViewArtifacts:
			return m.updateArtifacts(msg)
		case route.ViewNotFound, route.ViewError:
			if msg.String() == "esc" || msg.String() == "enter" {
				return m.navigate("/")
			}
		}
	}
	return m, nil
}

func (m AppModel) updatePipelines(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.list = m.list.MoveDown()
	case "up", "k":
		m.list = m.list.MoveUp()
	case "enter":
		if p := m.list.SelectedPipeline(); p.ID != "" {
			return m.navigate(m.href(route.ViewSteps, route.Params{route.ParamPipeline: p.ID}))
		}
	case "n":
		if m.list.Page().HasNext() {
			m.pageNum++
			m.loading = true
			return m, m.loadPipelines(m.pageNum, false)
		}
	case "p":
		if m.list.Page().HasPrev() {
			m.pageNum--
			m.loading = true
			return m, m.loadPipelines(m.pageNum, false)
		}
	}
	return m, nil
}

// updateWindowKeys handles keys shared by every pipeline window.
func (m AppModel) updateWindowKeys(msg tea.KeyMsg) (AppModel, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = len(windowTitles) - 1
		}
		next := (m.window.Get() + step) % len(windowTitles)
		m2, cmd := m.navigate(m.href(windowViews[next], route.Params{route.ParamPipeline: m.pipelineID()}))
		return m2, cmd, true
	case "esc":
		m2, cmd := m.back()
		return m2, cmd, true
	}
	return m, nil, false
}

// back leaves a stage or step scope, then the pipeline.
func (m AppModel) back() (AppModel, tea.Cmd) {
	if m.res.Param(route.ParamStage) != "" || m.res.Param(route.ParamStep) != "" {
		return m.navigate(m.href(m.res.View, route.Params{route.ParamPipeline: m.pipelineID()}))
	}
	return m.navigate("/")
}

func (m AppModel) updateSteps(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m2, cmd, ok := m.updateWindowKeys(msg); ok {
		return m2, cmd
	}
	switch msg.String() {
	case "down", "j":
		m.steps = m.steps.MoveDown()
	case "up", "k":
		m.steps = m.steps.MoveUp()
	case "enter":
		node, ok := m.steps.Selected()
		if ok && node.Type == domain.NodeStep {
			return m.navigate(m.href(route.ViewSteps, route.Params{
				route.ParamPipeline: m.pipelineID(),
				route.ParamStep:     strconv.Itoa(node.ID),
			}))
		}
	case "t", "a":
		node, ok := m.steps.Selected()
		if !ok || node.Type != domain.NodeSteps {
			return m, nil
		}
		view := route.ViewTests
		if msg.String() == "a" {
			view = route.ViewArtifacts
		}
		return m.navigate(m.href(view, route.Params{
			route.ParamPipeline: m.pipelineID(),
			route.ParamStage:    strconv.Itoa(node.ID),
		}))
	}
	return m, nil
}

func (m AppModel) updateStagePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.stages = m.stages.MoveDown()
	case "up", "k":
		m.stages = m.stages.MoveUp()
	case "enter":
		if node, ok := m.stages.Selected(); ok {
			return m.navigate(m.href(m.res.View, route.Params{
				route.ParamPipeline: m.pipelineID(),
				route.ParamStage:    strconv.Itoa(node.ID),
			}))
		}
	}
	return m, nil
}

func (m AppModel) updateTests(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m2, cmd, ok := m.updateWindowKeys(msg); ok {
		return m2, cmd
	}
	if m.res.Param(route.ParamStage) == "" {
		return m.updateStagePicker(msg)
	}
	switch msg.String() {
	case "down", "j":
		m.tests = m.tests.MoveDown()
	case "up", "k":
		m.tests = m.tests.MoveUp()
	case "enter":
		m.tests = m.tests.Toggle()
	}
	return m, nil
}

func (m AppModel) updateArtifacts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m2, cmd, ok := m.updateWindowKeys(msg); ok {
		return m2, cmd
	}
	if m.res.Param(route.ParamStage) == "" {
		return m.updateStagePicker(msg)
	}
	switch msg.String() {
	case "down", "j":
		m.artifacts = m.artifacts.MoveDown()
	case "up", "k":
		m.artifacts = m.artifacts.MoveUp()
	case "enter":
		item, ok := m.artifacts.Selected()
		if ok && !item.IsDir() {
			stage, _, _ := optionalInt(m.res.Param(route.ParamStage))
			m.loading = true
			return m, m.loadArtifact(m.pipelineID(), stage, item.Path)
		}
	}
	return m, nil
}

func (m AppModel) updateViewer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleLines()
	switch msg.String() {
	case "down", "j":
		m.viewer = m.viewer.ScrollBy(1, visible)
	case "up", "k":
		m.viewer = m.viewer.ScrollBy(-1, visible)
	case "pgdown", " ":
		m.viewer = m.viewer.ScrollBy(visible, visible)
	case "pgup":
		m.viewer = m.viewer.ScrollBy(-visible, visible)
	case "g":
		m.viewer = m.viewer.Top()
	case "G":
		m.viewer = m.viewer.Bottom(visible)
	case "esc":
		if m.res.View == route.ViewArtifacts {
			m.showViewer = false
			return m, nil
		}
		return m.back()
	case "tab", "shift+tab":
		m2, cmd, _ := m.updateWindowKeys(msg)
		return m2, cmd
	}
	return m, nil
}

// visibleLines returns the number of viewer lines that fit the terminal.
func (m AppModel) visibleLines() int {
	lines := m.height - 8 // header, tab bar, separators and footer
	if lines < 10 {
		return 10
	}
	return lines
}

// View renders the full TUI.
func (m AppModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString(separator)

	switch {
	case m.res.View == route.ViewError:
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
		sb.WriteString(separator)
		sb.WriteString(" ctrl+r: retry   esc: pipelines   q: quit\n")
		return sb.String()
	case m.res.View == route.ViewNotFound:
		what := m.res.RedirectedFrom
		if what == "" {
			what = m.res.Path
		}
		sb.WriteString(fmt.Sprintf(" Nothing found at %s\n", what))
		sb.WriteString(separator)
		sb.WriteString(" esc: pipelines   q: quit\n")
		return sb.String()
	case m.res.View == route.ViewPipelines:
		sb.WriteString(titleStyle.Render(" Pipelines") + "\n")
		if m.loading {
			sb.WriteString("Loading pipelines...\n")
		} else {
			sb.WriteString(m.list.View())
		}
		sb.WriteString(separator)
		sb.WriteString(m.renderStatusLine())
		sb.WriteString(" ↑/↓: navigate   enter: open   n/p: next/prev page   ctrl+r: refresh   q: quit\n")
		return sb.String()
	}

	sb.WriteString(m.renderTabs())
	sb.WriteString(separator)
	switch {
	case m.loading && !m.showViewer:
		sb.WriteString("Loading...\n")
	case m.showViewer:
		sb.WriteString(titleStyle.Render(" "+m.viewer.Title()) + "\n")
		sb.WriteString(m.viewer.View(m.visibleLines()))
	case m.res.View == route.ViewSteps:
		sb.WriteString(m.steps.View())
	case m.res.Param(route.ParamStage) == "":
		sb.WriteString(m.stages.View())
	case m.res.View == route.ViewTests:
		sb.WriteString(m.tests.View())
	case m.res.View == route.ViewArtifacts:
		sb.WriteString(m.artifacts.View())
	}
	sb.WriteString(separator)
	sb.WriteString(m.renderStatusLine())
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m AppModel) renderHeader() string {
	where := m.server
	if m.repo.Name != "" {
		where = m.repo.Slug()
	}
	header := " buildboard | " + where
	if m.inPipeline() && m.pipeline.ID != "" {
		p := m.pipeline
		header += fmt.Sprintf(" / #%s %s ⎇ %s %s %s %s",
			p.ID, p.Name, p.Head, shortSHA(p.Commit),
			statusIcon(p.Category()), p.Category().Label())
	}
	return header + "\n"
}

// renderTabs draws the window bar from the last id seen on the window
// subscription.
func (m AppModel) renderTabs() string {
	var parts []string
	for id, title := range windowTitles {
		if id == m.activeWindow {
			parts = append(parts, activeTabStyle.Render("["+title+"]"))
		} else {
			parts = append(parts, dimStyle.Render(" "+title+" "))
		}
	}
	return " " + strings.Join(parts, "  ") + "\n"
}

func (m AppModel) renderStatusLine() string {
	if m.refreshErr != nil {
		return errorStyle.Render(fmt.Sprintf(" refresh failed: %v", m.refreshErr)) + "\n"
	}
	return ""
}

func (m AppModel) renderFooter() string {
	switch {
	case m.showViewer:
		return " ↑/↓: scroll   PgUp/PgDn: page   g/G: top/bottom   tab: window   esc: back\n"
	case m.res.View == route.ViewSteps:
		return " ↑/↓: navigate   enter: output   t/a: stage tests/artifacts   tab: window   esc: back   q: quit\n"
	case m.res.Param(route.ParamStage) == "":
		return " ↑/↓: navigate   enter: open stage   tab: window   esc: back   q: quit\n"
	case m.res.View == route.ViewTests:
		return " ↑/↓: navigate   enter: output   tab: window   esc: back   q: quit\n"
	default:
		return " ↑/↓: navigate   enter: open file   tab: window   esc: back   q: quit\n"
	}
}

// Run starts the Bubbletea program at path.
func Run(opts Options, path string) error {
	m := NewAppModel(opts)
	defer m.Close()
	p := tea.NewProgram(startModel{AppModel: m, path: path}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// startModel overrides Init so the program opens at a deep link.
type startModel struct {
	AppModel
	path string
}

func (s startModel) Init() tea.Cmd {
	return s.AppModel.InitAt(s.path)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
