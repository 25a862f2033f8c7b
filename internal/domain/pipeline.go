package domain

import (
	"time"

	"github.com/waabox/buildboard/internal/status"
)

// NodeType is the kind of a pipeline tree node.
type NodeType string

const (
	NodeSequence NodeType = "SEQUENCE"
	NodeParallel NodeType = "PARALLEL"
	NodeSteps    NodeType = "STEPS"
	NodeStep     NodeType = "STEP"
)

// PipelineInfo is the summary of a pipeline run shown in the list view.
type PipelineInfo struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	RepositoryURL string        `json:"gitRepositoryUrl"`
	Head          string        `json:"gitHead"`
	Commit        string        `json:"gitCommit"`
	State         status.Status `json:"state"`
	Result        status.Status `json:"result"`
	Date          string        `json:"date"`
	DurationSecs  int64         `json:"duration"`
}

// Duration returns the run duration.
func (p PipelineInfo) Duration() time.Duration {
	return time.Duration(p.DurationSecs) * time.Second
}

// Category classifies the run for display.
func (p PipelineInfo) Category() status.Category {
	return status.Classify(p.State, p.Result)
}

// PipelinePage is one page of the pipeline list.
type PipelinePage struct {
	Items      []PipelineInfo `json:"items"`
	PageNum    int            `json:"pagenum"`
	TotalPages int            `json:"totalpages"`
}

// HasNext reports whether a page follows this one.
func (p PipelinePage) HasNext() bool {
	return p.PageNum < p.TotalPages
}

// HasPrev reports whether a page precedes this one.
func (p PipelinePage) HasPrev() bool {
	return p.PageNum > 1
}

// Pipeline is a full pipeline run with its stage tree.
type Pipeline struct {
	PipelineInfo
	Items []Node `json:"items"`
}

// TestsInfo counts test results of a stage.
type TestsInfo struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Node is a stage or step of the pipeline tree.
type Node struct {
	ID        int           `json:"id"`
	Type      NodeType      `json:"type"`
	Name      string        `json:"name"`
	Args      string        `json:"args,omitempty"`
	State     status.Status `json:"state"`
	Result    status.Status `json:"result"`
	StartTime int64         `json:"startTime"`
	EndTime   int64         `json:"endTime"`
	Artifacts int           `json:"artifacts,omitempty"`
	Tests     *TestsInfo    `json:"tests,omitempty"`
	Children  []Node        `json:"children,omitempty"`
}

// Category classifies the node for display.
func (n Node) Category() status.Category {
	return status.Classify(n.State, n.Result)
}

// Duration returns EndTime-StartTime, or zero while unfinished.
func (n Node) Duration() time.Duration {
	if n.StartTime <= 0 || n.EndTime < n.StartTime {
		return 0
	}
	return time.Duration(n.EndTime-n.StartTime) * time.Millisecond
}

// Title returns the name, falling back to the step arguments.
func (n Node) Title() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Args
}

// FlatNode is a node with its depth in the tree.
type FlatNode struct {
	Node  Node
	Depth int
}

// Flatten walks the tree depth first, parents before children.
func (p Pipeline) Flatten() []FlatNode {
	var out []FlatNode
	var walk func(nodes []Node, depth int)
	walk = func(nodes []Node, depth int) {
		for _, n := range nodes {
			out = append(out, FlatNode{Node: n, Depth: depth})
			walk(n.Children, depth+1)
		}
	}
	walk(p.Items, 0)
	return out
}

// Find returns the node with the given id anywhere in the tree.
func (p Pipeline) Find(id int) (Node, bool) {
	for _, f := range p.Flatten() {
		if f.Node.ID == id {
			return f.Node, true
		}
	}
	return Node{}, false
}

// StagesWith returns the STEPS stages satisfying keep, in tree order.
func (p Pipeline) StagesWith(keep func(Node) bool) []Node {
	var out []Node
	for _, f := range p.Flatten() {
		if f.Node.Type == NodeSteps && keep(f.Node) {
			out = append(out, f.Node)
		}
	}
	return out
}

// TestResult is one test case.
type TestResult struct {
	Name   string        `json:"name"`
	Status status.Status `json:"status"`
	Output string        `json:"output,omitempty"`
}

// TestSuite is the result of one test suite in a stage.
type TestSuite struct {
	Name    string       `json:"name"`
	Total   int          `json:"total"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Skipped int          `json:"skipped"`
	Tests   []TestResult `json:"tests"`
}

// Artifact is a file or directory archived by a stage.
type Artifact struct {
	Type     string     `json:"type"`
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Children []Artifact `json:"children,omitempty"`
}

// IsDir reports whether the artifact is a directory.
func (a Artifact) IsDir() bool {
	return a.Type == "dir"
}

// Output is a segment of a step log.
type Output struct {
	Content string
	// Lines is the number of lines in Content.
	Lines int
	// Remaining is the number of bytes left after (or, backwards, before)
	// the segment.
	Remaining int64
	// Position is the offset to continue reading from.
	Position int64
}
