package domain

import "context"

// OutputQuery selects a segment of a step log.
type OutputQuery struct {
	// Lines limits the number of lines; zero means all.
	Lines     int
	Position  int64
	Backward  bool
	LinesOnly bool
}

// PipelineSource is the port to the publisher API. Adapters decide the
// transport; the dashboard only depends on this interface.
type PipelineSource interface {
	ListPipelines(ctx context.Context, page, size int) (PipelinePage, error)
	GetPipeline(ctx context.Context, id string) (Pipeline, error)
	GetOutput(ctx context.Context, pipelineID string, stepID int, q OutputQuery) (Output, error)
	GetTests(ctx context.Context, pipelineID string, stageID int) ([]TestSuite, error)
	GetArtifacts(ctx context.Context, pipelineID string, stageID int) ([]Artifact, error)
	GetArtifact(ctx context.Context, pipelineID string, stageID int, path string) (string, error)
}
