package provider

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/waabox/buildboard/internal/domain"
)

// RetryingSource wraps a PipelineSource and retries transient failures.
// Not-found answers and cancelled contexts are returned immediately.
type RetryingSource struct {
	inner    domain.PipelineSource
	attempts int
	backoff  time.Duration
	log      *zap.Logger
}

// Ensure RetryingSource implements PipelineSource.
var _ domain.PipelineSource = (*RetryingSource)(nil)

// NewRetryingSource creates a RetryingSource making at most attempts calls
// per operation, sleeping backoff, then 2*backoff, between them.
func NewRetryingSource(inner domain.PipelineSource, attempts int, backoff time.Duration, log *zap.Logger) *RetryingSource {
	if attempts < 1 {
		attempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RetryingSource{inner: inner, attempts: attempts, backoff: backoff, log: log}
}

func retryable(err error) bool {
	return err != nil &&
		!errors.Is(err, domain.ErrNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func (rs *RetryingSource) retry(ctx context.Context, op string, call func() error) error {
	wait := rs.backoff
	var err error
	for attempt := 1; ; attempt++ {
		err = call()
		if !retryable(err) || attempt >= rs.attempts {
			return err
		}
		rs.log.Debug("retrying publisher call",
			zap.String("op", op), zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return err
		case <-time.After(wait):
		}
		wait *= 2
	}
}

func (rs *RetryingSource) ListPipelines(ctx context.Context, page, size int) (domain.PipelinePage, error) {
	var result domain.PipelinePage
	err := rs.retry(ctx, "list", func() error {
		var e error
		result, e = rs.inner.ListPipelines(ctx, page, size)
		return e
	})
	return result, err
}

func (rs *RetryingSource) GetPipeline(ctx context.Context, id string) (domain.Pipeline, error) {
	var result domain.Pipeline
	err := rs.retry(ctx, "pipeline", func() error {
		var e error
		result, e = rs.inner.GetPipeline(ctx, id)
		return e
	})
	return result, err
}

func (rs *RetryingSource) GetOutput(ctx context.Context, pipelineID string, stepID int, q domain.OutputQuery) (domain.Output, error) {
	var result domain.Output
	err := rs.retry(ctx, "output", func() error {
		var e error
		result, e = rs.inner.GetOutput(ctx, pipelineID, stepID, q)
		return e
	})
	return result, err
}

func (rs *RetryingSource) GetTests(ctx context.Context, pipelineID string, stageID int) ([]domain.TestSuite, error) {
	var result []domain.TestSuite
	err := rs.retry(ctx, "tests", func() error {
		var e error
		result, e = rs.inner.GetTests(ctx, pipelineID, stageID)
		return e
	})
	return result, err
}

func (rs *RetryingSource) GetArtifacts(ctx context.Context, pipelineID string, stageID int) ([]domain.Artifact, error) {
	var result []domain.Artifact
	err := rs.retry(ctx, "artifacts", func() error {
		var e error
		result, e = rs.inner.GetArtifacts(ctx, pipelineID, stageID)
		return e
	})
	return result, err
}

func (rs *RetryingSource) GetArtifact(ctx context.Context, pipelineID string, stageID int, path string) (string, error) {
	var result string
	err := rs.retry(ctx, "artifact", func() error {
		var e error
		result, e = rs.inner.GetArtifact(ctx, pipelineID, stageID, path)
		return e
	})
	return result, err
}
