package provider

import (
	"context"

	"github.com/waabox/buildboard/internal/domain"
)

// FilteredSource limits ListPipelines to pipelines built from repo.
// Pages keep the server's paging, so a filtered page may hold fewer items.
type FilteredSource struct {
	domain.PipelineSource
	repo domain.Repository
}

// NewFilteredSource wraps inner. A zero repo filters nothing.
func NewFilteredSource(inner domain.PipelineSource, repo domain.Repository) *FilteredSource {
	return &FilteredSource{PipelineSource: inner, repo: repo}
}

func (fs *FilteredSource) ListPipelines(ctx context.Context, page, size int) (domain.PipelinePage, error) {
	result, err := fs.PipelineSource.ListPipelines(ctx, page, size)
	if err != nil {
		return result, err
	}
	kept := make([]domain.PipelineInfo, 0, len(result.Items))
	for _, p := range result.Items {
		if fs.repo.Matches(p.RepositoryURL) {
			kept = append(kept, p)
		}
	}
	result.Items = kept
	return result, nil
}
