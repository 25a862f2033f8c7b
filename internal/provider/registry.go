package provider

import (
	"fmt"
	"strings"

	"github.com/waabox/buildboard/internal/domain"
)

// Registry maps remote URL host patterns to publisher sources.
type Registry struct {
	entries  []entry
	fallback domain.PipelineSource
}

type entry struct {
	match  string
	source domain.PipelineSource
}

// NewRegistry creates a registry that returns fallback when nothing
// matches. fallback may be nil.
func NewRegistry(fallback domain.PipelineSource) *Registry {
	return &Registry{fallback: fallback}
}

// Register associates a host pattern (e.g., "github.com/oracle") with a
// source. Patterns are checked in registration order. A blank pattern is
// ignored, since it would match every remote.
func (r *Registry) Register(match string, s domain.PipelineSource) {
	match = strings.ToLower(strings.TrimSpace(match))
	if match == "" {
		return
	}
	r.entries = append(r.entries, entry{match: match, source: s})
}

// Detect returns the source whose pattern occurs in remoteURL, or the
// fallback. An empty remoteURL always yields the fallback.
func (r *Registry) Detect(remoteURL string) (domain.PipelineSource, error) {
	u := strings.ToLower(remoteURL)
	if u != "" {
		for _, e := range r.entries {
			if strings.Contains(u, e.match) {
				return e.source, nil
			}
		}
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("no publisher configured for remote: %s", remoteURL)
}
