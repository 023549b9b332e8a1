package domain

import (
	"context"

	"github.com/predator4hack/gitscout/internal/core/jobspec"
)

// GitHubPort is the slice of the GitHub client the pipeline reads through
// implementations retry transient failures themselves
type GitHubPort interface {
	SearchRepos(ctx context.Context, query string, first int) ([]RepoCandidate, error)
	Contributors(ctx context.Context, owner, repo string, perPage int) ([]Contributor, error)
	NodesByID(ctx context.Context, ids []string) ([]CandidateProfile, error)
}

// UserSearchPort finds users directly, for the fallback when repository discovery is empty
type UserSearchPort interface {
	SearchUsers(ctx context.Context, query string, first int) ([]CandidateProfile, error)
}

// PipelinePort runs discovery end to end
// the score map is keyed by login
type PipelinePort interface {
	Run(
		ctx context.Context,
		spec jobspec.Spec,
		queries []string,
		maxRepos, contributorsPerRepo int,
	) ([]CandidateProfile, map[string]float64, error)
}
