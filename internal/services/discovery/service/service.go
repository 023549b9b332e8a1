// Package service runs the repository first candidate discovery pipeline
//
// Stages: repository search, contributor aggregation, profile hydration. Each fan-out is
// bounded by MaxConcurrency and a failing unit yields an empty slot instead of an error,
// so one bad query or repository never cancels its siblings. Only hydration can fail the run.
package service

import (
	"context"
	"time"

	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	dom "github.com/predator4hack/gitscout/internal/services/discovery/domain"
)

// Config for the pipeline; zero values take defaults
type Config struct {
	BatchSize       int
	MaxConcurrency  int
	TopContributors int
	SearchPageSize  int
	Log             *logger.Logger
}

const (
	defaultBatchSize       = 5
	defaultMaxConcurrency  = 5
	defaultTopContributors = 50
	defaultSearchPageSize  = 50
)

// Pipeline implements domain.PipelinePort
type Pipeline struct {
	gh  dom.GitHubPort
	cfg Config
	log logger.Logger
	now func() time.Time
}

// New constructs a Pipeline over gh
func New(gh dom.GitHubPort, cfg Config) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}
	if cfg.TopContributors <= 0 {
		cfg.TopContributors = defaultTopContributors
	}
	if cfg.SearchPageSize <= 0 {
		cfg.SearchPageSize = defaultSearchPageSize
	}
	p := &Pipeline{gh: gh, cfg: cfg, now: time.Now}
	if cfg.Log != nil {
		p.log = *cfg.Log
	} else {
		p.log = *logger.Named("discovery")
	}
	return p
}

// Config returns the effective configuration
func (p *Pipeline) Config() Config { return p.cfg }

// Run discovers, aggregates and hydrates candidates for queries
//
// An empty stage ends the run with empty results and no error. The score map holds the
// contribution seed of every ranked contributor, keyed by login, and each returned profile
// carries its own seed in ContribSeed.
func (p *Pipeline) Run(
	ctx context.Context,
	spec jobspec.Spec,
	queries []string,
	maxRepos, contributorsPerRepo int,
) ([]dom.CandidateProfile, map[string]float64, error) {
	start := p.now()
	log := logger.Scoped(ctx, p.log)
	st := dom.StatsFrom(ctx)
	if st == nil {
		st = &dom.RunStats{}
	}
	st.Queries = len(queries)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	repos := p.discoverRepos(ctx, queries, spec.ExcludeForks, spec.ExcludeArchived, maxRepos)
	st.Repos = len(repos)
	log.Info().Int("queries", len(queries)).Int("repos", len(repos)).Msg("repository discovery done")
	if len(repos) == 0 {
		return []dom.CandidateProfile{}, map[string]float64{}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	ids, scores := p.aggregateContributors(ctx, repos, contributorsPerRepo, p.cfg.MaxConcurrency)
	st.Contributors = len(scores)
	log.Info().Int("contributors", len(scores)).Msg("contributor aggregation done")
	if len(scores) == 0 {
		return []dom.CandidateProfile{}, map[string]float64{}, nil
	}

	seeds := make(map[string]float64, len(scores))
	nodeIDs := make([]string, 0, len(scores))
	for _, s := range scores {
		seeds[s.Login] = s.Score
		if id := ids[s.Login]; id != "" {
			nodeIDs = append(nodeIDs, id)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	profiles, err := p.hydrateProfiles(ctx, nodeIDs, p.cfg.BatchSize)
	if err != nil {
		log.Error().Err(err).Int("ids", len(nodeIDs)).Msg("profile hydration failed")
		return nil, nil, err
	}
	for i := range profiles {
		profiles[i].ContribSeed = seeds[profiles[i].Login]
	}
	st.Profiles = len(profiles)

	log.Info().
		Int("profiles", len(profiles)).
		Dur("elapsed", p.now().Sub(start)).
		Msg("discovery pipeline done")
	return profiles, seeds, nil
}
