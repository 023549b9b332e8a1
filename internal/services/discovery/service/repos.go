package service

import (
	"context"
	"sort"

	"github.com/predator4hack/gitscout/internal/platform/logger"
	dom "github.com/predator4hack/gitscout/internal/services/discovery/domain"

	"golang.org/x/sync/errgroup"
)

// discoverRepos searches every query and merges the results
//
// Results merge in query order, deduplicated by full name, after the fork and archived
// filters. The merged list is sorted by stars then last push, newest first, and cut to maxRepos.
func (p *Pipeline) discoverRepos(
	ctx context.Context,
	queries []string,
	excludeForks, excludeArchived bool,
	maxRepos int,
) []dom.RepoCandidate {
	log := logger.Scoped(ctx, p.log)
	slots := make([][]dom.RepoCandidate, len(queries))

	var g errgroup.Group
	g.SetLimit(p.cfg.MaxConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			repos, err := p.gh.SearchRepos(ctx, q, p.cfg.SearchPageSize)
			if err != nil {
				log.Warn().Err(err).Str("query", q).Msg("repository search failed, skipping query")
				return nil
			}
			slots[i] = repos
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{})
	var out []dom.RepoCandidate
	for _, repos := range slots {
		for _, r := range repos {
			if r.FullName == "" {
				continue
			}
			if _, dup := seen[r.FullName]; dup {
				continue
			}
			if (excludeForks && r.IsFork) || (excludeArchived && r.IsArchived) {
				continue
			}
			seen[r.FullName] = struct{}{}
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Stars != out[j].Stars {
			return out[i].Stars > out[j].Stars
		}
		return out[i].PushedAt.After(out[j].PushedAt)
	})
	if maxRepos > 0 && len(out) > maxRepos {
		out = out[:maxRepos]
	}
	return out
}
