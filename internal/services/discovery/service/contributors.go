package service

import (
	"context"
	"math"
	"sort"

	"github.com/predator4hack/gitscout/internal/platform/logger"
	dom "github.com/predator4hack/gitscout/internal/services/discovery/domain"

	"golang.org/x/sync/errgroup"
)

// RepoWeight is min(stars/100, 10)
func RepoWeight(stars int) float64 {
	if stars <= 0 {
		return 0
	}
	return math.Min(float64(stars)/100, 10)
}

// SeedDelta is the score one repository adds for a contributor at rank
// rank counts from zero among human contributors
func SeedDelta(weight float64, rank, contributions int) float64 {
	return weight / float64(rank+1) * math.Log(float64(max(contributions, 0))+1)
}

// aggregateContributors fetches contributors per repository and accumulates seeds
//
// Fetches fan out; accumulation runs afterwards in repository order, so ties keep the
// order in which logins were first seen. A login keeps the node id it was first seen with.
func (p *Pipeline) aggregateContributors(
	ctx context.Context,
	repos []dom.RepoCandidate,
	perRepo, maxConcurrency int,
) (map[string]string, []dom.ContributorScore) {
	log := logger.Scoped(ctx, p.log)
	slots := make([][]dom.Contributor, len(repos))

	var g errgroup.Group
	g.SetLimit(max(maxConcurrency, 1))
	for i, r := range repos {
		g.Go(func() error {
			cs, err := p.gh.Contributors(ctx, r.OwnerLogin, r.Name, perRepo)
			if err != nil {
				log.Warn().Err(err).Str("repo", r.FullName).Msg("contributor fetch failed, skipping repository")
				return nil
			}
			slots[i] = cs
			return nil
		})
	}
	_ = g.Wait()

	ids := make(map[string]string)
	index := make(map[string]int)
	var scores []dom.ContributorScore
	for i, r := range repos {
		w := RepoWeight(r.Stars)
		rank := 0
		for _, c := range slots[i] {
			if !c.IsUser() || c.Login == "" || c.NodeID == "" {
				continue
			}
			d := SeedDelta(w, rank, c.Contributions)
			rank++
			if j, ok := index[c.Login]; ok {
				scores[j].Score += d
				continue
			}
			index[c.Login] = len(scores)
			ids[c.Login] = c.NodeID
			scores = append(scores, dom.ContributorScore{Login: c.Login, NodeID: c.NodeID, Score: d})
		}
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if len(scores) > p.cfg.TopContributors {
		scores = scores[:p.cfg.TopContributors]
	}
	return ids, scores
}
