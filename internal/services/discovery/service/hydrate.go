package service

import (
	"context"

	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	dom "github.com/predator4hack/gitscout/internal/services/discovery/domain"

	"golang.org/x/sync/errgroup"
)

// hydrateProfiles loads full profiles for ids, batchSize ids per request
//
// Batches run concurrently and are stitched back in batch order. The GitHub port retries
// transient failures; anything that still fails aborts hydration.
func (p *Pipeline) hydrateProfiles(ctx context.Context, ids []string, batchSize int) ([]dom.CandidateProfile, error) {
	if len(ids) == 0 {
		return []dom.CandidateProfile{}, nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	log := logger.Scoped(ctx, p.log)

	var batches [][]string
	for i := 0; i < len(ids); i += batchSize {
		batches = append(batches, ids[i:min(i+batchSize, len(ids))])
	}
	slots := make([][]dom.CandidateProfile, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxConcurrency)
	for i, b := range batches {
		g.Go(func() error {
			profiles, err := p.gh.NodesByID(gctx, b)
			if err != nil {
				return perr.WithOp(err, "hydrate_profiles")
			}
			slots[i] = profiles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]dom.CandidateProfile, 0, len(ids))
	for _, s := range slots {
		out = append(out, s...)
	}
	log.Debug().Int("ids", len(ids)).Int("batches", len(batches)).Int("profiles", len(out)).Msg("hydration done")
	return out, nil
}
