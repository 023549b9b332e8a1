package store

import (
	"context"
	"time"

	"github.com/predator4hack/gitscout/internal/core/retry"
	"github.com/predator4hack/gitscout/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger handed to the backends
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithPingRetries overrides how long Open waits for postgres to come up
func WithPingRetries(n int, base time.Duration) Option {
	return func(s *Store) error {
		s.ping.policy.MaxRetries = n
		s.ping.policy.Base = base
		return nil
	}
}

type pingPolicy struct {
	policy  retry.Policy
	timeout time.Duration
}

// a cold postgres container takes a few seconds; this waits about a minute
func defaultPing() pingPolicy {
	return pingPolicy{
		policy: retry.Policy{
			MaxRetries: 20,
			Base:       150 * time.Millisecond,
			Max:        2 * time.Second,
			Jitter:     0.1,
		},
		timeout: 3 * time.Second,
	}
}

func (p pingPolicy) do(ctx context.Context, log logger.Logger, name string, ping func(context.Context) error) error {
	pol := p.policy
	pol.OnRetry = func(attempt int, wait time.Duration, err error) {
		log.Warn().Err(err).Str("backend", name).Int("attempt", attempt).Dur("retry_in", wait).Msg("backend not ready")
	}
	return retry.Do(ctx, func(ctx context.Context) error {
		pctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return ping(pctx)
	}, func(error) bool { return ctx.Err() == nil }, pol)
}
