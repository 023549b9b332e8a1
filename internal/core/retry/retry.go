// Package retry runs an operation with exponential backoff and jitter
//
// The combinator knows nothing about HTTP. Callers supply the retryable predicate
// and errors may carry their own wait through RetryAfter.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Policy controls attempts and waits
// MaxRetries counts retries after the first attempt, so 3 means up to 4 calls
type Policy struct {
	MaxRetries int
	Base       time.Duration
	Max        time.Duration
	// Jitter is the fraction of the computed wait added at random, 0..1
	Jitter float64

	// Sleep waits for d or until ctx ends; nil uses a timer
	Sleep func(ctx context.Context, d time.Duration) error
	// Rand returns a value in [0,1); nil uses math/rand
	Rand func() float64
	// OnRetry observes each scheduled retry
	OnRetry func(attempt int, wait time.Duration, err error)
}

// Default is the policy used for GitHub calls
func Default() Policy {
	return Policy{MaxRetries: 3, Base: 500 * time.Millisecond, Max: 30 * time.Second, Jitter: 0.25}
}

// Waiter is implemented by errors that know how long to wait, rate limits mostly
type Waiter interface {
	RetryAfter() time.Duration
}

// Do calls op until it succeeds, returns a non retryable error, or exhausts the policy
// the last error is returned as is, also when it asks for a wait longer than Max
func Do(ctx context.Context, op func(ctx context.Context) error, retryable func(error) bool, p Policy) error {
	p = p.withDefaults()
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := op(ctx)
		if err == nil {
			return nil
		}
		if retryable == nil || !retryable(err) || attempt >= p.MaxRetries {
			return err
		}
		wait := p.Backoff(attempt)
		if w, ok := asWaiter(err); ok && w > 0 {
			if w > p.Max {
				return err
			}
			wait = w
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, wait, err)
		}
		if serr := p.Sleep(ctx, wait); serr != nil {
			return serr
		}
	}
}

// Value is Do for operations that return a result
func Value[T any](ctx context.Context, op func(ctx context.Context) (T, error), retryable func(error) bool, p Policy) (T, error) {
	var out T
	err := Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	}, retryable, p)
	return out, err
}

// Backoff returns the wait before retry number attempt+1
// base doubles per attempt, is capped at Max, then jitter is added on top
func (p Policy) Backoff(attempt int) time.Duration {
	p = p.withDefaults()
	d := p.Base
	for i := 0; i < attempt && d < p.Max; i++ {
		d *= 2
	}
	if d > p.Max {
		d = p.Max
	}
	if p.Jitter > 0 {
		d += time.Duration(float64(d) * p.Jitter * p.Rand())
	}
	return d
}

func (p Policy) withDefaults() Policy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.Base <= 0 {
		p.Base = 100 * time.Millisecond
	}
	if p.Max <= 0 {
		p.Max = 30 * time.Second
	}
	if p.Sleep == nil {
		p.Sleep = sleepCtx
	}
	if p.Rand == nil {
		p.Rand = rand.Float64
	}
	return p
}

func asWaiter(err error) (time.Duration, bool) {
	var w Waiter
	if errors.As(err, &w) {
		return w.RetryAfter(), true
	}
	return 0, false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
