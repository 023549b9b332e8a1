package llm

import (
	"context"
	"errors"
	"sync"
)

// Registry builds providers on first use and keeps one per kind
// kinds share the base Config; only Kind differs
type Registry struct {
	base Config
	mu   sync.Mutex
	made map[Kind]Provider
	newf func(context.Context, Config) (Provider, error)
}

// NewRegistry returns a registry whose default kind is base.Kind, mock when unset
func NewRegistry(base Config) *Registry {
	if base.Kind == "" {
		base.Kind = KindMock
	}
	return &Registry{base: base, made: map[Kind]Provider{}, newf: New}
}

// Default returns the kind used when callers pass none
func (r *Registry) Default() Kind { return r.base.Kind }

// Get returns the provider for kind, the default when kind is empty
// construction failures are not cached
func (r *Registry) Get(ctx context.Context, kind Kind) (Provider, error) {
	if kind == "" {
		kind = r.base.Kind
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.made[kind]; ok {
		return p, nil
	}
	cfg := r.base
	cfg.Kind = kind
	p, err := r.newf(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r.made[kind] = p
	return p, nil
}

// Close closes every provider built so far
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for k, p := range r.made {
		errs = append(errs, p.Close())
		delete(r.made, k)
	}
	return errors.Join(errs...)
}
