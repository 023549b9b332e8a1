package store

import (
	"context"

	chx "github.com/predator4hack/gitscout/internal/platform/store/ch"
	"github.com/predator4hack/gitscout/internal/platform/store/pg"
)

func openPG(ctx context.Context, cfg PGConfig, s *Store) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{URL: cfg.URL, MaxConns: cfg.MaxConns, SlowMs: cfg.SlowQueryMs}, tracer, nil)
	if err != nil {
		return nil, err
	}
	// ping the pool directly so boot retries stay out of the SQL trace
	if err := s.ping.do(ctx, s.Log, "pg", p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg CHConfig, s *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:         cfg.URL,
		DialTimeout: cfg.DialTimeout,
		ClientName:  cfg.ClientName,
		ClientTag:   cfg.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	if err := s.ping.do(ctx, s.Log, "ch", c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	return newCHAdapter(c), nil
}
