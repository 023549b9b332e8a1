package domain

import "context"

type statsKey struct{}

// WithStats asks Run to fill st as stages complete
func WithStats(ctx context.Context, st *RunStats) context.Context {
	return context.WithValue(ctx, statsKey{}, st)
}

// StatsFrom returns the sink set by WithStats, or nil
func StatsFrom(ctx context.Context) *RunStats {
	st, _ := ctx.Value(statsKey{}).(*RunStats)
	return st
}
