package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarded is a store that can ping every backend it opened
type Guarded interface {
	Guard(ctx context.Context) error
}

// MustGuard panics when any configured backend fails its ping
// without a deadline on ctx the backends get five seconds
func MustGuard(ctx context.Context, st Guarded) {
	if st == nil {
		panic("dependency guard: nil store")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Sprintf("dependency guard failed: %v", err))
	}
}
