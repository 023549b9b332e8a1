package service

import (
	"context"
	"sync"
	"time"

	"github.com/predator4hack/gitscout/internal/platform/logger"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"
)

type slot[V any] struct {
	v       V
	touched time.Time
}

// Cache keeps sessions and candidate analyses in memory
// an entry lives ttl past its last read or write
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*slot[dom.Session]
	analyses map[string]*slot[dom.Analysis]
}

var (
	_ dom.SessionStore  = (*Cache)(nil)
	_ dom.AnalysisStore = (*Cache)(nil)
)

// NewCache returns an empty Cache; ttl <= 0 means 30 minutes
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:      ttl,
		now:      now,
		sessions: map[string]*slot[dom.Session]{},
		analyses: map[string]*slot[dom.Analysis]{},
	}
}

// Put stores s under s.ID
func (c *Cache) Put(s dom.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = &slot[dom.Session]{v: s, touched: c.now()}
}

// Get returns a live session and refreshes its ttl
func (c *Cache) Get(id string) (dom.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lookup(c.sessions, id, c.now(), c.ttl)
}

// Replace updates a live session; false when it expired meanwhile
func (c *Cache) Replace(s dom.Session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.sessions[s.ID]
	if !ok || c.now().Sub(e.touched) > c.ttl {
		return false
	}
	e.v, e.touched = s, c.now()
	return true
}

// PutAnalysis stores a under key
func (c *Cache) PutAnalysis(key string, a dom.Analysis) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.analyses[key] = &slot[dom.Analysis]{v: a, touched: c.now()}
}

// GetAnalysis returns a live analysis and refreshes its ttl
func (c *Cache) GetAnalysis(key string) (dom.Analysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lookup(c.analyses, key, c.now(), c.ttl)
}

// Len counts sessions, expired ones included until the next sweep
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// Sweep drops expired sessions and analyses and returns how many went
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	return sweep(c.sessions, now, c.ttl) + sweep(c.analyses, now, c.ttl)
}

func lookup[V any](m map[string]*slot[V], key string, now time.Time, ttl time.Duration) (V, bool) {
	var zero V
	e, ok := m[key]
	if !ok {
		return zero, false
	}
	if now.Sub(e.touched) > ttl {
		delete(m, key)
		return zero, false
	}
	e.touched = now
	return e.v, true
}

func sweep[V any](m map[string]*slot[V], now time.Time, ttl time.Duration) int {
	n := 0
	for k, e := range m {
		if now.Sub(e.touched) > ttl {
			delete(m, k)
			n++
		}
	}
	return n
}

// Start sweeps every interval until ctx ends
func (c *Cache) Start(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = 5 * time.Minute
	}
	log := logger.Named("search_cache")
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := c.Sweep(); n > 0 {
					log.Debug().Int("expired", n).Int("live", c.Len()).Msg("swept search cache")
				}
			}
		}
	}()
}

// paginate slices a 1 based page; size is clamped to 1..MaxPageSize
func paginate(s dom.Session, page, size int) dom.Page {
	if size <= 0 {
		size = dom.DefaultPageSize
	}
	size = min(size, dom.MaxPageSize)
	page = max(page, 1)

	total := len(s.Candidates)
	pages := (total + size - 1) / size
	lo := min((page-1)*size, total)
	hi := min(lo+size, total)

	out := dom.Page{
		SessionID:  s.ID,
		Candidates: s.Candidates[lo:hi],
		Page:       page,
		PageSize:   size,
		TotalFound: total,
		TotalPages: pages,
		HasMore:    hi < total,
	}
	if page == 1 {
		spec := s.Spec
		out.Spec = &spec
		out.Queries = s.Queries
	}
	return out
}
