package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/predator4hack/gitscout/internal/adapters/llm"
	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/modkit/repokit"
	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/store"
	discovery "github.com/predator4hack/gitscout/internal/services/discovery/domain"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"
)

type pipeline struct {
	profiles []discovery.CandidateProfile
	err      error
	queries  []string
}

func (p *pipeline) Run(ctx context.Context, _ jobspec.Spec, queries []string, _, _ int) ([]discovery.CandidateProfile, map[string]float64, error) {
	p.queries = queries
	if st := discovery.StatsFrom(ctx); st != nil {
		st.Queries = len(queries)
		st.Repos = 2
		st.Contributors = len(p.profiles)
		st.Profiles = len(p.profiles)
	}
	if p.err != nil {
		return nil, nil, p.err
	}
	return slices.Clone(p.profiles), map[string]float64{}, nil
}

type users struct {
	byQuery map[string][]discovery.CandidateProfile
	asked   []string
}

func (u *users) SearchUsers(_ context.Context, q string, _ int) ([]discovery.CandidateProfile, error) {
	u.asked = append(u.asked, q)
	for prefix, found := range u.byQuery {
		if strings.HasPrefix(q, prefix) {
			return slices.Clone(found), nil
		}
	}
	return nil, nil
}

type runs struct {
	mu  sync.Mutex
	got []dom.Run
	err error
}

func (r *runs) Record(_ context.Context, run dom.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, run)
	return r.err
}

type noQ struct{ store.RowQuerier }

type tx struct{ store.RowQuerier }

func (tx) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(noQ{}) }

// memRepo is a dom.Repo kept in a map, shared by every bind
type memRepo struct {
	mu    sync.Mutex
	items map[string]dom.SavedSearch
}

func newMemRepo() *memRepo { return &memRepo{items: map[string]dom.SavedSearch{}} }

func (m *memRepo) binder() repokit.Binder[dom.Repo] {
	return repokit.BindFunc[dom.Repo](func(repokit.Queryer) dom.Repo { return m })
}

func (m *memRepo) Insert(_ context.Context, s dom.SavedSearch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[s.ID] = s
	return nil
}

func (m *memRepo) List(_ context.Context, owner string) ([]dom.SavedSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []dom.SavedSummary{}
	for _, s := range m.items {
		if s.Owner == owner {
			out = append(out, dom.SavedSummary{
				ID: s.ID, Title: s.Title, CandidateCount: len(s.Candidates),
				StarredCount: len(s.Starred), CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
			})
		}
	}
	return out, nil
}

func (m *memRepo) Get(_ context.Context, owner, id string) (dom.SavedSearch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok || s.Owner != owner {
		return dom.SavedSearch{}, perr.NotFoundf("saved search %s not found", id)
	}
	return s, nil
}

func (m *memRepo) Delete(_ context.Context, owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok || s.Owner != owner {
		return perr.NotFoundf("saved search %s not found", id)
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) ToggleStar(_ context.Context, owner, id, login string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok || s.Owner != owner {
		return nil, perr.NotFoundf("saved search %s not found", id)
	}
	if i := slices.Index(s.Starred, login); i >= 0 {
		s.Starred = slices.Delete(s.Starred, i, i+1)
	} else {
		s.Starred = append(s.Starred, login)
	}
	m.items[id] = s
	return slices.Clone(s.Starred), nil
}

// clock is a settable time source
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func profile(login, location string, followers int, at time.Time) discovery.CandidateProfile {
	pushed := at.Add(-24 * time.Hour)
	return discovery.CandidateProfile{
		Login:              login,
		Name:               strings.ToUpper(login),
		URL:                "https://github.com/" + login,
		Location:           location,
		Followers:          followers,
		TotalContributions: followers * 3,
		TotalCommits:       followers * 2,
		LastContributionAt: &pushed,
		Repositories: []discovery.RepoSummary{{
			FullName:  fmt.Sprintf("%s/tool", login),
			Stars:     followers,
			PushedAt:  pushed,
			Languages: []string{"Go"},
			Topics:    []string{"kubernetes"},
		}},
		ContribSeed: 1,
	}
}

func ids(n int) func() string {
	i := 0
	return func() string {
		i++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", i+n)
	}
}

// countingMock is the offline provider with analysis calls counted and optionally scripted
type countingMock struct {
	*llm.Mock
	mu       sync.Mutex
	analyses int
	reply    string
}

func (c *countingMock) GenerateAnalysisText(ctx context.Context, in string) (string, error) {
	c.mu.Lock()
	c.analyses++
	reply := c.reply
	c.mu.Unlock()
	if reply != "" {
		return reply, nil
	}
	return c.Mock.GenerateAnalysisText(ctx, in)
}

type fixedProviders struct{ p llm.Provider }

func (f fixedProviders) Get(context.Context, llm.Kind) (llm.Provider, error) { return f.p, nil }

func (fixedProviders) Default() llm.Kind { return llm.KindMock }
