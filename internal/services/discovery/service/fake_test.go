package service

import (
	"context"
	"errors"
	"sync"

	dom "github.com/predator4hack/gitscout/internal/services/discovery/domain"
)

type fakeGitHub struct {
	mu sync.Mutex

	repos        map[string][]dom.RepoCandidate
	repoErr      map[string]error
	contributors map[string][]dom.Contributor // keyed by owner/repo
	contribErr   map[string]error
	profiles     map[string]dom.CandidateProfile // keyed by node id
	nodesErr     error

	searched []string
	batches  [][]string
	perPage  []int
}

var errBoom = errors.New("boom")

func (f *fakeGitHub) SearchRepos(_ context.Context, query string, _ int) ([]dom.RepoCandidate, error) {
	f.mu.Lock()
	f.searched = append(f.searched, query)
	f.mu.Unlock()
	if err := f.repoErr[query]; err != nil {
		return nil, err
	}
	return f.repos[query], nil
}

func (f *fakeGitHub) Contributors(_ context.Context, owner, repo string, perPage int) ([]dom.Contributor, error) {
	key := owner + "/" + repo
	f.mu.Lock()
	f.perPage = append(f.perPage, perPage)
	f.mu.Unlock()
	if err := f.contribErr[key]; err != nil {
		return nil, err
	}
	return f.contributors[key], nil
}

func (f *fakeGitHub) NodesByID(_ context.Context, ids []string) ([]dom.CandidateProfile, error) {
	f.mu.Lock()
	f.batches = append(f.batches, append([]string(nil), ids...))
	f.mu.Unlock()
	if f.nodesErr != nil {
		return nil, f.nodesErr
	}
	var out []dom.CandidateProfile
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func repo(owner, name string, stars int) dom.RepoCandidate {
	return dom.RepoCandidate{FullName: owner + "/" + name, Name: name, OwnerLogin: owner, Stars: stars}
}

func user(login, id string, n int) dom.Contributor {
	return dom.Contributor{Login: login, NodeID: id, Type: "User", Contributions: n}
}
