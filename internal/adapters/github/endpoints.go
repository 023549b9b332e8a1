package github

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/predator4hack/gitscout/internal/services/discovery/domain"
)

// search results per page are capped by GitHub at 100
const maxFirst = 100

func clampFirst(n int) int {
	if n <= 0 || n > maxFirst {
		return maxFirst
	}
	return n
}

// SearchRepos runs a repository search and returns the non null repository nodes
func (c *Client) SearchRepos(ctx context.Context, query string, first int) ([]domain.RepoCandidate, error) {
	var out struct {
		Search struct {
			RepositoryCount int         `json:"repositoryCount"`
			Nodes           []*repoNode `json:"nodes"`
		} `json:"search"`
	}
	vars := map[string]any{"query": query, "first": clampFirst(first)}
	if err := c.Query(ctx, searchReposQuery, vars, &out); err != nil {
		return nil, err
	}

	repos := make([]domain.RepoCandidate, 0, len(out.Search.Nodes))
	for _, n := range out.Search.Nodes {
		if n == nil || n.NameWithOwner == "" {
			continue
		}
		repos = append(repos, n.candidate())
	}
	c.log.Debug().
		Str("query", query).
		Int("total", out.Search.RepositoryCount).
		Int("returned", len(repos)).
		Msg("github repo search")
	return repos, nil
}

// SearchUsers runs a user search and returns hydrated profiles
// organizations come back as empty nodes and are skipped
func (c *Client) SearchUsers(ctx context.Context, query string, first int) ([]domain.CandidateProfile, error) {
	var out struct {
		Search struct {
			UserCount int         `json:"userCount"`
			Nodes     []*userNode `json:"nodes"`
		} `json:"search"`
	}
	vars := map[string]any{"query": query, "first": clampFirst(first)}
	if err := c.Query(ctx, searchUsersQuery, vars, &out); err != nil {
		return nil, err
	}
	return profiles(out.Search.Nodes), nil
}

// NodesByID hydrates users by GraphQL node id in one request
// null nodes, deleted or inaccessible accounts, are dropped; order follows ids
func (c *Client) NodesByID(ctx context.Context, ids []string) ([]domain.CandidateProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out struct {
		Nodes []*userNode `json:"nodes"`
	}
	if err := c.Query(ctx, nodesQuery, map[string]any{"ids": ids}, &out); err != nil {
		return nil, err
	}
	return profiles(out.Nodes), nil
}

func profiles(nodes []*userNode) []domain.CandidateProfile {
	out := make([]domain.CandidateProfile, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || n.Login == "" {
			continue
		}
		out = append(out, n.profile())
	}
	return out
}

// Contributors lists the top contributors of owner/repo in GitHub's order
// a missing repository gives an empty list and no error
func (c *Client) Contributors(ctx context.Context, owner, repo string, perPage int) ([]domain.Contributor, error) {
	path := fmt.Sprintf("/repos/%s/%s/contributors?per_page=%d",
		url.PathEscape(owner), url.PathEscape(repo), clampFirst(perPage))

	var raw []contributorJSON
	if _, err := c.getJSON(ctx, path, &raw); err != nil {
		if IsNotFound(err) {
			return []domain.Contributor{}, nil
		}
		return nil, err
	}
	out := make([]domain.Contributor, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.Contributor{
			Login:         r.Login,
			NodeID:        r.NodeID,
			Type:          r.Type,
			Contributions: r.Contributions,
		})
	}
	return out, nil
}

// Rate is one rate limit bucket
type Rate struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// RateLimits holds the buckets the pipeline spends
type RateLimits struct {
	Core    Rate `json:"core"`
	Search  Rate `json:"search"`
	GraphQL Rate `json:"graphql"`
}

// RateLimit reads /rate_limit, which does not count against the quota
func (c *Client) RateLimit(ctx context.Context) (RateLimits, error) {
	type bucket struct {
		Limit     int   `json:"limit"`
		Remaining int   `json:"remaining"`
		Reset     int64 `json:"reset"`
	}
	var raw struct {
		Resources struct {
			Core    bucket `json:"core"`
			Search  bucket `json:"search"`
			GraphQL bucket `json:"graphql"`
		} `json:"resources"`
	}
	if _, err := c.getJSON(ctx, "/rate_limit", &raw); err != nil {
		return RateLimits{}, err
	}
	conv := func(b bucket) Rate {
		return Rate{Limit: b.Limit, Remaining: b.Remaining, Reset: time.Unix(b.Reset, 0).UTC()}
	}
	return RateLimits{
		Core:    conv(raw.Resources.Core),
		Search:  conv(raw.Resources.Search),
		GraphQL: conv(raw.Resources.GraphQL),
	}, nil
}
