package github

import (
	"time"

	ptime "github.com/predator4hack/gitscout/internal/platform/time"
	"github.com/predator4hack/gitscout/internal/services/discovery/domain"
)

type nameNode struct {
	Name string `json:"name"`
}

type repoNode struct {
	NameWithOwner string `json:"nameWithOwner"`
	Name          string `json:"name"`
	Owner         struct {
		Login string `json:"login"`
	} `json:"owner"`
	URL             string     `json:"url"`
	Description     string     `json:"description"`
	StargazerCount  int        `json:"stargazerCount"`
	ForkCount       int        `json:"forkCount"`
	IsFork          bool       `json:"isFork"`
	IsArchived      bool       `json:"isArchived"`
	PushedAt        *time.Time `json:"pushedAt"`
	PrimaryLanguage *nameNode  `json:"primaryLanguage"`
	Languages       struct {
		Edges []struct {
			Node nameNode `json:"node"`
		} `json:"edges"`
	} `json:"languages"`
	RepositoryTopics struct {
		Nodes []struct {
			Topic *nameNode `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`
}

type userNode struct {
	Login           string `json:"login"`
	Name            string `json:"name"`
	URL             string `json:"url"`
	AvatarURL       string `json:"avatarUrl"`
	Bio             string `json:"bio"`
	Location        string `json:"location"`
	Company         string `json:"company"`
	Email           string `json:"email"`
	TwitterUsername string `json:"twitterUsername"`
	WebsiteURL      string `json:"websiteUrl"`
	Followers       struct {
		TotalCount int `json:"totalCount"`
	} `json:"followers"`
	ContributionsCollection struct {
		ContributionCalendar struct {
			TotalContributions int `json:"totalContributions"`
		} `json:"contributionCalendar"`
		TotalCommitContributions            int `json:"totalCommitContributions"`
		TotalPullRequestContributions       int `json:"totalPullRequestContributions"`
		TotalIssueContributions             int `json:"totalIssueContributions"`
		TotalPullRequestReviewContributions int `json:"totalPullRequestReviewContributions"`
	} `json:"contributionsCollection"`
	Repositories struct {
		Nodes []*repoNode `json:"nodes"`
	} `json:"repositories"`
	RepositoriesContributedTo struct {
		Nodes []*struct {
			PushedAt *time.Time `json:"pushedAt"`
		} `json:"nodes"`
	} `json:"repositoriesContributedTo"`
}

type contributorJSON struct {
	Login         string `json:"login"`
	NodeID        string `json:"node_id"`
	Type          string `json:"type"`
	Contributions int    `json:"contributions"`
}

// languages lists the primary language first, then the rest by size, without repeats
func (r *repoNode) languages() []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(n string) {
		if n == "" {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if r.PrimaryLanguage != nil {
		add(r.PrimaryLanguage.Name)
	}
	for _, e := range r.Languages.Edges {
		add(e.Node.Name)
	}
	return out
}

func (r *repoNode) topics() []string {
	var out []string
	for _, n := range r.RepositoryTopics.Nodes {
		if n.Topic != nil && n.Topic.Name != "" {
			out = append(out, n.Topic.Name)
		}
	}
	return out
}

func (r *repoNode) candidate() domain.RepoCandidate {
	rc := domain.RepoCandidate{
		FullName:    r.NameWithOwner,
		Name:        r.Name,
		OwnerLogin:  r.Owner.Login,
		URL:         r.URL,
		Description: r.Description,
		Stars:       r.StargazerCount,
		Forks:       r.ForkCount,
		IsFork:      r.IsFork,
		IsArchived:  r.IsArchived,
		Languages:   r.languages(),
		Topics:      r.topics(),
	}
	if r.PushedAt != nil {
		rc.PushedAt = *r.PushedAt
	}
	return rc
}

func (r *repoNode) summary() domain.RepoSummary {
	rs := domain.RepoSummary{
		FullName:    r.NameWithOwner,
		URL:         r.URL,
		Description: r.Description,
		Stars:       r.StargazerCount,
		Forks:       r.ForkCount,
		IsFork:      r.IsFork,
		Languages:   r.languages(),
		Topics:      r.topics(),
	}
	if r.PushedAt != nil {
		rs.PushedAt = *r.PushedAt
	}
	return rs
}

// profile converts a user node; the last contribution is the latest push seen
// on the user's own repositories or on repositories they contributed to
func (u *userNode) profile() domain.CandidateProfile {
	cc := u.ContributionsCollection
	p := domain.CandidateProfile{
		Login:              u.Login,
		Name:               u.Name,
		URL:                u.URL,
		AvatarURL:          u.AvatarURL,
		Bio:                u.Bio,
		Location:           u.Location,
		Company:            u.Company,
		Email:              u.Email,
		TwitterUsername:    u.TwitterUsername,
		WebsiteURL:         u.WebsiteURL,
		Followers:          u.Followers.TotalCount,
		TotalContributions: cc.ContributionCalendar.TotalContributions,
		TotalCommits:       cc.TotalCommitContributions,
		TotalPRs:           cc.TotalPullRequestContributions,
		TotalIssues:        cc.TotalIssueContributions,
		TotalReviews:       cc.TotalPullRequestReviewContributions,
		Repositories:       []domain.RepoSummary{},
	}

	var pushes []*time.Time
	for _, r := range u.Repositories.Nodes {
		if r == nil || r.NameWithOwner == "" {
			continue
		}
		p.Repositories = append(p.Repositories, r.summary())
		pushes = append(pushes, r.PushedAt)
	}
	for _, n := range u.RepositoriesContributedTo.Nodes {
		if n != nil {
			pushes = append(pushes, n.PushedAt)
		}
	}
	p.LastContributionAt = ptime.Latest(pushes...)
	return p
}
