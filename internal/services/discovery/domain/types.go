// Package domain defines the types and ports of the candidate discovery pipeline
package domain

import "time"

// RepoCandidate is a repository returned by search, unique by FullName within one run
type RepoCandidate struct {
	FullName    string // owner/repo
	Name        string
	OwnerLogin  string
	URL         string
	Description string
	Stars       int
	Forks       int
	IsFork      bool
	IsArchived  bool
	PushedAt    time.Time
	Languages   []string // primary first
	Topics      []string
}

// Contributor is one entry of a repository contributor list
type Contributor struct {
	Login         string
	NodeID        string
	Type          string // User, Bot, Organization
	Contributions int
}

// IsUser reports whether the contributor is a human account
func (c Contributor) IsUser() bool { return c.Type == "User" }

// ContributorScore is the aggregated seed for one login
type ContributorScore struct {
	Login  string
	NodeID string
	Score  float64
}

// RepoSummary is a repository as it appears on a hydrated profile
type RepoSummary struct {
	FullName    string    `json:"full_name"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	IsFork      bool      `json:"is_fork"`
	PushedAt    time.Time `json:"pushed_at"`
	Languages   []string  `json:"languages"`
	Topics      []string  `json:"topics"`
}

// CandidateProfile is a hydrated GitHub user
type CandidateProfile struct {
	Login           string `json:"login"`
	Name            string `json:"name,omitempty"`
	URL             string `json:"url"`
	AvatarURL       string `json:"avatar_url"`
	Bio             string `json:"bio,omitempty"`
	Location        string `json:"location,omitempty"`
	Company         string `json:"company,omitempty"`
	Email           string `json:"email,omitempty"`
	TwitterUsername string `json:"twitter_username,omitempty"`
	WebsiteURL      string `json:"website_url,omitempty"`
	Followers       int    `json:"followers"`

	TotalContributions int `json:"total_contributions"`
	TotalCommits       int `json:"total_commits"`
	TotalPRs           int `json:"total_prs"`
	TotalIssues        int `json:"total_issues"`
	TotalReviews       int `json:"total_reviews"`

	LastContributionAt *time.Time    `json:"last_contribution_at,omitempty"`
	Repositories       []RepoSummary `json:"repositories"`
	ContribSeed        float64       `json:"contrib_seed"`
}

// HasContact reports whether any public contact channel is set
func (p CandidateProfile) HasContact() bool {
	return p.Email != "" || p.TwitterUsername != "" || p.WebsiteURL != ""
}

// RunStats counts what each pipeline stage produced
type RunStats struct {
	Queries      int
	Repos        int
	Contributors int
	Profiles     int
}
