// Package domain defines the search application types and ports
package domain

import (
	"time"

	"github.com/predator4hack/gitscout/internal/core/filtering"
	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/core/scoring"
)

// Page size bounds
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// SearchInput starts a search session
type SearchInput struct {
	JobText  string
	Provider string // empty means the configured default
	Filters  *filtering.Filters
	PageSize int
}

// Session is a cached search result; Candidates are ranked and already filtered
type Session struct {
	ID         string
	JobText    string
	Spec       jobspec.Spec
	Queries    []string
	Ranked     []scoring.ScoredCandidate // before filters
	Candidates []scoring.ScoredCandidate
	Filters    *filtering.Filters
	Fallback   bool
	CreatedAt  time.Time
}

// Page is one slice of a session
type Page struct {
	SessionID  string                    `json:"session_id"`
	Spec       *jobspec.Spec             `json:"spec,omitempty"`
	Queries    []string                  `json:"queries,omitempty"`
	Candidates []scoring.ScoredCandidate `json:"candidates"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"page_size"`
	TotalFound int                       `json:"total_found"`
	TotalPages int                       `json:"total_pages"`
	HasMore    bool                      `json:"has_more"`
}

// SaveInput persists a session or an explicit candidate list
// SessionID wins when both are set
type SaveInput struct {
	SessionID  string
	Title      string
	JobText    string
	Candidates []scoring.ScoredCandidate
}

// SavedSearch is a persisted job search
type SavedSearch struct {
	ID         string                    `json:"id"`
	Owner      string                    `json:"owner"`
	Title      string                    `json:"title"`
	JobText    string                    `json:"job_text"`
	Spec       *jobspec.Spec             `json:"spec,omitempty"`
	Candidates []scoring.ScoredCandidate `json:"candidates"`
	Starred    []string                  `json:"starred"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

// SavedSummary is a list row
type SavedSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	CandidateCount int       `json:"candidate_count"`
	StarredCount   int       `json:"starred_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Run is one analytics row per search
type Run struct {
	ID           string
	StartedAt    time.Time
	Provider     string
	Stage        string
	Queries      int
	Repos        int
	Contributors int
	Profiles     int
	Candidates   int
	Elapsed      time.Duration
	Fallback     bool
	Error        string
}

// Level grades a skill
type Level string

// Skill levels, strongest first
const (
	LevelExpert       Level = "Expert"
	LevelAdvanced     Level = "Advanced"
	LevelIntermediate Level = "Intermediate"
	LevelBeginner     Level = "Beginner"
)

// Skill is a domain or technology the candidate works in, with the repositories showing it
type Skill struct {
	Name         string   `json:"name"`
	Level        Level    `json:"level"`
	YearsActive  *int     `json:"years_active,omitempty"`
	Evidence     string   `json:"evidence,omitempty"`
	Repositories []string `json:"repositories"`
}

// Pattern is a recurring way of working, such as reviewing or writing docs
type Pattern struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Evidence    string `json:"evidence,omitempty"`
}

// Analysis caps
const (
	MaxDomainSkills    = 4
	MaxTechnicalSkills = 6
	MaxPatterns        = 4
)

// Analysis is the model's skills breakdown of one candidate
type Analysis struct {
	Login              string    `json:"login"`
	Score              float64   `json:"score"`
	Provider           string    `json:"provider"`
	GeneratedAt        time.Time `json:"generated_at"`
	ProfileSummary     string    `json:"profile_summary"`
	DomainExpertise    []Skill   `json:"domain_expertise"`
	TechnicalExpertise []Skill   `json:"technical_expertise"`
	BehavioralPatterns []Pattern `json:"behavioral_patterns"`
}
