// Package jobspec holds the structured requirement spec extracted from a job description
//
// A Spec is a value. Normalize and Merge return new values and never touch their inputs,
// so a spec handed to the query builder cannot change underneath it.
package jobspec

import (
	"regexp"
	"strings"

	"github.com/predator4hack/gitscout/internal/core/textfold"
)

// Caps applied by Normalize
const (
	MaxLanguages    = 3
	MaxCoreKeywords = 8
	MaxNiceKeywords = 5
)

// Seniority thresholds applied by Normalize
const (
	SeniorMinStars     = 50
	SeniorMinFollowers = 10
	MidMinStars        = 20
	MidMinFollowers    = 0
)

// Spec is the structured requirement spec
type Spec struct {
	RoleTitle    string   `json:"role_title,omitempty"`
	Languages    []string `json:"languages"`
	CoreDomains  []string `json:"core_domains"`
	CoreKeywords []string `json:"core_keywords"`
	NiceKeywords []string `json:"nice_keywords"`

	RecencyDays     int  `json:"recency_days"`
	MinRepoStars    int  `json:"min_repo_stars"`
	ExcludeForks    bool `json:"exclude_forks"`
	ExcludeArchived bool `json:"exclude_archived"`

	MinFollowers int    `json:"min_followers"`
	LocationHint string `json:"location_hint,omitempty"`

	MaxRepoQueries   int `json:"max_repo_queries"`
	MaxReposPerQuery int `json:"max_repos_per_query"`

	pinned pin
}

// pin marks thresholds that were given explicitly; Normalize keeps them as they are
type pin uint8

const (
	pinStars pin = 1 << iota
	pinFollowers
)

// WithMinRepoStars returns s with an explicit star threshold
func (s Spec) WithMinRepoStars(n int) Spec {
	s.MinRepoStars = n
	s.pinned |= pinStars
	return s
}

// WithMinFollowers returns s with an explicit follower threshold
func (s Spec) WithMinFollowers(n int) Spec {
	s.MinFollowers = n
	s.pinned |= pinFollowers
	return s
}

// Defaults returns an empty spec with default search shaping
func Defaults() Spec {
	return Spec{
		Languages:        []string{},
		CoreDomains:      []string{},
		CoreKeywords:     []string{},
		NiceKeywords:     []string{},
		RecencyDays:      365,
		MinRepoStars:     20,
		ExcludeForks:     true,
		ExcludeArchived:  true,
		MaxRepoQueries:   8,
		MaxReposPerQuery: 20,
	}
}

// IsEmpty reports whether the spec has neither languages nor core keywords
func (s Spec) IsEmpty() bool {
	return len(s.Languages) == 0 && len(s.CoreKeywords) == 0
}

// Normalize canonicalizes a spec
//
// Languages resolve through the alias table, domains and keywords are folded to lower case,
// lists are deduplicated in order and capped, and numeric fields are clamped at zero.
// Thresholds not set through WithMinRepoStars or WithMinFollowers take the seniority
// defaults. Seniority comes from the role title or, failing that, the opening sentence of
// text, the job text the spec came from.
func Normalize(s Spec, text string) Spec {
	out := s
	out.RoleTitle = strings.TrimSpace(s.RoleTitle)
	out.LocationHint = strings.TrimSpace(s.LocationHint)

	out.Languages = capList(dedup(s.Languages, CanonicalLanguage), MaxLanguages)
	out.CoreDomains = dedup(s.CoreDomains, canonicalDomain)
	out.CoreKeywords = capList(dedup(s.CoreKeywords, canonicalKeyword), MaxCoreKeywords)
	out.NiceKeywords = capList(dedup(s.NiceKeywords, canonicalKeyword), MaxNiceKeywords)

	out.RecencyDays = nonNeg(s.RecencyDays)
	out.MinRepoStars = nonNeg(s.MinRepoStars)
	out.MinFollowers = nonNeg(s.MinFollowers)
	if out.MaxRepoQueries <= 0 {
		out.MaxRepoQueries = Defaults().MaxRepoQueries
	}
	if out.MaxReposPerQuery <= 0 {
		out.MaxReposPerQuery = Defaults().MaxReposPerQuery
	}

	stars, followers := MidMinStars, MidMinFollowers
	if IsSenior(out.RoleTitle) || IsSenior(TitleLine(text)) {
		stars, followers = SeniorMinStars, SeniorMinFollowers
	}
	if s.pinned&pinStars == 0 {
		out.MinRepoStars = stars
	}
	if s.pinned&pinFollowers == 0 {
		out.MinFollowers = followers
	}
	return out
}

// Merge fills the empty fields of base from extra
// populated fields of base are never overwritten
func Merge(base, extra Spec) Spec {
	out := base
	if out.RoleTitle == "" {
		out.RoleTitle = extra.RoleTitle
	}
	if out.LocationHint == "" {
		out.LocationHint = extra.LocationHint
	}
	out.Languages = fillList(base.Languages, extra.Languages)
	out.CoreDomains = fillList(base.CoreDomains, extra.CoreDomains)
	out.CoreKeywords = fillList(base.CoreKeywords, extra.CoreKeywords)
	out.NiceKeywords = fillList(base.NiceKeywords, extra.NiceKeywords)
	if base.pinned&pinStars == 0 && extra.pinned&pinStars != 0 {
		out = out.WithMinRepoStars(extra.MinRepoStars)
	}
	if base.pinned&pinFollowers == 0 && extra.pinned&pinFollowers != 0 {
		out = out.WithMinFollowers(extra.MinFollowers)
	}
	return out
}

var seniorRe = regexp.MustCompile(`\b(senior|staff|principal|lead|sr)\b`)

// IsSenior reports whether text names a senior level role
// pass a title, not a whole job description: "you will lead" is not a level
func IsSenior(text string) bool {
	if text == "" {
		return false
	}
	return seniorRe.MatchString(textfold.Fold(text))
}

// TitleLine returns the opening sentence of the first non blank line of text
func TitleLine(text string) string {
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#*- \t"))
		if line == "" {
			continue
		}
		if i := strings.IndexAny(line, ".!?"); i >= 0 {
			line = line[:i]
		}
		return strings.TrimSpace(line)
	}
	return ""
}

func canonicalDomain(s string) string {
	return strings.ReplaceAll(textfold.Fold(s), " ", "-")
}

func canonicalKeyword(s string) string { return textfold.Fold(s) }

func dedup(in []string, canon func(string) string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		c := canon(v)
		if c == "" {
			continue
		}
		k := textfold.Fold(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

func capList(in []string, n int) []string {
	if len(in) > n {
		return in[:n:n]
	}
	return in
}

func fillList(base, extra []string) []string {
	if len(base) > 0 {
		return append([]string(nil), base...)
	}
	return append([]string{}, extra...)
}

func nonNeg(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
