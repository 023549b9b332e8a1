// Package scoring rates hydrated profiles on a 0..100 scale and ranks them
package scoring

import (
	"math"
	"time"

	"github.com/predator4hack/gitscout/internal/services/discovery/domain"
)

// Sub-score caps; they sum to 100
const (
	CapRepos     = 12.0
	CapStars     = 18.0
	CapCommits   = 18.0
	CapLanguages = 20.0
	CapActivity  = 10.0
	CapFollowers = 7.0
	CapSeed      = 15.0
)

// ActiveWindow is how recent a push must be to count as activity
const ActiveWindow = 180 * 24 * time.Hour

// Breakdown holds the sub-scores behind a score
type Breakdown struct {
	Repos     float64 `json:"repos"`
	Stars     float64 `json:"stars"`
	Commits   float64 `json:"commits"`
	Languages float64 `json:"languages"`
	Activity  float64 `json:"activity"`
	Followers float64 `json:"followers"`
	Seed      float64 `json:"seed"`
}

// Total sums the sub-scores rounded to two decimals
func (b Breakdown) Total() float64 {
	return round2(b.Repos + b.Stars + b.Commits + b.Languages + b.Activity + b.Followers + b.Seed)
}

// Score rates p at now
func Score(p domain.CandidateProfile, now time.Time) float64 {
	return Explain(p, now).Total()
}

// Explain returns the sub-scores for p at now
func Explain(p domain.CandidateProfile, now time.Time) Breakdown {
	recent := 0
	cutoff := now.Add(-ActiveWindow)
	for _, r := range p.Repositories {
		if !r.PushedAt.IsZero() && r.PushedAt.After(cutoff) {
			recent++
		}
	}
	return Breakdown{
		Repos:     clampCap(float64(len(p.Repositories))/2, CapRepos),
		Stars:     clampCap(float64(NonForkStars(p))/50, CapStars),
		Commits:   clampCap(float64(p.TotalCommits)/100, CapCommits),
		Languages: clampCap(float64(len(Languages(p)))*2.5, CapLanguages),
		Activity:  clampCap(float64(recent)*2, CapActivity),
		Followers: clampCap(float64(p.Followers)/100, CapFollowers),
		Seed:      clampCap(p.ContribSeed*2, CapSeed),
	}
}

// NonForkStars sums stars over the profile's own repositories
func NonForkStars(p domain.CandidateProfile) int {
	n := 0
	for _, r := range p.Repositories {
		if !r.IsFork && r.Stars > 0 {
			n += r.Stars
		}
	}
	return n
}

// Languages returns the distinct repository languages in first-seen order
func Languages(p domain.CandidateProfile) []string {
	return distinct(p.Repositories, func(r domain.RepoSummary) []string { return r.Languages })
}

// Topics returns the distinct repository topics in first-seen order
func Topics(p domain.CandidateProfile) []string {
	return distinct(p.Repositories, func(r domain.RepoSummary) []string { return r.Topics })
}

func distinct(repos []domain.RepoSummary, pick func(domain.RepoSummary) []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, r := range repos {
		for _, v := range pick(r) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func clampCap(v, hi float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return math.Min(v, hi)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
