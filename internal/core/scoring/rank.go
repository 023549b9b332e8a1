package scoring

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/predator4hack/gitscout/internal/services/discovery/domain"
)

// TopReposPerCandidate bounds ScoredCandidate.TopRepos
const TopReposPerCandidate = 4

// DefaultReason is used when no other reason applies
const DefaultReason = "Active GitHub profile"

// ScoredCandidate is a profile with its score and a short explanation
type ScoredCandidate struct {
	Profile     domain.CandidateProfile `json:"profile"`
	Score       float64                 `json:"score"`
	Breakdown   Breakdown               `json:"breakdown"`
	MatchReason string                  `json:"match_reason"`
	TopRepos    []domain.RepoSummary    `json:"top_repos"`
}

// Rank scores every profile and sorts by score, highest first
// equal scores keep input order
func Rank(profiles []domain.CandidateProfile, now time.Time) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(profiles))
	for _, p := range profiles {
		b := Explain(p, now)
		out = append(out, ScoredCandidate{
			Profile:     p,
			Score:       b.Total(),
			Breakdown:   b,
			MatchReason: MatchReason(p),
			TopRepos:    slices.Clone(p.Repositories[:min(TopReposPerCandidate, len(p.Repositories))]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// MatchReason explains a profile in at most three clauses
func MatchReason(p domain.CandidateProfile) string {
	var reasons []string
	if langs := Languages(p); len(langs) > 0 {
		reasons = append(reasons, "Expertise in "+strings.Join(langs[:min(3, len(langs))], ", "))
	}
	if topics := Topics(p); len(topics) > 0 {
		reasons = append(reasons, "Experience with "+strings.Join(topics[:min(3, len(topics))], ", "))
	}
	if p.TotalCommits > 100 {
		reasons = append(reasons, fmt.Sprintf("%d contributions", p.TotalCommits))
	}
	if stars := NonForkStars(p); stars > 50 {
		reasons = append(reasons, fmt.Sprintf("%d stars earned", stars))
	}
	if len(reasons) == 0 {
		return DefaultReason
	}
	return strings.Join(reasons[:min(3, len(reasons))], "; ")
}
