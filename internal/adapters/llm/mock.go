package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/core/querybuild"
)

// Mock answers from the local vocabulary extractor without any network call
type Mock struct{}

// NewMock returns the offline provider
func NewMock() *Mock { return &Mock{} }

// Kind satisfies Provider
func (*Mock) Kind() Kind { return KindMock }

// GenerateSearchQuery builds a user search from up to two languages and two keywords
func (*Mock) GenerateSearchQuery(_ context.Context, jobText string) (string, error) {
	s := jobspec.ExtractLocal(jobText)
	var parts []string
	for _, l := range s.Languages[:min(2, len(s.Languages))] {
		parts = append(parts, "language:"+querybuild.Term(strings.ToLower(l)))
	}
	for _, k := range s.CoreKeywords[:min(2, len(s.CoreKeywords))] {
		parts = append(parts, querybuild.Term(k))
	}
	if len(parts) == 0 {
		return "repos:>10 followers:>20", nil
	}
	return strings.Join(append(parts, "repos:>5", "followers:>10"), " "), nil
}

// GenerateStructuredSpec returns the locally extracted spec as JSON
func (*Mock) GenerateStructuredSpec(_ context.Context, jobText string) (string, error) {
	b, err := json.Marshal(jobspec.ExtractLocal(jobText))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RewriteText returns the input unchanged
func (*Mock) RewriteText(_ context.Context, jobText string) (string, error) {
	return jobText, nil
}

// GenerateAnalysisText answers with a skills breakdown read off a candidate brief
//
// The brief's "Languages:" and "Topics:" tallies become technologies and domains, its
// repository lines become evidence and its activity line suggests work patterns.
func (*Mock) GenerateAnalysisText(_ context.Context, input string) (string, error) {
	first, _, _ := strings.Cut(strings.TrimSpace(input), "\n")
	out := mockAnalysis{
		DomainExpertise:    []mockSkill{},
		TechnicalExpertise: []mockSkill{},
		BehavioralPatterns: []mockPattern{},
	}
	if first == "" {
		out.ProfileSummary = "No profile data to analyse."
	} else {
		out.ProfileSummary = "Candidate overview: " + first
	}

	var repos []mockRepo
	var prs, reviews int
	for line := range strings.SplitSeq(input, "\n") {
		switch {
		case strings.HasPrefix(line, "Languages: "):
			out.TechnicalExpertise = tallied(strings.TrimPrefix(line, "Languages: "))
		case strings.HasPrefix(line, "Topics: "):
			out.DomainExpertise = tallied(strings.TrimPrefix(line, "Topics: "))
		case strings.HasPrefix(line, "Followers "):
			var followers, commits int
			_, _ = fmt.Sscanf(line, "Followers %d, commits %d, pull requests %d, reviews %d", &followers, &commits, &prs, &reviews)
		case strings.HasPrefix(line, "- "):
			name, rest, _ := strings.Cut(strings.TrimPrefix(line, "- "), ", ")
			_, rest, _ = strings.Cut(rest, ", ")
			langs, _, _ := strings.Cut(rest, ":")
			repos = append(repos, mockRepo{name: name, langs: strings.Split(langs, "/")})
		}
	}
	for i := range out.TechnicalExpertise {
		sk := &out.TechnicalExpertise[i]
		for _, r := range repos {
			if slices.Contains(r.langs, sk.Name) {
				sk.Repositories = append(sk.Repositories, r.name)
			}
		}
	}
	out.TechnicalExpertise = out.TechnicalExpertise[:min(6, len(out.TechnicalExpertise))]
	out.DomainExpertise = out.DomainExpertise[:min(4, len(out.DomainExpertise))]
	if prs > 0 {
		out.BehavioralPatterns = append(out.BehavioralPatterns, mockPattern{
			Name: "Open Source Contributor", Description: "Sends pull requests", Evidence: fmt.Sprintf("%d pull requests", prs),
		})
	}
	if reviews > 0 {
		out.BehavioralPatterns = append(out.BehavioralPatterns, mockPattern{
			Name: "Code Reviewer", Description: "Reviews other people's changes", Evidence: fmt.Sprintf("%d reviews", reviews),
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type mockSkill struct {
	Name         string   `json:"name"`
	Level        string   `json:"level"`
	Evidence     string   `json:"evidence"`
	Repositories []string `json:"repositories"`
}

type mockPattern struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Evidence    string `json:"evidence"`
}

type mockAnalysis struct {
	ProfileSummary     string        `json:"profile_summary"`
	DomainExpertise    []mockSkill   `json:"domain_expertise"`
	TechnicalExpertise []mockSkill   `json:"technical_expertise"`
	BehavioralPatterns []mockPattern `json:"behavioral_patterns"`
}

type mockRepo struct {
	name  string
	langs []string
}

// tallied reads "Go (3), Rust (1)"; three uses or more is Expert, two Advanced, one Intermediate
func tallied(s string) []mockSkill {
	var out []mockSkill
	for part := range strings.SplitSeq(s, ", ") {
		var n int
		name, count, ok := strings.Cut(part, " (")
		if !ok {
			continue
		}
		if _, err := fmt.Sscanf(count, "%d)", &n); err != nil {
			continue
		}
		level := "Intermediate"
		switch {
		case n >= 3:
			level = "Expert"
		case n == 2:
			level = "Advanced"
		}
		out = append(out, mockSkill{
			Name:         name,
			Level:        level,
			Evidence:     fmt.Sprintf("used in %d repositories", n),
			Repositories: []string{},
		})
	}
	return out
}

// Close satisfies Provider
func (*Mock) Close() error { return nil }
