package service

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/predator4hack/gitscout/internal/adapters/llm"
	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/core/scoring"
	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"

	"github.com/mitchellh/mapstructure"
)

// briefRepos bounds the repositories listed in a brief
const briefRepos = 8

// Analyze returns the skills breakdown of one candidate of a live session
// answers are kept per session, login and provider for as long as the cache keeps them
func (s *Service) Analyze(ctx context.Context, sessionID, login, provider string) (dom.Analysis, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return dom.Analysis{}, err
	}
	var found *scoring.ScoredCandidate
	for i := range sess.Ranked {
		if strings.EqualFold(sess.Ranked[i].Profile.Login, login) {
			found = &sess.Ranked[i]
			break
		}
	}
	if found == nil {
		return dom.Analysis{}, perr.WithField(perr.NotFoundf("%s is not part of this search", login), "login")
	}

	kind := s.d.Providers.Default()
	if provider != "" {
		if kind, err = llm.ParseKind(provider); err != nil {
			return dom.Analysis{}, perr.WithField(err, "provider")
		}
	}

	key := analysisKey(sess.ID, found.Profile.Login, kind)
	if a, ok := s.d.Analyses.GetAnalysis(key); ok {
		return a, nil
	}

	p, err := s.d.Providers.Get(ctx, kind)
	if err != nil {
		return dom.Analysis{}, err
	}
	reply, err := p.GenerateAnalysisText(ctx, Brief(*found, sess.JobText))
	if err != nil {
		return dom.Analysis{}, perr.WithOp(err, "analyze_candidate")
	}

	a, err := ParseAnalysis(reply)
	log := logger.Scoped(logger.WithSearch(ctx, sess.ID), s.log)
	if err != nil {
		log.Warn().Err(err).Str("login", found.Profile.Login).Msg("analysis reply is not json, keeping it as the summary")
	}
	a.Login = found.Profile.Login
	a.Score = found.Score
	a.Provider = string(kind)
	a.GeneratedAt = s.d.Now().UTC()
	log.Info().
		Str("login", a.Login).
		Int("domains", len(a.DomainExpertise)).
		Int("technologies", len(a.TechnicalExpertise)).
		Int("patterns", len(a.BehavioralPatterns)).
		Msg("candidate analysed")

	s.d.Analyses.PutAnalysis(key, a)
	return a, nil
}

func analysisKey(sessionID, login string, kind llm.Kind) string {
	return sessionID + "/" + strings.ToLower(login) + "/" + string(kind)
}

type skillWire struct {
	Name         string   `json:"name"`
	Level        string   `json:"level"`
	YearsActive  *int     `json:"years_active"`
	Evidence     string   `json:"evidence"`
	Repositories []string `json:"repositories"`
}

type analysisWire struct {
	ProfileSummary     string        `json:"profile_summary"`
	DomainExpertise    []skillWire   `json:"domain_expertise"`
	TechnicalExpertise []skillWire   `json:"technical_expertise"`
	BehavioralPatterns []dom.Pattern `json:"behavioral_patterns"`
}

// ParseAnalysis decodes a model reply into an analysis without identity fields
//
// Fences and surrounding prose are tolerated, unknown levels read as Intermediate and
// lists are capped. A reply with no JSON object comes back as the summary alongside an error.
func ParseAnalysis(reply string) (dom.Analysis, error) {
	out := dom.Analysis{
		DomainExpertise:    []dom.Skill{},
		TechnicalExpertise: []dom.Skill{},
		BehavioralPatterns: []dom.Pattern{},
	}
	obj, ok := jobspec.FirstObject(jobspec.StripFences(reply))
	if !ok {
		out.ProfileSummary = strings.TrimSpace(reply)
		return out, perr.JSONErrf("no json object in analysis reply")
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(obj), &m); err != nil {
		out.ProfileSummary = strings.TrimSpace(reply)
		return out, perr.Wrap(err, perr.ErrorCodeJSON, "decode analysis reply")
	}
	var w analysisWire
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           &w,
	})
	if err != nil {
		return out, perr.Wrap(err, perr.ErrorCodeUnknown, "build decoder")
	}
	if err := dec.Decode(m); err != nil {
		out.ProfileSummary = strings.TrimSpace(reply)
		return out, perr.Wrap(err, perr.ErrorCodeJSON, "decode analysis fields")
	}

	out.ProfileSummary = strings.TrimSpace(w.ProfileSummary)
	out.DomainExpertise = skills(w.DomainExpertise, dom.MaxDomainSkills)
	out.TechnicalExpertise = skills(w.TechnicalExpertise, dom.MaxTechnicalSkills)
	for _, p := range w.BehavioralPatterns {
		if len(out.BehavioralPatterns) == dom.MaxPatterns {
			break
		}
		if p.Name = strings.TrimSpace(p.Name); p.Name != "" {
			out.BehavioralPatterns = append(out.BehavioralPatterns, p)
		}
	}
	return out, nil
}

func skills(in []skillWire, limit int) []dom.Skill {
	out := make([]dom.Skill, 0, min(len(in), limit))
	for _, w := range in {
		if len(out) == limit {
			break
		}
		name := strings.TrimSpace(w.Name)
		if name == "" {
			continue
		}
		repos := w.Repositories
		if repos == nil {
			repos = []string{}
		}
		out = append(out, dom.Skill{
			Name:         name,
			Level:        ParseLevel(w.Level),
			YearsActive:  w.YearsActive,
			Evidence:     strings.TrimSpace(w.Evidence),
			Repositories: repos,
		})
	}
	return out
}

// ParseLevel reads a level case insensitively; anything else is Intermediate
func ParseLevel(s string) dom.Level {
	for _, l := range []dom.Level{dom.LevelExpert, dom.LevelAdvanced, dom.LevelIntermediate, dom.LevelBeginner} {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l
		}
	}
	return dom.LevelIntermediate
}

// Brief renders a candidate as plain text for the model, headline first
func Brief(c scoring.ScoredCandidate, jobText string) string {
	p := c.Profile
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s), score %.2f: %s\n", p.Login, p.Name, c.Score, c.MatchReason)
	if p.Bio != "" {
		fmt.Fprintf(&b, "Bio: %s\n", p.Bio)
	}
	if p.Location != "" || p.Company != "" {
		fmt.Fprintf(&b, "Location: %s, company: %s\n", p.Location, p.Company)
	}
	fmt.Fprintf(&b, "Followers %d, commits %d, pull requests %d, reviews %d\n",
		p.Followers, p.TotalCommits, p.TotalPRs, p.TotalReviews)

	repos := p.Repositories[:min(briefRepos, len(p.Repositories))]
	langs, topics := map[string]int{}, map[string]int{}
	for _, r := range repos {
		for _, l := range r.Languages {
			langs[l]++
		}
		for _, t := range r.Topics {
			topics[t]++
		}
	}
	if len(langs) > 0 {
		fmt.Fprintf(&b, "Languages: %s\n", tally(langs))
	}
	if len(topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", tally(topics))
	}
	for _, r := range repos {
		fmt.Fprintf(&b, "- %s, %d stars, %s: %s\n", r.FullName, r.Stars, strings.Join(r.Languages, "/"), r.Description)
	}
	if jobText != "" {
		fmt.Fprintf(&b, "\nJob description:\n%s\n", jobText)
	}
	return b.String()
}

// tally renders counts as "Go (3), Rust (1)", most used first
func tally(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s (%d)", n, counts[n])
	}
	return strings.Join(parts, ", ")
}
