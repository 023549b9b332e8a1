package service

import (
	"context"
	"testing"
	"time"

	"github.com/predator4hack/gitscout/internal/adapters/llm"
	"github.com/predator4hack/gitscout/internal/core/filtering"
	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/core/scoring"
	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	"github.com/predator4hack/gitscout/internal/platform/testkit"
	discovery "github.com/predator4hack/gitscout/internal/services/discovery/domain"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"
)

const jobText = "Senior Go engineer building Kubernetes operators in Berlin"

type harness struct {
	svc   *Service
	clk   *clock
	pipe  *pipeline
	users *users
	runs  *runs
	repo  *memRepo
}

func newHarness(t *testing.T, withDB bool) *harness {
	t.Helper()
	nop := logger.Nop()
	h := &harness{
		clk:   &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		pipe:  &pipeline{},
		users: &users{byQuery: map[string][]discovery.CandidateProfile{}},
		runs:  &runs{},
	}
	d := Deps{
		Providers: llm.NewRegistry(llm.Config{}),
		Pipeline:  h.pipe,
		Users:     h.users,
		Runs:      h.runs,
		Now:       h.clk.Now,
		NewID:     ids(0),
	}
	if withDB {
		h.repo = newMemRepo()
		d.DB, d.Repo = tx{}, h.repo.binder()
	}
	h.svc = New(d, Config{PageSize: 5, Log: &nop})
	return h
}

func (h *harness) seed(n int) {
	now := h.clk.Now()
	h.pipe.profiles = nil
	for i := range n {
		loc := "Berlin, Germany"
		if i%2 == 1 {
			loc = "Lisbon"
		}
		h.pipe.profiles = append(h.pipe.profiles, profile(string(rune('a'+i))+"dev", loc, 10+i*7, now))
	}
}

func TestSearchHappyPath(t *testing.T) {
	h := newHarness(t, false)
	h.seed(12)

	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: "  " + jobText + "  "})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.SessionID == "" || page.Page != 1 || page.PageSize != 5 {
		t.Fatalf("page header = %+v", page)
	}
	if page.TotalFound != 12 || page.TotalPages != 3 || !page.HasMore || len(page.Candidates) != 5 {
		t.Fatalf("paging = found %d pages %d more %v len %d", page.TotalFound, page.TotalPages, page.HasMore, len(page.Candidates))
	}
	if page.Spec == nil || len(page.Spec.Languages) == 0 || page.Spec.Languages[0] != "Go" {
		t.Fatalf("spec = %+v", page.Spec)
	}
	if len(page.Queries) == 0 || len(page.Queries) != len(h.pipe.queries) {
		t.Fatalf("queries = %v, pipeline got %v", page.Queries, h.pipe.queries)
	}
	for i := 1; i < len(page.Candidates); i++ {
		if page.Candidates[i-1].Score < page.Candidates[i].Score {
			t.Fatalf("not ranked: %v before %v", page.Candidates[i-1].Score, page.Candidates[i].Score)
		}
	}

	if len(h.runs.got) != 1 {
		t.Fatalf("runs recorded = %d", len(h.runs.got))
	}
	r := h.runs.got[0]
	if r.ID != page.SessionID || r.Provider != "mock" || r.Stage != "model" || r.Fallback {
		t.Fatalf("run = %+v", r)
	}
	if r.Profiles != 12 || r.Candidates != 12 || r.Repos != 2 || r.Queries != len(h.pipe.queries) {
		t.Fatalf("run counts = %+v", r)
	}

	last, err := h.svc.Page(context.Background(), page.SessionID, 3, 0)
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(last.Candidates) != 2 || last.HasMore || last.Spec != nil || last.Queries != nil {
		t.Fatalf("last page = %+v", last)
	}
	beyond, err := h.svc.Page(context.Background(), page.SessionID, 9, 0)
	if err != nil || len(beyond.Candidates) != 0 || beyond.HasMore {
		t.Fatalf("beyond = %+v, %v", beyond, err)
	}
}

func TestSearchFiltersAtSearchTime(t *testing.T) {
	h := newHarness(t, false)
	h.seed(6)
	page, err := h.svc.Search(context.Background(), dom.SearchInput{
		JobText: jobText,
		Filters: &filtering.Filters{Location: "berlin"},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalFound != 3 {
		t.Fatalf("found = %d, want 3", page.TotalFound)
	}
	for _, c := range page.Candidates {
		testkit.MustContain(t, c.Profile.Location, "Berlin")
	}
	if h.runs.got[0].Profiles != 6 || h.runs.got[0].Candidates != 3 {
		t.Fatalf("run = %+v", h.runs.got[0])
	}
}

func TestSearchInputErrors(t *testing.T) {
	h := newHarness(t, false)
	cases := []struct {
		name  string
		in    dom.SearchInput
		field string
	}{
		{"blank", dom.SearchInput{JobText: " \n\t"}, "job_text"},
		{"provider", dom.SearchInput{JobText: jobText, Provider: "openai"}, "provider"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.svc.Search(context.Background(), tc.in)
			e, ok := perr.As(err)
			if !ok || e.Code() != perr.ErrorCodeInvalidArgument || e.Field() != tc.field {
				t.Fatalf("err = %v", err)
			}
		})
	}
	if len(h.runs.got) != 0 {
		t.Fatalf("rejected input recorded runs: %+v", h.runs.got)
	}
}

func TestSearchPipelineError(t *testing.T) {
	h := newHarness(t, false)
	h.pipe.err = perr.Unavailablef("github down")
	_, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if len(h.runs.got) != 1 || h.runs.got[0].Error == "" {
		t.Fatalf("failed run not recorded: %+v", h.runs.got)
	}
}

func TestSearchSurvivesRunRecordFailure(t *testing.T) {
	h := newHarness(t, false)
	h.seed(3)
	h.runs.err = perr.New(perr.ErrorCodeDB, "clickhouse gone")
	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalFound != 3 || len(h.runs.got) != 1 {
		t.Fatalf("found %d, runs %d", page.TotalFound, len(h.runs.got))
	}
}

func TestSearchFallbackModelQuery(t *testing.T) {
	h := newHarness(t, false)
	want, _ := llm.NewMock().GenerateSearchQuery(context.Background(), jobText)
	p := profile("solo", "Berlin", 40, h.clk.Now())
	h.users.byQuery[want] = []discovery.CandidateProfile{p}

	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalFound != 1 || page.Candidates[0].Profile.Login != "solo" {
		t.Fatalf("page = %+v", page)
	}
	if page.Candidates[0].Profile.ContribSeed != 0 {
		t.Fatalf("fallback profiles keep no contribution seed")
	}
	if len(h.users.asked) != 1 || h.users.asked[0] != want {
		t.Fatalf("asked = %v", h.users.asked)
	}
	if !h.runs.got[0].Fallback {
		t.Fatalf("run not flagged as fallback")
	}
}

func TestSearchFallbackSpecQuery(t *testing.T) {
	h := newHarness(t, false)
	h.users.byQuery["language:go followers:>="] = []discovery.CandidateProfile{profile("b", "", 3, h.clk.Now())}

	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalFound != 1 || len(h.users.asked) != 2 {
		t.Fatalf("found %d asked %v", page.TotalFound, h.users.asked)
	}
}

func TestSearchFallbackEmpty(t *testing.T) {
	h := newHarness(t, false)
	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalFound != 0 || page.Candidates == nil || page.HasMore {
		t.Fatalf("page = %+v", page)
	}
}

func TestUserQuery(t *testing.T) {
	cases := []struct {
		name string
		spec jobspec.Spec
		want string
	}{
		{"none", jobspec.Spec{}, ""},
		{"lang", jobspec.Spec{Languages: []string{"Rust", "Go"}, MinFollowers: 5}, "language:rust followers:>=5 repos:>2"},
		{"location", jobspec.Spec{Languages: []string{"Go"}, LocationHint: "New York"}, `language:go followers:>=0 repos:>2 location:"New York"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UserQuery(tc.spec); got != tc.want {
				t.Fatalf("UserQuery = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPageErrors(t *testing.T) {
	h := newHarness(t, false)
	h.seed(3)
	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	_, err = h.svc.Page(context.Background(), "not-a-uuid", 1, 0)
	if e, ok := perr.As(err); !ok || e.Code() != perr.ErrorCodeInvalidArgument || e.Field() != "session_id" {
		t.Fatalf("bad id err = %v", err)
	}
	_, err = h.svc.Page(context.Background(), page.SessionID, 0, 0)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("page 0 err = %v", err)
	}
	_, err = h.svc.Page(context.Background(), "00000000-0000-4000-8000-999999999999", 1, 0)
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("unknown err = %v", err)
	}

	h.clk.Add(29 * time.Minute)
	if _, err := h.svc.Page(context.Background(), page.SessionID, 1, 0); err != nil {
		t.Fatalf("live session: %v", err)
	}
	h.clk.Add(29 * time.Minute)
	if _, err := h.svc.Page(context.Background(), page.SessionID, 1, 0); err != nil {
		t.Fatalf("reads extend the ttl: %v", err)
	}
	h.clk.Add(31 * time.Minute)
	_, err = h.svc.Page(context.Background(), page.SessionID, 1, 0)
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expired err = %v", err)
	}
	testkit.MustContain(t, err.Error(), "expired")
}

func TestPageSizeClamp(t *testing.T) {
	h := newHarness(t, false)
	h.seed(3)
	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText, PageSize: 500})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.PageSize != dom.MaxPageSize || page.TotalPages != 1 {
		t.Fatalf("page = %+v", page)
	}
}

func TestRefilter(t *testing.T) {
	h := newHarness(t, false)
	h.seed(8)
	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	lo := 38
	narrowed, err := h.svc.Refilter(context.Background(), page.SessionID, &filtering.Filters{FollowersMin: &lo}, 0)
	if err != nil {
		t.Fatalf("refilter: %v", err)
	}
	for _, c := range narrowed.Candidates {
		if c.Profile.Followers < lo {
			t.Fatalf("%s has %d followers", c.Profile.Login, c.Profile.Followers)
		}
	}
	if narrowed.TotalFound != 4 || narrowed.Spec == nil {
		t.Fatalf("narrowed = %+v", narrowed)
	}

	again, err := h.svc.Page(context.Background(), page.SessionID, 1, 50)
	if err != nil || again.TotalFound != 4 {
		t.Fatalf("paging keeps filters: %+v %v", again, err)
	}

	reset, err := h.svc.Refilter(context.Background(), page.SessionID, &filtering.Filters{}, 0)
	if err != nil || reset.TotalFound != 8 {
		t.Fatalf("reset = %+v %v", reset, err)
	}
}

func TestAnalyze(t *testing.T) {
	h := newHarness(t, false)
	h.seed(2)
	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	got, err := h.svc.Analyze(context.Background(), page.SessionID, "ADEV", "")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.Login != "adev" || got.Provider != "mock" || !got.GeneratedAt.Equal(h.clk.Now()) {
		t.Fatalf("identity = %+v", got)
	}
	testkit.MustContain(t, got.ProfileSummary, "Candidate overview: adev")
	if len(got.TechnicalExpertise) != 1 || got.TechnicalExpertise[0].Name != "Go" || got.TechnicalExpertise[0].Level != dom.LevelIntermediate {
		t.Fatalf("technologies = %+v", got.TechnicalExpertise)
	}
	testkit.MustEqualStrings(t, "evidence", got.TechnicalExpertise[0].Repositories, []string{"adev/tool"})
	if len(got.DomainExpertise) != 1 || got.DomainExpertise[0].Name != "kubernetes" {
		t.Fatalf("domains = %+v", got.DomainExpertise)
	}

	_, err = h.svc.Analyze(context.Background(), page.SessionID, "ghost", "")
	if e, ok := perr.As(err); !ok || e.Code() != perr.ErrorCodeNotFound || e.Field() != "login" {
		t.Fatalf("ghost err = %v", err)
	}
	_, err = h.svc.Analyze(context.Background(), page.SessionID, "adev", "nope")
	if e, ok := perr.As(err); !ok || e.Field() != "provider" {
		t.Fatalf("provider err = %v", err)
	}
}

func TestAnalyzeCachedPerSessionAndLogin(t *testing.T) {
	h := newHarness(t, false)
	h.seed(2)
	ctx := context.Background()
	page, err := h.svc.Search(ctx, dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	m := &countingMock{Mock: llm.NewMock()}
	h.svc.d.Providers = fixedProviders{p: m}

	first, err := h.svc.Analyze(ctx, page.SessionID, "adev", "")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	h.clk.Add(time.Minute)
	again, err := h.svc.Analyze(ctx, page.SessionID, "ADEV", "")
	if err != nil {
		t.Fatalf("analyze again: %v", err)
	}
	if m.analyses != 1 || !again.GeneratedAt.Equal(first.GeneratedAt) {
		t.Fatalf("calls = %d, generated %v then %v", m.analyses, first.GeneratedAt, again.GeneratedAt)
	}
	if _, err := h.svc.Analyze(ctx, page.SessionID, "bdev", ""); err != nil || m.analyses != 2 {
		t.Fatalf("other login: calls %d, %v", m.analyses, err)
	}
	if _, err := h.svc.Analyze(ctx, page.SessionID, "adev", "gemini"); err != nil || m.analyses != 3 {
		t.Fatalf("other provider: calls %d, %v", m.analyses, err)
	}

	h.clk.Add(31 * time.Minute)
	if _, err := h.svc.Analyze(ctx, page.SessionID, "adev", ""); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expired session err = %v", err)
	}
}

func TestAnalyzeKeepsProseReply(t *testing.T) {
	h := newHarness(t, false)
	h.seed(1)
	page, err := h.svc.Search(context.Background(), dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	h.svc.d.Providers = fixedProviders{p: &countingMock{Mock: llm.NewMock(), reply: "  A steady Go contributor.  "}}
	got, err := h.svc.Analyze(context.Background(), page.SessionID, "adev", "")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.ProfileSummary != "A steady Go contributor." || len(got.TechnicalExpertise) != 0 || got.TechnicalExpertise == nil {
		t.Fatalf("analysis = %+v", got)
	}
}

func TestParseAnalysis(t *testing.T) {
	reply := "```json\n" + `{
  "profile_summary": " Builds Kubernetes operators. ",
  "domain_expertise": [
    {"name": "Cloud Native", "level": "expert", "evidence": "operators", "repositories": ["a/op"]},
    {"name": "", "level": "Expert"},
    {"name": "Databases", "level": "guru"},
    {"name": "d3", "level": "Beginner"},
    {"name": "d4", "level": "Beginner"},
    {"name": "d5", "level": "Beginner"}
  ],
  "technical_expertise": [
    {"name": "Go", "level": "ADVANCED", "years_active": "4", "evidence": null, "repositories": "a/op, a/cli"}
  ],
  "behavioral_patterns": [{"name": "Code Reviewer", "description": "reviews a lot", "evidence": "120 reviews"}]
}` + "\n```"

	got, err := ParseAnalysis(reply)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.ProfileSummary != "Builds Kubernetes operators." {
		t.Fatalf("summary %q", got.ProfileSummary)
	}
	if len(got.DomainExpertise) != dom.MaxDomainSkills {
		t.Fatalf("domains = %+v", got.DomainExpertise)
	}
	if got.DomainExpertise[0].Level != dom.LevelExpert || got.DomainExpertise[1].Name != "Databases" || got.DomainExpertise[1].Level != dom.LevelIntermediate {
		t.Fatalf("domain levels = %+v", got.DomainExpertise)
	}
	if got.DomainExpertise[1].Repositories == nil {
		t.Fatalf("missing repositories should read as empty")
	}
	tech := got.TechnicalExpertise[0]
	if tech.Level != dom.LevelAdvanced || tech.YearsActive == nil || *tech.YearsActive != 4 || len(tech.Repositories) != 2 {
		t.Fatalf("tech = %+v", tech)
	}
	if len(got.BehavioralPatterns) != 1 || got.BehavioralPatterns[0].Evidence != "120 reviews" {
		t.Fatalf("patterns = %+v", got.BehavioralPatterns)
	}

	prose, err := ParseAnalysis("no structure here")
	if !perr.IsCode(err, perr.ErrorCodeJSON) || prose.ProfileSummary != "no structure here" {
		t.Fatalf("prose = %+v, %v", prose, err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]dom.Level{
		"Expert": dom.LevelExpert, " advanced ": dom.LevelAdvanced, "BEGINNER": dom.LevelBeginner,
		"": dom.LevelIntermediate, "ninja": dom.LevelIntermediate,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBriefTallies(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := profile("octo", "Berlin", 40, now)
	p.Repositories = append(p.Repositories,
		discovery.RepoSummary{FullName: "octo/b", Languages: []string{"Rust", "Go"}, Topics: []string{"cli"}},
		discovery.RepoSummary{FullName: "octo/c", Languages: []string{"Rust"}},
	)
	b := Brief(scoring.ScoredCandidate{Profile: p, Score: 0.5, MatchReason: "go"}, "")
	testkit.MustContain(t, b, "Languages: Go (2), Rust (2)\n")
	testkit.MustContain(t, b, "Topics: cli (1), kubernetes (1)\n")
	testkit.MustContain(t, b, "- octo/b, 0 stars, Rust/Go: \n")
}

func TestSavedSearchesNeedPostgres(t *testing.T) {
	h := newHarness(t, false)
	_, err := h.svc.List(context.Background(), "ana")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestSavedSearchLifecycle(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	h.seed(4)
	page, err := h.svc.Search(ctx, dom.SearchInput{JobText: jobText})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if _, err := h.svc.Save(ctx, " ", dom.SaveInput{SessionID: page.SessionID}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("blank owner err = %v", err)
	}

	saved, err := h.svc.Save(ctx, "ana", dom.SaveInput{SessionID: page.SessionID})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Title != jobText || saved.JobText != jobText || saved.Spec == nil || len(saved.Candidates) != 4 {
		t.Fatalf("saved = %+v", saved)
	}

	list, err := h.svc.List(ctx, "ana")
	if err != nil || len(list) != 1 || list[0].CandidateCount != 4 {
		t.Fatalf("list = %+v %v", list, err)
	}
	if other, _ := h.svc.List(ctx, "bo"); len(other) != 0 {
		t.Fatalf("owners leak: %+v", other)
	}

	stars, err := h.svc.ToggleStar(ctx, "ana", saved.ID, "bdev")
	if err != nil {
		t.Fatalf("star: %v", err)
	}
	testkit.MustEqualStrings(t, "stars", stars, []string{"bdev"})
	stars, err = h.svc.ToggleStar(ctx, "ana", saved.ID, "bdev")
	if err != nil || len(stars) != 0 {
		t.Fatalf("unstar = %v %v", stars, err)
	}
	_, err = h.svc.ToggleStar(ctx, "ana", saved.ID, "stranger")
	if e, ok := perr.As(err); !ok || e.Code() != perr.ErrorCodeNotFound || e.Field() != "login" {
		t.Fatalf("stranger err = %v", err)
	}

	if _, err := h.svc.Get(ctx, "bo", saved.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("cross owner get err = %v", err)
	}
	if _, err := h.svc.Get(ctx, "ana", "x"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("bad id err = %v", err)
	}
	if err := h.svc.Delete(ctx, "ana", saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := h.svc.Get(ctx, "ana", saved.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("deleted get err = %v", err)
	}
}

func TestSaveExplicitCandidates(t *testing.T) {
	h := newHarness(t, true)
	long := ""
	for range 30 {
		long += "platform "
	}
	saved, err := h.svc.Save(context.Background(), "ana", dom.SaveInput{JobText: long})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n := len([]rune(saved.Title)); n > 60 {
		t.Fatalf("title has %d runes", n)
	}
	if saved.Candidates == nil || saved.Spec != nil {
		t.Fatalf("saved = %+v", saved)
	}
	if _, err := h.svc.Save(context.Background(), "ana", dom.SaveInput{}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("empty save err = %v", err)
	}
}
