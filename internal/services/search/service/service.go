// Package service is the search application layer: extraction, discovery, ranking,
// filtering, session paging and saved searches
package service

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/predator4hack/gitscout/internal/adapters/llm"
	"github.com/predator4hack/gitscout/internal/core/filtering"
	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/core/querybuild"
	"github.com/predator4hack/gitscout/internal/core/scoring"
	"github.com/predator4hack/gitscout/internal/modkit/repokit"
	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	discovery "github.com/predator4hack/gitscout/internal/services/discovery/domain"
	extract "github.com/predator4hack/gitscout/internal/services/extract/service"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"

	"github.com/google/uuid"
)

// Providers hands out text generation backends by kind
type Providers interface {
	Get(ctx context.Context, kind llm.Kind) (llm.Provider, error)
	Default() llm.Kind
}

// Config for the search service; zero values take defaults
type Config struct {
	MaxRepos            int
	ContributorsPerRepo int
	FallbackUsers       int
	PageSize            int
	Log                 *logger.Logger
}

// Deps are the collaborators of the service
// DB and Repo may be nil, which disables saved searches; Runs may be nil
// Analyses defaults to Sessions when that is a *Cache
type Deps struct {
	Providers Providers
	Pipeline  discovery.PipelinePort
	Users     discovery.UserSearchPort
	Sessions  dom.SessionStore
	Analyses  dom.AnalysisStore
	DB        repokit.TxRunner
	Repo      repokit.Binder[dom.Repo]
	Runs      dom.RunRecorder
	Now       func() time.Time
	NewID     func() string
}

// Service implements domain.ServicePort
type Service struct {
	d   Deps
	cfg Config
	log logger.Logger
}

var _ dom.ServicePort = (*Service)(nil)

// New constructs the Service
func New(d Deps, cfg Config) *Service {
	if cfg.MaxRepos <= 0 {
		cfg.MaxRepos = 10
	}
	if cfg.ContributorsPerRepo <= 0 {
		cfg.ContributorsPerRepo = 10
	}
	if cfg.FallbackUsers <= 0 {
		cfg.FallbackUsers = 20
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = dom.DefaultPageSize
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Sessions == nil {
		d.Sessions = NewCache(0, d.Now)
	}
	if d.Analyses == nil {
		if c, ok := d.Sessions.(*Cache); ok {
			d.Analyses = c
		} else {
			d.Analyses = NewCache(0, d.Now)
		}
	}
	s := &Service{d: d, cfg: cfg}
	if cfg.Log != nil {
		s.log = *cfg.Log
	} else {
		s.log = *logger.Named("search")
	}
	return s
}

// Search runs the whole pipeline for one job description and opens a session on the result
func (s *Service) Search(ctx context.Context, in dom.SearchInput) (dom.Page, error) {
	text := strings.TrimSpace(in.JobText)
	if text == "" {
		return dom.Page{}, perr.WithField(perr.InvalidArgf("job text is required"), "job_text")
	}
	kind := s.d.Providers.Default()
	if in.Provider != "" {
		k, err := llm.ParseKind(in.Provider)
		if err != nil {
			return dom.Page{}, perr.WithField(err, "provider")
		}
		kind = k
	}
	provider, err := s.d.Providers.Get(ctx, kind)
	if err != nil {
		return dom.Page{}, perr.WithOp(err, "provider")
	}

	id := s.d.NewID()
	ctx = logger.WithSearch(ctx, id)
	log := logger.Scoped(ctx, s.log)
	start := s.d.Now()
	run := dom.Run{ID: id, StartedAt: start.UTC(), Provider: string(kind)}
	var stats discovery.RunStats
	defer func() {
		run.Queries, run.Repos, run.Contributors = stats.Queries, stats.Repos, stats.Contributors
		run.Elapsed = s.d.Now().Sub(start)
		s.record(ctx, run)
	}()

	ex := extract.New(provider, extract.Config{Log: &log}).ExtractResult(ctx, text)
	run.Stage = string(ex.Stage)
	spec := ex.Spec
	queries := querybuild.Build(spec, start)
	log.Info().Str("stage", run.Stage).Strs("queries", queries).Msg("spec extracted")

	profiles, _, err := s.d.Pipeline.Run(discovery.WithStats(ctx, &stats), spec, queries, s.cfg.MaxRepos, s.cfg.ContributorsPerRepo)
	if err != nil {
		run.Error = err.Error()
		return dom.Page{}, err
	}
	if len(profiles) == 0 {
		profiles = s.fallback(ctx, provider, spec, text)
		run.Fallback = true
	}
	run.Profiles = len(profiles)

	ranked := scoring.Rank(profiles, start)
	candidates, steps := filtering.Apply(ranked, in.Filters, start)
	logSteps(log, steps)
	run.Candidates = len(candidates)

	sess := dom.Session{
		ID:         id,
		JobText:    text,
		Spec:       spec,
		Queries:    queries,
		Ranked:     ranked,
		Candidates: candidates,
		Filters:    in.Filters,
		Fallback:   run.Fallback,
		CreatedAt:  start.UTC(),
	}
	s.d.Sessions.Put(sess)
	log.Info().
		Int("profiles", len(profiles)).
		Int("candidates", len(candidates)).
		Dur("elapsed", s.d.Now().Sub(start)).
		Msg("search done")
	return paginate(sess, 1, s.pageSize(in.PageSize)), nil
}

// fallback searches users directly when repository discovery found nobody
// the model's query is tried first, then one built from the spec
func (s *Service) fallback(ctx context.Context, p llm.Provider, spec jobspec.Spec, text string) []discovery.CandidateProfile {
	if s.d.Users == nil {
		return []discovery.CandidateProfile{}
	}
	log := logger.Scoped(ctx, s.log)
	var queries []string
	if q, err := p.GenerateSearchQuery(ctx, text); err == nil && strings.TrimSpace(q) != "" {
		queries = append(queries, strings.TrimSpace(q))
	} else if err != nil {
		log.Warn().Err(err).Msg("model user query failed")
	}
	if q := UserQuery(spec); q != "" && !slices.Contains(queries, q) {
		queries = append(queries, q)
	}
	for _, q := range queries {
		found, err := s.d.Users.SearchUsers(ctx, q, s.cfg.FallbackUsers)
		if err != nil {
			log.Warn().Err(err).Str("query", q).Msg("user search fallback failed")
			continue
		}
		if len(found) > 0 {
			log.Info().Str("query", q).Int("profiles", len(found)).Msg("user search fallback used")
			for i := range found {
				found[i].ContribSeed = 0
			}
			return found
		}
	}
	return []discovery.CandidateProfile{}
}

// UserQuery builds the direct user search for spec, empty without languages
func UserQuery(spec jobspec.Spec) string {
	if len(spec.Languages) == 0 {
		return ""
	}
	parts := []string{"language:" + querybuild.Term(strings.ToLower(spec.Languages[0]))}
	parts = append(parts, "followers:>="+strconv.Itoa(spec.MinFollowers), "repos:>2")
	if loc := strings.TrimSpace(spec.LocationHint); loc != "" {
		parts = append(parts, "location:"+querybuild.Term(loc))
	}
	return strings.Join(parts, " ")
}

// Page serves another page of a live session
func (s *Service) Page(_ context.Context, sessionID string, page, pageSize int) (dom.Page, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return dom.Page{}, err
	}
	if page < 1 {
		return dom.Page{}, perr.WithField(perr.InvalidArgf("page must be 1 or greater"), "page")
	}
	return paginate(sess, page, s.pageSize(pageSize)), nil
}

// Refilter reapplies filters to the ranked results of a session and returns page one
// nil filters restore the unfiltered ranking
func (s *Service) Refilter(ctx context.Context, sessionID string, f *filtering.Filters, pageSize int) (dom.Page, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return dom.Page{}, err
	}
	if f.IsZero() {
		f = nil
	}
	var steps []filtering.Step
	sess.Candidates, steps = filtering.Apply(sess.Ranked, f, s.d.Now())
	sess.Filters = f
	logSteps(logger.Scoped(logger.WithSearch(ctx, sess.ID), s.log), steps)
	if !s.d.Sessions.Replace(sess) {
		return dom.Page{}, expired(sessionID)
	}
	return paginate(sess, 1, s.pageSize(pageSize)), nil
}

func (s *Service) session(id string) (dom.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return dom.Session{}, perr.WithField(perr.InvalidArgf("session id is not a uuid"), "session_id")
	}
	sess, ok := s.d.Sessions.Get(id)
	if !ok {
		return dom.Session{}, expired(id)
	}
	return sess, nil
}

func expired(id string) error {
	return perr.NotFoundf("search session %s not found or expired", id)
}

func (s *Service) pageSize(n int) int {
	if n <= 0 {
		return s.cfg.PageSize
	}
	return min(n, dom.MaxPageSize)
}

func (s *Service) record(ctx context.Context, r dom.Run) {
	if s.d.Runs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.d.Runs.Record(ctx, r); err != nil {
		log := logger.Scoped(ctx, s.log)
		log.Warn().Err(err).Msg("run analytics not recorded")
	}
}

func logSteps(log logger.Logger, steps []filtering.Step) {
	for _, st := range steps {
		log.Debug().Str("filter", st.Name).Int("before", st.Before).Int("after", st.After).Msg("filter applied")
	}
}
