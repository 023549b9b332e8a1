package service

import (
	"context"
	"slices"
	"strings"

	"github.com/predator4hack/gitscout/internal/core/scoring"
	"github.com/predator4hack/gitscout/internal/modkit/repokit"
	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	pstrings "github.com/predator4hack/gitscout/internal/platform/strings"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"

	"github.com/google/uuid"
)

const maxTitle = 120

func (s *Service) persistence(owner string) error {
	if s.d.DB == nil || s.d.Repo == nil {
		return perr.Unavailablef("saved searches need postgres, which is not configured")
	}
	if strings.TrimSpace(owner) == "" {
		return perr.WithField(perr.InvalidArgf("owner is required"), "owner")
	}
	return nil
}

// Save persists a session, or the candidates given, for owner
func (s *Service) Save(ctx context.Context, owner string, in dom.SaveInput) (dom.SavedSearch, error) {
	if err := s.persistence(owner); err != nil {
		return dom.SavedSearch{}, err
	}
	now := s.d.Now().UTC()
	out := dom.SavedSearch{
		ID:         s.d.NewID(),
		Owner:      owner,
		JobText:    strings.TrimSpace(in.JobText),
		Candidates: in.Candidates,
		Starred:    []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.SessionID != "" {
		sess, err := s.session(in.SessionID)
		if err != nil {
			return dom.SavedSearch{}, err
		}
		spec := sess.Spec
		out.Spec = &spec
		out.Candidates = sess.Candidates
		out.JobText = pstrings.FirstNonEmpty(out.JobText, sess.JobText)
	}
	if out.Candidates == nil {
		out.Candidates = []scoring.ScoredCandidate{}
	}
	out.Title = strings.TrimSpace(in.Title)
	if out.Title == "" {
		out.Title = pstrings.Truncate(strings.Join(strings.Fields(out.JobText), " "), 60)
	}
	out.Title = pstrings.Truncate(out.Title, maxTitle)
	if out.Title == "" {
		return dom.SavedSearch{}, perr.WithField(perr.InvalidArgf("a title or job text is required"), "title")
	}

	err := repokit.InTx(ctx, s.d.DB, s.d.Repo, func(r dom.Repo) error { return r.Insert(ctx, out) })
	if err != nil {
		return dom.SavedSearch{}, perr.WithOp(err, "save_search")
	}
	s.log.Info().Str("search", out.ID).Str("owner", owner).Int("candidates", len(out.Candidates)).Msg("search saved")
	return out, nil
}

// List returns owner's saved searches, newest first
func (s *Service) List(ctx context.Context, owner string) ([]dom.SavedSummary, error) {
	if err := s.persistence(owner); err != nil {
		return nil, err
	}
	return repokit.ReadTx(ctx, s.d.DB, s.d.Repo, func(r dom.Repo) ([]dom.SavedSummary, error) {
		return r.List(ctx, owner)
	})
}

// Get returns one saved search; another owner's search is NotFound
func (s *Service) Get(ctx context.Context, owner, id string) (dom.SavedSearch, error) {
	if err := s.persistence(owner); err != nil {
		return dom.SavedSearch{}, err
	}
	if err := checkID(id); err != nil {
		return dom.SavedSearch{}, err
	}
	return repokit.ReadTx(ctx, s.d.DB, s.d.Repo, func(r dom.Repo) (dom.SavedSearch, error) {
		return r.Get(ctx, owner, id)
	})
}

// Delete removes a saved search with its stars
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if err := s.persistence(owner); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	return repokit.InTx(ctx, s.d.DB, s.d.Repo, func(r dom.Repo) error { return r.Delete(ctx, owner, id) })
}

// ToggleStar stars or unstars a candidate of a saved search
func (s *Service) ToggleStar(ctx context.Context, owner, id, login string) ([]string, error) {
	if err := s.persistence(owner); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	return repokit.ReadTx(ctx, s.d.DB, s.d.Repo, func(r dom.Repo) ([]string, error) {
		saved, err := r.Get(ctx, owner, id)
		if err != nil {
			return nil, err
		}
		if !slices.ContainsFunc(saved.Candidates, func(c scoring.ScoredCandidate) bool {
			return strings.EqualFold(c.Profile.Login, login)
		}) {
			return nil, perr.WithField(perr.NotFoundf("%s is not a candidate of this search", login), "login")
		}
		return r.ToggleStar(ctx, owner, id, login)
	})
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.WithField(perr.NotFoundf("saved search %q not found", id), "id")
	}
	return nil
}
