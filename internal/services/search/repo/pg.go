// Package repo stores saved searches in postgres and search runs in clickhouse
package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/modkit/repokit"
	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/store"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"
)

// Schema creates the saved search tables
const Schema = `
create table if not exists job_searches (
	id          uuid primary key,
	owner       text not null,
	title       text not null,
	job_text    text not null default '',
	spec        jsonb,
	candidates  jsonb not null default '[]'::jsonb,
	created_at  timestamptz not null,
	updated_at  timestamptz not null
);
create index if not exists job_searches_owner_created_idx on job_searches (owner, created_at desc);

create table if not exists job_search_stars (
	search_id   uuid not null references job_searches (id) on delete cascade,
	login       text not null,
	starred_at  timestamptz not null default now(),
	primary key (search_id, login)
);
`

// Migrate applies Schema; every statement is idempotent
func Migrate(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, Schema)
	return dbErr(err, "migrate job_searches")
}

// dbErr keeps coded errors and maps driver errors
func dbErr(err error, format string, a ...any) error {
	if _, ok := perr.As(err); ok {
		return err
	}
	return perr.FromPostgresf(err, format, a...)
}

type (
	// PG binds the postgres repo
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[dom.Repo] { return PG{} }

// Bind satisfies repokit.Binder
func (PG) Bind(q repokit.Queryer) dom.Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, s dom.SavedSearch) error {
	cands, err := json.Marshal(s.Candidates)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode candidates")
	}
	var spec []byte
	if s.Spec != nil {
		if spec, err = json.Marshal(s.Spec); err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "encode spec")
		}
	}
	const sql = `
insert into job_searches (id, owner, title, job_text, spec, candidates, created_at, updated_at)
values ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8)
`
	_, err = r.q.Exec(ctx, sql, s.ID, s.Owner, s.Title, s.JobText, spec, cands, s.CreatedAt, s.UpdatedAt)
	return dbErr(err, "insert job search")
}

func (r *queries) List(ctx context.Context, owner string) ([]dom.SavedSummary, error) {
	const sql = `
select s.id::text, s.title, jsonb_array_length(s.candidates),
	(select count(*) from job_search_stars st where st.search_id = s.id),
	s.created_at, s.updated_at
from job_searches s
where s.owner = $1
order by s.created_at desc, s.id
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (dom.SavedSummary, error) {
		var s dom.SavedSummary
		err := row.Scan(&s.ID, &s.Title, &s.CandidateCount, &s.StarredCount, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	}, sql, owner)
	return out, dbErr(err, "list job searches")
}

func (r *queries) Get(ctx context.Context, owner, id string) (dom.SavedSearch, error) {
	const sql = `
select s.id::text, s.owner, s.title, s.job_text, s.spec, s.candidates, s.created_at, s.updated_at,
	coalesce((select array_agg(st.login order by st.starred_at, st.login)
		from job_search_stars st where st.search_id = s.id), '{}')
from job_searches s
where s.id = $1 and s.owner = $2
`
	out, err := store.One(ctx, r.q, scanSaved, sql, id, owner)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return dom.SavedSearch{}, perr.NotFoundf("saved search %s not found", id)
	}
	return out, dbErr(err, "get job search %s", id)
}

func scanSaved(row store.Row) (dom.SavedSearch, error) {
	var (
		s           dom.SavedSearch
		spec, cands []byte
	)
	if err := row.Scan(&s.ID, &s.Owner, &s.Title, &s.JobText, &spec, &cands, &s.CreatedAt, &s.UpdatedAt, &s.Starred); err != nil {
		return s, err
	}
	if len(spec) > 0 && string(spec) != "null" {
		s.Spec = new(jobspec.Spec)
		if err := json.Unmarshal(spec, s.Spec); err != nil {
			return s, perr.Wrap(err, perr.ErrorCodeJSON, "decode spec")
		}
	}
	if err := json.Unmarshal(cands, &s.Candidates); err != nil {
		return s, perr.Wrap(err, perr.ErrorCodeJSON, "decode candidates")
	}
	if s.Starred == nil {
		s.Starred = []string{}
	}
	return s, nil
}

func (r *queries) Delete(ctx context.Context, owner, id string) error {
	err := store.ExecOne(ctx, r.q, `delete from job_searches where id = $1 and owner = $2`, id, owner)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("saved search %s not found", id)
	}
	return dbErr(err, "delete job search %s", id)
}

func (r *queries) ToggleStar(ctx context.Context, owner, id, login string) ([]string, error) {
	err := store.ExecOne(ctx, r.q,
		`update job_searches set updated_at = $3 where id = $1 and owner = $2`, id, owner, time.Now().UTC())
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return nil, perr.NotFoundf("saved search %s not found", id)
	}
	if err != nil {
		return nil, dbErr(err, "touch job search")
	}

	tag, err := r.q.Exec(ctx, `delete from job_search_stars where search_id = $1 and login = $2`, id, login)
	if err != nil {
		return nil, dbErr(err, "unstar %s", login)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.q.Exec(ctx, `insert into job_search_stars (search_id, login) values ($1, $2)`, id, login); err != nil {
			return nil, dbErr(err, "star %s", login)
		}
	}

	const sql = `select login from job_search_stars where search_id = $1 order by starred_at, login`
	out, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var l string
		err := row.Scan(&l)
		return l, err
	}, sql, id)
	return out, dbErr(err, "list stars")
}
