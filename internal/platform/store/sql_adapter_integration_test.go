//go:build integration_pg

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/testkit/pgtc"
)

func TestPGAdapterIntegration(t *testing.T) {
	dsn := pgtc.Start(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := Open(ctx, Config{PG: PGConfig{Enabled: true, URL: dsn, MaxConns: 2}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if err := s.Guard(ctx); err != nil {
		t.Fatalf("guard: %v", err)
	}
	if _, err := s.PG.Exec(ctx, `create table t (id int primary key, name text not null)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	// rolled back on error
	boom := errors.New("boom")
	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `insert into t values (1, 'a')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("tx err = %v", err)
	}
	n, err := Scalar[int64](ctx, s.PG, `select count(*) from t`)
	if err != nil || n != 0 {
		t.Fatalf("count after rollback = %d %v", n, err)
	}

	// committed
	if err := s.PG.Tx(ctx, func(q RowQuerier) error {
		return ExecOne(ctx, q, `insert into t values (2, 'b')`)
	}); err != nil {
		t.Fatalf("tx commit: %v", err)
	}
	name, err := One(ctx, s.PG, func(r Row) (string, error) {
		var v string
		err := r.Scan(&v)
		return v, err
	}, `select name from t where id = $1`, 2)
	if err != nil || name != "b" {
		t.Fatalf("one = %q %v", name, err)
	}

	if err := ExecOne(ctx, s.PG, `update t set name = 'z' where id = 99`); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing update = %v", err)
	}

	_, err = s.PG.Exec(ctx, `insert into t values (2, 'dup')`)
	if code, ok := perr.DBErrorCode(err); !ok || code != perr.ErrorCodeConflict {
		t.Fatalf("duplicate code = %v %v", code, ok)
	}
}
