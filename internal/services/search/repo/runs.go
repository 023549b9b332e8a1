package repo

import (
	"context"

	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/store"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"

	"github.com/google/uuid"
)

// RunsTable holds one row per search
const RunsTable = "gitscout_runs"

// RunsSchema creates RunsTable; column order is the insert order
const RunsSchema = `
CREATE TABLE IF NOT EXISTS gitscout_runs (
	run_id        UUID,
	started_at    DateTime64(3, 'UTC'),
	provider      LowCardinality(String),
	stage         LowCardinality(String),
	queries       UInt16,
	repos         UInt16,
	contributors  UInt16,
	profiles      UInt16,
	candidates    UInt16,
	elapsed_ms    UInt32,
	fallback_used Bool,
	error         String
)
ENGINE = MergeTree
PARTITION BY toYYYYMM(started_at)
ORDER BY (started_at, run_id)
`

// Runs writes search runs to clickhouse
type Runs struct{ ch store.Clickhouse }

// NewRuns returns a recorder over ch
func NewRuns(ch store.Clickhouse) *Runs { return &Runs{ch: ch} }

// Migrate creates the runs table
func (r *Runs) Migrate(ctx context.Context) error {
	return perr.WrapIf(r.ch.Exec(ctx, RunsSchema), perr.ErrorCodeDB, "migrate "+RunsTable)
}

// Record inserts one run
func (r *Runs) Record(ctx context.Context, run dom.Run) error {
	id, err := uuid.Parse(run.ID)
	if err != nil {
		id = uuid.New()
	}
	return perr.WrapIf(r.ch.Insert(ctx, RunsTable, [][]any{runRow(id, run)}), perr.ErrorCodeDB, "insert run")
}

func runRow(id uuid.UUID, run dom.Run) []any {
	return []any{
		id,
		run.StartedAt.UTC(),
		run.Provider,
		run.Stage,
		u16(run.Queries),
		u16(run.Repos),
		u16(run.Contributors),
		u16(run.Profiles),
		u16(run.Candidates),
		uint32(max(run.Elapsed.Milliseconds(), 0)),
		run.Fallback,
		run.Error,
	}
}

func u16(n int) uint16 { return uint16(min(max(n, 0), 65535)) }
