package domain

import (
	"context"

	"github.com/predator4hack/gitscout/internal/core/filtering"
)

// Repo persists saved searches for one owner
type Repo interface {
	Insert(ctx context.Context, s SavedSearch) error
	List(ctx context.Context, owner string) ([]SavedSummary, error)
	Get(ctx context.Context, owner, id string) (SavedSearch, error)
	Delete(ctx context.Context, owner, id string) error
	// ToggleStar flips login on the search and returns the starred set
	ToggleStar(ctx context.Context, owner, id, login string) ([]string, error)
}

// RunRecorder stores analytics rows; failures are the caller's to ignore
type RunRecorder interface {
	Record(ctx context.Context, r Run) error
}

// SessionStore holds search sessions between page requests
type SessionStore interface {
	Put(s Session)
	Get(id string) (Session, bool)
	Replace(s Session) bool
}

// AnalysisStore keeps candidate analyses for as long as their session lives
type AnalysisStore interface {
	PutAnalysis(key string, a Analysis)
	GetAnalysis(key string) (Analysis, bool)
}

// ServicePort is the search application surface used by HTTP and the CLI
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (Page, error)
	Page(ctx context.Context, sessionID string, page, pageSize int) (Page, error)
	Refilter(ctx context.Context, sessionID string, f *filtering.Filters, pageSize int) (Page, error)
	Analyze(ctx context.Context, sessionID, login, provider string) (Analysis, error)
	Save(ctx context.Context, owner string, in SaveInput) (SavedSearch, error)
	List(ctx context.Context, owner string) ([]SavedSummary, error)
	Get(ctx context.Context, owner, id string) (SavedSearch, error)
	Delete(ctx context.Context, owner, id string) error
	ToggleStar(ctx context.Context, owner, id, login string) ([]string, error)
}
