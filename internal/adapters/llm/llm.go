// Package llm adapts text generation backends behind one Provider interface
//
// The backend set is closed: New switches over Kind and nothing else constructs providers.
package llm

import (
	"context"
	"strings"

	perr "github.com/predator4hack/gitscout/internal/platform/errors"
)

// Kind names a text generation backend
type Kind string

// Known kinds
const (
	KindGemini Kind = "gemini"
	KindVertex Kind = "vertex"
	KindMock   Kind = "mock"
)

// Kinds lists every supported backend
func Kinds() []Kind { return []Kind{KindGemini, KindVertex, KindMock} }

// ParseKind validates a kind name, case insensitively
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", perr.InvalidArgf("unknown llm provider %q", s)
}

// Provider generates text for the search pipeline
type Provider interface {
	Kind() Kind
	GenerateSearchQuery(ctx context.Context, jobText string) (string, error)
	GenerateStructuredSpec(ctx context.Context, jobText string) (string, error)
	RewriteText(ctx context.Context, jobText string) (string, error)
	GenerateAnalysisText(ctx context.Context, input string) (string, error)
	Close() error
}

// Config selects and configures a backend
type Config struct {
	Kind        Kind
	Model       string
	Temperature float32

	// gemini
	APIKey string

	// vertex
	Project         string
	Location        string
	CredentialsFile string
}

// New builds the provider named by cfg.Kind
func New(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Kind {
	case KindGemini:
		return NewGemini(ctx, cfg)
	case KindVertex:
		return NewVertex(ctx, cfg)
	case KindMock, "":
		return NewMock(), nil
	default:
		return nil, perr.InvalidArgf("unknown llm provider %q", cfg.Kind)
	}
}

// upstream wraps a backend failure
func upstream(err error, kind Kind, op string) error {
	return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUpstream, "%s %s", kind, op), op)
}

// emptyReply is returned when a backend answers with no text
func emptyReply(kind Kind) error {
	return perr.Upstreamf("%s returned an empty response", kind)
}
