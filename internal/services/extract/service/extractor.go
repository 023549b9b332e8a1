// Package service turns job text into a usable requirement spec
//
// The model is asked first. A failed, malformed or empty answer triggers one rewrite of
// the text and a second ask, and if that is empty too the local vocabulary fills the gaps.
// Extract never fails.
package service

import (
	"context"
	"strings"

	"github.com/predator4hack/gitscout/internal/adapters/llm"
	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/platform/logger"
)

// Stage names the step that produced a spec
type Stage string

// Stages in fallback order
const (
	StageModel   Stage = "model"
	StageRewrite Stage = "rewrite"
	StageLocal   Stage = "local"
)

// Result is a spec plus how it was obtained
type Result struct {
	Spec      jobspec.Spec
	Stage     Stage
	Rewritten string
}

// Fallback reports whether the first model answer was not used as is
func (r Result) Fallback() bool { return r.Stage != StageModel }

// Config for the extractor
type Config struct {
	Log *logger.Logger
}

// Extractor runs the fallback chain against one provider
type Extractor struct {
	provider llm.Provider
	log      logger.Logger
}

// New constructs an Extractor
func New(p llm.Provider, cfg Config) *Extractor {
	e := &Extractor{provider: p}
	if cfg.Log != nil {
		e.log = *cfg.Log
	} else {
		e.log = *logger.Named("extract")
	}
	return e
}

// Extract returns a normalized spec for jobText
func (e *Extractor) Extract(ctx context.Context, jobText string) jobspec.Spec {
	return e.ExtractResult(ctx, jobText).Spec
}

// ExtractResult is Extract with the producing stage attached
func (e *Extractor) ExtractResult(ctx context.Context, jobText string) Result {
	log := logger.C(ctx).With().Str("provider", string(e.kind())).Logger()

	partial := jobspec.Defaults()
	s, err := e.ask(ctx, jobText)
	if err == nil {
		s = jobspec.Normalize(s, jobText)
		if !s.IsEmpty() {
			return Result{Spec: s, Stage: StageModel}
		}
		partial = s
		log.Warn().Msg("model returned an empty spec, rewriting job text")
	} else {
		log.Warn().Err(err).Msg("spec extraction failed, rewriting job text")
	}

	rewritten := e.rewrite(ctx, jobText)
	if rewritten != "" {
		s, err := e.ask(ctx, rewritten)
		if err == nil {
			s = jobspec.Normalize(jobspec.Merge(partial, s), jobText)
			if !s.IsEmpty() {
				return Result{Spec: s, Stage: StageRewrite, Rewritten: rewritten}
			}
			partial = s
		} else {
			log.Warn().Err(err).Msg("spec extraction after rewrite failed")
		}
	}

	local := jobspec.ExtractLocal(jobText)
	if rewritten != "" && rewritten != jobText {
		local = jobspec.Merge(local, jobspec.ExtractLocal(rewritten))
	}
	out := jobspec.Normalize(jobspec.Merge(partial, local), jobText)
	log.Warn().
		Strs("languages", out.Languages).
		Strs("keywords", out.CoreKeywords).
		Msg("using local keyword extraction")
	return Result{Spec: out, Stage: StageLocal, Rewritten: rewritten}
}

func (e *Extractor) ask(ctx context.Context, text string) (jobspec.Spec, error) {
	if e.provider == nil {
		return jobspec.Spec{}, errNoProvider
	}
	raw, err := e.provider.GenerateStructuredSpec(ctx, text)
	if err != nil {
		return jobspec.Spec{}, err
	}
	return jobspec.ParseLLM(raw)
}

func (e *Extractor) rewrite(ctx context.Context, text string) string {
	if e.provider == nil {
		return ""
	}
	out, err := e.provider.RewriteText(ctx, text)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("job text rewrite failed")
		return ""
	}
	return strings.TrimSpace(out)
}

func (e *Extractor) kind() llm.Kind {
	if e.provider == nil {
		return ""
	}
	return e.provider.Kind()
}
