package llm

import (
	"context"
	"strings"

	"github.com/predator4hack/gitscout/internal/adapters/llm/prompt"
	perr "github.com/predator4hack/gitscout/internal/platform/errors"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini calls the Gemini API with an API key
type Gemini struct {
	client *genai.Client
	model  string
	temp   float32
}

// NewGemini creates a Gemini provider
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, perr.InvalidArgf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, upstream(err, KindGemini, "new client")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{client: client, model: model, temp: cfg.Temperature}, nil
}

// Kind satisfies Provider
func (g *Gemini) Kind() Kind { return KindGemini }

// GenerateSearchQuery satisfies Provider
func (g *Gemini) GenerateSearchQuery(ctx context.Context, jobText string) (string, error) {
	return g.generate(ctx, prompt.SearchQuery(jobText), false)
}

// GenerateStructuredSpec satisfies Provider; the reply is constrained to JSON
func (g *Gemini) GenerateStructuredSpec(ctx context.Context, jobText string) (string, error) {
	return g.generate(ctx, prompt.StructuredSpec(jobText), true)
}

// RewriteText satisfies Provider
func (g *Gemini) RewriteText(ctx context.Context, jobText string) (string, error) {
	return g.generate(ctx, prompt.Rewrite(jobText), false)
}

// GenerateAnalysisText satisfies Provider; the reply is constrained to JSON
func (g *Gemini) GenerateAnalysisText(ctx context.Context, input string) (string, error) {
	return g.generate(ctx, prompt.Analysis(input), true)
}

// Close satisfies Provider; the genai client holds no resources
func (g *Gemini) Close() error { return nil }

func (g *Gemini) generate(ctx context.Context, text string, asJSON bool) (string, error) {
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr(g.temp)}
	if asJSON {
		cfg.ResponseMIMEType = "application/json"
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), cfg)
	if err != nil {
		return "", upstream(err, KindGemini, "generate content")
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(strings.TrimSpace(part.Text))
		}
	}
	if b.Len() == 0 {
		return "", emptyReply(KindGemini)
	}
	return b.String(), nil
}
