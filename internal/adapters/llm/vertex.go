package llm

import (
	"context"
	"strings"

	"github.com/predator4hack/gitscout/internal/adapters/llm/prompt"
	perr "github.com/predator4hack/gitscout/internal/platform/errors"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

const (
	defaultVertexModel    = "gemini-2.0-flash-001"
	defaultVertexLocation = "us-central1"
)

// Vertex calls Gemini models through Vertex AI with project credentials
type Vertex struct {
	client *genai.Client
	text   *genai.GenerativeModel
	json   *genai.GenerativeModel
}

// NewVertex creates a Vertex AI provider
// credentials come from cfg.CredentialsFile or the ambient application default
func NewVertex(ctx context.Context, cfg Config) (*Vertex, error) {
	if strings.TrimSpace(cfg.Project) == "" {
		return nil, perr.InvalidArgf("vertex project is required")
	}
	loc := cfg.Location
	if loc == "" {
		loc = defaultVertexLocation
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := genai.NewClient(ctx, cfg.Project, loc, opts...)
	if err != nil {
		return nil, upstream(err, KindVertex, "new client")
	}

	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		name = defaultVertexModel
	}
	text := client.GenerativeModel(name)
	text.SetTemperature(cfg.Temperature)
	js := client.GenerativeModel(name)
	js.SetTemperature(cfg.Temperature)
	js.ResponseMIMEType = "application/json"

	return &Vertex{client: client, text: text, json: js}, nil
}

// Kind satisfies Provider
func (v *Vertex) Kind() Kind { return KindVertex }

// GenerateSearchQuery satisfies Provider
func (v *Vertex) GenerateSearchQuery(ctx context.Context, jobText string) (string, error) {
	return v.generate(ctx, v.text, prompt.SearchQuery(jobText))
}

// GenerateStructuredSpec satisfies Provider
func (v *Vertex) GenerateStructuredSpec(ctx context.Context, jobText string) (string, error) {
	return v.generate(ctx, v.json, prompt.StructuredSpec(jobText))
}

// RewriteText satisfies Provider
func (v *Vertex) RewriteText(ctx context.Context, jobText string) (string, error) {
	return v.generate(ctx, v.text, prompt.Rewrite(jobText))
}

// GenerateAnalysisText satisfies Provider
func (v *Vertex) GenerateAnalysisText(ctx context.Context, input string) (string, error) {
	return v.generate(ctx, v.json, prompt.Analysis(input))
}

// Close releases the Vertex AI connection
func (v *Vertex) Close() error { return v.client.Close() }

func (v *Vertex) generate(ctx context.Context, m *genai.GenerativeModel, text string) (string, error) {
	resp, err := m.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", upstream(err, KindVertex, "generate content")
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			t, ok := part.(genai.Text)
			if !ok || strings.TrimSpace(string(t)) == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(strings.TrimSpace(string(t)))
		}
	}
	if b.Len() == 0 {
		return "", emptyReply(KindVertex)
	}
	return b.String(), nil
}
