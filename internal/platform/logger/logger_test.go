package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "github.com/predator4hack/gitscout/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warning", "warn"},
		{"error", "error"},
		{"off", "disabled"},
		{"", "info"},
		{"  nonsense ", "info"},
	}
	for _, c := range cases {
		if got := parseLevel(c.in).String(); got != c.want {
			t.Fatalf("parseLevel(%q) = %q want %q", c.in, got, c.want)
		}
	}
}

func TestInitNamedAndScopedChildren(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "gitscout-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Named("pipeline").Info().Int("repos", 3).Msg("stage done")

	ctx := WithSearch(WithRequest(context.Background(), "req-1"), "s-42")
	C(ctx).Info().Msg("scoped")
	C(context.Background()).Debug().Msg("bare")

	out := buf.String()
	kit.MustContain(t, out, `"component":"pipeline"`)
	kit.MustContain(t, out, `"repos":3`)
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"search_id":"s-42"`)
	kit.MustContain(t, out, `"service":"gitscout-test"`)
	kit.MustContain(t, out, `"build":"test"`)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if strings.Contains(last, "request_id") {
		t.Fatalf("background child should not carry request_id: %s", last)
	}
}

func TestWithEmptyIDsKeepsContext(t *testing.T) {
	base := context.Background()
	if WithRequest(base, "") != base || WithSearch(base, "") != base {
		t.Fatalf("empty ids should return the same context")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" || !opt.WithCaller {
		t.Fatalf("FromEnv mismatch: %+v", opt)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error().Msg("dropped")
}
