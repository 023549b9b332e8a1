package config

import (
	"testing"
	"time"

	kit "github.com/predator4hack/gitscout/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	gh := New().Prefix("GITHUB_")
	if got := gh.Key("TOKEN"); got != "GITHUB_TOKEN" {
		t.Fatalf("Key = %q", got)
	}
	if got := New().Prefix("GITSCOUT_").Prefix("CACHE_").Key("TTL"); got != "GITSCOUT_CACHE_TTL" {
		t.Fatalf("nested Key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_DBURL", "  postgres://x ")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestFirstString(t *testing.T) {
	c := New().Prefix("GITHUB_")
	t.Setenv("GITHUB_TOKEN", "single")
	if got := c.FirstString("", "TOKENS", "TOKEN"); got != "single" {
		t.Fatalf("FirstString = %q", got)
	}
	t.Setenv("GITHUB_TOKENS", "a,b")
	if got := c.FirstString("", "TOKENS", "TOKEN"); got != "a,b" {
		t.Fatalf("FirstString should prefer the first key, got %q", got)
	}
	if got := c.FirstString("def", "NOPE"); got != "def" {
		t.Fatalf("FirstString default = %q", got)
	}
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("GITSCOUT_")
	t.Setenv("GITSCOUT_MAX_REPOS", "25")
	t.Setenv("GITSCOUT_BAD_INT", "ten")
	t.Setenv("GITSCOUT_TEMP", "0.4")
	t.Setenv("GITSCOUT_BAD_FLOAT", "warm")
	t.Setenv("GITSCOUT_SWAGGER", "false")
	t.Setenv("GITSCOUT_BAD_BOOL", "maybe")
	t.Setenv("GITSCOUT_TTL", "45m")
	t.Setenv("GITSCOUT_BAD_TTL", "forever")

	if got := c.MayInt("MAX_REPOS", 10); got != 25 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BAD_INT", 10); got != 10 {
		t.Fatalf("MayInt invalid = %d", got)
	}
	if got := c.MayInt("UNSET", 7); got != 7 {
		t.Fatalf("MayInt unset = %d", got)
	}
	if got := c.MayFloat64("TEMP", 0.2); got != 0.4 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayFloat64("BAD_FLOAT", 0.2); got != 0.2 {
		t.Fatalf("MayFloat64 invalid = %v", got)
	}
	if got := c.MayBool("SWAGGER", true); got {
		t.Fatalf("MayBool = %v", got)
	}
	if got := c.MayBool("BAD_BOOL", true); !got {
		t.Fatalf("MayBool invalid should keep default")
	}
	if got := c.MayDuration("TTL", time.Minute); got != 45*time.Minute {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("BAD_TTL", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration invalid = %v", got)
	}
	if got := c.MayString("UNSET", "x"); got != "x" {
		t.Fatalf("MayString = %q", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("GITHUB_")
	t.Setenv("GITHUB_TOKENS", " a , ,b,")
	got := c.MayCSV("TOKENS", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("GITHUB_EMPTY", " , ")
	if got := c.MayCSV("EMPTY", []string{"d"}); len(got) != 1 || got[0] != "d" {
		t.Fatalf("MayCSV all blank should default, got %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("LLM_")
	if got := c.MayEnum("PROVIDER", "mock", "gemini", "vertex", "mock"); got != "mock" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("LLM_PROVIDER", "Gemini")
	if got := c.MayEnum("PROVIDER", "mock", "gemini", "vertex", "mock"); got != "gemini" {
		t.Fatalf("MayEnum = %q", got)
	}
	t.Setenv("LLM_PROVIDER", "openai")
	kit.MustPanic(t, func() { _ = c.MayEnum("PROVIDER", "mock", "gemini", "vertex", "mock") })
}
