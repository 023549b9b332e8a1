package querybuild

import (
	"strings"
	"testing"
	"time"

	"github.com/predator4hack/gitscout/internal/core/jobspec"
	"github.com/predator4hack/gitscout/internal/platform/testkit"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func spec(mut func(*jobspec.Spec)) jobspec.Spec {
	s := jobspec.Defaults()
	mut(&s)
	return s
}

func TestBuildLanguageDomainKeywords(t *testing.T) {
	s := spec(func(s *jobspec.Spec) {
		s.Languages = []string{"Python", "Go"}
		s.CoreDomains = []string{"backend"}
		s.CoreKeywords = []string{"kafka", "kubernetes", "grpc", "redis", "postgresql", "docker"}
	})
	base := "stars:>20 pushed:>2024-06-01 fork:false archived:false"

	got := Build(s, now)
	want := []string{
		"language:Python topic:backend " + base,
		"language:Go topic:backend " + base,
		"language:Python (kafka OR kubernetes OR grpc) " + base,
		"language:Python (redis OR postgresql OR docker) " + base,
		"language:Go (kafka OR kubernetes OR grpc) " + base,
		"language:Go (redis OR postgresql OR docker) " + base,
	}
	testkit.MustEqualStrings(t, "queries", got, want)
}

func TestBuildCapsAndDedup(t *testing.T) {
	s := spec(func(s *jobspec.Spec) {
		s.Languages = []string{"Go", "Rust", "C++"}
		s.CoreDomains = []string{"devops", "security"}
		s.CoreKeywords = []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		s.MaxRepoQueries = 4
	})
	got := Build(s, now)
	if len(got) != 4 {
		t.Fatalf("want 4 queries, got %d: %q", len(got), got)
	}
	seen := map[string]bool{}
	for _, q := range got {
		if seen[q] {
			t.Fatalf("duplicate %q", q)
		}
		seen[q] = true
		if len(q) > MaxQueryLen {
			t.Fatalf("too long: %d", len(q))
		}
	}

	// keywords past the sixth never show up
	s.MaxRepoQueries = 50
	for _, q := range Build(s, now) {
		if strings.Contains(q, " g") || strings.Contains(q, "(g") {
			t.Fatalf("seventh keyword leaked into %q", q)
		}
	}
}

func TestBuildFallbacks(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*jobspec.Spec)
		want []string
	}{
		{
			name: "languages only",
			mut:  func(s *jobspec.Spec) { s.Languages = []string{"Go", "Rust", "Zig"} },
			want: []string{
				"language:Go stars:>20 pushed:>2024-06-01 fork:false archived:false",
				"language:Rust stars:>20 pushed:>2024-06-01 fork:false archived:false",
			},
		},
		{
			name: "domains only",
			mut:  func(s *jobspec.Spec) { s.CoreDomains = []string{"nlp", "machine learning"} },
			want: []string{
				"topic:nlp stars:>20 pushed:>2024-06-01 fork:false archived:false",
				`topic:"machine learning" stars:>20 pushed:>2024-06-01 fork:false archived:false`,
			},
		},
		{
			name: "keywords only",
			mut: func(s *jobspec.Spec) {
				s.CoreKeywords = []string{"kafka", "stream processing", "flink"}
				s.ExcludeArchived = false
			},
			want: []string{
				`kafka "stream processing" stars:>20 pushed:>2024-06-01 fork:false`,
				"flink stars:>20 pushed:>2024-06-01 fork:false",
			},
		},
		{
			name: "nothing",
			mut:  func(s *jobspec.Spec) { s.RecencyDays = 30 },
			want: []string{"stars:>100 pushed:>2025-05-02 fork:false archived:false"},
		},
		{
			name: "no star filter when zero",
			mut: func(s *jobspec.Spec) {
				s.Languages = []string{"Go"}
				s.MinRepoStars = 0
				s.ExcludeForks = false
			},
			want: []string{"language:Go pushed:>2024-06-01 archived:false"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			testkit.MustEqualStrings(t, "queries", Build(spec(c.mut), now), c.want)
		})
	}
}

func TestBuildDropsOverlongQueries(t *testing.T) {
	long := strings.Repeat("x", 240)
	s := spec(func(s *jobspec.Spec) {
		s.Languages = []string{"Go"}
		s.CoreDomains = []string{long, "backend"}
	})
	got := Build(s, now)
	for _, q := range got {
		if strings.Contains(q, long) {
			t.Fatalf("overlong query kept: %d chars", len(q))
		}
	}
	if len(got) != 1 || !strings.HasPrefix(got[0], "language:Go topic:backend ") {
		t.Fatalf("unexpected queries %q", got)
	}
}

func TestTerm(t *testing.T) {
	if Term("machine learning") != `"machine learning"` || Term("kafka") != "kafka" {
		t.Fatalf("quoting broken")
	}
}
