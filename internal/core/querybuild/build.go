// Package querybuild turns a requirement spec into GitHub repository search queries
package querybuild

import (
	"fmt"
	"strings"
	"time"

	"github.com/predator4hack/gitscout/internal/core/jobspec"
)

// Search engine limits
const (
	MaxQueryLen   = 256
	keywordGroup  = 3
	keywordGroups = 2 // five boolean operators per query
)

// Build returns the ordered, deduplicated query list for spec
// queries longer than MaxQueryLen are dropped rather than cut
func Build(spec jobspec.Spec, now time.Time) []string {
	limit := spec.MaxRepoQueries
	if limit <= 0 {
		limit = jobspec.Defaults().MaxRepoQueries
	}
	b := &builder{limit: limit, seen: map[string]struct{}{}}
	base := BaseFilters(spec, now)

	langs := head(spec.Languages, 3)
	domains := head(spec.CoreDomains, 2)

	for _, l := range langs {
		for _, d := range domains {
			b.add(join("language:"+Term(l), "topic:"+Term(d), base))
		}
	}

	groups := chunk(head(spec.CoreKeywords, keywordGroup*keywordGroups), keywordGroup)
	for _, l := range langs {
		for _, g := range groups {
			b.add(join("language:"+Term(l), orGroup(g), base))
		}
	}

	if len(b.out) == 0 {
		for _, l := range head(spec.Languages, 2) {
			b.add(join("language:"+Term(l), base))
		}
	}
	if len(b.out) == 0 {
		for _, d := range head(spec.CoreDomains, 3) {
			b.add(join("topic:"+Term(d), base))
		}
	}
	if len(b.out) == 0 {
		for _, g := range chunk(spec.CoreKeywords, 2) {
			terms := make([]string, len(g))
			for i, k := range g {
				terms[i] = Term(k)
			}
			b.add(join(strings.Join(terms, " "), base))
		}
	}
	if len(b.out) == 0 {
		noStars := spec
		noStars.MinRepoStars = 0
		b.add(join("stars:>100", BaseFilters(noStars, now)))
	}
	return b.out
}

// BaseFilters renders the qualifiers shared by every query
func BaseFilters(spec jobspec.Spec, now time.Time) string {
	var parts []string
	if spec.MinRepoStars > 0 {
		parts = append(parts, fmt.Sprintf("stars:>%d", spec.MinRepoStars))
	}
	since := now.AddDate(0, 0, -spec.RecencyDays)
	parts = append(parts, "pushed:>"+since.Format(time.DateOnly))
	if spec.ExcludeForks {
		parts = append(parts, "fork:false")
	}
	if spec.ExcludeArchived {
		parts = append(parts, "archived:false")
	}
	return strings.Join(parts, " ")
}

// Term quotes multi word terms
func Term(s string) string {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \t") {
		return `"` + strings.ReplaceAll(s, `"`, "") + `"`
	}
	return s
}

type builder struct {
	limit int
	out   []string
	seen  map[string]struct{}
}

func (b *builder) add(q string) {
	if len(b.out) >= b.limit || len(q) > MaxQueryLen {
		return
	}
	if _, ok := b.seen[q]; ok {
		return
	}
	b.seen[q] = struct{}{}
	b.out = append(b.out, q)
}

func orGroup(g []string) string {
	terms := make([]string, len(g))
	for i, k := range g {
		terms[i] = Term(k)
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

func join(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func head(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func chunk(in []string, size int) [][]string {
	var out [][]string
	for i := 0; i < len(in); i += size {
		out = append(out, in[i:min(i+size, len(in))])
	}
	return out
}
