package module

import (
	"time"

	"github.com/predator4hack/gitscout/internal/adapters/llm"
	"github.com/predator4hack/gitscout/internal/platform/config"
)

// Options controls the search service, its session cache and the default text backend
type Options struct {
	MaxRepos            int
	ContributorsPerRepo int
	FallbackUsers       int
	PageSize            int
	CacheTTL            time.Duration
	CacheSweep          time.Duration
	SavedPrefix         string

	LLM llm.Config
}

// FromConfig reads GITSCOUT_ search keys and LLM_ backend keys
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("GITSCOUT_")
	l := cfg.Prefix("LLM_")
	kinds := make([]string, 0, 3)
	for _, k := range llm.Kinds() {
		kinds = append(kinds, string(k))
	}
	return Options{
		MaxRepos:            c.MayInt("MAX_REPOS", 10),
		ContributorsPerRepo: c.MayInt("CONTRIBUTORS_PER_REPO", 10),
		FallbackUsers:       c.MayInt("FALLBACK_USERS", 20),
		PageSize:            c.MayInt("PAGE_SIZE", 10),
		CacheTTL:            c.MayDuration("CACHE_TTL", 30*time.Minute),
		CacheSweep:          c.MayDuration("CACHE_SWEEP", 5*time.Minute),
		SavedPrefix:         "/searches",
		LLM: llm.Config{
			Kind:            llm.Kind(l.MayEnum("PROVIDER", string(llm.KindMock), kinds...)),
			Model:           l.MayString("MODEL", ""),
			Temperature:     float32(l.MayFloat64("TEMPERATURE", 0.2)),
			APIKey:          l.FirstString("", "GEMINI_API_KEY", "API_KEY"),
			Project:         l.MayString("VERTEX_PROJECT", ""),
			Location:        l.MayString("VERTEX_LOCATION", "us-central1"),
			CredentialsFile: l.MayString("VERTEX_CREDENTIALS", ""),
		},
	}
}

// merge applies the non zero fields of o over base
func (base Options) merge(o Options) Options {
	if o.MaxRepos != 0 {
		base.MaxRepos = o.MaxRepos
	}
	if o.ContributorsPerRepo != 0 {
		base.ContributorsPerRepo = o.ContributorsPerRepo
	}
	if o.FallbackUsers != 0 {
		base.FallbackUsers = o.FallbackUsers
	}
	if o.PageSize != 0 {
		base.PageSize = o.PageSize
	}
	if o.CacheTTL != 0 {
		base.CacheTTL = o.CacheTTL
	}
	if o.CacheSweep != 0 {
		base.CacheSweep = o.CacheSweep
	}
	if o.SavedPrefix != "" {
		base.SavedPrefix = o.SavedPrefix
	}
	if o.LLM.Kind != "" {
		base.LLM.Kind = o.LLM.Kind
	}
	if o.LLM.Model != "" {
		base.LLM.Model = o.LLM.Model
	}
	if o.LLM.APIKey != "" {
		base.LLM.APIKey = o.LLM.APIKey
	}
	return base
}
