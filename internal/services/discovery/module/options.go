package module

import (
	"time"

	"github.com/predator4hack/gitscout/internal/adapters/github"
	"github.com/predator4hack/gitscout/internal/platform/config"
)

// Options controls the discovery pipeline and its GitHub client
type Options struct {
	BatchSize       int
	MaxConcurrency  int
	TopContributors int
	ReposPerQuery   int

	GitHub github.Options
}

// FromConfig reads GITSCOUT_ pipeline keys and GITHUB_ client keys
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("GITSCOUT_")
	gh := cfg.Prefix("GITHUB_")
	return Options{
		BatchSize:       c.MayInt("HYDRATE_BATCH_SIZE", 5),
		MaxConcurrency:  c.MayInt("MAX_CONCURRENT_REQUESTS", 5),
		TopContributors: c.MayInt("TOP_CONTRIBUTORS", 50),
		ReposPerQuery:   c.MayInt("REPOS_PER_QUERY", 50),
		GitHub: github.Options{
			BaseURL:    gh.MayString("BASE_URL", "https://api.github.com"),
			TokensCSV:  gh.FirstString("", "TOKENS", "TOKEN"),
			Timeout:    gh.MayDuration("TIMEOUT", 30*time.Second),
			MaxRetries: gh.MayInt("MAX_RETRIES", 3),
			RetryBase:  gh.MayDuration("RETRY_BASE", 500*time.Millisecond),
			RatePerSec: gh.MayFloat64("RATE_PER_SEC", 10),
			Burst:      gh.MayInt("BURST", 10),
		},
	}
}

// merge applies the non zero fields of o over base
func (base Options) merge(o Options) Options {
	if o.BatchSize != 0 {
		base.BatchSize = o.BatchSize
	}
	if o.MaxConcurrency != 0 {
		base.MaxConcurrency = o.MaxConcurrency
	}
	if o.TopContributors != 0 {
		base.TopContributors = o.TopContributors
	}
	if o.ReposPerQuery != 0 {
		base.ReposPerQuery = o.ReposPerQuery
	}
	if o.GitHub.BaseURL != "" {
		base.GitHub.BaseURL = o.GitHub.BaseURL
		base.GitHub.GraphQLURL = o.GitHub.GraphQLURL
	}
	if o.GitHub.TokensCSV != "" {
		base.GitHub.TokensCSV = o.GitHub.TokensCSV
	}
	if o.GitHub.MaxRetries != 0 {
		base.GitHub.MaxRetries = o.GitHub.MaxRetries
	}
	if o.GitHub.RetryBase != 0 {
		base.GitHub.RetryBase = o.GitHub.RetryBase
	}
	if o.GitHub.RatePerSec != 0 {
		base.GitHub.RatePerSec = o.GitHub.RatePerSec
	}
	if o.GitHub.Burst != 0 {
		base.GitHub.Burst = o.GitHub.Burst
	}
	if o.GitHub.Timeout != 0 {
		base.GitHub.Timeout = o.GitHub.Timeout
	}
	return base
}
