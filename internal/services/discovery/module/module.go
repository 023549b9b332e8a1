// Package module wires the discovery pipeline over a GitHub client and exposes it as ports
package module

import (
	"github.com/predator4hack/gitscout/internal/adapters/github"
	"github.com/predator4hack/gitscout/internal/modkit"
	"github.com/predator4hack/gitscout/internal/modkit/httpkit"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	"github.com/predator4hack/gitscout/internal/services/discovery/service"
)

// Module owns the GitHub client and the pipeline; it serves no routes
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New builds the module from GITSCOUT_ and GITHUB_ config, then applies non zero overrides
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg).merge(overrides)

	gh := github.NewClient(opts.GitHub)
	log := logger.Named("discovery")
	pipe := service.New(gh, service.Config{
		BatchSize:       opts.BatchSize,
		MaxConcurrency:  opts.MaxConcurrency,
		TopContributors: opts.TopContributors,
		SearchPageSize:  opts.ReposPerQuery,
		Log:             log,
	})
	if gh.Tokens() == 0 {
		log.Warn().Msg("no GitHub token configured, requests are anonymous and heavily rate limited")
	}

	return &Module{
		deps: deps,
		opts: opts,
		ports: Ports{
			Pipeline: pipe,
			Users:    gh,
			Limits:   gh,
		},
	}
}

// Options returns the effective options
func (m *Module) Options() Options { return m.opts }

// Ports returns Ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "discovery" }

// MountRoutes mounts nothing; search and meta expose the pipeline
func (m *Module) MountRoutes(_ httpkit.Router) {}
