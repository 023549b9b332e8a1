// Package module wires the search service into the API using modkit
package module

import (
	"context"
	"net/http"

	"github.com/predator4hack/gitscout/internal/adapters/llm"
	modkit "github.com/predator4hack/gitscout/internal/modkit"
	"github.com/predator4hack/gitscout/internal/modkit/httpkit"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	str "github.com/predator4hack/gitscout/internal/platform/strings"
	discoverymod "github.com/predator4hack/gitscout/internal/services/discovery/module"
	searchhttp "github.com/predator4hack/gitscout/internal/services/search/http"
	searchrepo "github.com/predator4hack/gitscout/internal/services/search/repo"
	searchsvc "github.com/predator4hack/gitscout/internal/services/search/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	opts  Options
	cache *searchsvc.Cache

	providers *llm.Registry
	svc       *searchsvc.Service
}

// New builds the search module
// discovery ports come in through modkit.WithPorts; without them New panics
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(modkit.Defaults("search", "/search", opts)...)
	disc, ok := b.Ports.(discoverymod.Ports)
	if !ok || disc.Pipeline == nil {
		panic("search: discovery ports are required")
	}
	o := FromConfig(deps.Cfg).merge(overrides)

	log := logger.Named("search")
	providers := llm.NewRegistry(o.LLM)
	cache := searchsvc.NewCache(o.CacheTTL, deps.Clock())

	d := searchsvc.Deps{
		Providers: providers,
		Pipeline:  disc.Pipeline,
		Users:     disc.Users,
		Sessions:  cache,
		Analyses:  cache,
		Now:       deps.Clock(),
	}
	if deps.HasPG() {
		d.DB, d.Repo = deps.PG, searchrepo.NewPG()
	} else {
		log.Warn().Msg("postgres not configured, saved searches are disabled")
	}
	if deps.HasCH() {
		d.Runs = searchrepo.NewRuns(deps.CH)
	}

	return &Module{
		deps:      deps,
		b:         b,
		opts:      o,
		cache:     cache,
		providers: providers,
		svc: searchsvc.New(d, searchsvc.Config{
			MaxRepos:            o.MaxRepos,
			ContributorsPerRepo: o.ContributorsPerRepo,
			FallbackUsers:       o.FallbackUsers,
			PageSize:            o.PageSize,
			Log:                 log,
		}),
	}
}

// Start runs the session sweeper until ctx ends
func (m *Module) Start(ctx context.Context) { m.cache.Start(ctx, m.opts.CacheSweep) }

// Close releases the text generation backends
func (m *Module) Close() error { return m.providers.Close() }

// Options returns the effective options
func (m *Module) Options() Options { return m.opts }

// Service returns the search service
func (m *Module) Service() *searchsvc.Service { return m.svc }

// MountRoutes mounts /search and the saved search prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { searchhttp.Register(rr, m.svc) })
	httpkit.MountUnder(r, str.MustPrefix(m.opts.SavedPrefix), m.b.Mw, func(rr httpkit.Router) {
		searchhttp.RegisterSaved(rr, m.svc)
	})
}

// Ports returns Ports
func (m *Module) Ports() any { return Ports{Search: m.svc, Providers: m.providers} }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the session route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.b.Mw }
