// Package api composes the HTTP API from the discovery, search and meta modules
package api

import (
	"context"
	"errors"

	"github.com/predator4hack/gitscout/internal/platform/config"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	phttp "github.com/predator4hack/gitscout/internal/platform/net/http"
	"github.com/predator4hack/gitscout/internal/platform/net/middleware"
	"github.com/predator4hack/gitscout/internal/platform/store"

	"github.com/predator4hack/gitscout/internal/modkit"
	"github.com/predator4hack/gitscout/internal/modkit/httpkit"
	"github.com/predator4hack/gitscout/internal/modkit/module"
	"github.com/predator4hack/gitscout/internal/modkit/repokit"
	"github.com/predator4hack/gitscout/internal/modkit/swaggerkit"

	metamod "github.com/predator4hack/gitscout/internal/services/api/meta/module"
	discoverymod "github.com/predator4hack/gitscout/internal/services/discovery/module"
	searchmod "github.com/predator4hack/gitscout/internal/services/search/module"
	searchrepo "github.com/predator4hack/gitscout/internal/services/search/repo"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// non zero fields override config
	Discovery discoverymod.Options
	Search    searchmod.Options
}

// App is the mounted API; Close releases what the modules hold
type App struct {
	Discovery *discoverymod.Module
	Search    *searchmod.Module
}

// Close releases the text generation backends
func (a *App) Close() error {
	if a == nil || a.Search == nil {
		return nil
	}
	return a.Search.Close()
}

// Mount builds the modules and mounts them under /api/v1
// the search session sweeper runs until ctx ends
func Mount(ctx context.Context, r phttp.Router, opt Options) *App {
	log := logger.Nop()
	if opt.Logger != nil {
		log = *opt.Logger
	}
	deps := modkit.DepsFrom(opt.Config, opt.Store, log)

	// discovery owns the GitHub client; search and meta read through its ports
	disc := discoverymod.New(deps, opt.Discovery)
	discPorts := module.MustPortsOf[discoverymod.Ports](disc)

	search := searchmod.New(deps, opt.Search, modkit.WithPorts(discPorts))
	search.Start(ctx)

	mods := []module.Module{
		disc,
		search,
		metamod.New(deps, modkit.WithPorts(discPorts)),
	}

	r.Use(middleware.Heartbeat("/ping"))
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config)), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	log.Info().Strs("modules", module.Names()).Bool("swagger", opt.EnableSwagger).Msg("api mounted")
	return &App{Discovery: disc, Search: search}
}

// Migrate creates the saved search tables and the run analytics table on the opened backends
func Migrate(ctx context.Context, st *store.Store) error {
	if st == nil {
		return nil
	}
	var errs []error
	if st.PG != nil {
		errs = append(errs, repokit.WithTx(ctx, st.PG, func(q repokit.Queryer) error {
			return searchrepo.Migrate(ctx, q)
		}))
	}
	if st.CH != nil {
		errs = append(errs, searchrepo.NewRuns(st.CH).Migrate(ctx))
	}
	return errors.Join(errs...)
}
