// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "github.com/predator4hack/gitscout/internal/modkit"
	"github.com/predator4hack/gitscout/internal/modkit/httpkit"
	"github.com/predator4hack/gitscout/internal/platform/store"
	str "github.com/predator4hack/gitscout/internal/platform/strings"

	"github.com/predator4hack/gitscout/internal/core/version"
	metahttp "github.com/predator4hack/gitscout/internal/services/api/meta/http"
	discoverymod "github.com/predator4hack/gitscout/internal/services/discovery/module"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module; discovery ports, when given, enable the GitHub checks
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(modkit.Defaults("meta", "/meta", opts)...)

	now := deps.Clock()
	d := metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   now(),
		Now:         now,
	}
	if p, ok := deps.PG.(store.Pinger); ok {
		d.PG = p
	}
	if deps.HasCH() {
		d.CH = deps.CH
	}
	if disc, ok := b.Ports.(discoverymod.Ports); ok && disc.Limits != nil {
		d.GitHub = disc.Limits
	}
	return &Module{b: b, deps: d}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Ports exposes nothing
func (m *Module) Ports() any { return nil }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// StartedAt is when the module was built
func (m *Module) StartedAt() time.Time { return m.deps.StartedAt }
