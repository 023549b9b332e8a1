package modkit

import (
	"net/http"

	"github.com/predator4hack/gitscout/internal/modkit/httpkit"
	pstrings "github.com/predator4hack/gitscout/internal/platform/strings"
)

// Option mutates module build state
type Option func(*Built)

// Built is the resolved result of a module's options
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		if o != nil {
			o(&b)
		}
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Defaults prepends a module's own name and prefix so caller options override them
func Defaults(name, prefix string, opts []Option) []Option {
	return append([]Option{WithName(name), WithPrefix(prefix)}, opts...)
}

// Mount attaches routes under the prefix with the module middlewares
func (b Built) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	httpkit.MountUnder(r, pstrings.MustPrefix(b.Prefix), b.Mw, func(sub httpkit.Router) {
		if routes != nil {
			routes(sub)
		}
	})
}

// WithName sets the module name used in logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the mount path
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends per module middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports owned by another module
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithSwagger toggles swagger for this module
func WithSwagger(on bool) Option { return func(b *Built) { b.SwaggerOn = on } }
