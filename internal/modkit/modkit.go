// Package modkit is the wiring layer API modules are assembled with
package modkit

import "github.com/predator4hack/gitscout/internal/modkit/module"

// Module is what api.Mount composes; see module.Module
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
