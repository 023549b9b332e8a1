// Package module holds the module contract and the port registry used during bootstrap
package module

import (
	phttp "github.com/predator4hack/gitscout/internal/platform/net/http"
)

// Module is a named unit that mounts routes and exposes ports to other modules
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}
