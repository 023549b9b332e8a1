package module

import (
	"github.com/predator4hack/gitscout/internal/adapters/llm"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"
)

// Ports is what the search module offers the CLI and other modules
type Ports struct {
	Search    dom.ServicePort
	Providers *llm.Registry
}
