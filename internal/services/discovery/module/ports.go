package module

import (
	"context"

	"github.com/predator4hack/gitscout/internal/adapters/github"
	dom "github.com/predator4hack/gitscout/internal/services/discovery/domain"
)

// RateLimiter reports the remaining GitHub budget
type RateLimiter interface {
	RateLimit(ctx context.Context) (github.RateLimits, error)
}

// Ports is what the discovery module offers other modules
type Ports struct {
	Pipeline dom.PipelinePort
	Users    dom.UserSearchPort
	Limits   RateLimiter
}
