package httpkit

import (
	"net/http"
	"time"

	"github.com/predator4hack/gitscout/internal/platform/config"
	"github.com/predator4hack/gitscout/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration
	Slow        time.Duration
	CORS        middleware.CORSOptions
	MaxInFlight int
}

// StackFromConfig reads CORE_API_ keys
func StackFromConfig(cfg config.Conf) StackOptions {
	c := cfg.Prefix("CORE_API_")
	return StackOptions{
		Timeout:     c.MayDuration("TIMEOUT", 3*time.Minute),
		Slow:        c.MayDuration("SLOW_REQUEST", 10*time.Second),
		CORS:        middleware.CORSOptions{AllowedOrigins: c.MayCSV("CORS_ORIGINS", nil)},
		MaxInFlight: c.MayInt("MAX_IN_FLIGHT", 0),
	}
}

// CommonStack is the middleware chain applied to the versioned API
// searches can run for minutes, so the default timeout is generous
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 3 * time.Minute
	}
	stack := []func(http.Handler) http.Handler{middleware.CORS(o.CORS)}
	stack = append(stack, middleware.Defaults(o.Timeout)...)
	stack = append(stack, middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}))
	if o.MaxInFlight > 0 {
		stack = append(stack, middleware.Throttle(o.MaxInFlight))
	}
	return stack
}
