// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/predator4hack/gitscout/internal/adapters/github"
	"github.com/predator4hack/gitscout/internal/core/version"
	"github.com/predator4hack/gitscout/internal/modkit/httpkit"
	"github.com/predator4hack/gitscout/internal/platform/store"
)

// RateLimiter reports the remaining GitHub budget
type RateLimiter interface {
	RateLimit(ctx context.Context) (github.RateLimits, error)
}

// Deps are the handler dependencies; nil checks are skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Now         func() time.Time
	PG          store.Pinger
	CH          store.Pinger
	GitHub      RateLimiter
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/github", h.github)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"gitscout"`
	Started string `json:"started"  example:"2026-03-01T09:00:00Z"`
	Now     string `json:"now"      example:"2026-03-01T09:05:00Z"`
}

// ReadyCheck is one dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-01T09:05:00Z"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string `json:"name"    example:"gitscout"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness with storage and GitHub checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ping := func(name string, p store.Pinger) ReadyCheck {
		if p == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	}
	checks := []ReadyCheck{ping("pg", h.deps.PG), ping("ch", h.deps.CH)}

	gh := ReadyCheck{Name: "github", Status: "skipped"}
	if h.deps.GitHub != nil {
		gh.Status = "ok"
		if rl, err := h.deps.GitHub.RateLimit(ctx); err != nil {
			gh.Status, gh.Error = "fail", err.Error()
		} else if rl.Search.Remaining == 0 || rl.GraphQL.Remaining == 0 {
			gh.Status, gh.Error = "fail", "rate limit exhausted until "+rl.Search.Reset.UTC().Format(time.RFC3339)
		}
	}
	checks = append(checks, gh)

	return ReadyResponse{
		Status: overall(checks),
		Checks: checks,
		Now:    h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// overall is fail when a required check fails, degraded when optional storage is off
func overall(checks []ReadyCheck) string {
	out := "ok"
	for _, c := range checks {
		switch c.Status {
		case "fail":
			return "fail"
		case "skipped":
			out = "degraded"
		}
	}
	return out
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.deps.Now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Remaining GitHub rate limit budget
// @Tags Meta
// @Produce json
// @Success 200 {object} github.RateLimits "ok"
// @Router /meta/github [get]
func (h *handlers) github(r *http.Request) (any, error) {
	if h.deps.GitHub == nil {
		return github.RateLimits{}, nil
	}
	return h.deps.GitHub.RateLimit(r.Context())
}
