package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/predator4hack/gitscout/internal/adapters/github"
	pnet "github.com/predator4hack/gitscout/internal/platform/net"
	phttp "github.com/predator4hack/gitscout/internal/platform/net/http"
	"github.com/predator4hack/gitscout/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type limits struct {
	rl  github.RateLimits
	err error
}

func (l limits) RateLimit(context.Context) (github.RateLimits, error) { return l.rl, l.err }

var started = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func get(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), d)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	w := pnet.Wire{Data: out}
	if err := json.Unmarshal(rec.Body.Bytes(), &w); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec.Code
}

func TestReady(t *testing.T) {
	ok := limits{rl: github.RateLimits{Search: github.Rate{Remaining: 30}, GraphQL: github.Rate{Remaining: 5000}}}
	cases := []struct {
		name string
		d    Deps
		want string
	}{
		{"all ok", Deps{PG: pinger{}, CH: pinger{}, GitHub: ok}, "ok"},
		{"no storage", Deps{GitHub: ok}, "degraded"},
		{"pg down", Deps{PG: pinger{err: errors.New("refused")}, CH: pinger{}, GitHub: ok}, "fail"},
		{"github down", Deps{PG: pinger{}, CH: pinger{}, GitHub: limits{err: errors.New("401")}}, "fail"},
		{"exhausted", Deps{PG: pinger{}, CH: pinger{}, GitHub: limits{rl: github.RateLimits{GraphQL: github.Rate{Remaining: 10}}}}, "fail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ReadyResponse
			if code := get(t, tc.d, "/ready", &got); code != stdhttp.StatusOK {
				t.Fatalf("code = %d", code)
			}
			if got.Status != tc.want || len(got.Checks) != 3 {
				t.Fatalf("ready = %+v", got)
			}
		})
	}
}

func TestServiceAndHealth(t *testing.T) {
	d := Deps{ServiceName: "gitscout", StartedAt: started, Now: testkit.Clock(started.Add(5 * time.Minute))}

	var svc ServiceResponse
	get(t, d, "/service", &svc)
	if svc.Uptime != 300 || svc.Name != "gitscout" {
		t.Fatalf("service = %+v", svc)
	}

	var h HealthResponse
	get(t, d, "/health", &h)
	if !h.OK || h.Now != "2026-03-01T09:05:00Z" {
		t.Fatalf("health = %+v", h)
	}

	var rl github.RateLimits
	get(t, d, "/github", &rl)
	if rl.Search.Remaining != 0 {
		t.Fatalf("github without client = %+v", rl)
	}
}
