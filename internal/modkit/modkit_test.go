package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/predator4hack/gitscout/internal/modkit/httpkit"
	"github.com/predator4hack/gitscout/internal/platform/config"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	phttp "github.com/predator4hack/gitscout/internal/platform/net/http"
	"github.com/predator4hack/gitscout/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func header(k, v string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(k, v)
			next.ServeHTTP(w, r)
		})
	}
}

func TestBuildDefaultsAndOverrides(t *testing.T) {
	b := Build(Defaults("search", "/search", []Option{
		WithPrefix("/scout"),
		WithMiddlewares(header("X-A", "1")),
		WithMiddlewares(header("X-B", "2")),
		WithSwagger(true),
		WithPorts(42),
		nil,
	})...)
	if b.Name != "search" || b.Prefix != "/scout" || !b.SwaggerOn || b.Ports != 42 || len(b.Mw) != 2 {
		t.Fatalf("built = %+v", b)
	}
}

func TestBuiltMount(t *testing.T) {
	b := Build(
		WithName("searches"),
		WithPrefix("searches/"),
		WithMiddlewares(header("X-Module", "searches")),
	)

	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux), func(r httpkit.Router) {
		httpkit.Get(r, "/", func(*http.Request) (any, error) { return []string{}, nil })
		httpkit.Get(r, "/extra", func(*http.Request) (any, error) { return "extra", nil })
	})

	for _, path := range []string{"/searches/", "/searches/extra"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Header().Get("X-Module") != "searches" {
			t.Fatalf("%s: %d %v", path, rec.Code, rec.Header())
		}
	}
}

func TestDeps(t *testing.T) {
	d := DepsFrom(config.New(), nil, logger.Nop())
	if d.HasPG() || d.HasCH() {
		t.Fatalf("nil store should leave backends unset")
	}
	if d.Clock()().IsZero() {
		t.Fatalf("default clock")
	}
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	d.Now = testkit.Clock(at)
	if !d.Clock()().Equal(at) {
		t.Fatalf("custom clock ignored")
	}
}
