package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	pnet "github.com/predator4hack/gitscout/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

type echoIn struct {
	Login string `json:"login" validate:"required,github_login"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) pnet.Wire {
	t.Helper()
	var w pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &w); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return w
}

func testRouter() stdhttp.Handler {
	m := chi.NewRouter()
	r := AdaptChi(m)
	r.Route("/v1", func(api Router) {
		api.Post("/echo", JSONHandler(func(_ *stdhttp.Request, in echoIn) (any, error) {
			return map[string]string{"login": in.Login}, nil
		}))
		api.Post("/make", JSONHandler(func(_ *stdhttp.Request, in echoIn) (any, error) {
			return Created(in.Login), nil
		}))
		api.Delete("/gone", JSONHandlerNoBody(func(*stdhttp.Request) (any, error) {
			return NoContent(), nil
		}))
		api.Get("/missing", JSONHandlerNoBody(func(*stdhttp.Request) (any, error) {
			return nil, perr.NotFoundf("search session expired")
		}))
		api.Get("/teapot", Handle(func(*stdhttp.Request) Response {
			return Response{Status: stdhttp.StatusTeapot, Body: "brew", Header: stdhttp.Header{"X-Pot": {"1"}}}
		}))
	})
	return r.Mux()
}

func TestHandlers(t *testing.T) {
	h := testRouter()
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   perr.ErrorCode
	}{
		{"ok", stdhttp.MethodPost, "/v1/echo", `{"login":"octocat"}`, stdhttp.StatusOK, 0},
		{"created", stdhttp.MethodPost, "/v1/make", `{"login":"octocat"}`, stdhttp.StatusCreated, 0},
		{"no content", stdhttp.MethodDelete, "/v1/gone", ``, stdhttp.StatusNoContent, 0},
		{"validation", stdhttp.MethodPost, "/v1/echo", `{"login":"-x-"}`, stdhttp.StatusBadRequest, perr.ErrorCodeValidation},
		{"bad json", stdhttp.MethodPost, "/v1/echo", `{`, stdhttp.StatusBadRequest, perr.ErrorCodeJSON},
		{"not found", stdhttp.MethodGet, "/v1/missing", ``, stdhttp.StatusNotFound, perr.ErrorCodeNotFound},
		{"custom", stdhttp.MethodGet, "/v1/teapot", ``, stdhttp.StatusTeapot, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != c.status {
				t.Fatalf("status = %d want %d body=%s", rec.Code, c.status, rec.Body.String())
			}
			if c.status == stdhttp.StatusNoContent {
				if rec.Body.Len() != 0 {
					t.Fatalf("204 with body %q", rec.Body.String())
				}
				return
			}
			w := decode(t, rec)
			if w.StatusCode != c.status || w.Code != c.code {
				t.Fatalf("wire = %+v", w)
			}
			if c.code == 0 && w.Data == nil {
				t.Fatalf("missing data")
			}
		})
	}
}

func TestResponseHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/v1/teapot", nil))
	if rec.Header().Get("X-Pot") != "1" {
		t.Fatalf("header not copied")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestRespondErrorCarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "req-9"))
	rec := httptest.NewRecorder()
	RespondError(rec, req, perr.Upstreamf("graphql errors"))
	w := decode(t, rec)
	if rec.Code != stdhttp.StatusBadGateway || w.RequestID != "req-9" || w.Error != "graphql errors" {
		t.Fatalf("wire = %+v code=%d", w, rec.Code)
	}
}

func TestServerDefaults(t *testing.T) {
	t.Setenv("SRVTEST_PORT", "8088")
	s := NewServer(configFor("SRVTEST_"))
	if s.Addr() != ":8088" {
		t.Fatalf("addr = %q", s.Addr())
	}
	s.Router().Get("/ping", JSONHandlerNoBody(func(*stdhttp.Request) (any, error) { return "pong", nil }))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/ping", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/nope", nil))
	if w := decode(t, rec); rec.Code != stdhttp.StatusNotFound || w.Error != "no route for GET /nope" {
		t.Fatalf("unmatched = %d %+v", rec.Code, w)
	}
}

func TestMountProfiler(t *testing.T) {
	m := chi.NewRouter()
	MountProfiler(AdaptChi(m), "/debug", false)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler served %d", rec.Code)
	}

	m = chi.NewRouter()
	MountProfiler(AdaptChi(m), "debug", true)
	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("profiler status = %d", rec.Code)
	}
}
