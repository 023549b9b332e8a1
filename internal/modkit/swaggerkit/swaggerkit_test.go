package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "github.com/predator4hack/gitscout/internal/platform/net/http"
	"github.com/predator4hack/gitscout/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMountDisabled(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), false)
	if rec := get(t, mux, DocPath); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs served %d", rec.Code)
	}
}

func TestDocJSON(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string {
		return `{"openapi":"3.1.0","info":{"title":"gitscout"},"paths":{"/search":{"post":{"responses":{"200":{"description":"OK"},"400":{"description":"custom"}}}}}}`
	})
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)

	rec := get(t, mux, DocPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatal(err)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	responses := spec["paths"].(map[string]any)["/search"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	if responses["400"].(map[string]any)["description"] != "custom" {
		t.Fatalf("existing 400 overwritten")
	}
	if responses["500"].(map[string]any)["description"] != "Internal Server Error" {
		t.Fatalf("500 not added: %v", responses["500"])
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatalf("error schema missing")
	}

	if rec := get(t, mux, "/api/docs"); rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect = %d", rec.Code)
	}
}

func TestDocJSONParseError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string { return "{" })
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)
	if rec := get(t, mux, DocPath); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestGeneratedDocParses(t *testing.T) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		t.Fatalf("generated doc: %v", err)
	}
	if _, ok := spec["paths"].(map[string]any)["/search"]; !ok {
		t.Fatalf("search path missing")
	}
}
