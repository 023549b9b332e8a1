// Package swaggerkit serves the OpenAPI document and Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "github.com/predator4hack/gitscout/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocPath is where the JSON document is served
const DocPath = "/api/docs/doc.json"

// Mount adds /api/docs when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get(DocPath, serveDocJSON(docReader))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("gitscout"),
		httpSwagger.URL(DocPath),
	))
}
