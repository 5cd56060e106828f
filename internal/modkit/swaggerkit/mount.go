// Package swaggerkit serves the OpenAPI document and swagger UI for the JSON API
package swaggerkit

import (
	"net/http"

	phttp "crimecast/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocPath is where the OpenAPI document is served
const DocPath = "/api/docs/doc.json"

// Mount the Swagger UI and JSON spec if enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get(DocPath, serveDocJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("crimecast"),
		httpSwagger.URL(DocPath),
	))
}
