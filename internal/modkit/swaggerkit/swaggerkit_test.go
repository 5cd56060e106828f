package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "crimecast/internal/platform/net/http"
	kit "crimecast/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestSpec_MutatorsAndDefaults(t *testing.T) {
	kit.Serial(t)
	Reset()
	t.Cleanup(Reset)

	Register(nil)
	Register(func(spec map[string]any) {
		Paths(spec)["/models"] = map[string]any{
			"get": map[string]any{"summary": "List models"},
		}
	})

	spec := Spec()
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	if _, ok := Schemas(spec)["ErrorResponse"]; !ok {
		t.Fatal("missing ErrorResponse schema")
	}
	get := Paths(spec)["/models"].(map[string]any)["get"].(map[string]any)
	if _, ok := get["responses"].(map[string]any)["500"]; !ok {
		t.Fatal("expected default 500 response")
	}
}

func TestMount(t *testing.T) {
	kit.Serial(t)
	Reset()
	t.Cleanup(Reset)

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocPath, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json => %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json not JSON: %v", err)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("/api/docs => %d", rec.Code)
	}

	off := phttp.AdaptChi(chi.NewRouter())
	Mount(off, false)
	rec = httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocPath, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled => %d", rec.Code)
	}
}
