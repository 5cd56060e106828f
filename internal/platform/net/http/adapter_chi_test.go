package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func headerMW(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(name, "1")
			next.ServeHTTP(w, req)
		})
	}
}

func text(body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func TestAdaptChi_RootGroupRouteAndMux(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(headerMW("X-Root"))

	r.Get("/", text("index"))
	r.Post("/", text("posted"))
	r.Handle("/std", stdhttp.HandlerFunc(text("std")))

	r.Group(func(gr Router) {
		gr.Use(headerMW("X-Group"))
		if gr.Mux() == nil {
			t.Fatalf("group Mux() returned nil")
		}
		gr.Get("/g/ping", text("g"))
		gr.Group(func(ng Router) { ng.Get("/g/nested", text("nested")) })
	})

	r.Route("/api", func(sr Router) {
		sr.Use(headerMW("X-Route"))
		sr.Route("/v1", func(nr Router) { nr.Get("/ok", text("v1ok")) })
	})

	do := func(method, path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
		return rr
	}

	cases := []struct {
		method, path, body string
		headers            []string
	}{
		{stdhttp.MethodGet, "/", "index", []string{"X-Root"}},
		{stdhttp.MethodPost, "/", "posted", []string{"X-Root"}},
		{stdhttp.MethodGet, "/std", "std", []string{"X-Root"}},
		{stdhttp.MethodGet, "/g/ping", "g", []string{"X-Root", "X-Group"}},
		{stdhttp.MethodGet, "/g/nested", "nested", []string{"X-Root", "X-Group"}},
		{stdhttp.MethodGet, "/api/v1/ok", "v1ok", []string{"X-Root", "X-Route"}},
	}
	for _, c := range cases {
		rr := do(c.method, c.path)
		if rr.Code != 200 || rr.Body.String() != c.body {
			t.Fatalf("%s %s => code=%d body=%q", c.method, c.path, rr.Code, rr.Body.String())
		}
		for _, h := range c.headers {
			if rr.Header().Get(h) != "1" {
				t.Fatalf("%s %s: header %s missing", c.method, c.path, h)
			}
		}
	}

	if rr := do(stdhttp.MethodGet, "/g/ping"); rr.Header().Get("X-Route") != "" {
		t.Fatalf("route middleware leaked into group")
	}
}
