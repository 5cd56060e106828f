package modkit

import (
	"net/http"
	"testing"
)

func TestOptions_Compose(t *testing.T) {
	t.Parallel()

	calls := []string{}
	mw := func(tag string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	type Ports struct{ N int }

	var c buildCfg
	for _, opt := range []Option{
		WithName("forecast"),
		WithPrefix("/"),
		WithMiddlewares(mw("a"), mw("b")),
		WithMiddlewares(mw("c")),
		WithPorts(Ports{N: 7}),
	} {
		opt(&c)
	}

	if c.name != "forecast" || c.prefix != "/" {
		t.Fatalf("unexpected cfg: %+v", c)
	}
	if ps, ok := c.ports.(Ports); !ok || ps.N != 7 {
		t.Fatalf("unexpected ports %#v", c.ports)
	}

	var h http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i := len(c.mw) - 1; i >= 0; i-- {
		h = c.mw[i](h)
	}
	h.ServeHTTP(nil, nil)
	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "c" {
		t.Fatalf("middleware order mismatch: %v", calls)
	}
}
