package httpkit

import (
	"net/http"

	phttp "crimecast/internal/platform/net/http"
)

// Get registers a no-body handler behind the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON mounts a JSON body handler under POST. mapBind rewrites bind and
// validation errors, e.g. into a module's own error kinds
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), mapBind ...func(error) error) {
	r.Post(path, phttp.JSONHandler(h, mapBind...))
}
