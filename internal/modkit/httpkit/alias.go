// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"html/template"
	"net/http"

	phttp "crimecast/internal/platform/net/http"
	"crimecast/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope
	// Response is the HTTP response type
	Response = phttp.Response
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// Call adapts a handler that takes no body. A returned Response is written as is
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// HTML renders the named template with status
func HTML(w http.ResponseWriter, r *http.Request, status int, t *template.Template, name string, data any) {
	phttp.HTML(w, r, status, t, name, data)
}

// Form binds an urlencoded form into T and validates it
func Form[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	return bind.ParseForm[T](w, r)
}
