package http

import (
	"net/http"

	"crimecast/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a JSON body into T before calling fn. Bind
// failures answer 400 without reaching fn, after passing through mapBind when
// given; fn errors map through perr
func JSONHandler[T any](fn func(*http.Request, T) (any, error), mapBind ...func(error) error) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			for _, m := range mapBind {
				err = m(err)
			}
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
