package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "crimecast/internal/platform/errors"
	"crimecast/internal/platform/logger"
	pnet "crimecast/internal/platform/net"
	phttp "crimecast/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 envelope and logs the stack with request id.
// Browsers asking for HTML get a plain text 500 instead
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())

			stack := strings.Join(strings.Split(string(debug.Stack()), "\n"), "\n\t")
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Msgf("panic recovered\n%s", stack)

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			if strings.Contains(r.Header.Get("Accept"), "text/html") {
				stdhttp.Error(w, stdhttp.StatusText(stdhttp.StatusInternalServerError), stdhttp.StatusInternalServerError)
				return
			}
			status, env := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			phttp.JSON(w, status, env)
		}()
		next.ServeHTTP(w, r)
	})
}
