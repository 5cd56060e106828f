package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"crimecast/internal/platform/net/middleware"
)

// CommonStack is the root middleware chain shared by the web form and the API
func CommonStack(slow time.Duration) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.LogContext,
		// observability sits outside recover so panics are logged as 500s
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow}),
		middleware.RecoverJSON,
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
	}
}

// APIStack is the chain for /api routes: no caching and CORS for the given origins
func APIStack(origins []string) []func(http.Handler) http.Handler {
	mw := []func(http.Handler) http.Handler{middleware.NoCache()}
	if len(origins) > 0 {
		mw = append(mw, middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}))
	}
	return mw
}
