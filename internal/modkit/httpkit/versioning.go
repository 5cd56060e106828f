package httpkit

import "net/http"

// MountAPIV1 opens /api/v1, applies mw to that subtree only and lets mount
// register the versioned routes
//
//	httpkit.MountAPIV1(r, httpkit.APIStack(origins), func(api httpkit.Router) {
//	  forecasthttp.RegisterAPI(api, svc)
//	})
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
