// Package api composes the web form, the JSON API and the meta endpoints
package api

import (
	"crimecast/internal/platform/logger"
	phttp "crimecast/internal/platform/net/http"

	"crimecast/internal/modkit"
	"crimecast/internal/modkit/module"
	"crimecast/internal/modkit/swaggerkit"

	forecasthttp "crimecast/internal/services/api/forecast/http"
	forecastmod "crimecast/internal/services/api/forecast/module"
	metahttp "crimecast/internal/services/api/meta/http"
	metamod "crimecast/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Deps           modkit.Deps
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts every module onto the given router. Root middleware is the
// caller's concern so the server stack applies to all routes alike
func Mount(r phttp.Router, opt Options) []module.Module {
	deps := opt.Deps

	// forecast owns the model store; meta reports on it through its port
	forecast := forecastmod.New(deps)
	store := module.MustPortsOf[forecastmod.Ports](forecast).Models

	mods := []module.Module{
		forecast,
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Models: store})),
	}

	if opt.EnableSwagger {
		swaggerkit.Reset()
		swaggerkit.Register(forecasthttp.Doc)
		swaggerkit.Register(metahttp.Doc)
	}
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}

	logger.Named("api").Info().
		Strs("modules", module.Names()).
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Msg("routes mounted")
	return mods
}
