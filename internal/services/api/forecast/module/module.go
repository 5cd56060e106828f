// Package module wires the forecast form and API using modkit
package module

import (
	modkit "crimecast/internal/modkit"
	"crimecast/internal/modkit/httpkit"
	forecasthttp "crimecast/internal/services/api/forecast/http"
	forecastrepo "crimecast/internal/services/api/forecast/repo"
	forecastsvc "crimecast/internal/services/api/forecast/service"
)

// Module implements the forecast module. The form lives at the root and the
// JSON API under /api/v1
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports Ports

	svc       forecastsvc.Service
	plotlyURL string
	origins   []string
}

// New constructs the forecast module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("forecast"), modkit.WithPrefix("/")}, opts...)...)

	store := forecastrepo.NewFS(deps.ModelsFS(), int64(deps.Cfg.MayInt("MODEL_MAX_BYTES", forecastrepo.DefaultMaxBytes)))
	svc := forecastsvc.New(store, forecastsvc.Options{
		MaxDays: deps.Cfg.MayInt("MAX_RANGE_DAYS", forecastsvc.DefaultMaxDays),
	})

	m := &Module{
		deps:      deps,
		built:     b,
		svc:       svc,
		plotlyURL: deps.Cfg.MayString("PLOTLY_URL", forecasthttp.DefaultPlotlyURL),
		origins:   deps.Cfg.MayCSV("CORS_ORIGINS", nil),
	}
	m.ports = Ports{Forecaster: svc, Models: store}

	deps.Logger().Debug().
		Str("module", b.Name).
		Str("models_dir", deps.ModelsDir()).
		Msg("forecast module ready")
	return m
}

// MountRoutes mounts the form and the versioned API
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		forecasthttp.Register(rr, forecasthttp.Deps{Svc: m.svc, PlotlyURL: m.plotlyURL})
		httpkit.MountAPIV1(rr, httpkit.APIStack(m.origins), func(api httpkit.Router) {
			forecasthttp.RegisterAPI(api, m.svc)
		})
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }
