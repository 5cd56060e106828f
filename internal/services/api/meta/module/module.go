// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"crimecast/internal/core/version"
	modkit "crimecast/internal/modkit"
	"crimecast/internal/modkit/httpkit"

	metahttp "crimecast/internal/services/api/meta/http"
)

// Ports are the dependencies meta reports on, injected with modkit.WithPorts
type Ports struct {
	Models metahttp.Pinger
}

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{deps: deps, built: b, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	var models metahttp.Pinger
	if p, ok := m.built.Ports.(Ports); ok {
		models = p.Models
	}
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   m.startedAt,
			History:     m.deps.History,
			Models:      models,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
