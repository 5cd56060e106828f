package module

import "crimecast/internal/services/api/forecast/domain"

// Ports are what other modules may use from forecast
type Ports struct {
	Forecaster domain.ServicePort
	// Models answers readiness for the artifact directory
	Models domain.Pinger
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
