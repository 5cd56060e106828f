package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Forecast(ctx context.Context, in Request) (Forecast, error)
	Models(ctx context.Context) ([]ModelInfo, error)
}

// Pinger reports whether a backing store can be read
type Pinger interface {
	Ping(ctx context.Context) error
}
