// Package domain holds DTOs and error kinds shared by forecast transport and service
package domain

import (
	"time"

	"crimecast/internal/core/forecast"
)

// Request is what the form and the JSON API submit. Dates are YYYY-MM-DD
type Request struct {
	Model     string `form:"model" json:"model" validate:"required,max=255" example:"monthly.yaml"`
	StartDate string `form:"start_date" json:"start_date" validate:"required" example:"2024-01-01"`
	EndDate   string `form:"end_date" json:"end_date" validate:"required" example:"2024-01-31"`
}

// Forecast is one completed prediction run
type Forecast struct {
	RunID  string           `json:"run_id" example:"8a7f3c1e-2b0d-4c55-9d1a-0f6f5b2f9e11"`
	Model  string           `json:"model" example:"monthly.yaml"`
	Kind   forecast.Kind    `json:"kind" example:"additive"`
	Start  string           `json:"start" example:"2024-01-01"`
	End    string           `json:"end" example:"2024-01-31"`
	Points []forecast.Point `json:"points"`
	// Mean is rounded to two decimals
	Mean float64 `json:"mean" example:"812.44"`
}

// ModelInfo is one selectable artifact
type ModelInfo struct {
	Name     string    `json:"name" example:"monthly.yaml"`
	Size     int64     `json:"size" example:"412"`
	Modified time.Time `json:"modified" example:"2025-01-01T00:00:00Z"`
}
