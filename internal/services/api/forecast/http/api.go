package http

import (
	stdhttp "net/http"

	"crimecast/internal/modkit/httpkit"
	"crimecast/internal/modkit/swaggerkit"
	"crimecast/internal/services/api/forecast/domain"
	svc "crimecast/internal/services/api/forecast/service"
)

// RegisterAPI mounts the JSON endpoints, normally under /api/v1
func RegisterAPI(r httpkit.Router, s svc.Service) {
	h := &apiHandlers{svc: s}

	httpkit.Get(r, "/models", h.models)
	httpkit.PostJSON[domain.Request](r, "/forecast", h.forecast, domain.Invalid)
}

type apiHandlers struct{ svc svc.Service }

// swagger:route GET /api/v1/models Forecast forecastModels
// @Summary Selectable model artifacts
// @Tags Forecast
// @Produce json
// @Success 200 {array} domain.ModelInfo "ok"
// @Router /api/v1/models [get]
func (h *apiHandlers) models(r *stdhttp.Request) (any, error) {
	return h.svc.Models(r.Context())
}

// swagger:route POST /api/v1/forecast Forecast forecastRun
// @Summary Predict daily values over an inclusive date range
// @Tags Forecast
// @Accept json
// @Produce json
// @Param payload body domain.Request true "Forecast request"
// @Success 200 type domain.Forecast "ok"
// @Router /api/v1/forecast [post]
func (h *apiHandlers) forecast(r *stdhttp.Request, in domain.Request) (any, error) {
	return h.svc.Forecast(r.Context(), in)
}

// Doc describes the JSON endpoints in the served OpenAPI document
func Doc(spec map[string]any) {
	ref := func(name string) map[string]any {
		return map[string]any{"$ref": "#/components/schemas/" + name}
	}
	envelope := func(desc string, data map[string]any) map[string]any {
		return map[string]any{
			"description": desc,
			"content": map[string]any{"application/json": map[string]any{"schema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status_code": map[string]any{"type": "integer"},
					"status":      map[string]any{"type": "string"},
					"request_id":  map[string]any{"type": "string"},
					"data":        data,
				},
			}}},
		}
	}
	errResp := func(desc string) map[string]any {
		return map[string]any{
			"description": desc,
			"content":     map[string]any{"application/json": map[string]any{"schema": ref("ErrorResponse")}},
		}
	}

	schemas := swaggerkit.Schemas(spec)
	schemas["ModelInfo"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":     map[string]any{"type": "string", "example": "monthly.yaml"},
			"size":     map[string]any{"type": "integer", "format": "int64"},
			"modified": map[string]any{"type": "string", "format": "date-time"},
		},
	}
	schemas["ForecastRequest"] = map[string]any{
		"type":     "object",
		"required": []any{"model", "start_date", "end_date"},
		"properties": map[string]any{
			"model":      map[string]any{"type": "string", "example": "monthly.yaml"},
			"start_date": map[string]any{"type": "string", "format": "date", "example": "2024-01-01"},
			"end_date":   map[string]any{"type": "string", "format": "date", "example": "2024-01-31"},
		},
	}
	schemas["Forecast"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"run_id": map[string]any{"type": "string", "format": "uuid"},
			"model":  map[string]any{"type": "string"},
			"kind":   map[string]any{"type": "string", "enum": []any{"constant", "additive"}},
			"start":  map[string]any{"type": "string", "format": "date"},
			"end":    map[string]any{"type": "string", "format": "date"},
			"mean":   map[string]any{"type": "number"},
			"points": map[string]any{"type": "array", "items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date":  map[string]any{"type": "string", "format": "date-time"},
					"value": map[string]any{"type": "number"},
				},
			}},
		},
	}

	paths := swaggerkit.Paths(spec)
	paths["/api/v1/models"] = map[string]any{
		"get": map[string]any{
			"tags":    []any{"Forecast"},
			"summary": "Selectable model artifacts",
			"responses": map[string]any{
				"200": envelope("ok", map[string]any{"type": "array", "items": ref("ModelInfo")}),
				"503": errResp("Models directory unreadable"),
			},
		},
	}
	paths["/api/v1/forecast"] = map[string]any{
		"post": map[string]any{
			"tags":    []any{"Forecast"},
			"summary": "Predict daily values over an inclusive date range",
			"requestBody": map[string]any{
				"required": true,
				"content":  map[string]any{"application/json": map[string]any{"schema": ref("ForecastRequest")}},
			},
			"responses": map[string]any{
				"200": envelope("ok", ref("Forecast")),
				"400": errResp("Invalid request"),
				"404": errResp("Model not found"),
				"422": errResp("Corrupt model or invalid date range"),
			},
		},
	}
}
