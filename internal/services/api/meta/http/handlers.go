// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"strconv"
	"time"

	"crimecast/internal/core/series"
	"crimecast/internal/core/version"
	"crimecast/internal/modkit/httpkit"
	"crimecast/internal/modkit/module"
	"crimecast/internal/modkit/swaggerkit"
)

// Pinger is satisfied by stores that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	History     *series.Series
	Models      Pinger
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/modules", h.modules)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"crimecast-web"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"history"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Detail string `json:"detail,omitempty" example:"168 months"`
	Error  string `json:"error,omitempty" example:"open models: no such file or directory"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"crimecast-web"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ModulesResponse lists the composed modules
type ModulesResponse struct {
	Modules []string `json:"modules" example:"forecast,meta"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe: history loaded and models directory readable
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	hist := ReadyCheck{Name: "history", Status: "skipped"}
	if h.deps.History != nil {
		n := h.deps.History.Len()
		hist.Detail = strconv.Itoa(n) + " months"
		hist.Status = "ok"
		if n == 0 {
			hist.Status = "fail"
			hist.Error = "history has no months"
		}
	}

	models := ReadyCheck{Name: "models", Status: "skipped"}
	if h.deps.Models != nil {
		models.Status = "ok"
		if err := h.deps.Models.Ping(ctx); err != nil {
			models.Status = "fail"
			models.Error = err.Error()
		}
	}

	overall := "ok"
	for _, c := range []ReadyCheck{hist, models} {
		switch {
		case c.Status == "fail":
			overall = "fail"
		case c.Status != "ok" && overall == "ok":
			overall = "degraded"
		}
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{hist, models},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/modules Meta metaModules
// @Summary Registered modules
// @Tags Meta
// @Produce json
// @Success 200 type ModulesResponse ok
// @Router /meta/modules [get]
func (h *handlers) modules(_ *http.Request) (any, error) {
	return ModulesResponse{Modules: module.Names()}, nil
}

// Doc describes the meta endpoints in the served OpenAPI document
func Doc(spec map[string]any) {
	paths := swaggerkit.Paths(spec)
	for _, p := range []struct{ path, summary string }{
		{"/meta/health", "Health check"},
		{"/meta/ready", "Readiness probe: history loaded and models directory readable"},
		{"/meta/version", "Build and version info"},
		{"/meta/service", "Service info and uptime"},
		{"/meta/modules", "Registered modules"},
	} {
		paths[p.path] = map[string]any{
			"get": map[string]any{
				"tags":      []any{"Meta"},
				"summary":   p.summary,
				"responses": map[string]any{"200": map[string]any{"description": "ok"}},
			},
		}
	}
}
