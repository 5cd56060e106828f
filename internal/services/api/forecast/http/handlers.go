// Package http provides the forecast form and JSON transport
package http

import (
	"embed"
	"html/template"
	stdhttp "net/http"

	"crimecast/internal/core/chart"
	"crimecast/internal/core/forecast"
	perr "crimecast/internal/platform/errors"
	"crimecast/internal/platform/logger"

	"crimecast/internal/modkit/httpkit"
	"crimecast/internal/services/api/forecast/domain"
	svc "crimecast/internal/services/api/forecast/service"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "templates/*.html"))

// DefaultPlotlyURL is the plotly.js bundle the result page loads
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// renderChart is a seam for tests
var renderChart = func(points []forecast.Point) (template.HTML, error) {
	return chart.Div(chart.Line(points))
}

// Deps are the form handler dependencies
type Deps struct {
	Svc       svc.Service
	PlotlyURL string
}

type indexView struct {
	Models []domain.ModelInfo
	Error  string
	Values domain.Request
}

type resultView struct {
	Plot      template.HTML
	Avg       float64
	Forecast  domain.Forecast
	PlotlyURL string
}

type handlers struct {
	svc       svc.Service
	plotlyURL string
}

// Register mounts the form routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{svc: d.Svc, plotlyURL: d.PlotlyURL}
	if h.plotlyURL == "" {
		h.plotlyURL = DefaultPlotlyURL
	}

	r.Get("/", h.index)
	r.Post("/", h.submit)
}

// index always shows a clean form
func (h *handlers) index(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	h.renderIndex(w, r, stdhttp.StatusOK, domain.Request{}, "")
}

func (h *handlers) submit(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := httpkit.Form[domain.Request](w, r)
	if err != nil {
		h.fail(w, r, submitted(r), domain.Invalid(err))
		return
	}

	out, err := h.svc.Forecast(r.Context(), in)
	if err != nil {
		h.fail(w, r, in, err)
		return
	}

	// a chart failure goes back to the form, not the result page
	plot, err := renderChart(out.Points)
	if err != nil {
		h.fail(w, r, in, domain.Fail(domain.KindPredictionError, err.Error(), err))
		return
	}

	httpkit.HTML(w, r, stdhttp.StatusOK, pages, "result.html", resultView{
		Plot:      plot,
		Avg:       out.Mean,
		Forecast:  out,
		PlotlyURL: h.plotlyURL,
	})
}

func (h *handlers) fail(w stdhttp.ResponseWriter, r *stdhttp.Request, in domain.Request, err error) {
	logger.C(r.Context()).Debug().Err(err).Msg("forecast form rejected")
	h.renderIndex(w, r, perr.HTTPStatus(err), in, domain.UserMessage(err))
}

func (h *handlers) renderIndex(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, in domain.Request, msg string) {
	models, err := h.svc.Models(r.Context())
	if err != nil {
		logger.C(r.Context()).Warn().Err(err).Msg("listing models failed")
		models = nil
	}
	httpkit.HTML(w, r, status, pages, "index.html", indexView{Models: models, Error: msg, Values: in})
}

// submitted echoes raw form values back after a binding failure
func submitted(r *stdhttp.Request) domain.Request {
	return domain.Request{
		Model:     r.PostFormValue("model"),
		StartDate: r.PostFormValue("start_date"),
		EndDate:   r.PostFormValue("end_date"),
	}
}
