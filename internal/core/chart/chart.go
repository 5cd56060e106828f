// Package chart renders forecast points as an embeddable plotly line chart
package chart

import (
	"bytes"
	"encoding/json"
	"html/template"

	"crimecast/internal/core/forecast"
	perr "crimecast/internal/platform/errors"

	"github.com/google/uuid"
)

const (
	// Title is the chart heading
	Title = "Crime Count Forecast"
	// XTitle labels the date axis
	XTitle = "Date"
	// YTitle labels the value axis
	YTitle = "Predicted Crimes"
	// TraceName names the prediction series in the legend
	TraceName = "Prediction"
)

// Figure is the plotly data and layout pair
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one plotted series
type Trace struct {
	Type string    `json:"type"`
	Mode string    `json:"mode"`
	Name string    `json:"name"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
}

// Layout holds titles
type Layout struct {
	Title Text `json:"title"`
	XAxis Axis `json:"xaxis"`
	YAxis Axis `json:"yaxis"`
}

// Axis holds an axis title
type Axis struct {
	Title Text `json:"title"`
}

// Text is a plotly title object
type Text struct {
	Text string `json:"text"`
}

// Line builds a lines+markers figure with one point per day
func Line(points []forecast.Point) Figure {
	tr := Trace{
		Type: "scatter",
		Mode: "lines+markers",
		Name: TraceName,
		X:    make([]string, len(points)),
		Y:    make([]float64, len(points)),
	}
	for i, p := range points {
		tr.X[i] = p.Date.Format(forecast.DateLayout)
		tr.Y[i] = p.Value
	}
	return Figure{
		Data: []Trace{tr},
		Layout: Layout{
			Title: Text{Text: Title},
			XAxis: Axis{Title: Text{Text: XTitle}},
			YAxis: Axis{Title: Text{Text: YTitle}},
		},
	}
}

// newID names the plot element
var newID = uuid.NewString

var divTmpl = template.Must(template.New("div").Parse(
	`<div id="{{.ID}}" class="plotly-graph-div" style="height:100%; width:100%;"></div>` +
		`<script type="text/javascript">` +
		`window.PLOTLYENV=window.PLOTLYENV || {};` +
		`if (document.getElementById("{{.ID}}")) {` +
		`var fig = {{.Figure}};` +
		`Plotly.newPlot("{{.ID}}", fig.data, fig.layout, {"responsive": true});}` +
		`</script>`))

// Div renders the figure as a div plus script that expects plotly.js on the page
func Div(f Figure) (template.HTML, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeModel, "encode chart")
	}
	var buf bytes.Buffer
	err = divTmpl.Execute(&buf, struct {
		ID     string
		Figure template.JS
	}{ID: newID(), Figure: template.JS(raw)})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeModel, "render chart")
	}
	return template.HTML(buf.String()), nil
}
