// Package forecast holds the forecast model capability, its artifact codec and
// the date and aggregate helpers used around a prediction
package forecast

import (
	"context"
	"math"
	"time"
)

// Model predicts one value per target date
type Model interface {
	Predict(ctx context.Context, dates []time.Time) ([]float64, error)
}

// Point is one predicted day
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Constant predicts the same value for every date
type Constant struct {
	Value float64
}

// Predict implements Model
func (c Constant) Predict(ctx context.Context, dates []time.Time) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]float64, len(dates))
	for i := range out {
		out[i] = c.Value
	}
	return out, nil
}

const (
	yearDays = 365.25
	weekDays = 7.0
)

// Additive is a trend plus seasonal model:
// intercept + slope*t + sum_k yearly_k(t) + sum_k weekly_k(t), t in days since Origin.
// A non-nil Floor clamps predictions from below
type Additive struct {
	Origin    time.Time
	Intercept float64
	Slope     float64
	Yearly    []Harmonic
	Weekly    []Harmonic
	Floor     *float64
}

// Harmonic is the k-th Fourier pair of a seasonal component, k is its 1-based position
type Harmonic struct {
	Sin float64 `yaml:"sin" json:"sin"`
	Cos float64 `yaml:"cos" json:"cos"`
}

// Predict implements Model
func (a Additive) Predict(ctx context.Context, dates []time.Time) ([]float64, error) {
	out := make([]float64, len(dates))
	for i, d := range dates {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		t := daysSince(a.Origin, d)
		v := a.Intercept + a.Slope*t + seasonal(a.Yearly, t, yearDays) + seasonal(a.Weekly, t, weekDays)
		if a.Floor != nil && v < *a.Floor {
			v = *a.Floor
		}
		out[i] = v
	}
	return out, nil
}

func daysSince(origin, d time.Time) float64 {
	return d.Sub(origin).Hours() / 24
}

func seasonal(hs []Harmonic, t, period float64) float64 {
	var s float64
	for k, h := range hs {
		x := 2 * math.Pi * float64(k+1) * t / period
		s += h.Sin*math.Sin(x) + h.Cos*math.Cos(x)
	}
	return s
}

// fourier writes the n sin/cos regressors for t into row starting at col
func fourier(row []float64, col, n int, t, period float64) {
	for k := 1; k <= n; k++ {
		x := 2 * math.Pi * float64(k) * t / period
		row[col] = math.Sin(x)
		row[col+1] = math.Cos(x)
		col += 2
	}
}
