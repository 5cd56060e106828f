package forecast

import (
	"math"
	"time"

	"crimecast/internal/core/series"
	perr "crimecast/internal/platform/errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FitOptions shape the additive model fitted from a series
type FitOptions struct {
	Name        string
	Description string
	// YearlyHarmonics is the number of yearly Fourier pairs; 0 means the default of 3
	YearlyHarmonics int
	// WeeklyHarmonics adds weekly pairs; only meaningful on sub-monthly history
	WeeklyHarmonics int
	// Floor clamps predictions from below when set
	Floor *float64
}

// FitStats describe the training run stored alongside the coefficients
type FitStats struct {
	Months  int       `yaml:"months" json:"months"`
	First   string    `yaml:"first" json:"first"`
	Last    string    `yaml:"last" json:"last"`
	RMSE    float64   `yaml:"rmse" json:"rmse"`
	Trained time.Time `yaml:"trained" json:"trained"`
}

const defaultYearly = 3

// Fit estimates an additive model from monthly history by ordinary least squares
func Fit(s *series.Series, opt FitOptions) (Artifact, error) {
	yearly := opt.YearlyHarmonics
	if yearly == 0 {
		yearly = defaultYearly
	}
	if yearly < 0 || opt.WeeklyHarmonics < 0 {
		return Artifact{}, perr.InvalidArgf("harmonics must not be negative")
	}

	first, last, ok := s.Span()
	if !ok {
		return Artifact{}, perr.InvalidArgf("series is empty")
	}
	cols := 2 + 2*yearly + 2*opt.WeeklyHarmonics
	rows := s.Len()
	if rows < cols {
		return Artifact{}, perr.InvalidArgf("need at least %d months to fit %d coefficients, have %d", cols, cols, rows)
	}

	x := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)
	row := make([]float64, cols)
	for i, b := range s.Buckets {
		t := daysSince(first, b.Month)
		row[0], row[1] = 1, t
		fourier(row, 2, yearly, t, yearDays)
		fourier(row, 2+2*yearly, opt.WeeklyHarmonics, t, weekDays)
		x.SetRow(i, row)
		y.SetVec(i, float64(b.Count))
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return Artifact{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "least squares")
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	sq := make([]float64, rows)
	for i := range sq {
		r := y.AtVec(i) - fitted.AtVec(i)
		sq[i] = r * r
	}

	p := &AdditiveParams{
		Origin:    first.Format(DateLayout),
		Intercept: beta.AtVec(0),
		Slope:     beta.AtVec(1),
		Yearly:    harmonics(&beta, 2, yearly),
		Weekly:    harmonics(&beta, 2+2*yearly, opt.WeeklyHarmonics),
		Floor:     opt.Floor,
	}
	return Artifact{
		Kind:        KindAdditive,
		Name:        opt.Name,
		Description: opt.Description,
		Additive:    p,
		Fit: &FitStats{
			Months:  rows,
			First:   first.Format(DateLayout),
			Last:    last.Format(DateLayout),
			RMSE:    math.Sqrt(stat.Mean(sq, nil)),
			Trained: time.Now().UTC().Truncate(time.Second),
		},
	}, nil
}

func harmonics(beta *mat.VecDense, col, n int) []Harmonic {
	if n == 0 {
		return nil
	}
	out := make([]Harmonic, n)
	for k := range out {
		out[k] = Harmonic{Sin: beta.AtVec(col + 2*k), Cos: beta.AtVec(col + 2*k + 1)}
	}
	return out
}
