package forecast

import (
	"errors"
	"math"
	"strings"
	"time"

	perr "crimecast/internal/platform/errors"

	"gonum.org/v1/gonum/stat"
)

// DateLayout is what an HTML date input submits
const DateLayout = "2006-01-02"

// ErrEmpty is returned when an aggregate is asked of no values
var ErrEmpty = errors.New("forecast: no values")

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns the UTC day it names
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, perr.InvalidArgf("date is empty")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		var rerr error
		t, rerr = time.Parse(time.RFC3339, s)
		if rerr != nil {
			return time.Time{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "invalid date %q", s)
		}
	}
	return Day(t), nil
}

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days counts the days from start to end inclusive without building them; 0 when end
// is before start. Unix seconds keep it exact past the range of time.Duration
func Days(start, end time.Time) int64 {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return 0
	}
	return (end.Unix()-start.Unix())/86400 + 1
}

// DailyRange is every day from start to end inclusive; empty when end is before start.
// Callers bound the range with Days first
func DailyRange(start, end time.Time) []time.Time {
	n := Days(start, end)
	if n == 0 {
		return nil
	}
	start, end = Day(start), Day(end)
	out := make([]time.Time, 0, n)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Points zips dates and values; lengths must match
func Points(dates []time.Time, values []float64) []Point {
	n := min(len(dates), len(values))
	out := make([]Point, n)
	for i := range n {
		out[i] = Point{Date: dates[i], Value: values[i]}
	}
	return out
}

// Mean is the arithmetic mean of values
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return stat.Mean(values, nil), nil
}

// Round2 rounds half away from zero to two decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Finite reports whether every value is a real number
func Finite(values []float64) bool {
	for _, v := range values {
		if !finite(v) {
			return false
		}
	}
	return true
}
