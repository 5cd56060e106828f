package service

import (
	"context"
	"errors"
	"math"
	"runtime"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"crimecast/internal/core/forecast"
	perr "crimecast/internal/platform/errors"
	kit "crimecast/internal/platform/testkit"
	"crimecast/internal/services/api/forecast/domain"
	"crimecast/internal/services/api/forecast/repo"
)

type modelFunc func(ctx context.Context, dates []time.Time) ([]float64, error)

func (f modelFunc) Predict(ctx context.Context, dates []time.Time) ([]float64, error) {
	return f(ctx, dates)
}

// fakeStore serves in-memory models by name
type fakeStore struct {
	models map[string]forecast.Model
	err    error
}

func (f fakeStore) List(context.Context) ([]domain.ModelInfo, error) {
	out := make([]domain.ModelInfo, 0, len(f.models))
	for name := range f.models {
		out = append(out, domain.ModelInfo{Name: name})
	}
	return out, f.err
}

func (f fakeStore) Open(_ context.Context, name string) (forecast.Model, forecast.Artifact, error) {
	if f.err != nil {
		return nil, forecast.Artifact{}, f.err
	}
	m, ok := f.models[name]
	if !ok {
		return nil, forecast.Artifact{}, perr.NotFoundf("model %q not found", name)
	}
	return m, forecast.Artifact{Kind: "test"}, nil
}

func (f fakeStore) Ping(context.Context) error { return f.err }

func newSvc(t *testing.T, store repo.Store) *Svc {
	t.Helper()
	s := New(store, Options{})
	s.runID = func() string { return "run-1" }
	return s
}

func req(model, start, end string) domain.Request {
	return domain.Request{Model: model, StartDate: start, EndDate: end}
}

func wantKind(t *testing.T, err error, k domain.Kind) {
	t.Helper()
	got, ok := domain.KindOf(err)
	if !ok || got != k {
		t.Fatalf("kind = %v (%v) want %v; err = %v", got, ok, k, err)
	}
}

func TestForecast_ConstantMean(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"flat.yaml": {Data: []byte("kind: constant\nconstant:\n  value: 17.456\n")}}
	s := newSvc(t, repo.NewFS(fsys, 0))

	out, err := s.Forecast(context.Background(), req("flat.yaml", "2020-01-01", "2020-01-03"))
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(out.Points) != 3 || out.Mean != 17.46 {
		t.Fatalf("points=%d mean=%v", len(out.Points), out.Mean)
	}
	if out.RunID != "run-1" || out.Kind != forecast.KindConstant || out.Start != "2020-01-01" || out.End != "2020-01-03" {
		t.Fatalf("forecast = %+v", out)
	}
	if !out.Points[2].Date.Equal(time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("last point = %v", out.Points[2].Date)
	}
}

func TestForecast_ModelLoadFailures(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"broken.yaml": {Data: []byte("kind: mystery\n")}}
	s := newSvc(t, repo.NewFS(fsys, 0))
	ctx := context.Background()

	_, err := s.Forecast(ctx, req("missing.yaml", "2020-01-01", "2020-01-03"))
	wantKind(t, err, domain.KindModelNotFound)
	if domain.UserMessage(err) != "Failed to load the selected model." {
		t.Fatalf("message = %q", domain.UserMessage(err))
	}

	_, err = s.Forecast(ctx, req("broken.yaml", "2020-01-01", "2020-01-03"))
	wantKind(t, err, domain.KindModelCorrupt)
	if domain.UserMessage(err) != "Failed to load the selected model." {
		t.Fatalf("message = %q", domain.UserMessage(err))
	}

	_, err = s.Forecast(ctx, req("../etc/passwd", "2020-01-01", "2020-01-03"))
	wantKind(t, err, domain.KindModelNotFound)

	down := newSvc(t, fakeStore{err: perr.Unavailablef("models dir gone")})
	_, err = down.Forecast(ctx, req("x.yaml", "2020-01-01", "2020-01-03"))
	wantKind(t, err, domain.KindModelNotFound)
}

func TestForecast_ModelLoadsBeforeRangeCheck(t *testing.T) {
	t.Parallel()

	s := newSvc(t, fakeStore{models: map[string]forecast.Model{}})
	_, err := s.Forecast(context.Background(), req("missing.yaml", "2020-01-03", "2020-01-01"))
	wantKind(t, err, domain.KindModelNotFound)
}

func TestForecast_RequestAndRange(t *testing.T) {
	t.Parallel()

	s := newSvc(t, fakeStore{models: map[string]forecast.Model{"m.yaml": forecast.Constant{Value: 1}}})
	s.opt.MaxDays = 31
	ctx := context.Background()

	_, err := s.Forecast(ctx, req("", "2020-01-01", "2020-01-03"))
	wantKind(t, err, domain.KindInvalidRequest)
	if e, _ := perr.As(err); e.Field() != "model" || !strings.HasPrefix(e.Message(), "Invalid request: ") {
		t.Fatalf("field=%q msg=%q", e.Field(), e.Message())
	}

	_, err = s.Forecast(ctx, req("m.yaml", "2020-01-01", ""))
	wantKind(t, err, domain.KindInvalidRequest)

	_, err = s.Forecast(ctx, req("m.yaml", "2020-01-03", "2020-01-01"))
	wantKind(t, err, domain.KindInvalidDateRange)
	if domain.UserMessage(err) != "Invalid date range: end date is before start date" {
		t.Fatalf("message = %q", domain.UserMessage(err))
	}

	_, err = s.Forecast(ctx, req("m.yaml", "01/03/2020", "2020-01-05"))
	wantKind(t, err, domain.KindInvalidDateRange)

	_, err = s.Forecast(ctx, req("m.yaml", "2020-01-01", "2020-03-01"))
	wantKind(t, err, domain.KindInvalidDateRange)

	out, err := s.Forecast(ctx, req("m.yaml", "2020-01-05", "2020-01-05"))
	if err != nil || len(out.Points) != 1 {
		t.Fatalf("single day = %+v, %v", out, err)
	}
}

// not parallel: the allocation delta is process wide
func TestForecast_HugeRangeRejectedBeforeBuildingDates(t *testing.T) {
	never := modelFunc(func(context.Context, []time.Time) ([]float64, error) {
		t.Fatal("model must not run for an oversized range")
		return nil, nil
	})
	s := newSvc(t, fakeStore{models: map[string]forecast.Model{"m.yaml": never}})

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := s.Forecast(context.Background(), req("m.yaml", "0001-01-01", "9999-12-31"))
	runtime.ReadMemStats(&after)

	wantKind(t, err, domain.KindInvalidDateRange)
	kit.MustContain(t, domain.UserMessage(err), "range spans 3652059 days, at most 3660 allowed")
	if grew := after.TotalAlloc - before.TotalAlloc; grew > 1<<20 {
		t.Fatalf("rejecting the range allocated %d bytes", grew)
	}
}

func TestForecast_PredictionFailures(t *testing.T) {
	t.Parallel()

	models := map[string]forecast.Model{
		"err.yaml": modelFunc(func(context.Context, []time.Time) ([]float64, error) {
			return nil, errors.New("boom")
		}),
		"short.yaml": modelFunc(func(_ context.Context, d []time.Time) ([]float64, error) {
			return make([]float64, len(d)-1), nil
		}),
		"nan.yaml": modelFunc(func(_ context.Context, d []time.Time) ([]float64, error) {
			out := make([]float64, len(d))
			out[0] = math.NaN()
			return out, nil
		}),
	}
	s := newSvc(t, fakeStore{models: models})

	for name := range models {
		_, err := s.Forecast(context.Background(), req(name, "2020-01-01", "2020-01-03"))
		wantKind(t, err, domain.KindPredictionError)
		if !strings.HasPrefix(domain.UserMessage(err), "Prediction failed: ") {
			t.Fatalf("%s: message = %q", name, domain.UserMessage(err))
		}
	}
	_, err := s.Forecast(context.Background(), req("err.yaml", "2020-01-01", "2020-01-03"))
	if domain.UserMessage(err) != "Prediction failed: boom" {
		t.Fatalf("message = %q", domain.UserMessage(err))
	}
}

func TestModelsAndNew(t *testing.T) {
	t.Parallel()

	s := New(fakeStore{models: map[string]forecast.Model{"a.yaml": forecast.Constant{}}}, Options{})
	got, err := s.Models(context.Background())
	if err != nil || len(got) != 1 || got[0].Name != "a.yaml" {
		t.Fatalf("Models = %v, %v", got, err)
	}
	if s.opt.MaxDays != DefaultMaxDays {
		t.Fatalf("MaxDays = %d", s.opt.MaxDays)
	}
	if s.runID() == s.runID() {
		t.Fatal("run ids should be unique")
	}
	kit.MustPanic(t, func() { New(nil, Options{}) })
}
