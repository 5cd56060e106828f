// Package service contains the forecast workflow
package service

import (
	"context"
	"fmt"

	"crimecast/internal/core/forecast"
	perr "crimecast/internal/platform/errors"
	"crimecast/internal/platform/logger"
	"crimecast/internal/platform/net/http/bind"
	"crimecast/internal/services/api/forecast/domain"
	"crimecast/internal/services/api/forecast/repo"

	"github.com/google/uuid"
)

// Service defines the forecast service contract
type Service interface {
	domain.ServicePort
}

// DefaultMaxDays bounds a single request to roughly ten years of daily points
const DefaultMaxDays = 3660

// Options tune the service
type Options struct {
	// MaxDays caps the inclusive range length; <= 0 uses DefaultMaxDays
	MaxDays int
}

// Svc implements the forecast service
type Svc struct {
	store repo.Store
	opt   Options
	runID func() string
}

// New constructs a forecast service over a model store
func New(store repo.Store, opt Options) *Svc {
	if store == nil {
		panic("forecast.Service requires a non nil model store")
	}
	if opt.MaxDays <= 0 {
		opt.MaxDays = DefaultMaxDays
	}
	return &Svc{store: store, opt: opt, runID: uuid.NewString}
}

// Models lists the selectable artifacts
func (s *Svc) Models(ctx context.Context) ([]domain.ModelInfo, error) {
	return s.store.List(ctx)
}

// Forecast validates the request, loads the model fresh, predicts every day in
// the inclusive range and averages the predictions
func (s *Svc) Forecast(ctx context.Context, in domain.Request) (domain.Forecast, error) {
	runID := s.runID()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx).With().Str("component", "forecast").Str("model", in.Model).Logger()

	out, err := s.run(ctx, runID, in)
	if err != nil {
		kind, _ := domain.KindOf(err)
		log.Warn().Err(err).Str("kind", kind.String()).Msg("forecast failed")
		return domain.Forecast{}, err
	}
	log.Debug().
		Str("start", out.Start).
		Str("end", out.End).
		Int("points", len(out.Points)).
		Float64("mean", out.Mean).
		Msg("forecast done")
	return out, nil
}

func (s *Svc) run(ctx context.Context, runID string, in domain.Request) (domain.Forecast, error) {
	in.Model = repo.Normalize(in.Model)
	if err := bind.Struct(in); err != nil {
		return domain.Forecast{}, domain.Invalid(err)
	}

	model, art, err := s.store.Open(ctx, in.Model)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) || perr.IsCode(err, perr.ErrorCodeUnavailable) {
			return domain.Forecast{}, domain.Fail(domain.KindModelNotFound, "", err)
		}
		return domain.Forecast{}, domain.Fail(domain.KindModelCorrupt, "", err)
	}

	start, err := forecast.ParseDate(in.StartDate)
	if err != nil {
		return domain.Forecast{}, domain.Fail(domain.KindInvalidDateRange, fmt.Sprintf("start date %q is not a date", in.StartDate), err)
	}
	end, err := forecast.ParseDate(in.EndDate)
	if err != nil {
		return domain.Forecast{}, domain.Fail(domain.KindInvalidDateRange, fmt.Sprintf("end date %q is not a date", in.EndDate), err)
	}
	// bound the range before a single date is allocated
	days := forecast.Days(start, end)
	if days == 0 {
		return domain.Forecast{}, domain.Fail(domain.KindInvalidDateRange, "end date is before start date", nil)
	}
	if days > int64(s.opt.MaxDays) {
		return domain.Forecast{}, domain.Fail(domain.KindInvalidDateRange,
			fmt.Sprintf("range spans %d days, at most %d allowed", days, s.opt.MaxDays), nil)
	}
	dates := forecast.DailyRange(start, end)

	values, err := model.Predict(ctx, dates)
	if err != nil {
		return domain.Forecast{}, domain.Fail(domain.KindPredictionError, err.Error(), err)
	}
	if len(values) != len(dates) {
		return domain.Forecast{}, domain.Fail(domain.KindPredictionError,
			fmt.Sprintf("model returned %d values for %d dates", len(values), len(dates)), nil)
	}
	if !forecast.Finite(values) {
		return domain.Forecast{}, domain.Fail(domain.KindPredictionError, "model returned non-finite values", nil)
	}
	mean, err := forecast.Mean(values)
	if err != nil {
		return domain.Forecast{}, domain.Fail(domain.KindPredictionError, err.Error(), err)
	}

	return domain.Forecast{
		RunID:  runID,
		Model:  in.Model,
		Kind:   art.Kind,
		Start:  start.Format(forecast.DateLayout),
		End:    end.Format(forecast.DateLayout),
		Points: forecast.Points(dates, values),
		Mean:   forecast.Round2(mean),
	}, nil
}
