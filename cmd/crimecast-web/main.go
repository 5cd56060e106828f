// @title         crimecast
// @version       0.1.0
// @description   Crime count forecast form and JSON API

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crimecast/internal/core/series"
	"crimecast/internal/core/version"
	"crimecast/internal/modkit"
	"crimecast/internal/modkit/httpkit"
	"crimecast/internal/platform/config"
	"crimecast/internal/platform/logger"
	phttp "crimecast/internal/platform/net/http"
	"crimecast/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	// .env first so LOG_* and CRIMECAST_* from the file apply
	loaded, envErr := config.LoadDotEnv()

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = version.Service
	}
	logger.Init(opt)
	l := logger.Get()
	if envErr != nil {
		l.Panic().Err(envErr).Msg("load .env failed")
	}
	if len(loaded) > 0 {
		l.Debug().Strs("files", loaded).Msg("loaded dotenv")
	}

	cfg := config.New().Prefix("CRIMECAST_")

	// the monthly history is built once; a missing or malformed file is fatal
	csvPath := cfg.MayPath("DATA_CSV", "data/crime_rates.csv")
	hist, rep, err := series.Load(csvPath)
	if err != nil {
		l.Panic().Err(err).Str("csv", csvPath).Msg("series.Load failed")
	}
	first, last, _ := hist.Span()
	l.Info().
		Str("csv", csvPath).
		Int("rows", rep.Rows).
		Int("kept", rep.Kept).
		Int("null_date", rep.NullDate).
		Int("bad_date", rep.BadDate).
		Int("before_cutoff", rep.BeforeCutoff).
		Int("null_type", rep.NullType).
		Int("months", hist.Len()).
		Time("first", first).
		Time("last", last).
		Msg("history loaded")

	srv := phttp.NewServer(cfg, func(m *chi.Mux) {
		m.Use(httpkit.CommonStack(cfg.MayDuration("SLOW_REQUEST", 2*time.Second))...)
	})

	api.Mount(srv.Router(), api.Options{
		Deps: modkit.Deps{
			Log:     l,
			Cfg:     cfg,
			History: hist,
		},
		EnableSwagger:  cfg.MayBool("SWAGGER", false),
		EnableProfiler: cfg.MayBool("PROFILER", false),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
