// Command crimecast-series prints the monthly crime series and fits model artifacts from it
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"crimecast/internal/core/forecast"
	"crimecast/internal/core/series"
	"crimecast/internal/platform/config"
	"crimecast/internal/platform/logger"
	"crimecast/internal/services/api/forecast/repo"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

type options struct {
	csv       string
	fit       string
	models    string
	harmonics int
	nonneg    bool
	quiet     bool
}

func main() {
	if _, err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "crimecast-series:", err)
		os.Exit(1)
	}
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Get().Error().Err(err).Msg("crimecast-series failed")
		os.Exit(1)
	}
}

func parseFlags(args []string, out io.Writer) (options, error) {
	cfg := config.New().Prefix("CRIMECAST_")

	var o options
	fs := flag.NewFlagSet("crimecast-series", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&o.csv, "csv", cfg.MayPath("DATA_CSV", "data/crime_rates.csv"), "crime records CSV")
	fs.StringVar(&o.fit, "fit", "", "fit an additive model and write it to the models dir under this name")
	fs.StringVar(&o.models, "models", cfg.MayPath("MODELS_DIR", "models"), "models directory")
	fs.IntVar(&o.harmonics, "harmonics", 3, "yearly Fourier pairs for -fit")
	fs.BoolVar(&o.nonneg, "nonneg", true, "clamp fitted predictions at zero")
	fs.BoolVar(&o.quiet, "quiet", false, "skip the monthly table")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

func run(args []string, out io.Writer) error {
	o, err := parseFlags(args, out)
	if err != nil {
		return err
	}

	s, rep, err := series.Load(o.csv)
	if err != nil {
		return err
	}
	if !o.quiet {
		if err := printSeries(out, s); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "rows %d, kept %d, dropped %d (null date %d, bad date %d, before %s %d, null type %d)\n",
		rep.Rows, rep.Kept, rep.Dropped(), rep.NullDate, rep.BadDate,
		series.Cutoff.Format(forecast.DateLayout), rep.BeforeCutoff, rep.NullType)

	if o.fit == "" {
		return nil
	}
	path, err := fit(o, s)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", path)
	return nil
}

func printSeries(out io.Writer, s *series.Series) error {
	table := tablewriter.NewWriter(out)
	table.Header([]string{"Month", "Crimes"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, s.Len())
	for _, b := range s.Buckets {
		data = append(data, []string{b.Month.Format("2006-01"), strconv.Itoa(b.Count)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// fit writes an additive artifact named o.fit into o.models and returns its path
func fit(o options, s *series.Series) (string, error) {
	name := repo.Normalize(o.fit)
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	if !repo.Allowed(name) {
		return "", fmt.Errorf("model name %q must be a plain .yaml, .yml or .json file name", name)
	}

	fo := forecast.FitOptions{
		Name:            strings.TrimSuffix(name, filepath.Ext(name)),
		Description:     "fitted from " + filepath.Base(o.csv),
		YearlyHarmonics: o.harmonics,
	}
	if o.nonneg {
		zero := 0.0
		fo.Floor = &zero
	}
	art, err := forecast.Fit(s, fo)
	if err != nil {
		return "", err
	}

	path, err := writeArtifact(o.models, name, art)
	if err != nil {
		return "", err
	}

	logger.Get().Info().
		Str("model", name).
		Int("months", art.Fit.Months).
		Float64("rmse", art.Fit.RMSE).
		Msg("model fitted")
	return path, nil
}

// encodeArtifact is swapped in tests
var encodeArtifact = forecast.Encode

// writeArtifact encodes art into a hidden temp file in dir and renames it into place, so
// the store never lists a half written artifact
func writeArtifact(dir, name string, art forecast.Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := encodeArtifact(tmp, art); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
