// Package modkit provides module wiring and core deps
package modkit

import (
	"io/fs"
	"os"

	"crimecast/internal/core/series"
	"crimecast/internal/platform/config"
	"crimecast/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf

	// History is the monthly series built at start; nil when loading was skipped
	History *series.Series

	// Models is the directory holding forecast artifacts; nil falls back to MODELS_DIR
	Models fs.FS
}

// Logger returns Log or the process logger
func (d Deps) Logger() *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Get()
}

// ModelsFS returns Models, or an os.DirFS rooted at MODELS_DIR (default "models")
func (d Deps) ModelsFS() fs.FS {
	if d.Models != nil {
		return d.Models
	}
	return os.DirFS(d.ModelsDir())
}

// ModelsDir is the configured models directory path
func (d Deps) ModelsDir() string {
	return d.Cfg.MayPath("MODELS_DIR", "models")
}
