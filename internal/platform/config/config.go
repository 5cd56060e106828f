// Package config reads service settings from the environment. Keys are namespaced with
// Prefix, so New().Prefix("CRIMECAST_").MayPath("MODELS_DIR", "models") reads
// CRIMECAST_MODELS_DIR
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"crimecast/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a prefixed view over the process environment
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

// Prefix returns a view whose keys are additionally prefixed with p
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// LoadDotEnv applies KEY=VALUE files (".env" when none given) to the environment and
// returns the files it applied. Set variables are never overwritten and missing files
// are skipped. Nothing is logged, so the logger can be configured from the result
func LoadDotEnv(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	loaded := make([]string, 0, len(files))
	for _, f := range files {
		err := godotenv.Load(f)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return loaded, err
		default:
			loaded = append(loaded, f)
		}
	}
	return loaded, nil
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayPath is MayString followed by filepath.Clean
func (c Conf) MayPath(key, def string) string {
	return filepath.Clean(c.MayString(key, def))
}

func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, strconv.Atoi)
}

func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, strconv.ParseBool)
}

func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// may parses key with parse. Blank means def; a parse failure is logged and also means def
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.key(key)).
			Str("value", s).
			Interface("default", def).
			Msg("unparseable env value, using default")
		return def
	}
	return v
}

// MayCSV splits a comma list, dropping blank items. An empty result means def
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
