// Package repo is the model artifact catalog backed by a directory
package repo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"

	"crimecast/internal/core/forecast"
	perr "crimecast/internal/platform/errors"
	"crimecast/internal/services/api/forecast/domain"

	"golang.org/x/text/unicode/norm"
)

// Store is the minimal persistence surface for model artifacts
type Store interface {
	List(ctx context.Context) ([]domain.ModelInfo, error)
	Open(ctx context.Context, name string) (forecast.Model, forecast.Artifact, error)
	Ping(ctx context.Context) error
}

// DefaultMaxBytes caps artifact reads
const DefaultMaxBytes = 4 << 20

var extensions = map[string]struct{}{".yaml": {}, ".yml": {}, ".json": {}}

// FS serves artifacts from the top level of a file system. Only regular files
// with a known extension are in the catalog, and Open accepts catalog names only
type FS struct {
	fsys     fs.FS
	maxBytes int64
}

// NewFS wraps fsys; maxBytes <= 0 uses DefaultMaxBytes
func NewFS(fsys fs.FS, maxBytes int64) *FS {
	if fsys == nil {
		panic("forecast repo requires a non nil fs.FS")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &FS{fsys: fsys, maxBytes: maxBytes}
}

// Normalize trims and NFC-normalizes a submitted name
func Normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Allowed reports whether name could be a catalog entry
func Allowed(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return false
	}
	if !fs.ValidPath(name) {
		return false
	}
	_, ok := extensions[strings.ToLower(path.Ext(name))]
	return ok
}

// List reads the catalog fresh; entries are sorted by name
func (s *FS) List(ctx context.Context) ([]domain.ModelInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read models directory")
	}
	out := make([]domain.ModelInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !Allowed(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, domain.ModelInfo{Name: e.Name(), Size: info.Size(), Modified: info.ModTime().UTC()})
	}
	return out, nil
}

// Open loads the named artifact. Names outside the catalog are not found
func (s *FS) Open(ctx context.Context, name string) (forecast.Model, forecast.Artifact, error) {
	name = Normalize(name)
	if !Allowed(name) {
		return nil, forecast.Artifact{}, perr.NotFoundf("model %q not found", name)
	}
	catalog, err := s.List(ctx)
	if err != nil {
		return nil, forecast.Artifact{}, err
	}
	found := false
	for _, m := range catalog {
		if m.Name == name {
			found = true
			break
		}
	}
	if !found {
		return nil, forecast.Artifact{}, perr.NotFoundf("model %q not found", name)
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, forecast.Artifact{}, perr.NotFoundf("model %q not found", name)
		}
		return nil, forecast.Artifact{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open model %q", name)
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(io.LimitReader(f, s.maxBytes+1))
	if err != nil {
		return nil, forecast.Artifact{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read model %q", name)
	}
	if int64(len(raw)) > s.maxBytes {
		return nil, forecast.Artifact{}, perr.Corruptf("model %q exceeds %d bytes", name, s.maxBytes)
	}
	m, a, err := forecast.Load(bytes.NewReader(raw))
	if err != nil {
		return nil, forecast.Artifact{}, perr.WithOp(err, "repo.Open")
	}
	return m, a, nil
}

// Ping succeeds when the directory can be listed
func (s *FS) Ping(ctx context.Context) error {
	_, err := s.List(ctx)
	return err
}
