package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceResolver = (*Resolver)(nil)

// Resolver locates declared source files: first relative to the working
// directory, then in each directory of the include path list. The include
// list is read from FORGE_INCLUDE (path-separator-delimited) on every call,
// after any .env loading has happened.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the concrete path of a declared source file.
// A miss is an ErrResolution carrying the searched name.
func (r *Resolver) Resolve(source, cwd string) (string, error) {
	if filepath.IsAbs(source) {
		if fileExists(source) {
			return source, nil
		}
		return "", zerr.With(domain.ErrResolution, "source", source)
	}

	candidate := filepath.Join(cwd, source)
	if fileExists(candidate) {
		return candidate, nil
	}

	for _, dir := range filepath.SplitList(os.Getenv(domain.IncludeEnvVar)) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, source)
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	return "", zerr.With(domain.ErrResolution, "source", source)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
