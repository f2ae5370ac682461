package toolchain

import (
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// synthesizeGo builds a go invocation. The go toolchain compiles directory
// modules, so the target's main directory is built rather than the
// individual source files.
func synthesizeGo(target *domain.Target, release bool) ([]string, error) {
	if target.MainDir == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "go target has no main directory"), "target", target.Name)
	}

	argv := []string{"go", "build"}

	switch target.Kind {
	case domain.KindExecutable:
	case domain.KindStaticLibrary:
		argv = append(argv, "-buildmode=c-archive")
	case domain.KindDynamicLibrary:
		argv = append(argv, "-buildmode=c-shared")
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "kind has no synthesized command"), "kind", string(target.Kind))
	}

	argv = append(argv, target.BuildFlags...)
	if release {
		argv = append(argv, "-trimpath", "-ldflags=-s -w")
	}
	pkg := target.MainDir
	if !filepath.IsAbs(pkg) {
		// Relative package paths need the ./ prefix or go build treats them
		// as import paths.
		pkg = "./" + pkg
	}
	return append(argv, "-o", target.Output, pkg), nil
}
