package toolchain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// synthesizeC builds a cc invocation for the target. Library dependencies
// contribute -L/-l pairs derived from their output artifacts.
func synthesizeC(target *domain.Target, deps []*domain.Target, release bool) ([]string, error) {
	if len(target.Sources) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "target has no sources"), "target", target.Name)
	}

	flags := append([]string{}, target.BuildFlags...)
	if release {
		flags = append(flags, "-O2")
	}

	switch target.Kind {
	case domain.KindExecutable:
		argv := append([]string{"cc"}, flags...)
		argv = append(argv, target.Sources...)
		argv = append(argv, "-o", target.Output)
		return append(argv, linkFlags(deps)...), nil

	case domain.KindDynamicLibrary:
		argv := append([]string{"cc", "-shared", "-fPIC"}, flags...)
		argv = append(argv, target.Sources...)
		return append(argv, "-o", target.Output), nil

	case domain.KindStaticLibrary:
		// Archives need a compile step before ar; both run as one shell line
		// to honor the single-argv contract.
		compile := append([]string{"cc", "-c"}, flags...)
		compile = append(compile, target.Sources...)

		archive := []string{"ar", "rcs", target.Output}
		archive = append(archive, objectFiles(target.Sources)...)

		line := shellJoin(compile) + " && " + shellJoin(archive)
		return []string{"sh", "-c", line}, nil

	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "kind has no synthesized command"), "kind", string(target.Kind))
	}
}

// linkFlags derives -L/-l pairs from the outputs of library dependencies.
func linkFlags(deps []*domain.Target) []string {
	var flags []string
	for _, dep := range deps {
		if !dep.Kind.IsLibrary() || dep.Output == "" {
			continue
		}
		flags = append(flags, "-L"+filepath.Dir(dep.Output), "-l"+libraryName(dep.Output))
	}
	return flags
}

// libraryName turns build/bin/libfoo.a (or .so) into foo.
func libraryName(output string) string {
	base := filepath.Base(output)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimPrefix(base, "lib")
}

func objectFiles(sources []string) []string {
	objs := make([]string, len(sources))
	for i, src := range sources {
		base := filepath.Base(src)
		objs[i] = strings.TrimSuffix(base, filepath.Ext(base)) + ".o"
	}
	return objs
}

func shellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n'\"\\$&|;<>()*?[]#~") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
