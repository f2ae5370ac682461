package toolchain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/toolchain"
	"go.trai.ch/forge/internal/core/domain"
)

func TestSynthesize_CExecutable(t *testing.T) {
	s := toolchain.NewSynthesizer()
	target := &domain.Target{
		Name:       "app",
		Kind:       domain.KindExecutable,
		Language:   domain.LanguageC,
		Sources:    []string{"main.c", "util.c"},
		Output:     "build/bin/app",
		BuildFlags: []string{"-Wall"},
	}

	argv, err := s.Synthesize(target, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"cc", "-Wall", "main.c", "util.c", "-o", "build/bin/app"}, argv)
}

func TestSynthesize_CExecutable_Release(t *testing.T) {
	s := toolchain.NewSynthesizer()
	target := &domain.Target{
		Name:     "app",
		Kind:     domain.KindExecutable,
		Language: domain.LanguageC,
		Sources:  []string{"main.c"},
		Output:   "build/bin/app",
	}

	argv, err := s.Synthesize(target, nil, true)
	require.NoError(t, err)
	assert.Contains(t, argv, "-O2")
}

func TestSynthesize_CExecutable_LinksLibraryDeps(t *testing.T) {
	s := toolchain.NewSynthesizer()
	target := &domain.Target{
		Name:     "app",
		Kind:     domain.KindExecutable,
		Language: domain.LanguageC,
		Sources:  []string{"main.c"},
		Output:   "build/bin/app",
	}
	deps := []*domain.Target{
		{Name: "math", Kind: domain.KindStaticLibrary, Output: "build/bin/libmath.a"},
		{Name: "net", Kind: domain.KindDynamicLibrary, Output: "build/bin/libnet.so"},
		{Name: "gen", Kind: domain.KindCustom, Output: "build/gen.h"}, // not linkable
	}

	argv, err := s.Synthesize(target, deps, false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"cc", "main.c", "-o", "build/bin/app",
		"-Lbuild/bin", "-lmath",
		"-Lbuild/bin", "-lnet",
	}, argv)
}

func TestSynthesize_CStaticLibrary(t *testing.T) {
	s := toolchain.NewSynthesizer()
	target := &domain.Target{
		Name:     "math",
		Kind:     domain.KindStaticLibrary,
		Language: domain.LanguageC,
		Sources:  []string{"src/add.c", "src/mul.c"},
		Output:   "build/bin/libmath.a",
	}

	argv, err := s.Synthesize(target, nil, false)
	require.NoError(t, err)
	require.Len(t, argv, 3)
	assert.Equal(t, "sh", argv[0])
	assert.Equal(t, "-c", argv[1])
	assert.Equal(t, "cc -c src/add.c src/mul.c && ar rcs build/bin/libmath.a add.o mul.o", argv[2])
}

func TestSynthesize_CDynamicLibrary(t *testing.T) {
	s := toolchain.NewSynthesizer()
	target := &domain.Target{
		Name:     "net",
		Kind:     domain.KindDynamicLibrary,
		Language: domain.LanguageC,
		Sources:  []string{"net.c"},
		Output:   "build/bin/libnet.so",
	}

	argv, err := s.Synthesize(target, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"cc", "-shared", "-fPIC", "net.c", "-o", "build/bin/libnet.so"}, argv)
}

func TestSynthesize_GoExecutable(t *testing.T) {
	s := toolchain.NewSynthesizer()
	target := &domain.Target{
		Name:     "svc",
		Kind:     domain.KindExecutable,
		Language: domain.LanguageGo,
		Sources:  []string{"cmd/svc/main.go"},
		Output:   "build/bin/svc",
		MainDir:  "cmd/svc",
	}

	argv, err := s.Synthesize(target, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "build", "-o", "build/bin/svc", "./cmd/svc"}, argv)
}

func TestSynthesize_GoRelease(t *testing.T) {
	s := toolchain.NewSynthesizer()
	target := &domain.Target{
		Name:     "svc",
		Kind:     domain.KindExecutable,
		Language: domain.LanguageGo,
		Output:   "build/bin/svc",
		MainDir:  "cmd/svc",
	}

	argv, err := s.Synthesize(target, nil, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "build", "-trimpath", "-ldflags=-s -w", "-o", "build/bin/svc", "./cmd/svc"}, argv)
}

func TestSynthesize_UnsupportedLanguage(t *testing.T) {
	s := toolchain.NewSynthesizer()
	target := &domain.Target{
		Name:     "app",
		Kind:     domain.KindExecutable,
		Language: "fortran",
		Sources:  []string{"a.f90"},
		Output:   "build/bin/app",
	}

	_, err := s.Synthesize(target, nil, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
