package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
)

func writeProject(t *testing.T, forgefile string, sources ...string) string {
	t.Helper()
	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, domain.ConfigFileName), []byte(forgefile), 0o644))
	for _, src := range sources {
		path := filepath.Join(cwd, src)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// "+src+"\n"), 0o644))
	}
	return cwd
}

func TestLoad_Success(t *testing.T) {
	cwd := writeProject(t, `
version: "1"
language: c
builddir: out
targets:
  mathlib:
    kind: static-library
    sources: [src/add.c]
  app:
    kind: executable
    sources: [src/main.c]
    dependson: [mathlib]
    flags: [-Wall]
`, "src/add.c", "src/main.c")

	loader := config.NewLoader(fs.NewResolver())
	session, err := loader.Load(cwd)
	require.NoError(t, err)
	require.Equal(t, 2, session.Len())
	assert.Equal(t, "out", session.BuildDir())

	app, ok := session.Lookup("app")
	require.True(t, ok)
	assert.Equal(t, domain.KindExecutable, app.Kind)
	assert.Equal(t, domain.LanguageC, app.Language)
	assert.Equal(t, []string{"mathlib"}, app.Dependencies)
	assert.Equal(t, []string{"-Wall"}, app.BuildFlags)
	assert.Equal(t, []string{filepath.Join(cwd, "src/main.c")}, app.Sources)
	assert.Equal(t, filepath.Join("out", "bin", "app"), app.Output)
	assert.Nil(t, app.Action)

	lib, ok := session.Lookup("mathlib")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("out", "bin", "libmathlib.a"), lib.Output)
}

func TestLoad_CustomTarget(t *testing.T) {
	cwd := writeProject(t, `
targets:
  codegen:
    kind: custom
    cmd: [sh, -c, "touch generated.h"]
    output: generated.h
`)

	loader := config.NewLoader(fs.NewResolver())
	session, err := loader.Load(cwd)
	require.NoError(t, err)

	gen, ok := session.Lookup("codegen")
	require.True(t, ok)
	action, ok := gen.Action.(domain.CommandAction)
	require.True(t, ok)
	assert.Equal(t, []string{"sh", "-c", "touch generated.h"}, action.Argv)
}

func TestLoad_CustomTargetWithoutCmd(t *testing.T) {
	cwd := writeProject(t, `
targets:
  broken:
    kind: custom
`)

	loader := config.NewLoader(fs.NewResolver())
	_, err := loader.Load(cwd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestLoad_UnknownKind(t *testing.T) {
	cwd := writeProject(t, `
targets:
  weird:
    kind: plugin
`)

	loader := config.NewLoader(fs.NewResolver())
	_, err := loader.Load(cwd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestLoad_UndeclaredDependency(t *testing.T) {
	cwd := writeProject(t, `
language: c
targets:
  app:
    kind: executable
    sources: [main.c]
    dependson: [ghost]
`, "main.c")

	loader := config.NewLoader(fs.NewResolver())
	_, err := loader.Load(cwd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestLoad_MissingSource(t *testing.T) {
	t.Setenv(domain.IncludeEnvVar, "")
	cwd := writeProject(t, `
language: c
targets:
  app:
    kind: executable
    sources: [nowhere.c]
`)

	loader := config.NewLoader(fs.NewResolver())
	_, err := loader.Load(cwd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResolution))
}

func TestLoad_SourceFromIncludePath(t *testing.T) {
	shared := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(shared, "vendor.c"), []byte("int v;\n"), 0o644))
	t.Setenv(domain.IncludeEnvVar, shared)

	cwd := writeProject(t, `
language: c
targets:
  app:
    kind: executable
    sources: [vendor.c]
`)

	loader := config.NewLoader(fs.NewResolver())
	session, err := loader.Load(cwd)
	require.NoError(t, err)

	app, _ := session.Lookup("app")
	assert.Equal(t, []string{filepath.Join(shared, "vendor.c")}, app.Sources)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	loader := config.NewLoader(fs.NewResolver())
	_, err := loader.Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestLoad_DefaultBuildDir(t *testing.T) {
	cwd := writeProject(t, `
targets:
  codegen:
    kind: custom
    cmd: [touch, generated.h]
`)

	loader := config.NewLoader(fs.NewResolver())
	session, err := loader.Load(cwd)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, domain.DefaultBuildDirName), session.BuildDir())
}
