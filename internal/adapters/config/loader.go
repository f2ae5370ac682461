// Package config provides the configuration loader for forge.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
	Resolver ports.SourceResolver
}

// NewLoader creates a loader for the default config file name.
func NewLoader(resolver ports.SourceResolver) *FileConfigLoader {
	return &FileConfigLoader{
		Filename: domain.ConfigFileName,
		Resolver: resolver,
	}
}

// Load reads the configuration from the given working directory and returns
// a session populated with every declared target. A .env file in the working
// directory is loaded first so FORGE_INCLUDE may come from it.
func (l *FileConfigLoader) Load(cwd string) (*domain.Session, error) {
	// Missing .env is fine; only report a file that exists but cannot be parsed.
	if err := godotenv.Load(filepath.Join(cwd, ".env")); err != nil && !os.IsNotExist(err) {
		return nil, zerr.Wrap(err, "failed to load .env file")
	}

	path := filepath.Join(cwd, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "failed to read config file"), "path", path)
	}

	var forgefile Forgefile
	if err := yaml.Unmarshal(data, &forgefile); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "failed to parse config file"), "path", path)
	}

	return l.build(cwd, &forgefile)
}

func (l *FileConfigLoader) build(cwd string, forgefile *Forgefile) (*domain.Session, error) {
	buildDir := forgefile.BuildDir
	if buildDir == "" {
		buildDir = filepath.Join(cwd, domain.DefaultBuildDirName)
	}
	session := domain.NewSession(buildDir)

	// First pass: collect names so dependency references can be verified
	// before anything registers.
	declared := make(map[string]bool, len(forgefile.Targets))
	for name := range forgefile.Targets {
		declared[name] = true
	}

	// yaml maps lose declaration order; register sorted by name so sibling
	// order in the topological sort is reproducible across runs.
	names := make([]string, 0, len(forgefile.Targets))
	for name := range forgefile.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dto := forgefile.Targets[name]
		target, err := l.toTarget(cwd, session.BuildDir(), name, dto, forgefile.Language, declared)
		if err != nil {
			return nil, err
		}
		if _, err := session.Register(target); err != nil {
			return nil, err
		}
	}

	return session, nil
}

func (l *FileConfigLoader) toTarget(
	cwd, buildDir, name string,
	dto TargetDTO,
	defaultLanguage string,
	declared map[string]bool,
) (domain.Target, error) {
	kind, ok := domain.ParseKind(dto.Kind)
	if !ok {
		err := zerr.Wrap(domain.ErrConfiguration, "unknown target kind")
		err = zerr.With(err, "target", name)
		return domain.Target{}, zerr.With(err, "kind", dto.Kind)
	}

	for _, dep := range dto.DependsOn {
		if !declared[dep] {
			err := zerr.Wrap(domain.ErrConfiguration, "dependency on undeclared target")
			err = zerr.With(err, "target", name)
			return domain.Target{}, zerr.With(err, "dependency", dep)
		}
	}

	if kind == domain.KindCustom && len(dto.Cmd) == 0 {
		err := zerr.Wrap(domain.ErrConfiguration, "custom target needs a cmd")
		return domain.Target{}, zerr.With(err, "target", name)
	}

	sources := make([]string, 0, len(dto.Sources))
	for _, src := range dto.Sources {
		resolved, err := l.Resolver.Resolve(src, cwd)
		if err != nil {
			return domain.Target{}, zerr.With(err, "target", name)
		}
		sources = append(sources, resolved)
	}

	output := dto.Output
	if output == "" && kind != domain.KindCustom {
		output = domain.DefaultOutput(buildDir, name, kind)
	}

	language := dto.Language
	if language == "" {
		language = defaultLanguage
	}

	target := domain.Target{
		Name:         name,
		Kind:         kind,
		Language:     language,
		Sources:      sources,
		Output:       output,
		Dependencies: dto.DependsOn,
		BuildFlags:   dto.Flags,
		Environment:  dto.Environment,
	}
	if len(dto.Cmd) > 0 {
		target.Action = domain.CommandAction{Argv: dto.Cmd}
	}
	return target, nil
}
