package config

// Forgefile represents the structure of the forge.yaml configuration file.
type Forgefile struct {
	Version  string               `yaml:"version"`
	Language string               `yaml:"language"`
	BuildDir string               `yaml:"builddir"`
	Targets  map[string]TargetDTO `yaml:"targets"`
}

// TargetDTO represents a target definition in the configuration.
type TargetDTO struct {
	Kind        string            `yaml:"kind"`
	Language    string            `yaml:"language"`
	Sources     []string          `yaml:"sources"`
	Output      string            `yaml:"output"`
	DependsOn   []string          `yaml:"dependson"`
	Flags       []string          `yaml:"flags"`
	Cmd         []string          `yaml:"cmd"`
	Environment map[string]string `yaml:"environment"`
}
