// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// outputTailLimit bounds the captured output attached to build failures.
const outputTailLimit = 4096

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs argv with the process environment overlaid by the target's
// environment overrides. Combined output streams to out and is captured so
// a failure can report what the build action printed.
func (e *Executor) Execute(ctx context.Context, target *domain.Target, argv []string, out io.Writer) error {
	if len(argv) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrConfiguration, "empty build command"), "target", target.Name)
	}
	if out == nil {
		out = io.Discard
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // command comes from target config
	cmd.Env = mergeEnvironment(os.Environ(), target.Environment)

	var captured bytes.Buffer
	sink := io.MultiWriter(&captured, out)
	cmd.Stdout = sink
	cmd.Stderr = sink

	e.logger.Info("running build action", "target", target.Name, "command", strings.Join(argv, " "))

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		failure := zerr.Wrap(domain.ErrBuildFailure, "build command exited nonzero")
		failure = zerr.With(failure, "target", target.Name)
		failure = zerr.With(failure, "exit_code", exitCode)
		return zerr.With(failure, "output", tail(captured.String(), outputTailLimit))
	}
	return nil
}

// mergeEnvironment overlays the target's environment on the process one.
func mergeEnvironment(sysEnv []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return sysEnv
	}
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	var order []string
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for k, v := range overrides {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

func tail(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[len(s)-limit:]
}
