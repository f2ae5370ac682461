// Package app implements the application layer for forge.
package app

import (
	"context"
	"io"
	"os"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Force rebuilds every selected target regardless of checksums.
	Force bool
	// Release asks for optimized toolchain commands.
	Release bool
	// IgnoreFatal keeps building past failed targets.
	IgnoreFatal bool
	// Jobs bounds concurrent build actions; 0 or 1 runs serially.
	Jobs int
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	orchestrator *orchestrator.Orchestrator
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, orch *orchestrator.Orchestrator, logger ports.Logger) *App {
	return &App{
		configLoader: loader,
		orchestrator: orch,
		logger:       logger,
	}
}

// Build loads the project configuration and builds the named targets in
// dependency order. An empty target list builds everything.
func (a *App) Build(ctx context.Context, targetNames []string, opts BuildOptions) error {
	session, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	err = a.orchestrator.Run(ctx, session, orchestrator.Options{
		Targets:     targetNames,
		Force:       opts.Force,
		Release:     opts.Release,
		IgnoreFatal: opts.IgnoreFatal,
		Jobs:        opts.Jobs,
	})
	if err != nil {
		return zerr.Wrap(err, "build execution failed")
	}
	return nil
}

// Clean removes the build directory and every declared target output.
// Outputs placed outside the build directory are removed individually.
func (a *App) Clean(_ context.Context) error {
	session, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if err := os.RemoveAll(session.BuildDir()); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove build directory"), "dir", session.BuildDir())
	}
	a.logger.Info("removed build directory", "dir", session.BuildDir())

	for target := range session.All() {
		if target.Output == "" {
			continue
		}
		if err := os.Remove(target.Output); err != nil && !os.IsNotExist(err) {
			return zerr.With(zerr.Wrap(err, "failed to remove target output"), "target", target.Name)
		}
	}
	return nil
}

// Graph loads the project configuration and writes the dependency graph in
// topological order to w.
func (a *App) Graph(_ context.Context, w io.Writer) error {
	session, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	graph, err := domain.NewGraph(session)
	if err != nil {
		return err
	}
	graph.Dump(w)
	return nil
}

// Status reports the outcome of a target from the last Build call.
func (a *App) Status(name string) orchestrator.Status {
	return a.orchestrator.Status(name)
}
