// Package orchestrator drives the ordered target list through the
// incremental rebuild decision and the build actions.
package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Status represents the state of one target during a run.
type Status string

const (
	// StatusPending indicates the target has not been visited yet.
	StatusPending Status = "Pending"
	// StatusRunning indicates the target's build action is executing.
	StatusRunning Status = "Running"
	// StatusUpToDate indicates the target was skipped as not stale.
	StatusUpToDate Status = "UpToDate"
	// StatusBuilt indicates the target rebuilt successfully.
	StatusBuilt Status = "Built"
	// StatusFailed indicates the target's build action failed.
	StatusFailed Status = "Failed"
)

// Options control one orchestrator run.
type Options struct {
	// Targets selects a subset build; empty means every registered target.
	Targets []string
	// Force bypasses all staleness checks.
	Force bool
	// Release asks the command synthesizer for optimized builds.
	Release bool
	// IgnoreFatal continues past build failures, collecting them. Later
	// targets may then build against missing or stale dependency outputs;
	// that hazard is accepted and logged, not silent.
	IgnoreFatal bool
	// Jobs bounds concurrent build actions; values below 2 run serially.
	Jobs int
}

// Orchestrator walks targets in dependency order, skipping the up to date
// ones and executing build actions for the rest.
type Orchestrator struct {
	executor     ports.Executor
	synthesizer  ports.CommandSynthesizer
	hasher       ports.Hasher
	verifier     ports.Verifier
	storeFactory ports.StoreFactory
	logger       ports.Logger
	telemetry    ports.Telemetry

	mu     sync.RWMutex
	status map[string]Status
}

// New creates an Orchestrator.
func New(
	executor ports.Executor,
	synthesizer ports.CommandSynthesizer,
	hasher ports.Hasher,
	verifier ports.Verifier,
	storeFactory ports.StoreFactory,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Orchestrator {
	return &Orchestrator{
		executor:     executor,
		synthesizer:  synthesizer,
		hasher:       hasher,
		verifier:     verifier,
		storeFactory: storeFactory,
		logger:       logger,
		telemetry:    telemetry,
		status:       make(map[string]Status),
	}
}

// Status returns the recorded status of a target.
func (o *Orchestrator) Status(name string) Status {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status[name]
}

func (o *Orchestrator) setStatus(name string, status Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status[name] = status
}

// Run builds the requested targets (or all of them) in dependency order.
// The terminal outcome is nil only if every visited target was up to date
// or rebuilt successfully.
func (o *Orchestrator) Run(ctx context.Context, session *domain.Session, opts Options) error {
	graph, err := domain.NewGraph(session)
	if err != nil {
		return err
	}
	order, err := graph.OrderFor(opts.Targets)
	if err != nil {
		return err
	}

	store, err := o.storeFactory(session.BuildDir())
	if err != nil {
		return err
	}

	session.ResetRun()
	o.mu.Lock()
	o.status = make(map[string]Status, len(order))
	for _, name := range order {
		o.status[name] = StatusPending
	}
	o.mu.Unlock()

	decider := NewDecider(store, o.hasher, o.verifier)

	if opts.Jobs > 1 {
		return o.runParallel(ctx, session, graph, order, decider, opts)
	}
	return o.runSerial(ctx, session, order, decider, opts)
}

func (o *Orchestrator) runSerial(
	ctx context.Context,
	session *domain.Session,
	order []string,
	decider *Decider,
	opts Options,
) error {
	var errs error
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return errors.Join(errs, err)
		}

		target, _ := session.Lookup(name)
		err := o.process(ctx, session, target, decider, opts)
		if err == nil {
			continue
		}

		errs = errors.Join(errs, err)
		if opts.IgnoreFatal && domain.Continuable(err) {
			o.logger.Warn("continuing past failure; dependents may build against stale outputs", "target", name)
			continue
		}
		return errs
	}
	return errs
}

// process runs the decision and, if stale, the build action for one target.
func (o *Orchestrator) process(
	ctx context.Context,
	session *domain.Session,
	target *domain.Target,
	decider *Decider,
	opts Options,
) error {
	session.MarkProcessed(target.Name)
	ctx, vtx := o.telemetry.Record(ctx, target.Name)

	decision, err := decider.MustRebuild(session, target, opts.Force)
	if err != nil {
		o.setStatus(target.Name, StatusFailed)
		vtx.Complete(err)
		return err
	}
	if !decision.Rebuild {
		o.setStatus(target.Name, StatusUpToDate)
		vtx.Cached()
		vtx.Complete(nil)
		o.logger.Info("target up to date", "target", target.Name)
		return nil
	}

	o.setStatus(target.Name, StatusRunning)
	o.logger.Info("building target", "target", target.Name, "reason", decision.Reason)

	if err := o.build(ctx, session, target, opts, vtx); err != nil {
		o.setStatus(target.Name, StatusFailed)
		vtx.Complete(err)
		o.logger.Error(err)
		return err
	}

	if err := decider.PersistChecksums(target); err != nil {
		o.setStatus(target.Name, StatusFailed)
		vtx.Complete(err)
		return err
	}
	session.MarkRebuilt(target.Name)
	o.setStatus(target.Name, StatusBuilt)
	vtx.Complete(nil)
	o.logger.Info("target built", "target", target.Name)
	return nil
}

// build dispatches the target's build action: an explicit command, an
// in-process callback, or a synthesized toolchain command.
func (o *Orchestrator) build(
	ctx context.Context,
	session *domain.Session,
	target *domain.Target,
	opts Options,
	vtx ports.Vertex,
) error {
	if target.Output != "" {
		if err := os.MkdirAll(filepath.Dir(target.Output), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create output directory"), "target", target.Name)
		}
	}

	switch action := target.Action.(type) {
	case domain.CallbackAction:
		if err := action.Fn(ctx); err != nil {
			failure := zerr.Wrap(domain.ErrBuildFailure, "build callback failed")
			failure = zerr.With(failure, "target", target.Name)
			return zerr.With(failure, "cause", err.Error())
		}
		return nil

	case domain.CommandAction:
		return o.executor.Execute(ctx, target, action.Argv, vtx.Stdout())

	default:
		if target.Kind == domain.KindCustom {
			return zerr.With(zerr.Wrap(domain.ErrConfiguration, "custom target has no build action"), "target", target.Name)
		}
		argv, err := o.synthesizer.Synthesize(target, o.dependencyTargets(session, target), opts.Release)
		if err != nil {
			return err
		}
		return o.executor.Execute(ctx, target, argv, vtx.Stdout())
	}
}

// dependencyTargets returns the live targets this one depends on, so the
// synthesizer can derive link paths from their outputs.
func (o *Orchestrator) dependencyTargets(session *domain.Session, target *domain.Target) []*domain.Target {
	deps := make([]*domain.Target, 0, len(target.Dependencies))
	for _, name := range target.Dependencies {
		if dep, ok := session.Lookup(name); ok {
			deps = append(deps, dep)
		}
	}
	return deps
}
