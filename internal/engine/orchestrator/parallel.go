package orchestrator

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/forge/internal/core/domain"
)

type result struct {
	target string
	err    error
}

// runState tracks one parallel wavefront run. The ready queue is the same
// structure the topological sort uses, so a target is never started before
// all of its dependencies have completed.
type runState struct {
	inDegree map[string]int
	ready    []string
	active   int
	results  chan result
	halted   bool
	errs     error
}

// runParallel runs the wavefront scheduler: a bounded group of workers each
// take a ready target, process it, and feed newly ready dependents back into
// the queue. On the first fatal failure no new target starts, but in-flight
// builds finish.
func (o *Orchestrator) runParallel(
	ctx context.Context,
	session *domain.Session,
	graph *domain.Graph,
	order []string,
	decider *Decider,
	opts Options,
) error {
	inOrder := make(map[string]struct{}, len(order))
	for _, name := range order {
		inOrder[name] = struct{}{}
	}

	state := &runState{
		inDegree: make(map[string]int, len(order)),
		results:  make(chan result, opts.Jobs),
	}
	// Seeding from the topological order keeps the initial wavefront in
	// declaration order.
	for _, name := range order {
		target, _ := session.Lookup(name)
		state.inDegree[name] = len(target.Dependencies)
		if len(target.Dependencies) == 0 {
			state.ready = append(state.ready, name)
		}
	}

	var group errgroup.Group
	for !state.done() {
		state.schedule(ctx, &group, session, decider, opts, o)
		if state.done() {
			break
		}

		res := <-state.results
		state.handleResult(res, graph, inOrder, opts, o)

		if ctx.Err() != nil {
			state.halted = true
		}
	}
	_ = group.Wait()

	if ctx.Err() != nil {
		state.errs = errors.Join(state.errs, ctx.Err())
	}
	return state.errs
}

func (state *runState) done() bool {
	return state.active == 0 && (state.halted || len(state.ready) == 0)
}

func (state *runState) schedule(
	ctx context.Context,
	group *errgroup.Group,
	session *domain.Session,
	decider *Decider,
	opts Options,
	o *Orchestrator,
) {
	for len(state.ready) > 0 && state.active < opts.Jobs && !state.halted && ctx.Err() == nil {
		name := state.ready[0]
		state.ready = state.ready[1:]
		state.active++

		target, _ := session.Lookup(name)
		group.Go(func() error {
			state.results <- result{target: name, err: o.process(ctx, session, target, decider, opts)}
			return nil
		})
	}
}

func (state *runState) handleResult(
	res result,
	graph *domain.Graph,
	inOrder map[string]struct{},
	opts Options,
	o *Orchestrator,
) {
	state.active--

	if res.err != nil {
		state.errs = errors.Join(state.errs, res.err)
		if opts.IgnoreFatal && domain.Continuable(res.err) {
			o.logger.Warn("continuing past failure; dependents may build against stale outputs", "target", res.target)
		} else {
			state.halted = true
			return
		}
	}

	for _, dependent := range graph.Dependents(res.target) {
		if _, ok := inOrder[dependent]; !ok {
			continue
		}
		state.inDegree[dependent]--
		if state.inDegree[dependent] == 0 {
			state.ready = append(state.ready, dependent)
		}
	}
}
