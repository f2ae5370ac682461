package domain

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the dependency structure derived from a session's targets. It is
// rebuilt fresh each run and never persisted.
type Graph struct {
	session    *Session
	dependents map[string][]string // reverse edges, in declaration order
	order      []string            // topological order
}

// NewGraph derives the adjacency structure from the session and computes a
// topological order. It fails with ErrConfiguration if a target depends on
// an undeclared name, and with ErrCycleDetected if the graph is not a DAG.
func NewGraph(s *Session) (*Graph, error) {
	g := &Graph{
		session:    s,
		dependents: make(map[string][]string, s.Len()),
	}

	for t := range s.All() {
		for _, dep := range t.Dependencies {
			if _, ok := s.Lookup(dep); !ok {
				err := zerr.Wrap(ErrConfiguration, "dependency on undeclared target")
				err = zerr.With(err, "target", t.Name)
				return nil, zerr.With(err, "dependency", dep)
			}
			g.dependents[dep] = append(g.dependents[dep], t.Name)
		}
	}

	if err := g.sort(); err != nil {
		return nil, err
	}
	return g, nil
}

// sort runs Kahn's algorithm. The ready queue is FIFO and seeded in
// declaration order, so targets that become ready simultaneously are emitted
// in declaration order among siblings. The resulting order is deterministic
// for a fixed input graph, which the checksum cascade relies on.
func (g *Graph) sort() error {
	remaining := make(map[string]int, g.session.Len())
	var queue []string
	for t := range g.session.All() {
		remaining[t.Name] = len(t.Dependencies)
		if len(t.Dependencies) == 0 {
			queue = append(queue, t.Name)
		}
	}

	g.order = make([]string, 0, g.session.Len())
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		g.order = append(g.order, name)

		for _, dependent := range g.dependents[name] {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(g.order) < g.session.Len() {
		var stuck []string
		for t := range g.session.All() {
			if remaining[t.Name] > 0 {
				stuck = append(stuck, t.Name)
			}
		}
		return zerr.With(ErrCycleDetected, "unscheduled", strings.Join(stuck, ", "))
	}
	return nil
}

// Order returns the full topological order.
func (g *Graph) Order() []string {
	return slices.Clone(g.order)
}

// Dependents returns the names of targets that declare name as a dependency.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[name]
}

// Closure returns the transitive dependency closure of the named targets.
// An unknown name fails with ErrTargetNotFound.
func (g *Graph) Closure(names []string) (map[string]struct{}, error) {
	closure := make(map[string]struct{})
	var visit func(name string) error
	visit = func(name string) error {
		if _, done := closure[name]; done {
			return nil
		}
		t, ok := g.session.Lookup(name)
		if !ok {
			return zerr.With(ErrTargetNotFound, "target", name)
		}
		closure[name] = struct{}{}
		for _, dep := range t.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return closure, nil
}

// OrderFor returns the topological order filtered down to the closure of the
// named targets. Filtering the full order preserves relative order inside the
// closure. An empty name list selects every target.
func (g *Graph) OrderFor(names []string) ([]string, error) {
	if len(names) == 0 {
		return g.Order(), nil
	}
	closure, err := g.Closure(names)
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(closure))
	for _, name := range g.order {
		if _, ok := closure[name]; ok {
			order = append(order, name)
		}
	}
	return order, nil
}

// Walk yields the session's targets in topological order.
func (g *Graph) Walk() iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		for _, name := range g.order {
			t, _ := g.session.Lookup(name)
			if !yield(t) {
				return
			}
		}
	}
}

// Dump writes the dependency and dependents structure in build order.
func (g *Graph) Dump(w io.Writer) {
	for _, name := range g.order {
		t, _ := g.session.Lookup(name)
		fmt.Fprintf(w, "%s (%s)\n", name, t.Kind)
		if len(t.Dependencies) > 0 {
			fmt.Fprintf(w, "  depends on: %s\n", strings.Join(t.Dependencies, ", "))
		}
		if deps := g.dependents[name]; len(deps) > 0 {
			fmt.Fprintf(w, "  required by: %s\n", strings.Join(deps, ", "))
		}
	}
}
