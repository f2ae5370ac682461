package domain_test

import (
	"errors"
	"strings"
	"testing"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

func register(t *testing.T, s *domain.Session, name string, deps ...string) {
	t.Helper()
	if _, err := s.Register(domain.Target{Name: name, Kind: domain.KindCustom, Dependencies: deps}); err != nil {
		t.Fatalf("failed to register %s: %v", name, err)
	}
}

func TestGraph_Order_PlacesDependenciesFirst(t *testing.T) {
	s := domain.NewSession("")
	// app -> lib -> core, tool -> core
	register(t, s, "app", "lib")
	register(t, s, "lib", "core")
	register(t, s, "core")
	register(t, s, "tool", "core")

	g, err := domain.NewGraph(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := g.Order()
	if len(order) != s.Len() {
		t.Fatalf("order length = %d, want %d", len(order), s.Len())
	}

	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	for target := range s.All() {
		for _, dep := range target.Dependencies {
			if pos[dep] >= pos[target.Name] {
				t.Errorf("%s scheduled at %d before its dependency %s at %d", target.Name, pos[target.Name], dep, pos[dep])
			}
		}
	}
}

func TestGraph_Order_SiblingsInDeclarationOrder(t *testing.T) {
	s := domain.NewSession("")
	register(t, s, "zeta")
	register(t, s, "alpha")
	register(t, s, "mid", "zeta", "alpha")

	g, err := domain.NewGraph(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := g.Order()
	want := []string{"zeta", "alpha", "mid"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestGraph_Cycle(t *testing.T) {
	s := domain.NewSession("")
	register(t, s, "A", "B")
	register(t, s, "B", "A")

	_, err := domain.NewGraph(s)
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if stuck, ok := meta["unscheduled"].(string); !ok || stuck == "" {
		t.Errorf("expected unscheduled metadata, got %v", meta["unscheduled"])
	}
}

func TestGraph_Cycle_DownstreamOfAcyclicPart(t *testing.T) {
	s := domain.NewSession("")
	register(t, s, "ok")
	register(t, s, "A", "B", "ok")
	register(t, s, "B", "A")

	_, err := domain.NewGraph(s)
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestGraph_UndeclaredDependency(t *testing.T) {
	s := domain.NewSession("")
	register(t, s, "app", "ghost")

	_, err := domain.NewGraph(s)
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestGraph_OrderFor_SubsetClosure(t *testing.T) {
	s := domain.NewSession("")
	register(t, s, "core")
	register(t, s, "lib", "core")
	register(t, s, "app", "lib")
	register(t, s, "unrelated")

	g, err := domain.NewGraph(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := g.OrderFor([]string{"app"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"core", "lib", "app"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestGraph_OrderFor_UnknownTarget(t *testing.T) {
	s := domain.NewSession("")
	register(t, s, "core")

	g, err := domain.NewGraph(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = g.OrderFor([]string{"nope"})
	if !errors.Is(err, domain.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
}

func TestGraph_Dump(t *testing.T) {
	s := domain.NewSession("")
	register(t, s, "core")
	register(t, s, "app", "core")

	g, err := domain.NewGraph(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sb strings.Builder
	g.Dump(&sb)
	out := sb.String()
	if !strings.Contains(out, "depends on: core") {
		t.Errorf("dump missing dependency edge:\n%s", out)
	}
	if !strings.Contains(out, "required by: app") {
		t.Errorf("dump missing dependents edge:\n%s", out)
	}
}
