package domain

import (
	"iter"
	"sync"

	"go.trai.ch/zerr"
)

// Handle identifies a registered target inside its session. Components hold
// handles (or names) rather than copies of Target, so every holder observes
// the same live target state.
type Handle int

// Session owns every target registered for one build run, plus the per-run
// bookkeeping the rebuild cascade needs. It replaces process-wide registries:
// construct one per run and pass it to each component.
type Session struct {
	buildDir string

	targets []Target       // arena, in declaration order
	byName  map[string]int // name -> arena index

	mu        sync.Mutex
	rebuilt   map[string]struct{}
	processed map[string]struct{}
}

// NewSession creates an empty session rooted at the given build directory.
// An empty buildDir selects the default layout.
func NewSession(buildDir string) *Session {
	if buildDir == "" {
		buildDir = DefaultBuildDirName
	}
	return &Session{
		buildDir:  buildDir,
		byName:    make(map[string]int),
		rebuilt:   make(map[string]struct{}),
		processed: make(map[string]struct{}),
	}
}

// BuildDir returns the session's build directory.
func (s *Session) BuildDir() string {
	return s.buildDir
}

// Register appends a target to the session and indexes it by name.
// A duplicate name is a configuration error, never a silent overwrite.
func (s *Session) Register(t Target) (Handle, error) {
	if t.Name == "" {
		return 0, zerr.Wrap(ErrConfiguration, "target name must not be empty")
	}
	if _, exists := s.byName[t.Name]; exists {
		return 0, zerr.With(ErrDuplicateTarget, "target", t.Name)
	}
	t.InferMainDir()
	s.targets = append(s.targets, t)
	idx := len(s.targets) - 1
	s.byName[t.Name] = idx
	return Handle(idx), nil
}

// Target returns the live target for a handle.
func (s *Session) Target(h Handle) *Target {
	return &s.targets[h]
}

// Lookup returns the live target with the given name.
func (s *Session) Lookup(name string) (*Target, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return &s.targets[idx], true
}

// Len returns the number of registered targets.
func (s *Session) Len() int {
	return len(s.targets)
}

// All yields the registered targets in declaration order.
func (s *Session) All() iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		for i := range s.targets {
			if !yield(&s.targets[i]) {
				return
			}
		}
	}
}

// ResetRun clears the per-run rebuilt/processed sets.
func (s *Session) ResetRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuilt = make(map[string]struct{})
	s.processed = make(map[string]struct{})
}

// MarkRebuilt records that a target rebuilt this run.
func (s *Session) MarkRebuilt(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuilt[name] = struct{}{}
}

// WasRebuilt reports whether a target rebuilt this run.
func (s *Session) WasRebuilt(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rebuilt[name]
	return ok
}

// MarkProcessed records that a target was visited this run.
func (s *Session) MarkProcessed(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed[name] = struct{}{}
}

// WasProcessed reports whether a target was visited this run.
func (s *Session) WasProcessed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.processed[name]
	return ok
}
