// Package domain contains the core domain models for the build graph.
package domain

import (
	"context"
	"path/filepath"
)

// Kind classifies what a target produces.
type Kind string

const (
	// KindExecutable produces a linked executable.
	KindExecutable Kind = "executable"
	// KindStaticLibrary produces a static archive.
	KindStaticLibrary Kind = "static-library"
	// KindDynamicLibrary produces a shared object.
	KindDynamicLibrary Kind = "dynamic-library"
	// KindCustom runs a user-supplied build action instead of a synthesized command.
	KindCustom Kind = "custom"
)

// ParseKind converts a configuration string to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindExecutable, KindStaticLibrary, KindDynamicLibrary, KindCustom:
		return Kind(s), true
	}
	return "", false
}

// IsLibrary reports whether the kind produces a linkable library artifact.
func (k Kind) IsLibrary() bool {
	return k == KindStaticLibrary || k == KindDynamicLibrary
}

// Languages with built-in command synthesis.
const (
	LanguageC  = "c"
	LanguageGo = "go"
)

// Action is the build capability of a target. It has exactly two variants:
// CommandAction (an external argv) and CallbackAction (an in-process
// function). The orchestrator dispatches on the concrete type.
type Action interface {
	isAction()
}

// CommandAction runs an explicit argv instead of a synthesized command.
type CommandAction struct {
	Argv []string
}

func (CommandAction) isAction() {}

// CallbackAction runs an in-process function as the build step.
type CallbackAction struct {
	Fn func(ctx context.Context) error
}

func (CallbackAction) isAction() {}

// Target is one buildable unit and its declared dependencies.
type Target struct {
	Name         string
	Kind         Kind
	Language     string
	Sources      []string
	Output       string
	Dependencies []string
	BuildFlags   []string
	Environment  map[string]string

	// Action overrides command synthesis when non-nil. Custom targets must
	// carry one; built-in kinds may supply one as an escape hatch.
	Action Action

	// MainDir is the directory of the first source file. Toolchains that
	// build directory-based modules (go) compile this directory rather than
	// the individual files.
	MainDir string
}

// InferMainDir fills MainDir from the first source file if unset.
func (t *Target) InferMainDir() {
	if t.MainDir != "" || len(t.Sources) == 0 {
		return
	}
	t.MainDir = filepath.Dir(t.Sources[0])
}
