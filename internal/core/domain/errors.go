package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrConfiguration is returned for invalid project setup, such as an
	// unsupported language or a dependency on an undeclared target.
	ErrConfiguration = zerr.New("configuration error")

	// ErrDuplicateTarget is returned when registering a target whose name is
	// already taken in the session.
	ErrDuplicateTarget = zerr.New("duplicate target name")

	// ErrResolution is returned when a declared source file cannot be found.
	ErrResolution = zerr.New("source file not found")

	// ErrCycleDetected is returned when the dependency graph is not a DAG.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrBuildFailure is returned when a build action exits nonzero or a
	// callback action reports an error.
	ErrBuildFailure = zerr.New("build failure")

	// ErrTargetNotFound is returned when a subset build names an unregistered target.
	ErrTargetNotFound = zerr.New("target not found")
)

// Continuable reports whether a run may proceed past err when the
// ignore-fatal override is active. Only build failures are continuable:
// configuration, resolution, and cycle errors mean the graph itself is
// wrong, and no later target can be trusted.
func Continuable(err error) bool {
	return errors.Is(err, ErrBuildFailure)
}
