// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/forge/internal/core/domain"
)

// Executor runs an external build command for a target.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs argv with the process environment overlaid by the target's
	// environment overrides. Combined output is streamed to out (which may be
	// nil). A nonzero exit is an ErrBuildFailure carrying the exit code and
	// the captured output.
	Execute(ctx context.Context, target *domain.Target, argv []string, out io.Writer) error
}
