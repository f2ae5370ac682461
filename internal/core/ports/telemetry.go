package ports

import (
	"context"
	"io"
)

// Telemetry records per-target build progress.
type Telemetry interface {
	// Record starts recording a vertex for one target.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one target's build in the progress recording.
type Vertex interface {
	// Stdout returns a writer capturing the build action's output stream.
	Stdout() io.Writer
	// Stderr returns a writer capturing the build action's error stream.
	Stderr() io.Writer
	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
	// Cached marks the vertex as up to date without rebuilding.
	Cached()
}
