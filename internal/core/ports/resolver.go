package ports

// SourceResolver locates declared source files on disk.
type SourceResolver interface {
	// Resolve returns the concrete path of a declared source, searching the
	// working tree first and then the include path list. A miss is an
	// ErrResolution.
	Resolve(source, cwd string) (string, error)
}
