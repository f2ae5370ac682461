package ports

import "go.trai.ch/forge/internal/core/domain"

// ChecksumStore persists per-source-file content hashes between runs.
type ChecksumStore interface {
	// Get retrieves the record persisted for the source file's base name.
	// Absent or malformed records return nil, nil — never an error.
	Get(sourcePath string) (*domain.ChecksumRecord, error)

	// Put persists the record, keyed by the source file's base name.
	Put(rec domain.ChecksumRecord) error

	// Clean removes every persisted record.
	Clean() error
}

// StoreFactory opens the checksum store for a build directory. The store is
// session-scoped: the build directory is only known once the configuration
// has been loaded.
type StoreFactory func(buildDir string) (ChecksumStore, error)
