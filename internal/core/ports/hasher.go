package ports

// Hasher computes content digests of source files.
type Hasher interface {
	// HashFile returns the hex content digest of the file at path.
	HashFile(path string) (string, error)
}
