package ports

// Verifier checks for the existence of build artifacts.
type Verifier interface {
	// OutputExists reports whether the declared output artifact exists.
	OutputExists(path string) (bool, error)
}
