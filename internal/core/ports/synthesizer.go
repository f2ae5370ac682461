package ports

import "go.trai.ch/forge/internal/core/domain"

// CommandSynthesizer builds the argv for a target of a built-in kind.
//
//go:generate go run go.uber.org/mock/mockgen -source=synthesizer.go -destination=mocks/mock_synthesizer.go -package=mocks
type CommandSynthesizer interface {
	// Synthesize returns an executable argv for the target. deps holds the
	// live targets the build depends on, so library link paths and names can
	// be derived from their outputs. release selects optimized builds.
	//
	// An unsupported target language is an ErrConfiguration.
	Synthesize(target *domain.Target, deps []*domain.Target, release bool) ([]string, error)
}
