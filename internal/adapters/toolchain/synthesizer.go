// Package toolchain synthesizes build commands for the built-in target kinds.
package toolchain

import (
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandSynthesizer = (*Synthesizer)(nil)

// Synthesizer dispatches to the per-language toolchain.
type Synthesizer struct{}

// NewSynthesizer creates a new Synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize returns the argv that builds the target.
func (s *Synthesizer) Synthesize(target *domain.Target, deps []*domain.Target, release bool) ([]string, error) {
	switch target.Language {
	case domain.LanguageC:
		return synthesizeC(target, deps, release)
	case domain.LanguageGo:
		return synthesizeGo(target, release)
	default:
		err := zerr.Wrap(domain.ErrConfiguration, "unsupported language")
		err = zerr.With(err, "target", target.Name)
		return nil, zerr.With(err, "language", target.Language)
	}
}
