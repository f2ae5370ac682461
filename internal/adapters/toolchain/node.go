package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the command synthesizer Graft node.
const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[ports.CommandSynthesizer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CommandSynthesizer, error) {
			return NewSynthesizer(), nil
		},
	})
}
