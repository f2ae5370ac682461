package checksum

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the checksum store factory Graft node.
const NodeID graft.ID = "adapter.checksum_store"

func init() {
	graft.Register(graft.Node[ports.StoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StoreFactory, error) {
			return func(buildDir string) (ports.ChecksumStore, error) {
				return NewStore(buildDir)
			}, nil
		},
	})
}
