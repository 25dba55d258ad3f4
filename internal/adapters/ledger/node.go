package ledger

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.spelunk.dev/ndkbridge/internal/core/ports"
)

// NodeID is the unique identifier for the ledger Graft node.
const NodeID graft.ID = "adapter.ledger"

// DefaultPath is the ledger location relative to the working directory.
var DefaultPath = filepath.Join(".ndkbridge", "ledger.json")

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactStore, error) {
			return NewStore(DefaultPath)
		},
	})
}
