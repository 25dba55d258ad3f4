package placement

import (
	"context"

	"github.com/grindlemire/graft"
	"go.spelunk.dev/ndkbridge/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.spelunk.dev/ndkbridge/internal/adapters/ledger"
	"go.spelunk.dev/ndkbridge/internal/adapters/logger"
	"go.spelunk.dev/ndkbridge/internal/core/ports"
)

// NodeID is the unique identifier for the validator Graft node.
const NodeID graft.ID = "engine.validator"

func init() {
	graft.Register(graft.Node[*Validator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.VerifierNodeID,
			fs.HasherNodeID,
			ledger.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Validator, error) {
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewValidator(verifier, hasher, store, log), nil
		},
	})
}
