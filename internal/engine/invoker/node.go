package invoker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.spelunk.dev/ndkbridge/internal/adapters/cargo" //nolint:depguard // Wired in engine wiring
	"go.spelunk.dev/ndkbridge/internal/adapters/logger"
	"go.spelunk.dev/ndkbridge/internal/adapters/ndk" //nolint:depguard // Wired in engine wiring
	"go.spelunk.dev/ndkbridge/internal/core/ports"
)

// NodeID is the unique identifier for the invoker Graft node.
const NodeID graft.ID = "engine.invoker"

func init() {
	graft.Register(graft.Node[*Invoker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cargo.NodeID,
			ndk.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Invoker, error) {
			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			toolchain, err := graft.Dep[ports.ToolchainLocator](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewInvoker(compiler, toolchain, log), nil
		},
	})
}
