// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.spelunk.dev/ndkbridge/internal/adapters/cargo"
	_ "go.spelunk.dev/ndkbridge/internal/adapters/config"
	_ "go.spelunk.dev/ndkbridge/internal/adapters/fs"
	_ "go.spelunk.dev/ndkbridge/internal/adapters/ledger"
	_ "go.spelunk.dev/ndkbridge/internal/adapters/logger"
	_ "go.spelunk.dev/ndkbridge/internal/adapters/ndk"
	// Register app and engine nodes.
	_ "go.spelunk.dev/ndkbridge/internal/app"
	_ "go.spelunk.dev/ndkbridge/internal/engine/invoker"
	_ "go.spelunk.dev/ndkbridge/internal/engine/placement"
)
