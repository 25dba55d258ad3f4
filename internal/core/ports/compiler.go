package ports

import (
	"context"

	"go.spelunk.dev/ndkbridge/internal/core/domain"
)

// CompileRequest describes one isolated per-architecture compiler run.
type CompileRequest struct {
	Target  domain.CompilerTarget
	Profile domain.Profile

	// ManifestDir is the directory containing the native source manifest.
	ManifestDir string

	// TargetDir is the shared build-output root. Each target writes only
	// under its own triple subdirectory.
	TargetDir string

	// Env contains toolchain and override variables in "KEY=VALUE"
	// format, resolved by the caller. PATH entries are prepended to the
	// system PATH by the implementation.
	Env []string
}

// Compiler defines the interface to the external native compiler.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile runs the native compiler for a single target and returns
	// the directory the target's artifacts were written to.
	//
	// Invocations for different targets are independent and may run
	// concurrently; they share no mutable state beyond the target
	// directory tree, partitioned per triple.
	Compile(ctx context.Context, req CompileRequest) (string, error)
}
