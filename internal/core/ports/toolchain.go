package ports

import "go.spelunk.dev/ndkbridge/internal/core/domain"

// ToolchainLocator resolves the native cross-toolchain for a target.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainLocator interface {
	// Environment returns "KEY=VALUE" pairs wiring the native compiler to
	// the cross-toolchain for the given target and API level: compiler
	// and linker bindings plus a PATH entry for the toolchain binaries.
	//
	// The overrides map (from the project configuration) takes precedence
	// over the process environment when locating the toolchain root.
	Environment(target domain.CompilerTarget, apiLevel int, overrides map[string]string) ([]string, error)
}
