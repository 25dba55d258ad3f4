// Package ndk provides the toolchain locator for the Android NDK.
// It resolves the cross-compiler binaries for a target and constructs the
// environment variables cargo needs to use them.
package ndk

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.spelunk.dev/ndkbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// RootEnvVar names the environment variable pointing at the NDK root.
const RootEnvVar = "ANDROID_NDK_HOME"

// Locator implements ports.ToolchainLocator for NDK r19+ layouts
// (toolchains/llvm/prebuilt/<host-tag>/bin).
type Locator struct{}

// NewLocator creates a new NDK Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Environment resolves the toolchain for the given target and returns the
// variables wiring cargo to it: the target linker, the C compiler and
// archiver for build scripts, and a PATH entry for the toolchain bin
// directory.
//
// The NDK root is taken from the overrides map first, then from the
// process environment. A missing or malformed root is a fatal
// configuration error surfaced before any compilation.
func (l *Locator) Environment(target domain.CompilerTarget, apiLevel int, overrides map[string]string) ([]string, error) {
	root := overrides[RootEnvVar]
	if root == "" {
		root = os.Getenv(RootEnvVar)
	}
	if root == "" {
		return nil, zerr.With(ErrRootNotSet, "env_var", RootEnvVar)
	}

	binDir := filepath.Join(root, "toolchains", "llvm", "prebuilt", hostTag(), "bin")
	if _, err := os.Stat(binDir); err != nil {
		err = zerr.Wrap(domain.ErrToolchainNotFound, "toolchain bin directory not found")
		return nil, zerr.With(err, "path", binDir)
	}

	clang := filepath.Join(binDir, fmt.Sprintf("%s%d-clang", target.ClangPrefix, apiLevel))
	if _, err := os.Stat(clang); err != nil {
		err = zerr.Wrap(domain.ErrToolchainNotFound, "target compiler not found")
		err = zerr.With(err, "target", target.Triple)
		return nil, zerr.With(err, "path", clang)
	}

	ar := filepath.Join(binDir, "llvm-ar")

	env := []string{
		"PATH=" + binDir,
		fmt.Sprintf("CARGO_TARGET_%s_LINKER=%s", cargoTargetKey(target.Triple), clang),
		fmt.Sprintf("CC_%s=%s", target.Triple, clang),
		fmt.Sprintf("AR_%s=%s", target.Triple, ar),
	}
	return env, nil
}

// ErrRootNotSet is returned when no NDK root is configured.
var ErrRootNotSet = zerr.Wrap(domain.ErrToolchainNotFound, "NDK root not set")

// cargoTargetKey converts a target triple into the form cargo expects in
// CARGO_TARGET_<TRIPLE>_LINKER variables.
func cargoTargetKey(triple string) string {
	return strings.ToUpper(strings.ReplaceAll(triple, "-", "_"))
}

// hostTag returns the NDK prebuilt host directory name for the current
// platform. The NDK ships x86_64 host binaries only; Apple Silicon runs
// them through Rosetta.
func hostTag() string {
	switch runtime.GOOS {
	case "darwin":
		return "darwin-x86_64"
	case "windows":
		return "windows-x86_64"
	default:
		return "linux-x86_64"
	}
}
