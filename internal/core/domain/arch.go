// Package domain contains the core domain models for the native build
// orchestration: target architectures, build variants, libraries, and the
// step dependency graph the pipeline evaluates.
package domain

import "go.trai.ch/zerr"

// ABI identifies an Android application binary interface. The set is
// closed: the packager only searches jniLibs subdirectories with these
// exact names.
type ABI string

const (
	// ABIX86 is 32-bit x86.
	ABIX86 ABI = "x86"
	// ABIX8664 is 64-bit x86.
	ABIX8664 ABI = "x86_64"
	// ABIArmV7 is 32-bit ARM (armeabi-v7a).
	ABIArmV7 ABI = "armeabi-v7a"
	// ABIArm64 is 64-bit ARM (arm64-v8a).
	ABIArm64 ABI = "arm64-v8a"
)

// CompilerTarget pairs an ABI with the identifiers the native toolchain
// needs to build for it.
type CompilerTarget struct {
	// ABI is the packager-side name, also the output subdirectory name.
	ABI ABI

	// Triple is the target triple passed to cargo via --target.
	Triple string

	// ClangPrefix is the NDK clang binary prefix for this target.
	// It differs from Triple for 32-bit ARM.
	ClangPrefix string
}

var targetByABI = map[ABI]CompilerTarget{
	ABIX86:   {ABI: ABIX86, Triple: "i686-linux-android", ClangPrefix: "i686-linux-android"},
	ABIX8664: {ABI: ABIX8664, Triple: "x86_64-linux-android", ClangPrefix: "x86_64-linux-android"},
	ABIArmV7: {ABI: ABIArmV7, Triple: "armv7-linux-androideabi", ClangPrefix: "armv7a-linux-androideabi"},
	ABIArm64: {ABI: ABIArm64, Triple: "aarch64-linux-android", ClangPrefix: "aarch64-linux-android"},
}

// ParseABI validates an ABI name coming from configuration.
// It returns ErrUnknownArchitecture for names outside the closed set.
func ParseABI(s string) (ABI, error) {
	abi := ABI(s)
	if _, ok := targetByABI[abi]; !ok {
		return "", zerr.With(ErrUnknownArchitecture, "abi", s)
	}
	return abi, nil
}

// ResolveTargets maps the declared ABI set to compiler targets.
//
// The result is duplicate-free. Input order is preserved for reporting
// but carries no scheduling meaning. An empty set or an ABI without a
// mapping is a configuration error and fails before any compilation.
func ResolveTargets(abis []ABI) ([]CompilerTarget, error) {
	if len(abis) == 0 {
		return nil, ErrNoArchitectures
	}

	seen := make(map[ABI]bool, len(abis))
	targets := make([]CompilerTarget, 0, len(abis))
	for _, abi := range abis {
		if seen[abi] {
			continue
		}
		seen[abi] = true

		target, ok := targetByABI[abi]
		if !ok {
			return nil, zerr.With(ErrUnknownArchitecture, "abi", string(abi))
		}
		targets = append(targets, target)
	}
	return targets, nil
}
