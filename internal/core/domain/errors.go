package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownArchitecture is returned when a declared ABI has no
	// compiler-target mapping.
	ErrUnknownArchitecture = zerr.New("unknown architecture")

	// ErrNoArchitectures is returned when the declared ABI set is empty.
	ErrNoArchitectures = zerr.New("no architectures declared")

	// ErrUnsupportedVariant is returned for a build variant outside the
	// recognized debug/release set.
	ErrUnsupportedVariant = zerr.New("unsupported build variant")

	// ErrCompilationFailed is returned when at least one per-architecture
	// compiler invocation failed.
	ErrCompilationFailed = zerr.New("native compilation failed")

	// ErrMissingArtifact is returned when an expected (library, ABI)
	// artifact is absent from the output tree after a successful build.
	ErrMissingArtifact = zerr.New("missing native artifact")

	// ErrToolchainNotFound is returned when the native toolchain root
	// cannot be located.
	ErrToolchainNotFound = zerr.New("native toolchain not found")

	// ErrDuplicateLibrary is returned when the same library is declared
	// twice in the project configuration.
	ErrDuplicateLibrary = zerr.New("duplicate library")

	// ErrStepAlreadyExists is returned when adding a step whose name is
	// already present in the pipeline graph.
	ErrStepAlreadyExists = zerr.New("step already exists")

	// ErrMissingPrerequisite is returned when a step requires a step that
	// does not exist in the graph.
	ErrMissingPrerequisite = zerr.New("missing prerequisite")

	// ErrCycleDetected is returned when the step graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrStepNotFound is returned when a requested step is not in the graph.
	ErrStepNotFound = zerr.New("step not found")
)
