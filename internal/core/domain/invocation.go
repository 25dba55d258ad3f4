package domain

import "time"

// CompilationResult is the outcome of one per-architecture compiler run.
type CompilationResult struct {
	Target CompilerTarget

	// ArtifactDir is the directory the compiler wrote this target's
	// artifacts into. Empty on failure.
	ArtifactDir string

	Duration time.Duration

	// Err is the per-architecture diagnostic, nil on success.
	Err error
}

// Failed reports whether this architecture's compilation failed.
func (r CompilationResult) Failed() bool {
	return r.Err != nil
}

// Invocation is one compilation request across all resolved architectures
// for a single variant. It is re-created on every build and never
// persisted; the invoker owns its lifecycle.
type Invocation struct {
	Variant Variant
	Profile Profile
	Results []CompilationResult
}

// Failed reports whether any architecture's compilation failed.
func (inv *Invocation) Failed() bool {
	for _, r := range inv.Results {
		if r.Failed() {
			return true
		}
	}
	return false
}

// FailedABIs returns the ABIs whose compilation failed, in result order.
func (inv *Invocation) FailedABIs() []ABI {
	var abis []ABI
	for _, r := range inv.Results {
		if r.Failed() {
			abis = append(abis, r.Target.ABI)
		}
	}
	return abis
}
