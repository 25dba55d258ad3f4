package domain

// Project is the orchestrator's view of the packaged application: which
// libraries the packager embeds, which ABIs it declares, and where the
// native source tree and output tree live.
type Project struct {
	// Name is the project name, used for reporting only.
	Name string

	// Libraries are the shared objects the packager expects, one file per
	// (library, ABI) pair.
	Libraries []Library

	// ABIs is the declared set of target architectures.
	ABIs []ABI

	// ManifestDir is the directory containing the native Cargo.toml.
	ManifestDir string

	// OutputRoot is the jniLibs root the packager searches. Artifacts are
	// staged under OutputRoot/<abi>/.
	OutputRoot string

	// TargetDir is the shared build-output root the compiler writes into,
	// partitioned per target triple.
	TargetDir string

	// APILevel is the Android API level the toolchain targets.
	APILevel int

	// Env holds environment overrides resolved by the packager's
	// environment, e.g. ANDROID_NDK_HOME.
	Env map[string]string
}
