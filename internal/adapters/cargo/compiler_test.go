package cargo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.spelunk.dev/ndkbridge/internal/adapters/cargo"
	"go.spelunk.dev/ndkbridge/internal/core/domain"
	"go.spelunk.dev/ndkbridge/internal/core/ports"
	"go.spelunk.dev/ndkbridge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeCargo writes a shell script standing in for the cargo binary.
func fakeCargo(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cargo")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o700))
	return path
}

func request(t *testing.T) ports.CompileRequest {
	t.Helper()
	return ports.CompileRequest{
		Target: domain.CompilerTarget{
			ABI:         domain.ABIArm64,
			Triple:      "aarch64-linux-android",
			ClangPrefix: "aarch64-linux-android",
		},
		Profile: domain.Profile{
			Name:         "release",
			Flags:        []string{"--release"},
			TargetSubdir: "release",
		},
		ManifestDir: t.TempDir(),
		TargetDir:   filepath.Join(t.TempDir(), "target"),
	}
}

func TestCompile_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("compiling").Times(1)

	compiler := cargo.NewCompiler(mockLogger)
	compiler.Binary = fakeCargo(t, `echo "compiling"`)

	req := request(t)
	artifactDir, err := compiler.Compile(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(req.TargetDir, "aarch64-linux-android", "release"), artifactDir)
}

func TestCompile_StderrGoesToWarn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("warning: unused variable").Times(1)

	compiler := cargo.NewCompiler(mockLogger)
	compiler.Binary = fakeCargo(t, `echo "warning: unused variable" >&2`)

	_, err := compiler.Compile(context.Background(), request(t))
	require.NoError(t, err)
}

func TestCompile_NonZeroExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	compiler := cargo.NewCompiler(mockLogger)
	compiler.Binary = fakeCargo(t, `echo "error[E0308]: mismatched types" >&2
exit 101`)

	_, err := compiler.Compile(context.Background(), request(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiler invocation failed")
}

func TestCompile_ArgumentsPassedThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	out := filepath.Join(t.TempDir(), "args.txt")
	compiler := cargo.NewCompiler(mockLogger)
	compiler.Binary = fakeCargo(t, `echo "$@" > `+out)

	req := request(t)
	_, err := compiler.Compile(context.Background(), req)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	args := string(data)
	assert.Contains(t, args, "build")
	assert.Contains(t, args, "--manifest-path "+filepath.Join(req.ManifestDir, "Cargo.toml"))
	assert.Contains(t, args, "--target aarch64-linux-android")
	assert.Contains(t, args, "--target-dir "+req.TargetDir)
	assert.Contains(t, args, "--release")
}

func TestCompile_ToolchainEnvWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("toolchain").Times(1)

	t.Setenv("NDKBRIDGE_TEST_VAR", "system")

	compiler := cargo.NewCompiler(mockLogger)
	compiler.Binary = fakeCargo(t, `echo "$NDKBRIDGE_TEST_VAR"`)

	req := request(t)
	req.Env = []string{"NDKBRIDGE_TEST_VAR=toolchain"}
	_, err := compiler.Compile(context.Background(), req)
	require.NoError(t, err)
}

func TestCompile_ContextCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)

	compiler := cargo.NewCompiler(mockLogger)
	compiler.Binary = fakeCargo(t, `sleep 30`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := compiler.Compile(ctx, request(t))
	require.Error(t, err)
}
