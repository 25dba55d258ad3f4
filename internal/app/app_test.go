package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.spelunk.dev/ndkbridge/internal/app"
	"go.spelunk.dev/ndkbridge/internal/core/domain"
	"go.spelunk.dev/ndkbridge/internal/core/ports"
	"go.spelunk.dev/ndkbridge/internal/core/ports/mocks"
	"go.spelunk.dev/ndkbridge/internal/engine/invoker"
	"go.uber.org/mock/gomock"
)

// recordingValidator satisfies app.Validator and remembers whether it ran.
type recordingValidator struct {
	called bool
	err    error
}

func (v *recordingValidator) Validate(domain.Variant, *domain.Project) error {
	v.called = true
	return v.err
}

func testProject(t *testing.T, abis ...domain.ABI) *domain.Project {
	t.Helper()
	return &domain.Project{
		Name:        "doukutsu",
		Libraries:   []domain.Library{domain.NewLibrary("doukutsu")},
		ABIs:        abis,
		ManifestDir: t.TempDir(),
		OutputRoot:  filepath.Join(t.TempDir(), "jniLibs"),
		TargetDir:   filepath.Join(t.TempDir(), "target"),
		APILevel:    21,
	}
}

func succeedingInvoker(t *testing.T, ctrl *gomock.Controller, project *domain.Project, logger ports.Logger) *invoker.Invoker {
	t.Helper()

	mockToolchain := mocks.NewMockToolchainLocator(ctrl)
	mockToolchain.EXPECT().
		Environment(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).
		AnyTimes()

	mockCompiler := mocks.NewMockCompiler(ctrl)
	mockCompiler.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.CompileRequest) (string, error) {
			dir := filepath.Join(project.TargetDir, req.Target.Triple, req.Profile.TargetSubdir)
			require.NoError(t, os.MkdirAll(dir, 0o750))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "libdoukutsu.so"), []byte("so"), 0o600))
			return dir, nil
		}).
		AnyTimes()

	return invoker.NewInvoker(mockCompiler, mockToolchain, logger)
}

func TestBuild_FullPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	project := testProject(t, domain.ABIArm64)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(".").Return(project, nil).Times(1)

	validator := &recordingValidator{}
	hooked := false

	a := app.New(mockLoader, succeedingInvoker(t, ctrl, project, mockLogger), validator, mockLogger).
		WithPackagerHook(func(context.Context) error {
			// Validation has already run when the packager is triggered.
			assert.True(t, validator.called)
			hooked = true
			return nil
		})

	require.NoError(t, a.Build(context.Background(), "release"))
	assert.True(t, validator.called)
	assert.True(t, hooked)

	_, err := os.Stat(filepath.Join(project.OutputRoot, "arm64-v8a", "libdoukutsu.so"))
	assert.NoError(t, err)
}

func TestBuild_UnsupportedVariantFailsBeforeLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Times(0)

	a := app.New(mockLoader, nil, &recordingValidator{}, mockLogger)
	err := a.Build(context.Background(), "staging")
	require.ErrorIs(t, err, domain.ErrUnsupportedVariant)
}

func TestBuild_UnknownArchitectureFailsBeforePipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)

	project := testProject(t, domain.ABI("mips"))
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(".").Return(project, nil).Times(1)

	validator := &recordingValidator{}
	a := app.New(mockLoader, nil, validator, mockLogger)

	err := a.Build(context.Background(), "debug")
	require.ErrorIs(t, err, domain.ErrUnknownArchitecture)
	assert.False(t, validator.called)
}

func TestBuild_CompilationFailureSkipsHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	project := testProject(t, domain.ABIArm64)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(".").Return(project, nil).Times(1)

	mockToolchain := mocks.NewMockToolchainLocator(ctrl)
	mockToolchain.EXPECT().
		Environment(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).
		Times(1)

	mockCompiler := mocks.NewMockCompiler(ctrl)
	mockCompiler.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		Return("", errors.New("linker error")).
		Times(1)

	validator := &recordingValidator{}
	hooked := false

	a := app.New(mockLoader, invoker.NewInvoker(mockCompiler, mockToolchain, mockLogger), validator, mockLogger).
		WithPackagerHook(func(context.Context) error {
			hooked = true
			return nil
		})

	err := a.Build(context.Background(), "debug")
	require.ErrorIs(t, err, domain.ErrCompilationFailed)
	assert.False(t, validator.called, "validation must not run after a failed invocation")
	assert.False(t, hooked, "packager hook must not run after a failed invocation")
}

func TestBuild_ValidationFailureSkipsHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	project := testProject(t, domain.ABIArm64)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(".").Return(project, nil).Times(1)

	validator := &recordingValidator{err: domain.ErrMissingArtifact}
	hooked := false

	a := app.New(mockLoader, succeedingInvoker(t, ctrl, project, mockLogger), validator, mockLogger).
		WithPackagerHook(func(context.Context) error {
			hooked = true
			return nil
		})

	err := a.Build(context.Background(), "debug")
	require.ErrorIs(t, err, domain.ErrMissingArtifact)
	assert.False(t, hooked)
}

func TestCheck_ValidatesWithoutCompiling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)

	project := testProject(t, domain.ABIArm64)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(".").Return(project, nil).Times(1)

	mockCompiler := mocks.NewMockCompiler(ctrl)
	mockCompiler.EXPECT().Compile(gomock.Any(), gomock.Any()).Times(0)
	mockToolchain := mocks.NewMockToolchainLocator(ctrl)

	validator := &recordingValidator{}
	a := app.New(mockLoader, invoker.NewInvoker(mockCompiler, mockToolchain, mockLogger), validator, mockLogger)

	require.NoError(t, a.Check(context.Background(), "release"))
	assert.True(t, validator.called)
}

func TestCheck_UnsupportedVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Times(0)

	a := app.New(mockLoader, nil, &recordingValidator{}, mockLogger)
	err := a.Check(context.Background(), "profile")
	require.ErrorIs(t, err, domain.ErrUnsupportedVariant)
}

func TestStepNames(t *testing.T) {
	assert.Equal(t, "native-build:debug", app.NativeStepName(domain.VariantDebug))
	assert.Equal(t, "verify:release", app.VerifyStepName(domain.VariantRelease))
	assert.Equal(t, "package-compile:debug", app.PackageStepName(domain.VariantDebug))
}
