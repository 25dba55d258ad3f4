package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.spelunk.dev/ndkbridge/internal/adapters/config"
	"go.spelunk.dev/ndkbridge/internal/core/domain"
)

func writeBridgefile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return dir
}

func TestLoad_Complete(t *testing.T) {
	dir := writeBridgefile(t, `
version: "1"
project: doukutsu
manifest: native
output: app/src/main/jniLibs
targetDir: native/out
apiLevel: 24
abis:
  - arm64-v8a
  - x86_64
libraries:
  - doukutsu
environment:
  RUSTFLAGS: "-C debuginfo=1"
`)

	loader := &config.FileConfigLoader{}
	project, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "doukutsu", project.Name)
	assert.Equal(t, "native", project.ManifestDir)
	assert.Equal(t, "app/src/main/jniLibs", project.OutputRoot)
	assert.Equal(t, "native/out", project.TargetDir)
	assert.Equal(t, 24, project.APILevel)
	assert.Equal(t, []domain.ABI{domain.ABIArm64, domain.ABIX8664}, project.ABIs)
	require.Len(t, project.Libraries, 1)
	assert.Equal(t, "libdoukutsu.so", project.Libraries[0].FileName())
	assert.Equal(t, "-C debuginfo=1", project.Env["RUSTFLAGS"])
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeBridgefile(t, `
project: doukutsu
manifest: native
output: jniLibs
abis: [arm64-v8a]
libraries: [doukutsu]
`)

	loader := &config.FileConfigLoader{}
	project, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("native", "target"), project.TargetDir)
	assert.Equal(t, config.DefaultAPILevel, project.APILevel)
}

func TestLoad_UnknownABI(t *testing.T) {
	dir := writeBridgefile(t, `
project: doukutsu
manifest: native
output: jniLibs
abis: [arm64-v8a, mips]
libraries: [doukutsu]
`)

	loader := &config.FileConfigLoader{}
	_, err := loader.Load(dir)
	require.ErrorIs(t, err, domain.ErrUnknownArchitecture)
}

func TestLoad_NoABIs(t *testing.T) {
	dir := writeBridgefile(t, `
project: doukutsu
manifest: native
output: jniLibs
libraries: [doukutsu]
`)

	loader := &config.FileConfigLoader{}
	_, err := loader.Load(dir)
	require.ErrorIs(t, err, domain.ErrNoArchitectures)
}

func TestLoad_DuplicateLibrary(t *testing.T) {
	dir := writeBridgefile(t, `
project: doukutsu
manifest: native
output: jniLibs
abis: [arm64-v8a]
libraries: [doukutsu, doukutsu]
`)

	loader := &config.FileConfigLoader{}
	_, err := loader.Load(dir)
	require.ErrorIs(t, err, domain.ErrDuplicateLibrary)
}

func TestLoad_MissingFile(t *testing.T) {
	loader := &config.FileConfigLoader{}
	_, err := loader.Load(t.TempDir())
	require.Error(t, err)
}

func TestLoad_AbsoluteFilenameIgnoresWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ndkbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project: doukutsu
manifest: native
output: jniLibs
abis: [arm64-v8a]
libraries: [doukutsu]
`), 0o600))
	require.True(t, filepath.IsAbs(path))

	loader := &config.FileConfigLoader{Filename: path}
	project, err := loader.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "doukutsu", project.Name)
}

func TestLoad_CustomFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project: doukutsu
manifest: native
output: jniLibs
abis: [x86]
libraries: [doukutsu]
`), 0o600))

	loader := &config.FileConfigLoader{Filename: "custom.yaml"}
	project, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.ABI{domain.ABIX86}, project.ABIs)
}
