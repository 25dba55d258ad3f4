// Package config provides the project configuration loader for ndkbridge.
package config

import (
	"os"
	"path/filepath"

	"go.spelunk.dev/ndkbridge/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the project file searched in the working directory.
const DefaultFilename = "ndkbridge.yaml"

// DefaultAPILevel is used when the project file does not pin one.
const DefaultAPILevel = 21

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory.
// An absolute Filename is used as-is, ignoring the working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.Project, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	if filepath.IsAbs(name) {
		return Load(name)
	}
	return Load(filepath.Join(cwd, name))
}

// Load reads a project file from the given path and returns a domain.Project.
// Declared ABIs and libraries are validated here so that configuration
// mistakes fail before any compiler invocation.
func Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read project file")
	}

	var bridgefile Bridgefile
	if err := yaml.Unmarshal(data, &bridgefile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse project file")
	}

	return buildProject(&bridgefile)
}

func buildProject(bf *Bridgefile) (*domain.Project, error) {
	if bf.Manifest == "" {
		return nil, zerr.New("manifest directory not set")
	}
	if bf.Output == "" {
		return nil, zerr.New("output root not set")
	}
	if len(bf.Libraries) == 0 {
		return nil, zerr.New("no libraries declared")
	}
	if len(bf.ABIs) == 0 {
		return nil, domain.ErrNoArchitectures
	}

	abis := make([]domain.ABI, 0, len(bf.ABIs))
	for _, name := range bf.ABIs {
		abi, err := domain.ParseABI(name)
		if err != nil {
			return nil, err
		}
		abis = append(abis, abi)
	}

	seen := make(map[string]bool, len(bf.Libraries))
	libraries := make([]domain.Library, 0, len(bf.Libraries))
	for _, name := range bf.Libraries {
		if seen[name] {
			return nil, zerr.With(domain.ErrDuplicateLibrary, "library", name)
		}
		seen[name] = true
		libraries = append(libraries, domain.NewLibrary(name))
	}

	targetDir := bf.TargetDir
	if targetDir == "" {
		targetDir = filepath.Join(bf.Manifest, "target")
	}

	apiLevel := bf.APILevel
	if apiLevel == 0 {
		apiLevel = DefaultAPILevel
	}

	return &domain.Project{
		Name:        bf.Project,
		Libraries:   libraries,
		ABIs:        abis,
		ManifestDir: bf.Manifest,
		OutputRoot:  bf.Output,
		TargetDir:   targetDir,
		APILevel:    apiLevel,
		Env:         bf.Environment,
	}, nil
}
