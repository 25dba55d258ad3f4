// Package cargo provides the native compiler adapter driving cargo
// cross-compilation, one isolated invocation per target architecture.
package cargo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.spelunk.dev/ndkbridge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Compiler implements ports.Compiler using os/exec.
type Compiler struct {
	logger ports.Logger

	// Binary is the cargo executable name, resolved against the merged
	// PATH. Overridable for tests.
	Binary string
}

// NewCompiler creates a new cargo Compiler.
func NewCompiler(logger ports.Logger) *Compiler {
	return &Compiler{
		logger: logger,
		Binary: "cargo",
	}
}

// Compile runs cargo for a single target and profile.
//
// The environment is merged with the following priority (low to high):
//  1. os.Environ() (system base)
//  2. req.Env (toolchain bindings and project overrides)
//
// PATH entries from req.Env are prepended to the system PATH so the
// toolchain binaries win. Output goes to req.TargetDir, which cargo
// partitions per triple; concurrent invocations for different targets
// never write to the same subdirectory.
func (c *Compiler) Compile(ctx context.Context, req ports.CompileRequest) (string, error) {
	args := []string{
		"build",
		"--manifest-path", filepath.Join(req.ManifestDir, "Cargo.toml"),
		"--target", req.Target.Triple,
		"--target-dir", req.TargetDir,
	}
	args = append(args, req.Profile.Flags...)

	cmdEnv := resolveEnvironment(os.Environ(), req.Env)

	executable := c.Binary
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // toolchain binary resolved from project config
	cmd.Env = cmdEnv
	cmd.Dir = req.ManifestDir
	cmd.Stdout = &logWriter{logger: c.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: c.logger, level: "warn"}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.Wrap(err, "compiler invocation failed")
		err = zerr.With(err, "target", req.Target.Triple)
		err = zerr.With(err, "exit_code", exitCode)
		return "", err
	}

	return filepath.Join(req.TargetDir, req.Target.Triple, req.Profile.TargetSubdir), nil
}

// logWriter streams subprocess output into the logger line by line.
type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		if w.level == "warn" {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}

// resolveEnvironment merges environment variables with the defined
// priority, prepending toolchain PATH entries to the system PATH.
func resolveEnvironment(sysEnv, toolchainEnv []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for _, entry := range toolchainEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
			} else {
				envMap[k] = v
			}
		} else {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the
// PATH entry of the given environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
