// Package invoker implements the native build invoker: one compiler run
// per resolved target architecture, fanned out concurrently and joined
// before control returns to the pipeline.
package invoker

import (
	"context"
	"io"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.spelunk.dev/ndkbridge/internal/adapters/ndk"
	"go.spelunk.dev/ndkbridge/internal/core/domain"
	"go.spelunk.dev/ndkbridge/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Invoker coordinates per-architecture compiler invocations for one
// variant. It owns the lifecycle of the resulting Invocation.
type Invoker struct {
	compiler    ports.Compiler
	toolchain   ports.ToolchainLocator
	logger      ports.Logger
	parallelism int
}

// NewInvoker creates a new Invoker.
func NewInvoker(compiler ports.Compiler, toolchain ports.ToolchainLocator, logger ports.Logger) *Invoker {
	return &Invoker{
		compiler:    compiler,
		toolchain:   toolchain,
		logger:      logger,
		parallelism: runtime.NumCPU(),
	}
}

// WithParallelism bounds the number of concurrent compiler invocations.
func (i *Invoker) WithParallelism(n int) *Invoker {
	if n > 0 {
		i.parallelism = n
	}
	return i
}

// Run resolves the project's targets, maps the variant to a compiler
// profile, and runs one compiler invocation per target.
//
// Resolution and mapping errors surface before any compiler runs. The
// per-target invocations may execute concurrently; Run returns only after
// every one of them has terminated. If any target failed, the returned
// Invocation is marked failed and ErrCompilationFailed names the failing
// ABIs; there is no retry. On success the artifacts are staged under
// <OutputRoot>/<abi>/, each ABI subdirectory recreated from scratch so a
// partial tree from a cancelled run cannot survive.
func (i *Invoker) Run(ctx context.Context, project *domain.Project, variant domain.Variant) (*domain.Invocation, error) {
	targets, err := domain.ResolveTargets(project.ABIs)
	if err != nil {
		return nil, err
	}

	profile, err := domain.MapProfile(variant)
	if err != nil {
		return nil, err
	}

	inv := &domain.Invocation{
		Variant: variant,
		Profile: profile,
		Results: make([]domain.CompilationResult, len(targets)),
	}

	var g errgroup.Group
	g.SetLimit(i.parallelism)
	for idx, target := range targets {
		g.Go(func() error {
			inv.Results[idx] = i.compileTarget(ctx, project, profile, target)
			return nil
		})
	}
	// Join barrier: results are recorded per target, never short-circuited.
	_ = g.Wait()

	if inv.Failed() {
		abis := make([]string, 0, len(inv.Results))
		for _, abi := range inv.FailedABIs() {
			abis = append(abis, string(abi))
		}
		failErr := zerr.With(domain.ErrCompilationFailed, "variant", string(variant))
		return inv, zerr.With(failErr, "failed_abis", strings.Join(abis, ", "))
	}

	if err := i.stage(project, inv); err != nil {
		return inv, err
	}

	return inv, nil
}

// compileTarget runs one isolated compiler invocation and records its
// outcome. Failures are captured in the result, not returned: the caller
// decides after the barrier.
//
// The compiler environment is assembled toolchain-first, project
// overrides last, so overrides win the merge downstream.
func (i *Invoker) compileTarget(ctx context.Context, project *domain.Project, profile domain.Profile, target domain.CompilerTarget) domain.CompilationResult {
	result := domain.CompilationResult{Target: target}

	env, err := i.toolchain.Environment(target, project.APILevel, project.Env)
	if err != nil {
		result.Err = err
		i.logger.Error(zerr.With(err, "abi", string(target.ABI)))
		return result
	}
	env = append(env, overrideEnv(project.Env)...)

	i.logger.Info("compiling " + target.Triple + " (" + profile.Name + ")")

	start := time.Now()
	artifactDir, err := i.compiler.Compile(ctx, ports.CompileRequest{
		Target:      target,
		Profile:     profile,
		ManifestDir: project.ManifestDir,
		TargetDir:   project.TargetDir,
		Env:         env,
	})
	result.Duration = time.Since(start)

	if err != nil {
		result.Err = zerr.With(err, "abi", string(target.ABI))
		i.logger.Error(result.Err)
		return result
	}

	result.ArtifactDir = artifactDir
	return result
}

// overrideEnv converts the project's environment overrides into
// "KEY=VALUE" entries for the compiler, in deterministic order. The
// toolchain root variable is consumed by the locator and never forwarded.
func overrideEnv(overrides map[string]string) []string {
	env := make([]string, 0, len(overrides))
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		if key == ndk.RootEnvVar {
			continue
		}
		env = append(env, key+"="+overrides[key])
	}
	return env
}

// stage copies the produced shared libraries into the packager's search
// tree, one subdirectory per ABI. Each subdirectory is fully owned by its
// invocation and recreated on every build. A library the compiler did not
// produce is left for the placement validator to report.
func (i *Invoker) stage(project *domain.Project, inv *domain.Invocation) error {
	for _, result := range inv.Results {
		destDir := filepath.Join(project.OutputRoot, string(result.Target.ABI))
		if err := os.RemoveAll(destDir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to reset output directory"), "path", destDir)
		}
		if err := os.MkdirAll(destDir, 0o750); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", destDir)
		}

		for _, lib := range project.Libraries {
			src := filepath.Join(result.ArtifactDir, lib.FileName())
			if _, err := os.Stat(src); err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", src)
			}
			if err := copyFile(src, filepath.Join(destDir, lib.FileName())); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // path derived from project config
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open artifact"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec // path derived from project config
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create staged artifact"), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy artifact"), "path", dst)
	}
	return out.Close()
}
