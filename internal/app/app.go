// Package app implements the application layer for ndkbridge.
package app

import (
	"context"
	"runtime"

	"go.spelunk.dev/ndkbridge/internal/adapters/config"
	"go.spelunk.dev/ndkbridge/internal/core/domain"
	"go.spelunk.dev/ndkbridge/internal/core/ports"
	"go.spelunk.dev/ndkbridge/internal/engine/invoker"
	"go.spelunk.dev/ndkbridge/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App wires the orchestration for one packager build: native compilation
// for the requested variant, placement validation, then the packager's
// compile-trigger hook — strictly in that order.
type App struct {
	configLoader ports.ConfigLoader
	invoker      *invoker.Invoker
	validator    Validator
	logger       ports.Logger

	packagerHook pipeline.RunFunc
	parallelism  int
}

// Validator is the placement validation the app runs after a successful
// invocation.
type Validator interface {
	Validate(variant domain.Variant, project *domain.Project) error
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, inv *invoker.Invoker, validator Validator, logger ports.Logger) *App {
	return &App{
		configLoader: loader,
		invoker:      inv,
		validator:    validator,
		logger:       logger,
		parallelism:  runtime.NumCPU(),
	}
}

// WithPackagerHook replaces the packager compile-trigger step. The
// embedding packager registers its source-compilation entry point here;
// the default hook only reports the hand-off.
func (a *App) WithPackagerHook(fn pipeline.RunFunc) *App {
	a.packagerHook = fn
	return a
}

// SetConfigPath points the app at a different project file.
func (a *App) SetConfigPath(path string) {
	a.configLoader = &config.FileConfigLoader{Filename: path}
}

// NativeStepName returns the pipeline step name for the native build of
// a variant.
func NativeStepName(v domain.Variant) string {
	return "native-build:" + string(v)
}

// VerifyStepName returns the pipeline step name for placement validation
// of a variant.
func VerifyStepName(v domain.Variant) string {
	return "verify:" + string(v)
}

// PackageStepName returns the pipeline step name for the packager
// compile-trigger hook of a variant.
func PackageStepName(v domain.Variant) string {
	return "package-compile:" + string(v)
}

// Build executes the full pipeline for the given variant: native build,
// placement validation, packager hook. Variant and architecture mapping
// errors surface before any compiler invocation.
func (a *App) Build(ctx context.Context, variantName string) error {
	variant, err := domain.ParseVariant(variantName)
	if err != nil {
		return err
	}

	project, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	// Resolution errors must fail before the pipeline starts compiling.
	if _, err := domain.ResolveTargets(project.ABIs); err != nil {
		return err
	}

	sched, err := a.buildPipeline(variant, project)
	if err != nil {
		return err
	}

	if err := sched.Run(ctx, a.parallelism); err != nil {
		return zerr.Wrap(err, "build failed")
	}

	return nil
}

// Check re-validates an existing output tree for the given variant
// without compiling anything.
func (a *App) Check(ctx context.Context, variantName string) error {
	variant, err := domain.ParseVariant(variantName)
	if err != nil {
		return err
	}

	project, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return a.validator.Validate(variant, project)
}

// buildPipeline declares the per-variant dependency edges and binds the
// step actions. The contract preserved here: the packager hook for a
// variant never starts before the entire invocation for that variant has
// finished and validated.
func (a *App) buildPipeline(variant domain.Variant, project *domain.Project) (*pipeline.Scheduler, error) {
	graph := domain.NewGraph()

	nativeName := domain.NewInternedString(NativeStepName(variant))
	verifyName := domain.NewInternedString(VerifyStepName(variant))
	packageName := domain.NewInternedString(PackageStepName(variant))

	steps := []*domain.Step{
		{Name: nativeName},
		{Name: verifyName, Requires: []domain.InternedString{nativeName}},
		{Name: packageName, Requires: []domain.InternedString{verifyName}},
	}
	for _, step := range steps {
		if err := graph.AddStep(step); err != nil {
			return nil, err
		}
	}

	sched, err := pipeline.NewScheduler(graph)
	if err != nil {
		return nil, err
	}

	if err := sched.Register(nativeName.String(), func(ctx context.Context) error {
		_, err := a.invoker.Run(ctx, project, variant)
		return err
	}); err != nil {
		return nil, err
	}

	if err := sched.Register(verifyName.String(), func(_ context.Context) error {
		return a.validator.Validate(variant, project)
	}); err != nil {
		return nil, err
	}

	hook := a.packagerHook
	if hook == nil {
		hook = func(_ context.Context) error {
			a.logger.Info("native artifacts ready, handing off to packager (" + string(variant) + ")")
			return nil
		}
	}
	if err := sched.Register(packageName.String(), hook); err != nil {
		return nil, err
	}

	return sched, nil
}
