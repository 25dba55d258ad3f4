// Package pipeline implements the step scheduler evaluating the
// must-complete-before edges of the build graph.
package pipeline

import (
	"context"
	"errors"
	"sync"

	"go.spelunk.dev/ndkbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Status represents the status of a pipeline step.
type Status string

const (
	// StatusPending indicates the step is waiting on its prerequisites.
	StatusPending Status = "Pending"
	// StatusRunning indicates the step is currently executing.
	StatusRunning Status = "Running"
	// StatusCompleted indicates the step finished successfully.
	StatusCompleted Status = "Completed"
	// StatusFailed indicates the step execution failed.
	StatusFailed Status = "Failed"
)

// RunFunc is the action executed for one step.
type RunFunc func(ctx context.Context) error

// Scheduler manages the execution of steps in the dependency graph.
// A step runs only after every step it requires has completed
// successfully; when a prerequisite fails, its dependents stay Pending
// and are never started.
type Scheduler struct {
	graph   *domain.Graph
	runners map[domain.InternedString]RunFunc

	mu         sync.RWMutex
	stepStatus map[domain.InternedString]Status
}

// NewScheduler creates a new Scheduler for the given graph.
// It validates the graph and returns an error if validation fails.
func NewScheduler(graph *domain.Graph) (*Scheduler, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	s := &Scheduler{
		graph:      graph,
		runners:    make(map[domain.InternedString]RunFunc),
		stepStatus: make(map[domain.InternedString]Status),
	}
	for step := range graph.Walk() {
		s.stepStatus[step.Name] = StatusPending
	}
	return s, nil
}

// Register binds the action for a named step. Every step in the graph
// must have a runner before Run is called.
func (s *Scheduler) Register(name string, fn RunFunc) error {
	interned := domain.NewInternedString(name)
	if _, ok := s.stepStatus[interned]; !ok {
		return zerr.With(domain.ErrStepNotFound, "step", name)
	}
	s.runners[interned] = fn
	return nil
}

// Status returns the current status of a step.
func (s *Scheduler) Status(name string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stepStatus[domain.NewInternedString(name)]
}

func (s *Scheduler) updateStatus(name domain.InternedString, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepStatus[name] = status
}

// Run executes the steps in the graph with the specified parallelism.
// It returns once every runnable step has terminated; steps whose
// prerequisites failed are left Pending.
func (s *Scheduler) Run(ctx context.Context, parallelism int) error {
	for step := range s.graph.Walk() {
		if _, ok := s.runners[step.Name]; !ok {
			return zerr.With(zerr.New("no runner registered"), "step", step.Name.String())
		}
	}

	state := s.newRunState(ctx, parallelism)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

type result struct {
	step domain.InternedString
	err  error
}

type schedulerRunState struct {
	inDegree    map[domain.InternedString]int
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	parallelism int
	s           *Scheduler
}

func (s *Scheduler) newRunState(ctx context.Context, parallelism int) *schedulerRunState {
	stepCount := s.graph.StepCount()
	inDegree := make(map[domain.InternedString]int, stepCount)

	for step := range s.graph.Walk() {
		inDegree[step.Name] = len(step.Requires)
	}

	var ready []domain.InternedString
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}

	return &schedulerRunState{
		inDegree:    inDegree,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		parallelism: parallelism,
		s:           s,
	}
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		stepName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(stepName, StatusRunning)

		go func(name domain.InternedString) {
			state.resultsCh <- result{step: name, err: state.s.runners[name](state.ctx)}
		}(stepName)
	}
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--
	if res.err != nil {
		wrappedErr := zerr.With(zerr.Wrap(res.err, "step failed"), "step", res.step.String())
		state.errs = errors.Join(state.errs, wrappedErr)
		state.s.updateStatus(res.step, StatusFailed)
		return
	}

	state.s.updateStatus(res.step, StatusCompleted)
	for _, dep := range state.s.graph.Dependents(res.step) {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
