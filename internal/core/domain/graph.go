package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph represents the must-complete-before relations between pipeline
// steps. Edges are declared once at configuration time and evaluated by
// the pipeline scheduler on every run.
type Graph struct {
	steps          map[InternedString]Step
	dependents     map[InternedString][]InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		steps:      make(map[InternedString]Step),
		dependents: make(map[InternedString][]InternedString),
	}
}

// AddStep adds a step to the graph.
// It returns an error if a step with the same name already exists.
func (g *Graph) AddStep(s *Step) error {
	if _, exists := g.steps[s.Name]; exists {
		return zerr.With(ErrStepAlreadyExists, "step", s.Name.String())
	}
	g.steps[s.Name] = *s
	return nil
}

// StepCount returns the number of steps in the graph.
func (g *Graph) StepCount() int {
	return len(g.steps)
}

// Validate checks for missing prerequisites and cycles using a
// topological sort. It populates the execution order and the reverse
// adjacency used by Dependents.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.steps))
	g.dependents = make(map[InternedString][]InternedString, len(g.steps))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		step, exists := g.steps[u]
		if !exists {
			return zerr.With(ErrMissingPrerequisite, "prerequisite", u.String())
		}

		for _, req := range step.Requires {
			g.dependents[req] = append(g.dependents[req], u)
			if visited[req] == 1 {
				return g.buildCycleError(path, req)
			}
			if visited[req] == 0 {
				if err := visit(req); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for name := range g.steps {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error carrying the cycle path.
func (g *Graph) buildCycleError(path []InternedString, req InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == req {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += req.String()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator that yields steps in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.steps[name]) {
				return
			}
		}
	}
}

// Dependents returns the steps that require the given step.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}
