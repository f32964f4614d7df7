package sim

import (
	"fmt"
	"iter"
)

// State is the lifecycle phase of an Engine.
type State int

const (
	// NotStarted means no step has been emitted yet.
	NotStarted State = iota
	// Running means at least one step has been emitted and more remain.
	Running
	// Completed means every configured step has been emitted.
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Step is the record emitted for one simulation step.
type Step struct {
	Index     int       // 0-based
	Forces    []float64 // adjusted force per node for this step
	Attention []float64 // normalized forces, sums to 1
	History   History   // live engine history, Len() == Index+1 when emitted
	Uniform   bool      // total force was below epsilon; attention fell back to 1/N
}

// Engine produces simulation steps on demand. It is not safe for
// concurrent use and cannot be restarted; create a new Engine to replay.
type Engine struct {
	params    Params
	mech      Mechanics
	history   History
	attention []float64
	next      int
	state     State
}

// NewEngine validates p and returns an engine positioned before step 0.
func NewEngine(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = p.clone()

	n := len(p.Nodes)
	attention := make([]float64, n)
	for i := range attention {
		attention[i] = 1.0 / float64(n)
	}

	return &Engine{
		params:    p,
		mech:      Mechanics{Epsilon: p.Epsilon},
		history:   newHistory(n, p.Steps),
		attention: attention,
		state:     NotStarted,
	}, nil
}

// Next computes and returns the next step. It returns false once all
// configured steps have been emitted.
func (e *Engine) Next() (Step, bool) {
	if e.state == Completed {
		return Step{}, false
	}
	e.state = Running

	forces := make([]float64, len(e.params.Nodes))
	for i, node := range e.params.Nodes {
		raw := e.mech.Force(node.Load, e.params.FixedAngle, node.ConnectionAngle)
		forces[i] = e.mech.Adjust(node.Elasticity, e.params.MaxDeflection, raw)
	}

	e.attention = Normalize(forces, e.params.Epsilon)
	uniform := Total(forces) < e.params.Epsilon
	e.history.append(forces)

	step := Step{
		Index:     e.next,
		Forces:    forces,
		Attention: e.attention,
		History:   e.history,
		Uniform:   uniform,
	}

	e.next++
	if e.next == e.params.Steps {
		e.state = Completed
	}
	return step, true
}

// Steps returns the remaining steps as a sequence. Stopping the range
// early leaves the engine at a consistent step boundary.
func (e *Engine) Steps() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for {
			step, ok := e.Next()
			if !ok || !yield(step) {
				return
			}
		}
	}
}

// Done reports whether every configured step has been emitted.
func (e *Engine) Done() bool {
	return e.state == Completed
}

// State returns the current lifecycle phase.
func (e *Engine) State() State {
	return e.state
}

// StepIndex returns the index of the next step to be emitted.
func (e *Engine) StepIndex() int {
	return e.next
}

// History returns the live force history.
func (e *Engine) History() History {
	return e.history
}

// Attention returns a copy of the most recent attention distribution.
// Before the first step it is uniform.
func (e *Engine) Attention() []float64 {
	return append([]float64(nil), e.attention...)
}

// Params returns the configuration the engine was built with.
func (e *Engine) Params() Params {
	return e.params.clone()
}

// Run drives a fresh engine, calling fn for every step until the run
// completes or fn returns false. It returns the number of steps delivered.
func Run(p Params, fn func(Step) bool) (int, error) {
	e, err := NewEngine(p)
	if err != nil {
		return 0, err
	}
	count := 0
	for step := range e.Steps() {
		count++
		if !fn(step) {
			break
		}
	}
	return count, nil
}
