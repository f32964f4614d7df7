package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when a run configuration cannot be simulated.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// NodeParams is the fixed parameter triple of one node.
type NodeParams struct {
	Load            float64 // force units, > 0
	ConnectionAngle float64 // radians
	Elasticity      float64 // stiffness units, > 0
}

// Params is the immutable configuration of a single run.
type Params struct {
	Nodes         []NodeParams
	Steps         int
	Epsilon       float64
	FixedAngle    float64 // angle fed to the force formula for every node
	MaxDeflection float64
}

// DefaultParams returns the reference six-node configuration.
func DefaultParams() Params {
	// Runtime float64 division, not constant folding: pi/d must round like
	// every other IEEE-754 implementation.
	pi := math.Pi
	nodes, _ := NewNodeParams(
		[]float64{50, 60, 40, 55, 45, 65},
		[]float64{pi / 4, pi / 3, pi / 6, pi / 4, pi / 5, pi / 3},
		[]float64{2e11, 5e9, 5e9, 2e10, 1e10, 5e9},
	)
	return Params{
		Nodes:         nodes,
		Steps:         50,
		Epsilon:       DefaultEpsilon,
		FixedAngle:    pi / 6,
		MaxDeflection: 1.0,
	}
}

// NewNodeParams zips parallel per-node lists into node triples.
func NewNodeParams(loads, connectionAngles, elasticity []float64) ([]NodeParams, error) {
	if len(loads) != len(connectionAngles) || len(loads) != len(elasticity) {
		return nil, fmt.Errorf("%w: node lists differ in length (loads=%d, connection_angles=%d, elasticity=%d)",
			ErrInvalidParams, len(loads), len(connectionAngles), len(elasticity))
	}
	nodes := make([]NodeParams, len(loads))
	for i := range nodes {
		nodes[i] = NodeParams{
			Load:            loads[i],
			ConnectionAngle: connectionAngles[i],
			Elasticity:      elasticity[i],
		}
	}
	return nodes, nil
}

// Validate reports the first problem that would make the run ill-defined.
func (p Params) Validate() error {
	if len(p.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidParams)
	}
	if p.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidParams, p.Steps)
	}
	if !positive(p.Epsilon) {
		return fmt.Errorf("%w: epsilon must be positive, got %g", ErrInvalidParams, p.Epsilon)
	}
	if !positive(p.MaxDeflection) {
		return fmt.Errorf("%w: max deflection must be positive, got %g", ErrInvalidParams, p.MaxDeflection)
	}
	if !finite(p.FixedAngle) {
		return fmt.Errorf("%w: fixed angle must be finite, got %g", ErrInvalidParams, p.FixedAngle)
	}
	for i, n := range p.Nodes {
		if !positive(n.Load) {
			return fmt.Errorf("%w: node %d: load must be positive, got %g", ErrInvalidParams, i, n.Load)
		}
		if !positive(n.Elasticity) {
			return fmt.Errorf("%w: node %d: elasticity must be positive, got %g", ErrInvalidParams, i, n.Elasticity)
		}
		if !finite(n.ConnectionAngle) {
			return fmt.Errorf("%w: node %d: connection angle must be finite, got %g", ErrInvalidParams, i, n.ConnectionAngle)
		}
	}
	return nil
}

// clone copies the node slice so callers cannot mutate a running engine.
func (p Params) clone() Params {
	p.Nodes = append([]NodeParams(nil), p.Nodes...)
	return p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}
