package main

import (
	"fmt"
	"math"

	"github.com/pthm-cable/nodeforce/config"
	"github.com/pthm-cable/nodeforce/sim"
)

// Search range for log10(elasticity).
const (
	minLogElasticity = -2.0
	maxLogElasticity = 12.0
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value
}

// ParamVector holds one log10(elasticity) parameter per node.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the parameter set for the nodes in p. Each node
// starts where its stiffness is half of its undamped force, so the first
// evaluations are away from the fully damped plateau.
func NewParamVector(p sim.Params) *ParamVector {
	mech := sim.Mechanics{Epsilon: p.Epsilon}
	specs := make([]ParamSpec, len(p.Nodes))
	for i, n := range p.Nodes {
		raw := math.Abs(mech.Force(n.Load, p.FixedAngle, n.ConnectionAngle))
		start := math.Log10(math.Max(raw/2*p.MaxDeflection/0.01, math.Pow(10, minLogElasticity)))
		specs[i] = ParamSpec{
			Name:    nodeName(i),
			Min:     minLogElasticity,
			Max:     maxLogElasticity,
			Default: math.Min(start, maxLogElasticity),
		}
	}
	return &ParamVector{Specs: specs}
}

func nodeName(i int) string {
	return fmt.Sprintf("node_%d_log_elasticity", i+1)
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return clamped
}

// Elasticity converts clamped log values into elasticity per node.
func (pv *ParamVector) Elasticity(values []float64) []float64 {
	clamped := pv.Clamp(values)
	e := make([]float64, len(clamped))
	for i, v := range clamped {
		e[i] = math.Pow(10, v)
	}
	return e
}

// ApplyToConfig replaces the node elasticity list in cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	cfg.Nodes.Elasticity = pv.Elasticity(values)
}
