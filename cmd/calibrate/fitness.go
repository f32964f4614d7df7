package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/nodeforce/sim"
)

// degeneratePenalty is added when every force is damped to zero, so the
// search is pushed off the uniform-attention plateau.
const degeneratePenalty = 1.0

// FitnessEvaluator scores elasticity vectors by how closely the run's
// final attention matches a target distribution.
type FitnessEvaluator struct {
	params *ParamVector
	base   sim.Params
	target []float64

	lastAttention []float64
}

// NewFitnessEvaluator creates a new evaluator. target must have one
// non-negative weight per node; it is normalized to sum to 1.
func NewFitnessEvaluator(params *ParamVector, base sim.Params, target []float64) (*FitnessEvaluator, error) {
	if len(target) != len(base.Nodes) {
		return nil, fmt.Errorf("target has %d weights for %d nodes", len(target), len(base.Nodes))
	}
	for i, w := range target {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("target weight %d is invalid: %g", i, w)
		}
	}
	sum := floats.Sum(target)
	if sum <= 0 {
		return nil, fmt.Errorf("target weights sum to %g", sum)
	}
	normalized := make([]float64, len(target))
	floats.ScaleTo(normalized, 1/sum, target)

	return &FitnessEvaluator{
		params: params,
		base:   base,
		target: normalized,
	}, nil
}

// Target returns the normalized target distribution.
func (fe *FitnessEvaluator) Target() []float64 {
	return fe.target
}

// LastAttention returns the final attention of the most recent evaluation.
func (fe *FitnessEvaluator) LastAttention() []float64 {
	return fe.lastAttention
}

// Evaluate runs the simulation with the given raw log10 elasticity values
// and returns the squared distance to the target (lower = better).
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	p := fe.base
	p.Nodes = append([]sim.NodeParams(nil), fe.base.Nodes...)
	for i, e := range fe.params.Elasticity(raw) {
		p.Nodes[i].Elasticity = e
	}

	var last sim.Step
	if _, err := sim.Run(p, func(s sim.Step) bool {
		last = s
		return true
	}); err != nil {
		return math.Inf(1)
	}
	fe.lastAttention = last.Attention

	loss := floats.Distance(last.Attention, fe.target, 2)
	loss *= loss
	if floats.Sum(last.Forces) < p.Epsilon {
		loss += degeneratePenalty
	}
	return loss
}

// parseTarget parses a comma-separated list of weights.
func parseTarget(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	weights := make([]float64, 0, len(parts))
	for _, part := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing target weight %q: %w", part, err)
		}
		weights = append(weights, w)
	}
	return weights, nil
}
