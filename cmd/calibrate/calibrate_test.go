package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/nodeforce/config"
	"github.com/pthm-cable/nodeforce/sim"
)

func TestParamVectorNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector(sim.DefaultParams())
	if pv.Dim() != 6 {
		t.Fatalf("expected 6 parameters, got %d", pv.Dim())
	}

	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("param %d: %g -> %g", i, raw[i], back[i])
		}
	}
}

func TestParamVectorDefaultsAreUndamped(t *testing.T) {
	p := sim.DefaultParams()
	pv := NewParamVector(p)
	for i, e := range pv.Elasticity(pv.DefaultVector()) {
		p.Nodes[i].Elasticity = e
	}

	e, err := sim.NewEngine(p)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	step, _ := e.Next()
	for i, f := range step.Forces {
		if f <= 0 {
			t.Errorf("node %d: expected positive force at the starting point, got %g", i, f)
		}
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector(sim.DefaultParams())
	v := pv.Clamp([]float64{-10, 20, 3, 3, 3, 3})
	if v[0] != minLogElasticity || v[1] != maxLogElasticity || v[2] != 3 {
		t.Errorf("unexpected clamp result %v", v)
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	pv := NewParamVector(sim.DefaultParams())
	pv.ApplyToConfig(cfg, []float64{0, 1, 2, 3, 4, 5})

	want := []float64{1, 10, 100, 1000, 10000, 100000}
	for i, w := range want {
		if math.Abs(cfg.Nodes.Elasticity[i]-w)/w > 1e-12 {
			t.Errorf("node %d: elasticity %g, want %g", i, cfg.Nodes.Elasticity[i], w)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("calibrated config is invalid: %v", err)
	}
}

func TestEvaluateZeroAtOwnAttention(t *testing.T) {
	base := sim.DefaultParams()
	pv := NewParamVector(base)
	raw := pv.DefaultVector()

	// Use the attention produced by raw as the target.
	reference, err := NewFitnessEvaluator(pv, base, []float64{1, 1, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewFitnessEvaluator failed: %v", err)
	}
	reference.Evaluate(raw)
	target := append([]float64(nil), reference.LastAttention()...)

	fe, err := NewFitnessEvaluator(pv, base, target)
	if err != nil {
		t.Fatalf("NewFitnessEvaluator failed: %v", err)
	}
	if loss := fe.Evaluate(raw); loss > 1e-20 {
		t.Errorf("expected ~0 loss at the target's own parameters, got %g", loss)
	}
}

func TestEvaluatePenalizesFullDamping(t *testing.T) {
	base := sim.DefaultParams()
	pv := NewParamVector(base)
	fe, err := NewFitnessEvaluator(pv, base, []float64{1, 1, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewFitnessEvaluator failed: %v", err)
	}

	// Maximum elasticity damps everything: attention is uniform and equal
	// to the target, but the plateau is penalized.
	stiff := []float64{12, 12, 12, 12, 12, 12}
	if loss := fe.Evaluate(stiff); math.Abs(loss-degeneratePenalty) > 1e-12 {
		t.Errorf("expected loss equal to the degenerate penalty, got %g", loss)
	}
}

func TestNewFitnessEvaluatorRejectsBadTarget(t *testing.T) {
	base := sim.DefaultParams()
	pv := NewParamVector(base)
	for _, target := range [][]float64{
		{1, 2, 3},
		{0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, -1},
		{1, 1, 1, 1, 1, math.NaN()},
	} {
		if _, err := NewFitnessEvaluator(pv, base, target); err == nil {
			t.Errorf("expected error for target %v", target)
		}
	}
}

func TestParseTarget(t *testing.T) {
	got, err := parseTarget("0.5, 0.25,0.25")
	if err != nil {
		t.Fatalf("parseTarget failed: %v", err)
	}
	if len(got) != 3 || got[0] != 0.5 || got[1] != 0.25 || got[2] != 0.25 {
		t.Errorf("unexpected weights %v", got)
	}
	if _, err := parseTarget("1,x"); err == nil {
		t.Error("expected error for non-numeric weight")
	}
}
