package sim

import (
	"math"
	"testing"
)

func TestComputeForce(t *testing.T) {
	tests := []struct {
		name       string
		load       float64
		angle      float64
		connection float64
		want       float64
	}{
		{"right angle connection", 10, math.Pi / 2, math.Pi / 2, 10},
		{"thirty degrees", 40, math.Pi / 6, math.Pi / 6, 40},
		{"zero angle", 50, 0, math.Pi / 4, 0},
		{"reference node 1", 50, math.Pi / 6, math.Pi / 4, 50 * math.Sin(math.Pi/6) / math.Sin(math.Pi/4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeForce(tc.load, tc.angle, tc.connection)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("ComputeForce(%g, %g, %g) = %g, want %g", tc.load, tc.angle, tc.connection, got, tc.want)
			}
		})
	}
}

func TestComputeForceDegenerateConnection(t *testing.T) {
	got := ComputeForce(50, math.Pi/6, 0)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("expected finite force for zero connection angle, got %g", got)
	}

	want := 50 * math.Sin(math.Pi/6) / DefaultEpsilon
	if got != want {
		t.Errorf("expected denominator floored to epsilon: got %g, want %g", got, want)
	}
}

func TestComputeForceFloorIsPositive(t *testing.T) {
	// A tiny negative sine is replaced by +epsilon, not -epsilon.
	m := Mechanics{Epsilon: 1e-3}
	got := m.Force(1, math.Pi/2, -1e-6)
	if got <= 0 {
		t.Errorf("expected positive force after flooring, got %g", got)
	}
	if math.Abs(got-1e3) > 1e-6 {
		t.Errorf("expected 1/epsilon = 1000, got %g", got)
	}
}

func TestAdjustForce(t *testing.T) {
	tests := []struct {
		name       string
		elasticity float64
		maxDefl    float64
		load       float64
		want       float64
	}{
		{"stiffness dominates", 2e11, 1.0, 35, 0},
		{"partial damping", 1000, 1.0, 40, 30},
		{"deflection halves stiffness", 1000, 2.0, 40, 35},
		{"zero elasticity keeps load", 1e-300, 1.0, 40, 40},
		{"zero load", 1000, 1.0, 0, 0},
		{"negative load", 1000, 1.0, -5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AdjustForce(tc.elasticity, tc.maxDefl, tc.load)
			if math.IsNaN(got) {
				t.Fatalf("AdjustForce returned NaN")
			}
			if got < 0 {
				t.Fatalf("AdjustForce returned negative %g", got)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("AdjustForce(%g, %g, %g) = %g, want %g", tc.elasticity, tc.maxDefl, tc.load, got, tc.want)
			}
		})
	}
}

func TestAdjustForceNoNegativeZero(t *testing.T) {
	got := AdjustForce(1000, 1.0, -5)
	if math.Signbit(got) {
		t.Errorf("expected +0, got %g with sign bit set", got)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]float64{1, 3, 0, 4}, DefaultEpsilon)
	want := []float64{0.125, 0.375, 0, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attention[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		forces []float64
	}{
		{"all zero", []float64{0, 0, 0, 0, 0, 0}},
		{"below epsilon", []float64{1e-14, 0, 1e-14}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.forces, DefaultEpsilon)
			want := 1.0 / float64(len(tc.forces))
			for i, a := range got {
				if a != want {
					t.Errorf("attention[%d] = %g, want uniform %g", i, a, want)
				}
			}
		})
	}
}

func TestNormalizeThresholdUsesTotal(t *testing.T) {
	forces := []float64{0.1, 0.2, 0.3}
	total := Total(forces)

	tests := []struct {
		name    string
		epsilon float64
		uniform bool
	}{
		{"epsilon equal to total", total, false},
		{"epsilon just above total", math.Nextafter(total, math.Inf(1)), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(forces, tc.epsilon)
			for i, a := range got {
				want := forces[i] / total
				if tc.uniform {
					want = 1.0 / 3.0
				}
				if a != want {
					t.Errorf("attention[%d] = %g, want %g", i, a, want)
				}
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(nil, DefaultEpsilon); len(got) != 0 {
		t.Errorf("expected empty attention, got %v", got)
	}
}
