package scene

import (
	"math"
	"testing"

	"github.com/pthm-cable/nodeforce/sim"
)

var testOptions = Options{MaxForce: 100, BaseSize: 100, AttentionSize: 300}

func TestViridisEndpointsAndClamping(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want RGB
	}{
		{"zero", 0, RGB{0x44, 0x01, 0x54}},
		{"one", 1, RGB{0xFD, 0xE7, 0x25}},
		{"below range", -3, RGB{0x44, 0x01, 0x54}},
		{"above range", 7, RGB{0xFD, 0xE7, 0x25}},
		{"NaN", math.NaN(), RGB{0x44, 0x01, 0x54}},
		{"midpoint stop", 0.5, RGB{0x21, 0x90, 0x8C}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Viridis(tc.t); got != tc.want {
				t.Errorf("Viridis(%g) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

func TestViridisInterpolates(t *testing.T) {
	// Halfway between the first two stops.
	got := Viridis(1.0 / 16)
	want := RGB{
		R: uint8(math.Round((0x44 + 0x47) / 2.0)),
		G: uint8(math.Round((0x01 + 0x2D) / 2.0)),
		B: uint8(math.Round((0x54 + 0x7B) / 2.0)),
	}
	if got != want {
		t.Errorf("Viridis(1/16) = %v, want %v", got, want)
	}
}

func TestNewSceneIdleMarkers(t *testing.T) {
	s := New(4, testOptions)
	if s.Len() != 4 {
		t.Fatalf("expected 4 nodes, got %d", s.Len())
	}
	for i := 0; i < 4; i++ {
		m := s.Marker(i)
		if m.Attention != 0.25 || m.Size != 175 || m.Force != 0 {
			t.Errorf("node %d: unexpected idle marker %+v", i, *m)
		}
	}
}

func TestSceneSync(t *testing.T) {
	p := sim.DefaultParams()
	for i := range p.Nodes {
		p.Nodes[i].Elasticity = float64(100 * (i + 1))
	}
	e, err := sim.NewEngine(p)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	e.Next()
	step, _ := e.Next()

	s := New(len(p.Nodes), testOptions)
	s.Sync(step)

	seen := 0
	s.Each(func(node Node, m *Marker) {
		seen++
		i := node.Index
		if m.Force != step.Forces[i] || m.Attention != step.Attention[i] {
			t.Errorf("node %d: marker does not match step", i)
		}
		if want := 100 + 300*step.Attention[i]; m.Size != want {
			t.Errorf("node %d: size %g, want %g", i, m.Size, want)
		}
		if want := Viridis(step.Forces[i] / 100); m.Color != want {
			t.Errorf("node %d: color %v, want %v", i, m.Color, want)
		}
		if len(m.Trail) != 2 {
			t.Errorf("node %d: expected trail of 2, got %d", i, len(m.Trail))
		}
	})
	if seen != len(p.Nodes) {
		t.Errorf("expected %d markers, visited %d", len(p.Nodes), seen)
	}
}

func TestSceneColorSaturates(t *testing.T) {
	s := New(1, Options{MaxForce: 10, BaseSize: 1, AttentionSize: 1})
	step := sim.Step{Forces: []float64{50}, Attention: []float64{1}}
	s.Sync(step)

	if got := s.Marker(0).Color; got != Viridis(1) {
		t.Errorf("expected saturated color, got %v", got)
	}
}

func TestSceneReset(t *testing.T) {
	s := New(2, testOptions)
	s.Sync(sim.Step{Forces: []float64{30, 10}, Attention: []float64{0.75, 0.25}})
	s.Reset()

	for i := 0; i < 2; i++ {
		m := s.Marker(i)
		if m.Force != 0 || m.Attention != 0.5 || m.Trail != nil {
			t.Errorf("node %d: expected idle marker after reset, got %+v", i, *m)
		}
	}
}
