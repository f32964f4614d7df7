// Package scene keeps the presentation state of a simulation run: one ECS
// entity per node with the marker the renderer draws for it.
package scene

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/nodeforce/sim"
)

// Node identifies which simulation node an entity represents.
type Node struct {
	Index int // 0-based
}

// Marker is the drawable state of a node after the latest step.
type Marker struct {
	Force     float64
	Attention float64
	Color     RGB
	Size      float64   // base + attention * attention size
	Trail     []float64 // force history, oldest first; read-only
}

// Options controls how forces and attention map to marker appearance.
type Options struct {
	MaxForce      float64 // force at the top of the color scale
	BaseSize      float64
	AttentionSize float64
}

// Scene holds one entity per node.
type Scene struct {
	world *ecs.World
	opts  Options

	nodeMapper *ecs.Map2[Node, Marker]
	markerMap  *ecs.Map1[Marker]
	filter     *ecs.Filter2[Node, Marker]

	entities []ecs.Entity
}

// New creates a scene for n nodes with markers at their zero-force state.
func New(n int, opts Options) *Scene {
	world := ecs.NewWorld()

	s := &Scene{
		world:      world,
		opts:       opts,
		nodeMapper: ecs.NewMap2[Node, Marker](world),
		markerMap:  ecs.NewMap1[Marker](world),
		filter:     ecs.NewFilter2[Node, Marker](world),
		entities:   make([]ecs.Entity, n),
	}

	for i := range s.entities {
		node := Node{Index: i}
		marker := s.idleMarker(n)
		s.entities[i] = s.nodeMapper.NewEntity(&node, &marker)
	}
	return s
}

// idleMarker is the marker shown before the first step: zero force,
// uniform attention.
func (s *Scene) idleMarker(n int) Marker {
	attention := 1.0 / float64(n)
	return Marker{
		Attention: attention,
		Color:     Viridis(0),
		Size:      s.opts.BaseSize + attention*s.opts.AttentionSize,
	}
}

// Len returns the number of nodes in the scene.
func (s *Scene) Len() int {
	return len(s.entities)
}

// Sync updates every marker from a simulation step.
func (s *Scene) Sync(step sim.Step) {
	query := s.filter.Query()
	for query.Next() {
		node, marker := query.Get()
		i := node.Index
		if i >= len(step.Forces) {
			continue
		}
		marker.Force = step.Forces[i]
		marker.Attention = step.Attention[i]
		marker.Color = Viridis(s.colorLevel(marker.Force))
		marker.Size = s.opts.BaseSize + marker.Attention*s.opts.AttentionSize
		marker.Trail = nil
		if i < step.History.Nodes() {
			marker.Trail = step.History.Node(i)
		}
	}
}

// Reset returns every marker to its idle state, e.g. before a replay.
func (s *Scene) Reset() {
	n := len(s.entities)
	for _, e := range s.entities {
		*s.markerMap.Get(e) = s.idleMarker(n)
	}
}

// Marker returns the marker of node i.
func (s *Scene) Marker(i int) *Marker {
	return s.markerMap.Get(s.entities[i])
}

// Each calls fn for every node in entity order.
func (s *Scene) Each(fn func(node Node, marker *Marker)) {
	query := s.filter.Query()
	for query.Next() {
		node, marker := query.Get()
		fn(*node, marker)
	}
}

func (s *Scene) colorLevel(force float64) float64 {
	if s.opts.MaxForce <= 0 {
		return 0
	}
	return math.Min(force/s.opts.MaxForce, 1.0)
}
