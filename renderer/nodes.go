package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nodeforce/scene"
)

// World-space layout of the node view.
const (
	nodeSpacing  = 2.0  // distance between node columns (x)
	timeDepth    = 30.0 // length of the step axis (z)
	forceHeight  = 12.0 // height of the force axis (y)
	trailRadius  = 0.12
	headRadiusK  = 0.03 // head radius = sqrt(marker size) * this
	labelSize    = 14
	axisTickSize = 12
)

var (
	colAxis  = rl.NewColor(140, 140, 140, 255)
	colGrid  = rl.NewColor(45, 45, 50, 255)
	colLabel = rl.NewColor(200, 200, 200, 255)
)

// NodeView draws the force history of every node as a 3D scatter: node
// index along x, step along z, force along y.
type NodeView struct {
	camera    rl.Camera3D
	nodes     int
	steps     int
	forceAxis float64
}

// NewNodeView creates a view for n nodes over steps steps. forceAxis is
// the force drawn at the top of the vertical axis.
func NewNodeView(nodes, steps int, forceAxis float64) *NodeView {
	v := &NodeView{
		nodes:     nodes,
		steps:     steps,
		forceAxis: forceAxis,
	}
	if v.forceAxis <= 0 {
		v.forceAxis = 1
	}

	center := rl.NewVector3(v.width()/2, forceHeight/3, timeDepth/2)
	v.camera = rl.NewCamera3D(
		rl.NewVector3(center.X+28, center.Y+16, center.Z-22),
		center,
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
	return v
}

// Update orbits the camera around the scene.
func (v *NodeView) Update() {
	rl.UpdateCamera(&v.camera, rl.CameraOrbital)
}

func (v *NodeView) width() float32 {
	if v.nodes <= 1 {
		return 0
	}
	return float32(v.nodes-1) * nodeSpacing
}

// position maps (node, step, force) to world space.
func (v *NodeView) position(node, step int, force float64) rl.Vector3 {
	z := float32(0)
	if v.steps > 1 {
		z = float32(step) / float32(v.steps-1) * timeDepth
	}
	y := float32(math.Min(force/v.forceAxis, 1.0)) * forceHeight
	return rl.NewVector3(float32(node)*nodeSpacing, y, z)
}

// Draw renders axes and markers. Must be called between BeginDrawing and
// EndDrawing.
func (v *NodeView) Draw(s *scene.Scene) {
	rl.BeginMode3D(v.camera)
	v.drawFloor()
	v.drawAxes()

	s.Each(func(node scene.Node, m *scene.Marker) {
		color := toColor(m.Color)
		for k, f := range m.Trail {
			rl.DrawSphere(v.position(node.Index, k, f), trailRadius, color)
		}
		if n := len(m.Trail); n > 0 {
			head := v.position(node.Index, n-1, m.Force)
			radius := float32(math.Sqrt(m.Size) * headRadiusK)
			rl.DrawSphere(head, radius, color)
			rl.DrawSphereWires(head, radius*1.05, 8, 8, rl.Fade(rl.White, 0.3))
		}
	})
	rl.EndMode3D()

	v.drawLabels(s)
}

func (v *NodeView) drawFloor() {
	w := v.width()
	for i := 0; i <= 10; i++ {
		z := float32(i) / 10 * timeDepth
		rl.DrawLine3D(rl.NewVector3(0, 0, z), rl.NewVector3(w, 0, z), colGrid)
	}
	for n := 0; n < v.nodes; n++ {
		x := float32(n) * nodeSpacing
		rl.DrawLine3D(rl.NewVector3(x, 0, 0), rl.NewVector3(x, 0, timeDepth), colGrid)
	}
}

func (v *NodeView) drawAxes() {
	origin := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(origin, rl.NewVector3(v.width(), 0, 0), colAxis)
	rl.DrawLine3D(origin, rl.NewVector3(0, forceHeight, 0), colAxis)
	rl.DrawLine3D(origin, rl.NewVector3(0, 0, timeDepth), colAxis)
}

// drawLabels projects axis titles, node names and force ticks to screen space.
func (v *NodeView) drawLabels(s *scene.Scene) {
	v.label("Node Index", rl.NewVector3(v.width()/2, -1.2, -1.0), labelSize)
	v.label("Timestep", rl.NewVector3(-1.5, 0, timeDepth/2), labelSize)
	v.label("Dynamic Force", rl.NewVector3(-1.0, forceHeight+0.8, 0), labelSize)

	for i := 0; i <= 4; i++ {
		f := v.forceAxis * float64(i) / 4
		v.label(fmt.Sprintf("%.0f", f), v.position(0, 0, f), axisTickSize)
	}

	s.Each(func(node scene.Node, m *scene.Marker) {
		pos := rl.NewVector3(float32(node.Index)*nodeSpacing, -0.5, -0.5)
		v.label(fmt.Sprintf("Node %d", node.Index+1), pos, axisTickSize)
	})

	rl.DrawText("Real-Time 3D Node Forces Simulation", 10, 10, 20, colLabel)
}

func (v *NodeView) label(text string, world rl.Vector3, size int32) {
	p := rl.GetWorldToScreen(world, v.camera)
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(p.X)-w/2, int32(p.Y)-size/2, size, colLabel)
}

func toColor(c scene.RGB) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}
