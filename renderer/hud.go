package renderer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nodeforce/scene"
)

// HUD layout
const (
	hudWidth   = 260
	hudPadding = 10
	barHeight  = 14
)

// HUDState is what the HUD displays.
type HUDState struct {
	Step     int // steps emitted so far
	Steps    int // configured total
	State    string
	Paused   bool
	Run      int     // 1-based replay counter
	Rate     float32 // steps per second
	MaxRate  float32
	Finished bool
}

// HUDActions reports what the user asked for this frame.
type HUDActions struct {
	TogglePause bool
	Restart     bool
	Rate        float32
}

// DrawHUD draws the control panel and attention bars on the right side of
// the screen and returns the user's input.
func DrawHUD(s *scene.Scene, st HUDState) HUDActions {
	actions := HUDActions{Rate: st.Rate}

	x := float32(rl.GetScreenWidth() - hudWidth - hudPadding)
	y := float32(hudPadding)

	rl.DrawRectangle(int32(x)-hudPadding, 0, hudWidth+2*hudPadding, int32(rl.GetScreenHeight()), rl.Fade(rl.Black, 0.6))

	gui.Label(rl.Rectangle{X: x, Y: y, Width: hudWidth, Height: 20},
		fmt.Sprintf("Step %d / %d  (run %d)", st.Step, st.Steps, st.Run))
	y += 22
	gui.Label(rl.Rectangle{X: x, Y: y, Width: hudWidth, Height: 20}, "State: "+st.State)
	y += 28

	pauseText := "Pause"
	if st.Paused {
		pauseText = "Resume"
	}
	if !st.Finished && gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 28}, pauseText) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: 28}, "Restart") {
		actions.Restart = true
	}
	y += 40

	gui.Label(rl.Rectangle{X: x, Y: y, Width: hudWidth, Height: 20}, fmt.Sprintf("Rate: %.0f steps/s", st.Rate))
	y += 20
	actions.Rate = gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: y, Width: hudWidth - 60, Height: 18},
		"1", fmt.Sprintf("%.0f", st.MaxRate),
		st.Rate, 1, st.MaxRate,
	)
	y += 34

	gui.Label(rl.Rectangle{X: x, Y: y, Width: hudWidth, Height: 20}, "Attention")
	y += 22
	s.Each(func(node scene.Node, m *scene.Marker) {
		rl.DrawText(fmt.Sprintf("Node %d", node.Index+1), int32(x), int32(y), 12, colLabel)
		barX := x + 60
		barW := float32(hudWidth - 110)
		rl.DrawRectangleLines(int32(barX), int32(y), int32(barW), barHeight, colAxis)
		rl.DrawRectangle(int32(barX), int32(y), int32(barW*float32(m.Attention)), barHeight, toColor(m.Color))
		rl.DrawText(fmt.Sprintf("%.3f", m.Attention), int32(barX+barW+6), int32(y), 12, colLabel)
		y += barHeight + 6
	})

	rl.DrawText("[Space] pause  [R] restart", int32(x), int32(rl.GetScreenHeight()-24), 12, rl.Gray)

	return actions
}
