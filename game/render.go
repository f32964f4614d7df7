package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nodeforce/renderer"
)

// Draw renders the scene and HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(18, 18, 22, 255))

	g.view.Draw(g.scene)

	actions := renderer.DrawHUD(g.scene, renderer.HUDState{
		Step:     g.engine.StepIndex(),
		Steps:    g.params.Steps,
		State:    g.engine.State().String(),
		Paused:   g.paused,
		Run:      g.run,
		Rate:     g.rate,
		MaxRate:  maxStepRate,
		Finished: g.engine.Done(),
	})
	if actions.TogglePause {
		g.paused = !g.paused
	}
	if actions.Rate >= 1 {
		g.rate = actions.Rate
	}
	if actions.Restart {
		g.Restart()
	}

	if g.paused {
		rl.DrawText("PAUSED", 10, 35, 20, rl.Yellow)
	}

	rl.EndDrawing()
}
