package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Restart()
	}
}
