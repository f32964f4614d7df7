package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nodeforce/sim"
)

// startRun replaces the engine with a fresh one. Engines are single-use.
func (g *Game) startRun() error {
	engine, err := sim.NewEngine(g.params)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	g.engine = engine
	g.last = sim.Step{}
	g.ran = false
	g.elapsed = 0
	g.run++
	g.scene.Reset()

	slog.Info("simulation started",
		"run", g.run,
		"nodes", len(g.params.Nodes),
		"steps", g.params.Steps,
		"fixed_angle", g.params.FixedAngle,
		"max_deflection", g.params.MaxDeflection,
	)
	return nil
}

// Advance pulls one step from the engine and feeds it to the scene and
// telemetry. It returns false when the run is already complete.
func (g *Game) Advance() bool {
	step, ok := g.engine.Next()
	if !ok {
		return false
	}
	g.last = step
	g.ran = true

	g.scene.Sync(step)
	g.recordStep(step)

	if g.engine.Done() {
		slog.Info("simulation completed", "run", g.run, "steps", g.engine.StepIndex())
	}
	return true
}

// UpdateHeadless advances one step without any rendering.
func (g *Game) UpdateHeadless() bool {
	return g.Advance()
}

// Update handles input and advances the run at the configured rate.
func (g *Game) Update() {
	g.handleInput()
	g.view.Update()

	if g.paused || g.engine.Done() {
		return
	}

	g.elapsed += rl.GetFrameTime()
	interval := 1 / g.rate
	for g.elapsed >= interval && !g.engine.Done() {
		g.elapsed -= interval
		g.Advance()
	}
}
