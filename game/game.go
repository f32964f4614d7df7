// Package game drives a simulation run for the interactive viewer and for
// headless batch runs.
package game

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pthm-cable/nodeforce/config"
	"github.com/pthm-cable/nodeforce/renderer"
	"github.com/pthm-cable/nodeforce/scene"
	"github.com/pthm-cable/nodeforce/sim"
	"github.com/pthm-cable/nodeforce/telemetry"
)

// maxStepRate caps the playback speed slider (steps per second).
const maxStepRate = 120

// Options holds runtime settings that are not part of the config file.
type Options struct {
	Headless  bool
	OutputDir string // empty = no CSV output
	LogSteps  bool
}

// Game owns one simulation engine and everything that consumes its steps.
type Game struct {
	cfg    *config.Config
	params sim.Params
	opts   Options

	engine *sim.Engine
	last   sim.Step
	ran    bool // at least one step emitted in the current run

	scene  *scene.Scene
	view   *renderer.NodeView
	output *telemetry.OutputManager

	// Playback
	paused  bool
	rate    float32 // steps per second in graphical mode
	elapsed float32 // seconds since the last step
	run     int
}

// NewGame creates a game for the given configuration.
// In graphical mode the raylib window must already be open.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	params, err := cfg.SimParams()
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		params: params,
		opts:   opts,
		output: output,
		scene: scene.New(len(params.Nodes), scene.Options{
			MaxForce:      cfg.Render.MaxForce,
			BaseSize:      cfg.Render.BaseMarkerSize,
			AttentionSize: cfg.Render.AttentionMarkerSize,
		}),
		rate: maxStepRate,
	}
	if cfg.Render.StepInterval > 0 {
		g.rate = float32(1 / cfg.Render.StepInterval)
		if g.rate > maxStepRate {
			g.rate = maxStepRate
		}
	}

	if !opts.Headless {
		g.view = renderer.NewNodeView(len(params.Nodes), params.Steps, cfg.Derived.ForceAxis)
	}

	if err := g.startRun(); err != nil {
		output.Close()
		return nil, err
	}
	return g, nil
}

// Restart abandons the current run and starts a new one from step 0.
// CSV output keeps appending; rows of the new run carry the next run number
// and the step column restarts at 0.
func (g *Game) Restart() {
	if err := g.startRun(); err != nil {
		slog.Error("failed to restart simulation", "error", err)
		return
	}
	g.paused = false
}

// Done reports whether the current run has emitted all of its steps.
func (g *Game) Done() bool {
	return g.engine.Done()
}

// Tick returns the number of steps emitted in the current run.
func (g *Game) Tick() int {
	return g.engine.StepIndex()
}

// Summary describes the current run up to its latest step.
func (g *Game) Summary() telemetry.Summary {
	attention := g.last.Attention
	if !g.ran {
		attention = g.engine.Attention()
	}
	return telemetry.Summarize(g.engine.History(), attention, g.cfg.Simulation.SafetyFactor)
}

// Finish writes the plain-text summary to w, saves summary.csv when output
// is enabled and closes the output files.
func (g *Game) Finish(w io.Writer) error {
	summary := g.Summary()

	if err := telemetry.WriteSummary(w, summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if err := g.output.WriteSummary(summary); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
	if dir := g.output.Dir(); dir != "" {
		slog.Info("output written", "dir", dir)
	}
	return g.output.Close()
}
