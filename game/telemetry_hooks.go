package game

import (
	"log/slog"

	"github.com/pthm-cable/nodeforce/sim"
	"github.com/pthm-cable/nodeforce/telemetry"
)

// recordStep logs and writes the telemetry for one step.
func (g *Game) recordStep(step sim.Step) {
	logSteps := g.opts.LogSteps || g.cfg.Telemetry.LogSteps
	if !logSteps && g.output == nil {
		return
	}

	stats := telemetry.ComputeStepStats(g.run, step)

	if logSteps {
		stats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.output != nil {
		if err := g.output.WriteStep(g.run, step); err != nil {
			slog.Error("failed to write step", "run", g.run, "step", step.Index, "error", err)
		}
		if err := g.output.WriteStepStats(stats); err != nil {
			slog.Error("failed to write step stats", "run", g.run, "step", step.Index, "error", err)
		}
	}
}
