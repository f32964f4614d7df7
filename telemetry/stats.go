package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/nodeforce/sim"
)

// StepStats holds aggregated statistics for a single simulation step.
type StepStats struct {
	Run           int     `csv:"run"` // 1-based, increments on restart
	Step          int     `csv:"step"`
	TotalForce    float64 `csv:"total_force"`
	MaxForce      float64 `csv:"max_force"`
	Entropy       float64 `csv:"attention_entropy"` // nats, ln(N) when uniform
	DominantNode  int     `csv:"dominant_node"`     // 1-based
	DominantShare float64 `csv:"dominant_share"`
	Degenerate    bool    `csv:"degenerate"` // attention fell back to 1/N
}

// ComputeStepStats summarizes the forces and attention of one step of the
// given run. Degenerate mirrors the engine's own fallback decision.
func ComputeStepStats(run int, step sim.Step) StepStats {
	s := StepStats{Run: run, Step: step.Index, Degenerate: step.Uniform}
	if len(step.Forces) == 0 {
		return s
	}

	s.TotalForce = sim.Total(step.Forces)
	s.MaxForce = floats.Max(step.Forces)
	s.Entropy = stat.Entropy(step.Attention)

	idx := floats.MaxIdx(step.Attention)
	s.DominantNode = idx + 1
	s.DominantShare = step.Attention[idx]

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s StepStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("run", s.Run),
		slog.Int("step", s.Step),
		slog.Float64("total_force", s.TotalForce),
		slog.Float64("max_force", s.MaxForce),
		slog.Float64("attention_entropy", s.Entropy),
		slog.Int("dominant_node", s.DominantNode),
		slog.Float64("dominant_share", s.DominantShare),
		slog.Bool("degenerate", s.Degenerate),
	)
}

// LogStats logs the step stats using slog at debug level.
func (s StepStats) LogStats() {
	slog.Debug("step", "stats", s)
}

// ForceStats returns mean, standard deviation, median and peak of a force
// series. Empty input yields zeros; a single value has zero spread.
func ForceStats(values []float64) (mean, std, median, peak float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	peak = sorted[n-1]

	return mean, std, median, peak
}
