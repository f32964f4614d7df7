package telemetry

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm-cable/nodeforce/sim"
)

// NodeSummary holds the end-of-run figures for one node.
type NodeSummary struct {
	Node           int     `csv:"node"` // 1-based
	FinalForce     float64 `csv:"final_force"`
	FinalAttention float64 `csv:"final_attention"`
	MeanForce      float64 `csv:"mean_force"`
	StdForce       float64 `csv:"std_force"`
	MedianForce    float64 `csv:"median_force"`
	PeakForce      float64 `csv:"peak_force"`
}

// Summary describes a finished (or stopped) run.
type Summary struct {
	Steps        int
	SafetyFactor float64
	Nodes        []NodeSummary
}

// Summarize builds a run summary from the final history and attention.
func Summarize(history sim.History, attention []float64, safetyFactor float64) Summary {
	s := Summary{
		Steps:        history.Len(),
		SafetyFactor: safetyFactor,
		Nodes:        make([]NodeSummary, history.Nodes()),
	}
	for i := range s.Nodes {
		series := history.Node(i)
		mean, std, median, peak := ForceStats(series)
		ns := NodeSummary{
			Node:        i + 1,
			FinalForce:  history.Latest(i),
			MeanForce:   mean,
			StdForce:    std,
			MedianForce: median,
			PeakForce:   peak,
		}
		if i < len(attention) {
			ns.FinalAttention = attention[i]
		}
		s.Nodes[i] = ns
	}
	return s
}

var summaryRule = strings.Repeat("=", 40)

// WriteSummary prints the plain-text final summary.
func WriteSummary(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString("\n" + summaryRule + "\n")
	b.WriteString(" FINAL SIMULATION SUMMARY \n")
	b.WriteString(summaryRule + "\n")
	for _, n := range s.Nodes {
		fmt.Fprintf(&b, "Node %d | Force: %6.2f | Attn: %.3f\n", n.Node, n.FinalForce, n.FinalAttention)
	}
	fmt.Fprintf(&b, "\nSafety Factor: x%g\n", s.SafetyFactor)
	b.WriteString(summaryRule + "\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}
