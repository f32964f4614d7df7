package sim

// History holds the adjusted force of every node for every step so far.
// A History obtained from an Engine is a live view: it grows as the engine
// advances. Callers must not modify the slices it returns.
type History struct {
	nodes [][]float64
}

func newHistory(n, capacity int) History {
	nodes := make([][]float64, n)
	for i := range nodes {
		nodes[i] = make([]float64, 0, capacity)
	}
	return History{nodes: nodes}
}

// Nodes returns the number of nodes tracked.
func (h History) Nodes() int {
	return len(h.nodes)
}

// Len returns the number of recorded steps.
func (h History) Len() int {
	if len(h.nodes) == 0 {
		return 0
	}
	return len(h.nodes[0])
}

// Node returns the force sequence of node i, oldest first.
func (h History) Node(i int) []float64 {
	s := h.nodes[i]
	return s[:len(s):len(s)]
}

// Latest returns the most recent force of node i, or 0 before the first step.
func (h History) Latest(i int) float64 {
	s := h.nodes[i]
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Snapshot returns a deep copy that no longer follows the engine.
func (h History) Snapshot() History {
	nodes := make([][]float64, len(h.nodes))
	for i, s := range h.nodes {
		nodes[i] = append([]float64(nil), s...)
	}
	return History{nodes: nodes}
}

func (h History) append(forces []float64) {
	for i, f := range forces {
		h.nodes[i] = append(h.nodes[i], f)
	}
}
