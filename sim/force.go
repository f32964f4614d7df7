// Package sim computes per-node forces, normalizes them into attention
// weights and accumulates a force history one step at a time.
package sim

import "math"

// DefaultEpsilon is the numerical floor used for near-zero denominators.
const DefaultEpsilon = 1e-12

// stiffnessScale converts elasticity into stiffness per unit deflection.
const stiffnessScale = 0.01

// Mechanics evaluates the force formula and the deflection damping with a
// given numerical floor.
type Mechanics struct {
	Epsilon float64
}

// Force returns load * sin(angle) / sin(connectionAngle).
// A denominator smaller than Epsilon in magnitude is replaced by +Epsilon.
func (m Mechanics) Force(load, angle, connectionAngle float64) float64 {
	sinConn := math.Sin(connectionAngle)
	if math.Abs(sinConn) < m.Epsilon {
		sinConn = m.Epsilon
	}
	return load * math.Sin(angle) / sinConn
}

// Adjust damps load by the stiffness-to-load ratio, saturating at full
// cancellation. The result is never negative.
func (m Mechanics) Adjust(elasticity, maxDeflection, load float64) float64 {
	stiffness := elasticity * stiffnessScale / maxDeflection
	ratio := math.Min(1.0, stiffness/math.Max(load, m.Epsilon))
	adjusted := load * (1 - ratio)
	// math.Max also turns -0 into +0
	return math.Max(adjusted, 0)
}

// ComputeForce is Mechanics.Force with DefaultEpsilon.
func ComputeForce(load, angle, connectionAngle float64) float64 {
	return Mechanics{Epsilon: DefaultEpsilon}.Force(load, angle, connectionAngle)
}

// AdjustForce is Mechanics.Adjust with DefaultEpsilon.
func AdjustForce(elasticity, maxDeflection, load float64) float64 {
	return Mechanics{Epsilon: DefaultEpsilon}.Adjust(elasticity, maxDeflection, load)
}

// Total sums forces in node order. Normalize uses the same sum, so callers
// comparing against epsilon see the same result bit for bit.
func Total(forces []float64) float64 {
	var total float64
	for _, f := range forces {
		total += f
	}
	return total
}

// Normalize converts forces into attention weights summing to 1.
// When the total is below epsilon every node gets 1/N.
func Normalize(forces []float64, epsilon float64) []float64 {
	n := len(forces)
	attention := make([]float64, n)
	if n == 0 {
		return attention
	}

	total := Total(forces)
	if total < epsilon {
		uniform := 1.0 / float64(n)
		for i := range attention {
			attention[i] = uniform
		}
		return attention
	}

	for i, f := range forces {
		attention[i] = f / total
	}
	return attention
}
