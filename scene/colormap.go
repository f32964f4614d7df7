package scene

import "math"

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// viridisStops samples the viridis colormap at nine evenly spaced points.
var viridisStops = [...]RGB{
	{0x44, 0x01, 0x54},
	{0x47, 0x2D, 0x7B},
	{0x3B, 0x52, 0x8B},
	{0x2C, 0x72, 0x8E},
	{0x21, 0x90, 0x8C},
	{0x27, 0xAD, 0x81},
	{0x5D, 0xC8, 0x63},
	{0xAA, 0xDC, 0x32},
	{0xFD, 0xE7, 0x25},
}

// Viridis maps t in [0, 1] to a color, interpolating linearly between
// stops. Values outside the range are clamped; NaN maps to the low end.
func Viridis(t float64) RGB {
	if math.IsNaN(t) || t <= 0 {
		return viridisStops[0]
	}
	last := len(viridisStops) - 1
	if t >= 1 {
		return viridisStops[last]
	}

	pos := t * float64(last)
	i := int(pos)
	frac := pos - float64(i)
	a, b := viridisStops[i], viridisStops[i+1]
	return RGB{
		R: lerp8(a.R, b.R, frac),
		G: lerp8(a.G, b.G, frac),
		B: lerp8(a.B, b.B, frac),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
