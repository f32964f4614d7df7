package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Radians is an angle that may be written in YAML either as a plain number
// or as a multiple of pi: "pi", "pi/4", "2*pi/3", "-pi/2".
type Radians float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Radians) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: angle must be a scalar", node.Line)
	}
	v, err := ParseRadians(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*r = Radians(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler. Angles are written as plain numbers.
func (r Radians) MarshalYAML() (interface{}, error) {
	return float64(r), nil
}

// ParseRadians parses a number or a pi expression of the form [k*]pi[/d].
func ParseRadians(s string) (float64, error) {
	expr := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
	if expr == "" {
		return 0, fmt.Errorf("empty angle")
	}
	if !strings.Contains(expr, "pi") {
		v, err := strconv.ParseFloat(expr, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid angle %q: %w", s, err)
		}
		return v, nil
	}

	sign := 1.0
	if strings.HasPrefix(expr, "-") {
		sign = -1
		expr = expr[1:]
	}

	numerator, rest, found := strings.Cut(expr, "pi")
	if !found || strings.Contains(rest, "pi") {
		return 0, fmt.Errorf("invalid angle %q", s)
	}

	v := math.Pi
	if numerator != "" {
		k, err := strconv.ParseFloat(strings.TrimSuffix(numerator, "*"), 64)
		if err != nil || !strings.HasSuffix(numerator, "*") {
			return 0, fmt.Errorf("invalid angle %q: expected k*pi", s)
		}
		v = k * math.Pi
	}
	if rest != "" {
		if !strings.HasPrefix(rest, "/") {
			return 0, fmt.Errorf("invalid angle %q: expected pi/d", s)
		}
		d, err := strconv.ParseFloat(rest[1:], 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("invalid angle %q: bad divisor", s)
		}
		v /= d
	}
	return sign * v, nil
}
