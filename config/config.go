// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/nodeforce/sim"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Nodes      NodesConfig      `yaml:"nodes"`
	Screen     ScreenConfig     `yaml:"screen"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds the run parameters shared by all nodes.
type SimulationConfig struct {
	Steps         int     `yaml:"steps"`
	Epsilon       float64 `yaml:"epsilon"`        // Floor for near-zero denominators
	FixedAngle    Radians `yaml:"fixed_angle"`    // Angle fed to the force formula for every node
	MaxDeflection float64 `yaml:"max_deflection"` // Normalized deflection used by the damping term
	SafetyFactor  float64 `yaml:"safety_factor"`  // Reported in the final summary only
}

// NodesConfig holds per-node parameters as parallel lists.
type NodesConfig struct {
	Count            int       `yaml:"count"` // 0 = infer from list lengths
	Loads            []float64 `yaml:"loads"`
	ConnectionAngles []Radians `yaml:"connection_angles"`
	Elasticity       []float64 `yaml:"elasticity"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// RenderConfig holds presentation parameters for the 3D view.
type RenderConfig struct {
	MaxForce            float64 `yaml:"max_force"`             // Force mapped to the top of the color scale
	BaseMarkerSize      float64 `yaml:"base_marker_size"`      // Marker size at zero attention
	AttentionMarkerSize float64 `yaml:"attention_marker_size"` // Extra size at full attention
	StepInterval        float64 `yaml:"step_interval"`         // Seconds between steps in graphical mode
	ForceHeadroom       float64 `yaml:"force_headroom"`        // Force axis extends to max(load) * this
}

// TelemetryConfig holds logging parameters.
type TelemetryConfig struct {
	LogSteps bool `yaml:"log_steps"` // Emit a debug record per step
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	NodeCount int     // Effective number of nodes
	MaxLoad   float64 // Largest configured load
	ForceAxis float64 // MaxLoad * Render.ForceHeadroom
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the configuration for values that cannot be simulated.
func (c *Config) Validate() error {
	n := c.Nodes
	if n.Count != 0 {
		if n.Count != len(n.Loads) || n.Count != len(n.ConnectionAngles) || n.Count != len(n.Elasticity) {
			return fmt.Errorf("%w: nodes.count is %d but lists have loads=%d, connection_angles=%d, elasticity=%d",
				sim.ErrInvalidParams, n.Count, len(n.Loads), len(n.ConnectionAngles), len(n.Elasticity))
		}
	}
	if _, err := c.SimParams(); err != nil {
		return err
	}
	if c.Render.StepInterval < 0 {
		return fmt.Errorf("render.step_interval must not be negative, got %g", c.Render.StepInterval)
	}
	if c.Render.MaxForce <= 0 {
		return fmt.Errorf("render.max_force must be positive, got %g", c.Render.MaxForce)
	}
	return nil
}

// SimParams converts the configuration into engine parameters.
func (c *Config) SimParams() (sim.Params, error) {
	angles := make([]float64, len(c.Nodes.ConnectionAngles))
	for i, a := range c.Nodes.ConnectionAngles {
		angles[i] = float64(a)
	}
	nodes, err := sim.NewNodeParams(c.Nodes.Loads, angles, c.Nodes.Elasticity)
	if err != nil {
		return sim.Params{}, err
	}

	p := sim.Params{
		Nodes:         nodes,
		Steps:         c.Simulation.Steps,
		Epsilon:       c.Simulation.Epsilon,
		FixedAngle:    float64(c.Simulation.FixedAngle),
		MaxDeflection: c.Simulation.MaxDeflection,
	}
	if err := p.Validate(); err != nil {
		return sim.Params{}, err
	}
	return p, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.NodeCount = len(c.Nodes.Loads)

	c.Derived.MaxLoad = 0
	for _, l := range c.Nodes.Loads {
		if l > c.Derived.MaxLoad {
			c.Derived.MaxLoad = l
		}
	}

	headroom := c.Render.ForceHeadroom
	if headroom <= 0 {
		headroom = 1
	}
	c.Derived.ForceAxis = c.Derived.MaxLoad * headroom
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
