package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/nodeforce/config"
	"github.com/pthm-cable/nodeforce/sim"
)

// StepRecord is one row of steps.csv: a single node at a single step.
type StepRecord struct {
	Run       int     `csv:"run"` // 1-based, increments on restart
	Step      int     `csv:"step"`
	Node      int     `csv:"node"` // 1-based
	Force     float64 `csv:"force"`
	Attention float64 `csv:"attention"`
}

// StepRecords flattens a step of the given run into one record per node.
func StepRecords(run int, step sim.Step) []StepRecord {
	records := make([]StepRecord, len(step.Forces))
	for i := range records {
		records[i] = StepRecord{
			Run:       run,
			Step:      step.Index,
			Node:      i + 1,
			Force:     step.Forces[i],
			Attention: step.Attention[i],
		}
	}
	return records
}

// OutputManager handles run output with CSV logging.
// Output is a report only; nothing here is read back by the simulation.
type OutputManager struct {
	dir       string
	stepsFile *os.File
	statsFile *os.File

	// Track if headers have been written
	stepsHeaderWritten bool
	statsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	// Open steps.csv
	f, err := os.Create(filepath.Join(dir, "steps.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating steps.csv: %w", err)
	}
	om.stepsFile = f

	// Open step_stats.csv
	f, err = os.Create(filepath.Join(dir, "step_stats.csv"))
	if err != nil {
		om.stepsFile.Close()
		return nil, fmt.Errorf("creating step_stats.csv: %w", err)
	}
	om.statsFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStep appends one row per node to steps.csv.
func (om *OutputManager) WriteStep(run int, step sim.Step) error {
	if om == nil {
		return nil
	}

	records := StepRecords(run, step)

	if !om.stepsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.stepsFile); err != nil {
			return fmt.Errorf("writing steps: %w", err)
		}
		om.stepsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.stepsFile); err != nil {
			return fmt.Errorf("writing steps: %w", err)
		}
	}

	return nil
}

// WriteStepStats appends a step stats record to step_stats.csv.
func (om *OutputManager) WriteStepStats(stats StepStats) error {
	if om == nil {
		return nil
	}

	records := []StepStats{stats}

	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing step stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing step stats: %w", err)
		}
	}

	return nil
}

// WriteSummary saves the per-node summary as summary.csv.
func (om *OutputManager) WriteSummary(s Summary) error {
	if om == nil {
		return nil
	}

	path := filepath.Join(om.dir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(s.Nodes, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.stepsFile != nil {
		if err := om.stepsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
