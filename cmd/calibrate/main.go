// Package main searches per-node elasticity values whose simulation
// reproduces a target attention distribution.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/nodeforce/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	targetFlag := flag.String("target", "", "Comma-separated target attention weights (empty = proportional to loads)")
	maxEvals := flag.Int("max-evals", 2000, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	base, err := cfg.SimParams()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	target := cfg.Nodes.Loads
	if *targetFlag != "" {
		if target, err = parseTarget(*targetFlag); err != nil {
			log.Fatal(err)
		}
	}

	params := NewParamVector(base)
	evaluator, err := NewFitnessEvaluator(params, base, target)
	if err != nil {
		log.Fatalf("invalid target: %v", err)
	}

	// Open log file
	logPath := filepath.Join(*outputDir, "calibrate_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	// Write header
	header := []string{"eval", "loss"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestLoss := 1e9
	var bestRaw []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			loss := evaluator.Evaluate(raw)
			evalCount++

			if loss < bestLoss {
				bestLoss = loss
				bestRaw = append([]float64(nil), raw...)
			}

			row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.9f", loss)}
			for _, v := range raw {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)

			if evalCount%100 == 0 {
				fmt.Printf("Eval %d/%d: loss=%.6g (best=%.6g) | elapsed: %s\n",
					evalCount, *maxEvals, loss, bestLoss, time.Since(startTime).Round(time.Millisecond))
			}
			return loss
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	fmt.Printf("Calibrating %d nodes, max_evals=%d\n", params.Dim(), *maxEvals)
	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestRaw == nil && result != nil {
		bestRaw = params.Clamp(params.Denormalize(result.X))
	}
	if bestRaw == nil {
		log.Fatal("no evaluation completed")
	}

	// Re-evaluate so the reported attention belongs to the best vector
	bestLoss = evaluator.Evaluate(bestRaw)
	attention := evaluator.LastAttention()

	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", evalCount, time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("Best loss: %.6g\n\n", bestLoss)
	elasticity := params.Elasticity(bestRaw)
	for i := range elasticity {
		fmt.Printf("  Node %d | elasticity: %-12.4g | attn: %.3f (target %.3f)\n",
			i+1, elasticity[i], attention[i], evaluator.Target()[i])
	}

	// Save best config
	params.ApplyToConfig(cfg, bestRaw)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
