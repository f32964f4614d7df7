package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nodeforce/config"
	"github.com/pthm-cable/nodeforce/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	steps := flag.Int("steps", 0, "Number of simulation steps (0 = use config)")
	logSteps := flag.Bool("log-steps", false, "Log per-step stats via slog")

	flag.Parse()

	// Load config before anything else
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *steps > 0 {
		cfg.Simulation.Steps = *steps
	}

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *logSteps || cfg.Telemetry.LogSteps {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := game.Options{
		Headless:  *headless,
		OutputDir: *outputDir,
		LogSteps:  *logSteps,
	}

	if *headless {
		// Headless mode - no raylib window
		g, err := game.NewGame(cfg, opts)
		if err != nil {
			slog.Error("failed to start simulation", "error", err)
			os.Exit(1)
		}

		for g.UpdateHeadless() {
		}

		if err := g.Finish(os.Stdout); err != nil {
			slog.Error("failed to finish simulation", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Real-Time 3D Node Forces Simulation")
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		rl.CloseWindow()
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}

	// The final frame stays up until the window is closed.
	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	rl.CloseWindow()

	if err := g.Finish(os.Stdout); err != nil {
		slog.Error("failed to finish simulation", "error", err)
		os.Exit(1)
	}
}
