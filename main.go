package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/perrito/config"
	"github.com/pthm-cable/perrito/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	debug := flag.Bool("debug", false, "Log every clip request")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Headless:  *headless,
		Seed:      rngSeed,
		MaxFrames: int32(*maxFrames),
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts))
	}
	os.Exit(runWindowed(cfg, opts))
}

// runHeadless steps at the configured frame rate until MaxFrames.
func runHeadless(cfg *config.Config, opts game.Options) int {
	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to build world", "error", err)
		return 1
	}
	defer g.Close()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_frames", opts.MaxFrames,
		"frame_dt", cfg.Physics.FrameDT,
		"fixed_dt", cfg.Physics.FixedDT,
	)

	for !g.Done() {
		if err := g.UpdateHeadless(); err != nil {
			slog.Error("simulation halted", "error", err)
			return 1
		}
	}
	slog.Info("max frames reached", "frame", g.Frame(), "sim_time", g.SimTime())
	return 0
}

// runWindowed opens a raylib window and runs until it is closed.
func runWindowed(cfg *config.Config, opts game.Options) int {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Perrito")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to build world", "error", err)
		return 1
	}
	defer g.Close()

	for !rl.WindowShouldClose() && !g.Done() {
		if err := g.Update(); err != nil {
			slog.Error("simulation halted", "error", err)
			return 1
		}
		g.Draw()
	}
	return 0
}
