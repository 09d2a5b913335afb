// Command tune searches steering parameters with CMA-ES, scoring each
// candidate by running headless episodes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/perrito/config"
)

// EvalRow is one line of tune_log.csv.
type EvalRow struct {
	Eval          int     `csv:"eval"`
	Fitness       float64 `csv:"fitness"`
	Quality       float64 `csv:"quality"`
	SlowingRadius float64 `csv:"slowing_radius"`
	StopThreshold float64 `csv:"stop_threshold"`
	MaxSpeed      float64 `csv:"max_speed"`
}

// formatDuration formats a duration as MM:SS, or HH:MM:SS when long.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	workers := flag.Int("workers", 0, "Concurrent episodes per evaluation (0 = one per seed)")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Episodes log every transition at Info.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector(baseCfg)
	frames := int32(baseCfg.Tuning.EpisodeSec / baseCfg.Physics.FrameDT)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *configPath, frames, evalSeeds, *workers)

	ctx := context.Background()
	var (
		rows        []EvalRow
		bestFitness = 1e9
		bestParams  []float64
		evalErr     error
		startTime   = time.Now()
	)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness, err := evaluator.Evaluate(ctx, raw)
			if err != nil {
				// First error ends the search at the next status check.
				if evalErr == nil {
					evalErr = err
				}
				return 1e9
			}

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}
			rows = append(rows, EvalRow{
				Eval:          len(rows) + 1,
				Fitness:       fitness,
				Quality:       evaluator.LastQuality(),
				SlowingRadius: raw[0],
				StopThreshold: raw[1],
				MaxSpeed:      raw[2],
			})

			n := len(rows)
			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-n) * (elapsed / time.Duration(n))
			fmt.Printf("Eval %d/%d: quality=%.3f (best=%.3f) | elapsed: %s, ETA: %s\n",
				n, *maxEvals, -fitness, -bestFitness, formatDuration(elapsed), formatDuration(remaining))
			return fitness
		},
		Status: func() (optimize.Status, error) {
			if evalErr != nil {
				return optimize.Failure, evalErr
			}
			return optimize.NotTerminated, nil
		},
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(params.Dim())/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", params.Dim(), popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, frames per episode: %d\n", *seeds, frames)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil {
		if result == nil {
			log.Fatal("no successful evaluations")
		}
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	if f, err := os.Create(logPath); err != nil {
		log.Printf("failed to create log file: %v", err)
	} else {
		if err := gocsv.MarshalFile(&rows, f); err != nil {
			log.Printf("failed to write log: %v", err)
		}
		f.Close()
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", len(rows), formatDuration(time.Since(startTime)))
	fmt.Printf("Best quality: %.4f\n", -bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestParams[i])
	}

	params.ApplyToConfig(baseCfg, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := baseCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
