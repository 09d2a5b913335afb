package main

import (
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/perrito/config"
	"github.com/pthm-cable/perrito/game"
	"github.com/pthm-cable/perrito/telemetry"
)

// Quality component weights.
const (
	qualityWeightReach  = 0.5
	qualityWeightSmooth = 0.3
	qualityWeightCalm   = 0.2

	qualityWarmupWindows = 1 // skip the first window
)

// FitnessEvaluator runs headless episodes and scores steering quality.
type FitnessEvaluator struct {
	params     *ParamVector
	configPath string
	frames     int32
	seeds      []int64
	workers    int

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates an evaluator. Each episode reloads the config
// at configPath so runs never share mutable state.
func NewFitnessEvaluator(params *ParamVector, configPath string, frames int32, seeds []int64, workers int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		configPath: configPath,
		frames:     frames,
		seeds:      seeds,
		workers:    workers,
	}
}

// LastQuality returns the mean quality of the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate scores raw parameter values (lower = better). Seeds run
// concurrently; any episode error aborts the evaluation.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) (float64, error) {
	qualities := make([]float64, len(fe.seeds))

	eg, ctx := errgroup.WithContext(ctx)
	if fe.workers > 0 {
		eg.SetLimit(fe.workers)
	}
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			windows, err := fe.runEpisode(ctx, x, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			qualities[i] = computeQuality(windows)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, q := range qualities {
		total += q
	}
	mean := total / float64(len(qualities))

	fe.mu.Lock()
	fe.lastQuality = mean
	fe.mu.Unlock()

	return -mean, nil
}

// runEpisode executes one headless run and returns its telemetry windows.
func (fe *FitnessEvaluator) runEpisode(ctx context.Context, x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return nil, err
	}
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g, err := game.NewGame(cfg, game.Options{
		Headless:  true,
		Seed:      seed,
		MaxFrames: fe.frames,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Close()

	for !g.Done() {
		if g.Frame()%600 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := g.UpdateHeadless(); err != nil {
			return nil, err
		}
	}
	return windows, nil
}

// computeQuality scores a run in [0, 1]:
//   - reach: share of engaged time spent in Attack rather than Pursuit
//   - smooth: low speed variation relative to mean speed
//   - calm: few state transitions per second
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var reachSum, smoothSum, calmSum float64
	var reachN int
	for _, w := range valid {
		if engaged := w.PursuitSec + w.AttackSec; engaged > 0 {
			reachSum += w.AttackSec / engaged
			reachN++
		}
		if w.SpeedMean > 0 {
			cv := w.SpeedStd / w.SpeedMean
			smoothSum += math.Exp(-cv * cv)
		}
		dur := w.IdleSec + w.WanderSec + w.PursuitSec + w.AttackSec + w.EscapeSec
		if dur > 0 {
			calmSum += math.Exp(-float64(w.Transitions) / dur)
		} else {
			calmSum++
		}
	}

	n := float64(len(valid))
	reach := 0.0
	if reachN > 0 {
		reach = reachSum / float64(reachN)
	}
	q := qualityWeightReach*reach +
		qualityWeightSmooth*smoothSum/n +
		qualityWeightCalm*calmSum/n
	return clamp(q, 0, 1)
}
