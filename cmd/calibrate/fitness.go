package main

import (
	"math"
	"sync"
	"time"

	"github.com/pthm-cable/cloudchamber/anim"
	"github.com/pthm-cable/cloudchamber/config"
	"github.com/pthm-cable/cloudchamber/render"
	"github.com/pthm-cable/cloudchamber/telemetry"
)

// FitnessEvaluator runs headless animations and computes fitness.
type FitnessEvaluator struct {
	params       *ParamVector
	maxTicks     int32
	seeds        []int64
	baseConfig   *config.Config
	statsWindow  float64
	width        int
	height       int
	targetPop    float64
	targetDecays float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targetPop, targetDecays float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:       params,
		maxTicks:     maxTicks,
		seeds:        seeds,
		baseConfig:   baseCfg,
		statsWindow:  5.0, // 5 seconds per window
		width:        baseCfg.Screen.Width,
		height:       baseCfg.Screen.Height,
		targetPop:    targetPop,
		targetDecays: targetDecays,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Population runaway: daughters can outpace expiry when decay rate, branching
// and lifetime are all pushed high. If the arena holds more than maxPopFactor
// times the target population for runawayGraceSec straight, the run is cut
// short and scored by how long it lasted.
const (
	maxPopFactor    = 12.0
	runawayGraceSec = 5.0 // seconds of grace above the cap
)

// runResult holds the results from a single animation run.
type runResult struct {
	survivalTicks int32                   // ticks before population runaway (or maxTicks if stable)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks scaled by backdrop quality: runs that
// stay stable for the full duration and hit the visual targets score lowest.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runAnimation(x, s)
			results[idx] = seedResult{
				fitness: fe.computeFitness(result),
				quality: fe.computeQuality(result.windowStats),
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runAnimation executes a single headless animation run.
// Runs until population runaway or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runAnimation(x []float64, seed int64) *runResult {
	// Create a fresh config copy and apply parameters
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	a, err := anim.New(anim.Options{
		Variant:        fe.params.Variant,
		Surface:        render.NullSurface{W: fe.width, H: fe.height},
		Config:         cfg,
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer a.Close()

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	dt := 1.0 / float64(fps)
	popCap := int(fe.targetPop * maxPopFactor)
	graceTicks := int32(runawayGraceSec / dt)

	// Let the cascade establish before checking (skip first 5 sim-seconds)
	warmupTicks := int32(5.0 / dt)

	// Fixed 16ms synthetic clock, same cadence as the headless host
	clock := time.Unix(0, 0)
	step := 16 * time.Millisecond

	var aboveSec float64
	for a.Tick() < fe.maxTicks {
		a.Update(clock)
		clock = clock.Add(step)

		tick := a.Tick()
		if tick < warmupTicks {
			continue
		}

		if len(a.Particles()) > popCap {
			aboveSec += dt
		} else {
			aboveSec = 0
		}

		if aboveSec > 0 && int32(aboveSec/dt) >= graceTicks {
			result.survivalTicks = tick
			return result
		}
	}

	// Stayed stable for the full run
	result.survivalTicks = fe.maxTicks
	return result
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	// Load fresh defaults and copy base values
	cfg, _ := config.Load("")

	cfg.Screen = fe.baseConfig.Screen
	cfg.DefaultVariant = fe.baseConfig.DefaultVariant
	cfg.Variants = fe.baseConfig.Variants
	cfg.Telemetry = fe.baseConfig.Telemetry
	cfg.Bookmarks = fe.baseConfig.Bookmarks
	cfg.Derived = fe.baseConfig.Derived

	return cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Stability dominates; quality adds up to 20% bonus to differentiate
// configs that all survive the full run.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	quality := fe.computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightPopulation = 0.30
	qualityWeightStability  = 0.25
	qualityWeightActivity   = 0.25
	qualityWeightDepth      = 0.20

	qualityWarmupWindows = 2 // skip first N windows (warmup)

	// Cascades that reach generation 3 read as full showers on screen,
	// whatever the configured cap.
	targetCascadeDepth = 3.0
)

// computeQuality computes backdrop quality ∈ [0, 1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	// Collect valid windows (past warmup, arena populated)
	valid := windows[qualityWarmupWindows:]

	// --- Per-window accumulators ---
	var popSum, actSum, depthSum float64
	var popCount, actCount, depthCount int

	// --- Full time series for stability ---
	popSeries := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Population == 0 {
			continue
		}

		popSeries = append(popSeries, float64(w.Population))

		// 1. Population level score
		logErr := math.Log(float64(w.Population) / fe.targetPop)
		popSum += math.Exp(-logErr * logErr / 0.5)
		popCount++

		// 3. Decay activity score
		if fe.targetDecays > 0 {
			actErr := (w.DecaysPerSec - fe.targetDecays) / (0.5 * fe.targetDecays)
			actSum += math.Exp(-actErr * actErr)
			actCount++
		}

		// 4. Cascade depth score
		depthSum += math.Min(float64(w.DeepestGen), targetCascadeDepth) / targetCascadeDepth
		depthCount++
	}

	// No valid windows → zero quality
	if popCount == 0 {
		return 0
	}

	// 1. Population level (averaged per valid window)
	popScore := popSum / float64(popCount)

	// 2. Population stability (CV across all valid windows)
	stabilityScore := 0.0
	if len(popSeries) >= 2 {
		cvPop := cv(popSeries)
		stabilityScore = math.Exp(-2.0 * cvPop * cvPop)
	}

	// 3. Decay activity (averaged per valid window)
	actScore := 0.0
	if actCount > 0 {
		actScore = actSum / float64(actCount)
	}

	// 4. Cascade depth (averaged per valid window)
	depthScore := 0.0
	if depthCount > 0 {
		depthScore = depthSum / float64(depthCount)
	}

	quality := qualityWeightPopulation*popScore +
		qualityWeightStability*stabilityScore +
		qualityWeightActivity*actScore +
		qualityWeightDepth*depthScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
