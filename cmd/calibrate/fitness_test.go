package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/cloudchamber/telemetry"
)

func onTargetWindows(n int) []telemetry.WindowStats {
	windows := make([]telemetry.WindowStats, n)
	for i := range windows {
		windows[i] = telemetry.WindowStats{
			Population:   60,
			DecaysPerSec: 2,
			DeepestGen:   3,
		}
	}
	return windows
}

func TestComputeQualityOnTarget(t *testing.T) {
	fe := &FitnessEvaluator{targetPop: 60, targetDecays: 2}

	q := fe.computeQuality(onTargetWindows(6))
	if q < 0.999 {
		t.Errorf("quality = %v, want ~1 for on-target windows", q)
	}
}

func TestComputeQualityNeedsWindows(t *testing.T) {
	fe := &FitnessEvaluator{targetPop: 60, targetDecays: 2}

	if q := fe.computeQuality(nil); q != 0 {
		t.Errorf("quality = %v for no windows, want 0", q)
	}
	if q := fe.computeQuality(onTargetWindows(qualityWarmupWindows)); q != 0 {
		t.Errorf("quality = %v for warmup-only windows, want 0", q)
	}
	if q := fe.computeQuality(make([]telemetry.WindowStats, 6)); q != 0 {
		t.Errorf("quality = %v for empty-arena windows, want 0", q)
	}
}

func TestComputeQualityPenalizesDrift(t *testing.T) {
	fe := &FitnessEvaluator{targetPop: 60, targetDecays: 2}
	onTarget := fe.computeQuality(onTargetWindows(6))

	// Double the target population, everything else on target
	overgrown := onTargetWindows(6)
	for i := range overgrown {
		overgrown[i].Population = 120
	}
	if q := fe.computeQuality(overgrown); q >= onTarget {
		t.Errorf("overgrown quality = %v, want below on-target %v", q, onTarget)
	}

	// Quiet arena: no decays at all
	quiet := onTargetWindows(6)
	for i := range quiet {
		quiet[i].DecaysPerSec = 0
		quiet[i].DeepestGen = 0
	}
	if q := fe.computeQuality(quiet); q >= onTarget {
		t.Errorf("quiet quality = %v, want below on-target %v", q, onTarget)
	}

	// Oscillating population
	unstable := onTargetWindows(8)
	for i := range unstable {
		if i%2 == 0 {
			unstable[i].Population = 20
		} else {
			unstable[i].Population = 100
		}
	}
	if q := fe.computeQuality(unstable); q >= onTarget {
		t.Errorf("unstable quality = %v, want below on-target %v", q, onTarget)
	}
}

func TestComputeFitnessPrefersFullRuns(t *testing.T) {
	fe := &FitnessEvaluator{maxTicks: 7200, targetPop: 60, targetDecays: 2}

	full := &runResult{survivalTicks: 7200, windowStats: onTargetWindows(6)}
	runaway := &runResult{survivalTicks: 900}

	if ff, fr := fe.computeFitness(full), fe.computeFitness(runaway); ff >= fr {
		t.Errorf("full run fitness %v not better than runaway %v", ff, fr)
	}
}

func TestCV(t *testing.T) {
	if got := cv([]float64{10, 10, 10}); got != 0 {
		t.Errorf("cv of constant series = %v, want 0", got)
	}
	if got := cv([]float64{5, 15}); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("cv = %v, want 0.5", got)
	}
	if got := cv(nil); got != 0 {
		t.Errorf("cv of empty series = %v, want 0", got)
	}
}
