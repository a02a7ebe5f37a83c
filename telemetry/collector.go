package telemetry

import "github.com/pthm-cable/cloudchamber/sim"

// Collector accumulates cascade events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawned   int
	decays    int
	daughters int
	expired   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in animation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordSpawns records n fresh primaries (initial seeding or top-up).
func (c *Collector) RecordSpawns(n int) {
	c.spawned += n
}

// RecordDecay records one decay and the number of daughters it produced.
func (c *Collector) RecordDecay(daughters int) {
	c.decays++
	c.daughters += daughters
}

// RecordExpired records n particles removed by the prune pass.
func (c *Collector) RecordExpired(n int) {
	c.expired += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the window's counters plus a sample of
// the live arena, and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, particles []sim.Particle) WindowStats {
	var gen0, gen1, gen2, gen3Plus, deepest int
	speeds := make([]float64, 0, len(particles))
	var lifeFracSum float64

	for i := range particles {
		p := &particles[i]
		switch p.Generation {
		case 0:
			gen0++
		case 1:
			gen1++
		case 2:
			gen2++
		default:
			gen3Plus++
		}
		if p.Generation > deepest {
			deepest = p.Generation
		}
		speeds = append(speeds, p.Speed())
		lifeFracSum += float64(p.LifeFrac())
	}

	speedMean, speedP10, speedP50, speedP90 := ComputeSpeedStats(speeds)

	var meanLifeFrac float64
	if len(particles) > 0 {
		meanLifeFrac = lifeFracSum / float64(len(particles))
	}

	var meanDaughters float64
	if c.decays > 0 {
		meanDaughters = float64(c.daughters) / float64(c.decays)
	}

	var decaysPerSec float64
	if windowSec := float64(currentTick-c.windowStartTick) * float64(c.dt); windowSec > 0 {
		decaysPerSec = float64(c.decays) / windowSec
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Population: len(particles),
		Gen0:       gen0,
		Gen1:       gen1,
		Gen2:       gen2,
		Gen3Plus:   gen3Plus,
		DeepestGen: deepest,

		Spawned:       c.spawned,
		Decays:        c.decays,
		Daughters:     c.daughters,
		Expired:       c.expired,
		DecaysPerSec:  decaysPerSec,
		MeanDaughters: meanDaughters,

		SpeedMean: speedMean,
		SpeedP10:  speedP10,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,

		MeanLifeFrac: meanLifeFrac,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawned = 0
	c.decays = 0
	c.daughters = 0
	c.expired = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
