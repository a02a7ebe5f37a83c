// Package anim drives the particle-decay backdrop: it owns the arena,
// advances it frame by frame, and hands every frame to a render surface.
// Each Animation is a self-contained instance; embedding several on one
// screen just means constructing several.
package anim

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/cloudchamber/config"
	"github.com/pthm-cable/cloudchamber/render"
	"github.com/pthm-cable/cloudchamber/sim"
	"github.com/pthm-cable/cloudchamber/telemetry"
)

const (
	// nominalFrameMS is assumed for the first frame, before any timing
	// history exists.
	nominalFrameMS = 16.0

	// maxFrameMS caps the frame delta fed to the decay hazard so a stalled
	// tab or debugger pause cannot trigger a decay avalanche on resume.
	maxFrameMS = 60.0

	// bookmarkHistorySize is how many stats windows the burst detector
	// compares against, about a minute at the default window length.
	bookmarkHistorySize = 12
)

// Phase is the lifecycle state of an Animation.
type Phase int

const (
	// Uninitialized means the surface had no area yet; ticks retry setup.
	Uninitialized Phase = iota
	// Running means the arena is live and ticks advance it.
	Running
	// TornDown means Close was called; ticks are ignored.
	TornDown
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case TornDown:
		return "torn_down"
	}
	return "unknown"
}

// Options configures a new Animation.
type Options struct {
	// Variant names the parameter set to run. Unknown or empty names fall
	// back to the configured default.
	Variant string

	// Surface receives every rendered frame. Required.
	Surface render.Surface

	// Config overrides the global configuration when non-nil.
	Config *config.Config

	// IsDark is sampled once per frame to pick the palette. Nil means dark.
	IsDark func() bool

	// Seed for the instance RNG. Zero means time-based.
	Seed int64

	// LogStats emits window stats and perf summaries to the logger.
	LogStats bool

	// StatsWindowSec overrides the configured stats window length when > 0.
	StatsWindowSec float64

	// OutputDir enables CSV run output when non-empty.
	OutputDir string

	// SnapshotDir enables arena snapshots on bookmarks when non-empty.
	SnapshotDir string

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Animation owns one backdrop instance: the particle arena, the RNG it was
// seeded with, and the telemetry attached to the run. Instances never share
// state. Not safe for concurrent use; drive it from one goroutine.
type Animation struct {
	cfg     *config.Config
	surface render.Surface
	isDark  func() bool

	variant  string
	resolved config.Resolved

	rng     *rand.Rand
	rngSeed int64

	particles []sim.Particle
	daughters []sim.Particle // scratch, reused every frame

	phase    Phase
	tick     int32
	lastTick time.Time

	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string
}

// New builds an Animation over opts.Surface. If the surface has no area yet
// the animation starts dormant and initializes itself on the first tick that
// finds pixels to draw on.
func New(opts Options) (*Animation, error) {
	if opts.Surface == nil {
		return nil, errors.New("anim: surface is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	dt := float32(1.0 / float64(fps))

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing run output: %w", err)
	}

	a := &Animation{
		cfg:              cfg,
		surface:          opts.Surface,
		isDark:           opts.IsDark,
		variant:          opts.Variant,
		rng:              rand.New(rand.NewSource(seed)),
		rngSeed:          seed,
		phase:            Uninitialized,
		collector:        telemetry.NewCollector(statsWindow, dt),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(bookmarkHistorySize, cfg.Bookmarks),
		outputManager:    om,
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
	}

	if err := a.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config copy", "error", err)
	}

	a.tryInit()
	return a, nil
}

// tryInit seeds the arena from the current surface size. A zero-area surface
// is not an error: the animation stays dormant and retries on later ticks.
func (a *Animation) tryInit() {
	w, h := a.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}

	a.resolved = a.cfg.Resolve(a.variant, w, h)
	a.variant = a.resolved.Variant
	a.particles = sim.SpawnInitial(a.resolved.Params, a.resolved.Bounds, a.rng)
	a.collector.RecordSpawns(len(a.particles))
	a.phase = Running

	slog.Info("animation started",
		"variant", a.variant,
		"width", w,
		"height", h,
		"population", len(a.particles),
		"seed", a.rngSeed,
	)
}

// Update advances the animation by one frame and draws it. now is the frame
// timestamp; the elapsed time since the previous tick feeds the decay hazard
// so decay activity stays frame-rate independent.
func (a *Animation) Update(now time.Time) {
	if a.phase == TornDown {
		return
	}
	if a.phase == Uninitialized {
		a.tryInit()
		if a.phase != Running {
			return
		}
	}

	dtMS := a.frameDelta(now)

	a.perfCollector.StartTick()

	a.perfCollector.StartPhase(telemetry.PhaseIntegrate)
	for i := range a.particles {
		sim.Integrate(&a.particles[i])
	}

	a.perfCollector.StartPhase(telemetry.PhaseDecay)
	a.daughters = a.daughters[:0]
	for i := range a.particles {
		p := &a.particles[i]
		parent := *p
		before := len(a.daughters)

		var decayed bool
		a.daughters, decayed = sim.TryDecay(a.daughters, p, a.resolved.Params, dtMS, a.rng)
		if !decayed {
			continue
		}

		born := a.daughters[before:]
		a.collector.RecordDecay(len(born))
		if err := a.outputManager.WriteDecay(telemetry.NewDecayEvent(a.tick, &parent, born)); err != nil {
			slog.Error("failed to write decay event", "error", err)
		}
	}

	a.perfCollector.StartPhase(telemetry.PhaseRender)
	render.DrawAll(a.surface, a.particles, a.theme())
	a.perfCollector.RecordFrame()

	a.perfCollector.StartPhase(telemetry.PhasePrune)
	var expired int
	a.particles, expired = sim.Prune(a.particles)
	a.collector.RecordExpired(expired)

	a.perfCollector.StartPhase(telemetry.PhaseSpawn)
	a.particles = append(a.particles, a.daughters...)
	var spawned int
	a.particles, spawned = sim.TopUp(a.particles, a.resolved.Params, a.resolved.Bounds, a.rng)
	a.collector.RecordSpawns(spawned)

	a.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	a.flushTelemetry()

	a.perfCollector.EndTick()

	a.tick++
}

// frameDelta returns the milliseconds since the previous tick, clamped to
// [0, maxFrameMS]. The first tick gets the nominal frame length.
func (a *Animation) frameDelta(now time.Time) float64 {
	if a.lastTick.IsZero() {
		a.lastTick = now
		return nominalFrameMS
	}

	dtMS := now.Sub(a.lastTick).Seconds() * 1000
	a.lastTick = now

	if dtMS < 0 {
		return 0
	}
	if dtMS > maxFrameMS {
		return maxFrameMS
	}
	return dtMS
}

func (a *Animation) theme() render.Theme {
	if a.isDark == nil {
		return render.Theme{Dark: true}
	}
	return render.Theme{Dark: a.isDark()}
}

// Resize reinitializes the animation for new surface dimensions. The arena
// is rebuilt from scratch; decay chains do not survive a resize. Resizing to
// zero area parks the animation until it has pixels again.
func (a *Animation) Resize(width, height int) {
	if a.phase == TornDown {
		return
	}
	if width <= 0 || height <= 0 {
		a.particles = a.particles[:0]
		a.phase = Uninitialized
		return
	}

	a.resolved = a.cfg.Resolve(a.variant, width, height)
	a.variant = a.resolved.Variant
	a.particles = sim.SpawnInitial(a.resolved.Params, a.resolved.Bounds, a.rng)
	a.collector.RecordSpawns(len(a.particles))
	a.phase = Running
}

// SetVariant switches the parameter set. A running animation reseeds
// immediately; a dormant one picks the variant up when it initializes.
func (a *Animation) SetVariant(variant string) {
	if a.phase == TornDown {
		return
	}
	a.variant = variant
	if a.phase != Running {
		return
	}
	w, h := a.surface.Size()
	a.Resize(w, h)
}

// Close tears the animation down and flushes run output. Safe to call more
// than once; a torn-down animation ignores further ticks.
func (a *Animation) Close() error {
	if a.phase == TornDown {
		return nil
	}
	a.phase = TornDown
	a.particles = nil

	if err := a.outputManager.Close(); err != nil {
		return fmt.Errorf("closing run output: %w", err)
	}
	return nil
}

// Tick returns how many frames have been advanced.
func (a *Animation) Tick() int32 { return a.tick }

// Phase returns the lifecycle state.
func (a *Animation) Phase() Phase { return a.phase }

// Variant returns the active variant name once resolved, or the requested
// name while the animation is still dormant.
func (a *Animation) Variant() string { return a.variant }

// Seed returns the RNG seed the instance was built with.
func (a *Animation) Seed() int64 { return a.rngSeed }

// Particles exposes the live arena for HUDs and tests. Callers must not
// mutate or retain it across ticks.
func (a *Animation) Particles() []sim.Particle { return a.particles }

// Params returns the resolved variant parameters.
func (a *Animation) Params() config.VariantConfig { return a.resolved.Params }
