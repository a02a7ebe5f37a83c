package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cloudchamber/anim"
	"github.com/pthm-cable/cloudchamber/config"
	"github.com/pthm-cable/cloudchamber/render"
	"github.com/pthm-cable/cloudchamber/sim"
	"github.com/pthm-cable/cloudchamber/tui"
)

func main() {
	// CLI flags
	variant := flag.String("variant", "", "Variant to run: hero or nav (empty = config default)")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("tui", false, "Preview on a braille canvas in the terminal")
	record := flag.Int("record", 0, "Record N frames as PNGs into the output dir instead of opening a window")
	width := flag.Int("width", 0, "Surface width for headless/record runs (0 = use config)")
	height := flag.Int("height", 0, "Surface height for headless/record runs (0 = use config)")
	theme := flag.String("theme", "dark", "Palette: dark or light")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config copy")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON for structured logging; stderr in terminal mode
	// because stdout is the UI)
	logOut := os.Stdout
	if *terminal {
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if *terminal {
		if err := tui.Run(cfg, *variant, *seed); err != nil {
			slog.Error("terminal preview failed", "error", err)
			os.Exit(1)
		}
		return
	}

	w, h := cfg.Screen.Width, cfg.Screen.Height
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}

	dark := *theme != "light"
	opts := anim.Options{
		Variant:        *variant,
		Seed:           *seed,
		IsDark:         func() bool { return dark },
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		SnapshotDir:    *snapshotDir,
	}

	var err error
	switch {
	case *headless:
		err = runHeadless(opts, w, h, *maxFrames)
	case *record > 0:
		err = runRecord(opts, w, h, *record, *outputDir)
	default:
		err = runWindow(opts, cfg, &dark, *maxFrames)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless drives the animation on a discarding surface with a synthetic
// 16 ms clock. Used for soak tests and calibration baselines.
func runHeadless(opts anim.Options, w, h, maxFrames int) error {
	opts.Surface = render.NullSurface{W: w, H: h}

	a, err := anim.New(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	slog.Info("starting headless run", "width", w, "height", h, "max_frames", maxFrames)

	clock := time.Unix(0, 0)
	for maxFrames <= 0 || int(a.Tick()) < maxFrames {
		a.Update(clock)
		clock = clock.Add(16 * time.Millisecond)
	}

	slog.Info("headless run finished", "tick", a.Tick())
	return nil
}

// runRecord renders offscreen and writes every frame as a numbered PNG.
func runRecord(opts anim.Options, w, h, frames int, dir string) error {
	if dir == "" {
		dir = "output"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating record directory: %w", err)
	}

	surface := render.NewImageSurface(w, h, 1)
	opts.Surface = surface

	a, err := anim.New(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	clock := time.Unix(0, 0)
	for int(a.Tick()) < frames {
		a.Update(clock)
		clock = clock.Add(16 * time.Millisecond)

		frame := a.Tick() - 1
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", frame))
		if err := surface.SavePNG(path); err != nil {
			return fmt.Errorf("writing frame %d: %w", frame, err)
		}
	}

	slog.Info("recording finished", "dir", dir, "frames", frames)
	return nil
}

// runWindow hosts the animation in a resizable raylib window.
func runWindow(opts anim.Options, cfg *config.Config, dark *bool, maxFrames int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "cloudchamber")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	opts.Surface = render.WindowSurface{}
	a, err := anim.New(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			a.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		if rl.IsKeyPressed(rl.KeyD) {
			*dark = !*dark
		}
		if rl.IsKeyPressed(rl.KeyV) {
			a.SetVariant(nextVariant(cfg, a.Variant()))
		}

		rl.BeginDrawing()
		a.Update(time.Now())
		drawHUD(a)
		rl.EndDrawing()

		if maxFrames > 0 && int(a.Tick()) >= maxFrames {
			break
		}
	}
	return nil
}

func nextVariant(cfg *config.Config, current string) string {
	names := cfg.Derived.VariantNames
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return current
}

func drawHUD(a *anim.Animation) {
	ps := a.Particles()
	text := fmt.Sprintf("%s  %d fps  particles %d  gen %d  [V] variant  [D] theme",
		a.Variant(), rl.GetFPS(), len(ps), sim.DeepestGeneration(ps))
	rl.DrawText(text, 10, 10, 10, rl.Gray)
}
