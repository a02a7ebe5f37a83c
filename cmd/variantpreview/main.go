// Variant preview tool - runs a variant live and tunes its parameters with
// sliders. Edits apply to the in-memory config and reseed the arena; the
// matching YAML fragment can be copied out with C.
//
// Usage: go run ./cmd/variantpreview [-variant hero]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cloudchamber/anim"
	"github.com/pthm-cable/cloudchamber/config"
	"github.com/pthm-cable/cloudchamber/sim"
)

const (
	windowWidth  = 1000
	windowHeight = 760
	previewW     = 560
	previewH     = 300
)

var (
	panelX      = float32(previewW + 30)
	sliderWidth = float32(windowWidth) - panelX - 90
)

// previewSurface confines the animation to a box inside the tool window.
type previewSurface struct {
	x, y float32
	w, h int
}

func (s *previewSurface) Size() (int, int) { return s.w, s.h }

func (s *previewSurface) Clear(c color.RGBA) {
	rl.DrawRectangle(int32(s.x), int32(s.y), int32(s.w), int32(s.h), rl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (s *previewSurface) Line(x1, y1, x2, y2, width float32, c color.RGBA) {
	rl.DrawLineEx(
		rl.Vector2{X: s.x + x1, Y: s.y + y1},
		rl.Vector2{X: s.x + x2, Y: s.y + y2},
		width,
		rl.Color{R: c.R, G: c.G, B: c.B, A: c.A},
	)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variant := flag.String("variant", "hero", "Variant to tune")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Variant Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	surface := &previewSurface{x: 10, y: 10, w: previewW, h: previewH}

	dark := true
	a, err := anim.New(anim.Options{
		Variant: *variant,
		Surface: surface,
		Config:  cfg,
		IsDark:  func() bool { return dark },
	})
	if err != nil {
		slog.Error("failed to start animation", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	name := a.Variant()
	initial := *variantParams(cfg, name)

	for !rl.WindowShouldClose() {
		params := variantParams(cfg, name)
		changed := false

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Live preview
		rl.BeginScissorMode(10, 10, previewW, previewH)
		a.Update(time.Now())
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		ps := a.Particles()
		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("population: %d   deepest: %d   tick: %d",
			len(ps), sim.DeepestGeneration(ps), a.Tick()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("gen0: %d   gen1: %d   gen2: %d",
			sim.CountGeneration(ps, 0), sim.CountGeneration(ps, 1), sim.CountGeneration(ps, 2)),
			15, statsY+22, 16, rl.DarkGray)

		// Control panel
		panelY := float32(10)
		rl.DrawText(fmt.Sprintf("Variant: %s", name), int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 30

		if v := intSlider("Initial particles", panelY, params.InitialParticles, 1, 80); v != params.InitialParticles {
			params.InitialParticles = v
			changed = true
		}
		panelY += 48

		if v := slider("Decay rate (per 16ms frame)", panelY, float32(params.DecayRate), 0, 0.05, "%.4f"); v != float32(params.DecayRate) {
			params.DecayRate = float64(v)
			changed = true
		}
		panelY += 48

		if v := intSlider("Min daughters", panelY, params.MinDaughters, 2, 4); v != params.MinDaughters {
			params.MinDaughters = v
			changed = true
		}
		panelY += 48

		if v := intSlider("Max daughters", panelY, params.MaxDaughters, 2, 5); v != params.MaxDaughters {
			params.MaxDaughters = v
			changed = true
		}
		panelY += 48

		if v := intSlider("Max generation", panelY, params.MaxGeneration, 1, 5); v != params.MaxGeneration {
			params.MaxGeneration = v
			changed = true
		}
		panelY += 48

		if v := slider("Base lifetime (frames)", panelY, float32(params.BaseLifetime), 40, 600, "%.0f"); v != float32(params.BaseLifetime) {
			params.BaseLifetime = float64(v)
			changed = true
		}
		panelY += 48

		if v := slider("Spread (radians)", panelY, float32(params.Spread), 0, 3.2, "%.2f"); v != float32(params.Spread) {
			params.Spread = float64(v)
			changed = true
		}
		panelY += 48

		if v := slider("Speed min", panelY, float32(params.SpeedMin), 0.1, 2, "%.2f"); v != float32(params.SpeedMin) {
			params.SpeedMin = float64(v)
			changed = true
		}
		panelY += 48

		if v := slider("Speed max", panelY, float32(params.SpeedMax), 2, 20, "%.2f"); v != float32(params.SpeedMax) {
			params.SpeedMax = float64(v)
			changed = true
		}
		panelY += 56

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 90, Height: 30}, toggleText(name == "hero", "Show nav", "Show hero")) {
			if name == "hero" {
				name = "nav"
			} else {
				name = "hero"
			}
			a.SetVariant(name)
			initial = *variantParams(cfg, name)
		}
		if gui.Button(rl.Rectangle{X: panelX + 100, Y: panelY, Width: 90, Height: 30}, "Reseed") {
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 200, Y: panelY, Width: 90, Height: 30}, "Reset") {
			*params = initial
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 300, Y: panelY, Width: 90, Height: 30}, toggleText(dark, "Light", "Dark")) {
			dark = !dark
		}
		panelY += 50

		// Output YAML
		yaml := yamlFragment(name, params)
		rl.DrawText("YAML fragment (C to copy):", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		for _, line := range strings.Split(yaml, "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 15
		}

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()

		if changed {
			a.Resize(previewW, previewH)
		}
	}
}

// variantParams returns a pointer into the live config so slider edits are
// picked up by the next resolve.
func variantParams(cfg *config.Config, name string) *config.VariantConfig {
	if name == "nav" {
		return &cfg.Variants.Nav
	}
	return &cfg.Variants.Hero
}

func slider(label string, y, value, min, max float32, format string) float32 {
	rl.DrawText(label, int32(panelX), int32(y), 14, rl.Gray)
	v := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: y + 18, Width: sliderWidth, Height: 20},
		fmt.Sprintf("%g", min), fmt.Sprintf("%g", max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(panelX+sliderWidth+10), int32(y+20), 16, rl.DarkGray)
	return v
}

func intSlider(label string, y float32, value, min, max int) int {
	return int(slider(label, y, float32(value), float32(min), float32(max), "%.0f"))
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func yamlFragment(name string, params *config.VariantConfig) string {
	lines := []string{
		"variants:",
		fmt.Sprintf("  %s:", name),
		fmt.Sprintf("    initial_particles: %d", params.InitialParticles),
		fmt.Sprintf("    decay_rate: %.4f", params.DecayRate),
		fmt.Sprintf("    min_daughters: %d", params.MinDaughters),
		fmt.Sprintf("    max_daughters: %d", params.MaxDaughters),
		fmt.Sprintf("    max_generation: %d", params.MaxGeneration),
		fmt.Sprintf("    base_lifetime: %.0f", params.BaseLifetime),
		fmt.Sprintf("    spread: %.2f", params.Spread),
		fmt.Sprintf("    speed_min: %.2f", params.SpeedMin),
		fmt.Sprintf("    speed_max: %.2f", params.SpeedMax),
	}
	return strings.Join(lines, "\n")
}
