package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveVariants(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name    string
		variant string
		want    string
	}{
		{"hero", "hero", "hero"},
		{"nav", "nav", "nav"},
		{"unknown falls back", "sidebar", "hero"},
		{"empty falls back", "", "hero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := cfg.Resolve(tt.variant, 1280, 480)
			if r.Variant != tt.want {
				t.Errorf("Resolve(%q).Variant = %q, want %q", tt.variant, r.Variant, tt.want)
			}
		})
	}
}

func TestResolveBounds(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Variants.Hero.Box = BoxConfig{X: 0.05, Y: 0.10, W: 0.90, H: 0.80}

	r := cfg.Resolve("hero", 1000, 200)

	if math.Abs(float64(r.Bounds.X)-50) > 0.001 {
		t.Errorf("Bounds.X = %v, want 50", r.Bounds.X)
	}
	if math.Abs(float64(r.Bounds.Y)-20) > 0.001 {
		t.Errorf("Bounds.Y = %v, want 20", r.Bounds.Y)
	}
	if math.Abs(float64(r.Bounds.W)-900) > 0.001 {
		t.Errorf("Bounds.W = %v, want 900", r.Bounds.W)
	}
	if math.Abs(float64(r.Bounds.H)-160) > 0.001 {
		t.Errorf("Bounds.H = %v, want 160", r.Bounds.H)
	}
}

func TestResolveDeterministic(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a := cfg.Resolve("nav", 640, 64)
	b := cfg.Resolve("nav", 640, 64)
	if a != b {
		t.Errorf("Resolve not deterministic: %+v vs %+v", a, b)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	overlay := []byte("variants:\n  hero:\n    decay_rate: 0.05\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	base, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load overlay: %v", err)
	}

	if math.Abs(cfg.Variants.Hero.DecayRate-0.05) > 1e-9 {
		t.Errorf("hero decay_rate = %v, want 0.05", cfg.Variants.Hero.DecayRate)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Variants.Hero.InitialParticles != base.Variants.Hero.InitialParticles {
		t.Errorf("hero initial_particles = %d, want default %d",
			cfg.Variants.Hero.InitialParticles, base.Variants.Hero.InitialParticles)
	}
	if cfg.Variants.Nav != base.Variants.Nav {
		t.Errorf("nav variant changed by hero-only overlay")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load with missing file: expected error, got nil")
	}
}

func TestDefaultVariantNormalized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad_default.yaml")
	if err := os.WriteFile(path, []byte("default_variant: plasma\n"), 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.DefaultVariant != "hero" {
		t.Errorf("default variant = %q, want hero", cfg.Derived.DefaultVariant)
	}

	r := cfg.Resolve("plasma", 100, 100)
	if r.Variant != "hero" {
		t.Errorf("Resolve(plasma).Variant = %q, want hero", r.Variant)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Variants.Nav.InitialParticles = 13

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if back.Variants.Nav.InitialParticles != 13 {
		t.Errorf("round-tripped nav initial_particles = %d, want 13",
			back.Variants.Nav.InitialParticles)
	}
}
