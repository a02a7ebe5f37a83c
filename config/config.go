// Package config provides configuration loading and variant resolution for the
// animation engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen         ScreenConfig    `yaml:"screen"`
	DefaultVariant string          `yaml:"default_variant"`
	Variants       VariantsConfig  `yaml:"variants"`
	Telemetry      TelemetryConfig `yaml:"telemetry"`
	Bookmarks      BookmarksConfig `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the window host.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// VariantsConfig holds the parameter set for each visual variant.
type VariantsConfig struct {
	Hero VariantConfig `yaml:"hero"`
	Nav  VariantConfig `yaml:"nav"`
}

// VariantConfig holds the tunable parameters of one visual variant.
type VariantConfig struct {
	InitialParticles int       `yaml:"initial_particles"` // population floor for generation 0
	DecayRate        float64   `yaml:"decay_rate"`        // decay hazard per 16ms reference frame
	MinDaughters     int       `yaml:"min_daughters"`
	MaxDaughters     int       `yaml:"max_daughters"`
	MaxGeneration    int       `yaml:"max_generation"` // decay disallowed at this depth
	BaseLifetime     float64   `yaml:"base_lifetime"`  // frames, jittered at spawn
	Spread           float64   `yaml:"spread"`         // daughter emission cone, radians
	SpeedMin         float64   `yaml:"speed_min"`      // units per frame
	SpeedMax         float64   `yaml:"speed_max"`
	Box              BoxConfig `yaml:"box"`
}

// BoxConfig describes the spawn bounding box as fractions of the surface.
type BoxConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	DecayBurst   DecayBurstConfig   `yaml:"decay_burst"`
	CascadeDepth CascadeDepthConfig `yaml:"cascade_depth"`
}

// DecayBurstConfig holds decay burst detection parameters.
type DecayBurstConfig struct {
	Multiplier float64 `yaml:"multiplier"` // window decays vs. trailing average
	MinDecays  int     `yaml:"min_decays"`
}

// CascadeDepthConfig holds cascade depth detection parameters.
type CascadeDepthConfig struct {
	MinGeneration int `yaml:"min_generation"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	VariantNames   []string // known variant names, resolution order
	DefaultVariant string   // DefaultVariant normalized to a known name
}

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float32
}

// Resolved is the immutable parameter set one animation instance runs with.
type Resolved struct {
	Variant string
	Params  VariantConfig
	Bounds  Rect
}

// Resolve maps a variant name and live surface dimensions to a Resolved
// parameter set. Unknown variants fall back to the default variant. Pure:
// reads the receiver, never mutates it.
func (c *Config) Resolve(variant string, width, height int) Resolved {
	name := variant
	params, ok := c.variant(name)
	if !ok {
		name = c.Derived.DefaultVariant
		params, ok = c.variant(name)
		if !ok {
			name = "hero"
			params = c.Variants.Hero
		}
	}

	w := float64(width)
	h := float64(height)
	return Resolved{
		Variant: name,
		Params:  params,
		Bounds: Rect{
			X: float32(params.Box.X * w),
			Y: float32(params.Box.Y * h),
			W: float32(params.Box.W * w),
			H: float32(params.Box.H * h),
		},
	}
}

func (c *Config) variant(name string) (VariantConfig, bool) {
	switch name {
	case "hero":
		return c.Variants.Hero, true
	case "nav":
		return c.Variants.Nav, true
	}
	return VariantConfig{}, false
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.VariantNames = []string{"hero", "nav"}

	c.Derived.DefaultVariant = c.DefaultVariant
	if _, ok := c.variant(c.Derived.DefaultVariant); !ok {
		c.Derived.DefaultVariant = "hero"
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
