// Package main provides CMA-ES calibration for variant parameters.
package main

import (
	"github.com/pthm-cable/cloudchamber/config"
)

// ParamSpec defines a single calibratable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of calibratable parameters for one variant.
type ParamVector struct {
	Variant string
	Specs   []ParamSpec
}

// NewParamVector creates the standard set of calibratable parameters for a
// variant. Defaults come from the base config so the search starts at the
// current tuning.
func NewParamVector(variant string, base config.VariantConfig) *ParamVector {
	prefix := "variants." + variant + "."
	return &ParamVector{
		Variant: variant,
		Specs: []ParamSpec{
			{Name: "initial_particles", Path: prefix + "initial_particles", Min: 4, Max: 64, Default: float64(base.InitialParticles)},
			{Name: "decay_rate", Path: prefix + "decay_rate", Min: 0.001, Max: 0.06, Default: base.DecayRate},
			// min_daughters locked at 2
			{Name: "max_daughters", Path: prefix + "max_daughters", Min: 2, Max: 6, Default: float64(base.MaxDaughters)},
			{Name: "max_generation", Path: prefix + "max_generation", Min: 1, Max: 5, Default: float64(base.MaxGeneration)},
			{Name: "base_lifetime", Path: prefix + "base_lifetime", Min: 60, Max: 600, Default: base.BaseLifetime},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// target returns the variant struct this vector writes to.
func (pv *ParamVector) target(cfg *config.Config) *config.VariantConfig {
	if pv.Variant == "nav" {
		return &cfg.Variants.Nav
	}
	return &cfg.Variants.Hero
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Clamp values to ensure they're within bounds
	clamped := pv.Clamp(values)
	p := pv.target(cfg)

	// Apply each parameter to the config
	// Order must match Specs order
	i := 0

	p.InitialParticles = int(clamped[i]); i++
	p.DecayRate = clamped[i]; i++

	// min_daughters locked
	p.MinDaughters = 2
	p.MaxDaughters = int(clamped[i]); i++
	p.MaxGeneration = int(clamped[i]); i++
	p.BaseLifetime = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	p := pv.target(cfg)
	return []float64{
		float64(p.InitialParticles),
		p.DecayRate,
		// min_daughters locked
		float64(p.MaxDaughters),
		float64(p.MaxGeneration),
		p.BaseLifetime,
	}
}
