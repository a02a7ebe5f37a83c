// Package sim implements the particle-decay cascade: plain particle records
// in a single owned slice, mutated by free functions so each stage of the
// integrate/decay/prune pipeline can be tested in isolation.
package sim

import "math"

// Particle is one moving trail. Owned by exactly one animation instance and
// mutated only between frames.
type Particle struct {
	X, Y             float32 // current position
	OriginX, OriginY float32 // spawn location; the trail is drawn from here
	VelX, VelY       float32 // constant per instance, units per frame
	Life             float32 // frames remaining; dead when <= 0
	LifeTotal        float32
	Generation       int     // 0 for primaries, +1 per decay level
	Decayed          bool    // set once; a particle decays at most once
	ColorShift       float32 // [0,1], drives head hue at render time
}

// Speed returns the momentum magnitude (unit mass).
func (p *Particle) Speed() float64 {
	return math.Hypot(float64(p.VelX), float64(p.VelY))
}

// LifeFrac returns remaining life normalized to [0,1].
func (p *Particle) LifeFrac() float32 {
	if p.LifeTotal <= 0 {
		return 0
	}
	return clamp01(p.Life / p.LifeTotal)
}

// Alive reports whether the particle survives the next prune.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Integrate advances the particle by one frame: position by its constant
// velocity, lifetime down by one.
func Integrate(p *Particle) {
	p.X += p.VelX
	p.Y += p.VelY
	p.Life--
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
