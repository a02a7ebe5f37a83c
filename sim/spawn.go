package sim

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/cloudchamber/config"
)

// Lifetime jitter applied to BaseLifetime at spawn.
const (
	lifeJitterMin = 0.8
	lifeJitterMax = 1.2
)

// SpawnInitial creates the starting generation-0 population, uniformly
// distributed inside bounds.
func SpawnInitial(params config.VariantConfig, bounds config.Rect, rng *rand.Rand) []Particle {
	particles := make([]Particle, 0, params.InitialParticles*2)
	for i := 0; i < params.InitialParticles; i++ {
		particles = append(particles, SpawnPrimary(params, bounds, rng))
	}
	return particles
}

// SpawnPrimary creates one generation-0 particle. Speed is sampled
// log-uniformly between SpeedMin and SpeedMax: mostly slow movers with a
// thin tail of fast ones, instead of the fast-heavy mix a linear sample
// gives.
func SpawnPrimary(params config.VariantConfig, bounds config.Rect, rng *rand.Rand) Particle {
	x := bounds.X + rng.Float32()*bounds.W
	y := bounds.Y + rng.Float32()*bounds.H

	angle := rng.Float64() * 2 * math.Pi
	speed := logUniform(rng, params.SpeedMin, params.SpeedMax)

	life := float32(params.BaseLifetime * uniform(rng, lifeJitterMin, lifeJitterMax))

	return Particle{
		X:          x,
		Y:          y,
		OriginX:    x,
		OriginY:    y,
		VelX:       float32(math.Cos(angle) * speed),
		VelY:       float32(math.Sin(angle) * speed),
		Life:       life,
		LifeTotal:  life,
		Generation: 0,
		ColorShift: rng.Float32(),
	}
}

// uniform samples U(lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// logUniform samples between lo and hi with density uniform in log space.
func logUniform(rng *rand.Rand, lo, hi float64) float64 {
	if lo <= 0 || hi <= lo {
		return lo
	}
	return math.Exp(uniform(rng, math.Log(lo), math.Log(hi)))
}
