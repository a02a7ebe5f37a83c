package sim

import (
	"math/rand"

	"github.com/pthm-cable/cloudchamber/config"
)

// Prune removes dead particles in place and returns the surviving slice and
// the number removed.
func Prune(particles []Particle) ([]Particle, int) {
	alive := 0
	for i := range particles {
		if particles[i].Life <= 0 {
			continue
		}
		particles[alive] = particles[i]
		alive++
	}
	return particles[:alive], len(particles) - alive
}

// CountGeneration returns how many particles have the given generation.
func CountGeneration(particles []Particle, gen int) int {
	n := 0
	for i := range particles {
		if particles[i].Generation == gen {
			n++
		}
	}
	return n
}

// DeepestGeneration returns the highest generation present, 0 when empty.
func DeepestGeneration(particles []Particle) int {
	deepest := 0
	for i := range particles {
		if particles[i].Generation > deepest {
			deepest = particles[i].Generation
		}
	}
	return deepest
}

// TopUp spawns fresh generation-0 particles until their count is back at
// InitialParticles. Returns the extended slice and the number spawned.
func TopUp(particles []Particle, params config.VariantConfig, bounds config.Rect, rng *rand.Rand) ([]Particle, int) {
	deficit := params.InitialParticles - CountGeneration(particles, 0)
	if deficit <= 0 {
		return particles, 0
	}
	for i := 0; i < deficit; i++ {
		particles = append(particles, SpawnPrimary(params, bounds, rng))
	}
	return particles, deficit
}
