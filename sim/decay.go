package sim

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/cloudchamber/config"
)

// Decay and momentum-split tuning.
const (
	refFrameMS = 16.0 // Δt normalization for the decay hazard

	splitFracMin = 0.15 // fraction of parent momentum per non-last daughter
	splitFracMax = 0.6

	daughterLifeMin = 0.6 // daughter lifetime as fraction of parent total
	daughterLifeMax = 1.0

	colorShiftDrift = 0.1

	parentLifeCap = 0.4 // fraction of LifeTotal a parent keeps after decay

	degenerateSpeed  = 0.01 // below this a daughter velocity counts as zero
	minDaughterSpeed = 0.3
)

// DecayProbability returns the chance that a particle decays during a frame
// that took dtMS milliseconds. Exponential in dt: survival over two short
// frames multiplies out to exactly one long frame, so the process is
// frame-rate independent.
func DecayProbability(rate, dtMS float64) float64 {
	if rate <= 0 || dtMS <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dtMS/refFrameMS)
}

// TryDecay rolls the decay check for p and, on success, splits it. Daughters
// are appended to dst; the extended slice is returned along with whether the
// decay happened. Particles at MaxGeneration or already decayed never roll.
func TryDecay(dst []Particle, p *Particle, params config.VariantConfig, dtMS float64, rng *rand.Rand) ([]Particle, bool) {
	if p.Decayed || p.Generation >= params.MaxGeneration {
		return dst, false
	}
	if rng.Float64() >= DecayProbability(params.DecayRate, dtMS) {
		return dst, false
	}
	return Split(dst, p, params, rng), true
}

// Split performs the decay unconditionally: marks p decayed, truncates its
// remaining lifetime, and appends 2..MaxDaughters daughters at the parent's
// current position.
//
// Every daughter but the last takes a random fraction of the parent's
// momentum at a jittered angle, subtracted from a running remainder; the
// last daughter receives the remainder itself, so the daughter velocities
// sum exactly to the parent's. A near-zero daughter velocity is replaced by
// a minimum-speed vector so no stationary, invisible daughter is emitted;
// the replacement is what gets subtracted from the remainder, which keeps
// the sum exact unless the remainder itself was degenerate.
func Split(dst []Particle, p *Particle, params config.VariantConfig, rng *rand.Rand) []Particle {
	p.Decayed = true

	n := daughterCount(params, rng)

	dir := math.Atan2(float64(p.VelY), float64(p.VelX))
	momentum := p.Speed()

	remX := float64(p.VelX)
	remY := float64(p.VelY)

	for i := 0; i < n; i++ {
		var vx, vy float64
		if i == n-1 {
			vx, vy = remX, remY
		} else {
			frac := uniform(rng, splitFracMin, splitFracMax)
			ang := dir + uniform(rng, -params.Spread/2, params.Spread/2)
			vx = math.Cos(ang) * momentum * frac
			vy = math.Sin(ang) * momentum * frac
		}

		if math.Hypot(vx, vy) < degenerateSpeed {
			ang := dir + uniform(rng, -params.Spread/2, params.Spread/2)
			vx = math.Cos(ang) * minDaughterSpeed
			vy = math.Sin(ang) * minDaughterSpeed
		}
		if i < n-1 {
			remX -= vx
			remY -= vy
		}

		life := p.LifeTotal * float32(uniform(rng, daughterLifeMin, daughterLifeMax))
		dst = append(dst, Particle{
			X:          p.X,
			Y:          p.Y,
			OriginX:    p.X,
			OriginY:    p.Y,
			VelX:       float32(vx),
			VelY:       float32(vy),
			Life:       life,
			LifeTotal:  life,
			Generation: p.Generation + 1,
			ColorShift: clamp01(p.ColorShift + (rng.Float32()*2-1)*colorShiftDrift),
		})
	}

	if limit := p.LifeTotal * parentLifeCap; p.Life > limit {
		p.Life = limit
	}
	return dst
}

// daughterCount picks a uniform integer in [MinDaughters, MaxDaughters],
// never below 2.
func daughterCount(params config.VariantConfig, rng *rand.Rand) int {
	lo, hi := params.MinDaughters, params.MaxDaughters
	if hi < lo {
		hi = lo
	}
	n := lo + rng.Intn(hi-lo+1)
	if n < 2 {
		n = 2
	}
	return n
}
