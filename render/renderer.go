package render

import "github.com/pthm-cable/cloudchamber/sim"

// Stroke geometry.
const (
	headLength = 5.0 // pixels, regardless of speed

	trailAlphaScale = 0.5

	widthBase   = 1.6
	widthPerGen = 0.3
	widthFloor  = 0.5

	headWidthBase  = 1.8
	headWidthFloor = 0.6
)

// DrawParticle renders one particle: the fading grey trail from its origin
// to its position, then the colored head. Stateless given the particle's
// fields and the theme; skipped entirely once the particle's alpha reaches
// zero.
func DrawParticle(s Surface, p *sim.Particle, theme Theme) {
	lifeFrac := p.LifeFrac()
	if lifeFrac <= 0 {
		return
	}

	s.Line(p.OriginX, p.OriginY, p.X, p.Y,
		trailWidth(p.Generation), theme.TrailColor(trailAlphaScale*lifeFrac))

	hx, hy := headTail(p)
	s.Line(hx, hy, p.X, p.Y,
		headWidth(p.Generation), theme.HeadColor(p.ColorShift, lifeFrac))
}

// DrawAll clears the surface and renders every particle.
func DrawAll(s Surface, particles []sim.Particle, theme Theme) {
	s.Clear(theme.Background())
	for i := range particles {
		DrawParticle(s, &particles[i], theme)
	}
}

// headTail returns the rear endpoint of the head segment, headLength pixels
// behind the particle along its reverse velocity. A stationary particle gets
// a horizontal head.
func headTail(p *sim.Particle) (float32, float32) {
	speed := p.Speed()
	if speed < 1e-6 {
		return p.X - headLength, p.Y
	}
	inv := headLength / speed
	return p.X - float32(float64(p.VelX)*inv), p.Y - float32(float64(p.VelY)*inv)
}

// trailWidth narrows with each generation down to a floor.
func trailWidth(generation int) float32 {
	w := widthBase - widthPerGen*float32(generation)
	if w < widthFloor {
		return widthFloor
	}
	return w
}

func headWidth(generation int) float32 {
	w := headWidthBase - widthPerGen*float32(generation)
	if w < headWidthFloor {
		return headWidthFloor
	}
	return w
}
