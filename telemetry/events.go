// Package telemetry provides cascade activity tracking, bookmarking, and snapshots.
package telemetry

import (
	"math"

	"github.com/pthm-cable/cloudchamber/sim"
)

// DecayEvent records a single decay for the event log.
type DecayEvent struct {
	Tick       int32   `csv:"tick"`
	Generation int     `csv:"generation"`
	Daughters  int     `csv:"daughters"`
	X          float32 `csv:"x"`
	Y          float32 `csv:"y"`
	Speed      float64 `csv:"speed"`
	LifeFrac   float32 `csv:"life_frac"`
	Residual   float64 `csv:"residual"` // |Σ daughter velocity − parent velocity|
}

// NewDecayEvent captures a parent's state at the moment it splits, along with
// the momentum residual against the daughters it produced. Call it with the
// parent as it was before Split truncated its remaining life.
func NewDecayEvent(tick int32, p *sim.Particle, daughters []sim.Particle) DecayEvent {
	var sumX, sumY float64
	for i := range daughters {
		sumX += float64(daughters[i].VelX)
		sumY += float64(daughters[i].VelY)
	}
	return DecayEvent{
		Tick:       tick,
		Generation: p.Generation,
		Daughters:  len(daughters),
		X:          p.X,
		Y:          p.Y,
		Speed:      p.Speed(),
		LifeFrac:   p.LifeFrac(),
		Residual:   math.Hypot(sumX-float64(p.VelX), sumY-float64(p.VelY)),
	}
}
