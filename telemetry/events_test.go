package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/cloudchamber/sim"
)

func TestNewDecayEvent(t *testing.T) {
	parent := sim.Particle{
		X: 40, Y: 60,
		VelX: 3, VelY: 4,
		Life: 80, LifeTotal: 100,
		Generation: 1,
	}
	daughters := []sim.Particle{
		{VelX: 1, VelY: 3},
		{VelX: 2, VelY: 1},
	}

	ev := NewDecayEvent(120, &parent, daughters)

	if ev.Tick != 120 || ev.Generation != 1 || ev.Daughters != 2 {
		t.Errorf("event header = (tick %d, gen %d, daughters %d), want (120, 1, 2)",
			ev.Tick, ev.Generation, ev.Daughters)
	}
	if ev.X != 40 || ev.Y != 60 {
		t.Errorf("event position = (%v, %v), want (40, 60)", ev.X, ev.Y)
	}
	if math.Abs(ev.Speed-5) > 1e-6 {
		t.Errorf("event speed = %v, want 5", ev.Speed)
	}
	if math.Abs(float64(ev.LifeFrac)-0.8) > 1e-6 {
		t.Errorf("event lifeFrac = %v, want 0.8", ev.LifeFrac)
	}
	// Daughters sum to the parent velocity exactly
	if ev.Residual > 1e-9 {
		t.Errorf("residual = %v for exact split, want 0", ev.Residual)
	}
}

func TestNewDecayEventResidual(t *testing.T) {
	parent := sim.Particle{VelX: 3, VelY: 4, Life: 10, LifeTotal: 10}
	daughters := []sim.Particle{
		{VelX: 1, VelY: 1},
		{VelX: 1, VelY: 1},
	}

	ev := NewDecayEvent(1, &parent, daughters)

	want := math.Hypot(2-3, 2-4)
	if math.Abs(ev.Residual-want) > 1e-9 {
		t.Errorf("residual = %v, want %v", ev.Residual, want)
	}
}
