package sim

import (
	"math/rand"
	"testing"
)

func TestPrune(t *testing.T) {
	particles := []Particle{
		{X: 1, Life: 10},
		{X: 2, Life: 0},
		{X: 3, Life: -4},
		{X: 4, Life: 0.5},
		{X: 5, Life: 0},
	}

	live, removed := Prune(particles)

	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if len(live) != 2 {
		t.Fatalf("live = %d, want 2", len(live))
	}
	// Compaction preserves order
	if live[0].X != 1 || live[1].X != 4 {
		t.Errorf("survivors = (%v, %v), want (1, 4)", live[0].X, live[1].X)
	}
	for i := range live {
		if live[i].Life <= 0 {
			t.Errorf("dead particle survived prune: %+v", live[i])
		}
	}
}

func TestPruneEmpty(t *testing.T) {
	live, removed := Prune(nil)
	if len(live) != 0 || removed != 0 {
		t.Errorf("Prune(nil) = (%d live, %d removed), want (0, 0)", len(live), removed)
	}
}

func TestCountGeneration(t *testing.T) {
	particles := []Particle{
		{Generation: 0}, {Generation: 0}, {Generation: 1}, {Generation: 2}, {Generation: 0},
	}

	tests := []struct {
		gen  int
		want int
	}{
		{0, 3},
		{1, 1},
		{2, 1},
		{3, 0},
	}

	for _, tt := range tests {
		if got := CountGeneration(particles, tt.gen); got != tt.want {
			t.Errorf("CountGeneration(%d) = %d, want %d", tt.gen, got, tt.want)
		}
	}
}

func TestDeepestGeneration(t *testing.T) {
	if got := DeepestGeneration(nil); got != 0 {
		t.Errorf("DeepestGeneration(nil) = %d, want 0", got)
	}

	particles := []Particle{{Generation: 0}, {Generation: 3}, {Generation: 1}}
	if got := DeepestGeneration(particles); got != 3 {
		t.Errorf("DeepestGeneration = %d, want 3", got)
	}
}

func TestTopUpRestoresFloor(t *testing.T) {
	params := testParams()
	params.InitialParticles = 5
	rng := rand.New(rand.NewSource(20))

	particles := []Particle{
		{Generation: 0, Life: 10},
		{Generation: 0, Life: 10},
		{Generation: 0, Life: 10},
		{Generation: 1, Life: 10},
		{Generation: 1, Life: 10},
	}

	out, spawned := TopUp(particles, params, testBounds(), rng)

	if spawned != 2 {
		t.Errorf("spawned = %d, want 2", spawned)
	}
	if got := CountGeneration(out, 0); got != 5 {
		t.Errorf("generation-0 count after top-up = %d, want 5", got)
	}
	if got := CountGeneration(out, 1); got != 2 {
		t.Errorf("generation-1 count changed to %d", got)
	}
}

func TestTopUpNoDeficit(t *testing.T) {
	params := testParams()
	params.InitialParticles = 2
	rng := rand.New(rand.NewSource(21))

	particles := []Particle{
		{Generation: 0, Life: 10},
		{Generation: 0, Life: 10},
		{Generation: 0, Life: 10},
	}

	out, spawned := TopUp(particles, params, testBounds(), rng)

	if spawned != 0 {
		t.Errorf("spawned = %d, want 0", spawned)
	}
	if len(out) != 3 {
		t.Errorf("population changed: %d, want 3", len(out))
	}
}
