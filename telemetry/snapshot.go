package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/cloudchamber/sim"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete animation state for replay.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Variant string `json:"variant"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`

	Tick int32 `json:"tick"`

	Particles []ParticleState `json:"particles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ParticleState holds one particle's complete state.
type ParticleState struct {
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	OriginX    float32 `json:"origin_x"`
	OriginY    float32 `json:"origin_y"`
	VelX       float32 `json:"vel_x"`
	VelY       float32 `json:"vel_y"`
	Life       float32 `json:"life"`
	LifeTotal  float32 `json:"life_total"`
	Generation int     `json:"generation"`
	Decayed    bool    `json:"decayed"`
	ColorShift float32 `json:"color_shift"`
}

// CaptureParticles converts the live arena into snapshot records.
func CaptureParticles(particles []sim.Particle) []ParticleState {
	states := make([]ParticleState, len(particles))
	for i := range particles {
		p := &particles[i]
		states[i] = ParticleState{
			X:          p.X,
			Y:          p.Y,
			OriginX:    p.OriginX,
			OriginY:    p.OriginY,
			VelX:       p.VelX,
			VelY:       p.VelY,
			Life:       p.Life,
			LifeTotal:  p.LifeTotal,
			Generation: p.Generation,
			Decayed:    p.Decayed,
			ColorShift: p.ColorShift,
		}
	}
	return states
}

// RestoreParticles converts snapshot records back into a live arena.
func RestoreParticles(states []ParticleState) []sim.Particle {
	particles := make([]sim.Particle, len(states))
	for i, s := range states {
		particles[i] = sim.Particle{
			X:          s.X,
			Y:          s.Y,
			OriginX:    s.OriginX,
			OriginY:    s.OriginY,
			VelX:       s.VelX,
			VelY:       s.VelY,
			Life:       s.Life,
			LifeTotal:  s.LifeTotal,
			Generation: s.Generation,
			Decayed:    s.Decayed,
			ColorShift: s.ColorShift,
		}
	}
	return particles
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
