package render

import "image/color"

// NullSurface reports a fixed size and discards every draw call. It backs
// headless runs where only the simulation and its telemetry matter.
type NullSurface struct {
	W, H int
}

func (s NullSurface) Size() (int, int) { return s.W, s.H }

func (NullSurface) Clear(color.RGBA) {}

func (NullSurface) Line(x1, y1, x2, y2, width float32, c color.RGBA) {}
