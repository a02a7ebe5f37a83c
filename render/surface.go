// Package render draws particle trails and heads onto a minimal surface
// abstraction, with backends for a raylib window, an offscreen raster, and
// whatever else can stroke a line.
package render

import "image/color"

// Surface is the drawing target the renderer needs: a logical pixel size, a
// clear, and stroked line segments. Colors carry straight (non-premultiplied)
// alpha.
type Surface interface {
	// Size returns the drawable area in logical pixels.
	Size() (w, h int)
	// Clear fills the whole surface.
	Clear(c color.RGBA)
	// Line strokes a segment from (x1,y1) to (x2,y2).
	Line(x1, y1, x2, y2, width float32, c color.RGBA)
}
