package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// ImageSurface renders onto an in-memory raster via gg. Used by the frame
// recorder and by anything that needs frames without a window.
type ImageSurface struct {
	dc   *gg.Context
	w, h int
}

// NewImageSurface creates a surface of logical size w×h. scale is the device
// pixel ratio, applied once here: the backing raster is scale times larger
// and all drawing is done in logical units.
func NewImageSurface(w, h int, scale float64) *ImageSurface {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(float64(w)*scale), int(float64(h)*scale))
	dc.Scale(scale, scale)
	return &ImageSurface{dc: dc, w: w, h: h}
}

// Size returns the logical dimensions, not the backing raster's.
func (s *ImageSurface) Size() (int, int) {
	return s.w, s.h
}

func (s *ImageSurface) Clear(c color.RGBA) {
	s.setColor(c)
	s.dc.Clear()
}

func (s *ImageSurface) Line(x1, y1, x2, y2, width float32, c color.RGBA) {
	s.setColor(c)
	s.dc.SetLineWidth(float64(width))
	s.dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
	s.dc.Stroke()
}

func (s *ImageSurface) setColor(c color.RGBA) {
	s.dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

// Image returns the current frame contents.
func (s *ImageSurface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the current frame to path.
func (s *ImageSurface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}
