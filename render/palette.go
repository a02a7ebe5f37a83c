package render

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme selects the palette. Hosts sample their theme signal once per frame
// and pass the result in; nothing here is cached between frames.
type Theme struct {
	Dark bool
}

// Head hue ramp: a particle's colorShift in [0,1] walks hueSpan degrees from
// the theme's base hue.
const (
	darkBaseHue  = 185.0
	lightBaseHue = 205.0
	hueSpan      = 130.0

	headSaturation = 0.75
	darkLightness  = 0.65
	lightLightness = 0.42
)

var (
	darkTrailGrey  = color.RGBA{R: 200, G: 204, B: 212, A: 255}
	lightTrailGrey = color.RGBA{R: 90, G: 95, B: 104, A: 255}

	darkBackground  = color.RGBA{R: 13, G: 17, B: 23, A: 255}
	lightBackground = color.RGBA{R: 250, G: 250, B: 252, A: 255}
)

// Background returns the clear color for the theme.
func (t Theme) Background() color.RGBA {
	if t.Dark {
		return darkBackground
	}
	return lightBackground
}

// TrailColor returns the theme grey at the given alpha in [0,1].
func (t Theme) TrailColor(alpha float32) color.RGBA {
	grey := lightTrailGrey
	if t.Dark {
		grey = darkTrailGrey
	}
	return withAlpha(grey, alpha)
}

// HeadColor maps a particle's colorShift onto the themed HSL hue ramp.
func (t Theme) HeadColor(colorShift, alpha float32) color.RGBA {
	base, lum := lightBaseHue, lightLightness
	if t.Dark {
		base, lum = darkBaseHue, darkLightness
	}
	hue := math.Mod(base+float64(colorShift)*hueSpan, 360)
	r, g, b := colorful.Hsl(hue, headSaturation, lum).RGB255()
	return withAlpha(color.RGBA{R: r, G: g, B: b, A: 255}, alpha)
}

func withAlpha(c color.RGBA, alpha float32) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(alpha * 255)
	return c
}
