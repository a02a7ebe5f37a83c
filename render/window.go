package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WindowSurface draws onto the active raylib window. The host owns the
// BeginDrawing/EndDrawing bracket around each frame.
type WindowSurface struct{}

func (WindowSurface) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (WindowSurface) Clear(c color.RGBA) {
	rl.ClearBackground(rl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (WindowSurface) Line(x1, y1, x2, y2, width float32, c color.RGBA) {
	rl.DrawLineEx(
		rl.Vector2{X: x1, Y: y1},
		rl.Vector2{X: x2, Y: y2},
		width,
		rl.Color{R: c.R, G: c.G, B: c.B, A: c.A},
	)
}
