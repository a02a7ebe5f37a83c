package tui

import (
	"image/color"
	"math"
	"strings"
)

// Braille patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot matrix that satisfies render.Surface. One terminal
// cell holds 2x4 dots, so a cols x rows canvas exposes a (cols*2) x (rows*4)
// logical surface. Colors are accepted and ignored; the terminal draws dots.
type Canvas struct {
	cols, rows int
	grid       [][]rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Reset(cols, rows)
	return c
}

// Reset resizes the canvas to cols x rows terminal cells and clears it.
func (c *Canvas) Reset(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols, c.rows = cols, rows
	c.grid = make([][]rune, rows)
	for i := range c.grid {
		c.grid[i] = make([]rune, cols)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// Size returns the drawable area in dots.
func (c *Canvas) Size() (int, int) {
	return c.cols * 2, c.rows * 4
}

// Clear empties every cell. The fill color is ignored.
func (c *Canvas) Clear(color.RGBA) {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// Line strokes a segment in dot coordinates with Bresenham's algorithm.
// Stroke width and color have no braille equivalent and are ignored.
func (c *Canvas) Line(x1, y1, x2, y2, width float32, col color.RGBA) {
	x0, y0 := dot(x1), dot(y1)
	xn, yn := dot(x2), dot(y2)

	dx := abs(xn - x0)
	dy := abs(yn - y0)
	sx := -1
	if x0 < xn {
		sx = 1
	}
	sy := -1
	if y0 < yn {
		sy = 1
	}
	err := dx - dy

	for {
		c.set(x0, y0)
		if x0 == xn && y0 == yn {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// set turns on the dot at (x, y); out-of-range dots are dropped.
func (c *Canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func dot(v float32) int {
	return int(math.Round(float64(v)))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
