// Package canvas holds the shared pixel buffer every drawing command
// and UI gesture mutates.
package canvas

import (
	"image"
	"image/color"

	"github.com/example/drawboard/internal/palette"
)

// Default dimensions, used when the config file does not override them.
const (
	DefaultWidth  = 800
	DefaultHeight = 520
)

// Canvas is a fixed-size RGBA pixel grid with zero-origin bounds.
// It is not safe for concurrent use; callers serialize through a
// board.Surface.
type Canvas struct {
	img *image.RGBA
}

// New returns a canvas of the given size filled with the background
// color. Non-positive dimensions fall back to the defaults.
func New(width, height int) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	c.Clear()
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// RGBA exposes the backing image for the rasterizer and for blitting
// into a window buffer. Mutations must happen under the surface lock.
func (c *Canvas) RGBA() *image.RGBA { return c.img }

// Set paints one cell. Out-of-bounds coordinates are ignored.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(c.img.Rect) {
		return
	}
	c.img.SetRGBA(x, y, col)
}

// Clear repaints every cell with the background color.
func (c *Canvas) Clear() {
	fill(c.img, palette.Background)
}

// Snapshot returns a deep copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	dup := image.NewRGBA(c.img.Rect)
	copy(dup.Pix, c.img.Pix)
	return dup
}

func fill(img *image.RGBA, col color.RGBA) {
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y) : img.PixOffset(b.Max.X-1, y)+4]
		for i := 0; i < len(row); i += 4 {
			row[i] = col.R
			row[i+1] = col.G
			row[i+2] = col.B
			row[i+3] = col.A
		}
	}
}
