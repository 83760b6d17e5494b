package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/canvas"
	"github.com/example/drawboard/internal/palette"
)

const actionHeight = 20

// layout records where the toolbar widgets were drawn last frame so
// mouse events can hit-test against the same rectangles.
type layout struct {
	toolbarWidth int

	toolRects    []image.Rectangle
	swatchRects  []image.Rectangle
	clearRect    image.Rectangle
	edgeNoneRect image.Rectangle
	fillNoneRect image.Rectangle
	sizeDownRect image.Rectangle
	sizeUpRect   image.Rectangle
}

func (l *layout) toolAt(p image.Point) (int, bool) {
	for i, r := range l.toolRects {
		if p.In(r) {
			return i, true
		}
	}
	return 0, false
}

func (l *layout) swatchAt(p image.Point) (int, bool) {
	for i, r := range l.swatchRects {
		if p.In(r) {
			return i, true
		}
	}
	return 0, false
}

func toolbarMinHeight() int {
	rows := (palette.Size + 1) / 2
	return titleHeight + len(toolLabels)*toolButtonHeight + 8 +
		rows*swatchStep + 8 + 5*actionHeight + 8
}

func fillArea(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(dst, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

func outline(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	fillArea(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	fillArea(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	fillArea(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	fillArea(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

func (u *UI) button(dst *image.RGBA, r image.Rectangle, label string, pressed bool) {
	bg := u.theme.ButtonBackground
	if pressed {
		bg = u.theme.ButtonBackgroundPress
	}
	fillArea(dst, r, bg)
	outline(dst, r, u.theme.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(u.theme.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(r.Min.X+4, r.Min.Y+14)}
	d.DrawString(label)
}

func (u *UI) drawFrame(s screen.Screen, w screen.Window, lay *layout, width, height int, tool Tool, message string) {
	b, err := s.NewBuffer(image.Point{width, height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	fillArea(dst, dst.Bounds(), u.theme.Background)
	fillArea(dst, image.Rect(0, 0, lay.toolbarWidth, height), u.theme.ToolbarBackground)

	// Copy the pixels and read the draw state under one lock
	// acquisition; everything after renders from the copy.
	var st board.DrawState
	u.surface.View(func(c *canvas.Canvas, cur board.DrawState) {
		st = cur
		draw.Draw(dst, image.Rect(lay.toolbarWidth, 0, lay.toolbarWidth+c.Width(), c.Height()),
			c.RGBA(), image.Point{}, draw.Src)
	})

	title := &font.Drawer{Dst: dst, Src: image.NewUniform(u.theme.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 14)}
	title.DrawString("Drawboard")

	y := titleHeight
	lay.toolRects = lay.toolRects[:0]
	for i, lbl := range toolLabels {
		r := image.Rect(0, y, lay.toolbarWidth, y+toolButtonHeight)
		u.button(dst, r, lbl, Tool(i) == tool)
		lay.toolRects = append(lay.toolRects, r)
		y += toolButtonHeight
	}

	// Palette swatches: left click selects the edge color, right
	// click the fill color.
	y += 4
	x := 4
	lay.swatchRects = lay.swatchRects[:0]
	for _, idx := range palette.All() {
		r := image.Rect(x, y, x+swatchSize, y+swatchSize)
		fillArea(dst, r, idx.Color())
		outline(dst, r, u.theme.SwatchBorder)
		if st.Edge != nil && *st.Edge == idx {
			outline(dst, r.Inset(1), u.theme.SwatchEdgeMark)
		}
		if st.Fill != nil && *st.Fill == idx {
			fillArea(dst, image.Rect(r.Min.X+5, r.Min.Y+5, r.Max.X-5, r.Max.Y-5), u.theme.SwatchFillMark)
		}
		lay.swatchRects = append(lay.swatchRects, r)
		x += swatchStep
		if x+swatchSize > lay.toolbarWidth {
			x = 4
			y += swatchStep
		}
	}
	if x != 4 {
		y += swatchStep
	}

	y += 4
	lay.clearRect = image.Rect(0, y, lay.toolbarWidth, y+actionHeight)
	u.button(dst, lay.clearRect, "C:Clear", false)
	y += actionHeight

	edgeLabel := "edge:none"
	if st.Edge != nil {
		edgeLabel = fmt.Sprintf("edge:%d", int(*st.Edge))
	}
	lay.edgeNoneRect = image.Rect(0, y, lay.toolbarWidth, y+actionHeight)
	u.button(dst, lay.edgeNoneRect, edgeLabel, st.Edge == nil)
	y += actionHeight

	fillLabel := "fill:none"
	if st.Fill != nil {
		fillLabel = fmt.Sprintf("fill:%d", int(*st.Fill))
	}
	lay.fillNoneRect = image.Rect(0, y, lay.toolbarWidth, y+actionHeight)
	u.button(dst, lay.fillNoneRect, fillLabel, st.Fill == nil)
	y += actionHeight

	half := lay.toolbarWidth / 2
	lay.sizeDownRect = image.Rect(0, y, half, y+actionHeight)
	lay.sizeUpRect = image.Rect(half, y, lay.toolbarWidth, y+actionHeight)
	u.button(dst, lay.sizeDownRect, "-", st.Brush <= board.MinBrush)
	u.button(dst, lay.sizeUpRect, "+", st.Brush >= board.MaxBrush)
	y += actionHeight

	sz := &font.Drawer{Dst: dst, Src: image.NewUniform(u.theme.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(4, y+14)}
	sz.DrawString(fmt.Sprintf("size: %d", st.Brush))

	if message != "" {
		d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13}
		wmsg := d.MeasureString(message).Ceil()
		px := (width - wmsg) / 2
		py := height - 24
		box := image.Rect(px-6, py-14, px+wmsg+6, py+6)
		fillArea(dst, box, color.RGBA{255, 255, 255, 255})
		outline(dst, box, color.RGBA{0, 0, 0, 255})
		d.Dot = fixed.P(px, py)
		d.DrawString(message)
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
