// Package raster implements the primitive drawing operations. All
// functions operate directly on an *image.RGBA, silently clipping
// anything that falls outside its bounds. Outlines are stamped: every
// boundary pixel is painted as a square block of the brush size, so a
// thick line is the union of blocks along the thin line's path.
package raster

import (
	"image"
	"image/color"
)

func setPx(img *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	img.SetRGBA(x, y, col)
}

// hspan paints the inclusive run [x0,x1] on row y, clipped to bounds.
func hspan(img *image.RGBA, y, x0, x1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y < img.Rect.Min.Y || y >= img.Rect.Max.Y {
		return
	}
	if x0 < img.Rect.Min.X {
		x0 = img.Rect.Min.X
	}
	if x1 >= img.Rect.Max.X {
		x1 = img.Rect.Max.X - 1
	}
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, col)
	}
}

// Dot paints a square block of side size centered on (x, y). This is
// both the `dot` command and the stamp used at every step of an
// outline. Sizes below 1 draw nothing.
func Dot(img *image.RGBA, x, y, size int, col color.RGBA) {
	if size < 1 {
		return
	}
	lo := -(size - 1) / 2
	hi := size / 2
	for dy := lo; dy <= hi; dy++ {
		hspan(img, y+dy, x+lo, x+hi, col)
	}
}

// Line draws a stamped Bresenham segment from (x0,y0) to (x1,y1).
// Identical endpoints degenerate to a single stamp.
func Line(img *image.RGBA, x0, y0, x1, y1, size int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		Dot(img, x0, y0, size, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillRect paints the solid axis-aligned rectangle with the given
// opposite corners, inclusive. Corners may be given in any order.
func FillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		hspan(img, y, x0, x1, col)
	}
}

// Rect draws the stamped outline of the axis-aligned rectangle with
// the given opposite corners, inclusive.
func Rect(img *image.RGBA, x0, y0, x1, y1, size int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	Line(img, x0, y0, x1, y0, size, col)
	Line(img, x0, y1, x1, y1, size, col)
	Line(img, x0, y0, x0, y1, size, col)
	Line(img, x1, y0, x1, y1, size, col)
}

// circleRows walks the midpoint circle octant and reports, per row
// offset dy in [0,r], the largest dx on the boundary. The same walk
// backs both the outline and the fill so they never disagree.
func circleRows(r int) []int {
	rows := make([]int, r+1)
	x, y := r, 0
	d := 1 - r
	for x >= y {
		if x > rows[y] {
			rows[y] = x
		}
		if y > rows[x] {
			rows[x] = y
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
	return rows
}

// Circle draws the stamped midpoint-circle outline of radius r
// centered on (cx, cy). Radius 0 or less draws nothing.
func Circle(img *image.RGBA, cx, cy, r, size int, col color.RGBA) {
	if r <= 0 {
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		Dot(img, cx+x, cy+y, size, col)
		Dot(img, cx-x, cy+y, size, col)
		Dot(img, cx+x, cy-y, size, col)
		Dot(img, cx-x, cy-y, size, col)
		Dot(img, cx+y, cy+x, size, col)
		Dot(img, cx-y, cy+x, size, col)
		Dot(img, cx+y, cy-x, size, col)
		Dot(img, cx-y, cy-x, size, col)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillCircle paints the solid disc of radius r centered on (cx, cy),
// spanning row by row between the midpoint boundary pixels.
func FillCircle(img *image.RGBA, cx, cy, r int, col color.RGBA) {
	if r <= 0 {
		return
	}
	rows := circleRows(r)
	for dy, dx := range rows {
		hspan(img, cy+dy, cx-dx, cx+dx, col)
		if dy != 0 {
			hspan(img, cy-dy, cx-dx, cx+dx, col)
		}
	}
}

// ellipseRows walks the two-region midpoint ellipse and reports, per
// row offset dy in [0,ry], the largest dx on the boundary.
func ellipseRows(rx, ry int) []int {
	rows := make([]int, ry+1)
	mark := func(x, y int) {
		if y >= 0 && y <= ry && x > rows[y] {
			rows[y] = x
		}
	}
	a2 := int64(rx) * int64(rx)
	b2 := int64(ry) * int64(ry)

	// Region 1: slope > -1, step in x.
	x, y := int64(rx), int64(0)
	d := b2 - a2*int64(ry) + a2/4
	dx := 2 * b2 * x
	dy := 2 * a2 * y
	for dx >= dy {
		mark(int(x), int(y))
		y++
		dy += 2 * a2
		if d < 0 {
			d += dy + a2
		} else {
			x--
			dx -= 2 * b2
			d += dy - dx + a2
		}
	}

	// Region 2: slope <= -1, step in y.
	x, y = 0, int64(ry)
	d = a2 - b2*int64(rx) + b2/4
	dx = 2 * b2 * x
	dy = 2 * a2 * y
	for dy >= dx {
		mark(int(x), int(y))
		x++
		dx += 2 * b2
		if d < 0 {
			d += dx + b2
		} else {
			y--
			dy -= 2 * a2
			d += dx - dy + b2
		}
	}
	return rows
}

// Ellipse draws the stamped outline of the axis-aligned ellipse with
// radii rx, ry centered on (cx, cy). Either radius at 0 draws nothing.
func Ellipse(img *image.RGBA, cx, cy, rx, ry, size int, col color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	rows := ellipseRows(rx, ry)
	prev := rows[0]
	for dy, dx := range rows {
		// Paint every boundary cell between this row's extreme
		// and the previous row's, keeping the outline connected
		// where region 1 skips columns.
		lo, hi := dx, prev
		if lo > hi {
			lo, hi = hi, lo
		}
		// The top and bottom rows are boundary all the way in.
		if dy == ry {
			lo = 0
		}
		for x := lo; x <= hi; x++ {
			Dot(img, cx+x, cy+dy, size, col)
			Dot(img, cx-x, cy+dy, size, col)
			if dy != 0 {
				Dot(img, cx+x, cy-dy, size, col)
				Dot(img, cx-x, cy-dy, size, col)
			}
		}
		prev = dx
	}
}

// FillEllipse paints the solid ellipse with radii rx, ry centered on
// (cx, cy).
func FillEllipse(img *image.RGBA, cx, cy, rx, ry int, col color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	rows := ellipseRows(rx, ry)
	for dy, dx := range rows {
		hspan(img, cy+dy, cx-dx, cx+dx, col)
		if dy != 0 {
			hspan(img, cy-dy, cx-dx, cx+dx, col)
		}
	}
}

// triangleCorners derives the three vertices of the isoceles triangle
// inscribed in the bbox spanned by the two given corners: apex at the
// horizontal midpoint of the top edge, base along the bottom edge.
func triangleCorners(x0, y0, x1, y1 int) (ax, ay, blx, bly, brx, bry int) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return x0 + (x1-x0)/2, y0, x0, y1, x1, y1
}

// Triangle draws the stamped outline of the isoceles triangle
// inscribed in the bbox spanned by the two given corners.
func Triangle(img *image.RGBA, x0, y0, x1, y1, size int, col color.RGBA) {
	ax, ay, blx, bly, brx, bry := triangleCorners(x0, y0, x1, y1)
	Line(img, ax, ay, blx, bly, size, col)
	Line(img, ax, ay, brx, bry, size, col)
	Line(img, blx, bly, brx, bry, size, col)
}

// FillTriangle paints the solid isoceles triangle inscribed in the
// bbox spanned by the two given corners, one horizontal span per row
// between the interpolated left and right edges.
func FillTriangle(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	ax, ay, blx, bly, brx, _ := triangleCorners(x0, y0, x1, y1)
	h := bly - ay
	if h == 0 {
		hspan(img, ay, blx, brx, col)
		return
	}
	for y := ay; y <= bly; y++ {
		t := y - ay
		xl := ax + (blx-ax)*t/h
		xr := ax + (brx-ax)*t/h
		hspan(img, y, xl, xr, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
