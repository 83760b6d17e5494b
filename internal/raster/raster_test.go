package raster

import (
	"image"
	"image/color"
	"testing"
)

var ink = color.RGBA{0xE0, 0x40, 0x40, 0xFF}

func newImg(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func painted(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y) == ink
}

func countPainted(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if painted(img, x, y) {
				n++
			}
		}
	}
	return n
}

func TestDot(t *testing.T) {
	tests := []struct {
		name       string
		x, y, size int
		want       image.Rectangle
	}{
		{"size 1 single pixel", 10, 10, 1, image.Rect(10, 10, 11, 11)},
		{"size 2 anchors top-left", 10, 10, 2, image.Rect(10, 10, 12, 12)},
		{"size 3 centered", 10, 10, 3, image.Rect(9, 9, 12, 12)},
		{"size 5 centered", 10, 10, 5, image.Rect(8, 8, 13, 13)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newImg(20, 20)
			Dot(img, tt.x, tt.y, tt.size, ink)
			for y := 0; y < 20; y++ {
				for x := 0; x < 20; x++ {
					want := (image.Point{x, y}).In(tt.want)
					if got := painted(img, x, y); got != want {
						t.Errorf("pixel (%d,%d): painted=%v want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestDotSizeBelowOneDrawsNothing(t *testing.T) {
	img := newImg(10, 10)
	Dot(img, 5, 5, 0, ink)
	Dot(img, 5, 5, -3, ink)
	if n := countPainted(img); n != 0 {
		t.Errorf("painted %d pixels, want 0", n)
	}
}

func TestDotClipsAtBounds(t *testing.T) {
	img := newImg(10, 10)
	Dot(img, 0, 0, 5, ink)
	Dot(img, -100, -100, 5, ink)
	if !painted(img, 0, 0) {
		t.Errorf("corner pixel not painted")
	}
	if got, want := countPainted(img), 3*3; got != want {
		t.Errorf("painted %d pixels, want %d", got, want)
	}
}

func TestLine(t *testing.T) {
	t.Run("horizontal covers every column", func(t *testing.T) {
		img := newImg(20, 20)
		Line(img, 2, 5, 12, 5, 1, ink)
		for x := 2; x <= 12; x++ {
			if !painted(img, x, 5) {
				t.Errorf("pixel (%d,5) not painted", x)
			}
		}
		if got, want := countPainted(img), 11; got != want {
			t.Errorf("painted %d pixels, want %d", got, want)
		}
	})
	t.Run("identical endpoints single stamp", func(t *testing.T) {
		img := newImg(20, 20)
		Line(img, 7, 7, 7, 7, 1, ink)
		if got := countPainted(img); got != 1 {
			t.Errorf("painted %d pixels, want 1", got)
		}
		if !painted(img, 7, 7) {
			t.Errorf("pixel (7,7) not painted")
		}
	})
	t.Run("diagonal paints one pixel per column", func(t *testing.T) {
		img := newImg(20, 20)
		Line(img, 0, 0, 9, 9, 1, ink)
		for i := 0; i <= 9; i++ {
			if !painted(img, i, i) {
				t.Errorf("pixel (%d,%d) not painted", i, i)
			}
		}
	})
	t.Run("vertical covers every row", func(t *testing.T) {
		img := newImg(20, 20)
		Line(img, 6, 14, 6, 2, 1, ink)
		for y := 2; y <= 14; y++ {
			if !painted(img, 6, y) {
				t.Errorf("pixel (6,%d) not painted", y)
			}
		}
		if got, want := countPainted(img), 13; got != want {
			t.Errorf("painted %d pixels, want %d", got, want)
		}
	})
	t.Run("thick line stamps blocks", func(t *testing.T) {
		img := newImg(20, 20)
		Line(img, 5, 10, 15, 10, 3, ink)
		for x := 4; x <= 16; x++ {
			for y := 9; y <= 11; y++ {
				if !painted(img, x, y) {
					t.Errorf("pixel (%d,%d) not painted", x, y)
				}
			}
		}
	})
}

func TestFillRect(t *testing.T) {
	img := newImg(20, 20)
	FillRect(img, 12, 8, 4, 3, ink) // reversed corners
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			want := x >= 4 && x <= 12 && y >= 3 && y <= 8
			if got := painted(img, x, y); got != want {
				t.Errorf("pixel (%d,%d): painted=%v want %v", x, y, got, want)
			}
		}
	}
}

func TestRectOutlineLeavesInteriorUntouched(t *testing.T) {
	img := newImg(20, 20)
	Rect(img, 3, 3, 12, 10, 1, ink)
	for y := 4; y <= 9; y++ {
		for x := 4; x <= 11; x++ {
			if painted(img, x, y) {
				t.Errorf("interior pixel (%d,%d) painted", x, y)
			}
		}
	}
	for x := 3; x <= 12; x++ {
		if !painted(img, x, 3) || !painted(img, x, 10) {
			t.Errorf("border column %d missing", x)
		}
	}
	for y := 3; y <= 10; y++ {
		if !painted(img, 3, y) || !painted(img, 12, y) {
			t.Errorf("border row %d missing", y)
		}
	}
}

func TestCircleSymmetry(t *testing.T) {
	const cx, cy, r = 20, 20, 9
	img := newImg(41, 41)
	Circle(img, cx, cy, r, 1, ink)
	if countPainted(img) == 0 {
		t.Fatalf("circle painted nothing")
	}
	for y := 0; y < 41; y++ {
		for x := 0; x < 41; x++ {
			if !painted(img, x, y) {
				continue
			}
			dx, dy := x-cx, y-cy
			mirrors := [][2]int{
				{cx - dx, cy + dy}, {cx + dx, cy - dy}, {cx - dx, cy - dy},
				{cx + dy, cy + dx}, {cx - dy, cy + dx}, {cx + dy, cy - dx}, {cx - dy, cy - dx},
			}
			for _, m := range mirrors {
				if !painted(img, m[0], m[1]) {
					t.Fatalf("pixel (%d,%d) painted but mirror (%d,%d) is not", x, y, m[0], m[1])
				}
			}
		}
	}
}

func TestCircleZeroRadiusDrawsNothing(t *testing.T) {
	img := newImg(10, 10)
	Circle(img, 5, 5, 0, 1, ink)
	FillCircle(img, 5, 5, 0, ink)
	if n := countPainted(img); n != 0 {
		t.Errorf("painted %d pixels, want 0", n)
	}
}

func TestFillCircleCoversOutline(t *testing.T) {
	const cx, cy, r = 15, 15, 7
	outline := newImg(31, 31)
	fill := newImg(31, 31)
	Circle(outline, cx, cy, r, 1, ink)
	FillCircle(fill, cx, cy, r, ink)
	for y := 0; y < 31; y++ {
		for x := 0; x < 31; x++ {
			if painted(outline, x, y) && !painted(fill, x, y) {
				t.Errorf("outline pixel (%d,%d) not inside fill", x, y)
			}
		}
	}
	if !painted(fill, cx, cy) {
		t.Errorf("center not filled")
	}
}

func TestEllipseDegenerateRadiiDrawNothing(t *testing.T) {
	img := newImg(20, 20)
	Ellipse(img, 10, 10, 0, 5, 1, ink)
	Ellipse(img, 10, 10, 5, 0, 1, ink)
	FillEllipse(img, 10, 10, 0, 5, ink)
	FillEllipse(img, 10, 10, 5, 0, ink)
	if n := countPainted(img); n != 0 {
		t.Errorf("painted %d pixels, want 0", n)
	}
}

func TestEllipseExtremes(t *testing.T) {
	const cx, cy, rx, ry = 20, 15, 12, 7
	img := newImg(41, 31)
	Ellipse(img, cx, cy, rx, ry, 1, ink)
	for _, p := range [][2]int{{cx + rx, cy}, {cx - rx, cy}, {cx, cy + ry}, {cx, cy - ry}} {
		if !painted(img, p[0], p[1]) {
			t.Errorf("extreme point (%d,%d) not painted", p[0], p[1])
		}
	}
	if painted(img, cx, cy) {
		t.Errorf("center painted by outline")
	}
}

func TestFillEllipseCoversOutline(t *testing.T) {
	const cx, cy, rx, ry = 20, 15, 11, 6
	outline := newImg(41, 31)
	fill := newImg(41, 31)
	Ellipse(outline, cx, cy, rx, ry, 1, ink)
	FillEllipse(fill, cx, cy, rx, ry, ink)
	for y := 0; y < 31; y++ {
		for x := 0; x < 41; x++ {
			if painted(outline, x, y) && !painted(fill, x, y) {
				t.Errorf("outline pixel (%d,%d) not inside fill", x, y)
			}
		}
	}
}

func TestTriangleApexAtTopMidpoint(t *testing.T) {
	img := newImg(40, 40)
	Triangle(img, 30, 25, 10, 5, 1, ink) // corners in any order
	if !painted(img, 20, 5) {
		t.Errorf("apex (20,5) not painted")
	}
	if !painted(img, 10, 25) || !painted(img, 30, 25) {
		t.Errorf("base corners not painted")
	}
	if painted(img, 10, 5) || painted(img, 30, 5) {
		t.Errorf("bbox top corners painted; apex should be the only top vertex")
	}
}

func TestFillTriangle(t *testing.T) {
	img := newImg(40, 40)
	FillTriangle(img, 10, 5, 30, 25, ink)
	if !painted(img, 20, 15) {
		t.Errorf("interior pixel (20,15) not filled")
	}
	for x := 10; x <= 30; x++ {
		if !painted(img, x, 25) {
			t.Errorf("base pixel (%d,25) not filled", x)
		}
	}
	if painted(img, 11, 6) || painted(img, 29, 6) {
		t.Errorf("pixels outside the slanted edges filled")
	}
}

func TestFillTriangleZeroHeight(t *testing.T) {
	img := newImg(40, 40)
	FillTriangle(img, 5, 10, 25, 10, ink)
	for x := 5; x <= 25; x++ {
		if !painted(img, x, 10) {
			t.Errorf("pixel (%d,10) not painted", x)
		}
	}
	if got, want := countPainted(img), 21; got != want {
		t.Errorf("painted %d pixels, want %d", got, want)
	}
}
