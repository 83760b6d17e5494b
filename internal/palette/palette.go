// Package palette defines the fixed drawing palette shared by the
// command protocol and the interactive toolbar.
package palette

import (
	"fmt"
	"image/color"
)

// Index identifies one palette entry. Valid values are 0..Size-1.
type Index int

// Size is the number of selectable colors.
const Size = 14

type entry struct {
	name string
	rgba color.RGBA
}

var entries = [Size]entry{
	{"black", color.RGBA{0x00, 0x00, 0x00, 0xFF}},
	{"white", color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}},
	{"red", color.RGBA{0xE0, 0x40, 0x40, 0xFF}},
	{"red-orange", color.RGBA{0xE0, 0x70, 0x40, 0xFF}},
	{"orange", color.RGBA{0xE0, 0xA0, 0x40, 0xFF}},
	{"yellow", color.RGBA{0xE0, 0xE0, 0x40, 0xFF}},
	{"yellow-green", color.RGBA{0xA0, 0xE0, 0x40, 0xFF}},
	{"green", color.RGBA{0x40, 0xE0, 0x40, 0xFF}},
	{"cyan-green", color.RGBA{0x40, 0xE0, 0xA0, 0xFF}},
	{"cyan", color.RGBA{0x40, 0xE0, 0xE0, 0xFF}},
	{"blue", color.RGBA{0x40, 0x80, 0xE0, 0xFF}},
	{"blue-violet", color.RGBA{0x40, 0x40, 0xE0, 0xFF}},
	{"violet", color.RGBA{0x80, 0x40, 0xE0, 0xFF}},
	{"magenta", color.RGBA{0xE0, 0x40, 0xE0, 0xFF}},
}

// Valid reports whether i names a palette entry.
func (i Index) Valid() bool {
	return i >= 0 && i < Size
}

// Color returns the RGBA value for the entry. Invalid indexes panic;
// callers validate at parse time.
func (i Index) Color() color.RGBA {
	if !i.Valid() {
		panic(fmt.Sprintf("palette: index %d out of range", int(i)))
	}
	return entries[i].rgba
}

// Name returns the human readable name for the entry.
func (i Index) Name() string {
	if !i.Valid() {
		return "invalid"
	}
	return entries[i].name
}

// Background is the color a cleared canvas is repainted with.
var Background = entries[1].rgba

// All returns the indexes in palette order, for toolbars and listings.
func All() []Index {
	out := make([]Index, Size)
	for i := range out {
		out[i] = Index(i)
	}
	return out
}
