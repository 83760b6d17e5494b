// Package command turns protocol lines into drawing operations and
// runs them against the shared surface. Parsing is total: any
// malformed line yields a *ParseError and no mutation. Parsing happens
// outside the surface lock; execution happens inside it.
package command

import (
	"fmt"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/canvas"
	"github.com/example/drawboard/internal/palette"
	"github.com/example/drawboard/internal/raster"
)

// ParseError reports why a line could not become a command. It is
// connection-local: the sender gets an error reply and the surface is
// untouched.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return e.Reason }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// Point is a coordinate with optional per-point color and size
// overrides, used by the batch commands. Absent fields resolve
// against the surface's draw state at execution time.
type Point struct {
	X, Y  int
	Color *palette.Index
	Size  *int
}

// resolve returns the color and size this point draws with under the
// given state. A nil color means the point is transparent and draws
// nothing.
func (p Point) resolve(st *board.DrawState) (*palette.Index, int) {
	col := st.Edge
	if p.Color != nil {
		col = p.Color
	}
	size := st.Brush
	if p.Size != nil {
		size = *p.Size
	}
	return col, size
}

// Command is one parsed protocol line. run executes it under the
// surface lock and returns the reply body, empty for a plain ack.
type Command interface {
	run(c *canvas.Canvas, st *board.DrawState) (string, error)
}

type stateCmd struct{}

func (stateCmd) run(_ *canvas.Canvas, st *board.DrawState) (string, error) {
	return fmt.Sprintf("edge:%s fill:%s size:%d",
		indexLabel(st.Edge), indexLabel(st.Fill), st.Brush), nil
}

func indexLabel(i *palette.Index) string {
	if i == nil {
		return "none"
	}
	return fmt.Sprintf("%d", int(*i))
}

type clearCmd struct{}

func (clearCmd) run(c *canvas.Canvas, _ *board.DrawState) (string, error) {
	c.Clear()
	return "", nil
}

// snapshotCmd is handled specially by the Executor: the pixel copy is
// taken under the lock, the encode happens outside it.
type snapshotCmd struct{}

func (snapshotCmd) run(_ *canvas.Canvas, _ *board.DrawState) (string, error) {
	return "", nil
}

type setEdgeCmd struct{ idx *palette.Index }

func (s setEdgeCmd) run(_ *canvas.Canvas, st *board.DrawState) (string, error) {
	st.Edge = s.idx
	return "", nil
}

type setFillCmd struct{ idx *palette.Index }

func (s setFillCmd) run(_ *canvas.Canvas, st *board.DrawState) (string, error) {
	st.Fill = s.idx
	return "", nil
}

type setSizeCmd struct{ n int }

func (s setSizeCmd) run(_ *canvas.Canvas, st *board.DrawState) (string, error) {
	st.Brush = s.n
	return "", nil
}

type dotCmd struct{ x, y int }

func (d dotCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	if st.Edge != nil {
		raster.Dot(c.RGBA(), d.x, d.y, st.Brush, st.Edge.Color())
	}
	return "", nil
}

// strokeCmd and lineCmd share semantics: a stamped segment in the
// current edge color and brush size. They stay separate verbs for
// protocol compatibility.
type strokeCmd struct{ x0, y0, x1, y1 int }

func (s strokeCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	if st.Edge != nil {
		raster.Line(c.RGBA(), s.x0, s.y0, s.x1, s.y1, st.Brush, st.Edge.Color())
	}
	return "", nil
}

type lineCmd struct{ x0, y0, x1, y1 int }

func (l lineCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	if st.Edge != nil {
		raster.Line(c.RGBA(), l.x0, l.y0, l.x1, l.y1, st.Brush, st.Edge.Color())
	}
	return "", nil
}

type pointsCmd struct{ pts []Point }

func (p pointsCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	for _, pt := range p.pts {
		col, size := pt.resolve(st)
		if col == nil {
			continue
		}
		raster.Dot(c.RGBA(), pt.X, pt.Y, size, col.Color())
	}
	return "", nil
}

type polylineCmd struct{ pts []Point }

// run draws each segment in two halves split at its midpoint: the
// first half with the start point's resolved attributes, the second
// with the end point's. Draw state is read but never written.
func (p polylineCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	for i := 0; i+1 < len(p.pts); i++ {
		a, b := p.pts[i], p.pts[i+1]
		mx := a.X + (b.X-a.X)/2
		my := a.Y + (b.Y-a.Y)/2
		if col, size := a.resolve(st); col != nil {
			raster.Line(c.RGBA(), a.X, a.Y, mx, my, size, col.Color())
		}
		if col, size := b.resolve(st); col != nil {
			raster.Line(c.RGBA(), mx, my, b.X, b.Y, size, col.Color())
		}
	}
	return "", nil
}

// shape helpers: fill first so the stamped outline stays crisp on top.

type squareCmd struct{ x, y, side int }

func (s squareCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	if s.side <= 0 {
		return "", nil
	}
	x1, y1 := s.x+s.side-1, s.y+s.side-1
	if st.Fill != nil {
		raster.FillRect(c.RGBA(), s.x, s.y, x1, y1, st.Fill.Color())
	}
	if st.Edge != nil {
		raster.Rect(c.RGBA(), s.x, s.y, x1, y1, st.Brush, st.Edge.Color())
	}
	return "", nil
}

type rectCmd struct{ x0, y0, x1, y1 int }

func (r rectCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	if st.Fill != nil {
		raster.FillRect(c.RGBA(), r.x0, r.y0, r.x1, r.y1, st.Fill.Color())
	}
	if st.Edge != nil {
		raster.Rect(c.RGBA(), r.x0, r.y0, r.x1, r.y1, st.Brush, st.Edge.Color())
	}
	return "", nil
}

type circleCmd struct{ x, y, r int }

func (cc circleCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	if st.Fill != nil {
		raster.FillCircle(c.RGBA(), cc.x, cc.y, cc.r, st.Fill.Color())
	}
	if st.Edge != nil {
		raster.Circle(c.RGBA(), cc.x, cc.y, cc.r, st.Brush, st.Edge.Color())
	}
	return "", nil
}

type ovalCmd struct{ x, y, rx, ry int }

func (o ovalCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	if st.Fill != nil {
		raster.FillEllipse(c.RGBA(), o.x, o.y, o.rx, o.ry, st.Fill.Color())
	}
	if st.Edge != nil {
		raster.Ellipse(c.RGBA(), o.x, o.y, o.rx, o.ry, st.Brush, st.Edge.Color())
	}
	return "", nil
}

type triangleCmd struct{ x0, y0, x1, y1 int }

func (t triangleCmd) run(c *canvas.Canvas, st *board.DrawState) (string, error) {
	if st.Fill != nil {
		raster.FillTriangle(c.RGBA(), t.x0, t.y0, t.x1, t.y1, st.Fill.Color())
	}
	if st.Edge != nil {
		raster.Triangle(c.RGBA(), t.x0, t.y0, t.x1, t.y1, st.Brush, st.Edge.Color())
	}
	return "", nil
}
