// Package board owns the shared drawing surface: the canvas plus the
// ambient draw state, guarded by a single mutex so the socket listener
// and the interactive window never interleave partial mutations.
package board

import (
	"image"
	"sync"

	"github.com/example/drawboard/internal/canvas"
	"github.com/example/drawboard/internal/palette"
)

// Brush size limits, inclusive.
const (
	MinBrush = 1
	MaxBrush = 20
)

// DrawState is the ambient drawing attributes applied when a command
// or gesture does not override them. A nil Edge means a transparent
// outline; a nil Fill means unfilled shapes.
type DrawState struct {
	Edge  *palette.Index
	Fill  *palette.Index
	Brush int
}

// DefaultState returns the startup attributes: black edge, no fill,
// brush 1.
func DefaultState() DrawState {
	edge := palette.Index(0)
	return DrawState{Edge: &edge, Brush: MinBrush}
}

// Surface binds a canvas and its draw state behind one lock.
type Surface struct {
	mu      sync.Mutex
	canvas  *canvas.Canvas
	state   DrawState
	changed func()
}

// New returns a surface over a fresh canvas of the given size with
// default draw state.
func New(width, height int) *Surface {
	return &Surface{
		canvas: canvas.New(width, height),
		state:  DefaultState(),
	}
}

// OnChange registers fn to run (outside the lock) after every Update.
// The interactive window uses it to schedule a repaint when a socket
// command mutates the canvas. Only one callback is kept.
func (s *Surface) OnChange(fn func()) {
	s.mu.Lock()
	s.changed = fn
	s.mu.Unlock()
}

// Update runs fn with exclusive access to the canvas and draw state.
func (s *Surface) Update(fn func(c *canvas.Canvas, st *DrawState)) {
	s.mu.Lock()
	fn(s.canvas, &s.state)
	changed := s.changed
	s.mu.Unlock()
	if changed != nil {
		changed()
	}
}

// View runs fn with exclusive read access, without signalling a
// change.
func (s *Surface) View(fn func(c *canvas.Canvas, st DrawState)) {
	s.mu.Lock()
	fn(s.canvas, s.state)
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the pixels, taken under the lock.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Snapshot()
}

// SetBrush clamps and stores the brush size.
func (s *Surface) SetBrush(n int) {
	s.Update(func(_ *canvas.Canvas, st *DrawState) {
		st.Brush = clampBrush(n)
	})
}

// StepBrush adjusts the brush size by delta, clamped. Read and write
// happen in one Update; the mutex is not reentrant, so callers must
// never nest this inside View or Update.
func (s *Surface) StepBrush(delta int) {
	s.Update(func(_ *canvas.Canvas, st *DrawState) {
		st.Brush = clampBrush(st.Brush + delta)
	})
}

func clampBrush(n int) int {
	if n < MinBrush {
		return MinBrush
	}
	if n > MaxBrush {
		return MaxBrush
	}
	return n
}
