package command

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/canvas"
)

// encodePNG writes a snapshot image to disk. Swappable for tests.
var encodePNG = func(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SetEncodePNGForTests replaces the snapshot encoder and returns a
// restore function for t.Cleanup.
func SetEncodePNGForTests(fn func(path string, img *image.RGBA) error) (restore func()) {
	old := encodePNG
	encodePNG = fn
	return func() { encodePNG = old }
}

// Executor runs parsed commands against one shared surface.
type Executor struct {
	surface  *board.Surface
	saveFile string
	onSaved  func(path string)
}

// Option configures an Executor.
type Option func(*Executor)

// WithSaveFile sets the snapshot output path. Default canvas.png.
func WithSaveFile(path string) Option {
	return func(ex *Executor) {
		if path != "" {
			ex.saveFile = path
		}
	}
}

// WithSavedHook registers fn to run after every successful snapshot,
// outside the surface lock. Used for desktop notifications.
func WithSavedHook(fn func(path string)) Option {
	return func(ex *Executor) { ex.onSaved = fn }
}

// NewExecutor returns an executor bound to the surface.
func NewExecutor(surface *board.Surface, opts ...Option) *Executor {
	ex := &Executor{surface: surface, saveFile: "canvas.png"}
	for _, o := range opts {
		o(ex)
	}
	return ex
}

// Run executes one parsed command and returns its reply body. An
// empty reply means a plain acknowledgement; the listener writes "ok".
// Snapshot copies the pixels under the lock and encodes outside it so
// slow disks never stall drawing.
func (ex *Executor) Run(cmd Command) (string, error) {
	if _, ok := cmd.(snapshotCmd); ok {
		img := ex.surface.Snapshot()
		if err := encodePNG(ex.saveFile, img); err != nil {
			return "", fmt.Errorf("snapshot: %w", err)
		}
		if ex.onSaved != nil {
			ex.onSaved(ex.saveFile)
		}
		return fmt.Sprintf("saved %s", ex.saveFile), nil
	}
	var (
		reply string
		err   error
	)
	ex.surface.Update(func(c *canvas.Canvas, st *board.DrawState) {
		reply, err = cmd.run(c, st)
	})
	return reply, err
}

// RunLine parses and executes one protocol line. Parse failures never
// touch the surface.
func (ex *Executor) RunLine(line string) (string, error) {
	cmd, err := Parse(line)
	if err != nil {
		return "", err
	}
	return ex.Run(cmd)
}
