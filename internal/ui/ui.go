// Package ui runs the interactive drawing window. All canvas and draw
// state mutations go through the shared surface lock, the same
// rasterizer primitives the command executor uses, so socket clients
// and the mouse never disagree about pixels.
package ui

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/canvas"
	"github.com/example/drawboard/internal/clipboard"
	"github.com/example/drawboard/internal/notify"
	"github.com/example/drawboard/internal/palette"
	"github.com/example/drawboard/internal/raster"
	"github.com/example/drawboard/internal/theme"
)

// Tool selects what a canvas drag does.
type Tool int

const (
	ToolBrush Tool = iota
	ToolLine
	ToolSquare
	ToolRect
	ToolCircle
	ToolOval
	ToolTriangle
)

var toolLabels = []string{
	"B:Brush", "L:Line", "S:Square", "X:Rect", "O:Circle", "V:Oval", "T:Tri",
}

const (
	toolButtonHeight = 24
	swatchSize       = 16
	swatchStep       = 18
	titleHeight      = 20
)

// UI owns the window state for one session.
type UI struct {
	surface  *board.Surface
	theme    *theme.Theme
	notifier *notify.Notifier
	saveFile string
	onClose  func()

	updateCh chan struct{}

	closeOnce sync.Once
}

// Option modifies a UI during creation.
type Option func(*UI)

// WithTheme sets the chrome theme. Default is theme.Default().
func WithTheme(t *theme.Theme) Option {
	return func(u *UI) {
		if t != nil {
			u.theme = t
		}
	}
}

// WithNotifier routes save/copy notifications.
func WithNotifier(n *notify.Notifier) Option {
	return func(u *UI) { u.notifier = n }
}

// WithSaveFile sets the ^S snapshot output path.
func WithSaveFile(path string) Option {
	return func(u *UI) {
		if path != "" {
			u.saveFile = path
		}
	}
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option {
	return func(u *UI) { u.onClose = fn }
}

// New creates a UI over the shared surface.
func New(surface *board.Surface, opts ...Option) *UI {
	u := &UI{
		surface:  surface,
		theme:    theme.Default(),
		saveFile: "canvas.png",
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// NotifyCanvasChanged requests a repaint. Safe to call from any
// goroutine; the socket listener calls it after every mutation.
func (u *UI) NotifyCanvasChanged() {
	select {
	case u.updateCh <- struct{}{}:
	default:
	}
}

func (u *UI) notifyClose() {
	u.closeOnce.Do(func() {
		if u.onClose != nil {
			u.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (u *UI) Run() { driver.Main(u.main) }

func (u *UI) main(s screen.Screen) {
	// Size the toolbar to fit the widest label so nothing is
	// clipped on start up.
	d := &font.Drawer{Face: basicfont.Face7x13}
	toolbarWidth := d.MeasureString("Drawboard").Ceil() + 8
	for _, lbl := range append(append([]string{}, toolLabels...), "C:Clear", "edge:none", "fill:none", "size: 20 -") {
		if w := d.MeasureString(lbl).Ceil() + 8; w > toolbarWidth {
			toolbarWidth = w
		}
	}

	var canvasW, canvasH int
	u.surface.View(func(c *canvas.Canvas, _ board.DrawState) {
		canvasW, canvasH = c.Width(), c.Height()
	})

	width := canvasW + toolbarWidth
	height := canvasH
	if minH := toolbarMinHeight(); height < minH {
		height = minH
	}
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Drawboard"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer u.notifyClose()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-u.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	lay := layout{toolbarWidth: toolbarWidth}

	tool := ToolBrush
	var (
		dragging  bool
		dragStart image.Point
		last      image.Point
		message   string
		msgUntil  time.Time
	)

	showMessage := func(msg string) {
		message = msg
		log.Print(msg)
		msgUntil = time.Now().Add(2 * time.Second)
		w.Send(paint.Event{})
	}

	copyCanvas := func() {
		if err := clipboard.WriteImage(u.surface.Snapshot()); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		u.notifier.Copy("canvas")
		showMessage("canvas copied to clipboard")
	}

	saveCanvas := func() {
		img := u.surface.Snapshot()
		out, err := os.Create(u.saveFile)
		if err != nil {
			log.Printf("save: %v", err)
			return
		}
		if err := png.Encode(out, img); err != nil {
			log.Printf("save: %v", err)
			if cerr := out.Close(); cerr != nil {
				log.Printf("save: closing file: %v", cerr)
			}
			return
		}
		if err := out.Close(); err != nil {
			log.Printf("save: closing file: %v", err)
			return
		}
		u.notifier.Save(u.saveFile)
		showMessage(fmt.Sprintf("saved %s", u.saveFile))
	}

	// canvasPos translates a window coordinate into the canvas, which
	// is anchored at the right of the toolbar.
	canvasPos := func(e mouse.Event) (int, int) {
		return int(e.X) - toolbarWidth, int(e.Y)
	}

	stepBrush := func(delta int) {
		u.surface.StepBrush(delta)
		w.Send(paint.Event{})
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			if message != "" && time.Now().After(msgUntil) {
				message = ""
			}
			u.drawFrame(s, w, &lay, width, height, tool, message)
		case mouse.Event:
			if int(e.X) < toolbarWidth {
				if e.Direction != mouse.DirPress {
					continue
				}
				p := image.Point{int(e.X), int(e.Y)}
				switch {
				case e.Button == mouse.ButtonLeft || e.Button == mouse.ButtonRight:
					if idx, ok := lay.toolAt(p); ok && e.Button == mouse.ButtonLeft {
						tool = Tool(idx)
						w.Send(paint.Event{})
						continue
					}
					if idx, ok := lay.swatchAt(p); ok {
						i := palette.Index(idx)
						u.surface.Update(func(_ *canvas.Canvas, st *board.DrawState) {
							if e.Button == mouse.ButtonLeft {
								st.Edge = &i
							} else {
								st.Fill = &i
							}
						})
						continue
					}
					if e.Button != mouse.ButtonLeft {
						continue
					}
					switch {
					case p.In(lay.clearRect):
						u.surface.Update(func(c *canvas.Canvas, _ *board.DrawState) {
							c.Clear()
						})
					case p.In(lay.edgeNoneRect):
						u.surface.Update(func(_ *canvas.Canvas, st *board.DrawState) {
							st.Edge = nil
						})
					case p.In(lay.fillNoneRect):
						u.surface.Update(func(_ *canvas.Canvas, st *board.DrawState) {
							st.Fill = nil
						})
					case p.In(lay.sizeDownRect):
						stepBrush(-1)
					case p.In(lay.sizeUpRect):
						stepBrush(+1)
					}
				}
				continue
			}

			mx, my := canvasPos(e)
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
				dragging = true
				dragStart = image.Point{mx, my}
				last = dragStart
				if tool == ToolBrush {
					u.surface.Update(func(c *canvas.Canvas, st *board.DrawState) {
						if st.Edge != nil {
							raster.Dot(c.RGBA(), mx, my, st.Brush, st.Edge.Color())
						}
					})
				}
				continue
			}
			if dragging && tool == ToolBrush && e.Direction == mouse.DirNone {
				u.surface.Update(func(c *canvas.Canvas, st *board.DrawState) {
					if st.Edge != nil {
						raster.Line(c.RGBA(), last.X, last.Y, mx, my, st.Brush, st.Edge.Color())
					}
				})
				last = image.Point{mx, my}
				continue
			}
			if dragging && e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease {
				dragging = false
				if tool != ToolBrush {
					u.drawShape(tool, dragStart, image.Point{mx, my})
				}
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if e.Modifiers&key.ModControl != 0 {
				switch unicode.ToLower(e.Rune) {
				case 'c':
					copyCanvas()
				case 's':
					saveCanvas()
				}
				continue
			}
			switch unicode.ToLower(e.Rune) {
			case 'b':
				tool = ToolBrush
			case 'l':
				tool = ToolLine
			case 's':
				tool = ToolSquare
			case 'x':
				tool = ToolRect
			case 'o':
				tool = ToolCircle
			case 'v':
				tool = ToolOval
			case 't':
				tool = ToolTriangle
			case '+', '=':
				stepBrush(+1)
				continue
			case '-':
				stepBrush(-1)
				continue
			case 'q':
				return
			default:
				if e.Code == key.CodeEscape {
					return
				}
				continue
			}
			w.Send(paint.Event{})
		}
	}
}

// drawShape applies one completed drag gesture. Shapes resolve the
// current draw state under the lock, exactly like shape commands.
func (u *UI) drawShape(tool Tool, start, end image.Point) {
	u.surface.Update(func(c *canvas.Canvas, st *board.DrawState) {
		img := c.RGBA()
		switch tool {
		case ToolLine:
			if st.Edge != nil {
				raster.Line(img, start.X, start.Y, end.X, end.Y, st.Brush, st.Edge.Color())
			}
		case ToolSquare:
			side := abs(end.X - start.X)
			if dy := abs(end.Y - start.Y); dy < side {
				side = dy
			}
			x1 := start.X + sign(end.X-start.X)*side
			y1 := start.Y + sign(end.Y-start.Y)*side
			fillThenEdge(img, st, func(col palette.Index) {
				raster.FillRect(img, start.X, start.Y, x1, y1, col.Color())
			}, func(col palette.Index) {
				raster.Rect(img, start.X, start.Y, x1, y1, st.Brush, col.Color())
			})
		case ToolRect:
			fillThenEdge(img, st, func(col palette.Index) {
				raster.FillRect(img, start.X, start.Y, end.X, end.Y, col.Color())
			}, func(col palette.Index) {
				raster.Rect(img, start.X, start.Y, end.X, end.Y, st.Brush, col.Color())
			})
		case ToolCircle:
			r := abs(end.X - start.X)
			if dy := abs(end.Y - start.Y); dy > r {
				r = dy
			}
			fillThenEdge(img, st, func(col palette.Index) {
				raster.FillCircle(img, start.X, start.Y, r, col.Color())
			}, func(col palette.Index) {
				raster.Circle(img, start.X, start.Y, r, st.Brush, col.Color())
			})
		case ToolOval:
			rx := abs(end.X - start.X)
			ry := abs(end.Y - start.Y)
			fillThenEdge(img, st, func(col palette.Index) {
				raster.FillEllipse(img, start.X, start.Y, rx, ry, col.Color())
			}, func(col palette.Index) {
				raster.Ellipse(img, start.X, start.Y, rx, ry, st.Brush, col.Color())
			})
		case ToolTriangle:
			fillThenEdge(img, st, func(col palette.Index) {
				raster.FillTriangle(img, start.X, start.Y, end.X, end.Y, col.Color())
			}, func(col palette.Index) {
				raster.Triangle(img, start.X, start.Y, end.X, end.Y, st.Brush, col.Color())
			})
		}
	})
}

func fillThenEdge(_ *image.RGBA, st *board.DrawState, fill, edge func(palette.Index)) {
	if st.Fill != nil {
		fill(*st.Fill)
	}
	if st.Edge != nil {
		edge(*st.Edge)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
