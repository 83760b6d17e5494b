package command

import (
	"strconv"
	"strings"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/palette"
)

// Parse converts one protocol line (terminator already stripped) into
// a Command. Any malformed line returns a *ParseError; nothing is
// validated later, so a parsed command always executes cleanly apart
// from snapshot encoding.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, parseErrorf("empty command")
	}
	verb, args := fields[0], fields[1:]
	switch verb {
	case "snapshot":
		if err := wantArgs(verb, args, 0); err != nil {
			return nil, err
		}
		return snapshotCmd{}, nil
	case "state":
		if err := wantArgs(verb, args, 0); err != nil {
			return nil, err
		}
		return stateCmd{}, nil
	case "clear":
		if err := wantArgs(verb, args, 0); err != nil {
			return nil, err
		}
		return clearCmd{}, nil
	case "color":
		// Legacy alias for edge, index only (no "none").
		if err := wantArgs(verb, args, 1); err != nil {
			return nil, err
		}
		idx, err := parsePaletteIndex(args[0])
		if err != nil {
			return nil, err
		}
		return setEdgeCmd{idx: &idx}, nil
	case "edge":
		if err := wantArgs(verb, args, 1); err != nil {
			return nil, err
		}
		idx, err := parseOptionalIndex(args[0])
		if err != nil {
			return nil, err
		}
		return setEdgeCmd{idx: idx}, nil
	case "fill":
		if err := wantArgs(verb, args, 1); err != nil {
			return nil, err
		}
		idx, err := parseOptionalIndex(args[0])
		if err != nil {
			return nil, err
		}
		return setFillCmd{idx: idx}, nil
	case "size":
		if err := wantArgs(verb, args, 1); err != nil {
			return nil, err
		}
		n, err := parseBrushSize(args[0])
		if err != nil {
			return nil, err
		}
		return setSizeCmd{n: n}, nil
	case "dot":
		if err := wantArgs(verb, args, 1); err != nil {
			return nil, err
		}
		x, y, err := parseCoord(args[0])
		if err != nil {
			return nil, err
		}
		return dotCmd{x: x, y: y}, nil
	case "stroke":
		if err := wantArgs(verb, args, 2); err != nil {
			return nil, err
		}
		x0, y0, x1, y1, err := parseCoordPair(args)
		if err != nil {
			return nil, err
		}
		return strokeCmd{x0: x0, y0: y0, x1: x1, y1: y1}, nil
	case "line":
		if err := wantArgs(verb, args, 2); err != nil {
			return nil, err
		}
		x0, y0, x1, y1, err := parseCoordPair(args)
		if err != nil {
			return nil, err
		}
		return lineCmd{x0: x0, y0: y0, x1: x1, y1: y1}, nil
	case "points":
		if len(args) < 1 {
			return nil, parseErrorf("points: need at least 1 point")
		}
		pts, err := parsePoints(args)
		if err != nil {
			return nil, err
		}
		return pointsCmd{pts: pts}, nil
	case "polyline":
		if len(args) < 2 {
			return nil, parseErrorf("polyline: need at least 2 points")
		}
		pts, err := parsePoints(args)
		if err != nil {
			return nil, err
		}
		return polylineCmd{pts: pts}, nil
	case "square":
		if err := wantArgs(verb, args, 2); err != nil {
			return nil, err
		}
		x, y, err := parseCoord(args[0])
		if err != nil {
			return nil, err
		}
		side, err := parseInt(args[1])
		if err != nil {
			return nil, err
		}
		return squareCmd{x: x, y: y, side: side}, nil
	case "rect":
		if err := wantArgs(verb, args, 2); err != nil {
			return nil, err
		}
		x0, y0, x1, y1, err := parseCoordPair(args)
		if err != nil {
			return nil, err
		}
		return rectCmd{x0: x0, y0: y0, x1: x1, y1: y1}, nil
	case "circle":
		if err := wantArgs(verb, args, 2); err != nil {
			return nil, err
		}
		x, y, err := parseCoord(args[0])
		if err != nil {
			return nil, err
		}
		r, err := parseInt(args[1])
		if err != nil {
			return nil, err
		}
		return circleCmd{x: x, y: y, r: r}, nil
	case "oval":
		if err := wantArgs(verb, args, 2); err != nil {
			return nil, err
		}
		x, y, err := parseCoord(args[0])
		if err != nil {
			return nil, err
		}
		rx, ry, err := parseCoord(args[1])
		if err != nil {
			return nil, err
		}
		return ovalCmd{x: x, y: y, rx: rx, ry: ry}, nil
	case "triangle":
		if err := wantArgs(verb, args, 2); err != nil {
			return nil, err
		}
		x0, y0, x1, y1, err := parseCoordPair(args)
		if err != nil {
			return nil, err
		}
		return triangleCmd{x0: x0, y0: y0, x1: x1, y1: y1}, nil
	default:
		return nil, parseErrorf("unknown command %q", verb)
	}
}

func wantArgs(verb string, args []string, n int) error {
	if len(args) != n {
		return parseErrorf("%s: want %d args, got %d", verb, n, len(args))
	}
	return nil
}

func parseInt(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, parseErrorf("not a number: %q", tok)
	}
	return n, nil
}

// parseCoord reads an "x,y" token. Negative coordinates are accepted;
// the rasterizer clips them.
func parseCoord(tok string) (x, y int, err error) {
	a, b, ok := strings.Cut(tok, ",")
	if !ok {
		return 0, 0, parseErrorf("not a point: %q", tok)
	}
	if x, err = parseInt(a); err != nil {
		return 0, 0, err
	}
	if y, err = parseInt(b); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseCoordPair(args []string) (x0, y0, x1, y1 int, err error) {
	if x0, y0, err = parseCoord(args[0]); err != nil {
		return
	}
	x1, y1, err = parseCoord(args[1])
	return
}

func parsePaletteIndex(tok string) (palette.Index, error) {
	n, err := parseInt(tok)
	if err != nil {
		return 0, err
	}
	idx := palette.Index(n)
	if !idx.Valid() {
		return 0, parseErrorf("palette index %d out of range 0-%d", n, palette.Size-1)
	}
	return idx, nil
}

func parseOptionalIndex(tok string) (*palette.Index, error) {
	if tok == "none" {
		return nil, nil
	}
	idx, err := parsePaletteIndex(tok)
	if err != nil {
		return nil, err
	}
	return &idx, nil
}

func parseBrushSize(tok string) (int, error) {
	n, err := parseInt(tok)
	if err != nil {
		return 0, err
	}
	if n < board.MinBrush || n > board.MaxBrush {
		return 0, parseErrorf("size %d out of range %d-%d", n, board.MinBrush, board.MaxBrush)
	}
	return n, nil
}

// parsePoint reads an "x,y[:colorIdx[:size]]" token. Out-of-range
// overrides are rejected here, not clamped at draw time.
func parsePoint(tok string) (Point, error) {
	parts := strings.Split(tok, ":")
	if len(parts) > 3 {
		return Point{}, parseErrorf("not a point: %q", tok)
	}
	x, y, err := parseCoord(parts[0])
	if err != nil {
		return Point{}, err
	}
	pt := Point{X: x, Y: y}
	if len(parts) >= 2 {
		idx, err := parsePaletteIndex(parts[1])
		if err != nil {
			return Point{}, err
		}
		pt.Color = &idx
	}
	if len(parts) == 3 {
		size, err := parseBrushSize(parts[2])
		if err != nil {
			return Point{}, err
		}
		pt.Size = &size
	}
	return pt, nil
}

func parsePoints(args []string) ([]Point, error) {
	pts := make([]Point, 0, len(args))
	for _, tok := range args {
		pt, err := parsePoint(tok)
		if err != nil {
			return nil, err
		}
		pts = append(pts, pt)
	}
	return pts, nil
}
