package command

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/palette"
)

func mustRun(t *testing.T, ex *Executor, line string) string {
	t.Helper()
	reply, err := ex.RunLine(line)
	if err != nil {
		t.Fatalf("RunLine(%q): %v", line, err)
	}
	return reply
}

func TestStateReply(t *testing.T) {
	ex := NewExecutor(board.New(32, 32))
	if got, want := mustRun(t, ex, "state"), "edge:0 fill:none size:1"; got != want {
		t.Errorf("state = %q, want %q", got, want)
	}
}

func TestStateTracksMutations(t *testing.T) {
	ex := NewExecutor(board.New(32, 32))
	for _, line := range []string{"edge none", "fill 5", "size 4"} {
		if reply := mustRun(t, ex, line); reply != "" {
			t.Errorf("RunLine(%q) reply = %q, want empty", line, reply)
		}
	}
	if got, want := mustRun(t, ex, "state"), "edge:none fill:5 size:4"; got != want {
		t.Errorf("state = %q, want %q", got, want)
	}
	mustRun(t, ex, "color 2")
	if got, want := mustRun(t, ex, "state"), "edge:2 fill:5 size:4"; got != want {
		t.Errorf("state after color = %q, want %q", got, want)
	}
}

func TestMalformedLineMutatesNothing(t *testing.T) {
	surface := board.New(32, 32)
	ex := NewExecutor(surface)
	mustRun(t, ex, "dot 10,10")
	before := surface.Snapshot()
	stateBefore := mustRun(t, ex, "state")

	for _, line := range []string{
		"line 1,1",
		"edge 99",
		"size 0",
		"polyline 1,1",
		"points 1,1 2,2:99",
		"nonsense",
	} {
		if _, err := ex.RunLine(line); err == nil {
			t.Errorf("RunLine(%q) succeeded, want error", line)
		}
	}

	after := surface.Snapshot()
	if !bytes.Equal(before.Pix, after.Pix) {
		t.Errorf("canvas pixels changed by malformed lines")
	}
	if got := mustRun(t, ex, "state"); got != stateBefore {
		t.Errorf("draw state changed by malformed lines: %q -> %q", stateBefore, got)
	}
}

func TestDotStampsBrushBlock(t *testing.T) {
	surface := board.New(32, 32)
	ex := NewExecutor(surface)
	mustRun(t, ex, "size 3")
	mustRun(t, ex, "dot 10,10")

	img := surface.Snapshot()
	black := palette.Index(0).Color()
	for y := 9; y <= 11; y++ {
		for x := 9; x <= 11; x++ {
			if img.RGBAAt(x, y) != black {
				t.Errorf("pixel (%d,%d) = %v, want black", x, y, img.RGBAAt(x, y))
			}
		}
	}
	if img.RGBAAt(8, 10) != palette.Background {
		t.Errorf("pixel outside the stamp painted")
	}
}

func TestDotWithEdgeNoneDrawsNothing(t *testing.T) {
	surface := board.New(32, 32)
	ex := NewExecutor(surface)
	mustRun(t, ex, "edge none")
	mustRun(t, ex, "dot 10,10")
	if got := surface.Snapshot().RGBAAt(10, 10); got != palette.Background {
		t.Errorf("pixel (10,10) = %v, want background", got)
	}
}

func TestFillWithoutEdgePaintsInteriorOnly(t *testing.T) {
	surface := board.New(32, 32)
	ex := NewExecutor(surface)
	mustRun(t, ex, "edge none")
	mustRun(t, ex, "fill 5")
	mustRun(t, ex, "rect 4,4 12,10")

	img := surface.Snapshot()
	fill := palette.Index(5).Color()
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			got := img.RGBAAt(x, y)
			inside := x >= 4 && x <= 12 && y >= 4 && y <= 10
			if inside && got != fill {
				t.Fatalf("pixel (%d,%d) = %v, want fill %v", x, y, got, fill)
			}
			if !inside && got != palette.Background {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
}

func TestPolylineHalvesUsePointAttributes(t *testing.T) {
	surface := board.New(32, 32)
	ex := NewExecutor(surface)
	mustRun(t, ex, "polyline 0,0:2 10,0:4")

	img := surface.Snapshot()
	if got, want := img.RGBAAt(2, 0), palette.Index(2).Color(); got != want {
		t.Errorf("first half pixel (2,0) = %v, want %v", got, want)
	}
	if got, want := img.RGBAAt(7, 0), palette.Index(4).Color(); got != want {
		t.Errorf("second half pixel (7,0) = %v, want %v", got, want)
	}
	// Point attributes never leak into the shared draw state.
	if got, want := mustRun(t, ex, "state"), "edge:0 fill:none size:1"; got != want {
		t.Errorf("state after polyline = %q, want %q", got, want)
	}
}

func TestPointsSkipsTransparentDefaults(t *testing.T) {
	surface := board.New(32, 32)
	ex := NewExecutor(surface)
	mustRun(t, ex, "edge none")
	mustRun(t, ex, "points 1,1 3,3:2")

	img := surface.Snapshot()
	if got := img.RGBAAt(1, 1); got != palette.Background {
		t.Errorf("transparent point painted (1,1) = %v", got)
	}
	if got, want := img.RGBAAt(3, 3), palette.Index(2).Color(); got != want {
		t.Errorf("overridden point (3,3) = %v, want %v", got, want)
	}
}

func TestClearRepaintsBackground(t *testing.T) {
	surface := board.New(16, 16)
	ex := NewExecutor(surface)
	mustRun(t, ex, "dot 5,5")
	mustRun(t, ex, "clear")
	img := surface.Snapshot()
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if img.RGBAAt(x, y) != palette.Background {
				t.Fatalf("pixel (%d,%d) not background after clear", x, y)
			}
		}
	}
}

func TestSnapshotEncodesOutsideTheLock(t *testing.T) {
	var gotPath string
	var gotImg *image.RGBA
	restore := SetEncodePNGForTests(func(path string, img *image.RGBA) error {
		gotPath = path
		gotImg = img
		return nil
	})
	t.Cleanup(restore)

	var hooked string
	surface := board.New(24, 18)
	ex := NewExecutor(surface,
		WithSaveFile("board.png"),
		WithSavedHook(func(path string) { hooked = path }),
	)
	if got, want := mustRun(t, ex, "snapshot"), "saved board.png"; got != want {
		t.Errorf("snapshot reply = %q, want %q", got, want)
	}
	if gotPath != "board.png" {
		t.Errorf("encoder path = %q, want board.png", gotPath)
	}
	if gotImg == nil || gotImg.Bounds().Dx() != 24 || gotImg.Bounds().Dy() != 18 {
		t.Errorf("encoder image = %v, want 24x18", gotImg)
	}
	if hooked != "board.png" {
		t.Errorf("saved hook path = %q, want board.png", hooked)
	}
}

func TestSnapshotEncodeFailure(t *testing.T) {
	restore := SetEncodePNGForTests(func(string, *image.RGBA) error {
		return errors.New("disk full")
	})
	t.Cleanup(restore)

	hooked := false
	ex := NewExecutor(board.New(8, 8), WithSavedHook(func(string) { hooked = true }))
	_, err := ex.RunLine("snapshot")
	if err == nil {
		t.Fatalf("snapshot succeeded, want error")
	}
	if got, want := err.Error(), "snapshot: disk full"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if hooked {
		t.Errorf("saved hook ran after a failed encode")
	}
}
