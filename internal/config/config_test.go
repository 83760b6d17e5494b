package config

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_file = /tmp/board.png
canvas_width = 640
canvas_height = 400
brush = 3

[notify]
save = true
copy = false

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}

	if cfg.SaveFile != "/tmp/board.png" {
		t.Errorf("Expected save_file '/tmp/board.png', got '%s'", cfg.SaveFile)
	}
	if cfg.CanvasWidth != 640 || cfg.CanvasHeight != 400 {
		t.Errorf("Unexpected canvas size: %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.Brush != 3 {
		t.Errorf("Expected brush 3, got %d", cfg.Brush)
	}

	if !cfg.Notify.Save {
		t.Error("Expected notify.save to be true")
	}
	if cfg.Notify.Copy {
		t.Error("Expected notify.copy to be false")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}

	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseBadInteger(t *testing.T) {
	_, err := Parse(strings.NewReader("canvas_width = lots\n"))
	if err == nil {
		t.Fatal("expected error for non-numeric canvas_width")
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_file = /home/user/board.png
canvas_width = 1024
canvas_height = 768
brush = 5

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveFile != cfg2.SaveFile {
		t.Errorf("SaveFile mismatch: %q vs %q", cfg.SaveFile, cfg2.SaveFile)
	}
	if cfg.CanvasWidth != cfg2.CanvasWidth || cfg.CanvasHeight != cfg2.CanvasHeight {
		t.Errorf("Canvas size mismatch: %dx%d vs %dx%d",
			cfg.CanvasWidth, cfg.CanvasHeight, cfg2.CanvasWidth, cfg2.CanvasHeight)
	}
	if cfg.Brush != cfg2.Brush {
		t.Errorf("Brush mismatch: %d vs %d", cfg.Brush, cfg2.Brush)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if t1.Background != t2.Background {
		t.Errorf("Theme background mismatch: %v vs %v", t1.Background, t2.Background)
	}
}
