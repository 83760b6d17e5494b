package theme

import (
	"image/color"
)

// Theme defines the chrome colors for the drawing window: everything
// except the canvas itself, which always renders raw pixel values.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind the canvas
	Foreground color.RGBA // Label text

	// Toolbar
	ToolbarBackground color.RGBA

	// Tool and action buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Palette swatches
	SwatchBorder   color.RGBA // Outline around every swatch
	SwatchEdgeMark color.RGBA // Marker on the selected edge swatch
	SwatchFillMark color.RGBA // Marker on the selected fill swatch
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		SwatchBorder:          color.RGBA{96, 96, 96, 255},
		SwatchEdgeMark:        color.RGBA{0, 0, 0, 255},
		SwatchFillMark:        color.RGBA{255, 255, 255, 255},
	}
}
