package theme

import (
	"image/color"
)

// Theme defines the color palette for the viewer UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // window background behind the page
	Foreground color.RGBA // main text color

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA
	ButtonActive          color.RGBA // background of the active tool button

	// Page surround
	PageBorder color.RGBA
	PageShadow color.RGBA

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
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
		ButtonActive:          color.RGBA{160, 180, 210, 255},
		PageBorder:            color.RGBA{120, 120, 120, 255},
		PageShadow:            color.RGBA{90, 90, 90, 255},
		StatusBackground:      color.RGBA{200, 200, 200, 255},
		StatusText:            color.RGBA{0, 0, 0, 255},
	}
}
