// Package ui provides the raygui control panel for spawning and upgrades.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	DenialColor    rl.Color
	Padding        float32
	LineHeight     float32
	ButtonHeight   float32
	PanelWidth     float32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		DenialColor:    rl.Color{R: 230, G: 70, B: 70, A: 255},
		Padding:        10,
		LineHeight:     16,
		ButtonHeight:   30,
		PanelWidth:     260,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
