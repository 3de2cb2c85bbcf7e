package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/accretion/economy"
)

// PanelLayout holds the bounds of every control in the panel.
type PanelLayout struct {
	Panel    rl.Rectangle
	Spawn    rl.Rectangle
	AutoPlay rl.Rectangle
	Cooldown rl.Rectangle
	Header   rl.Rectangle
	Tracks   [economy.NumTracks]rl.Rectangle
}

// ComputeLayout places the panel along the right edge of the screen.
func ComputeLayout(theme Theme, screenW, screenH float32) PanelLayout {
	var l PanelLayout

	w := min(theme.PanelWidth, screenW)
	x := screenW - w
	inner := w - 2*theme.Padding
	cx := x + theme.Padding
	y := theme.Padding

	l.Spawn = rl.Rectangle{X: cx, Y: y, Width: inner, Height: theme.ButtonHeight}
	y += theme.ButtonHeight + theme.Padding/2

	l.Cooldown = rl.Rectangle{X: cx, Y: y, Width: inner, Height: theme.LineHeight}
	y += theme.LineHeight + theme.Padding/2

	l.AutoPlay = rl.Rectangle{X: cx, Y: y, Width: inner, Height: theme.ButtonHeight}
	y += theme.ButtonHeight + theme.Padding

	l.Header = rl.Rectangle{X: cx, Y: y, Width: inner, Height: theme.LineHeight}
	y += theme.LineHeight + theme.Padding/2

	for i := range l.Tracks {
		l.Tracks[i] = rl.Rectangle{X: cx, Y: y, Width: inner, Height: theme.ButtonHeight}
		y += theme.ButtonHeight + theme.Padding/2
	}

	l.Panel = rl.Rectangle{X: x, Y: 0, Width: w, Height: min(y+theme.Padding/2, screenH)}
	return l
}

// Contains reports whether a screen point is over the panel.
func (l PanelLayout) Contains(x, y float32) bool {
	p := l.Panel
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.Height
}
