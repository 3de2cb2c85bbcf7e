package termview

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/accretion/camera"
	"github.com/pthm-cable/accretion/components"
	"github.com/pthm-cable/accretion/game"
	"github.com/pthm-cable/accretion/hud"
)

// statusRows is the number of rows below the play area.
const statusRows = 2

// gaugeWidth is the cell width of the cooldown gauge.
const gaugeWidth = 10

var (
	styleCore     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 236, 200))
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDenied   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleAfford   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDisabled = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
)

// NewCamera creates a camera for a terminal of cols x rows cells over a play area.
// Cells are about twice as tall as wide.
func NewCamera(cols, rows int, worldW, worldH float64) *camera.Camera {
	cam := camera.New(float64(cols), float64(playRows(rows)), worldW, worldH)
	cam.AspectY = 0.5
	return cam
}

// playRows returns the rows left for the play area on a screen of height rows.
func playRows(rows int) int {
	return max(rows-statusRows, 1)
}

// PlayArea returns the world size shown by a cols x rows terminal when every
// column spans cellWidth world units.
func PlayArea(cols, rows int, cellWidth float64) (w, h float64) {
	return float64(cols) * cellWidth, float64(playRows(rows)) * cellWidth * 2
}

// Project maps a particle to a cell. ok is false when the cell is off the play area.
func Project(cam *camera.Camera, p game.ParticleView) (x, y int, ok bool) {
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	x, y = int(math.Floor(sx)), int(math.Floor(sy))
	if x < 0 || y < 0 || x >= int(cam.ViewportW) || y >= int(cam.ViewportH) {
		return 0, 0, false
	}
	return x, y, true
}

// Glyph picks a particle character by its size in cells.
func Glyph(cells float64) rune {
	switch {
	case cells < 0.35:
		return '.'
	case cells < 0.75:
		return '*'
	case cells < 1.5:
		return 'o'
	}
	return 'O'
}

// Gauge renders a cooldown fraction as a fixed-width bar.
func Gauge(fraction float64, width int) string {
	n := int(math.Round(math.Max(0, math.Min(1, fraction)) * float64(width)))
	return strings.Repeat("#", n) + strings.Repeat("-", width-n)
}

// particleStyle colors a particle from its seed.
func particleStyle(seed uint32) tcell.Style {
	h, s, v := components.SeedHSV(seed)
	r, g, b := colorful.Hsv(h, s, v).RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// Draw renders a snapshot onto screen without showing it.
// The camera follows the screen size and the snapshot's play area.
func Draw(screen tcell.Screen, cam *camera.Camera, s *game.Snapshot, flash *hud.DenialFlash) {
	cols, rows := screen.Size()
	vw, vh := float64(cols), float64(playRows(rows))
	if cam.ViewportW != vw || cam.ViewportH != vh {
		cam.Resize(vw, vh)
	}
	cam.SetWorld(s.Width, s.Height)

	screen.Clear()
	drawCentral(screen, cam, s)
	for _, p := range s.Particles {
		x, y, ok := Project(cam, p)
		if !ok {
			continue
		}
		screen.SetContent(x, y, Glyph(cam.ScreenRadius(p.Radius)), nil, particleStyle(p.ColorSeed))
	}
	drawStatus(screen, s, flash, cols, playRows(rows))
}

// drawCentral fills the cells whose centers lie inside the central body.
func drawCentral(screen tcell.Screen, cam *camera.Camera, s *game.Snapshot) {
	cx, cy := cam.WorldToScreen(s.CenterX, s.CenterY)
	rx := cam.ScreenRadius(s.CentralRadius)
	ry := rx * cam.AspectY
	maxX, maxY := int(cam.ViewportW)-1, int(cam.ViewportH)-1

	filled := false
	rr := s.CentralRadius * s.CentralRadius
	for y := max(int(math.Floor(cy-ry)), 0); y <= min(int(math.Ceil(cy+ry)), maxY); y++ {
		for x := max(int(math.Floor(cx-rx)), 0); x <= min(int(math.Ceil(cx+rx)), maxX); x++ {
			wx, wy := cam.ScreenToWorld(float64(x)+0.5, float64(y)+0.5)
			dx, dy := wx-s.CenterX, wy-s.CenterY
			if dx*dx+dy*dy <= rr {
				screen.SetContent(x, y, '█', nil, styleCore)
				filled = true
			}
		}
	}

	// Smaller than a cell
	if !filled {
		x, y := int(math.Floor(cx)), int(math.Floor(cy))
		if x >= 0 && y >= 0 && x <= maxX && y <= maxY {
			screen.SetContent(x, y, '@', nil, styleCore)
		}
	}
}

// drawStatus writes the economy line and the upgrade line below the play area.
func drawStatus(screen tcell.Screen, s *game.Snapshot, flash *hud.DenialFlash, cols, row int) {
	x := drawText(screen, 0, row, cols, styleStatus, fmt.Sprintf(
		"Mass %s/%s  Gravity x%.2f  Particles %d  ",
		hud.FormatMass(s.CentralMass), hud.FormatMass(s.MaxMass), s.GravityLevel, len(s.Particles)))

	spawnStyle := styleStatus
	if flash.Spawn(s.Clock) > 0 {
		spawnStyle = styleDenied
	}
	x = drawText(screen, x, row, cols, spawnStyle,
		fmt.Sprintf("[%s] %s  ", Gauge(s.CooldownFraction, gaugeWidth), hud.SpawnLabel(s)))
	drawText(screen, x, row, cols, styleStatus, hud.AutoPlayLabel(s.AutoPlay))

	x = 0
	for i, tv := range s.Tracks {
		style := styleStatus
		switch {
		case tv.Maxed:
			style = styleDisabled
		case flash.Track(tv.Track, s.Clock) > 0:
			style = styleDenied
		case s.Affordable(tv):
			style = styleAfford
		}
		x = drawText(screen, x, row+1, cols, style, fmt.Sprintf("[%d] %s", i+1, hud.TrackLabel(tv)))
		x = drawText(screen, x, row+1, cols, styleStatus, "  ")
	}
	drawText(screen, x, row+1, cols, styleDisabled, "space spawn  a auto  q quit")
}

// drawText writes text from x, clipped at cols, and returns the next column.
func drawText(screen tcell.Screen, x, y, cols int, style tcell.Style, text string) int {
	for _, r := range text {
		if x >= cols {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
