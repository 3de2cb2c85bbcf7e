// Package renderer draws game snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/accretion/components"
)

// ParticleColor returns the raylib color for a color seed.
func ParticleColor(seed uint32) rl.Color {
	h, s, v := components.SeedHSV(seed)
	return rl.ColorFromHSV(float32(h), float32(s), float32(v))
}

// Palette holds fixed scene colors.
var (
	BackgroundColor = rl.Color{R: 8, G: 10, B: 18, A: 255}
	CoreColor       = rl.Color{R: 255, G: 236, B: 200, A: 255}
	GlowColor       = rl.Color{R: 255, G: 190, B: 120, A: 255}
	DenialColor     = rl.Color{R: 230, G: 70, B: 70, A: 255}
)
