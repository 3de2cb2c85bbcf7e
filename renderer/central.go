package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/accretion/camera"
	"github.com/pthm-cable/accretion/game"
)

// CentralBodyRenderer renders the central body and its gravity glow.
type CentralBodyRenderer struct{}

// NewCentralBodyRenderer creates a new central body renderer.
func NewCentralBodyRenderer() *CentralBodyRenderer {
	return &CentralBodyRenderer{}
}

// GlowIntensity maps the gravity level onto [0,1] for the halo.
func GlowIntensity(gravityLevel, maxLevel float64) float64 {
	if maxLevel <= 1 {
		return 0
	}
	return math.Max(0, math.Min((gravityLevel-1)/(maxLevel-1), 1))
}

// Draw renders the halo and core at the snapshot center.
func (r *CentralBodyRenderer) Draw(cam *camera.Camera, s *game.Snapshot, maxGravityLevel float64) {
	sx, sy := cam.WorldToScreen(s.CenterX, s.CenterY)
	center := rl.Vector2{X: float32(sx), Y: float32(sy)}
	radius := cam.ScreenRadius(s.CentralRadius)

	r.drawHalo(center, radius, GlowIntensity(s.GravityLevel, maxGravityLevel))

	rl.DrawCircleV(center, float32(radius), CoreColor)
}

// drawHalo draws a radial gradient that widens with gravity.
func (r *CentralBodyRenderer) drawHalo(center rl.Vector2, radius, intensity float64) {
	steps := 10
	reach := radius * (1.5 + 2.5*intensity)
	for i := steps; i >= 1; i-- {
		t := float64(i) / float64(steps)

		// Fast falloff - glow concentrated near the surface
		falloff := math.Pow(1-t, 2.0)
		alpha := (0.08 + 0.25*intensity) * falloff
		if alpha*255 < 1 {
			continue
		}

		rl.DrawCircleV(center, float32(radius+reach*t), rl.Fade(GlowColor, float32(alpha)))
	}
}
