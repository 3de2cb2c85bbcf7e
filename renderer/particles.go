package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/accretion/camera"
	"github.com/pthm-cable/accretion/game"
)

// minParticlePixels keeps tiny particles visible when zoomed out.
const minParticlePixels = 1.0

// ParticleRenderer renders live particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all visible particles.
func (r *ParticleRenderer) Draw(cam *camera.Camera, particles []game.ParticleView) {
	for i := range particles {
		p := &particles[i]
		if !cam.IsVisible(p.X, p.Y, p.Radius) {
			continue
		}

		sx, sy := cam.WorldToScreen(p.X, p.Y)
		size := max(cam.ScreenRadius(p.Radius), minParticlePixels)
		rl.DrawCircleV(rl.Vector2{X: float32(sx), Y: float32(sy)}, float32(size), ParticleColor(p.ColorSeed))
	}
}
