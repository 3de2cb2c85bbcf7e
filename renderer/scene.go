package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/accretion/camera"
	"github.com/pthm-cable/accretion/game"
	"github.com/pthm-cable/accretion/hud"
)

// Scene draws one snapshot: background, central body, particles, status text.
type Scene struct {
	cam       *camera.Camera
	particles *ParticleRenderer
	central   *CentralBodyRenderer

	// Flash holds denial signals; call Flash.Update with every frame snapshot.
	Flash hud.DenialFlash

	maxGravityLevel float64
}

// NewScene creates a scene for a screen of the given size.
func NewScene(screenW, screenH, maxGravityLevel float64) *Scene {
	return &Scene{
		cam:             camera.New(screenW, screenH, screenW, screenH),
		particles:       NewParticleRenderer(),
		central:         NewCentralBodyRenderer(),
		maxGravityLevel: maxGravityLevel,
	}
}

// Camera returns the scene camera for input handling.
func (s *Scene) Camera() *camera.Camera {
	return s.cam
}

// Resize adapts the camera to a new screen size.
func (s *Scene) Resize(screenW, screenH float64) {
	s.cam.Resize(screenW, screenH)
}

// Draw renders the snapshot. Must be called between rl.BeginDrawing and rl.EndDrawing.
func (s *Scene) Draw(snap *game.Snapshot) {
	s.Flash.Update(snap)
	s.cam.SetWorld(snap.Width, snap.Height)

	rl.ClearBackground(BackgroundColor)

	s.central.Draw(s.cam, snap, s.maxGravityLevel)
	s.particles.Draw(s.cam, snap.Particles)

	s.drawStatus(snap)
}

// drawStatus renders the mass and gravity readout in the top-left corner.
func (s *Scene) drawStatus(snap *game.Snapshot) {
	rl.DrawText(fmt.Sprintf("Mass: %s", hud.FormatMass(snap.CentralMass)), 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Gravity: x%.2f | Particles: %d | Tick: %d", snap.GravityLevel, len(snap.Particles), snap.Tick),
		10, 35, 16, rl.LightGray,
	)

	if a := s.Flash.Spawn(snap.Clock); a > 0 {
		rl.DrawText("Particle limit reached", 10, 55, 16, rl.Fade(DenialColor, float32(a)))
	}
}
