package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/accretion/components"
	"github.com/pthm-cable/accretion/config"
)

// MassSink receives absorbed particle mass. The economy implements it.
type MassSink interface {
	AddMass(m float64) float64
	CentralRadius() float64
}

// Acceleration returns the pull toward the center for a particle of the given mass:
// gravityConstant * gravityLevel * massAmp(mass).
func Acceleration(cfg config.PhysicsConfig, gravityLevel, mass float64) float64 {
	return cfg.GravityConstant * gravityLevel * MassAmplification(cfg, mass)
}

// MassAmplification returns 1 + k*ln(1+mass).
func MassAmplification(cfg config.PhysicsConfig, mass float64) float64 {
	return 1 + cfg.MassAmplification*math.Log1p(math.Max(mass, 0))
}

// DragFactor returns the per-frame velocity retention for a mass, clamped to
// [DragFloor, DragCeiling]. The ceiling is below 1, so every orbit decays.
func DragFactor(cfg config.PhysicsConfig, mass float64) float64 {
	f := cfg.Drag - cfg.DragPerMass*math.Log1p(math.Max(mass, 0))
	return math.Max(cfg.DragFloor, math.Min(f, cfg.DragCeiling))
}

// GravityResult summarizes the absorptions of one tick.
type GravityResult struct {
	Absorbed     int     // Particles that reached the center
	OfferedMass  float64 // Sum of absorbed particle masses
	AcceptedMass float64 // Mass actually added after the MaxMass clamp
}

// GravitySystem integrates particles toward the center and absorbs those that reach it.
type GravitySystem struct {
	filter *ParticleFilter
	cfg    config.PhysicsConfig
	dt     float64
	frames float64 // dt expressed in 60 Hz frames
	slots  []slot
}

// NewGravitySystem creates a new gravity system.
func NewGravitySystem(w *ecs.World, cfg *config.Config) *GravitySystem {
	return &GravitySystem{
		filter: ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Particle](w),
		cfg:    cfg.Physics,
		dt:     cfg.Physics.DT,
		frames: cfg.Derived.FrameScale,
	}
}

// Update advances every live particle one tick. gravityLevel is the snapshot taken at
// tick start; the central radius is re-read after each absorption.
func (s *GravitySystem) Update(sink MassSink, center r2.Vec, gravityLevel float64) GravityResult {
	var res GravityResult

	s.slots = gatherLive(s.slots, s.filter)
	for _, p := range s.slots {
		toCenter := r2.Sub(center, p.pos.Vec())
		d := r2.Norm(toCenter)

		// Absorption check
		if d < sink.CentralRadius()+p.body.Radius || d < s.cfg.MinDistance {
			p.part.Alive = false
			res.Absorbed++
			res.OfferedMass += p.body.Mass
			res.AcceptedMass += sink.AddMass(p.body.Mass)
			continue
		}

		// Gravity integration
		dir := r2.Scale(1/d, toCenter)
		a := Acceleration(s.cfg, gravityLevel, p.body.Mass)
		v := r2.Add(p.vel.Vec(), r2.Scale(a*s.dt, dir))

		// Drag
		v = r2.Scale(math.Pow(DragFactor(s.cfg, p.body.Mass), s.frames), v)
		p.vel.Set(v)

		// Semi-implicit Euler: position uses the updated velocity
		p.pos.Set(r2.Add(p.pos.Vec(), r2.Scale(s.dt, v)))
	}

	return res
}
