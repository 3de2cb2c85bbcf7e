package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/accretion/components"
	"github.com/pthm-cable/accretion/config"
)

// SpawnRequest carries the economy and viewport state that shapes a spawn.
type SpawnRequest struct {
	Count         int     // Particles asked for
	Mass          float64 // Mass snapshot for each particle
	GravityLevel  float64
	CentralRadius float64
	Center        r2.Vec
	Width, Height float64 // Visible play area
	Live          int     // Particles currently alive
}

// SpawnResult reports how a spawn request was resolved.
type SpawnResult struct {
	Requested int
	Spawned   int
	Rejected  bool // Nothing spawned because of the ceiling
}

// SpawnSystem creates particles in a banded annulus around the center.
type SpawnSystem struct {
	mapper   *ParticleMapper
	rng      *rand.Rand
	cfg      config.SpawnConfig
	physics  config.PhysicsConfig
	particle config.ParticleConfig
	nextSeq  uint64
}

// NewSpawnSystem creates a new spawn system.
func NewSpawnSystem(w *ecs.World, cfg *config.Config, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{
		mapper:   ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Particle](w),
		rng:      rng,
		cfg:      cfg.Spawn,
		physics:  cfg.Physics,
		particle: cfg.Particle,
	}
}

// Allowed resolves the ceiling policy: how many of requested particles may spawn
// with live already alive. Under the cap policy this is the remaining capacity;
// under reject it is all or nothing. Zero means the request is rejected.
func Allowed(cfg config.SpawnConfig, requested, live int) int {
	remaining := cfg.MaxParticles - live
	if requested <= 0 || remaining <= 0 {
		return 0
	}
	if requested <= remaining {
		return requested
	}
	if cfg.CeilingPolicy == config.CeilingReject {
		return 0
	}
	return remaining
}

// SpawnBand returns the radial bounds of the spawn annulus. The inner bound sits a
// margin outside the central body; the outer bound is a fraction of half the smaller
// extent. If the central body has outgrown the area the band collapses to the inner bound.
func SpawnBand(cfg config.SpawnConfig, centralRadius, width, height float64) (inner, outer float64) {
	inner = centralRadius + cfg.InnerMargin
	outer = math.Min(width, height) / 2 * cfg.OuterFraction
	if outer < inner {
		outer = inner
	}
	return inner, outer
}

// OrbitSpeed returns the initial tangential speed at distance r: a fraction of the
// circular orbit speed sqrt(a*r), so particles spiral inward.
func OrbitSpeed(orbitFraction, accel, r float64) float64 {
	return orbitFraction * math.Sqrt(accel*r)
}

// Spawn creates up to req.Count particles subject to the ceiling policy.
func (s *SpawnSystem) Spawn(req SpawnRequest) SpawnResult {
	res := SpawnResult{Requested: req.Count}

	n := Allowed(s.cfg, req.Count, req.Live)
	if n == 0 {
		res.Rejected = true
		return res
	}

	inner, outer := SpawnBand(s.cfg, req.CentralRadius, req.Width, req.Height)
	accel := Acceleration(s.physics, req.GravityLevel, req.Mass)

	for i := 0; i < n; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		r := inner + s.rng.Float64()*(outer-inner)

		sin, cos := math.Sincos(angle)
		radial := r2.Vec{X: cos, Y: sin}
		tangent := r2.Vec{X: -sin, Y: cos}
		if s.cfg.Clockwise {
			tangent = r2.Scale(-1, tangent)
		}

		var pos components.Position
		pos.Set(r2.Add(req.Center, r2.Scale(r, radial)))
		var vel components.Velocity
		vel.Set(r2.Scale(OrbitSpeed(s.cfg.OrbitFraction, accel, r), tangent))
		body := components.NewBody(s.particle, req.Mass)
		part := components.Particle{
			Seq:       s.nextSeq,
			ColorSeed: s.rng.Uint32(),
			Alive:     true,
		}
		s.nextSeq++

		s.mapper.NewEntity(&pos, &vel, &body, &part)
		res.Spawned++
	}

	return res
}
