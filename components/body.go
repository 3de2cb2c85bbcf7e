package components

import (
	"math"

	"github.com/pthm-cable/accretion/config"
)

// Body holds physical properties of a particle.
type Body struct {
	Mass   float64
	Radius float64
}

// RadiusFor returns the particle radius for a mass: base + k*sqrt(mass).
func RadiusFor(cfg config.ParticleConfig, mass float64) float64 {
	if mass < 0 {
		mass = 0
	}
	return cfg.BaseRadius + cfg.RadiusPerSqrtMass*math.Sqrt(mass)
}

// NewBody creates a body whose radius matches its mass.
func NewBody(cfg config.ParticleConfig, mass float64) Body {
	return Body{Mass: mass, Radius: RadiusFor(cfg, mass)}
}
