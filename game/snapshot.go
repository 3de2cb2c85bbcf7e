package game

import (
	"cmp"
	"slices"
	"time"

	"github.com/pthm-cable/accretion/economy"
	"github.com/pthm-cable/accretion/telemetry"
)

// ParticleView is the read-only state of one live particle.
type ParticleView struct {
	ID        uint64
	X, Y      float64
	VX, VY    float64
	Radius    float64
	Mass      float64
	ColorSeed uint32
}

// TrackView is the read-only state of one upgrade track.
// NextCost is meaningless when Maxed is set.
type TrackView struct {
	Track    economy.Track
	Level    int
	Cap      int
	NextCost int64
	Maxed    bool
}

// Snapshot is a read-only copy of everything a frontend needs for one frame.
type Snapshot struct {
	Tick  int32
	Clock time.Duration

	Width, Height    float64
	CenterX, CenterY float64
	CentralMass      float64
	CentralRadius    float64
	MaxMass          float64
	GravityLevel     float64

	Particles []ParticleView

	CooldownActive    bool
	CooldownFraction  float64
	CooldownRemaining time.Duration
	AutoPlay          bool

	Tracks []TrackView

	// Rejection and denial events of the frame; set by Driver.Frame only.
	Events []telemetry.Event
}

// Affordable reports whether the track can be bought with the snapshot's mass.
func (s *Snapshot) Affordable(t TrackView) bool {
	return !t.Maxed && s.CentralMass >= float64(t.NextCost)
}

// Snapshot copies the current state. Particles are ordered by creation.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:              g.tick,
		Clock:             g.now,
		Width:             g.width,
		Height:            g.height,
		CenterX:           g.center.X,
		CenterY:           g.center.Y,
		CentralMass:       g.econ.Mass(),
		CentralRadius:     g.econ.CentralRadius(),
		MaxMass:           g.econ.MaxMass(),
		GravityLevel:      g.econ.GravityLevel(),
		CooldownActive:    g.cooldown.Active(g.now),
		CooldownFraction:  g.cooldown.Fraction(g.now),
		CooldownRemaining: g.cooldown.Remaining(g.now),
		AutoPlay:          g.autoPlay,
		Particles:         make([]ParticleView, 0, g.liveCount),
	}

	query := g.filter.Query()
	for query.Next() {
		pos, vel, body, part := query.Get()
		if !part.Alive {
			continue
		}
		s.Particles = append(s.Particles, ParticleView{
			ID:        part.Seq,
			X:         pos.X,
			Y:         pos.Y,
			VX:        vel.X,
			VY:        vel.Y,
			Radius:    body.Radius,
			Mass:      body.Mass,
			ColorSeed: part.ColorSeed,
		})
	}
	slices.SortFunc(s.Particles, func(a, b ParticleView) int {
		return cmp.Compare(a.ID, b.ID)
	})

	for _, t := range economy.Tracks() {
		cost, maxed := g.econ.NextCost(t)
		s.Tracks = append(s.Tracks, TrackView{
			Track:    t,
			Level:    g.econ.Level(t),
			Cap:      g.econ.Spec(t).Cap,
			NextCost: cost,
			Maxed:    maxed,
		})
	}

	return s
}

// particleMasses samples the mass of every live particle.
func (g *Game) particleMasses() []float64 {
	masses := make([]float64, 0, g.liveCount)
	query := g.filter.Query()
	for query.Next() {
		_, _, body, part := query.Get()
		if part.Alive {
			masses = append(masses, body.Mass)
		}
	}
	return masses
}
