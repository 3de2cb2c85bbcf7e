// Package economy implements upgrade tracks, the cost curve, and the central body mass pool.
package economy

import (
	"fmt"
	"math"
	"time"

	"github.com/pthm-cable/accretion/config"
)

// Track identifies one independently leveled upgrade.
type Track uint8

const (
	ClickYield Track = iota
	ParticleMass
	SpawnSpeed

	NumTracks = 3
)

var trackNames = [NumTracks]string{"click_yield", "particle_mass", "spawn_speed"}

// String returns the config name of the track.
func (t Track) String() string {
	if int(t) < NumTracks {
		return trackNames[t]
	}
	return fmt.Sprintf("track(%d)", uint8(t))
}

// ParseTrack maps a config name back to its track.
func ParseTrack(name string) (Track, error) {
	for i, n := range trackNames {
		if n == name {
			return Track(i), nil
		}
	}
	return 0, fmt.Errorf("unknown upgrade track %q", name)
}

// Tracks lists every track in display order.
func Tracks() []Track {
	return []Track{ClickYield, ParticleMass, SpawnSpeed}
}

// TrackSpec is the cost curve and cap of a track.
type TrackSpec struct {
	Base   float64
	Growth float64
	Cap    int
}

// Cost returns floor(base * growth^(level-1)), saturating at math.MaxInt64.
func Cost(spec TrackSpec, level int) int64 {
	if level < 1 {
		level = 1
	}
	c := math.Floor(spec.Base * math.Pow(spec.Growth, float64(level-1)))
	if c >= math.Exp2(63) || math.IsNaN(c) {
		return math.MaxInt64
	}
	return int64(c)
}

// Reason explains a purchase outcome.
type Reason uint8

const (
	ReasonOK Reason = iota
	ReasonMaxed
	ReasonInsufficientMass
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonMaxed:
		return "maxed"
	case ReasonInsufficientMass:
		return "insufficient_mass"
	}
	return "unknown"
}

// PurchaseResult reports the outcome of a purchase attempt.
type PurchaseResult struct {
	Track    Track
	Accepted bool
	Reason   Reason
	Cost     int64 // Price that applied (charged only when Accepted)
	Level    int   // Level after the attempt
}

// Effects converts track levels into gameplay quantities.
type Effects struct {
	CountPerLevel int
	BaseMass      float64
	MassPerLevel  float64
	BaseCooldown  time.Duration
	CooldownStep  time.Duration
	MinCooldown   time.Duration
}

// Body describes how the central body radius grows with mass.
type Body struct {
	BaseRadius        float64
	RadiusPerSqrtMass float64
	MaxMass           float64
	MaxGravityLevel   float64
}

// Economy owns accumulated mass and upgrade levels.
type Economy struct {
	mass   float64
	radius float64
	levels [NumTracks]int
	specs  [NumTracks]TrackSpec

	effects Effects
	body    Body
}

// New creates an economy from config with every track at level 1.
func New(cfg *config.Config) *Economy {
	e := &Economy{
		specs: [NumTracks]TrackSpec{
			ClickYield:   specFromConfig(cfg.Economy.ClickYield),
			ParticleMass: specFromConfig(cfg.Economy.ParticleMass),
			SpawnSpeed:   specFromConfig(cfg.Economy.SpawnSpeed),
		},
		effects: Effects{
			CountPerLevel: cfg.Economy.CountPerLevel,
			BaseMass:      cfg.Economy.BaseMass,
			MassPerLevel:  cfg.Economy.MassPerLevel,
			BaseCooldown:  cfg.Cooldown.Base,
			CooldownStep:  cfg.Cooldown.Step,
			MinCooldown:   cfg.Cooldown.Min,
		},
		body: Body{
			BaseRadius:        cfg.Center.BaseRadius,
			RadiusPerSqrtMass: cfg.Center.RadiusPerSqrtMass,
			MaxMass:           cfg.Center.MaxMass,
			MaxGravityLevel:   cfg.Physics.MaxGravityLevel,
		},
	}
	for i := range e.levels {
		e.levels[i] = 1
	}
	e.mass = math.Min(cfg.Center.InitialMass, e.body.MaxMass)
	e.recomputeRadius()
	return e
}

func specFromConfig(t config.TrackConfig) TrackSpec {
	return TrackSpec{Base: t.Base, Growth: t.Growth, Cap: t.Cap}
}

// Mass returns the accumulated mass.
func (e *Economy) Mass() float64 { return e.mass }

// MaxMass returns the accumulated mass ceiling.
func (e *Economy) MaxMass() float64 { return e.body.MaxMass }

// CentralRadius returns baseRadius + k*sqrt(mass).
func (e *Economy) CentralRadius() float64 { return e.radius }

// Level returns the current level of a track.
func (e *Economy) Level(t Track) int { return e.levels[t] }

// Spec returns the cost curve of a track.
func (e *Economy) Spec(t Track) TrackSpec { return e.specs[t] }

// NextCost returns the price of the next level, or maxed=true at the cap.
func (e *Economy) NextCost(t Track) (cost int64, maxed bool) {
	if e.levels[t] >= e.specs[t].Cap {
		return 0, true
	}
	return Cost(e.specs[t], e.levels[t]), false
}

// Purchase buys one level of the track if affordable and below the cap.
// A rejected purchase changes nothing.
func (e *Economy) Purchase(t Track) PurchaseResult {
	res := PurchaseResult{Track: t, Level: e.levels[t]}

	cost, maxed := e.NextCost(t)
	if maxed {
		res.Reason = ReasonMaxed
		return res
	}
	res.Cost = cost
	if e.mass < float64(cost) {
		res.Reason = ReasonInsufficientMass
		return res
	}

	e.mass -= float64(cost)
	if e.mass < 0 {
		e.mass = 0
	}
	e.levels[t]++
	e.recomputeRadius()

	res.Accepted = true
	res.Reason = ReasonOK
	res.Level = e.levels[t]
	return res
}

// AddMass adds absorbed mass, clamped at MaxMass, and returns the amount actually added.
func (e *Economy) AddMass(m float64) float64 {
	if m <= 0 {
		return 0
	}
	before := e.mass
	e.mass = math.Min(e.mass+m, e.body.MaxMass)
	e.recomputeRadius()
	return e.mass - before
}

func (e *Economy) recomputeRadius() {
	e.radius = e.body.BaseRadius + e.body.RadiusPerSqrtMass*math.Sqrt(e.mass)
}

// GravityLevel maps accumulated mass onto [1, MaxGravityLevel].
func (e *Economy) GravityLevel() float64 {
	return GravityLevel(e.mass/e.body.MaxMass, e.body.MaxGravityLevel)
}

// GravityLevel returns 1 + (max-1)*sqrt(frac), frac clamped to [0,1].
// Continuous and non-decreasing; equals max at frac=1.
func GravityLevel(frac, maxLevel float64) float64 {
	if frac <= 0 || math.IsNaN(frac) {
		return 1
	}
	if frac > 1 {
		frac = 1
	}
	return 1 + (maxLevel-1)*math.Sqrt(frac)
}

// ParticlesPerSpawn returns how many particles one spawn request asks for.
func (e *Economy) ParticlesPerSpawn() int {
	return e.levels[ClickYield] * e.effects.CountPerLevel
}

// ParticleMass returns the mass snapshot given to newly spawned particles.
func (e *Economy) ParticleMass() float64 {
	return e.effects.BaseMass + e.effects.MassPerLevel*float64(e.levels[ParticleMass]-1)
}

// SpawnCooldown returns the cooldown started by the next spawn.
// Linearly decreasing in the spawn-speed level, clamped to MinCooldown.
func (e *Economy) SpawnCooldown() time.Duration {
	d := e.effects.BaseCooldown - e.effects.CooldownStep*time.Duration(e.levels[SpawnSpeed]-1)
	if d < e.effects.MinCooldown {
		d = e.effects.MinCooldown
	}
	return d
}

// SetLevel forces a track level, clamped to [1, cap]. Used by tooling and tests.
func (e *Economy) SetLevel(t Track, level int) {
	e.levels[t] = max(1, min(level, e.specs[t].Cap))
}

// SetMass forces the accumulated mass, clamped to [0, MaxMass]. Used by tooling and tests.
func (e *Economy) SetMass(m float64) {
	e.mass = math.Max(0, math.Min(m, e.body.MaxMass))
	e.recomputeRadius()
}
