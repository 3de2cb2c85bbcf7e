// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Particle  ParticleConfig  `yaml:"particle"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Center    CenterConfig    `yaml:"center"`
	Economy   EconomyConfig   `yaml:"economy"`
	Cooldown  CooldownConfig  `yaml:"cooldown"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds gravity integration parameters.
type PhysicsConfig struct {
	DT                float64 `yaml:"dt"`                  // Seconds per fixed simulation tick
	MaxStepsPerFrame  int     `yaml:"max_steps_per_frame"` // Fixed ticks run per frame at most; surplus time is dropped
	GravityConstant   float64 `yaml:"gravity_constant"`    // Base pull toward the center, px/s^2
	MaxGravityLevel   float64 `yaml:"max_gravity_level"`   // Gravity multiplier at MaxMass
	MassAmplification float64 `yaml:"mass_amplification"`  // Acceleration gain per ln(1+mass)
	Drag              float64 `yaml:"drag"`                // Per-frame velocity retention for a massless particle
	DragPerMass       float64 `yaml:"drag_per_mass"`       // Retention lost per ln(1+mass)
	DragFloor         float64 `yaml:"drag_floor"`          // Lowest retention a heavy particle can reach
	DragCeiling       float64 `yaml:"drag_ceiling"`        // Highest retention; must stay below 1
	MinDistance       float64 `yaml:"min_distance"`        // Below this distance absorption is forced
	MergeKeepSpeed    float64 `yaml:"merge_keep_speed"`    // Merged speed >= this * faster speed (0 = strict momentum)
}

// ParticleConfig holds particle body parameters.
type ParticleConfig struct {
	BaseRadius        float64 `yaml:"base_radius"`
	RadiusPerSqrtMass float64 `yaml:"radius_per_sqrt_mass"`
}

// CeilingPolicy decides what a spawn does when it would exceed MaxParticles.
type CeilingPolicy string

const (
	CeilingCap    CeilingPolicy = "cap"    // Spawn as many as fit
	CeilingReject CeilingPolicy = "reject" // Spawn nothing unless all fit
)

// SpawnConfig holds spawn band and capacity parameters.
type SpawnConfig struct {
	MaxParticles  int           `yaml:"max_particles"`
	CeilingPolicy CeilingPolicy `yaml:"ceiling_policy"`
	InnerMargin   float64       `yaml:"inner_margin"`   // Gap between central body surface and the band
	OuterFraction float64       `yaml:"outer_fraction"` // Outer bound as a fraction of half the smaller extent
	OrbitFraction float64       `yaml:"orbit_fraction"` // Initial speed as a fraction of circular orbit speed
	Clockwise     bool          `yaml:"clockwise"`
}

// CenterConfig holds central body parameters.
type CenterConfig struct {
	BaseRadius        float64 `yaml:"base_radius"`
	RadiusPerSqrtMass float64 `yaml:"radius_per_sqrt_mass"`
	MaxMass           float64 `yaml:"max_mass"`
	InitialMass       float64 `yaml:"initial_mass"`
}

// TrackConfig holds the cost curve and level cap of one upgrade track.
type TrackConfig struct {
	Base   float64 `yaml:"base"`   // Cost at level 1
	Growth float64 `yaml:"growth"` // Cost multiplier per level
	Cap    int     `yaml:"cap"`    // Highest reachable level
}

// EconomyConfig holds upgrade tracks and their effects.
type EconomyConfig struct {
	ClickYield   TrackConfig `yaml:"click_yield"`
	ParticleMass TrackConfig `yaml:"particle_mass"`
	SpawnSpeed   TrackConfig `yaml:"spawn_speed"`

	CountPerLevel int     `yaml:"count_per_level"` // Particles per spawn per click-yield level
	BaseMass      float64 `yaml:"base_mass"`       // Particle mass at particle-mass level 1
	MassPerLevel  float64 `yaml:"mass_per_level"`  // Mass added per particle-mass level
}

// CooldownConfig holds spawn cooldown parameters.
type CooldownConfig struct {
	Base time.Duration `yaml:"base"` // Cooldown at spawn-speed level 1
	Step time.Duration `yaml:"step"` // Reduction per spawn-speed level
	Min  time.Duration `yaml:"min"`  // Floor; must be positive
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickDuration time.Duration // Physics.DT as a duration
	FrameScale   float64       // Physics.DT * 60, exponent for per-frame drag factors
	ScreenW      float64
	ScreenH      float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every parameter that would break a simulation invariant.
func (c *Config) Validate() error {
	var errs []error

	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT))
	}
	if c.Physics.MaxStepsPerFrame < 1 {
		errs = append(errs, fmt.Errorf("physics.max_steps_per_frame must be at least 1, got %d", c.Physics.MaxStepsPerFrame))
	}
	if c.Physics.MaxGravityLevel < 1 {
		errs = append(errs, fmt.Errorf("physics.max_gravity_level must be >= 1, got %v", c.Physics.MaxGravityLevel))
	}
	if c.Physics.DragCeiling >= 1 || c.Physics.DragCeiling <= 0 {
		errs = append(errs, fmt.Errorf("physics.drag_ceiling must be in (0, 1), got %v", c.Physics.DragCeiling))
	}
	if c.Physics.DragFloor <= 0 || c.Physics.DragFloor > c.Physics.DragCeiling {
		errs = append(errs, fmt.Errorf("physics.drag_floor must be in (0, drag_ceiling], got %v", c.Physics.DragFloor))
	}
	if c.Physics.MinDistance <= 0 {
		errs = append(errs, fmt.Errorf("physics.min_distance must be positive, got %v", c.Physics.MinDistance))
	}
	if c.Physics.MergeKeepSpeed < 0 || c.Physics.MergeKeepSpeed > 1 {
		errs = append(errs, fmt.Errorf("physics.merge_keep_speed must be in [0, 1], got %v", c.Physics.MergeKeepSpeed))
	}

	if c.Spawn.MaxParticles < 1 {
		errs = append(errs, fmt.Errorf("spawn.max_particles must be at least 1, got %d", c.Spawn.MaxParticles))
	}
	switch c.Spawn.CeilingPolicy {
	case CeilingCap, CeilingReject:
	default:
		errs = append(errs, fmt.Errorf("spawn.ceiling_policy must be %q or %q, got %q", CeilingCap, CeilingReject, c.Spawn.CeilingPolicy))
	}
	if c.Spawn.OrbitFraction <= 0 || c.Spawn.OrbitFraction >= 1 {
		errs = append(errs, fmt.Errorf("spawn.orbit_fraction must be in (0, 1), got %v", c.Spawn.OrbitFraction))
	}
	if c.Spawn.OuterFraction <= 0 || c.Spawn.OuterFraction > 1 {
		errs = append(errs, fmt.Errorf("spawn.outer_fraction must be in (0, 1], got %v", c.Spawn.OuterFraction))
	}

	if c.Center.MaxMass <= 0 {
		errs = append(errs, fmt.Errorf("center.max_mass must be positive, got %v", c.Center.MaxMass))
	}
	if c.Center.InitialMass < 0 || c.Center.InitialMass > c.Center.MaxMass {
		errs = append(errs, fmt.Errorf("center.initial_mass must be in [0, max_mass], got %v", c.Center.InitialMass))
	}

	tracks := []struct {
		name string
		t    TrackConfig
	}{
		{"click_yield", c.Economy.ClickYield},
		{"particle_mass", c.Economy.ParticleMass},
		{"spawn_speed", c.Economy.SpawnSpeed},
	}
	for _, tr := range tracks {
		name, t := tr.name, tr.t
		if t.Cap < 1 {
			errs = append(errs, fmt.Errorf("economy.%s.cap must be at least 1, got %d", name, t.Cap))
		}
		// base*(growth-1) >= 1 keeps floor(base*growth^(L-1)) strictly increasing
		if t.Growth <= 1 || t.Base*(t.Growth-1) < 1 {
			errs = append(errs, fmt.Errorf("economy.%s needs growth > 1 and base*(growth-1) >= 1, got base=%v growth=%v", name, t.Base, t.Growth))
			continue
		}
		// The last price paid is for level cap-1; it must be reachable and fit an int64
		if t.Cap >= 2 {
			top := t.Base * math.Pow(t.Growth, float64(t.Cap-2))
			if top > c.Center.MaxMass || top >= math.Exp2(63) {
				errs = append(errs, fmt.Errorf("economy.%s: level %d costs %.4g, above center.max_mass %.4g", name, t.Cap-1, top, c.Center.MaxMass))
			}
		}
	}
	if c.Economy.CountPerLevel < 1 {
		errs = append(errs, fmt.Errorf("economy.count_per_level must be at least 1, got %d", c.Economy.CountPerLevel))
	}
	if c.Economy.BaseMass <= 0 {
		errs = append(errs, fmt.Errorf("economy.base_mass must be positive, got %v", c.Economy.BaseMass))
	}
	if c.Economy.MassPerLevel < 0 {
		errs = append(errs, fmt.Errorf("economy.mass_per_level must be >= 0, got %v", c.Economy.MassPerLevel))
	}
	if c.Spawn.CeilingPolicy == CeilingReject {
		if most := c.Economy.CountPerLevel * c.Economy.ClickYield.Cap; most > c.Spawn.MaxParticles {
			errs = append(errs, fmt.Errorf("economy.count_per_level * click_yield.cap = %d exceeds spawn.max_particles %d under the reject policy", most, c.Spawn.MaxParticles))
		}
	}

	if c.Cooldown.Min <= 0 {
		errs = append(errs, fmt.Errorf("cooldown.min must be positive, got %v", c.Cooldown.Min))
	}
	if c.Cooldown.Step < 0 {
		errs = append(errs, fmt.Errorf("cooldown.step must be >= 0, got %v", c.Cooldown.Step))
	}
	if c.Cooldown.Base < c.Cooldown.Min {
		errs = append(errs, fmt.Errorf("cooldown.base must be >= cooldown.min, got %v", c.Cooldown.Base))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickDuration = time.Duration(c.Physics.DT * float64(time.Second))
	c.Derived.FrameScale = c.Physics.DT * 60
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
