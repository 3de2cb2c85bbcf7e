// Package game owns the simulation state and orchestrates systems, commands, and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/accretion/components"
	"github.com/pthm-cable/accretion/config"
	"github.com/pthm-cable/accretion/economy"
	"github.com/pthm-cable/accretion/systems"
	"github.com/pthm-cable/accretion/telemetry"
)

// Options configures a new game.
type Options struct {
	// Config defaults to config.Cfg() when nil.
	Config         *config.Config
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	AutoPlay       bool

	// Play area; zero uses the configured screen size.
	Width, Height float64
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	filter *systems.ParticleFilter

	// Systems
	spawn   *systems.SpawnSystem
	gravity *systems.GravitySystem
	merge   *systems.MergeSystem
	cleanup *systems.CleanupSystem

	econ     *economy.Economy
	cooldown systems.Cooldown

	// Clock
	now      time.Duration
	acc      time.Duration
	dt       time.Duration
	maxSteps int

	// Viewport
	center        r2.Vec
	width, height float64

	// State
	tick      int32
	liveCount int
	autoPlay  bool
	events    []telemetry.Event

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	headless       bool
	stepsPerUpdate int
}

// NewGame creates a game with the embedded default config and a fixed seed.
func NewGame() *Game {
	g, err := NewGameWithOptions(Options{Config: config.Default(), Seed: 42})
	if err != nil {
		// Only output setup can fail and it is disabled here
		panic(err)
	}
	return g
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = cfg.Derived.ScreenW, cfg.Derived.ScreenH
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:      cfg,
		world:    world,
		rng:      rng,
		filter:   ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Particle](world),
		spawn:    systems.NewSpawnSystem(world, cfg, rng),
		gravity:  systems.NewGravitySystem(world, cfg),
		merge:    systems.NewMergeSystem(world, cfg, width, height),
		cleanup:  systems.NewCleanupSystem(world),
		econ:     economy.New(cfg),
		dt:       cfg.Derived.TickDuration,
		maxSteps: cfg.Physics.MaxStepsPerFrame,
		center:   r2.Vec{X: width / 2, Y: height / 2},
		width:    width,
		height:   height,

		collector:      telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.outputManager = om
	}

	if opts.AutoPlay {
		g.ToggleAutoPlay()
	}

	return g, nil
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Tick returns the number of fixed ticks simulated so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Clock returns the simulation clock.
func (g *Game) Clock() time.Duration {
	return g.now
}

// LiveParticles returns the number of particles alive after the last tick.
func (g *Game) LiveParticles() int {
	return g.liveCount
}

// Economy exposes the economy for tools and tests.
func (g *Game) Economy() *economy.Economy {
	return g.econ
}

// Headless reports whether the game was created for headless runs.
func (g *Game) Headless() bool {
	return g.headless
}

// Unload releases resources held by the game.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
