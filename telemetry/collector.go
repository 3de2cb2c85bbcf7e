package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns          int
	spawnRejects    int
	spawned         int
	absorbed        int
	absorbedMass    float64
	merges          int
	purchases       int
	purchaseDenials int
	massSpent       float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record folds an event into the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventSpawn:
		c.spawns++
		c.spawned += ev.Count
	case EventSpawnRejected:
		c.spawnRejects++
	case EventAbsorb:
		c.absorbed += ev.Count
		c.absorbedMass += ev.Amount
	case EventMerge:
		c.merges += ev.Count
	case EventPurchase:
		c.purchases++
		c.massSpent += ev.Amount
	case EventPurchaseDenied:
		c.purchaseDenials++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WorldState holds the end-of-window values sampled from the game.
type WorldState struct {
	Particles      int
	ParticleMasses []float64
	CentralMass    float64
	CentralRadius  float64
	GravityLevel   float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, world WorldState) WindowStats {
	massMean, massP50, massP90 := ComputeMassStats(world.ParticleMasses)

	windowSec := float64(currentTick-c.windowStartTick) * c.dt
	var massRate float64
	if windowSec > 0 {
		massRate = c.absorbedMass / windowSec
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Particles:     world.Particles,
		CentralMass:   world.CentralMass,
		CentralRadius: world.CentralRadius,
		GravityLevel:  world.GravityLevel,

		Spawns:          c.spawns,
		SpawnRejects:    c.spawnRejects,
		Spawned:         c.spawned,
		Absorbed:        c.absorbed,
		AbsorbedMass:    c.absorbedMass,
		MassPerSec:      massRate,
		Merges:          c.merges,
		Purchases:       c.purchases,
		PurchaseDenials: c.purchaseDenials,
		MassSpent:       c.massSpent,

		ParticleMassMean: massMean,
		ParticleMassP50:  massP50,
		ParticleMassP90:  massP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = 0
	c.spawnRejects = 0
	c.spawned = 0
	c.absorbed = 0
	c.absorbedMass = 0
	c.merges = 0
	c.purchases = 0
	c.purchaseDenials = 0
	c.massSpent = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
