package game

import (
	"time"

	"github.com/pthm-cable/accretion/telemetry"
)

// Update advances the clock by elapsed, polls the cooldown, and runs the fixed
// ticks that fit into the accumulated time. At most maxSteps ticks run per call;
// time beyond that is dropped. Returns the number of ticks run.
func (g *Game) Update(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	g.now += elapsed

	g.cooldown.Poll(g.now)
	if g.autoPlay && !g.cooldown.Active(g.now) {
		g.requestSpawn(false)
	}

	g.acc += elapsed
	steps := 0
	for g.acc >= g.dt && steps < g.maxSteps {
		g.Step()
		g.acc -= g.dt
		steps++
	}
	if g.acc >= g.dt {
		// Spiral of death guard
		g.acc %= g.dt
	}

	return steps
}

// UpdateHeadless runs stepsPerUpdate frames of exactly one tick each.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Update(g.dt)
	}
}

// Step runs one fixed tick: gravity, merge, cleanup, telemetry.
func (g *Game) Step() {
	g.perfCollector.StartTick()

	// Gravity level is read once per tick
	g.perfCollector.StartPhase(telemetry.PhaseGravity)
	level := g.econ.GravityLevel()
	grav := g.gravity.Update(g.econ, g.center, level)

	g.perfCollector.StartPhase(telemetry.PhaseMerge)
	merges := g.merge.Update()

	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.liveCount -= g.cleanup.Update()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	if grav.Absorbed > 0 {
		g.collector.Record(telemetry.NewAbsorbEvent(g.tick, grav.Absorbed, grav.AcceptedMass))
	}
	if merges > 0 {
		g.collector.Record(telemetry.NewMergeEvent(g.tick, merges))
	}

	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndTick()
}
