package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/accretion/economy"
	"github.com/pthm-cable/accretion/systems"
	"github.com/pthm-cable/accretion/telemetry"
)

// RequestSpawn spawns a batch of particles if the cooldown is idle.
// Requests made during a cooldown are dropped. Returns true if particles spawned.
func (g *Game) RequestSpawn() bool {
	return g.requestSpawn(true)
}

// requestSpawn runs a spawn. Manual requests refused by the particle ceiling emit
// a rejection event; auto-play retries silently every frame instead.
func (g *Game) requestSpawn(manual bool) bool {
	if g.cooldown.Active(g.now) {
		return false
	}

	res := g.spawn.Spawn(systems.SpawnRequest{
		Count:         g.econ.ParticlesPerSpawn(),
		Mass:          g.econ.ParticleMass(),
		GravityLevel:  g.econ.GravityLevel(),
		CentralRadius: g.econ.CentralRadius(),
		Center:        g.center,
		Width:         g.width,
		Height:        g.height,
		Live:          g.liveCount,
	})
	if res.Rejected {
		if manual {
			ev := telemetry.NewSpawnRejectedEvent(g.tick, res.Requested)
			g.collector.Record(ev)
			g.events = append(g.events, ev)
		}
		return false
	}

	g.liveCount += res.Spawned
	g.cooldown.TryStart(g.now, g.econ.SpawnCooldown())
	g.collector.Record(telemetry.NewSpawnEvent(g.tick, res.Spawned))
	return true
}

// Purchase attempts to buy the next level of a track.
// A rejected purchase changes nothing and queues a denial event.
func (g *Game) Purchase(t economy.Track) economy.PurchaseResult {
	res := g.econ.Purchase(t)

	var ev telemetry.Event
	if res.Accepted {
		ev = telemetry.NewPurchaseEvent(g.tick, res)
		slog.Debug("purchase", "track", t.String(), "level", res.Level, "cost", res.Cost)
	} else {
		ev = telemetry.NewPurchaseDeniedEvent(g.tick, res)
		g.events = append(g.events, ev)
		slog.Debug("purchase denied", "track", t.String(), "reason", res.Reason.String(), "cost", res.Cost)
	}
	g.collector.Record(ev)

	if err := g.outputManager.WritePurchase(ev); err != nil {
		slog.Error("failed to write purchase", "error", err)
	}
	return res
}

// ToggleAutoPlay flips auto-play and returns the new state.
// Enabling it while idle spawns immediately.
func (g *Game) ToggleAutoPlay() bool {
	g.autoPlay = !g.autoPlay
	if g.autoPlay {
		g.requestSpawn(false)
	}
	return g.autoPlay
}

// AutoPlay reports whether auto-play is enabled.
func (g *Game) AutoPlay() bool {
	return g.autoPlay
}

// OnViewportResize recenters the gravitational center and rescales the spawn band.
// Non-positive sizes are ignored.
func (g *Game) OnViewportResize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
	g.center = r2.Vec{X: width / 2, Y: height / 2}
	g.merge.Resize(width, height)
}

// DrainEvents returns the rejection and denial events queued since the last call.
func (g *Game) DrainEvents() []telemetry.Event {
	if len(g.events) == 0 {
		return nil
	}
	evs := g.events
	g.events = nil
	return evs
}
