package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/accretion/config"
	"github.com/pthm-cable/accretion/economy"
	"github.com/pthm-cable/accretion/game"
)

// Evaluator runs headless auto-play sessions and scores how close the time to
// reach a target mass lands to a goal.
type Evaluator struct {
	params     *ParamVector
	base       *config.Config
	seeds      []int64
	targetMass float64
	goalSec    float64
	maxSec     float64
	buy        bool

	mu          sync.Mutex
	lastMeanSec float64
	lastReached int
}

// NewEvaluator creates an evaluator. With buy set every session spends its mass
// greedily on the cheapest affordable upgrade.
func NewEvaluator(params *ParamVector, base *config.Config, seeds []int64, targetMass, goalSec, maxSec float64, buy bool) *Evaluator {
	return &Evaluator{
		params:     params,
		base:       base,
		seeds:      seeds,
		targetMass: targetMass,
		goalSec:    goalSec,
		maxSec:     maxSec,
		buy:        buy,
	}
}

// runResult holds the outcome of one session.
type runResult struct {
	sec       float64 // Sim time when the target was reached, or the session length
	reached   bool
	purchases int
}

// Last returns the mean session time and the number of seeds that reached the
// target in the most recent Evaluate call.
func (e *Evaluator) Last() (meanSec float64, reached int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastMeanSec, e.lastReached
}

// Evaluate returns the mean pacing error over all seeds (lower = better).
func (e *Evaluator) Evaluate(x []float64) float64 {
	cfg := e.configFor(x)

	results := make([]runResult, len(e.seeds))
	var wg sync.WaitGroup
	for i, seed := range e.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = e.runSession(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total, totalSec float64
	reached := 0
	for _, r := range results {
		sec := r.sec
		if r.reached {
			reached++
		} else {
			// Any session that reaches the target beats one that never does
			sec = 2 * e.maxSec
		}
		total += PacingError(sec, e.goalSec)
		totalSec += r.sec
	}

	n := float64(len(results))
	e.mu.Lock()
	e.lastMeanSec = totalSec / n
	e.lastReached = reached
	e.mu.Unlock()

	return total / n
}

// configFor returns a copy of the base config with x applied.
func (e *Evaluator) configFor(x []float64) *config.Config {
	cfg := *e.base
	e.params.ApplyToConfig(&cfg, x)
	return &cfg
}

// runSession plays one auto-play session until the target mass or maxSec.
func (e *Evaluator) runSession(cfg *config.Config, seed int64) runResult {
	g, err := game.NewGameWithOptions(game.Options{
		Config:   cfg,
		Seed:     seed,
		Headless: true,
		AutoPlay: true,
	})
	if err != nil {
		return runResult{sec: e.maxSec}
	}
	defer g.Unload()

	dt := cfg.Physics.DT
	maxTicks := int32(e.maxSec / dt)
	result := runResult{}
	for g.Tick() < maxTicks {
		g.UpdateHeadless()
		if e.buy {
			result.purchases += BuyCheapest(g)
		}
		if g.Economy().Mass() >= e.targetMass {
			result.sec = float64(g.Tick()) * dt
			result.reached = true
			return result
		}
	}
	result.sec = float64(g.Tick()) * dt
	return result
}

// BuyCheapest repeatedly buys the cheapest affordable track and returns the
// number of levels bought.
func BuyCheapest(g *game.Game) int {
	econ := g.Economy()
	bought := 0
	for {
		best, bestCost := economy.Track(0), int64(math.MaxInt64)
		for _, t := range economy.Tracks() {
			cost, maxed := econ.NextCost(t)
			if !maxed && cost < bestCost {
				best, bestCost = t, cost
			}
		}
		if bestCost == math.MaxInt64 || float64(bestCost) > econ.Mass() {
			return bought
		}
		if !g.Purchase(best).Accepted {
			return bought
		}
		bought++
	}
}

// PacingError is the squared relative distance of sec from goalSec.
func PacingError(sec, goalSec float64) float64 {
	d := (sec - goalSec) / goalSec
	return d * d
}
