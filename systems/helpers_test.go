package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/accretion/components"
	"github.com/pthm-cable/accretion/config"
)

type testWorld struct {
	world  *ecs.World
	cfg    *config.Config
	mapper *ParticleMapper
	filter *ParticleFilter
	seq    uint64
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	w := ecs.NewWorld()
	return &testWorld{
		world:  w,
		cfg:    config.Default(),
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Particle](w),
		filter: ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Particle](w),
	}
}

// add creates a live particle and returns its entity.
func (tw *testWorld) add(x, y, vx, vy, mass float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: vx, Y: vy}
	body := components.NewBody(tw.cfg.Particle, mass)
	part := components.Particle{Seq: tw.seq, Alive: true}
	tw.seq++
	return tw.mapper.NewEntity(&pos, &vel, &body, &part)
}

func (tw *testWorld) get(e ecs.Entity) (*components.Position, *components.Velocity, *components.Body, *components.Particle) {
	return tw.mapper.Get(e)
}

func (tw *testWorld) count() (alive, total int) {
	query := tw.filter.Query()
	for query.Next() {
		_, _, _, part := query.Get()
		total++
		if part.Alive {
			alive++
		}
	}
	return alive, total
}

// fakeSink records absorbed mass without an economy.
type fakeSink struct {
	radius float64
	mass   float64
	calls  int
}

func (s *fakeSink) AddMass(m float64) float64 {
	s.calls++
	s.mass += m
	return m
}

func (s *fakeSink) CentralRadius() float64 { return s.radius }
