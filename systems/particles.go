// Package systems contains ECS systems for the simulation.
package systems

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/accretion/components"
)

// ParticleFilter matches every particle entity.
type ParticleFilter = ecs.Filter4[components.Position, components.Velocity, components.Body, components.Particle]

// ParticleMapper creates particle entities.
type ParticleMapper = ecs.Map4[components.Position, components.Velocity, components.Body, components.Particle]

// slot is a gathered view of one particle's components.
// Pointers stay valid until the next structural change of the world.
type slot struct {
	entity ecs.Entity
	pos    *components.Position
	vel    *components.Velocity
	body   *components.Body
	part   *components.Particle
}

// gatherLive appends every live particle to dst in ascending creation order.
func gatherLive(dst []slot, filter *ParticleFilter) []slot {
	dst = dst[:0]
	query := filter.Query()
	for query.Next() {
		pos, vel, body, part := query.Get()
		if !part.Alive {
			continue
		}
		dst = append(dst, slot{entity: query.Entity(), pos: pos, vel: vel, body: body, part: part})
	}
	slices.SortFunc(dst, func(a, b slot) int {
		return cmp.Compare(a.part.Seq, b.part.Seq)
	})
	return dst
}

// CleanupSystem removes particles marked dead during the tick.
type CleanupSystem struct {
	world  *ecs.World
	filter *ParticleFilter
	dead   []ecs.Entity
}

// NewCleanupSystem creates a new cleanup system.
func NewCleanupSystem(w *ecs.World) *CleanupSystem {
	return &CleanupSystem{
		world:  w,
		filter: ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Particle](w),
	}
}

// Update removes dead particles and returns how many were removed.
func (s *CleanupSystem) Update() int {
	// First pass: collect dead entities (must complete before modifying)
	s.dead = s.dead[:0]
	query := s.filter.Query()
	for query.Next() {
		_, _, _, part := query.Get()
		if !part.Alive {
			s.dead = append(s.dead, query.Entity())
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range s.dead {
		s.world.RemoveEntity(e)
	}
	return len(s.dead)
}
