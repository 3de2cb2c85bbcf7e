package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/accretion/components"
	"github.com/pthm-cable/accretion/config"
)

// speedEpsilon is the momentum magnitude below which the merged direction is undefined.
const speedEpsilon = 1e-9

// MergeVelocity combines two velocities by momentum. When keep > 0 the resulting speed
// is raised to at least keep * the faster input speed. If the momentum cancels out the
// faster particle's heading is used, and the first particle's on a tie.
func MergeVelocity(ma float64, va r2.Vec, mb float64, vb r2.Vec, keep float64) r2.Vec {
	m := ma + mb
	if m <= 0 {
		return r2.Vec{}
	}
	v := r2.Scale(1/m, r2.Add(r2.Scale(ma, va), r2.Scale(mb, vb)))
	if keep <= 0 {
		return v
	}

	sa, sb := r2.Norm(va), r2.Norm(vb)
	faster, fasterSpeed := va, sa
	if sb > sa {
		faster, fasterSpeed = vb, sb
	}
	minSpeed := keep * fasterSpeed

	speed := r2.Norm(v)
	if speed >= minSpeed {
		return v
	}
	if speed > speedEpsilon {
		return r2.Scale(minSpeed/speed, v)
	}
	if fasterSpeed > speedEpsilon {
		return r2.Scale(minSpeed/fasterSpeed, faster)
	}
	return r2.Vec{}
}

// MergeSystem combines overlapping particles after movement.
type MergeSystem struct {
	filter   *ParticleFilter
	particle config.ParticleConfig
	keep     float64
	grid     *SpatialGrid
	slots    []slot
	cands    []int
}

// mergeCellSize is the broad-phase cell edge in world units.
const mergeCellSize = 32.0

// NewMergeSystem creates a new merge system covering a width x height play area.
func NewMergeSystem(w *ecs.World, cfg *config.Config, width, height float64) *MergeSystem {
	return &MergeSystem{
		filter:   ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Particle](w),
		particle: cfg.Particle,
		keep:     cfg.Physics.MergeKeepSpeed,
		grid:     NewSpatialGrid(width, height, mergeCellSize),
	}
}

// Resize adapts the broad-phase grid to a new play area.
func (s *MergeSystem) Resize(width, height float64) {
	s.grid.Resize(width, height)
}

// Update runs the pairwise merge pass and returns the number of merges.
//
// Pairs (i, j) with i < j in creation order are tested in ascending order; when j is
// absorbed into i, i keeps testing later particles with its grown radius, so chains
// A<-B<-C resolve within one pass. Dead particles take no further part in the pass.
// The result matches an all-pairs scan; the grid only prunes distant candidates.
func (s *MergeSystem) Update() int {
	s.slots = gatherLive(s.slots, s.filter)
	if len(s.slots) < 2 {
		return 0
	}

	s.grid.Clear()
	maxRadius := 0.0
	for i, p := range s.slots {
		s.grid.Insert(i, p.pos.Vec())
		maxRadius = max(maxRadius, p.body.Radius)
	}

	merges := 0
	for i := range s.slots {
		a := &s.slots[i]
		if !a.part.Alive {
			continue
		}

		last := i
		for {
			merged := false
			s.cands = s.grid.QueryAfter(s.cands[:0], a.pos.Vec(), a.body.Radius+maxRadius, last)
			for _, j := range s.cands {
				b := &s.slots[j]
				if !b.part.Alive {
					continue
				}
				last = j
				if !overlaps(a, b) {
					continue
				}
				s.merge(a, b)
				merges++
				maxRadius = max(maxRadius, a.body.Radius)
				merged = true
				// Radius grew: re-query for later particles
				break
			}
			if !merged {
				break
			}
		}
	}

	return merges
}

func overlaps(a, b *slot) bool {
	rr := a.body.Radius + b.body.Radius
	return r2.Norm2(r2.Sub(a.pos.Vec(), b.pos.Vec())) < rr*rr
}

// merge folds b into a and marks b dead. a keeps its position and color seed.
func (s *MergeSystem) merge(a, b *slot) {
	v := MergeVelocity(a.body.Mass, a.vel.Vec(), b.body.Mass, b.vel.Vec(), s.keep)
	a.vel.Set(v)
	*a.body = components.NewBody(s.particle, a.body.Mass+b.body.Mass)
	b.part.Alive = false
}
