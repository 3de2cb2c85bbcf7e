package components

import (
	"math"
	"testing"

	"github.com/pthm-cable/accretion/config"
)

func TestSeedHSVStable(t *testing.T) {
	for _, seed := range []uint32{0, 1, 359, 360, 0xdeadbeef, 0xffffffff} {
		h, s, v := SeedHSV(seed)
		h2, s2, v2 := SeedHSV(seed)
		if h != h2 || s != s2 || v != v2 {
			t.Errorf("SeedHSV(%#x) not deterministic", seed)
		}
		if h < 0 || h >= 360 {
			t.Errorf("SeedHSV(%#x) hue = %v out of range", seed, h)
		}
		if s < 0.55 || s > 0.95 || v < 0.8 || v > 1 {
			t.Errorf("SeedHSV(%#x) = (%v, %v, %v) outside bright band", seed, h, s, v)
		}
	}
}

func TestRadiusFor(t *testing.T) {
	cfg := config.ParticleConfig{BaseRadius: 2, RadiusPerSqrtMass: 0.5}
	tests := []struct {
		mass, want float64
	}{
		{0, 2},
		{4, 3},
		{100, 7},
		{-5, 2},
	}
	for _, tt := range tests {
		if got := RadiusFor(cfg, tt.mass); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("RadiusFor(%v) = %v, want %v", tt.mass, got, tt.want)
		}
	}

	b := NewBody(cfg, 16)
	if b.Mass != 16 || b.Radius != 4 {
		t.Errorf("NewBody(16) = %+v, want mass 16 radius 4", b)
	}
}
