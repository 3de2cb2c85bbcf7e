package economy

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/accretion/config"
)

func newTestEconomy(t *testing.T) *Economy {
	t.Helper()
	return New(config.Default())
}

func TestCostStrictlyIncreasing(t *testing.T) {
	cfg := config.Default()
	specs := []TrackSpec{
		specFromConfig(cfg.Economy.ClickYield),
		specFromConfig(cfg.Economy.ParticleMass),
		specFromConfig(cfg.Economy.SpawnSpeed),
		{Base: 1, Growth: 2, Cap: 40},  // smallest valid base*(growth-1)
		{Base: 2, Growth: 1.5, Cap: 60}, // floor-sensitive curve
	}

	for _, spec := range specs {
		for level := 1; level < spec.Cap; level++ {
			a, b := Cost(spec, level), Cost(spec, level+1)
			if a >= b {
				t.Fatalf("Cost(%+v, %d) = %d, Cost(.., %d) = %d; want strictly increasing", spec, level, a, level+1, b)
			}
			if again := Cost(spec, level); again != a {
				t.Fatalf("Cost not deterministic at level %d: %d then %d", level, a, again)
			}
		}
	}
}

func TestCostValues(t *testing.T) {
	spec := TrackSpec{Base: 10, Growth: 1.5, Cap: 10}
	tests := []struct {
		level int
		want  int64
	}{
		{1, 10},
		{2, 15},
		{3, 22}, // 22.5 floored
		{4, 33}, // 33.75 floored
	}
	for _, tt := range tests {
		if got := Cost(spec, tt.level); got != tt.want {
			t.Errorf("Cost(level=%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestCostSaturatesInsteadOfWrapping(t *testing.T) {
	spec := TrackSpec{Base: 10, Growth: 2, Cap: 80}
	prev := Cost(spec, 1)
	for level := 2; level <= spec.Cap; level++ {
		c := Cost(spec, level)
		if c < prev {
			t.Fatalf("Cost(%d) = %d < Cost(%d) = %d", level, c, level-1, prev)
		}
		prev = c
	}
	if got := Cost(spec, 70); got != math.MaxInt64 {
		t.Errorf("Cost(70) = %d, want saturation at MaxInt64", got)
	}

	cfg := config.Default()
	cfg.Economy.ClickYield = config.TrackConfig{Base: spec.Base, Growth: spec.Growth, Cap: spec.Cap}
	e := New(cfg)
	e.SetMass(0)
	e.SetLevel(ClickYield, 62)
	res := e.Purchase(ClickYield)
	if res.Accepted {
		t.Errorf("purchase at level 62 with zero mass accepted: %+v", res)
	}
	if e.Mass() != 0 || e.Level(ClickYield) != 62 {
		t.Errorf("rejected purchase changed state: mass %v level %d", e.Mass(), e.Level(ClickYield))
	}
}

func TestPurchaseExactBoundary(t *testing.T) {
	e := newTestEconomy(t)
	cost, maxed := e.NextCost(ClickYield)
	if maxed {
		t.Fatal("fresh track should not be maxed")
	}

	// One unit below cost fails and changes nothing
	e.SetMass(float64(cost) - 1)
	radiusBefore := e.CentralRadius()
	res := e.Purchase(ClickYield)
	if res.Accepted {
		t.Fatal("purchase below cost should be rejected")
	}
	if res.Reason != ReasonInsufficientMass {
		t.Errorf("reason = %v, want insufficient_mass", res.Reason)
	}
	if e.Mass() != float64(cost)-1 || e.Level(ClickYield) != 1 || e.CentralRadius() != radiusBefore {
		t.Error("rejected purchase mutated state")
	}

	// Exactly at cost succeeds and lands on zero
	e.SetMass(float64(cost))
	res = e.Purchase(ClickYield)
	if !res.Accepted {
		t.Fatalf("purchase at exact cost rejected: %v", res.Reason)
	}
	if e.Mass() != 0 {
		t.Errorf("mass after exact purchase = %v, want 0", e.Mass())
	}
	if e.Level(ClickYield) != 2 || res.Level != 2 {
		t.Errorf("level = %d (result %d), want 2", e.Level(ClickYield), res.Level)
	}
	if e.CentralRadius() != e.body.BaseRadius {
		t.Errorf("radius = %v, want base radius %v at zero mass", e.CentralRadius(), e.body.BaseRadius)
	}
}

func TestPurchaseNeverExceedsCap(t *testing.T) {
	e := newTestEconomy(t)
	spec := e.Spec(SpawnSpeed)

	for i := 0; i < spec.Cap*3; i++ {
		e.SetMass(e.MaxMass())
		e.Purchase(SpawnSpeed)
		if e.Level(SpawnSpeed) > spec.Cap {
			t.Fatalf("level %d exceeds cap %d", e.Level(SpawnSpeed), spec.Cap)
		}
	}

	if e.Level(SpawnSpeed) != spec.Cap {
		t.Errorf("level = %d, want cap %d", e.Level(SpawnSpeed), spec.Cap)
	}

	massBefore := e.Mass()
	res := e.Purchase(SpawnSpeed)
	if res.Accepted || res.Reason != ReasonMaxed {
		t.Errorf("purchase at cap = %+v, want rejected maxed", res)
	}
	if e.Mass() != massBefore {
		t.Error("maxed purchase changed mass")
	}
	if _, maxed := e.NextCost(SpawnSpeed); !maxed {
		t.Error("NextCost should report maxed at cap")
	}
}

func TestPurchaseNeverNegative(t *testing.T) {
	e := newTestEconomy(t)
	e.SetMass(500)
	for i := 0; i < 200; i++ {
		for _, tr := range Tracks() {
			e.Purchase(tr)
			if e.Mass() < 0 {
				t.Fatalf("mass went negative: %v", e.Mass())
			}
		}
	}
}

func TestAddMassClamps(t *testing.T) {
	e := newTestEconomy(t)
	e.SetMass(e.MaxMass() - 3)

	added := e.AddMass(10)
	if added != 3 {
		t.Errorf("added = %v, want 3", added)
	}
	if e.Mass() != e.MaxMass() {
		t.Errorf("mass = %v, want MaxMass %v", e.Mass(), e.MaxMass())
	}
	if e.AddMass(5) != 0 {
		t.Error("adding at MaxMass should add nothing")
	}
}

func TestCentralRadiusMonotonic(t *testing.T) {
	e := newTestEconomy(t)
	prev := e.CentralRadius()
	for m := 0.0; m <= e.MaxMass(); m += e.MaxMass() / 50 {
		e.SetMass(m)
		r := e.CentralRadius()
		if r < prev {
			t.Fatalf("radius decreased at mass %v: %v < %v", m, r, prev)
		}
		prev = r
	}
}

func TestGravityLevelMonotonicAndSaturates(t *testing.T) {
	const maxLevel = 9.5

	if got := GravityLevel(0, maxLevel); got != 1 {
		t.Errorf("GravityLevel(0) = %v, want 1", got)
	}
	if got := GravityLevel(1, maxLevel); got != maxLevel {
		t.Errorf("GravityLevel(1) = %v, want %v", got, maxLevel)
	}
	if got := GravityLevel(3, maxLevel); got != maxLevel {
		t.Errorf("GravityLevel beyond full = %v, want saturated %v", got, maxLevel)
	}

	prev := GravityLevel(0, maxLevel)
	for i := 1; i <= 1000; i++ {
		g := GravityLevel(float64(i)/1000, maxLevel)
		if g < prev {
			t.Fatalf("gravity level decreased at %d/1000: %v < %v", i, g, prev)
		}
		// Continuity: no jumps larger than the sqrt slope allows
		if g-prev > 0.5 {
			t.Fatalf("gravity level jumped %v at %d/1000", g-prev, i)
		}
		prev = g
	}

	e := newTestEconomy(t)
	e.SetMass(e.MaxMass())
	if math.Abs(e.GravityLevel()-e.body.MaxGravityLevel) > 1e-9 {
		t.Errorf("economy gravity at MaxMass = %v, want %v", e.GravityLevel(), e.body.MaxGravityLevel)
	}
}

func TestEffects(t *testing.T) {
	e := newTestEconomy(t)

	if e.ParticlesPerSpawn() != e.effects.CountPerLevel {
		t.Errorf("particles per spawn at level 1 = %d", e.ParticlesPerSpawn())
	}
	if e.ParticleMass() != e.effects.BaseMass {
		t.Errorf("particle mass at level 1 = %v, want %v", e.ParticleMass(), e.effects.BaseMass)
	}
	if e.SpawnCooldown() != e.effects.BaseCooldown {
		t.Errorf("cooldown at level 1 = %v, want %v", e.SpawnCooldown(), e.effects.BaseCooldown)
	}

	e.SetLevel(ClickYield, 4)
	if e.ParticlesPerSpawn() != 4*e.effects.CountPerLevel {
		t.Errorf("particles per spawn at level 4 = %d", e.ParticlesPerSpawn())
	}

	prev := e.SpawnCooldown()
	for level := 2; level <= e.Spec(SpawnSpeed).Cap; level++ {
		e.SetLevel(SpawnSpeed, level)
		d := e.SpawnCooldown()
		if d > prev {
			t.Fatalf("cooldown grew at level %d: %v > %v", level, d, prev)
		}
		if d < e.effects.MinCooldown || d <= 0 {
			t.Fatalf("cooldown %v below floor %v", d, e.effects.MinCooldown)
		}
		prev = d
	}

	e.effects.CooldownStep = time.Hour
	if e.SpawnCooldown() != e.effects.MinCooldown {
		t.Errorf("cooldown not clamped to min: %v", e.SpawnCooldown())
	}
}

func TestParseTrack(t *testing.T) {
	for _, tr := range Tracks() {
		got, err := ParseTrack(tr.String())
		if err != nil || got != tr {
			t.Errorf("ParseTrack(%q) = %v, %v", tr.String(), got, err)
		}
	}
	if _, err := ParseTrack("gravity"); err == nil {
		t.Error("expected error for unknown track")
	}
}
