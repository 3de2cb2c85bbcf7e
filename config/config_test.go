package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Spawn.CeilingPolicy != CeilingCap {
		t.Errorf("ceiling policy = %q, want %q", cfg.Spawn.CeilingPolicy, CeilingCap)
	}
	if cfg.Cooldown.Base != time.Second {
		t.Errorf("cooldown.base = %v, want 1s", cfg.Cooldown.Base)
	}
	if cfg.Cooldown.Min != 150*time.Millisecond {
		t.Errorf("cooldown.min = %v, want 150ms", cfg.Cooldown.Min)
	}
	if cfg.Derived.TickDuration <= 0 {
		t.Error("expected derived tick duration to be positive")
	}
	if cfg.Physics.DragCeiling >= 1 {
		t.Errorf("drag ceiling %v must stay below 1", cfg.Physics.DragCeiling)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "spawn:\n  max_particles: 40\n  ceiling_policy: reject\ncooldown:\n  base: 2s\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.Spawn.MaxParticles != 40 {
		t.Errorf("max_particles = %d, want 40", cfg.Spawn.MaxParticles)
	}
	if cfg.Spawn.CeilingPolicy != CeilingReject {
		t.Errorf("ceiling policy = %q, want reject", cfg.Spawn.CeilingPolicy)
	}
	if cfg.Cooldown.Base != 2*time.Second {
		t.Errorf("cooldown.base = %v, want 2s", cfg.Cooldown.Base)
	}
	// Untouched fields keep their defaults
	if cfg.Spawn.OrbitFraction != 0.8 {
		t.Errorf("orbit_fraction = %v, want default 0.8", cfg.Spawn.OrbitFraction)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"anti damping", func(c *Config) { c.Physics.DragCeiling = 1.0 }, "drag_ceiling"},
		{"floor above ceiling", func(c *Config) { c.Physics.DragFloor = 0.9999 }, "drag_floor"},
		{"flat cost curve", func(c *Config) { c.Economy.ClickYield.Growth = 1.0 }, "click_yield"},
		{"collapsing floor", func(c *Config) { c.Economy.SpawnSpeed.Base = 1; c.Economy.SpawnSpeed.Growth = 1.5 }, "spawn_speed"},
		{"orbital spawn", func(c *Config) { c.Spawn.OrbitFraction = 1.0 }, "orbit_fraction"},
		{"unknown policy", func(c *Config) { c.Spawn.CeilingPolicy = "queue" }, "ceiling_policy"},
		{"zero cooldown", func(c *Config) { c.Cooldown.Min = 0 }, "cooldown.min"},
		{"zero cap", func(c *Config) { c.Economy.ParticleMass.Cap = 0 }, "particle_mass.cap"},
		{"cost overflows int64", func(c *Config) {
			c.Economy.ClickYield = TrackConfig{Base: 10, Growth: 2, Cap: 80}
			c.Center.MaxMass = 1e30
		}, "click_yield: level 79"},
		{"top level unaffordable", func(c *Config) { c.Economy.SpawnSpeed.Cap = 40 }, "spawn_speed: level 39"},
		{"negative mass per level", func(c *Config) { c.Economy.MassPerLevel = -0.5 }, "mass_per_level"},
		{"negative cooldown step", func(c *Config) { c.Cooldown.Step = -time.Millisecond }, "cooldown.step"},
		{"reject policy outgrows ceiling", func(c *Config) {
			c.Spawn.CeilingPolicy = CeilingReject
			c.Spawn.MaxParticles = 37
			c.Economy.CountPerLevel = 5
		}, "spawn.max_particles 37"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAcceptsReachableCosts(t *testing.T) {
	cfg := Default()
	cfg.Economy.ClickYield = TrackConfig{Base: 10, Growth: 2, Cap: 17} // level 16 costs 327680
	cfg.Spawn.CeilingPolicy = CeilingReject
	cfg.Spawn.MaxParticles = cfg.Economy.CountPerLevel * cfg.Economy.ClickYield.Cap
	cfg.Economy.MassPerLevel = 0
	cfg.Cooldown.Step = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateErrorOrderStable(t *testing.T) {
	cfg := Default()
	cfg.Economy.ClickYield.Cap = 0
	cfg.Economy.ParticleMass.Cap = 0
	cfg.Economy.SpawnSpeed.Cap = 0

	first := cfg.Validate().Error()
	for i := 0; i < 20; i++ {
		if got := cfg.Validate().Error(); got != first {
			t.Fatalf("error text changed between runs:\n%s\n---\n%s", first, got)
		}
	}
	click := strings.Index(first, "click_yield")
	mass := strings.Index(first, "particle_mass")
	speed := strings.Index(first, "spawn_speed")
	if !(click < mass && mass < speed) {
		t.Errorf("tracks reported out of order: %s", first)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Spawn.MaxParticles = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Spawn.MaxParticles != 77 {
		t.Errorf("max_particles = %d, want 77", loaded.Spawn.MaxParticles)
	}
	if loaded.Cooldown.Step != cfg.Cooldown.Step {
		t.Errorf("cooldown.step = %v, want %v", loaded.Cooldown.Step, cfg.Cooldown.Step)
	}
}
