// Package hud holds presentation state and labels shared by the frontends.
package hud

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/accretion/economy"
	"github.com/pthm-cable/accretion/game"
)

// TrackTitle returns the display name of a track.
func TrackTitle(t economy.Track) string {
	switch t {
	case economy.ClickYield:
		return "Click Yield"
	case economy.ParticleMass:
		return "Particle Mass"
	case economy.SpawnSpeed:
		return "Spawn Speed"
	}
	return strings.ReplaceAll(t.String(), "_", " ")
}

// TrackLabel renders a track button label with level and next cost.
func TrackLabel(tv game.TrackView) string {
	if tv.Maxed {
		return fmt.Sprintf("%s  Lv %d  MAX", TrackTitle(tv.Track), tv.Level)
	}
	return fmt.Sprintf("%s  Lv %d/%d  (%d)", TrackTitle(tv.Track), tv.Level, tv.Cap, tv.NextCost)
}

// SpawnLabel renders the spawn button label.
func SpawnLabel(s *game.Snapshot) string {
	if s.CooldownActive {
		return fmt.Sprintf("Spawn (%.1fs)", s.CooldownRemaining.Seconds())
	}
	return "Spawn"
}

// AutoPlayLabel renders the auto-play toggle label.
func AutoPlayLabel(on bool) string {
	if on {
		return "Auto-play: ON"
	}
	return "Auto-play: OFF"
}

// FormatMass renders a mass with a metric suffix.
func FormatMass(m float64) string {
	switch {
	case m >= 1e9:
		return fmt.Sprintf("%.2fG", m/1e9)
	case m >= 1e6:
		return fmt.Sprintf("%.2fM", m/1e6)
	case m >= 1e3:
		return fmt.Sprintf("%.2fk", m/1e3)
	}
	return fmt.Sprintf("%.0f", m)
}
