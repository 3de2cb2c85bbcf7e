package hud

import (
	"time"

	"github.com/pthm-cable/accretion/economy"
	"github.com/pthm-cable/accretion/game"
	"github.com/pthm-cable/accretion/telemetry"
)

// FlashDuration is how long a denial signal stays visible.
const FlashDuration = 400 * time.Millisecond

// DenialFlash holds the transient denial signals for the upgrade buttons and
// the spawn control. It is presentation state only.
type DenialFlash struct {
	tracks [economy.NumTracks]time.Duration
	spawn  time.Duration
	active [economy.NumTracks + 1]bool
}

// Apply starts flashes for the drained events at clock time now.
func (f *DenialFlash) Apply(events []telemetry.Event, now time.Duration) {
	for _, ev := range events {
		switch ev.Type {
		case telemetry.EventPurchaseDenied:
			if int(ev.Track) < economy.NumTracks {
				f.tracks[ev.Track] = now
				f.active[ev.Track] = true
			}
		case telemetry.EventSpawnRejected:
			f.spawn = now
			f.active[economy.NumTracks] = true
		}
	}
}

// Track returns the flash strength in [0,1] for a track button.
func (f *DenialFlash) Track(t economy.Track, now time.Duration) float64 {
	if int(t) >= economy.NumTracks || !f.active[t] {
		return 0
	}
	return fade(f.tracks[t], now)
}

// Spawn returns the flash strength in [0,1] for the spawn control.
func (f *DenialFlash) Spawn(now time.Duration) float64 {
	if !f.active[economy.NumTracks] {
		return 0
	}
	return fade(f.spawn, now)
}

// Update applies the events carried by a frame snapshot.
func (f *DenialFlash) Update(s *game.Snapshot) {
	f.Apply(s.Events, s.Clock)
}

// fade decays linearly from 1 at start to 0 after FlashDuration.
func fade(start, now time.Duration) float64 {
	age := now - start
	if age < 0 || age >= FlashDuration {
		return 0
	}
	return 1 - float64(age)/float64(FlashDuration)
}
