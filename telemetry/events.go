// Package telemetry provides event recording, window statistics, and CSV output.
package telemetry

import "github.com/pthm-cable/accretion/economy"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventSpawnRejected
	EventAbsorb
	EventMerge
	EventPurchase
	EventPurchaseDenied
)

func (t EventType) String() string {
	switch t {
	case EventSpawn:
		return "spawn"
	case EventSpawnRejected:
		return "spawn_rejected"
	case EventAbsorb:
		return "absorb"
	case EventMerge:
		return "merge"
	case EventPurchase:
		return "purchase"
	case EventPurchaseDenied:
		return "purchase_denied"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Tick int32

	// Optional fields depending on event type
	Track  economy.Track  // purchase events
	Reason economy.Reason // purchase denials
	Count  int            // particles spawned, absorbed, or merged
	Amount float64        // mass absorbed or cost paid
}

// NewSpawnEvent creates a spawn event.
func NewSpawnEvent(tick int32, spawned int) Event {
	return Event{Type: EventSpawn, Tick: tick, Count: spawned}
}

// NewSpawnRejectedEvent creates an event for a spawn refused by the particle ceiling.
func NewSpawnRejectedEvent(tick int32, requested int) Event {
	return Event{Type: EventSpawnRejected, Tick: tick, Count: requested}
}

// NewAbsorbEvent creates an absorption event for one tick.
func NewAbsorbEvent(tick int32, absorbed int, mass float64) Event {
	return Event{Type: EventAbsorb, Tick: tick, Count: absorbed, Amount: mass}
}

// NewMergeEvent creates a merge event for one tick.
func NewMergeEvent(tick int32, merges int) Event {
	return Event{Type: EventMerge, Tick: tick, Count: merges}
}

// NewPurchaseEvent creates an accepted purchase event.
func NewPurchaseEvent(tick int32, res economy.PurchaseResult) Event {
	return Event{Type: EventPurchase, Tick: tick, Track: res.Track, Reason: res.Reason, Count: res.Level, Amount: float64(res.Cost)}
}

// NewPurchaseDeniedEvent creates the denial signal for a rejected purchase.
func NewPurchaseDeniedEvent(tick int32, res economy.PurchaseResult) Event {
	return Event{Type: EventPurchaseDenied, Tick: tick, Track: res.Track, Reason: res.Reason, Count: res.Level, Amount: float64(res.Cost)}
}
