package game

import (
	"context"
	"time"

	"github.com/pthm-cable/accretion/economy"
)

// Command is a request from a frontend, applied between frames.
type Command interface {
	apply(g *Game)
}

// CmdSpawn requests a spawn.
type CmdSpawn struct{}

// CmdPurchase requests the next level of a track.
type CmdPurchase struct {
	Track economy.Track
}

// CmdToggleAutoPlay flips auto-play.
type CmdToggleAutoPlay struct{}

// CmdResize reports a new viewport size.
type CmdResize struct {
	W, H float64
}

func (CmdSpawn) apply(g *Game)          { g.RequestSpawn() }
func (c CmdPurchase) apply(g *Game)     { g.Purchase(c.Track) }
func (CmdToggleAutoPlay) apply(g *Game) { g.ToggleAutoPlay() }
func (c CmdResize) apply(g *Game)       { g.OnViewportResize(c.W, c.H) }

// Surface is a presentation target driven by Run.
type Surface interface {
	// NextFrame blocks until the next frame is due and returns the time
	// elapsed since the previous one. ok=false stops the loop.
	NextFrame() (elapsed time.Duration, ok bool)
	// Present shows a frame.
	Present(s Snapshot)
}

// commandQueueSize bounds pending commands; Submit drops beyond it.
const commandQueueSize = 256

// Driver is the single writer of a Game. Commands may be submitted from any
// goroutine and are applied at the start of the next frame.
type Driver struct {
	game     *Game
	commands chan Command
}

// NewDriver wraps a game.
func NewDriver(g *Game) *Driver {
	return &Driver{
		game:     g,
		commands: make(chan Command, commandQueueSize),
	}
}

// Game returns the driven game. Only call its methods from the driving goroutine.
func (d *Driver) Game() *Game {
	return d.game
}

// Submit queues a command. Returns false if the queue is full.
func (d *Driver) Submit(cmd Command) bool {
	select {
	case d.commands <- cmd:
		return true
	default:
		return false
	}
}

// Frame applies the commands queued before the call, then advances the game by elapsed.
// The returned snapshot carries the events drained during the frame.
func (d *Driver) Frame(elapsed time.Duration) Snapshot {
	for n := len(d.commands); n > 0; n-- {
		cmd := <-d.commands
		cmd.apply(d.game)
	}
	d.game.perfCollector.RecordFrame(elapsed)
	d.game.Update(elapsed)
	snap := d.game.Snapshot()
	snap.Events = d.game.DrainEvents()
	return snap
}

// Run drives frames until the surface stops or ctx is done.
func (d *Driver) Run(ctx context.Context, surface Surface) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		elapsed, ok := surface.NextFrame()
		if !ok {
			return nil
		}
		surface.Present(d.Frame(elapsed))
	}
}
