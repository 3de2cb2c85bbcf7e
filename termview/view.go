// Package termview presents the game in a terminal with tcell.
package termview

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/accretion/camera"
	"github.com/pthm-cable/accretion/game"
	"github.com/pthm-cable/accretion/hud"
)

// Options configures a terminal view.
type Options struct {
	FPS int
	// CellWidth is the world width of one column; rows span twice as much.
	CellWidth float64
}

// DefaultOptions returns the standard terminal settings.
func DefaultOptions() Options {
	return Options{FPS: 30, CellWidth: 10}
}

// View is a game.Surface drawing into a tcell screen. Input is read on its own
// goroutine and submitted to the driver; drawing happens on the driving goroutine.
type View struct {
	screen tcell.Screen
	opts   Options
	cam    *camera.Camera
	flash  hud.DenialFlash

	ticker *time.Ticker
	last   time.Time

	quit     chan struct{}
	quitOnce sync.Once
}

// New wraps an initialized screen.
func New(screen tcell.Screen, opts Options) *View {
	def := DefaultOptions()
	if opts.FPS <= 0 {
		opts.FPS = def.FPS
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = def.CellWidth
	}

	cols, rows := screen.Size()
	w, h := PlayArea(cols, rows, opts.CellWidth)
	return &View{
		screen: screen,
		opts:   opts,
		cam:    NewCamera(cols, rows, w, h),
		ticker: time.NewTicker(time.Second / time.Duration(opts.FPS)),
		last:   time.Now(),
		quit:   make(chan struct{}),
	}
}

// PlayArea returns the world size matching the current screen.
func (v *View) PlayArea() (w, h float64) {
	cols, rows := v.screen.Size()
	return PlayArea(cols, rows, v.opts.CellWidth)
}

// Start forwards input to d until the screen is finalized.
func (v *View) Start(d *game.Driver) {
	go v.pollEvents(d)
}

// Stop ends the frame loop; NextFrame reports ok=false afterwards.
func (v *View) Stop() {
	v.quitOnce.Do(func() { close(v.quit) })
}

// Close stops the view and restores the terminal.
func (v *View) Close() {
	v.Stop()
	v.ticker.Stop()
	v.screen.Fini()
}

// NextFrame waits for the next tick and returns the time since the previous frame.
func (v *View) NextFrame() (time.Duration, bool) {
	select {
	case <-v.quit:
		return 0, false
	default:
	}

	select {
	case <-v.quit:
		return 0, false
	case now := <-v.ticker.C:
		elapsed := now.Sub(v.last)
		v.last = now
		return elapsed, true
	}
}

// Present draws a frame and shows it.
func (v *View) Present(s game.Snapshot) {
	v.flash.Update(&s)
	Draw(v.screen, v.cam, &s, &v.flash)
	v.screen.Show()
}

func (v *View) pollEvents(d *game.Driver) {
	for {
		// nil once the screen is finalized
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		v.handleEvent(d, ev)
	}
}

func (v *View) handleEvent(d *game.Driver, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, quit := KeyCommand(ev)
		if quit {
			v.Stop()
			return
		}
		if cmd != nil && !d.Submit(cmd) {
			slog.Warn("command queue full, dropping input")
		}

	case *tcell.EventResize:
		v.screen.Sync()
		cols, rows := ev.Size()
		w, h := PlayArea(cols, rows, v.opts.CellWidth)
		d.Submit(game.CmdResize{W: w, H: h})
	}
}
