package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pthm-cable/accretion/economy"
)

// scriptedSurface yields a fixed number of frames of constant length.
type scriptedSurface struct {
	frames    int
	elapsed   time.Duration
	presented []Snapshot
	onFrame   func(i int)
}

func (s *scriptedSurface) NextFrame() (time.Duration, bool) {
	if len(s.presented) >= s.frames {
		return 0, false
	}
	if s.onFrame != nil {
		s.onFrame(len(s.presented))
	}
	return s.elapsed, true
}

func (s *scriptedSurface) Present(snap Snapshot) {
	s.presented = append(s.presented, snap)
}

func TestDriverAppliesCommandsBeforeUpdate(t *testing.T) {
	g := newTestGame(t, nil)
	g.Economy().SetMass(50)
	d := NewDriver(g)

	if !d.Submit(CmdSpawn{}) || !d.Submit(CmdPurchase{Track: economy.ClickYield}) {
		t.Fatal("Submit failed on an empty queue")
	}
	d.Submit(CmdResize{W: 500, H: 400})

	s := d.Frame(16 * time.Millisecond)
	if !s.CooldownActive {
		t.Error("spawn command was not applied")
	}
	if s.Tracks[economy.ClickYield].Level != 2 {
		t.Errorf("ClickYield level = %d, want 2", s.Tracks[economy.ClickYield].Level)
	}
	if s.CenterX != 250 || s.CenterY != 200 {
		t.Errorf("center = (%v, %v), want (250, 200)", s.CenterX, s.CenterY)
	}
	if s.Tick != 0 {
		t.Errorf("Tick = %d, want 0 for a frame shorter than one tick", s.Tick)
	}
}

func TestDriverToggleAutoPlay(t *testing.T) {
	d := NewDriver(newTestGame(t, nil))
	d.Submit(CmdToggleAutoPlay{})
	if s := d.Frame(0); !s.AutoPlay || len(s.Particles) != 1 {
		t.Errorf("auto-play = %v with %d particles, want enabled with one spawn", s.AutoPlay, len(s.Particles))
	}
}

func TestDriverSubmitConcurrent(t *testing.T) {
	g := newTestGame(t, nil)
	g.Economy().SetMass(g.Economy().MaxMass())
	d := NewDriver(g)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				d.Submit(CmdPurchase{Track: economy.SpawnSpeed})
			}
		}()
	}
	wg.Wait()

	s := d.Frame(0)
	want := g.Economy().Spec(economy.SpawnSpeed).Cap
	if got := s.Tracks[economy.SpawnSpeed].Level; got != want {
		t.Errorf("SpawnSpeed level = %d, want cap %d", got, want)
	}
}

func TestDriverSubmitFullQueue(t *testing.T) {
	d := NewDriver(newTestGame(t, nil))
	for i := 0; i < commandQueueSize; i++ {
		if !d.Submit(CmdSpawn{}) {
			t.Fatalf("Submit %d failed before the queue was full", i)
		}
	}
	if d.Submit(CmdSpawn{}) {
		t.Error("Submit should fail on a full queue")
	}
}

func TestDriverRun(t *testing.T) {
	d := NewDriver(newTestGame(t, nil))
	surface := &scriptedSurface{
		frames:  30,
		elapsed: time.Second / 60,
		onFrame: func(i int) {
			if i == 0 {
				d.Submit(CmdSpawn{})
			}
		},
	}

	if err := d.Run(context.Background(), surface); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(surface.presented) != 30 {
		t.Fatalf("presented %d frames, want 30", len(surface.presented))
	}
	last := surface.presented[len(surface.presented)-1]
	if last.Tick < 25 {
		t.Errorf("Tick = %d after 30 frames, want about 30", last.Tick)
	}
	if len(last.Particles) == 0 {
		t.Error("submitted spawn never applied")
	}
}

func TestDriverRunCancelled(t *testing.T) {
	d := NewDriver(newTestGame(t, nil))
	ctx, cancel := context.WithCancel(context.Background())
	surface := &scriptedSurface{
		frames:  1000,
		elapsed: time.Millisecond,
		onFrame: func(i int) {
			if i == 5 {
				cancel()
			}
		},
	}

	err := d.Run(ctx, surface)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if len(surface.presented) != 6 {
		t.Errorf("presented %d frames, want 6", len(surface.presented))
	}
}

func TestDriverFrameCarriesEvents(t *testing.T) {
	d := NewDriver(newTestGame(t, nil))
	d.Submit(CmdPurchase{Track: economy.ClickYield})

	s := d.Frame(0)
	if len(s.Events) != 1 || s.Events[0].Track != economy.ClickYield {
		t.Fatalf("events = %+v, want one click_yield denial", s.Events)
	}
	if s = d.Frame(0); s.Events != nil {
		t.Errorf("events repeated on the next frame: %+v", s.Events)
	}
}

func TestDriverFrameRecordsFrameTime(t *testing.T) {
	g := newTestGame(t, nil)
	d := NewDriver(g)

	d.Frame(25 * time.Millisecond)

	perf := g.perfCollector.Stats()
	if perf.FrameDuration != 25*time.Millisecond {
		t.Errorf("FrameDuration = %v, want 25ms", perf.FrameDuration)
	}
	if perf.FPS != 40 {
		t.Errorf("FPS = %v, want 40", perf.FPS)
	}
}
