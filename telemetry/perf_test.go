package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPerfCollectorPhases(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(10, clk.now)

	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseGravity)
		clk.advance(300 * time.Microsecond)
		pc.StartPhase(PhaseMerge)
		clk.advance(100 * time.Microsecond)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.AvgTickDuration != 400*time.Microsecond {
		t.Errorf("avg tick = %v, want 400µs", s.AvgTickDuration)
	}
	if s.PhaseAvg[PhaseGravity] != 300*time.Microsecond || s.PhaseAvg[PhaseMerge] != 100*time.Microsecond {
		t.Errorf("phase avg = %v", s.PhaseAvg)
	}
	if s.PhasePct[PhaseGravity] != 75 || s.PhasePct[PhaseMerge] != 25 {
		t.Errorf("phase pct = %v, want gravity 75 merge 25", s.PhasePct)
	}
	if s.TicksPerSecond != 2500 {
		t.Errorf("ticks/sec = %v, want 2500", s.TicksPerSecond)
	}
}

func TestPerfCollectorRepeatedPhaseAccumulates(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(1, clk.now)

	pc.StartTick()
	pc.StartPhase("a")
	clk.advance(time.Millisecond)
	pc.StartPhase("b")
	clk.advance(time.Millisecond)
	pc.StartPhase("a")
	clk.advance(2 * time.Millisecond)
	pc.EndTick()

	s := pc.Stats()
	if s.PhaseAvg["a"] != 3*time.Millisecond || s.PhaseAvg["b"] != time.Millisecond {
		t.Errorf("phase avg = %v, want a=3ms b=1ms", s.PhaseAvg)
	}
}

func TestPerfCollectorWindowRolls(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(3, clk.now)

	// Durations 1..6ms; only the last three stay in the window
	for i := 1; i <= 6; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseGravity)
		clk.advance(time.Duration(i) * time.Millisecond)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.AvgTickDuration != 5*time.Millisecond {
		t.Errorf("avg = %v, want 5ms", s.AvgTickDuration)
	}
	if s.MinTickDuration != 4*time.Millisecond || s.MaxTickDuration != 6*time.Millisecond {
		t.Errorf("min/max = %v/%v, want 4ms/6ms", s.MinTickDuration, s.MaxTickDuration)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	s := NewPerfCollector(0).Stats()
	if s.AvgTickDuration != 0 || s.TicksPerSecond != 0 || s.FPS != 0 {
		t.Errorf("empty stats = %+v, want zeros", s)
	}
	if s.PhaseAvg == nil || s.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame(20 * time.Millisecond)
	pc.RecordFrame(0) // ignored

	s := pc.Stats()
	if s.FrameDuration != 20*time.Millisecond {
		t.Errorf("frame duration = %v, want 20ms", s.FrameDuration)
	}
	if s.FPS != 50 {
		t.Errorf("fps = %v, want 50", s.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseGravity: 60,
			PhaseMerge:   30,
			PhaseCleanup: 10,
		},
	}

	row := s.ToCSV(600)
	if row.WindowEnd != 600 {
		t.Errorf("WindowEnd = %d, want 600", row.WindowEnd)
	}
	if row.AvgTickUS != 250 {
		t.Errorf("AvgTickUS = %d, want 250", row.AvgTickUS)
	}
	if row.GravityPct != 60 || row.MergePct != 30 || row.CleanupPct != 10 {
		t.Errorf("phase pct = %v/%v/%v, want 60/30/10", row.GravityPct, row.MergePct, row.CleanupPct)
	}
	if row.TelemetryPct != 0 {
		t.Errorf("TelemetryPct = %v, want 0 for untracked phase", row.TelemetryPct)
	}
}
