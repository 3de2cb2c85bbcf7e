package telemetry

import (
	"log/slog"
	"time"
)

// Step phases, in the order a tick runs them.
const (
	PhaseGravity   = "gravity"
	PhaseMerge     = "merge"
	PhaseCleanup   = "cleanup"
	PhaseTelemetry = "telemetry"
)

// Phases lists the step phases in tick order.
var Phases = []string{PhaseGravity, PhaseMerge, PhaseCleanup, PhaseTelemetry}

type phaseSpan struct {
	name string
	dur  time.Duration
}

// tickTiming is one finished tick. Phases keep the order they were entered.
type tickTiming struct {
	total  time.Duration
	phases []phaseSpan
}

func (t *tickTiming) add(name string, d time.Duration) {
	for i := range t.phases {
		if t.phases[i].name == name {
			t.phases[i].dur += d
			return
		}
	}
	t.phases = append(t.phases, phaseSpan{name: name, dur: d})
}

// PerfCollector times simulation ticks and their phases over the last
// window ticks, plus the most recent presented frame.
type PerfCollector struct {
	clock func() time.Time

	ring  []tickTiming
	next  int
	count int

	open      tickTiming
	phase     string
	tickAt    time.Time
	phaseAt   time.Time
	lastFrame time.Duration
}

// NewPerfCollector keeps window ticks of history (60 when window < 1).
func NewPerfCollector(window int) *PerfCollector {
	return newPerfCollector(window, time.Now)
}

func newPerfCollector(window int, clock func() time.Time) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{clock: clock, ring: make([]tickTiming, window)}
}

// StartTick opens a tick. A tick left open is discarded.
func (p *PerfCollector) StartTick() {
	p.tickAt = p.clock()
	p.phase = ""
	p.open = tickTiming{phases: make([]phaseSpan, 0, len(Phases))}
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.clock()
	p.closePhase(now)
	p.phase, p.phaseAt = phase, now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.open.add(p.phase, now.Sub(p.phaseAt))
	}
}

// EndTick closes the running phase and commits the tick to the window.
func (p *PerfCollector) EndTick() {
	now := p.clock()
	p.closePhase(now)
	p.phase = ""
	p.open.total = now.Sub(p.tickAt)

	p.ring[p.next] = p.open
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame stores the wall time of the last presented frame.
func (p *PerfCollector) RecordFrame(elapsed time.Duration) {
	if elapsed > 0 {
		p.lastFrame = elapsed
	}
}

// PerfStats aggregates the collector window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick, 0..100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats summarizes the ticks in the window. The maps are never nil.
func (p *PerfCollector) Stats() PerfStats {
	ps := PerfStats{
		PhaseAvg:      map[string]time.Duration{},
		PhasePct:      map[string]float64{},
		FrameDuration: p.lastFrame,
	}
	if p.lastFrame > 0 {
		ps.FPS = float64(time.Second) / float64(p.lastFrame)
	}
	if p.count == 0 {
		return ps
	}

	var sum time.Duration
	phaseSum := map[string]time.Duration{}
	for i, t := range p.ring[:p.count] {
		sum += t.total
		if i == 0 || t.total < ps.MinTickDuration {
			ps.MinTickDuration = t.total
		}
		ps.MaxTickDuration = max(ps.MaxTickDuration, t.total)
		for _, s := range t.phases {
			phaseSum[s.name] += s.dur
		}
	}

	n := time.Duration(p.count)
	ps.AvgTickDuration = sum / n
	for name, d := range phaseSum {
		avg := d / n
		ps.PhaseAvg[name] = avg
		if ps.AvgTickDuration > 0 {
			ps.PhasePct[name] = 100 * float64(avg) / float64(ps.AvgTickDuration)
		}
	}
	if ps.AvgTickDuration > 0 {
		ps.TicksPerSecond = float64(time.Second) / float64(ps.AvgTickDuration)
	}
	return ps
}

// LogStats writes one "perf" record. Phases under 0.1% are left out.
func (s PerfStats) LogStats() {
	args := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		args = append(args, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			args = append(args, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", args...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	GravityPct   float64 `csv:"gravity_pct"`
	MergePct     float64 `csv:"merge_pct"`
	CleanupPct   float64 `csv:"cleanup_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s into a perf.csv row for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		GravityPct:   s.PhasePct[PhaseGravity],
		MergePct:     s.PhasePct[PhaseMerge],
		CleanupPct:   s.PhasePct[PhaseCleanup],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
