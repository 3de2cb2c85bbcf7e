package inspector

import (
	"math"
	"testing"

	"github.com/pthm-cable/accretion/camera"
	"github.com/pthm-cable/accretion/game"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		hints  Hints
	}{
		{"", WidgetAuto, Hints{Max: 1}},
		{"bar,max:200", WidgetBar, Hints{Max: 200}},
		{"label, fmt:%.1f", WidgetLabel, Hints{Format: "%.1f", Max: 1}},
		{"label,name:Dist", WidgetLabel, Hints{Name: "Dist", Max: 1}},
		{"bar,max:-3", WidgetBar, Hints{Max: 1}},
		{"skip", WidgetSkip, Hints{Max: 1}},
		{"unknown,broken", WidgetAuto, Hints{Max: 1}},
	}
	for _, tt := range tests {
		w, hints := ParseTag(tt.tag)
		if w != tt.widget {
			t.Errorf("ParseTag(%q) widget = %v, want %v", tt.tag, w, tt.widget)
		}
		if hints != tt.hints {
			t.Errorf("ParseTag(%q) hints = %+v, want %+v", tt.tag, hints, tt.hints)
		}
	}
}

func TestExtractFieldsSkipsAndDetects(t *testing.T) {
	type sample struct {
		Shown   float64 `inspect:"bar,max:2"`
		Hidden  int     `inspect:"skip"`
		Flag    bool
		Count   int `inspect:"name:N"`
		private int
	}
	fields := ExtractFields(&sample{Shown: 1.5, Flag: true, Count: 3})

	want := []struct {
		name   string
		widget Widget
	}{
		{"Shown", WidgetBar},
		{"Flag", WidgetBool},
		{"N", WidgetLabel},
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d: %+v", len(fields), len(want), fields)
	}
	for i, w := range want {
		if fields[i].Name != w.name || fields[i].Widget != w.widget {
			t.Errorf("field %d = %s/%v, want %s/%v", i, fields[i].Name, fields[i].Widget, w.name, w.widget)
		}
	}
	if fields[0].Hints.Max != 2 {
		t.Errorf("max hint = %v, want 2", fields[0].Hints.Max)
	}
	if ExtractFields(42) != nil {
		t.Error("non-struct should yield no fields")
	}
}

func TestNumeric(t *testing.T) {
	tests := []struct {
		value any
		want  float64
		ok    bool
	}{
		{float32(1.5), 1.5, true},
		{int32(-4), -4, true},
		{uint64(9), 9, true},
		{"7", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := Numeric(tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Numeric(%v) = (%v, %v), want (%v, %v)", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		fmt   string
		want  string
	}{
		{1.234, "", "1.23"},
		{float32(2), "", "2.00"},
		{7, "", "7"},
		{3.14159, "%.1f", "3.1"},
		{true, "", "true"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, tt.fmt); got != tt.want {
			t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.fmt, got, tt.want)
		}
	}
}

func TestNewParticleInfo(t *testing.T) {
	s := &game.Snapshot{CenterX: 100, CenterY: 100, CentralRadius: 10}

	info := NewParticleInfo(s, game.ParticleView{ID: 4, X: 140, Y: 130, VX: -3, VY: -4, Mass: 2, Radius: 3})
	if info.Distance != 50 || info.Speed != 5 {
		t.Errorf("distance/speed = %v/%v, want 50/5", info.Distance, info.Speed)
	}
	if math.Abs(info.Proximity-0.2) > 1e-12 {
		t.Errorf("proximity = %v, want 0.2", info.Proximity)
	}
	if !info.Inbound {
		t.Error("particle moving toward the center should be inbound")
	}

	outbound := NewParticleInfo(s, game.ParticleView{X: 140, Y: 100, VX: 1})
	if outbound.Inbound {
		t.Error("particle moving away should not be inbound")
	}
	inside := NewParticleInfo(s, game.ParticleView{X: 105, Y: 100})
	if inside.Proximity != 1 {
		t.Errorf("proximity inside the core = %v, want 1", inside.Proximity)
	}
}

func TestPickNearest(t *testing.T) {
	particles := []game.ParticleView{
		{ID: 1, X: 10, Y: 10, Radius: 2},
		{ID: 2, X: 13, Y: 10, Radius: 2},
		{ID: 3, X: 100, Y: 100, Radius: 5},
	}
	tests := []struct {
		name   string
		wx, wy float64
		id     uint64
		ok     bool
	}{
		{"exact hit", 10, 10, 1, true},
		{"closer to second", 12.5, 10, 2, true},
		{"inside slop", 107, 100, 3, true},
		{"miss", 50, 50, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Pick(particles, tt.wx, tt.wy, 3)
			if ok != tt.ok || id != tt.id {
				t.Errorf("Pick(%v, %v) = (%d, %v), want (%d, %v)", tt.wx, tt.wy, id, ok, tt.id, tt.ok)
			}
		})
	}
}

func TestSelectionDropsAbsorbedParticle(t *testing.T) {
	cam := camera.New(800, 600, 800, 600)
	ins := NewInspector(600)
	s := &game.Snapshot{
		Width: 800, Height: 600,
		Particles: []game.ParticleView{
			{ID: 3, X: 300, Y: 100, Radius: 4},
			{ID: 8, X: 600, Y: 100, Radius: 4},
		},
	}

	if !ins.Click(s, cam, 601, 100) {
		t.Fatal("click on particle not consumed")
	}
	if id, ok := ins.Selected(); !ok || id != 8 {
		t.Fatalf("selected = (%d, %v), want (8, true)", id, ok)
	}
	if p, ok := ins.Sync(s); !ok || p.ID != 8 {
		t.Errorf("Sync = (%+v, %v), want particle 8", p, ok)
	}

	// Particle 8 merged away
	s.Particles = s.Particles[:1]
	if _, ok := ins.Sync(s); ok {
		t.Error("Sync found a particle that is gone")
	}
	if _, ok := ins.Selected(); ok {
		t.Error("selection kept after particle vanished")
	}

	if ins.Click(s, cam, 50, 50) {
		t.Error("click on empty space consumed")
	}
}
