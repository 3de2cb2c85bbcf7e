// Package inspector shows the state of a single particle picked with the mouse.
package inspector

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/accretion/camera"
	"github.com/pthm-cable/accretion/game"
)

// Panel dimensions
const (
	PanelWidth   = 260
	PanelPadding = 10
	HeaderHeight = 30
)

// pickSlop is the extra click tolerance around a particle in screen pixels.
const pickSlop = 6

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorHighlight   = rl.Color{R: 255, G: 255, B: 255, A: 200}
)

// ParticleInfo is the inspected view of one particle.
type ParticleInfo struct {
	ID        uint64  `inspect:"label"`
	Mass      float64 `inspect:"label,fmt:%.2f"`
	Radius    float64 `inspect:"label,fmt:%.1f"`
	Distance  float64 `inspect:"label,fmt:%.0f"`
	Speed     float64 `inspect:"label,fmt:%.1f"`
	Proximity float64 `inspect:"bar,max:1,fmt:%.2f"` // Central radius over distance
	Inbound   bool    `inspect:"bool"`                 // Moving toward the center
	ColorSeed uint32  `inspect:"skip"`
}

// NewParticleInfo derives the inspected values of p within s.
func NewParticleInfo(s *game.Snapshot, p game.ParticleView) ParticleInfo {
	dx, dy := p.X-s.CenterX, p.Y-s.CenterY
	dist := math.Hypot(dx, dy)
	proximity := 1.0
	if dist > s.CentralRadius {
		proximity = s.CentralRadius / dist
	}
	return ParticleInfo{
		ID:        p.ID,
		Mass:      p.Mass,
		Radius:    p.Radius,
		Distance:  dist,
		Speed:     math.Hypot(p.VX, p.VY),
		Proximity: proximity,
		Inbound:   dx*p.VX+dy*p.VY < 0,
		ColorSeed: p.ColorSeed,
	}
}

// Pick returns the particle nearest to (wx, wy) whose radius plus slop covers it.
func Pick(particles []game.ParticleView, wx, wy, slop float64) (uint64, bool) {
	var id uint64
	best := math.Inf(1)
	found := false
	for _, p := range particles {
		dx, dy := wx-p.X, wy-p.Y
		d2 := dx*dx + dy*dy
		hit := p.Radius + slop
		if d2 < hit*hit && d2 < best {
			id, best, found = p.ID, d2, true
		}
	}
	return id, found
}

// Find looks up a particle by ID in a snapshot's ID-ordered particles.
func Find(particles []game.ParticleView, id uint64) (game.ParticleView, bool) {
	i, ok := slices.BinarySearchFunc(particles, id, func(p game.ParticleView, id uint64) int {
		return cmp.Compare(p.ID, id)
	})
	if !ok {
		return game.ParticleView{}, false
	}
	return particles[i], true
}

// Inspector tracks the selected particle and renders its panel.
type Inspector struct {
	selected    uint64
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector whose panel sits in the bottom-left corner.
func NewInspector(screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenHeight)
	return ins
}

// Resize moves the panel for a new screen height.
func (ins *Inspector) Resize(screenHeight int32) {
	ins.panelX = 10
	ins.panelY = screenHeight - panelHeight() - 10
}

// HandleInput processes clicks: left selects, right deselects.
func (ins *Inspector) HandleInput(s *game.Snapshot, cam *camera.Camera, mouseX, mouseY float32) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		ins.Click(s, cam, mouseX, mouseY)
	}
}

// Click handles a left click at screen position (mouseX, mouseY). Returns true
// when the click was consumed by the panel or selected a particle.
func (ins *Inspector) Click(s *game.Snapshot, cam *camera.Camera, mouseX, mouseY float32) bool {
	mx, my := int32(mouseX), int32(mouseY)
	if ins.hasSelected {
		closeX, closeY := ins.panelX+PanelWidth-25, ins.panelY+5
		if mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20 {
			ins.Deselect()
			return true
		}
		if mx >= ins.panelX && mx <= ins.panelX+PanelWidth && my >= ins.panelY && my <= ins.panelY+panelHeight() {
			return true
		}
	}

	wx, wy := cam.ScreenToWorld(float64(mouseX), float64(mouseY))
	slop := pickSlop / cam.ScreenRadius(1)
	id, ok := Pick(s.Particles, wx, wy, slop)
	if !ok {
		return false
	}
	ins.selected, ins.hasSelected = id, true
	return true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected particle ID.
func (ins *Inspector) Selected() (uint64, bool) {
	return ins.selected, ins.hasSelected
}

// Sync drops the selection once the particle is gone from s.
// Returns the selected particle when it is still alive.
func (ins *Inspector) Sync(s *game.Snapshot) (game.ParticleView, bool) {
	if !ins.hasSelected {
		return game.ParticleView{}, false
	}
	p, ok := Find(s.Particles, ins.selected)
	if !ok {
		// Absorbed or merged into another particle
		ins.Deselect()
	}
	return p, ok
}

// Draw highlights the selected particle and renders the panel.
func (ins *Inspector) Draw(s *game.Snapshot, cam *camera.Camera) {
	p, ok := ins.Sync(s)
	if !ok {
		return
	}

	sx, sy := cam.WorldToScreen(p.X, p.Y)
	r := float32(cam.ScreenRadius(p.Radius)) + 4
	rl.DrawCircleLines(int32(sx), int32(sy), r, ColorHighlight)

	h := panelHeight()
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, h, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(h)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("PARTICLE #%d", p.ID), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX, closeY := ins.panelX+PanelWidth-25, ins.panelY+5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	info := NewParticleInfo(s, p)
	for _, f := range ExtractFields(&info) {
		y += DrawField(x, y, f)
	}
}

// panelHeight fits the header and every displayed ParticleInfo field.
func panelHeight() int32 {
	rows := int32(len(ExtractFields(ParticleInfo{})))
	return HeaderHeight + 2*PanelPadding + rows*20
}
