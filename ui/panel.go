package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/accretion/game"
	"github.com/pthm-cable/accretion/hud"
)

// Panel draws the spawn and upgrade controls and reports clicks as commands.
type Panel struct {
	theme  Theme
	layout PanelLayout
	cmds   []game.Command
}

// NewPanel creates a panel for the given screen size.
func NewPanel(screenW, screenH float32) *Panel {
	p := &Panel{theme: DefaultTheme()}
	p.Resize(screenW, screenH)
	return p
}

// Resize recomputes the layout for a new screen size.
func (p *Panel) Resize(screenW, screenH float32) {
	p.layout = ComputeLayout(p.theme, screenW, screenH)
}

// Layout returns the current control bounds.
func (p *Panel) Layout() PanelLayout {
	return p.layout
}

// Draw renders the panel for a snapshot and returns the commands clicked this frame.
// The returned slice is reused on the next call.
func (p *Panel) Draw(s *game.Snapshot, flash *hud.DenialFlash) []game.Command {
	p.cmds = p.cmds[:0]
	l := p.layout
	t := p.theme

	rl.DrawRectangleRec(l.Panel, t.PanelBg)
	rl.DrawRectangleLinesEx(l.Panel, 1, t.PanelBorder)

	// Spawn
	if s.CooldownActive {
		gui.Disable()
	}
	if gui.Button(l.Spawn, hud.SpawnLabel(s)) {
		p.cmds = append(p.cmds, game.CmdSpawn{})
	}
	gui.Enable()
	if a := flash.Spawn(s.Clock); a > 0 {
		rl.DrawRectangleLinesEx(l.Spawn, 2, rl.Fade(t.DenialColor, float32(a)))
	}

	gui.ProgressBar(l.Cooldown, "", "", float32(s.CooldownFraction), 0, 1)

	if gui.Toggle(l.AutoPlay, hud.AutoPlayLabel(s.AutoPlay), s.AutoPlay) != s.AutoPlay {
		p.cmds = append(p.cmds, game.CmdToggleAutoPlay{})
	}

	// Upgrades
	rl.DrawText("Upgrades", int32(l.Header.X), int32(l.Header.Y), t.HeaderFontSize, t.SectionHeader)
	for i, tv := range s.Tracks {
		if i >= len(l.Tracks) {
			break
		}
		bounds := l.Tracks[i]

		// Maxed tracks stay clickable; the rejected purchase flashes the button
		if gui.Button(bounds, hud.TrackLabel(tv)) {
			p.cmds = append(p.cmds, game.CmdPurchase{Track: tv.Track})
		}

		if a := flash.Track(tv.Track, s.Clock); a > 0 {
			rl.DrawRectangleLinesEx(bounds, 2, rl.Fade(t.DenialColor, float32(a)))
		} else if !s.Affordable(tv) {
			rl.DrawRectangleRec(bounds, rl.Fade(rl.Black, 0.35))
		}
	}

	return p.cmds
}
