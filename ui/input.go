package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/accretion/economy"
	"github.com/pthm-cable/accretion/game"
)

// KeyBinding maps a key to a command.
type KeyBinding struct {
	Key     int32
	Command game.Command
}

// DefaultKeyBindings returns the keyboard shortcuts.
func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: rl.KeySpace, Command: game.CmdSpawn{}},
		{Key: rl.KeyA, Command: game.CmdToggleAutoPlay{}},
		{Key: rl.KeyOne, Command: game.CmdPurchase{Track: economy.ClickYield}},
		{Key: rl.KeyTwo, Command: game.CmdPurchase{Track: economy.ParticleMass}},
		{Key: rl.KeyThree, Command: game.CmdPurchase{Track: economy.SpawnSpeed}},
	}
}

// PollKeys appends the commands of keys pressed this frame to dst.
func PollKeys(dst []game.Command, bindings []KeyBinding) []game.Command {
	for _, b := range bindings {
		if rl.IsKeyPressed(b.Key) {
			dst = append(dst, b.Command)
		}
	}
	return dst
}
