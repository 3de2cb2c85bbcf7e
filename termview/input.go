package termview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/accretion/economy"
	"github.com/pthm-cable/accretion/game"
)

// KeyCommand maps a key press to a game command.
// quit is true for Esc, Ctrl-C and q; cmd is nil for unbound keys.
func KeyCommand(ev *tcell.EventKey) (cmd game.Command, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyRune:
	default:
		return nil, false
	}

	switch r := ev.Rune(); r {
	case 'q', 'Q':
		return nil, true
	case ' ':
		return game.CmdSpawn{}, false
	case 'a', 'A':
		return game.CmdToggleAutoPlay{}, false
	case '1', '2', '3':
		return game.CmdPurchase{Track: economy.Track(r - '1')}, false
	}
	return nil, false
}
