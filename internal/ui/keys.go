package ui

import (
	"ctchen222/tictactoe-term/internal/app"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Decode maps a key event to an application action.
func Decode(ev *tcell.EventKey) (app.Action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return app.MoveUp, true
	case tcell.KeyDown:
		return app.MoveDown, true
	case tcell.KeyLeft:
		return app.MoveLeft, true
	case tcell.KeyRight:
		return app.MoveRight, true
	case tcell.KeyEnter:
		return app.Place, true
	case tcell.KeyEscape:
		return app.ToggleMenu, true
	case tcell.KeyCtrlC:
		return app.Quit, true
	case tcell.KeyRune:
		return decodeRune(ev.Rune())
	}
	return 0, false
}

func decodeRune(r rune) (app.Action, bool) {
	switch unicode.ToLower(r) {
	case 'k':
		return app.MoveUp, true
	case 'j':
		return app.MoveDown, true
	case 'h':
		return app.MoveLeft, true
	case 'l':
		return app.MoveRight, true
	case 'p', ' ':
		return app.Place, true
	case 'r':
		return app.Reset, true
	case 'm':
		return app.ToggleMenu, true
	case 'q':
		return app.Quit, true
	}
	return 0, false
}
