package app

import "ctchen222/tictactoe-term/internal/engine"

// Phase is what the application shows: the game (Playing) or the menu.
type Phase interface {
	isPhase()
}

// Playing wraps the engine's latest snapshot.
type Playing struct {
	State engine.GameState
}

// Menu is the pause menu with Row highlighted.
type Menu struct {
	Row int
}

func (Playing) isPhase() {}
func (Menu) isPhase()    {}

// MenuRow identifies an entry of the pause menu.
type MenuRow int

const (
	RowResume MenuRow = iota
	RowRestart
	RowOpponent
	RowQuit
	menuRows
)

// Action is a decoded input. The UI layer maps raw keys to actions.
type Action uint8

const (
	MoveUp Action = iota
	MoveDown
	MoveLeft
	MoveRight
	Place
	Reset
	ToggleMenu
	Quit
)

var actionNames = [...]string{
	MoveUp:     "move_up",
	MoveDown:   "move_down",
	MoveLeft:   "move_left",
	MoveRight:  "move_right",
	Place:      "place",
	Reset:      "reset",
	ToggleMenu: "toggle_menu",
	Quit:       "quit",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}
