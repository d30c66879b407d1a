package engine

import "ctchen222/tictactoe-term/internal/game"

// GameState is a snapshot of the engine. It is either InProgress or GameOver.
type GameState interface {
	isGameState()
}

// InProgress is the state while moves can still be made.
type InProgress struct {
	Board  game.Board
	Player game.Player
	Cursor game.Position
}

// GameOver is the state once the board is terminal.
type GameOver struct {
	Outcome game.Outcome
}

func (InProgress) isGameState() {}
func (GameOver) isGameState()   {}

// Winner returns the winning player, or false for a draw.
func (g GameOver) Winner() (game.Player, bool) {
	if g.Outcome.Kind != game.Win {
		return game.First, false
	}
	return g.Outcome.Winner, true
}

// Score counts wins per player.
type Score struct {
	First  uint32
	Second uint32
}

// Add accumulates other into s.
func (s *Score) Add(other Score) {
	s.First += other.First
	s.Second += other.Second
}
