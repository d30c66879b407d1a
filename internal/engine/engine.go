package engine

import (
	"ctchen222/tictactoe-term/internal/bot"
	"ctchen222/tictactoe-term/internal/game"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

var ErrGameOver = errors.New("game already finished")

// warningMessages maps engine errors to the text shown to the player.
var warningMessages = map[error]string{
	game.ErrCellTaken:  "This cell is already taken!",
	game.ErrOutOfRange: "This cell is out of range!",
	ErrGameOver:        "Game is over!",
}

// Engine runs a single game: it owns the board, the cursor, the player to
// move and the strategy for Player Second. It is not safe for concurrent use.
type Engine struct {
	id       string
	board    game.Board
	cursor   game.Position
	current  game.Player
	outcome  game.Outcome
	strategy *bot.Strategy
	rng      *rand.Rand
	warning  error
	changed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the randomness source used by the Random opponent.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// New creates an engine in its initial state.
func New(opponent bot.Opponent, opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	e.Reset(opponent)
	return e
}

// Reset discards the current game and starts a new one against opponent.
func (e *Engine) Reset(opponent bot.Opponent) {
	e.id = uuid.New().String()
	e.board = game.Board{}
	e.cursor = game.Position{}
	e.current = game.First
	e.outcome = game.Outcome{}
	e.strategy = bot.NewStrategy(opponent, e.rng)
	e.warning = nil
	e.changed = true
	slog.Debug("new game", "game.id", e.id, "opponent", opponent.String())
}

// ID identifies the current game.
func (e *Engine) ID() string {
	return e.id
}

// Opponent returns the strategy assigned to Player Second.
func (e *Engine) Opponent() bot.Opponent {
	return e.strategy.Opponent()
}

// Board returns a copy of the board.
func (e *Engine) Board() game.Board {
	return e.board
}

// Cursor returns the cursor position.
func (e *Engine) Cursor() game.Position {
	return e.cursor
}

// CurrentPlayer returns the player to move.
func (e *Engine) CurrentPlayer() game.Player {
	return e.current
}

// IsOver reports whether the game has ended.
func (e *Engine) IsOver() bool {
	return e.outcome.Decided()
}

// Outcome returns the board's terminal status.
func (e *Engine) Outcome() game.Outcome {
	return e.outcome
}

// WarningMessage returns the pending warning, if any.
func (e *Engine) WarningMessage() (string, bool) {
	if e.warning == nil {
		return "", false
	}
	if msg, ok := warningMessages[e.warning]; ok {
		return msg, true
	}
	return e.warning.Error(), true
}

// ClearWarning drops the pending warning.
func (e *Engine) ClearWarning() {
	e.warning = nil
}

// ScoreDelta is the score increment of this game: one win for the winner, nothing otherwise.
func (e *Engine) ScoreDelta() Score {
	if e.outcome.Kind != game.Win {
		return Score{}
	}
	if e.outcome.Winner == game.First {
		return Score{First: 1}
	}
	return Score{Second: 1}
}

// GetState returns a snapshot if anything changed since the previous call.
func (e *Engine) GetState() (GameState, bool) {
	if !e.changed {
		return nil, false
	}
	e.changed = false
	if e.IsOver() {
		return GameOver{Outcome: e.outcome}, true
	}
	return InProgress{Board: e.board, Player: e.current, Cursor: e.cursor}, true
}

// MoveCursor moves the cursor one cell, stopping at the board edges.
func (e *Engine) MoveCursor(d game.Direction) {
	e.applyIfPlaying(func() {
		next := e.cursor.Step(d)
		if next != e.cursor {
			e.cursor = next
			e.changed = true
		}
	})
}

// Place puts the current player's mark under the cursor. When the move hands
// the turn to an autonomous opponent, its reply is played before returning.
func (e *Engine) Place() {
	e.applyIfPlaying(func() {
		e.placeAt(e.cursor)
	})
}

// applyIfPlaying runs action only while the game is in progress; otherwise it
// leaves state untouched and warns that the game is over.
func (e *Engine) applyIfPlaying(action func()) {
	if e.IsOver() {
		e.warning = ErrGameOver
		return
	}
	e.warning = nil
	action()
}

func (e *Engine) placeAt(pos game.Position) {
	if err := e.board.Place(pos, e.current.Mark()); err != nil {
		e.warning = err
		return
	}
	e.warning = nil
	e.changed = true

	e.outcome = game.Evaluate(e.board)
	if e.outcome.Decided() {
		slog.Debug("game over", "game.id", e.id, "outcome", e.outcome.String())
		return
	}

	e.current = e.current.Next()
	if e.current != game.Second || !e.strategy.Autonomous() {
		return
	}
	move, ok := e.strategy.ChooseMove(e.board, e.current)
	if !ok {
		return
	}
	slog.Debug("opponent move", "game.id", e.id, "opponent", e.strategy.Opponent().String(), "row", move.Row, "col", move.Col)
	e.placeAt(move)
}
