package bot

import (
	"ctchen222/tictactoe-term/internal/game"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Opponent selects how Player Second's moves are chosen.
type Opponent uint8

const (
	Human Opponent = iota
	Random
	Minimax
)

var opponentNames = map[Opponent]string{
	Human:   "human",
	Random:  "random",
	Minimax: "minimax",
}

func (o Opponent) String() string {
	if name, ok := opponentNames[o]; ok {
		return name
	}
	return fmt.Sprintf("opponent(%d)", uint8(o))
}

// Next cycles Human -> Random -> Minimax -> Human.
func (o Opponent) Next() Opponent {
	switch o {
	case Human:
		return Random
	case Random:
		return Minimax
	default:
		return Human
	}
}

// ParseOpponent maps a configuration name to an Opponent.
func ParseOpponent(name string) (Opponent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "human":
		return Human, nil
	case "random", "easy":
		return Random, nil
	case "minimax", "hard":
		return Minimax, nil
	}
	return Human, fmt.Errorf("unknown opponent %q", name)
}

// Strategy chooses moves for one opponent kind.
type Strategy struct {
	opponent Opponent
	rng      *rand.Rand
}

// NewStrategy creates a strategy. rng is only consulted by the Random opponent.
func NewStrategy(opponent Opponent, rng *rand.Rand) *Strategy {
	return &Strategy{opponent: opponent, rng: rng}
}

// Opponent returns the strategy's kind.
func (s *Strategy) Opponent() Opponent {
	return s.opponent
}

// Autonomous reports whether the strategy picks moves on its own.
func (s *Strategy) Autonomous() bool {
	return s.opponent != Human
}

// ChooseMove picks a legal move for acting on board. ok is false when the
// strategy leaves the move to cursor input or no empty cell remains.
func (s *Strategy) ChooseMove(board game.Board, acting game.Player) (pos game.Position, ok bool) {
	switch s.opponent {
	case Human:
		return game.Position{}, false
	case Random:
		return randomMove(board, s.rng)
	case Minimax:
		return minimaxMove(board, acting)
	default:
		panic(fmt.Sprintf("bot: unhandled opponent %v", s.opponent))
	}
}
