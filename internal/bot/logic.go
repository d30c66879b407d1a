package bot

import (
	"ctchen222/tictactoe-term/internal/game"
	"math/rand/v2"
)

// winScore is the utility of an immediate win. Deeper wins score less and
// deeper losses score more, so the search takes the fastest win and delays
// an unavoidable loss.
const winScore = 10

// randomMove picks uniformly among the empty cells.
func randomMove(board game.Board, rng *rand.Rand) (game.Position, bool) {
	availableMoves := board.EmptyPositions()
	if len(availableMoves) == 0 {
		return game.Position{}, false
	}
	return availableMoves[rng.IntN(len(availableMoves))], true
}

// minimaxMove searches the full game tree and returns the best move for
// acting. Ties go to the first move in row-major order.
func minimaxMove(board game.Board, acting game.Player) (game.Position, bool) {
	var (
		best  game.Position
		score int
		found bool
	)
	for _, pos := range board.EmptyPositions() {
		child := board
		child[pos.Row][pos.Col] = acting.Mark()

		s := minimax(child, acting, acting.Next(), 1)
		if !found || s > score {
			best, score, found = pos, s, true
		}
	}
	return best, found
}

// minimax scores board from acting's point of view with toMove about to play.
// depth is the number of plies already placed below the root.
func minimax(board game.Board, acting, toMove game.Player, depth int) int {
	switch outcome := game.Evaluate(board); outcome.Kind {
	case game.Win:
		if outcome.Winner == acting {
			return winScore - depth
		}
		return depth - winScore
	case game.Draw:
		return 0
	}

	maximizing := toMove == acting
	best := 0
	for i, pos := range board.EmptyPositions() {
		child := board
		child[pos.Row][pos.Col] = toMove.Mark()

		s := minimax(child, acting, toMove.Next(), depth+1)
		if i == 0 || (maximizing && s > best) || (!maximizing && s < best) {
			best = s
		}
	}
	return best
}
