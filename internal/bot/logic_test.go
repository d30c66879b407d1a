package bot

import (
	"ctchen222/tictactoe-term/internal/game"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reachableBoards returns every non-terminal board reachable from the empty
// board with at least minFilled marks, together with the player to move.
func reachableBoards(minFilled int) map[game.Board]game.Player {
	out := map[game.Board]game.Player{}
	seen := map[game.Board]bool{}

	var walk func(b game.Board, toMove game.Player)
	walk = func(b game.Board, toMove game.Player) {
		if seen[b] {
			return
		}
		seen[b] = true
		if game.Evaluate(b).Decided() {
			return
		}
		if b.Filled() >= minFilled {
			out[b] = toMove
		}
		for _, pos := range b.EmptyPositions() {
			child := b
			child[pos.Row][pos.Col] = toMove.Mark()
			walk(child, toMove.Next())
		}
	}
	walk(game.Board{}, game.First)
	return out
}

func winningMoves(b game.Board, acting game.Player) []game.Position {
	var wins []game.Position
	for _, pos := range b.EmptyPositions() {
		child := b
		child[pos.Row][pos.Col] = acting.Mark()
		if o := game.Evaluate(child); o.Kind == game.Win && o.Winner == acting {
			wins = append(wins, pos)
		}
	}
	return wins
}

func TestRandomMove(t *testing.T) {
	t.Run("Only one spot left", func(t *testing.T) {
		board := game.Board{
			{game.Cross, game.Circle, game.Cross},
			{game.Circle, game.Cross, game.Circle},
			{game.Cross, game.Empty, game.Circle},
		}
		pos, ok := randomMove(board, rand.New(rand.NewPCG(1, 1)))
		require.True(t, ok)
		assert.Equal(t, game.Position{Row: 2, Col: 1}, pos)
	})

	t.Run("Full board", func(t *testing.T) {
		board := game.Board{
			{game.Cross, game.Circle, game.Cross},
			{game.Circle, game.Cross, game.Circle},
			{game.Circle, game.Cross, game.Circle},
		}
		_, ok := randomMove(board, rand.New(rand.NewPCG(1, 1)))
		assert.False(t, ok)
	})

	t.Run("Always drawn from the empty cells", func(t *testing.T) {
		boards := reachableBoards(0)
		for seed := uint64(0); seed < 20; seed++ {
			rng := rand.New(rand.NewPCG(seed, seed*31+1))
			for b := range boards {
				pos, ok := randomMove(b, rng)
				require.True(t, ok)
				cell, _ := b.Get(pos)
				require.Equal(t, game.Empty, cell, "seed %d board %v picked %v", seed, b, pos)
			}
		}
	})

	t.Run("Same seed gives the same sequence", func(t *testing.T) {
		a := rand.New(rand.NewPCG(42, 99))
		b := rand.New(rand.NewPCG(42, 99))
		for range 20 {
			p1, _ := randomMove(game.Board{}, a)
			p2, _ := randomMove(game.Board{}, b)
			assert.Equal(t, p1, p2)
		}
	})

	t.Run("Covers every empty cell", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 4))
		seen := map[game.Position]bool{}
		for range 500 {
			pos, _ := randomMove(game.Board{}, rng)
			seen[pos] = true
		}
		assert.Len(t, seen, 9)
	})
}

func TestMinimaxMove(t *testing.T) {
	tests := []struct {
		name   string
		board  game.Board
		acting game.Player
		want   game.Position
	}{
		{
			name: "Bot can win",
			board: game.Board{
				{game.Circle, game.Circle, game.Empty},
				{game.Cross, game.Cross, game.Empty},
				{game.Cross, game.Empty, game.Empty},
			},
			acting: game.Second,
			want:   game.Position{Row: 0, Col: 2},
		},
		{
			name: "Bot must block",
			board: game.Board{
				{game.Cross, game.Cross, game.Empty},
				{game.Empty, game.Circle, game.Empty},
				{game.Empty, game.Empty, game.Empty},
			},
			acting: game.Second,
			want:   game.Position{Row: 0, Col: 2},
		},
		{
			name: "Win beats block",
			board: game.Board{
				{game.Cross, game.Cross, game.Empty},
				{game.Circle, game.Circle, game.Empty},
				{game.Cross, game.Empty, game.Empty},
			},
			acting: game.Second,
			want:   game.Position{Row: 1, Col: 2},
		},
		{
			name: "Corner opening answered by centre",
			board: game.Board{
				{game.Cross, game.Empty, game.Empty},
				{game.Empty, game.Empty, game.Empty},
				{game.Empty, game.Empty, game.Empty},
			},
			acting: game.Second,
			want:   game.Position{Row: 1, Col: 1},
		},
		{
			name:   "Empty board takes the first cell among equal draws",
			board:  game.Board{},
			acting: game.First,
			want:   game.Position{Row: 0, Col: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.board
			got, ok := minimaxMove(tt.board, tt.acting)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, before, tt.board, "search must not touch the board")
		})
	}

	t.Run("Full board", func(t *testing.T) {
		board := game.Board{
			{game.Cross, game.Circle, game.Cross},
			{game.Cross, game.Circle, game.Circle},
			{game.Circle, game.Cross, game.Cross},
		}
		_, ok := minimaxMove(board, game.First)
		assert.False(t, ok)
	})
}

func TestMinimaxMove_ReachableBoards(t *testing.T) {
	for b, toMove := range reachableBoards(3) {
		pos, ok := minimaxMove(b, toMove)
		require.True(t, ok)

		cell, _ := b.Get(pos)
		require.Equal(t, game.Empty, cell, "board %v: picked occupied %v", b, pos)

		wins := winningMoves(b, toMove)
		if len(wins) > 0 {
			require.Equal(t, wins[0], pos, "board %v: expected the first immediate win", b)
		}
	}
}
