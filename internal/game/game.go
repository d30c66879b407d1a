package game

import (
	"errors"
	"fmt"
)

// Cell represents the content of a board cell: empty or a player's mark.
type Cell uint8

const (
	Empty Cell = iota
	Cross
	Circle
)

// Board boundaries
const (
	BorderMin = 0
	BorderMax = 2
)

var (
	ErrOutOfRange = errors.New("position out of range")
	ErrCellTaken  = errors.New("cell already occupied")
)

func (c Cell) String() string {
	switch c {
	case Cross:
		return "X"
	case Circle:
		return "O"
	default:
		return " "
	}
}

// Player identifies one of the two sides. First always moves first and plays Cross.
type Player uint8

const (
	First Player = iota
	Second
)

// Next returns the player who moves after p.
func (p Player) Next() Player {
	if p == First {
		return Second
	}
	return First
}

// Mark returns the cell value p writes on the board.
func (p Player) Mark() Cell {
	if p == First {
		return Cross
	}
	return Circle
}

// Label is the short display name, e.g. "Player 1".
func (p Player) Label() string {
	return fmt.Sprintf("Player %d", int(p)+1)
}

func (p Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Label(), p.Mark())
}

// Position is a (row, column) pair on the board.
type Position struct {
	Row int
	Col int
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Row >= BorderMin && p.Row <= BorderMax && p.Col >= BorderMin && p.Col <= BorderMax
}

// Direction is a cursor movement.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Step moves p one cell in direction d, clamped to the board edges.
func (p Position) Step(d Direction) Position {
	switch d {
	case Up:
		p.Row = max(p.Row-1, BorderMin)
	case Down:
		p.Row = min(p.Row+1, BorderMax)
	case Left:
		p.Col = max(p.Col-1, BorderMin)
	case Right:
		p.Col = min(p.Col+1, BorderMax)
	}
	return p
}

// Board is a 3x3 grid in row-major order. It is a value type: assigning it copies the grid.
type Board [3][3]Cell

// Get returns the cell at pos. ok is false for positions off the board.
func (b Board) Get(pos Position) (cell Cell, ok bool) {
	if !pos.Valid() {
		return Empty, false
	}
	return b[pos.Row][pos.Col], true
}

// Place writes mark at pos. A written cell is never overwritten.
func (b *Board) Place(pos Position, mark Cell) error {
	cell, ok := b.Get(pos)
	if !ok {
		return ErrOutOfRange
	}
	if cell != Empty {
		return ErrCellTaken
	}
	b[pos.Row][pos.Col] = mark
	return nil
}

// EmptyPositions lists the free cells in row-major order.
func (b Board) EmptyPositions() []Position {
	positions := make([]Position, 0, 9)
	for r := range [3]int{} {
		for c := range [3]int{} {
			if b[r][c] == Empty {
				positions = append(positions, Position{Row: r, Col: c})
			}
		}
	}
	return positions
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	for r := range [3]int{} {
		for c := range [3]int{} {
			if b[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// Filled counts the non-empty cells.
func (b Board) Filled() int {
	return 9 - len(b.EmptyPositions())
}

// Strings converts the board to its display marks.
func (b Board) Strings() [3][3]string {
	var out [3][3]string
	for r := range [3]int{} {
		for c := range [3]int{} {
			out[r][c] = b[r][c].String()
		}
	}
	return out
}
