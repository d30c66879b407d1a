package game

// OutcomeKind classifies a board as still playing, won or drawn.
type OutcomeKind uint8

const (
	Undecided OutcomeKind = iota
	Win
	Draw
)

// Outcome is the terminal status of a board. Winner is only meaningful when Kind is Win.
type Outcome struct {
	Kind   OutcomeKind
	Winner Player
}

func (o Outcome) String() string {
	switch o.Kind {
	case Win:
		return o.Winner.String() + " wins"
	case Draw:
		return "draw"
	default:
		return "undecided"
	}
}

// Decided reports whether the board is terminal.
func (o Outcome) Decided() bool {
	return o.Kind != Undecided
}

// lines holds the 8 winning lines in evaluation order:
// rows top to bottom, columns left to right, then both diagonals.
var lines = [8][3]Position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Evaluate returns the outcome of b. The first completed line decides the winner.
func Evaluate(b Board) Outcome {
	for _, line := range lines {
		first := b[line[0].Row][line[0].Col]
		if first == Empty {
			continue
		}
		if first == b[line[1].Row][line[1].Col] && first == b[line[2].Row][line[2].Col] {
			return Outcome{Kind: Win, Winner: owner(first)}
		}
	}

	if b.Full() {
		return Outcome{Kind: Draw}
	}
	return Outcome{Kind: Undecided}
}

func owner(mark Cell) Player {
	if mark == Cross {
		return First
	}
	return Second
}
