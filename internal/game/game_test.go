package game

import (
	"errors"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Outcome
	}{
		{
			name:  "No winner - empty board",
			board: Board{},
			want:  Outcome{Kind: Undecided},
		},
		{
			name: "No winner - partial board",
			board: Board{
				{Cross, Empty, Empty},
				{Empty, Circle, Empty},
				{Empty, Empty, Empty},
			},
			want: Outcome{Kind: Undecided},
		},
		{
			name: "X wins - first row",
			board: Board{
				{Cross, Cross, Cross},
				{Empty, Circle, Empty},
				{Empty, Empty, Circle},
			},
			want: Outcome{Kind: Win, Winner: First},
		},
		{
			name: "O wins - second column",
			board: Board{
				{Cross, Circle, Empty},
				{Cross, Circle, Empty},
				{Empty, Circle, Cross},
			},
			want: Outcome{Kind: Win, Winner: Second},
		},
		{
			name: "X wins - main diagonal",
			board: Board{
				{Cross, Empty, Empty},
				{Empty, Cross, Empty},
				{Empty, Empty, Cross},
			},
			want: Outcome{Kind: Win, Winner: First},
		},
		{
			name: "O wins - anti-diagonal",
			board: Board{
				{Empty, Empty, Circle},
				{Empty, Circle, Empty},
				{Circle, Empty, Empty},
			},
			want: Outcome{Kind: Win, Winner: Second},
		},
		{
			name: "X wins on a full board",
			board: Board{
				{Cross, Cross, Cross},
				{Circle, Circle, Cross},
				{Circle, Cross, Circle},
			},
			want: Outcome{Kind: Win, Winner: First},
		},
		{
			name: "Draw - full board",
			board: Board{
				{Cross, Circle, Cross},
				{Cross, Circle, Circle},
				{Circle, Cross, Cross},
			},
			want: Outcome{Kind: Draw},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.board); got != tt.want {
				t.Errorf("Evaluate() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestEvaluateAllBoards walks every assignment of the 9 cells and checks the
// detector against a direct line count.
func TestEvaluateAllBoards(t *testing.T) {
	for n := 0; n < 19683; n++ {
		var b Board
		v := n
		for i := 0; i < 9; i++ {
			b[i/3][i%3] = Cell(v % 3)
			v /= 3
		}

		completed := map[Cell]bool{}
		for _, line := range lines {
			a, m, z := b[line[0].Row][line[0].Col], b[line[1].Row][line[1].Col], b[line[2].Row][line[2].Col]
			if a != Empty && a == m && m == z {
				completed[a] = true
			}
		}

		got := Evaluate(b)
		switch got.Kind {
		case Win:
			if !completed[got.Winner.Mark()] {
				t.Fatalf("board %v: reported win for %v without a completed line", b, got.Winner)
			}
		case Draw:
			if len(completed) != 0 || !b.Full() {
				t.Fatalf("board %v: reported draw, completed=%v full=%v", b, completed, b.Full())
			}
		case Undecided:
			if len(completed) != 0 || b.Full() {
				t.Fatalf("board %v: reported undecided, completed=%v full=%v", b, completed, b.Full())
			}
		}
	}
}

func TestBoardPlace(t *testing.T) {
	var b Board

	if err := b.Place(Position{Row: 1, Col: 1}, Cross); err != nil {
		t.Fatalf("Place() on empty cell returned %v", err)
	}
	if got, _ := b.Get(Position{Row: 1, Col: 1}); got != Cross {
		t.Errorf("Get() got = %v, want X", got)
	}

	if err := b.Place(Position{Row: 1, Col: 1}, Circle); !errors.Is(err, ErrCellTaken) {
		t.Errorf("Place() on occupied cell got = %v, want %v", err, ErrCellTaken)
	}
	if got, _ := b.Get(Position{Row: 1, Col: 1}); got != Cross {
		t.Errorf("occupied cell was overwritten with %v", got)
	}

	if err := b.Place(Position{Row: 3, Col: 0}, Circle); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Place() off the board got = %v, want %v", err, ErrOutOfRange)
	}
	if _, ok := b.Get(Position{Row: -1, Col: 0}); ok {
		t.Errorf("Get() off the board reported ok")
	}
	if b.Filled() != 1 {
		t.Errorf("Filled() got = %d, want 1", b.Filled())
	}
}

func TestEmptyPositionsRowMajor(t *testing.T) {
	b := Board{
		{Cross, Empty, Circle},
		{Empty, Cross, Empty},
		{Circle, Empty, Empty},
	}
	want := []Position{{0, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 2}}
	got := b.EmptyPositions()
	if len(got) != len(want) {
		t.Fatalf("EmptyPositions() got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EmptyPositions()[%d] got = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPositionStepClamps(t *testing.T) {
	tests := []struct {
		name string
		from Position
		dir  Direction
		want Position
	}{
		{"up at top edge", Position{0, 1}, Up, Position{0, 1}},
		{"up", Position{2, 1}, Up, Position{1, 1}},
		{"down at bottom edge", Position{2, 0}, Down, Position{2, 0}},
		{"left at left edge", Position{1, 0}, Left, Position{1, 0}},
		{"right", Position{1, 0}, Right, Position{1, 1}},
		{"right at right edge", Position{1, 2}, Right, Position{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Step(tt.dir); got != tt.want {
				t.Errorf("Step() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlayer(t *testing.T) {
	if First.Next() != Second || Second.Next() != First {
		t.Errorf("Next() does not alternate")
	}
	if First.Mark() != Cross || Second.Mark() != Circle {
		t.Errorf("Mark() got %v/%v, want X/O", First.Mark(), Second.Mark())
	}
	if got := First.String(); got != "Player 1 (X)" {
		t.Errorf("String() got = %q", got)
	}
	if got := Second.String(); got != "Player 2 (O)" {
		t.Errorf("String() got = %q", got)
	}
}
