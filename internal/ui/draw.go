package ui

import (
	"ctchen222/tictactoe-term/internal/app"
	"ctchen222/tictactoe-term/internal/engine"
	"ctchen222/tictactoe-term/internal/game"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

const (
	boardX = 2
	boardY = 3
	panelY = boardY + 7
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleWin     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleDraw    = tcell.StyleDefault.Foreground(tcell.ColorGray).Bold(true)
	styleGrid    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var menuLabels = [...]string{
	app.RowResume:   "Resume",
	app.RowRestart:  "Restart",
	app.RowOpponent: "Opponent: %s",
	app.RowQuit:     "Quit",
}

func cellStyle(c game.Cell) tcell.Style {
	switch c {
	case game.Cross:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case game.Circle:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

// Draw renders the whole application onto s.
func Draw(s tcell.Screen, a *app.App) {
	s.Clear()

	score := a.Score()
	drawText(s, 0, 0, styleTitle, fmt.Sprintf("%s | vs %s", a.Name, a.Opponent()))
	drawText(s, 0, 1, styleDefault, fmt.Sprintf("%s: %d   %s: %d",
		game.First, score.First, game.Second, score.Second))

	switch phase := a.Phase().(type) {
	case app.Menu:
		drawBoard(s, a.Board(), nil)
		drawMenu(s, phase.Row, a.Opponent().String())
	case app.Playing:
		switch st := phase.State.(type) {
		case engine.InProgress:
			drawBoard(s, st.Board, &st.Cursor)
			drawText(s, boardX+13, boardY+1, cellStyle(st.Player.Mark()), "To move:")
			drawText(s, boardX+13, boardY+2, cellStyle(st.Player.Mark()), st.Player.String())
			drawFooter(s, a, true)
		case engine.GameOver:
			drawBoard(s, a.Board(), nil)
			drawGameOver(s, st)
			drawFooter(s, a, false)
		}
	}

	s.Show()
}

func drawBoard(s tcell.Screen, b game.Board, cursor *game.Position) {
	for r := range [3]int{} {
		y := boardY + r*2
		for c := range [3]int{} {
			x := boardX + c*4
			style := cellStyle(b[r][c])
			if cursor != nil && cursor.Row == r && cursor.Col == c {
				style = style.Reverse(true)
			}
			drawText(s, x, y, style, " "+b[r][c].String()+" ")
			if c < 2 {
				drawText(s, x+3, y, styleGrid, "│")
			}
		}
		if r < 2 {
			drawText(s, boardX, y+1, styleGrid, "───┼───┼───")
		}
	}
}

func drawGameOver(s tcell.Screen, st engine.GameOver) {
	drawText(s, boardX+13, boardY+1, styleTitle, "Game over!")
	if winner, ok := st.Winner(); ok {
		drawText(s, boardX+13, boardY+2, styleWin, fmt.Sprintf("%s wins!", winner))
		return
	}
	drawText(s, boardX+13, boardY+2, styleDraw, "It's a draw!")
}

func drawMenu(s tcell.Screen, selected int, opponent string) {
	drawText(s, 0, panelY, styleTitle, "Menu")
	for i, label := range menuLabels {
		if app.MenuRow(i) == app.RowOpponent {
			label = fmt.Sprintf(label, opponent)
		}
		style := styleDefault
		prefix := "  "
		if i == selected {
			style = style.Reverse(true)
			prefix = "> "
		}
		drawText(s, 0, panelY+1+i, style, prefix+label)
	}
}

func drawFooter(s tcell.Screen, a *app.App, running bool) {
	if msg, ok := a.Warning(); ok {
		drawText(s, 0, panelY, styleWarning, "Warning")
		drawText(s, 0, panelY+1, styleWarning, msg)
		return
	}
	drawText(s, 0, panelY, styleTitle, "Info")
	if running {
		drawText(s, 0, panelY+1, styleDefault, "Press P to place a piece, Q to quit, or R to reset the board.")
		drawText(s, 0, panelY+2, styleDefault, "Use the arrow keys to move the piece, M for the menu.")
		return
	}
	drawText(s, 0, panelY+1, styleDefault, "Press R to reset the board or Q to quit.")
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
