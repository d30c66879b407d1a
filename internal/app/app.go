package app

import (
	"context"
	"ctchen222/tictactoe-term/internal/bot"
	"ctchen222/tictactoe-term/internal/engine"
	"ctchen222/tictactoe-term/internal/game"
	"ctchen222/tictactoe-term/pkg/proto"
	"log/slog"
	"math/rand/v2"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("app")
	meter  = otel.Meter("app")
)

// Publisher receives a snapshot every time the game state changes.
type Publisher interface {
	Publish(snapshot proto.Snapshot)
}

// App is the application around the engine: menu, score and quitting.
// It is driven from a single goroutine.
type App struct {
	Name string

	engine    *engine.Engine
	score     engine.Score
	phase     Phase
	prev      Phase
	warning   string
	done      bool
	publisher Publisher

	actions  metric.Int64Counter
	finished metric.Int64Counter
}

// Option configures an App.
type Option func(*App, *[]engine.Option)

// WithPublisher sends state snapshots to p.
func WithPublisher(p Publisher) Option {
	return func(a *App, _ *[]engine.Option) {
		a.publisher = p
	}
}

// WithRand sets the randomness source for the Random opponent.
func WithRand(rng *rand.Rand) Option {
	return func(_ *App, opts *[]engine.Option) {
		*opts = append(*opts, engine.WithRand(rng))
	}
}

// New creates an App with a fresh game against opponent.
func New(name string, opponent bot.Opponent, opts ...Option) *App {
	a := &App{Name: name}
	var engineOpts []engine.Option
	for _, opt := range opts {
		opt(a, &engineOpts)
	}
	a.engine = engine.New(opponent, engineOpts...)

	var err error
	if a.actions, err = meter.Int64Counter("tictactoe.actions",
		metric.WithDescription("Decoded player actions handled by the application")); err != nil {
		otel.Handle(err)
	}
	if a.finished, err = meter.Int64Counter("tictactoe.games.finished",
		metric.WithDescription("Games that reached a win or a draw")); err != nil {
		otel.Handle(err)
	}

	a.sync(context.Background())
	return a
}

// Phase returns what should currently be shown.
func (a *App) Phase() Phase {
	return a.phase
}

// Score returns the wins accumulated across games.
func (a *App) Score() engine.Score {
	return a.score
}

// Warning returns the message to show instead of the help text, if any.
func (a *App) Warning() (string, bool) {
	return a.warning, a.warning != ""
}

// Done reports whether the player asked to quit.
func (a *App) Done() bool {
	return a.done
}

// Opponent returns the opponent of the current game.
func (a *App) Opponent() bot.Opponent {
	return a.engine.Opponent()
}

// Board returns a copy of the current board.
func (a *App) Board() game.Board {
	return a.engine.Board()
}

// Update applies one action.
func (a *App) Update(ctx context.Context, action Action) {
	ctx, span := tracer.Start(ctx, "app.Update", trace.WithAttributes(
		attribute.String("action", action.String()),
		attribute.String("game.id", a.engine.ID()),
	))
	defer span.End()

	if a.actions != nil {
		a.actions.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action.String())))
	}

	if menu, ok := a.phase.(Menu); ok {
		a.updateMenu(ctx, menu, action)
	} else {
		a.updateGame(ctx, action)
	}
	a.sync(ctx)
}

var directions = map[Action]game.Direction{
	MoveUp:    game.Up,
	MoveDown:  game.Down,
	MoveLeft:  game.Left,
	MoveRight: game.Right,
}

func (a *App) updateGame(ctx context.Context, action Action) {
	switch action {
	case MoveUp, MoveDown, MoveLeft, MoveRight:
		// Once the game is over a move key only dismisses the warning.
		if a.engine.IsOver() {
			a.engine.ClearWarning()
			return
		}
		a.engine.MoveCursor(directions[action])
	case Place:
		a.engine.Place()
	case Reset:
		a.restart(ctx, a.engine.Opponent())
	case ToggleMenu:
		a.prev = a.phase
		a.phase = Menu{Row: int(RowResume)}
	case Quit:
		a.done = true
	}
}

func (a *App) updateMenu(ctx context.Context, menu Menu, action Action) {
	switch action {
	case MoveUp:
		a.phase = Menu{Row: (menu.Row + int(menuRows) - 1) % int(menuRows)}
	case MoveDown:
		a.phase = Menu{Row: (menu.Row + 1) % int(menuRows)}
	case ToggleMenu:
		a.phase = a.prev
	case Quit:
		a.done = true
	case Reset:
		a.phase = a.prev
		a.restart(ctx, a.engine.Opponent())
	case Place:
		switch MenuRow(menu.Row) {
		case RowResume:
			a.phase = a.prev
		case RowRestart:
			a.phase = a.prev
			a.restart(ctx, a.engine.Opponent())
		case RowOpponent:
			a.phase = a.prev
			a.restart(ctx, a.engine.Opponent().Next())
		case RowQuit:
			a.done = true
		}
	}
}

func (a *App) restart(ctx context.Context, opponent bot.Opponent) {
	slog.InfoContext(ctx, "restarting game", "game.id", a.engine.ID(), "opponent", opponent.String())
	a.engine.Reset(opponent)
}

// sync pulls the engine's snapshot, if any, and the current warning.
func (a *App) sync(ctx context.Context) {
	if st, ok := a.engine.GetState(); ok {
		if _, inMenu := a.phase.(Menu); inMenu {
			a.prev = Playing{State: st}
		} else {
			a.phase = Playing{State: st}
		}

		if over, ok := st.(engine.GameOver); ok {
			a.score.Add(a.engine.ScoreDelta())
			if a.finished != nil {
				a.finished.Add(ctx, 1, metric.WithAttributes(
					attribute.String("opponent", a.engine.Opponent().String()),
					attribute.String("outcome", over.Outcome.String()),
				))
			}
			slog.InfoContext(ctx, "game finished", "game.id", a.engine.ID(), "outcome", over.Outcome.String(),
				"score.player1", a.score.First, "score.player2", a.score.Second)
		}

		if a.publisher != nil {
			a.publisher.Publish(a.Snapshot())
		}
	}
	a.warning, _ = a.engine.WarningMessage()
}

// Snapshot describes the current game for spectators.
func (a *App) Snapshot() proto.Snapshot {
	e := a.engine
	cursor := e.Cursor()
	s := proto.Snapshot{
		Type:     proto.TypeSnapshot,
		GameID:   e.ID(),
		Opponent: e.Opponent().String(),
		Board:    e.Board().Strings(),
		Cursor:   [2]int{cursor.Row, cursor.Col},
		Over:     e.IsOver(),
		Score:    proto.Score{Player1: a.score.First, Player2: a.score.Second},
	}
	if !s.Over {
		s.Current = e.CurrentPlayer().String()
	}
	switch o := e.Outcome(); o.Kind {
	case game.Win:
		s.Winner = o.Winner.String()
	case game.Draw:
		s.Draw = true
	}
	return s
}
