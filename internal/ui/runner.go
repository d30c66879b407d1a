package ui

import (
	"context"
	"ctchen222/tictactoe-term/internal/app"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Run drives a until it is done or ctx is cancelled. The screen is redrawn
// after every input event and on every tick. The caller owns s and must call
// Fini once Run returns so the polling goroutine can exit.
func Run(ctx context.Context, s tcell.Screen, a *app.App, tick time.Duration) error {
	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		Draw(s, a)
		if a.Done() {
			slog.InfoContext(ctx, "quit requested")
			return nil
		}

		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "context done, leaving ui loop", "cause", context.Cause(ctx))
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
			case *tcell.EventKey:
				if action, ok := Decode(ev); ok {
					a.Update(ctx, action)
				}
			}
		case <-ticker.C:
		}
	}
}
