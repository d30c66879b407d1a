package main

import (
	"context"
	"ctchen222/tictactoe-term/internal/api/controller"
	"ctchen222/tictactoe-term/internal/app"
	"ctchen222/tictactoe-term/internal/config"
	"ctchen222/tictactoe-term/internal/hub"
	"ctchen222/tictactoe-term/internal/logger"
	"ctchen222/tictactoe-term/internal/server"
	"ctchen222/tictactoe-term/internal/telemetry"
	"ctchen222/tictactoe-term/internal/ui"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (environment only when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

// run wires everything up and plays until the player quits or a signal
// arrives. Deferred shutdowns run on every return path.
func run(configPath string) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := logger.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry, logFile)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	opts := []app.Option{app.WithRand(rand.New(rand.NewPCG(seed, seed)))}

	if cfg.Spectator.Enabled {
		h := hub.NewHub()
		go h.Run(ctx)
		opts = append(opts, app.WithPublisher(h))

		httpServer := startSpectatorServer(ctx, cfg.Spectator.Addr, h)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("Spectator server forced to shutdown", "error", err)
			}
		}()
	}

	a := app.New(cfg.Name, cfg.OpponentKind(), opts...)
	slog.InfoContext(ctx, "Starting game", "opponent", a.Opponent(), "seed", seed)

	if err := runTerminal(ctx, a, cfg.TickRate); err != nil {
		slog.ErrorContext(ctx, "Terminal UI failed", "error", err)
		return fmt.Errorf("terminal: %w", err)
	}

	slog.InfoContext(ctx, "Exiting", "score.player1", a.Score().First, "score.player2", a.Score().Second)
	return nil
}

var newScreen = tcell.NewScreen

func runTerminal(ctx context.Context, a *app.App, tick time.Duration) error {
	screen, err := newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return ui.Run(ctx, screen, a, tick)
}

func startSpectatorServer(ctx context.Context, addr string, h *hub.Hub) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	srv := server.NewServer(h, controller.NewStateController(h))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.InfoContext(ctx, "Spectator server started", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "ListenAndServe failed", "error", err)
		}
	}()

	return httpServer
}
