package hub

import (
	"context"
	"ctchen222/tictactoe-term/internal/events"
	"ctchen222/tictactoe-term/internal/player"
	"ctchen222/tictactoe-term/internal/validator"
	"ctchen222/tictactoe-term/pkg/proto"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hub")

// writeWait bounds a single write so one stalled spectator cannot hold up the hub.
const writeWait = 5 * time.Second

// client is a registered spectator and the sequence number of the last
// snapshot it was sent.
type client struct {
	*player.Spectator
	sent uint64
}

// Hub fans game snapshots out to spectators.
type Hub struct {
	mu     sync.Mutex
	latest *proto.Snapshot
	seq    uint64
	notify chan struct{}

	spectators map[string]*client
	register   chan *player.Spectator
	unregister chan *player.Spectator
	done       chan struct{}
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{
		notify:     make(chan struct{}, 1),
		spectators: make(map[string]*client),
		register:   make(chan *player.Spectator),
		unregister: make(chan *player.Spectator),
		done:       make(chan struct{}),
	}
}

// Publish records s as the latest snapshot and wakes the hub. It never
// blocks; bursts of snapshots collapse into one broadcast of the newest.
func (h *Hub) Publish(s proto.Snapshot) {
	h.mu.Lock()
	h.latest = &s
	h.seq++
	h.mu.Unlock()

	select {
	case h.notify <- struct{}{}:
	default:
	}
}

// Latest returns the most recently published snapshot.
func (h *Hub) Latest() (proto.Snapshot, bool) {
	snapshot, _, ok := h.current()
	return snapshot, ok
}

// current returns the latest snapshot together with its sequence number.
func (h *Hub) current() (proto.Snapshot, uint64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return proto.Snapshot{}, 0, false
	}
	return *h.latest, h.seq, true
}

// Run starts the hub. It returns when ctx is done, closing every spectator.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	slog.InfoContext(ctx, "Spectator hub started")
	for {
		select {
		case s := <-h.register:
			c := &client{Spectator: s}
			h.spectators[s.ID] = c
			slog.InfoContext(ctx, "Spectator connected", "spectator.id", s.ID, "spectators.count", len(h.spectators))
			if latest, seq, ok := h.current(); ok {
				h.send(ctx, latest, seq, []*client{c})
			}

		case s := <-h.unregister:
			if c, ok := h.spectators[s.ID]; ok && c.Spectator == s {
				h.remove(ctx, s.ID)
			}

		case <-h.notify:
			if latest, seq, ok := h.current(); ok {
				h.send(ctx, latest, seq, h.all())
			}

		case <-ctx.Done():
			for id := range h.spectators {
				h.remove(ctx, id)
			}
			slog.InfoContext(ctx, "Spectator hub stopped")
			return
		}
	}
}

func (h *Hub) all() []*client {
	out := make([]*client, 0, len(h.spectators))
	for _, c := range h.spectators {
		out = append(out, c)
	}
	return out
}

// send delivers snapshot number seq to every target that has not had it yet.
func (h *Hub) send(ctx context.Context, snapshot proto.Snapshot, seq uint64, targets []*client) {
	pending := make([]*client, 0, len(targets))
	for _, c := range targets {
		if c.sent < seq {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return
	}
	targets = pending

	ctx, span := tracer.Start(ctx, "hub.send", trace.WithAttributes(
		attribute.String("game.id", snapshot.GameID),
		attribute.Int("spectators.count", len(targets)),
	))
	defer span.End()

	if err := validator.GetValidator().Struct(snapshot); err != nil {
		slog.ErrorContext(ctx, "Refusing to broadcast invalid snapshot", "game.id", snapshot.GameID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid snapshot")
		return
	}

	messages, err := events.FromSnapshot(snapshot)
	if err != nil {
		slog.ErrorContext(ctx, "Could not encode snapshot", "game.id", snapshot.GameID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not encode snapshot")
		return
	}

	for _, c := range targets {
		c.sent = seq
		if err := write(c.Conn, messages); err != nil {
			slog.WarnContext(ctx, "Error sending to spectator", "spectator.id", c.ID, "error", err)
			span.RecordError(err)
			h.remove(ctx, c.ID)
		}
	}
}

func write(conn player.Connection, messages [][]byte) error {
	for _, msg := range messages {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hub) remove(ctx context.Context, id string) {
	c, ok := h.spectators[id]
	if !ok {
		return
	}
	delete(h.spectators, id)
	if err := c.Conn.Close(); err != nil {
		slog.DebugContext(ctx, "Error closing spectator connection", "spectator.id", id, "error", err)
	}
	slog.InfoContext(ctx, "Spectator disconnected", "spectator.id", id, "spectators.count", len(h.spectators))
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *player.Spectator {
	return h.register
}

// Unregister returns the unregister channel.
func (h *Hub) Unregister() chan<- *player.Spectator {
	return h.unregister
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
