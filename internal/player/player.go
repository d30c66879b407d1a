package player

import "time"

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Spectator is a read-only observer of the running game.
type Spectator struct {
	ID   string
	Conn Connection
}

// NewSpectator creates a spectator over conn.
func NewSpectator(id string, conn Connection) *Spectator {
	return &Spectator{ID: id, Conn: conn}
}
