package events

import (
	"ctchen222/tictactoe-term/pkg/proto"
	"encoding/json"
	"fmt"
)

// Event types pushed to spectators.
const (
	TypeSnapshot = proto.TypeSnapshot
	TypeGameOver = "game_over"
)

// Event is the envelope of every message on the spectator feed.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// GameOverPayload is the payload for the "game_over" event.
type GameOverPayload struct {
	GameID string      `json:"game_id"`
	Winner string      `json:"winner,omitempty"`
	Draw   bool        `json:"draw"`
	Score  proto.Score `json:"score"`
}

// Encode wraps payload in an Event of the given type and marshals it.
func Encode(eventType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	data, err := json.Marshal(Event{Type: eventType, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return data, nil
}

// FromSnapshot encodes the events a snapshot produces: always a snapshot
// event, followed by a game_over event once the game has ended.
func FromSnapshot(s proto.Snapshot) ([][]byte, error) {
	snap, err := Encode(TypeSnapshot, s)
	if err != nil {
		return nil, err
	}
	out := [][]byte{snap}
	if !s.Over {
		return out, nil
	}

	over, err := Encode(TypeGameOver, GameOverPayload{
		GameID: s.GameID,
		Winner: s.Winner,
		Draw:   s.Draw,
		Score:  s.Score,
	})
	if err != nil {
		return nil, err
	}
	return append(out, over), nil
}
