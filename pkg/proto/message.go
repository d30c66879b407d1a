package proto

// TypeSnapshot is the message type of a game snapshot.
const TypeSnapshot = "snapshot"

// Score is the running win count shown to spectators.
type Score struct {
	Player1 uint32 `json:"player1"`
	Player2 uint32 `json:"player2"`
}

// Snapshot is the state of the running game as sent to spectators.
type Snapshot struct {
	Type     string       `json:"type" validate:"required"`
	GameID   string       `json:"game_id" validate:"required,uuid"`
	Opponent string       `json:"opponent" validate:"required,opponent"`
	Board    [3][3]string `json:"board"`
	Current  string       `json:"current,omitempty"`
	Cursor   [2]int       `json:"cursor"`
	Over     bool         `json:"over"`
	Winner   string       `json:"winner,omitempty"`
	Draw     bool         `json:"draw"`
	Score    Score        `json:"score"`
}
