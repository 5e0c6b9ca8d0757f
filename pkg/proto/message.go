package proto

import "ctchen222/tictactoe-ai/internal/game"

// Client message types.
const (
	TypeMove       = "move"
	TypeMode       = "mode"
	TypeDifficulty = "difficulty"
	TypeRestart    = "restart"
)

// Server message types.
const (
	TypeSession   = "session"
	TypeUpdate    = "update"
	TypeCelebrate = "celebrate"
	TypeError     = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type       string `json:"type" validate:"required,oneof=move mode difficulty restart"`
	Index      *int   `json:"index,omitempty" validate:"required_if=Type move"`
	Mode       string `json:"mode,omitempty" validate:"required_if=Type mode,omitempty,oneof=human bot"`
	Difficulty string `json:"difficulty,omitempty" validate:"required_if=Type difficulty,omitempty,oneof=beginner amateur pro"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type       string              `json:"type" validate:"required"`
	Reason     string              `json:"reason,omitempty"`
	Board      [][]game.PlayerMark `json:"board,omitempty"`
	Next       game.PlayerMark     `json:"next,omitempty"`
	Active     bool                `json:"active"`
	Result     game.GameResult     `json:"result,omitempty"`
	Winner     game.PlayerMark     `json:"winner,omitempty"`
	Mode       game.Mode           `json:"mode,omitempty"`
	Difficulty game.Difficulty     `json:"difficulty,omitempty"`
	Seq        uint64              `json:"seq,omitempty"`
	Status     string              `json:"status,omitempty"`
}

// SessionMessage tells a client which session it was attached to.
type SessionMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}
