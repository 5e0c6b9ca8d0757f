package models

import (
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/room"
)

// CreateSessionRequest is the body of POST /api/sessions. Both fields are
// optional.
type CreateSessionRequest struct {
	Mode       string `json:"mode" binding:"omitempty,oneof=human bot"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=beginner amateur pro"`
}

// MoveRequest is the body of POST /api/sessions/:id/moves. Range checks are
// left to the game so that they are reported as invalid moves.
type MoveRequest struct {
	Index *int `json:"index" binding:"required"`
}

type ModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=human bot"`
}

type DifficultyRequest struct {
	Difficulty string `json:"difficulty" binding:"required,oneof=beginner amateur pro"`
}

// State is the JSON form of a room snapshot.
type State struct {
	SessionID  string              `json:"session_id"`
	Board      [][]game.PlayerMark `json:"board"`
	Next       game.PlayerMark     `json:"next"`
	Active     bool                `json:"active"`
	Result     game.GameResult     `json:"result,omitempty"`
	Winner     game.PlayerMark     `json:"winner,omitempty"`
	Mode       game.Mode           `json:"mode"`
	Difficulty game.Difficulty     `json:"difficulty"`
	Seq        uint64              `json:"seq"`
	Status     string              `json:"status"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	State     State  `json:"state"`
}

// NewState converts a snapshot into its JSON form.
func NewState(snap room.Snapshot) State {
	return State{
		SessionID:  snap.RoomID,
		Board:      snap.Board.Rows(),
		Next:       snap.Next,
		Active:     snap.Active,
		Result:     snap.Result,
		Winner:     snap.Winner,
		Mode:       snap.Mode,
		Difficulty: snap.Difficulty,
		Seq:        snap.Seq,
		Status:     snap.Status(),
	}
}
