package room

import (
	"ctchen222/tictactoe-ai/internal/game"
	"fmt"
)

// Snapshot is a copy of a room's state at one point in time.
type Snapshot struct {
	RoomID     string
	Board      game.Board
	Next       game.PlayerMark
	Active     bool
	Result     game.GameResult
	Winner     game.PlayerMark
	Mode       game.Mode
	Difficulty game.Difficulty
	// Seq increases with every change, so observers can drop stale snapshots.
	Seq uint64
}

// Status is the one-line text a renderer shows under the board.
func (s Snapshot) Status() string {
	switch s.Result {
	case game.XWins, game.OWins:
		return fmt.Sprintf("%s Wins!", s.Winner)
	case game.Draw:
		return "Draw!"
	}
	return fmt.Sprintf("Player %s's turn", s.Next)
}

func (r *Room) snapshotLocked() Snapshot {
	return Snapshot{
		RoomID:     r.ID,
		Board:      r.state.Board,
		Next:       r.state.Turn,
		Active:     r.state.Active,
		Result:     r.state.Result,
		Winner:     r.state.Winner(),
		Mode:       r.mode,
		Difficulty: r.difficulty,
		Seq:        r.seq,
	}
}
