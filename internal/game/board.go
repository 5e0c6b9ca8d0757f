package game

import (
	"errors"
	"fmt"
	"iter"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Board boundaries
	BorderMin = 0
	BorderMax = 8
	Size      = BorderMax + 1
)

// ErrInvalidMove is the only error the engine produces. It is always
// recoverable: the rejected call leaves the game untouched.
var ErrInvalidMove = errors.New("invalid move")

// Opponent returns the other player's mark. None has no opponent.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// IsPlayer reports whether m is X or O.
func (m PlayerMark) IsPlayer() bool {
	return m == PlayerX || m == PlayerO
}

// Board is a 3x3 grid stored row-major, cells 0..8.
type Board [Size]PlayerMark

// ApplyMove places mark at index. Only the target cell changes.
func (b *Board) ApplyMove(index int, mark PlayerMark) error {
	if index < BorderMin || index > BorderMax {
		return fmt.Errorf("%w: cell %d out of range", ErrInvalidMove, index)
	}
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: mark %q", ErrInvalidMove, mark)
	}
	if b[index] != None {
		return fmt.Errorf("%w: cell %d already occupied", ErrInvalidMove, index)
	}
	b[index] = mark
	return nil
}

// EmptyIndices yields the empty cells in ascending order.
func (b *Board) EmptyIndices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, cell := range b {
			if cell != None {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

// IsFull reports whether no empty cell remains.
func (b *Board) IsFull() bool {
	for range b.EmptyIndices() {
		return false
	}
	return true
}

// Rows returns the board as a 3x3 grid, handy for renderers.
func (b Board) Rows() [][]PlayerMark {
	rows := make([][]PlayerMark, 3)
	for r := range [3]int{} {
		rows[r] = []PlayerMark{b[r*3], b[r*3+1], b[r*3+2]}
	}
	return rows
}
