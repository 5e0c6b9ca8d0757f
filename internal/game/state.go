package game

import "fmt"

// GameResult is the terminal outcome of a game, if any.
type GameResult string

const (
	ResultNone GameResult = ""
	XWins      GameResult = "XWins"
	OWins      GameResult = "OWins"
	Draw       GameResult = "Draw"
)

// Outcome describes what a single accepted move did to the game.
type Outcome int

const (
	// Continued means the turn passed to the other player.
	Continued Outcome = iota
	// Won means the mover completed a winning line.
	Won
	// Drawn means the board filled up without a winner.
	Drawn
)

// GameState is the whole state of one game.
type GameState struct {
	Board  Board
	Turn   PlayerMark
	Active bool
	Result GameResult
}

// NewGameState returns a fresh game: empty board, X to move.
func NewGameState() GameState {
	return GameState{
		Turn:   PlayerX,
		Active: true,
		Result: ResultNone,
	}
}

// Reset puts the state back to its initial values.
func (s *GameState) Reset() {
	*s = NewGameState()
}

// Play applies a move for the mark whose turn it is and advances the game.
// On error the state is left untouched.
func (s *GameState) Play(index int) (Outcome, error) {
	if !s.Active {
		return Continued, fmt.Errorf("%w: game is not active", ErrInvalidMove)
	}

	mark := s.Turn
	if err := s.Board.ApplyMove(index, mark); err != nil {
		return Continued, err
	}

	if Evaluate(&s.Board, mark) {
		s.Active = false
		s.Result = resultFor(mark)
		return Won, nil
	}

	if IsDraw(&s.Board) {
		s.Active = false
		s.Result = Draw
		return Drawn, nil
	}

	s.Turn = mark.Opponent()
	return Continued, nil
}

// Winner returns the winning mark, or None if the game is not won.
func (s *GameState) Winner() PlayerMark {
	switch s.Result {
	case XWins:
		return PlayerX
	case OWins:
		return PlayerO
	default:
		return None
	}
}

func resultFor(mark PlayerMark) GameResult {
	if mark == PlayerX {
		return XWins
	}
	return OWins
}
