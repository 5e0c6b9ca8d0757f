package bot

import (
	"ctchen222/tictactoe-ai/internal/game"
	"slices"
	"testing"
)

const (
	x = game.PlayerX
	o = game.PlayerO
	e = game.None
)

func TestFindWinningMove(t *testing.T) {
	tests := []struct {
		name      string
		board     game.Board
		mark      game.PlayerMark
		wantIndex int
		wantFound bool
	}{
		{
			name:      "No winning move - empty board",
			board:     game.Board{},
			mark:      x,
			wantIndex: -1, wantFound: false,
		},
		{
			name:      "X can win - first row",
			board:     game.Board{x, x, e, o, o, e, e, e, e},
			mark:      x,
			wantIndex: 2, wantFound: true,
		},
		{
			name:      "O can win - second column",
			board:     game.Board{x, o, e, x, o, e, e, e, e},
			mark:      o,
			wantIndex: 7, wantFound: true,
		},
		{
			name:      "X can win - main diagonal gap in the middle",
			board:     game.Board{x, e, e, e, e, e, e, e, x},
			mark:      x,
			wantIndex: 4, wantFound: true,
		},
		{
			name:      "O can win - anti-diagonal",
			board:     game.Board{e, e, o, e, o, e, e, e, e},
			mark:      o,
			wantIndex: 6, wantFound: true,
		},
		{
			name:      "Table order decides between two lines",
			board:     game.Board{x, e, e, x, x, e, e, e, e},
			mark:      x,
			wantIndex: 5, wantFound: true, // row 3-4-5 comes before column 0-3-6
		},
		{
			name:      "Blocked line does not count",
			board:     game.Board{x, x, o, e, e, e, e, e, e},
			mark:      x,
			wantIndex: -1, wantFound: false,
		},
		{
			name:      "Full board, no win possible",
			board:     game.Board{x, o, x, o, x, o, o, x, o},
			mark:      x,
			wantIndex: -1, wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, found := findWinningMove(tt.board, tt.mark)
			if found != tt.wantFound || index != tt.wantIndex {
				t.Errorf("findWinningMove() got (%d, %v), want (%d, %v)", index, found, tt.wantIndex, tt.wantFound)
			}
		})
	}
}

func TestBeginnerMove(t *testing.T) {
	t.Run("Only one spot left", func(t *testing.T) {
		board := game.Board{x, o, x, o, x, o, x, e, o}
		if got := beginnerMove(board); got != 7 {
			t.Errorf("beginnerMove should pick the only available spot 7, got %d", got)
		}
	})

	t.Run("Picks only empty cells and eventually all of them", func(t *testing.T) {
		board := game.Board{x, e, e, e, o, e, e, e, e}
		empty := slices.Collect(board.EmptyIndices())
		seen := map[int]bool{}
		for range 500 {
			got := beginnerMove(board)
			if !slices.Contains(empty, got) {
				t.Fatalf("beginnerMove returned a non-empty cell %d", got)
			}
			seen[got] = true
		}
		if len(seen) != len(empty) {
			t.Errorf("beginnerMove covered %d of %d empty cells in 500 draws", len(seen), len(empty))
		}
	})

	t.Run("Full board", func(t *testing.T) {
		board := game.Board{x, o, x, o, x, o, x, o, x}
		if got := beginnerMove(board); got != -1 {
			t.Errorf("beginnerMove on a full board should return -1, got %d", got)
		}
	})
}

func TestAmateurMove(t *testing.T) {
	tests := []struct {
		name    string
		board   game.Board
		botMark game.PlayerMark
		want    int // -1 means any empty cell
	}{
		{
			name:    "Completes own row over blocking",
			board:   game.Board{o, o, e, x, x, e, e, e, e},
			botMark: o,
			want:    2,
		},
		{
			name:    "Wins on a later line over blocking an earlier one",
			board:   game.Board{x, x, e, o, o, e, e, e, e},
			botMark: o,
			want:    5,
		},
		{
			name:    "Blocks opponent when no win exists",
			board:   game.Board{x, x, e, o, e, e, e, e, e},
			botMark: o,
			want:    2,
		},
		{
			name:    "No immediate win or block, random move",
			board:   game.Board{x, e, e, e, o, e, e, e, e},
			botMark: o,
			want:    -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := amateurMove(tt.board, tt.botMark)
			if tt.want == -1 {
				if got < 0 || tt.board[got] != e {
					t.Errorf("amateurMove returned a non-empty spot %d for random move", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("amateurMove() got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateNextMove(t *testing.T) {
	tests := []struct {
		name       string
		board      game.Board
		difficulty game.Difficulty
		want       int // -1 with a non-full board means any empty cell
	}{
		{
			name:       "Pro difficulty - winning move",
			board:      game.Board{o, o, e, x, x, e, x, e, e},
			difficulty: game.Pro,
			want:       2,
		},
		{
			name:       "Amateur difficulty - blocking move",
			board:      game.Board{x, x, e, o, e, e, e, e, e},
			difficulty: game.Amateur,
			want:       2,
		},
		{
			name:       "Beginner difficulty - random valid move",
			board:      game.Board{},
			difficulty: game.Beginner,
			want:       -1,
		},
		{
			name:       "Unknown difficulty - defaults to pro",
			board:      game.Board{o, o, e, x, x, e, x, e, e},
			difficulty: game.Difficulty("invalid"),
			want:       2,
		},
		{
			name:       "Full board - pro",
			board:      game.Board{x, o, x, o, x, o, o, x, o},
			difficulty: game.Pro,
			want:       -1,
		},
		{
			name:       "Full board - beginner",
			board:      game.Board{x, o, x, o, x, o, o, x, o},
			difficulty: game.Beginner,
			want:       -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateNextMove(tt.board, o, tt.difficulty)
			if tt.want == -1 {
				if tt.board.IsFull() {
					if got != -1 {
						t.Errorf("CalculateNextMove on full board got %d, want -1", got)
					}
					return
				}
				if got < 0 || tt.board[got] != e {
					t.Errorf("CalculateNextMove returned a non-empty spot %d", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("CalculateNextMove() got %d, want %d", got, tt.want)
			}
		})
	}
}
