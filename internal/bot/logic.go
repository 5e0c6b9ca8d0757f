package bot

import (
	"ctchen222/tictactoe-ai/internal/game"
	"math/rand/v2"
)

// CalculateNextMove determines the bot's next move based on the specified difficulty.
// It returns -1 when the board has no empty cell.
func CalculateNextMove(board game.Board, botMark game.PlayerMark, difficulty game.Difficulty) int {
	switch difficulty {
	case game.Beginner:
		return beginnerMove(board)
	case game.Amateur:
		return amateurMove(board, botMark)
	default:
		return BestMove(board, botMark)
	}
}

// beginnerMove makes a completely random move.
func beginnerMove(board game.Board) int {
	var availableMoves []int
	for i := range board.EmptyIndices() {
		availableMoves = append(availableMoves, i)
	}

	if len(availableMoves) == 0 {
		return -1 // No moves left
	}

	return availableMoves[rand.IntN(len(availableMoves))]
}

// amateurMove will win if it can, block if it must, otherwise move randomly.
func amateurMove(board game.Board, botMark game.PlayerMark) int {
	// 1. Win: Check if the bot can win in the next move
	if index, canWin := findWinningMove(board, botMark); canWin {
		return index
	}

	// 2. Block: Check if the opponent is about to win and block them
	if index, canBlock := findWinningMove(board, botMark.Opponent()); canBlock {
		return index
	}

	// 3. Random: Otherwise, make a random move
	return beginnerMove(board)
}

// findWinningMove scans the winning lines in table order for two cells held by
// mark and an empty third. The first such line decides.
func findWinningMove(board game.Board, mark game.PlayerMark) (index int, found bool) {
	for _, line := range game.WinningLines() {
		held, empty := 0, -1
		for _, cell := range line {
			switch board[cell] {
			case mark:
				held++
			case game.None:
				empty = cell
			}
		}
		if held == 2 && empty != -1 {
			return empty, true
		}
	}
	return -1, false
}
