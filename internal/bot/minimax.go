package bot

import (
	"ctchen222/tictactoe-ai/internal/game"
	"math"
)

const winScore = 10

// BestMove runs an exhaustive minimax search for botMark and returns the first
// empty cell (row-major) with the highest score, or -1 on a full board.
//
// Wins are scored 10-depth and losses depth-10, so the bot prefers the fastest
// win and the slowest loss. There is no pruning and no depth limit: cutting
// the search short would change which moves are optimal.
func BestMove(board game.Board, botMark game.PlayerMark) int {
	bestScore := math.MinInt
	bestIndex := -1

	for i := range board.EmptyIndices() {
		board[i] = botMark
		score := minimax(&board, botMark, 0, false)
		board[i] = game.None

		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	return bestIndex
}

// minimax scores board from botMark's point of view. maximizing is true when
// botMark is the next to move.
func minimax(board *game.Board, botMark game.PlayerMark, depth int, maximizing bool) int {
	opponent := botMark.Opponent()

	switch {
	case game.Evaluate(board, botMark):
		return winScore - depth
	case game.Evaluate(board, opponent):
		return depth - winScore
	case board.IsFull():
		return 0
	}

	if maximizing {
		best := math.MinInt
		for i := range board.EmptyIndices() {
			board[i] = botMark
			best = max(best, minimax(board, botMark, depth+1, false))
			board[i] = game.None
		}
		return best
	}

	best := math.MaxInt
	for i := range board.EmptyIndices() {
		board[i] = opponent
		best = min(best, minimax(board, botMark, depth+1, true))
		board[i] = game.None
	}
	return best
}
