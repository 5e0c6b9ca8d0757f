package game

// winningLines lists the 8 index triples that win: rows, columns, diagonals.
var winningLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinningLines returns a copy of the winning line table. The order matters to
// callers that break ties by table order.
func WinningLines() [8][3]int {
	return winningLines
}

// Evaluate reports whether mark holds all three cells of any winning line.
func Evaluate(b *Board, mark PlayerMark) bool {
	if !mark.IsPlayer() {
		return false
	}
	for _, line := range winningLines {
		if b[line[0]] == mark && b[line[1]] == mark && b[line[2]] == mark {
			return true
		}
	}
	return false
}

// IsDraw reports whether the board is full with no winner.
func IsDraw(b *Board) bool {
	return b.IsFull() && !Evaluate(b, PlayerX) && !Evaluate(b, PlayerO)
}

// Winner returns the mark holding a winning line, or None.
func Winner(b *Board) PlayerMark {
	switch {
	case Evaluate(b, PlayerX):
		return PlayerX
	case Evaluate(b, PlayerO):
		return PlayerO
	default:
		return None
	}
}
