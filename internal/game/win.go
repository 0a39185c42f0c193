package game

// directions are the four line orientations: horizontal, vertical and the
// two diagonals. Every window is walked from its first cell along d.
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // top-left to bottom-right
	{1, -1}, // top-right to bottom-left
}

// HasWinningLine reports whether token occupies WinLength consecutive cells
// in any orientation. It keeps no state between calls.
func HasWinningLine(b *Board, token Token) bool {
	if token == Empty {
		return false
	}
	n := b.rules.WinLength
	for r := 0; r < b.rules.Rows; r++ {
		for c := 0; c < b.rules.Columns; c++ {
			for _, d := range directions {
				if b.windowMatches(r, c, d[0], d[1], n, token) {
					return true
				}
			}
		}
	}
	return false
}

// windowMatches checks the n cells starting at (row, col) stepping (dr, dc).
// Windows that leave the board never match.
func (b *Board) windowMatches(row, col, dr, dc, n int, token Token) bool {
	endR, endC := row+dr*(n-1), col+dc*(n-1)
	if !b.InBounds(endR, endC) {
		return false
	}
	for i := 0; i < n; i++ {
		if b.cells[row+dr*i][col+dc*i] != token {
			return false
		}
	}
	return true
}
