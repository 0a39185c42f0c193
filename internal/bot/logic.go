package bot

import (
	"ctchen222/Connect-Four/internal/game"
	"math/rand/v2"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// BotMoveCalculator picks columns for a bot.
type BotMoveCalculator struct{}

// CalculateNextColumn calls the package-level function.
func (c *BotMoveCalculator) CalculateNextColumn(board *game.Board, token game.Token, difficulty string) int {
	return CalculateNextColumn(board, token, difficulty)
}

// CalculateNextColumn determines the bot's next column based on the
// specified difficulty. It returns -1 when no column is playable.
func CalculateNextColumn(board *game.Board, token game.Token, difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return easyMove(board)
	case DifficultyMedium:
		return mediumMove(board, token)
	case DifficultyHard:
		return hardMove(board, token)
	default:
		return hardMove(board, token)
	}
}

func playableColumns(board *game.Board) []int {
	var cols []int
	for c := 0; c < board.Columns(); c++ {
		if _, ok := board.LowestOpenRow(c); ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// easyMove drops into a random open column.
func easyMove(board *game.Board) int {
	cols := playableColumns(board)
	if len(cols) == 0 {
		return -1 // No moves left
	}
	return cols[rand.IntN(len(cols))]
}

// mediumMove will win if it can, block if it must, otherwise move randomly.
func mediumMove(board *game.Board, token game.Token) int {
	// 1. Win
	if col, ok := findWinningColumn(board, token); ok {
		return col
	}

	// 2. Block
	if col, ok := findWinningColumn(board, token.Opponent()); ok {
		return col
	}

	// 3. Random
	return easyMove(board)
}

// hardMove wins or blocks first, then avoids handing the opponent a win
// and picks the best scoring column, preferring the centre on ties.
func hardMove(board *game.Board, token game.Token) int {
	if col, ok := findWinningColumn(board, token); ok {
		return col
	}
	if col, ok := findWinningColumn(board, token.Opponent()); ok {
		return col
	}

	cols := playableColumns(board)
	if len(cols) == 0 {
		return -1
	}

	safe := make([]int, 0, len(cols))
	for _, c := range cols {
		if !givesOpponentWin(board, c, token) {
			safe = append(safe, c)
		}
	}
	if len(safe) == 0 {
		safe = cols
	}

	center := board.Columns() / 2
	best, bestScore := -1, 0
	for _, c := range safe {
		next := board.Clone()
		row, _ := next.LowestOpenRow(c)
		_ = next.Place(row, c, token)
		score := scorePosition(next, token)
		if best == -1 || score > bestScore || (score == bestScore && abs(c-center) < abs(best-center)) {
			best, bestScore = c, score
		}
	}
	return best
}

// findWinningColumn returns a column where token would complete a line.
func findWinningColumn(board *game.Board, token game.Token) (int, bool) {
	for _, c := range playableColumns(board) {
		next := board.Clone()
		row, _ := next.LowestOpenRow(c)
		_ = next.Place(row, c, token)
		if game.HasWinningLine(next, token) {
			return c, true
		}
	}
	return -1, false
}

// givesOpponentWin reports whether dropping into col lets the opponent
// win on the very next move.
func givesOpponentWin(board *game.Board, col int, token game.Token) bool {
	next := board.Clone()
	row, ok := next.LowestOpenRow(col)
	if !ok {
		return false
	}
	_ = next.Place(row, col, token)
	_, ok = findWinningColumn(next, token.Opponent())
	return ok
}

// scorePosition rates every window of WinLength cells: windows holding
// only token score by how full they are, windows holding only opponent
// tokens count against it. Centre column tokens add a small bonus.
func scorePosition(board *game.Board, token game.Token) int {
	n := board.Rules().WinLength
	score := 0

	center := board.Columns() / 2
	for r := 0; r < board.Rows(); r++ {
		if board.Cell(r, center) == token {
			score += 3
		}
	}

	dirs := [][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}
	for r := 0; r < board.Rows(); r++ {
		for c := 0; c < board.Columns(); c++ {
			for _, d := range dirs {
				endR, endC := r+d[0]*(n-1), c+d[1]*(n-1)
				if !board.InBounds(endR, endC) {
					continue
				}
				mine, theirs := 0, 0
				for i := 0; i < n; i++ {
					switch board.Cell(r+d[0]*i, c+d[1]*i) {
					case token:
						mine++
					case token.Opponent():
						theirs++
					}
				}
				score += windowScore(mine, theirs, n)
			}
		}
	}
	return score
}

func windowScore(mine, theirs, n int) int {
	switch {
	case mine > 0 && theirs > 0:
		return 0
	case mine == n:
		return 1000
	case mine == n-1:
		return 5
	case mine == n-2:
		return 2
	case theirs == n-1:
		return -4
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
