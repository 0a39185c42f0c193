package game

import (
	apperr "ctchen222/Connect-Four/internal/errors"
	"fmt"
	"strings"
)

// Token represents the content of a cell: empty or one of the two players' discs.
type Token int8

const (
	Empty  Token = 0
	TokenA Token = 1 // first player, rendered X
	TokenB Token = 2 // second player, rendered O
)

func (t Token) String() string {
	switch t {
	case TokenA:
		return "X"
	case TokenB:
		return "O"
	default:
		return "."
	}
}

// Opponent returns the other player's token. Empty maps to Empty.
func (t Token) Opponent() Token {
	switch t {
	case TokenA:
		return TokenB
	case TokenB:
		return TokenA
	default:
		return Empty
	}
}

// Rules fixes the board geometry and the line length needed to win.
type Rules struct {
	Rows      int `json:"rows" validate:"min=1,max=64"`
	Columns   int `json:"columns" validate:"min=1,max=64"`
	WinLength int `json:"win_length" validate:"min=2"`
}

// DefaultRules is classic Connect Four: 6 rows, 7 columns, four in a row.
func DefaultRules() Rules {
	return Rules{Rows: 6, Columns: 7, WinLength: 4}
}

// Validate checks that a line of WinLength fits on the board.
func (r Rules) Validate() error {
	if r.Rows < 1 || r.Columns < 1 {
		return fmt.Errorf("board must have at least one row and column, got %dx%d", r.Rows, r.Columns)
	}
	if r.WinLength < 2 {
		return fmt.Errorf("win length must be at least 2, got %d", r.WinLength)
	}
	if r.WinLength > r.Rows && r.WinLength > r.Columns {
		return fmt.Errorf("win length %d does not fit on a %dx%d board", r.WinLength, r.Rows, r.Columns)
	}
	return nil
}

// Board is the authoritative grid. Row 0 is the top row; discs settle on
// the highest row index that is still empty in their column.
type Board struct {
	rules Rules
	cells [][]Token
}

// NewBoard returns an empty board for the given rules.
func NewBoard(rules Rules) *Board {
	cells := make([][]Token, rules.Rows)
	for r := range cells {
		cells[r] = make([]Token, rules.Columns)
	}
	return &Board{rules: rules, cells: cells}
}

func (b *Board) Rules() Rules { return b.rules }
func (b *Board) Rows() int    { return b.rules.Rows }
func (b *Board) Columns() int { return b.rules.Columns }

// InBounds reports whether (row, col) is a cell of the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rules.Rows && col >= 0 && col < b.rules.Columns
}

// Cell returns the token at (row, col). Out of range cells read as Empty.
func (b *Board) Cell(row, col int) Token {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

// LowestOpenRow scans the column from the bottom row upward and returns the
// first empty row. ok is false when the column is full or out of range.
func (b *Board) LowestOpenRow(col int) (row int, ok bool) {
	if col < 0 || col >= b.rules.Columns {
		return -1, false
	}
	for r := b.rules.Rows - 1; r >= 0; r-- {
		if b.cells[r][col] == Empty {
			return r, true
		}
	}
	return -1, false
}

// Place sets an empty cell to token. Occupied cells are never overwritten.
func (b *Board) Place(row, col int, token Token) error {
	if !b.InBounds(row, col) {
		return fmt.Errorf("place (%d,%d): %w", row, col, apperr.ErrColumnOutOfRange)
	}
	if b.cells[row][col] != Empty {
		return fmt.Errorf("place (%d,%d): %w", row, col, apperr.ErrCellOccupied)
	}
	b.cells[row][col] = token
	return nil
}

// IsFull reports whether every cell is occupied.
func (b *Board) IsFull() bool {
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := NewBoard(b.rules)
	for r := range b.cells {
		copy(out.cells[r], b.cells[r])
	}
	return out
}

// String flattens the board row by row into '0', '1', '2' characters.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.rules.Rows * b.rules.Columns)
	for r := range b.cells {
		for c := range b.cells[r] {
			sb.WriteByte(byte('0' + b.cells[r][c]))
		}
	}
	return sb.String()
}
