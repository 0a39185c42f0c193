package game

import (
	apperr "ctchen222/Connect-Four/internal/errors"
	"fmt"
)

// OutcomeKind says whether a move ended the game.
type OutcomeKind int

const (
	Continue OutcomeKind = iota
	Win
	Draw
)

func (k OutcomeKind) String() string {
	switch k {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "continue"
	}
}

// Outcome is the result of evaluating the board after a move.
type Outcome struct {
	Kind   OutcomeKind
	Winner Token // set only when Kind == Win
}

// Terminal reports whether the outcome ends the session.
func (o Outcome) Terminal() bool {
	return o.Kind == Win || o.Kind == Draw
}

func (o Outcome) String() string {
	if o.Kind == Win {
		return fmt.Sprintf("win(%s)", o.Winner)
	}
	return o.Kind.String()
}

// Move is a disc that has been dropped and settled.
type Move struct {
	Row    int   `json:"row"`
	Column int   `json:"column"`
	Token  Token `json:"token"`
}

// ResolveDrop returns the row a disc dropped into col would land on.
// A full column is an error; no fallback row is ever chosen.
func ResolveDrop(b *Board, col int) (int, error) {
	if col < 0 || col >= b.Columns() {
		return -1, fmt.Errorf("column %d: %w", col, apperr.ErrColumnOutOfRange)
	}
	row, ok := b.LowestOpenRow(col)
	if !ok {
		return -1, fmt.Errorf("column %d: %w", col, apperr.ErrColumnFull)
	}
	return row, nil
}

// Evaluate decides the outcome for the player who just moved with token:
// a winning line first, then a full board, otherwise play continues.
func Evaluate(b *Board, token Token) Outcome {
	if HasWinningLine(b, token) {
		return Outcome{Kind: Win, Winner: token}
	}
	if b.IsFull() {
		return Outcome{Kind: Draw}
	}
	return Outcome{Kind: Continue}
}

// Drop resolves, places and evaluates a move in one step.
func Drop(b *Board, col int, token Token) (Move, Outcome, error) {
	row, err := ResolveDrop(b, col)
	if err != nil {
		return Move{}, Outcome{}, err
	}
	if err := b.Place(row, col, token); err != nil {
		return Move{}, Outcome{}, err
	}
	return Move{Row: row, Column: col, Token: token}, Evaluate(b, token), nil
}

// BoardFromRows builds a board from rows of 'X', 'O' and '.' characters,
// top row first. It is used to restore snapshots and to write tests.
func BoardFromRows(rules Rules, rows ...string) (*Board, error) {
	if len(rows) != rules.Rows {
		return nil, fmt.Errorf("expected %d rows, got %d", rules.Rows, len(rows))
	}
	b := NewBoard(rules)
	for r, line := range rows {
		if len(line) != rules.Columns {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", r, rules.Columns, len(line))
		}
		for c, ch := range line {
			switch ch {
			case 'X':
				b.cells[r][c] = TokenA
			case 'O':
				b.cells[r][c] = TokenB
			case '.':
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected %q", r, c, ch)
			}
		}
	}
	return b, nil
}
