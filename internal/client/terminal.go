package client

import (
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/player"
	"ctchen222/Connect-Four/pkg/proto"
	"fmt"
	"io"
	"strings"
	"sync"
)

// TerminalRenderer prints the session as ASCII to an io.Writer. Columns
// are shown to the user numbered from 1.
type TerminalRenderer struct {
	mu    sync.Mutex
	out   io.Writer
	role  player.Role
	turns chan struct{}
}

func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out, turns: make(chan struct{}, 1)}
}

// Turns signals every time the player is asked for a column.
func (t *TerminalRenderer) Turns() <-chan struct{} {
	return t.turns
}

func (t *TerminalRenderer) Assigned(role player.Role) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.role = role
	fmt.Fprintf(t.out, "You are %s (%s).\n", role, role.Token())
	if role == player.RoleFirst {
		fmt.Fprintln(t.out, "Waiting for an opponent...")
	}
}

func (t *TerminalRenderer) Started() {
	fmt.Fprintln(t.out, "Game started.")
}

func (t *TerminalRenderer) Placed(move game.Move) {
	fmt.Fprintf(t.out, "%s dropped into column %d.\n", move.Token, move.Column+1)
}

func (t *TerminalRenderer) Status(status int32) {
	if status == proto.Continue {
		return
	}
	fmt.Fprintf(t.out, "Server says: %s\n", proto.StatusName(status))
}

func (t *TerminalRenderer) YourTurn(board *game.Board) {
	fmt.Fprint(t.out, RenderBoard(board))
	fmt.Fprintf(t.out, "Your move, pick a column 1-%d: ", board.Columns())
	select {
	case t.turns <- struct{}{}:
	default:
	}
}

func (t *TerminalRenderer) Finished(outcome game.Outcome) {
	t.mu.Lock()
	role := t.role
	t.mu.Unlock()

	switch {
	case outcome.Kind == game.Draw:
		fmt.Fprintln(t.out, "Draw.")
	case outcome.Winner == role.Token():
		fmt.Fprintln(t.out, "You win!")
	default:
		fmt.Fprintln(t.out, "You lose.")
	}
}

// RenderBoard draws the board with a column ruler underneath.
func RenderBoard(b *game.Board) string {
	var sb strings.Builder
	for r := 0; r < b.Rows(); r++ {
		sb.WriteByte('|')
		for c := 0; c < b.Columns(); c++ {
			switch b.Cell(r, c) {
			case game.Empty:
				sb.WriteByte('.')
			default:
				sb.WriteString(b.Cell(r, c).String())
			}
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte(' ')
	for c := 0; c < b.Columns(); c++ {
		fmt.Fprintf(&sb, "%d ", (c+1)%10)
	}
	sb.WriteByte('\n')
	return sb.String()
}
