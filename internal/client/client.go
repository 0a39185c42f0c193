// Package client drives the peer side of the integer protocol. It keeps a
// mirror of the board built only from placements the server announces and
// reports progress to a Renderer.
package client

import (
	"context"
	apperr "ctchen222/Connect-Four/internal/errors"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/player"
	"ctchen222/Connect-Four/pkg/proto"
	"log/slog"
	"sync/atomic"
)

// Renderer receives protocol events. All callbacks run on the goroutine
// calling Play. YourTurn may call Select directly.
type Renderer interface {
	Assigned(role player.Role)
	Started()
	Placed(move game.Move)
	Status(status int32)
	YourTurn(board *game.Board)
	Finished(outcome game.Outcome)
}

// Client plays one session over a Channel. Both sides must play by the
// same game.Rules: the client decides from its own board whether a status
// follows its placement.
type Client struct {
	conn     player.Channel
	board    *game.Board
	renderer Renderer
	role     player.Role

	// pending is a single-slot handoff from Select to Play.
	pending chan selection
	// turn holds a read-only copy of the board while a selection is
	// wanted, nil otherwise. board itself is only touched by Play.
	turn atomic.Pointer[game.Board]
}

// selection is a column checked against the board of the turn it was
// made for.
type selection struct {
	turn *game.Board
	col  int
}

func New(conn player.Channel, rules game.Rules, r Renderer) *Client {
	return &Client{
		conn:     conn,
		board:    game.NewBoard(rules),
		renderer: r,
		pending:  make(chan selection, 1),
	}
}

// Role returns the assigned role, RoleUnassigned before the assignment
// arrives.
func (c *Client) Role() player.Role {
	return c.role
}

// Select hands a column to the turn loop. It fails when it is not this
// player's turn, a column is already waiting, or the column cannot take
// another token.
func (c *Client) Select(col int) error {
	b := c.turn.Load()
	if b == nil {
		return apperr.ErrNotYourTurn
	}
	if _, err := game.ResolveDrop(b, col); err != nil {
		return err
	}
	select {
	case c.pending <- selection{turn: b, col: col}:
		return nil
	default:
		return apperr.ErrSelectionPending
	}
}

// Play runs the session to its end and returns the announced outcome.
// It does not close the channel.
func (c *Client) Play(ctx context.Context) (game.Outcome, error) {
	v, err := c.conn.ReceiveInt()
	if err != nil {
		return game.Outcome{}, c.transportFault("receive", err)
	}
	role, err := player.RoleFromWire(v)
	if err != nil {
		return game.Outcome{}, err
	}
	c.role = role
	c.renderer.Assigned(role)
	slog.DebugContext(ctx, "Role assigned", "player.role", role.String())

	if role == player.RoleFirst {
		if _, err := c.conn.ReceiveInt(); err != nil {
			return game.Outcome{}, c.transportFault("receive", err)
		}
	}
	c.renderer.Started()

	mine := role == player.RoleFirst
	for {
		var (
			outcome game.Outcome
			done    bool
		)
		if mine {
			outcome, done, err = c.ownTurn(ctx)
		} else {
			outcome, done, err = c.opponentTurn()
		}
		if err != nil {
			return game.Outcome{}, err
		}
		if done {
			c.renderer.Finished(outcome)
			return outcome, nil
		}
		mine = !mine
	}
}

// ownTurn sends a selection and reads the placement. A status follows the
// placement only when the move ended the game.
func (c *Client) ownTurn(ctx context.Context) (game.Outcome, bool, error) {
	// Drop a column that raced in after the previous turn ended.
	select {
	case <-c.pending:
	default:
	}

	snap := c.board.Clone()
	c.turn.Store(snap)
	c.renderer.YourTurn(c.board.Clone())

	col := -1
	for col < 0 {
		select {
		case sel := <-c.pending:
			if sel.turn == snap {
				col = sel.col
			}
		case <-ctx.Done():
			c.turn.Store(nil)
			return game.Outcome{}, false, ctx.Err()
		}
	}
	c.turn.Store(nil)

	if err := proto.SendSelection(c.conn, 0, col); err != nil {
		return game.Outcome{}, false, c.transportFault("send", err)
	}

	if err := c.readPlacement(c.role.Token()); err != nil {
		return game.Outcome{}, false, err
	}
	if !game.Evaluate(c.board, c.role.Token()).Terminal() {
		return game.Outcome{}, false, nil
	}

	status, err := c.readStatus()
	if err != nil {
		return game.Outcome{}, false, err
	}
	if status == proto.Continue {
		return game.Outcome{}, false, &apperr.ProtocolError{Op: "status", Value: int(status), Err: apperr.ErrUnknownStatus}
	}
	return outcomeFromStatus(status), true, nil
}

// opponentTurn reads the status for the opponent's move followed by its
// placement.
func (c *Client) opponentTurn() (game.Outcome, bool, error) {
	status, err := c.readStatus()
	if err != nil {
		return game.Outcome{}, false, err
	}
	if err := c.readPlacement(c.role.Token().Opponent()); err != nil {
		return game.Outcome{}, false, err
	}
	if status == proto.Continue {
		return game.Outcome{}, false, nil
	}
	return outcomeFromStatus(status), true, nil
}

func (c *Client) readStatus() (int32, error) {
	v, err := c.conn.ReceiveInt()
	if err != nil {
		return 0, c.transportFault("receive", err)
	}
	switch v {
	case proto.Player1Won, proto.Player2Won, proto.Draw, proto.Continue:
	default:
		return 0, &apperr.ProtocolError{Op: "status", Value: int(v), Err: apperr.ErrUnknownStatus}
	}
	c.renderer.Status(v)
	return v, nil
}

func (c *Client) readPlacement(token game.Token) error {
	row, col, err := proto.ReceivePlacement(c.conn)
	if err != nil {
		return c.transportFault("receive", err)
	}
	if err := c.board.Place(row, col, token); err != nil {
		return &apperr.ProtocolError{Op: "place", Value: col, Err: err}
	}
	c.renderer.Placed(game.Move{Row: row, Column: col, Token: token})
	return nil
}

func (c *Client) transportFault(op string, err error) error {
	if apperr.IsProtocolViolation(err) {
		return err
	}
	return &apperr.TransportError{Peer: "server", Op: op, Err: err}
}

func outcomeFromStatus(status int32) game.Outcome {
	switch status {
	case proto.Player1Won:
		return game.Outcome{Kind: game.Win, Winner: game.TokenA}
	case proto.Player2Won:
		return game.Outcome{Kind: game.Win, Winner: game.TokenB}
	case proto.Draw:
		return game.Outcome{Kind: game.Draw}
	default:
		return game.Outcome{Kind: game.Continue}
	}
}
