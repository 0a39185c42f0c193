package room

import (
	apperr "ctchen222/Connect-Four/internal/errors"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/player"
	"ctchen222/Connect-Four/pkg/proto"
)

// announce sends the result of a move to both players.
//
// Continue: status to the passive player, then the placement to the active
// player, then the placement to the passive player. The active player never
// gets a status for its own continuing move.
//
// Win and Draw: placement to the active player, the status to First then
// Second, then the placement to the passive player.
func (r *Room) announce(active, passive *player.Player, move game.Move, outcome game.Outcome) error {
	if outcome.Kind == game.Continue {
		if err := r.sendStatus(passive, proto.Continue); err != nil {
			return err
		}
		if err := r.sendPlacement(active, move); err != nil {
			return err
		}
		return r.sendPlacement(passive, move)
	}

	status := proto.Draw
	if outcome.Kind == game.Win {
		status = proto.WinStatus(player.RoleForToken(outcome.Winner).Wire())
	}

	if err := r.sendPlacement(active, move); err != nil {
		return err
	}
	for _, p := range r.Players {
		if err := r.sendStatus(p, status); err != nil {
			return err
		}
	}
	return r.sendPlacement(passive, move)
}

func (r *Room) sendStatus(p *player.Player, status int32) error {
	if err := p.Conn.SendInt(status); err != nil {
		return r.sendFault(p, err)
	}
	return nil
}

func (r *Room) sendPlacement(p *player.Player, move game.Move) error {
	if err := proto.SendPlacement(p.Conn, move.Row, move.Column); err != nil {
		return r.sendFault(p, err)
	}
	return nil
}

func (r *Room) sendFault(p *player.Player, err error) error {
	return &apperr.TransportError{Session: r.ID, Peer: p.Role.String(), Op: "send", Err: err}
}
