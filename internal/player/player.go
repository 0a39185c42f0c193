package player

import (
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/pkg/proto"
)

// Channel is the framed integer transport to one remote player.
// Implementations must deliver values in the order they are sent.
type Channel interface {
	SendInt(value int32) error
	ReceiveInt() (int32, error)
	Close() error
}

// Role is fixed at pairing time and decides token and turn order.
type Role int

const (
	RoleUnassigned Role = iota
	RoleFirst
	RoleSecond
)

func (r Role) String() string {
	switch r {
	case RoleFirst:
		return "first"
	case RoleSecond:
		return "second"
	default:
		return "unassigned"
	}
}

// Token maps First to TokenA and Second to TokenB.
func (r Role) Token() game.Token {
	switch r {
	case RoleFirst:
		return game.TokenA
	case RoleSecond:
		return game.TokenB
	default:
		return game.Empty
	}
}

// Wire returns the role assignment value sent to the peer.
func (r Role) Wire() int32 {
	if r == RoleSecond {
		return proto.Player2
	}
	return proto.Player1
}

// RoleFromWire is the inverse of Wire.
func RoleFromWire(v int32) (Role, error) {
	if err := proto.ValidateRole(v); err != nil {
		return RoleUnassigned, err
	}
	if v == proto.Player2 {
		return RoleSecond, nil
	}
	return RoleFirst, nil
}

// RoleForToken returns the role playing token.
func RoleForToken(t game.Token) Role {
	switch t {
	case game.TokenA:
		return RoleFirst
	case game.TokenB:
		return RoleSecond
	default:
		return RoleUnassigned
	}
}

// Player represents one connected peer.
type Player struct {
	ID    string
	Addr  string
	Role  Role
	IsBot bool
	Conn  Channel
}

// NewPlayer creates a player that has not been assigned a role yet.
func NewPlayer(id, addr string, conn Channel) *Player {
	return &Player{
		ID:   id,
		Addr: addr,
		Conn: conn,
	}
}
