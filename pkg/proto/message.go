// Package proto defines the integer wire protocol spoken between the
// server and each player. Every message is a sequence of big-endian
// signed 32-bit integers with no framing beyond integer boundaries.
package proto

import (
	apperr "ctchen222/Connect-Four/internal/errors"
	"fmt"
)

// Role assignment, sent once right after a peer is accepted.
const (
	Player1 int32 = 1
	Player2 int32 = 2
)

// Status values. Win values reuse the role numbers of the winner.
const (
	Player1Won int32 = 1
	Player2Won int32 = 2
	Draw       int32 = 3
	Continue   int32 = 4
)

// StartSignal is written to the first player once the second has joined.
// Its value carries no meaning.
const StartSignal int32 = 1

// Sender is the write half of a peer channel.
type Sender interface {
	SendInt(value int32) error
}

// Receiver is the read half of a peer channel.
type Receiver interface {
	ReceiveInt() (int32, error)
}

// SendPlacement writes an authoritative (row, column) pair.
func SendPlacement(s Sender, row, col int) error {
	if err := s.SendInt(int32(row)); err != nil {
		return err
	}
	return s.SendInt(int32(col))
}

// ReceivePlacement reads a (row, column) pair.
func ReceivePlacement(r Receiver) (row, col int, err error) {
	rv, err := r.ReceiveInt()
	if err != nil {
		return 0, 0, err
	}
	cv, err := r.ReceiveInt()
	if err != nil {
		return 0, 0, err
	}
	return int(rv), int(cv), nil
}

// SendSelection writes a column choice. The row is a placeholder that
// the server ignores.
func SendSelection(s Sender, rowHint, col int) error {
	return SendPlacement(s, rowHint, col)
}

// ReceiveSelection reads a column choice and discards the row placeholder.
func ReceiveSelection(r Receiver) (col int, err error) {
	_, col, err = ReceivePlacement(r)
	return col, err
}

// WinStatus returns the status value announcing a win by the given role.
func WinStatus(role int32) int32 {
	if role == Player2 {
		return Player2Won
	}
	return Player1Won
}

// ValidateRole checks a role assignment value.
func ValidateRole(v int32) error {
	if v != Player1 && v != Player2 {
		return &apperr.ProtocolError{Op: "role", Value: int(v), Err: apperr.ErrUnknownRole}
	}
	return nil
}

// StatusName is used in logs.
func StatusName(v int32) string {
	switch v {
	case Player1Won:
		return "player1_won"
	case Player2Won:
		return "player2_won"
	case Draw:
		return "draw"
	case Continue:
		return "continue"
	default:
		return fmt.Sprintf("unknown(%d)", v)
	}
}
