// Package errors provides the error taxonomy shared by the arbiter, the
// pairing side and the presentation client.
//
// Faults that end a session carry the session id and peer role so the
// hub can log and publish them without string parsing.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrColumnFull       = errors.New("column is full")
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrCellOccupied     = errors.New("cell already occupied")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrSelectionPending = errors.New("selection already pending")
	ErrUnknownStatus    = errors.New("unknown status value")
	ErrUnknownRole      = errors.New("unknown role value")
	ErrMalformedFrame   = errors.New("malformed frame")
)

// ── Structured error types ───────────────────────────────────────────

// ProtocolError is a protocol violation by a peer, such as a drop into a
// full column. It is fatal to the session.
type ProtocolError struct {
	Session string // session id, empty on the client side
	Peer    string // "first" or "second"
	Op      string // "select", "place", "status", "role", "frame"
	Value   int    // offending value
	Err     error
}

func (e *ProtocolError) Error() string {
	s := fmt.Sprintf("protocol violation: %s", e.Op)
	if e.Peer != "" {
		s += " by " + e.Peer
	}
	if e.Session != "" {
		s += " in session " + e.Session
	}
	return fmt.Sprintf("%s (value %d): %v", s, e.Value, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// TransportError is a read or write failure on a peer channel. It is
// fatal to the session and never retried.
type TransportError struct {
	Session string
	Peer    string
	Op      string // "send" or "receive"
	Err     error
}

func (e *TransportError) Error() string {
	s := "transport fault: " + e.Op
	if e.Peer != "" {
		if e.Op == "receive" {
			s += " from " + e.Peer
		} else {
			s += " to " + e.Peer
		}
	}
	if e.Session != "" {
		s += " in session " + e.Session
	}
	return s + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// PairingError is a failure while accepting or pairing a connection.
// It never affects sessions that are already running.
type PairingError struct {
	Op   string // "listen", "accept", "assign", "start"
	Addr string
	Err  error
}

func (e *PairingError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("pairing %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pairing %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *PairingError) Unwrap() error { return e.Err }

// ── Classification helpers ───────────────────────────────────────────

// IsProtocolViolation reports whether err is or wraps a ProtocolError.
func IsProtocolViolation(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// IsTransportFault reports whether err is or wraps a TransportError.
func IsTransportFault(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsPairingFault reports whether err is or wraps a PairingError.
func IsPairingFault(err error) bool {
	var pe *PairingError
	return errors.As(err, &pe)
}

// Kind returns a short label for metrics and events.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsProtocolViolation(err):
		return "protocol_violation"
	case IsTransportFault(err):
		return "transport_fault"
	case IsPairingFault(err):
		return "pairing_fault"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}

// ── Re-exports for convenience ───────────────────────────────────────

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
