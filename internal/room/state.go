package room

import "ctchen222/Connect-Four/internal/player"

// State is the arbiter's position in the session lifecycle. The two
// awaiting states belong to the pairing side; a Room is only built once
// both players are present.
type State int

const (
	StateAwaitingFirstPlayer State = iota
	StateAwaitingSecondPlayer
	StateFirstPlayerTurn
	StateSecondPlayerTurn
	StateGameOver
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateAwaitingFirstPlayer:
		return "awaiting_first_player"
	case StateAwaitingSecondPlayer:
		return "awaiting_second_player"
	case StateFirstPlayerTurn:
		return "first_player_turn"
	case StateSecondPlayerTurn:
		return "second_player_turn"
	case StateGameOver:
		return "game_over"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further moves will be read.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateAborted
}

func turnState(role player.Role) State {
	if role == player.RoleSecond {
		return StateSecondPlayerTurn
	}
	return StateFirstPlayerTurn
}
