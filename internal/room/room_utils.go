package room

import (
	"ctchen222/Connect-Four/internal/game"
)

// State returns the current lifecycle state. Safe to call from the Run
// goroutine, or from anywhere after Done is closed.
func (r *Room) State() State {
	return r.state
}

// Outcome returns the terminal outcome once the state is StateGameOver.
func (r *Room) Outcome() game.Outcome {
	return r.outcome
}

// Board returns a copy of the board.
func (r *Room) Board() *game.Board {
	return r.board.Clone()
}

// Moves returns a copy of the applied moves in order.
func (r *Room) Moves() []game.Move {
	out := make([]game.Move, len(r.moves))
	copy(out, r.moves)
	return out
}
