package client

import (
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/player"
)

// MultiRenderer forwards every callback to each renderer in order.
type MultiRenderer struct {
	renderers []Renderer
}

func NewMultiRenderer(renderers ...Renderer) *MultiRenderer {
	return &MultiRenderer{renderers: renderers}
}

func (m *MultiRenderer) Assigned(role player.Role) {
	for _, r := range m.renderers {
		r.Assigned(role)
	}
}

func (m *MultiRenderer) Started() {
	for _, r := range m.renderers {
		r.Started()
	}
}

func (m *MultiRenderer) Placed(move game.Move) {
	for _, r := range m.renderers {
		r.Placed(move)
	}
}

func (m *MultiRenderer) Status(status int32) {
	for _, r := range m.renderers {
		r.Status(status)
	}
}

func (m *MultiRenderer) YourTurn(board *game.Board) {
	for _, r := range m.renderers {
		r.YourTurn(board)
	}
}

func (m *MultiRenderer) Finished(outcome game.Outcome) {
	for _, r := range m.renderers {
		r.Finished(outcome)
	}
}
