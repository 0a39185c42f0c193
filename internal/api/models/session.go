package models

import (
	"ctchen222/Connect-Four/internal/bot"
	"ctchen222/Connect-Four/internal/hub/types"
	"ctchen222/Connect-Four/internal/repository"
	"time"
)

// JoinRequest defines the query of a WebSocket join request.
type JoinRequest struct {
	Mode       string `form:"mode" validate:"omitempty,oneof=human bot"`
	Difficulty string `form:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// Normalize fills in the defaults for omitted fields.
func (r *JoinRequest) Normalize() {
	if r.Mode == "" {
		r.Mode = types.ModeHuman
	}
	if r.Mode == types.ModeBot && r.Difficulty == "" {
		r.Difficulty = bot.DifficultyEasy
	}
}

// LastMove is the most recent disc of a session.
type LastMove struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Token  string `json:"token"`
}

// SessionResponse describes a live session.
type SessionResponse struct {
	ID         string    `json:"id"`
	Number     int       `json:"number"`
	Mode       string    `json:"mode"`
	FirstAddr  string    `json:"first_addr"`
	SecondAddr string    `json:"second_addr"`
	Status     string    `json:"status"`
	Moves      int       `json:"moves"`
	Board      string    `json:"board"` // row-major, '0' empty, '1' first, '2' second
	LastMove   *LastMove `json:"last_move,omitempty"`
	StartedAt  time.Time `json:"started_at"`
}

// NewSessionResponse converts a repository record.
func NewSessionResponse(rec repository.SessionRecord) SessionResponse {
	resp := SessionResponse{
		ID:         rec.ID,
		Number:     rec.Number,
		Mode:       rec.Mode,
		FirstAddr:  rec.FirstAddr,
		SecondAddr: rec.SecondAddr,
		Status:     rec.Status,
		Moves:      rec.Moves,
		Board:      rec.Board,
		StartedAt:  rec.StartedAt,
	}
	if rec.LastMove != nil {
		resp.LastMove = &LastMove{
			Row:    rec.LastMove.Row,
			Column: rec.LastMove.Column,
			Token:  rec.LastMove.Token.String(),
		}
	}
	return resp
}
