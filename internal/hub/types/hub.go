package types

import (
	"context"
	"ctchen222/Connect-Four/internal/player"
)

const (
	ModeHuman = "human"
	ModeBot   = "bot"
)

// RegistrationRequest represents a request to register a player.
type RegistrationRequest struct {
	Player     *player.Player
	Mode       string // "human" or "bot"
	Difficulty string // "easy", "medium", "hard"
	Ctx        context.Context
}
