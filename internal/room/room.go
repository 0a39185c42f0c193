package room

import (
	"context"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/player"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("room")

// MoveRecorder is told about every applied move, e.g. to keep a live
// snapshot of the session. Recorder failures never end a session.
type MoveRecorder interface {
	RecordMove(ctx context.Context, roomID string, move game.Move, outcome game.Outcome, board *game.Board) error
}

// Option configures a Room.
type Option func(*Room)

// WithRecorder attaches a MoveRecorder.
func WithRecorder(rec MoveRecorder) Option {
	return func(r *Room) { r.recorder = rec }
}

// Room arbitrates one game between two paired players. It owns the board
// and is driven by a single goroutine calling Run.
type Room struct {
	ID      string
	Number  int
	Players [2]*player.Player // indexed First, Second

	board    *game.Board
	state    State
	outcome  game.Outcome
	moves    []game.Move
	recorder MoveRecorder
	Done     chan struct{}
}

// NewRoom creates a room for a paired First and Second player. The room
// starts in StateFirstPlayerTurn.
func NewRoom(id string, number int, first, second *player.Player, rules game.Rules, opts ...Option) *Room {
	first.Role = player.RoleFirst
	second.Role = player.RoleSecond
	r := &Room{
		ID:      id,
		Number:  number,
		Players: [2]*player.Player{first, second},
		board:   game.NewBoard(rules),
		state:   StateFirstPlayerTurn,
		Done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays the game to completion. It returns the terminal outcome, or a
// protocol or transport error that aborted the session. Run never closes
// the players' channels; that is left to the caller.
func (r *Room) Run(ctx context.Context) (game.Outcome, error) {
	ctx, span := tracer.Start(ctx, "room.Run", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("room.number", r.Number),
	))
	defer span.End()
	defer close(r.Done)

	slog.InfoContext(ctx, "Session started", "room.id", r.ID, "session.number", r.Number,
		"first.addr", r.Players[0].Addr, "second.addr", r.Players[1].Addr)

	active, passive := r.Players[0], r.Players[1]
	for {
		if err := ctx.Err(); err != nil {
			r.state = StateAborted
			slog.InfoContext(ctx, "Session cancelled", "room.id", r.ID, "moves", len(r.moves))
			return game.Outcome{}, err
		}

		outcome, err := r.handleTurn(ctx, active, passive)
		if err != nil {
			r.state = StateAborted
			slog.WarnContext(ctx, "Session aborted", "room.id", r.ID, "moves", len(r.moves), "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Session aborted")
			return game.Outcome{}, err
		}

		if outcome.Terminal() {
			r.state = StateGameOver
			r.outcome = outcome
			span.SetAttributes(
				attribute.String("room.outcome", outcome.String()),
				attribute.Int("room.moves", len(r.moves)),
			)
			slog.InfoContext(ctx, "Session finished", "room.id", r.ID, "outcome", outcome.String(), "moves", len(r.moves))
			return outcome, nil
		}

		active, passive = passive, active
		r.state = turnState(active.Role)
	}
}
