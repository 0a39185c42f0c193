package room

import (
	"context"
	apperr "ctchen222/Connect-Four/internal/errors"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/player"
	"ctchen222/Connect-Four/pkg/proto"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// handleTurn reads one column choice from the active player, applies it and
// notifies both players.
func (r *Room) handleTurn(ctx context.Context, active, passive *player.Player) (game.Outcome, error) {
	ctx, span := tracer.Start(ctx, "room.handleTurn", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("player.role", active.Role.String()),
		attribute.Int("move.number", len(r.moves)+1),
	))
	defer span.End()

	col, err := proto.ReceiveSelection(active.Conn)
	if err != nil {
		err = r.receiveFault(active, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to receive selection")
		return game.Outcome{}, err
	}
	span.SetAttributes(attribute.Int("move.column", col))

	// The board is updated before any message about this move goes out.
	move, outcome, err := game.Drop(r.board, col, active.Role.Token())
	if err != nil {
		perr := &apperr.ProtocolError{
			Session: r.ID,
			Peer:    active.Role.String(),
			Op:      "select",
			Value:   col,
			Err:     err,
		}
		slog.WarnContext(ctx, "Rejected selection", "room.id", r.ID, "player.role", active.Role.String(), "move.column", col, "error", err)
		span.RecordError(perr)
		span.SetStatus(codes.Error, "Protocol violation")
		return game.Outcome{}, perr
	}
	r.moves = append(r.moves, move)
	span.SetAttributes(
		attribute.Int("move.row", move.Row),
		attribute.String("move.outcome", outcome.String()),
	)
	slog.DebugContext(ctx, "Move applied", "room.id", r.ID, "player.role", active.Role.String(),
		"move.row", move.Row, "move.column", move.Column, "outcome", outcome.String())

	if err := r.announce(active, passive, move, outcome); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to announce move")
		return game.Outcome{}, err
	}

	r.record(ctx, move, outcome)
	return outcome, nil
}

// record forwards the move to the recorder. Errors are logged only.
func (r *Room) record(ctx context.Context, move game.Move, outcome game.Outcome) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.RecordMove(ctx, r.ID, move, outcome, r.board); err != nil {
		slog.WarnContext(ctx, "Failed to record move", "room.id", r.ID, "error", err)
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

// receiveFault classifies a failed read. Malformed frames stay protocol
// violations; everything else is a transport fault.
func (r *Room) receiveFault(p *player.Player, err error) error {
	var perr *apperr.ProtocolError
	if apperr.As(err, &perr) {
		perr.Session = r.ID
		perr.Peer = p.Role.String()
		return perr
	}
	return &apperr.TransportError{Session: r.ID, Peer: p.Role.String(), Op: "receive", Err: err}
}
