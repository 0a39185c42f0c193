package hub

import (
	"context"
	apperr "ctchen222/Connect-Four/internal/errors"
	"ctchen222/Connect-Four/internal/events"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/player"
	"ctchen222/Connect-Four/internal/repository"
	"ctchen222/Connect-Four/internal/room"
	"ctchen222/Connect-Four/pkg/proto"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startSession signals First that its opponent has joined and runs a room
// for the pair on its own goroutine.
func (h *Hub) startSession(ctx context.Context, first, second *player.Player, mode string) {
	number := int(h.counter.Add(1))
	roomID := uuid.New().String()

	ctx, span := tracer.Start(ctx, "hub.startSession", trace.WithAttributes(
		attribute.String("room.id", roomID),
		attribute.Int("session.number", number),
		attribute.String("session.mode", mode),
	))
	defer span.End()

	if err := first.Conn.SendInt(proto.StartSignal); err != nil {
		perr := &apperr.PairingError{Op: "start", Addr: first.Addr, Err: err}
		slog.WarnContext(ctx, "Could not start session", "session.number", number, "player.id", first.ID, "error", perr)
		span.RecordError(perr)
		span.SetStatus(codes.Error, "Could not send start signal")
		_ = first.Conn.Close()
		_ = second.Conn.Close()
		h.PairingFailed(perr)
		return
	}

	r := room.NewRoom(roomID, number, first, second, h.rules, room.WithRecorder(h.sessions))

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = first.Conn.Close()
		_ = second.Conn.Close()
		return
	}
	h.rooms[roomID] = r
	h.wg.Add(1)
	h.mu.Unlock()

	startedAt := time.Now()
	rec := repository.SessionRecord{
		ID:         roomID,
		Number:     number,
		Mode:       mode,
		FirstAddr:  first.Addr,
		SecondAddr: second.Addr,
		Board:      game.NewBoard(h.rules).String(),
		Status:     repository.StatusInProgress,
		StartedAt:  startedAt,
	}
	if err := h.sessions.Create(ctx, rec); err != nil {
		slog.WarnContext(ctx, "Could not track session", "room.id", roomID, "error", err)
		span.RecordError(err)
	}
	h.publish(ctx, events.TypeSessionStarted, events.SessionStartedPayload{
		SessionID:  roomID,
		Number:     number,
		Mode:       mode,
		FirstAddr:  first.Addr,
		SecondAddr: second.Addr,
	})
	if h.metrics != nil {
		h.metrics.SessionStarted(ctx, mode)
	}

	slog.InfoContext(ctx, "Pairing complete, starting session",
		"room.id", roomID,
		"session.number", number,
		"session.mode", mode,
		"first.addr", first.Addr,
		"second.addr", second.Addr,
	)

	go h.runSession(ctx, r, mode, startedAt)
}

// runSession runs r to its end, then releases both channels and the
// session's bookkeeping.
func (h *Hub) runSession(ctx context.Context, r *room.Room, mode string, startedAt time.Time) {
	defer h.wg.Done()

	outcome, err := r.Run(ctx)

	for _, p := range r.Players {
		_ = p.Conn.Close()
	}
	h.mu.Lock()
	delete(h.rooms, r.ID)
	h.mu.Unlock()

	// The session is over; bookkeeping must finish even during shutdown.
	ctx = context.WithoutCancel(ctx)
	moves := len(r.Moves())

	var result string
	if err != nil {
		result = apperr.Kind(err)
		h.publish(ctx, events.TypeSessionAborted, events.SessionAbortedPayload{
			SessionID: r.ID,
			Kind:      result,
			Reason:    err.Error(),
			Moves:     moves,
		})
	} else {
		result = outcome.Kind.String()
		h.publish(ctx, events.TypeSessionEnded, events.SessionEndedPayload{
			SessionID: r.ID,
			Outcome:   outcome.String(),
			Moves:     moves,
		})
	}
	slog.DebugContext(ctx, "Session released", "room.id", r.ID, "session.number", r.Number, "session.result", result)

	if h.metrics != nil {
		h.metrics.SessionEnded(ctx, mode, result, moves, time.Since(startedAt).Seconds())
	}
	if err := h.sessions.Delete(ctx, r.ID); err != nil {
		slog.WarnContext(ctx, "Could not remove session record", "room.id", r.ID, "error", err)
	}
}
