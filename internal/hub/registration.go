package hub

import (
	"context"
	"ctchen222/Connect-Four/internal/bot"
	"ctchen222/Connect-Four/internal/events"
	"ctchen222/Connect-Four/internal/hub/types"
	"ctchen222/Connect-Four/internal/match"
	"ctchen222/Connect-Four/internal/player"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func registrationSpanOptions(req *types.RegistrationRequest, attrs ...attribute.KeyValue) []trace.SpanStartOption {
	opts := []trace.SpanStartOption{trace.WithAttributes(attrs...)}
	if req.Ctx != nil {
		opts = append(opts, trace.WithLinks(trace.LinkFromContext(req.Ctx)))
	}
	return opts
}

func (h *Hub) registerBotGame(ctx context.Context, req *types.RegistrationRequest) {
	ctx, span := tracer.Start(ctx, "hub.registerBotGame", registrationSpanOptions(req,
		attribute.String("player.id", req.Player.ID),
		attribute.String("bot.difficulty", req.Difficulty),
	)...)
	defer span.End()

	slog.InfoContext(ctx, "Creating bot match", "player.id", req.Player.ID, "player.addr", req.Player.Addr, "bot.difficulty", req.Difficulty)

	botPlayer := bot.NewBotPlayer(ctx, req.Difficulty, h.rules, h.botThink)

	for _, seat := range []struct {
		p    *player.Player
		role player.Role
	}{{req.Player, player.RoleFirst}, {botPlayer, player.RoleSecond}} {
		if err := match.AssignRole(seat.p, seat.role); err != nil {
			slog.WarnContext(ctx, "Could not assign role for bot match", "player.id", seat.p.ID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Could not assign role")
			_ = req.Player.Conn.Close()
			_ = botPlayer.Conn.Close()
			h.PairingFailed(err)
			return
		}
	}

	h.startSession(ctx, req.Player, botPlayer, types.ModeBot)
}

func (h *Hub) queuePlayerForMatchmaking(ctx context.Context, req *types.RegistrationRequest) {
	ctx, span := tracer.Start(ctx, "hub.queuePlayerForMatchmaking", registrationSpanOptions(req,
		attribute.String("player.id", req.Player.ID),
		attribute.String("player.addr", req.Player.Addr),
	)...)
	defer span.End()

	slog.InfoContext(ctx, "Queueing player for matchmaking", "player.id", req.Player.ID, "player.addr", req.Player.Addr)
	h.matchManager.AddPlayer(ctx, req.Player)
}

// PairingFailed is called for every connection dropped before its session
// started. Running sessions are not affected.
func (h *Hub) PairingFailed(err error) {
	ctx := context.Background()
	if h.metrics != nil {
		h.metrics.PairingFailed(ctx)
	}
	h.publish(ctx, events.TypePairingFailed, events.PairingFailedPayload{Reason: err.Error()})
}

func (h *Hub) publish(ctx context.Context, eventType string, payload any) {
	if err := h.publisher.Publish(ctx, eventType, payload); err != nil {
		slog.WarnContext(ctx, "Failed to publish event", "event", eventType, "error", err)
	}
}
