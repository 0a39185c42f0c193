package server

import (
	"context"
	apperr "ctchen222/Connect-Four/internal/errors"
	"ctchen222/Connect-Four/internal/hub"
	"ctchen222/Connect-Four/internal/hub/types"
	"ctchen222/Connect-Four/internal/player"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const acceptBackoff = 50 * time.Millisecond

// Listener accepts integer-protocol peers over TCP and registers every
// connection with the hub. Every TCP peer joins the human queue.
type Listener struct {
	hub *hub.Hub
	ln  net.Listener
}

// Listen opens a TCP listener on addr.
func Listen(addr string, h *hub.Hub) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &apperr.PairingError{Op: "listen", Addr: addr, Err: err}
	}
	return NewListener(ln, h), nil
}

func NewListener(ln net.Listener, h *hub.Hub) *Listener {
	return &Listener{hub: h, ln: ln}
}

func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Serve accepts connections until ctx is done or the listener is closed.
// A failed accept is logged and does not stop the loop.
func (l *Listener) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = l.ln.Close() })
	defer stop()

	slog.InfoContext(ctx, "TCP listener started", "addr", l.ln.Addr().String())
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				slog.InfoContext(ctx, "TCP listener stopped", "addr", l.ln.Addr().String())
				return nil
			}
			perr := &apperr.PairingError{Op: "accept", Addr: l.ln.Addr().String(), Err: err}
			slog.WarnContext(ctx, "Accept failed", "error", perr)
			l.hub.PairingFailed(perr)
			time.Sleep(acceptBackoff)
			continue
		}
		l.register(ctx, conn)
	}
}

func (l *Listener) Close() error {
	return l.ln.Close()
}

func (l *Listener) register(ctx context.Context, conn net.Conn) {
	ch := player.NewTCPChannel(conn)
	ctx, span := tracer.Start(ctx, "server.acceptTCP", trace.WithAttributes(
		attribute.String("player.addr", ch.RemoteAddr()),
	))
	defer span.End()

	p := player.NewPlayer(uuid.New().String(), ch.RemoteAddr(), ch)
	span.SetAttributes(attribute.String("player.id", p.ID))
	slog.InfoContext(ctx, "Peer connected", "player.id", p.ID, "player.addr", p.Addr, "transport", "tcp")

	select {
	case l.hub.Register() <- &types.RegistrationRequest{Player: p, Mode: types.ModeHuman, Ctx: ctx}:
	case <-ctx.Done():
		_ = p.Conn.Close()
	}
}
