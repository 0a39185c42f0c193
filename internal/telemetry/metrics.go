package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments recorded by the hub.
type Metrics struct {
	sessionsStarted metric.Int64Counter
	sessionsActive  metric.Int64UpDownCounter
	sessionsEnded   metric.Int64Counter
	pairingFailures metric.Int64Counter
	sessionMoves    metric.Int64Histogram
	sessionDuration metric.Float64Histogram
}

// NewMetrics creates the instruments on meter. A nil meter uses the global
// meter provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter("connect-four/hub")
	}

	var (
		m   Metrics
		err error
	)
	if m.sessionsStarted, err = meter.Int64Counter("sessions.started",
		metric.WithDescription("Sessions started")); err != nil {
		return nil, fmt.Errorf("sessions.started: %w", err)
	}
	if m.sessionsActive, err = meter.Int64UpDownCounter("sessions.active",
		metric.WithDescription("Sessions currently running")); err != nil {
		return nil, fmt.Errorf("sessions.active: %w", err)
	}
	if m.sessionsEnded, err = meter.Int64Counter("sessions.ended",
		metric.WithDescription("Sessions ended, by result")); err != nil {
		return nil, fmt.Errorf("sessions.ended: %w", err)
	}
	if m.pairingFailures, err = meter.Int64Counter("pairing.failures",
		metric.WithDescription("Connections dropped before a session started")); err != nil {
		return nil, fmt.Errorf("pairing.failures: %w", err)
	}
	if m.sessionMoves, err = meter.Int64Histogram("session.moves",
		metric.WithDescription("Moves applied per session")); err != nil {
		return nil, fmt.Errorf("session.moves: %w", err)
	}
	if m.sessionDuration, err = meter.Float64Histogram("session.duration",
		metric.WithDescription("Session wall time"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("session.duration: %w", err)
	}
	return &m, nil
}

func (m *Metrics) SessionStarted(ctx context.Context, mode string) {
	attrs := metric.WithAttributes(attribute.String("session.mode", mode))
	m.sessionsStarted.Add(ctx, 1, attrs)
	m.sessionsActive.Add(ctx, 1, attrs)
}

// SessionEnded records the end of a session. result is an outcome kind
// ("win", "draw") or an error kind ("transport_fault", ...).
func (m *Metrics) SessionEnded(ctx context.Context, mode, result string, moves int, seconds float64) {
	modeAttr := attribute.String("session.mode", mode)
	m.sessionsActive.Add(ctx, -1, metric.WithAttributes(modeAttr))
	m.sessionsEnded.Add(ctx, 1, metric.WithAttributes(modeAttr, attribute.String("session.result", result)))
	m.sessionMoves.Record(ctx, int64(moves), metric.WithAttributes(modeAttr))
	m.sessionDuration.Record(ctx, seconds, metric.WithAttributes(modeAttr))
}

func (m *Metrics) PairingFailed(ctx context.Context) {
	m.pairingFailures.Add(ctx, 1)
}
