package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	TypeSessionStarted = "session_started"
	TypeSessionEnded   = "session_ended"
	TypeSessionAborted = "session_aborted"
	TypePairingFailed  = "pairing_failed"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// SessionStartedPayload is the payload for the "session_started" event.
type SessionStartedPayload struct {
	SessionID  string `json:"session_id"`
	Number     int    `json:"number"`
	Mode       string `json:"mode"`
	FirstAddr  string `json:"first_addr"`
	SecondAddr string `json:"second_addr"`
}

// SessionEndedPayload is the payload for the "session_ended" event.
type SessionEndedPayload struct {
	SessionID string `json:"session_id"`
	Outcome   string `json:"outcome"`
	Moves     int    `json:"moves"`
}

// SessionAbortedPayload is the payload for the "session_aborted" event.
type SessionAbortedPayload struct {
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	Reason    string `json:"reason"`
	Moves     int    `json:"moves"`
}

// PairingFailedPayload is the payload for the "pairing_failed" event.
type PairingFailedPayload struct {
	Reason string `json:"reason"`
}

// NewEvent wraps payload into an Event of the given type.
func NewEvent(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}

// Publisher sends events to whoever is listening.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

type redisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher publishes events on EventsChannel.
func NewRedisPublisher(rdb *redis.Client) Publisher {
	return &redisPublisher{rdb: rdb}
}

func (p *redisPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.rdb.Publish(ctx, EventsChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

// Subscribe decodes events from EventsChannel until ctx is done. Messages
// that fail to decode are logged and skipped.
func Subscribe(ctx context.Context, rdb *redis.Client) (<-chan Event, error) {
	pubsub := rdb.Subscribe(ctx, EventsChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", EventsChannel, err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					slog.WarnContext(ctx, "Failed to decode event", "error", err)
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, string, any) error { return nil }
