package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent(TypeSessionAborted, SessionAbortedPayload{
		SessionID: "abc",
		Kind:      "transport_fault",
		Reason:    "EOF",
		Moves:     3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Type != TypeSessionAborted {
		t.Errorf("Expected type %q, got %q", TypeSessionAborted, ev.Type)
	}

	var payload SessionAbortedPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if payload.SessionID != "abc" || payload.Moves != 3 {
		t.Errorf("Unexpected payload %+v", payload)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := raw["event"]; !ok {
		t.Errorf("Expected an \"event\" key in %s", data)
	}
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	if _, err := NewEvent(TypeSessionStarted, make(chan int)); err == nil {
		t.Errorf("Expected an error for a channel payload")
	}
}

func TestNopPublisher(t *testing.T) {
	if err := NewNopPublisher().Publish(context.Background(), TypeSessionEnded, nil); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}
