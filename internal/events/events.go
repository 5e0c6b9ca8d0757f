package events

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockgen -destination=mocks/publisher.go -package=mocks ctchen222/tictactoe-ai/internal/events Publisher

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	SessionCreated = "session_created"
	GameFinished   = "game_finished"
	SessionClosed  = "session_closed"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// SessionCreatedPayload is the payload for the "session_created" event.
type SessionCreatedPayload struct {
	SessionID  string `json:"session_id"`
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
}

// GameFinishedPayload is the payload for the "game_finished" event.
type GameFinishedPayload struct {
	SessionID  string `json:"session_id"`
	Result     string `json:"result"`
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty,omitempty"`
}

// SessionClosedPayload is the payload for the "session_closed" event.
type SessionClosedPayload struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

// Publisher sends lifecycle events to whoever is listening.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// NewEvent wraps payload into an Event of the given type.
func NewEvent(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}

// NopPublisher drops every event. It is used when Redis is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
