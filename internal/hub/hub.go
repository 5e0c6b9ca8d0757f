package hub

import (
	"context"
	"ctchen222/tictactoe-ai/internal/events"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/room"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const publishTimeout = 3 * time.Second

// Reasons attached to session_closed events.
const (
	ReasonQuit     = "quit"
	ReasonIdle     = "idle"
	ReasonShutdown = "shutdown"
)

var tracer = otel.Tracer("hub")

var ErrSessionNotFound = errors.New("session not found")

// Options configures the hub and every room it creates.
type Options struct {
	DefaultMode       game.Mode
	DefaultDifficulty game.Difficulty
	AutoRestartDelay  time.Duration
	ComputerMoveDelay time.Duration
	// IdleTTL is how long a session without subscribers may stay untouched
	// before it is closed. Zero disables the cleanup.
	IdleTTL time.Duration
}

// Hub manages all the sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	calculator room.MoveCalculator
	publisher  events.Publisher
	opts       Options

	publishes sync.WaitGroup
}

// NewHub creates a new hub. A nil publisher drops every event.
func NewHub(calculator room.MoveCalculator, publisher events.Publisher, opts Options) *Hub {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if !opts.DefaultMode.Valid() {
		opts.DefaultMode = game.HumanVsHuman
	}
	if !opts.DefaultDifficulty.Valid() {
		opts.DefaultDifficulty = game.Pro
	}
	return &Hub{
		sessions:   make(map[string]*Session),
		calculator: calculator,
		publisher:  publisher,
		opts:       opts,
	}
}

// Create starts a new session. Empty mode or difficulty fall back to the
// hub defaults.
func (h *Hub) Create(ctx context.Context, mode game.Mode, difficulty game.Difficulty) (*Session, error) {
	ctx, span := tracer.Start(ctx, "hub.Create")
	defer span.End()

	if mode == "" {
		mode = h.opts.DefaultMode
	}
	if difficulty == "" {
		difficulty = h.opts.DefaultDifficulty
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", game.ErrUnknownMode, mode)
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: %q", game.ErrUnknownDifficulty, difficulty)
	}

	s := newSession(uuid.New().String(), h)
	s.Room = room.NewRoom(s.ID, h.calculator, s, room.Options{
		Mode:              mode,
		Difficulty:        difficulty,
		AutoRestartDelay:  h.opts.AutoRestartDelay,
		ComputerMoveDelay: h.opts.ComputerMoveDelay,
	})

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	span.SetAttributes(attribute.String("room.id", s.ID))
	slog.InfoContext(ctx, "Session created", "room.id", s.ID, "game.mode", mode, "game.difficulty", difficulty)

	h.publishAsync(ctx, events.SessionCreated, events.SessionCreatedPayload{
		SessionID:  s.ID,
		Mode:       string(mode),
		Difficulty: string(difficulty),
	})
	return s, nil
}

// Get returns the session with the given id.
func (h *Hub) Get(id string) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Remove closes a session: its room stops and its subscribers are released.
func (h *Hub) Remove(ctx context.Context, id, reason string) error {
	ctx, span := tracer.Start(ctx, "hub.Remove", trace.WithAttributes(
		attribute.String("room.id", id),
		attribute.String("reason", reason),
	))
	defer span.End()

	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s.close()
	slog.InfoContext(ctx, "Session closed", "room.id", id, "reason", reason)
	h.publishAsync(ctx, events.SessionClosed, events.SessionClosedPayload{SessionID: id, Reason: reason})
	return nil
}

// Len returns the number of open sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close removes every session and waits for pending events to be published.
func (h *Hub) Close(ctx context.Context) {
	h.mu.RLock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		_ = h.Remove(ctx, id, ReasonShutdown)
	}
	h.publishes.Wait()
}

// publishAsync sends an event without holding up the caller. Failures are
// logged; events are best effort.
func (h *Hub) publishAsync(ctx context.Context, eventType string, payload any) {
	ctx = context.WithoutCancel(ctx)
	h.publishes.Add(1)
	go func() {
		defer h.publishes.Done()
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if err := h.publisher.Publish(ctx, eventType, payload); err != nil {
			slog.WarnContext(ctx, "Failed to publish event", "event.type", eventType, "error", err)
		}
	}()
}
