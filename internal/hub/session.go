package hub

import (
	"context"
	"ctchen222/tictactoe-ai/internal/events"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/room"
	"log/slog"
	"sync"
)

type NotificationKind int

const (
	Update NotificationKind = iota
	Celebrate
)

// Notification is what a session pushes to its subscribers.
type Notification struct {
	Kind     NotificationKind
	Snapshot room.Snapshot
}

// Session is one game reachable by id. It is the room's listener and fans
// every notification out to its subscribers.
type Session struct {
	ID   string
	Room *room.Room

	hub *Hub

	mu          sync.Mutex
	subscribers map[uint64]chan Notification
	nextSubID   uint64
	finished    bool
	closed      bool
}

func newSession(id string, h *Hub) *Session {
	return &Session{
		ID:          id,
		hub:         h,
		subscribers: make(map[uint64]chan Notification),
	}
}

// Subscribe registers a new subscriber with the given buffer. The channel is
// closed when the session closes, when the subscriber falls behind by more
// than buffer notifications, or when the returned cancel func is called.
func (s *Session) Subscribe(buffer int) (<-chan Notification, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Notification, max(buffer, 1))
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}
}

// SubscriberCount returns the number of live subscribers.
func (s *Session) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

func (s *Session) OnUpdate(ctx context.Context, snap room.Snapshot) {
	s.broadcast(ctx, Notification{Kind: Update, Snapshot: snap})

	s.mu.Lock()
	report := !snap.Active && snap.Result != game.ResultNone && !s.finished
	s.finished = !snap.Active
	s.mu.Unlock()

	if report {
		s.hub.publishAsync(ctx, events.GameFinished, events.GameFinishedPayload{
			SessionID:  s.ID,
			Result:     string(snap.Result),
			Mode:       string(snap.Mode),
			Difficulty: difficultyFor(snap),
		})
	}
}

func (s *Session) OnCelebrate(ctx context.Context, snap room.Snapshot) {
	s.broadcast(ctx, Notification{Kind: Celebrate, Snapshot: snap})
}

// broadcast never blocks: a subscriber whose buffer is full is dropped.
func (s *Session) broadcast(ctx context.Context, n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ch := range s.subscribers {
		select {
		case ch <- n:
		default:
			slog.WarnContext(ctx, "Dropping slow subscriber", "room.id", s.ID, "subscriber", id)
			delete(s.subscribers, id)
			close(ch)
		}
	}
}

func (s *Session) close() {
	s.Room.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}

func difficultyFor(snap room.Snapshot) string {
	if snap.Mode != game.HumanVsAI {
		return ""
	}
	return string(snap.Difficulty)
}
