package service

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/hub"
	"ctchen222/tictactoe-ai/internal/room"
	"fmt"
)

// SessionService defines the game operations exposed over HTTP.
type SessionService interface {
	Create(ctx context.Context, mode, difficulty string) (token string, snap room.Snapshot, err error)
	Get(ctx context.Context, id string) (room.Snapshot, error)
	Move(ctx context.Context, id string, index int) (room.Snapshot, error)
	SetMode(ctx context.Context, id, mode string) (room.Snapshot, error)
	SetDifficulty(ctx context.Context, id, difficulty string) (room.Snapshot, error)
	Restart(ctx context.Context, id string) (room.Snapshot, error)
	Close(ctx context.Context, id string) error
}

type sessionService struct {
	hub    *hub.Hub
	tokens TokenService
}

// NewSessionService creates a new SessionService.
func NewSessionService(h *hub.Hub, tokens TokenService) SessionService {
	return &sessionService{hub: h, tokens: tokens}
}

func (s *sessionService) Create(ctx context.Context, mode, difficulty string) (string, room.Snapshot, error) {
	var (
		m   game.Mode
		d   game.Difficulty
		err error
	)
	if mode != "" {
		if m, err = game.ParseMode(mode); err != nil {
			return "", room.Snapshot{}, err
		}
	}
	if difficulty != "" {
		if d, err = game.ParseDifficulty(difficulty); err != nil {
			return "", room.Snapshot{}, err
		}
	}

	session, err := s.hub.Create(ctx, m, d)
	if err != nil {
		return "", room.Snapshot{}, err
	}

	token, err := s.tokens.Issue(session.ID)
	if err != nil {
		_ = s.hub.Remove(ctx, session.ID, hub.ReasonQuit)
		return "", room.Snapshot{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, session.Room.Snapshot(), nil
}

func (s *sessionService) Get(_ context.Context, id string) (room.Snapshot, error) {
	session, err := s.hub.Get(id)
	if err != nil {
		return room.Snapshot{}, err
	}
	return session.Room.Snapshot(), nil
}

func (s *sessionService) Move(ctx context.Context, id string, index int) (room.Snapshot, error) {
	session, err := s.hub.Get(id)
	if err != nil {
		return room.Snapshot{}, err
	}
	return session.Room.SubmitMove(ctx, index)
}

func (s *sessionService) SetMode(ctx context.Context, id, mode string) (room.Snapshot, error) {
	session, err := s.hub.Get(id)
	if err != nil {
		return room.Snapshot{}, err
	}
	m, err := game.ParseMode(mode)
	if err != nil {
		return session.Room.Snapshot(), err
	}
	return session.Room.SetMode(ctx, m)
}

func (s *sessionService) SetDifficulty(ctx context.Context, id, difficulty string) (room.Snapshot, error) {
	session, err := s.hub.Get(id)
	if err != nil {
		return room.Snapshot{}, err
	}
	d, err := game.ParseDifficulty(difficulty)
	if err != nil {
		return session.Room.Snapshot(), err
	}
	return session.Room.SetDifficulty(ctx, d)
}

func (s *sessionService) Restart(ctx context.Context, id string) (room.Snapshot, error) {
	session, err := s.hub.Get(id)
	if err != nil {
		return room.Snapshot{}, err
	}
	return session.Room.Restart(ctx)
}

func (s *sessionService) Close(ctx context.Context, id string) error {
	return s.hub.Remove(ctx, id, hub.ReasonQuit)
}
