package server

import (
	"context"
	"ctchen222/tictactoe-ai/internal/api/response"
	"ctchen222/tictactoe-ai/internal/api/service"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/hub"
	"ctchen222/tictactoe-ai/internal/player"
	"ctchen222/tictactoe-ai/internal/room"
	"ctchen222/tictactoe-ai/internal/validator"
	"ctchen222/tictactoe-ai/pkg/proto"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// handleWebSocket attaches a client to a session. With ?token= it joins the
// session the token was issued for; otherwise a new session is created from
// ?mode= and ?difficulty= and its token is sent as the first message.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	session, token, err := s.attach(ctx, c.Query("token"), c.Query("mode"), c.Query("difficulty"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to attach to session")
		response.ErrorResponse(c, attachStatus(err), err.Error())
		return
	}
	span.SetAttributes(attribute.String("room.id", session.ID))

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "room.id", session.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		if token != "" {
			_ = s.hub.Remove(ctx, session.ID, hub.ReasonQuit)
		}
		return
	}

	p := player.NewPlayer(uuid.New().String(), session.ID, conn)
	span.SetAttributes(attribute.String("player.id", p.ID))
	slog.InfoContext(ctx, "Player connected", "room.id", session.ID, "player.id", p.ID)

	updates, unsubscribe := session.Subscribe(subscriberBuffer)
	defer unsubscribe()
	defer conn.Close()

	if token != "" {
		if err := p.WriteJSON(proto.SessionMessage{Type: proto.TypeSession, SessionID: session.ID, Token: token}); err != nil {
			slog.WarnContext(ctx, "Failed to send session message", "player.id", p.ID, "error", err)
			return
		}
	}
	if err := p.WriteJSON(updateMessage(session.Room.Snapshot())); err != nil {
		slog.WarnContext(ctx, "Failed to send initial state", "player.id", p.ID, "error", err)
		return
	}

	done := make(chan struct{})
	go s.writePump(ctx, p, updates, done)
	s.readPump(ctx, p, session)
	close(done)

	slog.InfoContext(ctx, "Player disconnected", "room.id", session.ID, "player.id", p.ID)
}

func (s *Server) attach(ctx context.Context, token, mode, difficulty string) (*hub.Session, string, error) {
	if token != "" {
		sessionID, err := s.tokens.Verify(token)
		if err != nil {
			return nil, "", err
		}
		session, err := s.hub.Get(sessionID)
		return session, "", err
	}

	var (
		m   game.Mode
		d   game.Difficulty
		err error
	)
	if mode != "" {
		if m, err = game.ParseMode(mode); err != nil {
			return nil, "", err
		}
	}
	if difficulty != "" {
		if d, err = game.ParseDifficulty(difficulty); err != nil {
			return nil, "", err
		}
	}

	session, err := s.hub.Create(ctx, m, d)
	if err != nil {
		return nil, "", err
	}
	issued, err := s.tokens.Issue(session.ID)
	if err != nil {
		_ = s.hub.Remove(ctx, session.ID, hub.ReasonQuit)
		return nil, "", err
	}
	return session, issued, nil
}

func attachStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, hub.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrUnknownMode), errors.Is(err, game.ErrUnknownDifficulty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writePump forwards session notifications to the client and keeps the
// connection alive with pings. It closes the connection when the session
// drops the subscription.
func (s *Server) writePump(ctx context.Context, p *player.Player, updates <-chan hub.Notification, done <-chan struct{}) {
	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return

		case n, ok := <-updates:
			if !ok {
				slog.InfoContext(ctx, "Subscription ended, closing connection", "player.id", p.ID)
				p.Conn.Close()
				return
			}
			msg := updateMessage(n.Snapshot)
			if n.Kind == hub.Celebrate {
				msg = proto.ServerToClientMessage{Type: proto.TypeCelebrate, Winner: n.Snapshot.Winner, Seq: n.Snapshot.Seq}
			}
			if err := p.WriteJSON(msg); err != nil {
				slog.WarnContext(ctx, "Failed to write to player", "player.id", p.ID, "error", err)
				p.Conn.Close()
				return
			}

		case <-ticker.C:
			if err := p.Ping(); err != nil {
				slog.WarnContext(ctx, "Failed to send ping to player, assuming disconnect", "player.id", p.ID, "error", err)
				p.Conn.Close()
				return
			}
		}
	}
}

// readPump applies client messages to the session until the connection or
// the session goes away.
func (s *Server) readPump(ctx context.Context, p *player.Player, session *hub.Session) {
	validate := validator.GetValidator()

	for {
		_, data, err := p.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "Player connection error", "player.id", p.ID, "room.id", session.ID, "error", err)
			}
			return
		}

		var msg proto.ClientToServerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(ctx, p, "malformed message")
			continue
		}
		if err := validate.Struct(&msg); err != nil {
			s.sendError(ctx, p, err.Error())
			continue
		}

		if err := s.dispatch(ctx, session, &msg); err != nil {
			if errors.Is(err, room.ErrClosed) {
				return
			}
			s.sendError(ctx, p, err.Error())
		}
	}
}

func (s *Server) dispatch(ctx context.Context, session *hub.Session, msg *proto.ClientToServerMessage) error {
	ctx, span := tracer.Start(ctx, "server.dispatch", trace.WithAttributes(
		attribute.String("room.id", session.ID),
		attribute.String("message.type", msg.Type),
	))
	defer span.End()

	var err error
	switch msg.Type {
	case proto.TypeMove:
		_, err = session.Room.SubmitMove(ctx, *msg.Index)
	case proto.TypeMode:
		var mode game.Mode
		if mode, err = game.ParseMode(msg.Mode); err == nil {
			_, err = session.Room.SetMode(ctx, mode)
		}
	case proto.TypeDifficulty:
		var difficulty game.Difficulty
		if difficulty, err = game.ParseDifficulty(msg.Difficulty); err == nil {
			_, err = session.Room.SetDifficulty(ctx, difficulty)
		}
	case proto.TypeRestart:
		_, err = session.Room.Restart(ctx)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *Server) sendError(ctx context.Context, p *player.Player, reason string) {
	if err := p.WriteJSON(proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason}); err != nil {
		slog.WarnContext(ctx, "Failed to send error to player", "player.id", p.ID, "error", err)
	}
}

func updateMessage(snap room.Snapshot) proto.ServerToClientMessage {
	return proto.ServerToClientMessage{
		Type:       proto.TypeUpdate,
		Board:      snap.Board.Rows(),
		Next:       snap.Next,
		Active:     snap.Active,
		Result:     snap.Result,
		Winner:     snap.Winner,
		Mode:       snap.Mode,
		Difficulty: snap.Difficulty,
		Seq:        snap.Seq,
		Status:     snap.Status(),
	}
}
