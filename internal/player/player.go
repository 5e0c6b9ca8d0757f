package player

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player is one websocket client attached to a session.
type Player struct {
	ID        string
	SessionID string
	Conn      Connection

	// websocket connections support a single concurrent writer.
	writeMu sync.Mutex
}

func NewPlayer(id, sessionID string, conn Connection) *Player {
	return &Player{
		ID:        id,
		SessionID: sessionID,
		Conn:      conn,
	}
}

// WriteJSON marshals v and sends it as a text message.
func (p *Player) WriteJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message for player %s: %w", p.ID, err)
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteMessage(websocket.TextMessage, data)
}

// Ping sends a websocket ping control frame.
func (p *Player) Ping() error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteMessage(websocket.PingMessage, nil)
}
