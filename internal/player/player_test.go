package player

import (
	"errors"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	kind int
	data []byte
}

type fakeConn struct {
	mu       sync.Mutex
	frames   []frame
	writeErr error
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.frames = append(c.frames, frame{messageType, data})
	return nil
}

func (c *fakeConn) ReadMessage() (int, []byte, error) { return 0, nil, errors.New("not implemented") }
func (c *fakeConn) Close() error                      { return nil }

func TestWriteJSON(t *testing.T) {
	conn := &fakeConn{}
	p := NewPlayer("p1", "s1", conn)

	require.NoError(t, p.WriteJSON(map[string]string{"type": "update"}))
	require.NoError(t, p.Ping())

	require.Len(t, conn.frames, 2)
	assert.Equal(t, websocket.TextMessage, conn.frames[0].kind)
	assert.JSONEq(t, `{"type":"update"}`, string(conn.frames[0].data))
	assert.Equal(t, websocket.PingMessage, conn.frames[1].kind)
}

func TestWriteJSONErrors(t *testing.T) {
	conn := &fakeConn{}
	p := NewPlayer("p1", "s1", conn)

	require.Error(t, p.WriteJSON(make(chan int)))
	assert.Empty(t, conn.frames)

	conn.writeErr = websocket.ErrCloseSent
	require.ErrorIs(t, p.WriteJSON("x"), websocket.ErrCloseSent)
}

func TestConcurrentWrites(t *testing.T) {
	conn := &fakeConn{}
	p := NewPlayer("p1", "s1", conn)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_ = p.Ping()
				return
			}
			_ = p.WriteJSON(i)
		}()
	}
	wg.Wait()
	assert.Len(t, conn.frames, 20)
}
