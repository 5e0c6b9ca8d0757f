package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandlerFansOut(t *testing.T) {
	var debugBuf, infoBuf bytes.Buffer
	debug := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	info := slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})

	log := slog.New(NewMultiHandler(debug, info)).With("room.id", "r1").WithGroup("move")

	log.Debug("thinking", "index", 4)
	log.Info("played", "index", 4)

	assert.Contains(t, debugBuf.String(), "msg=thinking")
	assert.Contains(t, debugBuf.String(), "msg=played")
	assert.Contains(t, debugBuf.String(), "room.id=r1")
	assert.Contains(t, debugBuf.String(), "move.index=4")

	assert.NotContains(t, infoBuf.String(), "thinking")
	assert.Contains(t, infoBuf.String(), "msg=played")
}

func TestMultiHandlerEnabled(t *testing.T) {
	warn := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	h := NewMultiHandler(warn)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandlerKeepsGoingAfterError(t *testing.T) {
	var buf bytes.Buffer
	ok := slog.NewTextHandler(&buf, nil)
	broken := failingHandler{slog.NewTextHandler(&bytes.Buffer{}, nil)}

	h := NewMultiHandler(broken, ok)
	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "still here", 0))

	require.Error(t, err)
	assert.Contains(t, buf.String(), "still here")
}

func TestInit(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	Init(slog.LevelWarn, &buf)

	slog.Info("hidden")
	slog.Warn("shown", "player.id", "p1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "player.id=p1")
	assert.Contains(t, buf.String(), "source=")
}
