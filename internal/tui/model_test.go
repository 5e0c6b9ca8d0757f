package tui

import (
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/room"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *Listener) {
	t.Helper()
	l := NewListener()
	r := room.NewRoom("local", nil, l, room.Options{
		Mode:             game.HumanVsHuman,
		Difficulty:       game.Beginner,
		AutoRestartDelay: time.Minute,
	})
	t.Cleanup(r.Close)
	return NewModel(r, l), l
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestKeysPlaceMarks(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "5", "1")
	assert.Equal(t, game.PlayerX, m.snap.Board[4])
	assert.Equal(t, game.PlayerO, m.snap.Board[0])
	assert.Contains(t, m.View(), "Player X's turn")

	m = press(t, m, "5")
	assert.Contains(t, m.err, "invalid move")
	assert.Contains(t, m.View(), "Error:")

	m = press(t, m, "2")
	assert.Empty(t, m.err)
}

func TestWinIsCelebrated(t *testing.T) {
	m, l := newTestModel(t)
	m = press(t, m, "1", "4", "2", "5", "3")
	assert.Equal(t, game.XWins, m.snap.Result)

	// Drain the listener the way the program would.
	for len(l.updates) > 0 {
		next, _ := m.Update(<-l.updates)
		m = next.(Model)
	}
	assert.True(t, m.celebrating)
	assert.Contains(t, m.View(), "X Wins!")
	assert.Contains(t, m.View(), "Congratulations")

	m = press(t, m, "r")
	assert.False(t, m.celebrating)
	assert.Equal(t, game.Board{}, m.snap.Board)
}

func TestModeAndDifficultyKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "m")
	assert.Equal(t, game.HumanVsAI, m.snap.Mode)
	assert.Contains(t, m.View(), "computer (beginner)")

	m = press(t, m, "d")
	assert.Equal(t, game.Amateur, m.snap.Difficulty)

	m = press(t, m, "m")
	assert.Equal(t, game.HumanVsHuman, m.snap.Mode)
	assert.Contains(t, m.View(), "Opponent: human")
}

func TestStaleSnapshotsAreIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "5")

	next, _ := m.Update(snapshotMsg{snap: room.Snapshot{Seq: 0}})
	m = next.(Model)
	assert.Equal(t, game.PlayerX, m.snap.Board[4])
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewNumbersEmptyCells(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, " 1 | 2 | 3")
	assert.Contains(t, view, " 7 | 8 | 9")
}
