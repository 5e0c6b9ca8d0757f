package tui

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/room"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type snapshotMsg struct {
	snap      room.Snapshot
	celebrate bool
}

// Listener forwards room notifications to the program. It never blocks: if
// the program falls behind, notifications are dropped and the next one wins.
type Listener struct {
	updates chan snapshotMsg
}

func NewListener() *Listener {
	return &Listener{updates: make(chan snapshotMsg, 64)}
}

func (l *Listener) OnUpdate(_ context.Context, snap room.Snapshot) {
	l.push(snapshotMsg{snap: snap})
}

func (l *Listener) OnCelebrate(_ context.Context, snap room.Snapshot) {
	l.push(snapshotMsg{snap: snap, celebrate: true})
}

func (l *Listener) push(msg snapshotMsg) {
	select {
	case l.updates <- msg:
	default:
	}
}

// Model renders one local room and maps keys onto its operations.
type Model struct {
	room        *room.Room
	updates     <-chan snapshotMsg
	snap        room.Snapshot
	celebrating bool
	err         string
}

func NewModel(r *room.Room, l *Listener) Model {
	return Model{
		room:    r,
		updates: l.updates,
		snap:    r.Snapshot(),
	}
}

func waitForUpdate(updates <-chan snapshotMsg) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case snapshotMsg:
		if msg.snap.Seq >= m.snap.Seq {
			m.apply(msg.snap)
		}
		if msg.celebrate {
			m.celebrating = true
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	var (
		snap room.Snapshot
		err  error
	)

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		snap, err = m.room.SubmitMove(ctx, int(key[0]-'1'))
	case "r":
		snap, err = m.room.Restart(ctx)
	case "m":
		next := game.HumanVsAI
		if m.snap.Mode == game.HumanVsAI {
			next = game.HumanVsHuman
		}
		snap, err = m.room.SetMode(ctx, next)
	case "d":
		snap, err = m.room.SetDifficulty(ctx, m.snap.Difficulty.Next())
	default:
		return m, nil
	}

	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.err = ""
	m.apply(snap)
	return m, nil
}

func (m *Model) apply(snap room.Snapshot) {
	m.snap = snap
	if snap.Active {
		m.celebrating = false
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("Tic-Tac-Toe\n\n")
	for r, row := range m.snap.Board.Rows() {
		cells := make([]string, len(row))
		for c, mark := range row {
			if mark == game.None {
				cells[c] = fmt.Sprintf("%d", r*3+c+1)
				continue
			}
			cells[c] = string(mark)
		}
		b.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if r < 2 {
			b.WriteString("---+---+---\n")
		}
	}

	b.WriteString("\n" + m.snap.Status() + "\n")
	if m.celebrating {
		b.WriteString("*** Congratulations! ***\n")
	}

	opponent := "human"
	if m.snap.Mode == game.HumanVsAI {
		opponent = fmt.Sprintf("computer (%s)", m.snap.Difficulty)
	}
	fmt.Fprintf(&b, "Opponent: %s\n", opponent)

	if m.err != "" {
		fmt.Fprintf(&b, "Error: %s\n", m.err)
	}

	b.WriteString("\n1-9 place  r restart  m mode  d difficulty  q quit\n")
	return b.String()
}
