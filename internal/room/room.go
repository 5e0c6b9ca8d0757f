package room

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultAutoRestartDelay  = 2 * time.Second
	DefaultComputerMoveDelay = 500 * time.Millisecond

	// computerMark is the mark played by the computer in HumanVsAI mode.
	computerMark = game.PlayerO
)

var (
	tracer = otel.Tracer("room")
	meter  = otel.Meter("room")

	movesCounter, _  = meter.Int64Counter("room.moves", metric.WithDescription("Accepted moves"))
	finishedGames, _ = meter.Int64Counter("room.games.finished", metric.WithDescription("Games that reached a result"))
)

// ErrClosed is returned by every operation on a room that has been closed.
var ErrClosed = errors.New("room is closed")

// MoveCalculator defines an interface for an agent that can calculate a game move.
type MoveCalculator interface {
	CalculateNextMove(ctx context.Context, board game.Board, mark game.PlayerMark, difficulty game.Difficulty) int
}

//go:generate mockgen -destination=mocks/listener.go -package=mocks ctchen222/tictactoe-ai/internal/room Listener

// Listener receives the room's outbound signals. It is called with the room
// locked: implementations must not block and must not call back into the room.
type Listener interface {
	// OnUpdate is called after every state change.
	OnUpdate(ctx context.Context, snapshot Snapshot)
	// OnCelebrate is called exactly once for every win, after its OnUpdate.
	OnCelebrate(ctx context.Context, snapshot Snapshot)
}

// Options configures a room.
type Options struct {
	Mode              game.Mode
	Difficulty        game.Difficulty
	AutoRestartDelay  time.Duration
	ComputerMoveDelay time.Duration
}

// DefaultOptions returns a human vs human room with the standard delays.
func DefaultOptions() Options {
	return Options{
		Mode:              game.HumanVsHuman,
		Difficulty:        game.Pro,
		AutoRestartDelay:  DefaultAutoRestartDelay,
		ComputerMoveDelay: DefaultComputerMoveDelay,
	}
}

// Room owns one game: its state, its settings and its deferred actions.
type Room struct {
	ID string

	mu         sync.Mutex
	state      game.GameState
	mode       game.Mode
	difficulty game.Difficulty
	seq        uint64
	closed     bool
	lastActive time.Time

	calculator MoveCalculator
	listener   Listener

	autoRestartDelay  time.Duration
	computerMoveDelay time.Duration

	// pending is the single armed deferred action (computer move or
	// auto-restart). pendingToken changes whenever it is cancelled or
	// replaced, so a callback that already fired can tell it is stale.
	pending      *time.Timer
	pendingToken uint64
}

// NewRoom creates a room with a fresh game.
func NewRoom(id string, calculator MoveCalculator, listener Listener, opts Options) *Room {
	if listener == nil {
		listener = nopListener{}
	}
	if !opts.Mode.Valid() {
		opts.Mode = game.HumanVsHuman
	}
	if !opts.Difficulty.Valid() {
		opts.Difficulty = game.Pro
	}
	return &Room{
		ID:                id,
		state:             game.NewGameState(),
		mode:              opts.Mode,
		difficulty:        opts.Difficulty,
		lastActive:        time.Now(),
		calculator:        calculator,
		listener:          listener,
		autoRestartDelay:  opts.AutoRestartDelay,
		computerMoveDelay: opts.ComputerMoveDelay,
	}
}

// SubmitMove plays the cell for whoever is to move. A rejected move returns
// game.ErrInvalidMove and leaves the room untouched.
func (r *Room) SubmitMove(ctx context.Context, index int) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "room.SubmitMove", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("move.index", index),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.snapshotLocked(), ErrClosed
	}

	if r.mode == game.HumanVsAI && r.state.Active && r.state.Turn == computerMark {
		err := fmt.Errorf("%w: waiting for the computer", game.ErrInvalidMove)
		span.SetAttributes(attribute.Bool("move.valid", false))
		return r.snapshotLocked(), err
	}

	if err := r.playLocked(ctx, index); err != nil {
		slog.DebugContext(ctx, "rejected move", "room.id", r.ID, "move.index", index, "error", err)
		span.SetAttributes(attribute.Bool("move.valid", false))
		return r.snapshotLocked(), err
	}
	span.SetAttributes(attribute.Bool("move.valid", true))

	return r.snapshotLocked(), nil
}

// Restart resets the game from any state and cancels any deferred action.
func (r *Room) Restart(ctx context.Context) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "room.Restart", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.snapshotLocked(), ErrClosed
	}

	r.cancelPendingLocked()
	r.resetLocked(ctx)
	return r.snapshotLocked(), nil
}

// SetMode switches between human and computer opponents. Changing the mode
// starts a new game; setting the current mode again does nothing.
func (r *Room) SetMode(ctx context.Context, mode game.Mode) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "room.SetMode", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("game.mode", string(mode)),
	))
	defer span.End()

	if !mode.Valid() {
		err := fmt.Errorf("%w: %q", game.ErrUnknownMode, mode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unknown mode")
		return r.Snapshot(), err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.snapshotLocked(), ErrClosed
	}
	if r.mode == mode {
		return r.snapshotLocked(), nil
	}

	slog.InfoContext(ctx, "Mode changed, starting a new game", "room.id", r.ID, "game.mode", mode)
	r.mode = mode
	r.cancelPendingLocked()
	r.resetLocked(ctx)
	return r.snapshotLocked(), nil
}

// SetDifficulty changes the computer's strength. It applies from the next
// computer move on.
func (r *Room) SetDifficulty(ctx context.Context, difficulty game.Difficulty) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "room.SetDifficulty", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("game.difficulty", string(difficulty)),
	))
	defer span.End()

	if !difficulty.Valid() {
		err := fmt.Errorf("%w: %q", game.ErrUnknownDifficulty, difficulty)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unknown difficulty")
		return r.Snapshot(), err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.snapshotLocked(), ErrClosed
	}
	if r.difficulty == difficulty {
		return r.snapshotLocked(), nil
	}

	r.difficulty = difficulty
	r.seq++
	r.lastActive = time.Now()
	r.listener.OnUpdate(ctx, r.snapshotLocked())
	return r.snapshotLocked(), nil
}

// Snapshot returns the current state of the room.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// LastActive returns the time of the last accepted change.
func (r *Room) LastActive() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActive
}

// Close cancels any deferred action. Every later call returns ErrClosed.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelPendingLocked()
	r.closed = true
}

// playLocked applies a move for the current mark, notifies the listener and
// arms whatever deferred action the new state calls for.
func (r *Room) playLocked(ctx context.Context, index int) error {
	mover := r.state.Turn
	outcome, err := r.state.Play(index)
	if err != nil {
		return err
	}

	r.seq++
	r.lastActive = time.Now()
	movesCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("game.mode", string(r.mode))))

	snap := r.snapshotLocked()
	r.listener.OnUpdate(ctx, snap)

	switch outcome {
	case game.Won:
		slog.InfoContext(ctx, "Game won", "room.id", r.ID, "winner", mover)
		finishedGames.Add(ctx, 1, metric.WithAttributes(attribute.String("game.result", string(snap.Result))))
		r.cancelPendingLocked()
		r.listener.OnCelebrate(ctx, snap)

	case game.Drawn:
		slog.InfoContext(ctx, "Game drawn, restarting soon", "room.id", r.ID, "delay", r.autoRestartDelay)
		finishedGames.Add(ctx, 1, metric.WithAttributes(attribute.String("game.result", string(snap.Result))))
		r.scheduleLocked(r.autoRestartDelay, r.autoRestart)

	case game.Continued:
		if r.mode == game.HumanVsAI && r.state.Turn == computerMark {
			r.scheduleLocked(r.computerMoveDelay, r.computerMove)
		}
	}

	return nil
}

func (r *Room) resetLocked(ctx context.Context) {
	r.state.Reset()
	r.seq++
	r.lastActive = time.Now()
	r.listener.OnUpdate(ctx, r.snapshotLocked())
}

// scheduleLocked arms fn to run after delay, replacing any pending action.
func (r *Room) scheduleLocked(delay time.Duration, fn func(token uint64)) {
	r.cancelPendingLocked()
	token := r.pendingToken
	r.pending = time.AfterFunc(delay, func() { fn(token) })
}

func (r *Room) cancelPendingLocked() {
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
	r.pendingToken++
}

// claimLocked reports whether the deferred action holding token is still the
// current one, and consumes it if so.
func (r *Room) claimLocked(token uint64) bool {
	if r.closed || token != r.pendingToken {
		return false
	}
	r.pending = nil
	r.pendingToken++
	return true
}

func (r *Room) computerMove(token uint64) {
	ctx, span := tracer.Start(context.Background(), "room.computerMove", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.claimLocked(token) {
		slog.DebugContext(ctx, "Dropping stale computer move", "room.id", r.ID)
		return
	}
	if !r.state.Active || r.mode != game.HumanVsAI || r.state.Turn != computerMark {
		return
	}

	span.SetAttributes(attribute.String("game.difficulty", string(r.difficulty)))
	index := r.calculator.CalculateNextMove(ctx, r.state.Board, computerMark, r.difficulty)
	if err := r.playLocked(ctx, index); err != nil {
		slog.ErrorContext(ctx, "computer produced an invalid move", "room.id", r.ID, "move.index", index, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Computer produced an invalid move")
	}
}

func (r *Room) autoRestart(token uint64) {
	ctx, span := tracer.Start(context.Background(), "room.autoRestart", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.claimLocked(token) {
		slog.DebugContext(ctx, "Dropping stale auto-restart", "room.id", r.ID)
		return
	}

	slog.InfoContext(ctx, "Restarting after draw", "room.id", r.ID)
	r.resetLocked(ctx)
}

type nopListener struct{}

func (nopListener) OnUpdate(context.Context, Snapshot)    {}
func (nopListener) OnCelebrate(context.Context, Snapshot) {}
