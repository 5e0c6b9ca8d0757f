package room_test

import (
	"context"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/room"
	"ctchen222/tictactoe-ai/internal/room/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func snapshotWhere(fn func(room.Snapshot) bool) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		s, ok := x.(room.Snapshot)
		return ok && fn(s)
	})
}

func seqIs(seq uint64) gomock.Matcher {
	return snapshotWhere(func(s room.Snapshot) bool { return s.Seq == seq })
}

func TestListenerSignalsOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockListener(ctrl)

	// X takes the top row; the fifth move wins and is celebrated once.
	moves := []int{0, 3, 1, 4, 2}
	var calls []any
	for i := range moves {
		calls = append(calls, listener.EXPECT().OnUpdate(gomock.Any(), seqIs(uint64(i+1))))
	}
	calls = append(calls, listener.EXPECT().OnCelebrate(gomock.Any(), snapshotWhere(func(s room.Snapshot) bool {
		return s.Result == game.XWins && s.Winner == game.PlayerX && !s.Active
	})).Times(1))
	gomock.InOrder(calls...)

	r := room.NewRoom("mock", nil, listener, room.Options{
		Mode:             game.HumanVsHuman,
		Difficulty:       game.Pro,
		AutoRestartDelay: time.Minute,
	})
	defer r.Close()

	ctx := context.Background()
	for _, idx := range moves {
		_, err := r.SubmitMove(ctx, idx)
		require.NoError(t, err)
	}

	// A finished game rejects further moves without signalling anything.
	_, err := r.SubmitMove(ctx, 8)
	assert.ErrorIs(t, err, game.ErrInvalidMove)
}

func TestListenerNotSignalledOnRejectedMove(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockListener(ctrl)
	listener.EXPECT().OnUpdate(gomock.Any(), seqIs(1)).Times(1)

	r := room.NewRoom("mock", nil, listener, room.DefaultOptions())
	defer r.Close()

	ctx := context.Background()
	_, err := r.SubmitMove(ctx, 4)
	require.NoError(t, err)

	for _, idx := range []int{4, -1, 9} {
		_, err := r.SubmitMove(ctx, idx)
		assert.ErrorIs(t, err, game.ErrInvalidMove)
	}
}
