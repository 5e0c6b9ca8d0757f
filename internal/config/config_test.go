package config

import (
	"ctchen222/tictactoe-ai/internal/game"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsFromEnv(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 2*time.Second, cfg.Game.AutoRestartDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Game.ComputerMoveDelay)
	assert.Equal(t, game.HumanVsHuman, cfg.Game.Mode())
	assert.Equal(t, game.Pro, cfg.Game.Difficulty())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("GAME_DEFAULT_MODE", "BOT")
	t.Setenv("GAME_DEFAULT_DIFFICULTY", "amateur")
	t.Setenv("GAME_COMPUTER_MOVE_DELAY", "50ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, game.HumanVsAI, cfg.Game.Mode())
	assert.Equal(t, game.Amateur, cfg.Game.Difficulty())
	assert.Equal(t, 50*time.Millisecond, cfg.Game.ComputerMoveDelay)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
http-port: "7070"
redis:
  enabled: true
  addr: "redis:6379"
game:
  auto-restart-delay: 3s
  default-difficulty: beginner
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("HTTP_PORT", "6060")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "6060", cfg.HTTPPort, "environment wins over the file")
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3*time.Second, cfg.Game.AutoRestartDelay)
	assert.Equal(t, game.Beginner, cfg.Game.Difficulty())
	assert.Equal(t, 500*time.Millisecond, cfg.Game.ComputerMoveDelay)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "Unknown default mode",
			env:     map[string]string{"GAME_DEFAULT_MODE": "online"},
			wantErr: game.ErrUnknownMode,
		},
		{
			name:    "Unknown default difficulty",
			env:     map[string]string{"GAME_DEFAULT_DIFFICULTY": "impossible"},
			wantErr: game.ErrUnknownDifficulty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("Negative delay", func(t *testing.T) {
		t.Setenv("GAME_AUTO_RESTART_DELAY", "-1s")
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
	})
}

func TestMustLoadPanics(t *testing.T) {
	t.Setenv("GAME_DEFAULT_MODE", "online")
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
	})
}
