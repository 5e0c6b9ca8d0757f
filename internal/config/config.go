package config

import (
	"ctchen222/tictactoe-ai/internal/game"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the config file read when no other path is given.
const DefaultPath = "config.yml"

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string    `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Redis     Redis     `yaml:"redis"`
	Telemetry Telemetry `yaml:"telemetry"`
	Auth      Auth      `yaml:"auth"`
	Game      Game      `yaml:"game"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr    string `yaml:"addr" env:"REDIS_CONNSTRING" env-default:"localhost:6379"`
}

type Telemetry struct {
	Enabled       bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	CollectorAddr string `yaml:"collector-addr" env:"OTEL_COLLECTOR_ADDR" env-default:"otel-collector:4317"`
	ServiceName   string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tictactoe-ai"`
	StdoutTraces  bool   `yaml:"stdout-traces" env:"OTEL_STDOUT_TRACES" env-default:"false"`
}

type Auth struct {
	JWTSecretKey string        `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token-ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
}

type Game struct {
	AutoRestartDelay  time.Duration `yaml:"auto-restart-delay" env:"GAME_AUTO_RESTART_DELAY" env-default:"2s"`
	ComputerMoveDelay time.Duration `yaml:"computer-move-delay" env:"GAME_COMPUTER_MOVE_DELAY" env-default:"500ms"`
	SessionIdleTTL    time.Duration `yaml:"session-idle-ttl" env:"GAME_SESSION_IDLE_TTL" env-default:"30m"`
	DefaultMode       string        `yaml:"default-mode" env:"GAME_DEFAULT_MODE" env-default:"human"`
	DefaultDifficulty string        `yaml:"default-difficulty" env:"GAME_DEFAULT_DIFFICULTY" env-default:"pro"`
}

// Load reads the config file at path when it exists and the environment
// otherwise. Environment variables always override file values.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

// Validate checks the values cleanenv cannot check on its own.
func (c *Config) Validate() error {
	var errs []error
	if _, err := game.ParseMode(c.Game.DefaultMode); err != nil {
		errs = append(errs, fmt.Errorf("game.default-mode: %w", err))
	}
	if _, err := game.ParseDifficulty(c.Game.DefaultDifficulty); err != nil {
		errs = append(errs, fmt.Errorf("game.default-difficulty: %w", err))
	}
	if c.Game.AutoRestartDelay < 0 || c.Game.ComputerMoveDelay < 0 {
		errs = append(errs, errors.New("game delays must not be negative"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token-ttl must be positive"))
	}
	return errors.Join(errs...)
}

// SlogLevel maps LogLevel to a slog level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Mode returns the validated default mode.
func (g *Game) Mode() game.Mode {
	mode, err := game.ParseMode(g.DefaultMode)
	if err != nil {
		return game.HumanVsHuman
	}
	return mode
}

// Difficulty returns the validated default difficulty.
func (g *Game) Difficulty() game.Difficulty {
	difficulty, err := game.ParseDifficulty(g.DefaultDifficulty)
	if err != nil {
		return game.Pro
	}
	return difficulty
}
