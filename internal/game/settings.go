package game

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty selects the computer opponent's strategy.
type Difficulty string

// Mode selects whether O is played by a human or the computer.
type Mode string

const (
	Beginner Difficulty = "beginner"
	Amateur  Difficulty = "amateur"
	Pro      Difficulty = "pro"

	HumanVsHuman Mode = "human"
	HumanVsAI    Mode = "bot"
)

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownMode       = errors.New("unknown mode")
)

// ParseDifficulty converts a wire value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Beginner, Amateur, Pro:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// ParseMode converts a wire value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case HumanVsHuman, HumanVsAI:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d == Beginner || d == Amateur || d == Pro
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == HumanVsHuman || m == HumanVsAI
}

// Next cycles Beginner -> Amateur -> Pro -> Beginner.
func (d Difficulty) Next() Difficulty {
	switch d {
	case Beginner:
		return Amateur
	case Amateur:
		return Pro
	default:
		return Beginner
	}
}
