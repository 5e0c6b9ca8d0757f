package main

import (
	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/config"
	"ctchen222/tictactoe-ai/internal/logger"
	"ctchen222/tictactoe-ai/internal/room"
	"ctchen222/tictactoe-ai/internal/tui"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The terminal belongs to the program; logs go to a file.
	logFile, err := os.OpenFile("tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger.Init(cfg.SlogLevel(), logFile)

	listener := tui.NewListener()
	r := room.NewRoom("local", bot.NewBotMoveCalculator(), listener, room.Options{
		Mode:              cfg.Game.Mode(),
		Difficulty:        cfg.Game.Difficulty(),
		AutoRestartDelay:  cfg.Game.AutoRestartDelay,
		ComputerMoveDelay: cfg.Game.ComputerMoveDelay,
	})
	defer r.Close()

	p := tea.NewProgram(tui.NewModel(r, listener), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("tui exited with error: %v", err)
	}
}
