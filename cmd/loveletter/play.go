package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/RetiredDemiurge/love-letter/internal/randutil"
	"github.com/RetiredDemiurge/love-letter/internal/tui"
)

// PlayCmd runs a hotseat game on a single terminal.
type PlayCmd struct {
	Names []string `arg:"" help:"Player names (2-4)"`
	Seed  *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Debug bool     `kong:"help='Write debug logs to loveletter.log'"`
}

func (c *PlayCmd) Run() error {
	// The TUI owns the terminal, so debug logs go to a file.
	logOutput := io.Writer(io.Discard)
	if c.Debug {
		f, err := os.OpenFile("loveletter.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
		if err != nil {
			return fmt.Errorf("failed to create debug log: %w", err)
		}
		defer f.Close()
		logOutput = f
	}
	logger := log.NewWithOptions(logOutput, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("Starting hotseat game", "players", len(c.Names), "seed", seed)

	model, err := tui.NewModel(c.Names, randutil.New(seed), logger)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
