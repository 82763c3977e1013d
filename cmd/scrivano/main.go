package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"scrivano/internal/adapters/backend"
	"scrivano/internal/adapters/editor"
	"scrivano/internal/adapters/tui"
	"scrivano/internal/application/session"
	"scrivano/internal/config"
	"scrivano/internal/logging"
)

// logFileName is used when no log file is configured; stderr belongs to the alt screen
const logFileName = "scrivano.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		dir := cfg.DataDir
		if dir == "" {
			dir = os.TempDir()
		}
		logPath = filepath.Join(dir, logFileName)
	}
	logger, closer, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := backend.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
	}
	defer store.Close()

	manager := session.NewManager(store.Storage, session.WithLogger(logger))
	logger.WithField("session", manager.ID()).Info("starting scrivano")

	opts := []tui.Option{
		tui.WithEditor(editor.New()),
		tui.WithLogger(logger),
		tui.WithAutosaveInterval(cfg.AutosaveInterval),
	}
	if res := manager.Load(); res.Warning != nil {
		logger.WithError(res.Warning).Warn("started from an empty document")
		msg := "Could not load saved work: " + res.Warning.Error()
		if manager.Blocked() {
			msg += " (saves held; ctrl+r to retry, ctrl+o to overwrite)"
		}
		opts = append(opts, tui.WithStartupMessage(msg, true))
	}

	app := tui.NewApp(manager, opts...)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
