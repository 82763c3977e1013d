package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"scrivano/internal/adapters/backend"
	"scrivano/internal/application"
	"scrivano/internal/application/session"
	"scrivano/internal/config"
	"scrivano/internal/logging"
)

var (
	dataDir     string
	backendName string

	cfg       *config.Config
	store     *backend.Backend
	manager   *session.Manager
	logger    *logrus.Logger
	logCloser io.Closer
	loadErr   error
)

// writesAnnotation marks commands that change the document
const writesAnnotation = "scrivano.writes"

func writes(c *cobra.Command) *cobra.Command {
	if c.Annotations == nil {
		c.Annotations = map[string]string{}
	}
	c.Annotations[writesAnnotation] = "true"
	return c
}

var rootCmd = &cobra.Command{
	Use:   "scrivano-cli",
	Short: "CLI for the scrivano novel workspace",
	Long: `scrivano-cli reads and edits the novel stored by scrivano.

It works on the same document as the TUI: scenes, version history,
characters, world notes and the daily word goal. Every command that
changes the document saves it before exiting.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := initSession(cmd); err != nil {
			return err
		}
		if cmd.Annotations[writesAnnotation] == "true" && errors.Is(loadErr, application.ErrStorageUnavailable) {
			_ = closeSession()
			return fmt.Errorf("refusing to change the document, it could not be read: %w", loadErr)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeSession()
	},
}

func initSession(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backendName
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, logCloser, err = logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}

	store, err = backend.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
	}

	manager = session.NewManager(store.Storage, session.WithLogger(logger))
	loadErr = manager.Load().Warning
	if loadErr != nil {
		logger.WithError(loadErr).Warn("started from an empty document")
	}
	return nil
}

func closeSession() error {
	if store != nil {
		if err := store.Close(); err != nil {
			return err
		}
	}
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", config.DataDir(), "directory holding the document")
	rootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", config.DefaultBackend, "storage backend: sqlite, file or memory")
}

// GetManager returns the loaded session
func GetManager() *session.Manager {
	return manager
}
