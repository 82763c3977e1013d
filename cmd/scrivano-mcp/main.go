package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"scrivano/internal/adapters/backend"
	"scrivano/internal/adapters/filesystem"
	mcpadapter "scrivano/internal/adapters/mcp"
	"scrivano/internal/application/session"
	"scrivano/internal/config"
	"scrivano/internal/logging"
)

func main() {
	// stdout carries the protocol, so everything else goes to stderr or the log file
	if err := run(); err != nil {
		logrus.Fatalf("scrivano-mcp: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the document")
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: sqlite, file or memory")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
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
	if res := manager.Load(); res.Warning != nil {
		logger.WithError(res.Warning).Warn("started from an empty document")
	}
	if manager.Blocked() {
		logger.Warn("saves are held until the stored document can be read; use reload_document or force_save")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	saver, err := manager.StartAutosave(ctx, cfg.AutosaveInterval)
	if err != nil {
		return err
	}

	mcpServer := server.NewMCPServer(
		"scrivano-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, manager)
	mcpadapter.RegisterWriteTools(mcpServer, manager, filesystem.NewExporter(), cfg.ExportDir)

	logger.WithField("session", manager.ID()).Info("serving on stdio")
	serveErr := server.ServeStdio(mcpServer)

	// No tick may run after the final save
	saver.Stop()
	if err := manager.Save(); err != nil {
		logger.WithError(err).Error("final save failed")
	}
	return serveErr
}
