// Command zip2pdf turns archives, images and text files into PDFs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driven/archive"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driven/config/file"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driven/filetype"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driven/inbox"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driven/pdf"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/cli"
	"github.com/custodia-labs/zip2pdf/internal/config"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/core/services"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	cfg := config.FromEnv()

	if err := logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}); err != nil {
		return fmt.Errorf("initialising logging: %w", err)
	}
	defer logger.Close() //nolint:errcheck

	configStore, err := file.NewConfigStore(cfg.Home)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	store, err := sqlite.NewStore(cfg.Home)
	if err != nil {
		return fmt.Errorf("opening session database: %w", err)
	}
	defer store.Close() //nolint:errcheck

	settingsService := services.NewSettingsService(configStore)
	deps := services.SessionDeps{
		Extractor: archive.New(),
		Generator: pdf.NewGenerator(),
		Detector:  filetype.New(),
		Settings:  settingsService,
	}

	cli.SetServices(cli.Services{
		Sessions:   services.NewSessionManager(store.SessionStore(), cfg.StagingRoot(), deps),
		Merge:      services.NewMergeService(pdf.NewMerger()),
		Settings:   settingsService,
		Classifier: driving.ClassifierFunc(services.Classify),
	})

	inboxDir := cfg.Inbox
	if inboxDir == "" {
		inboxDir = filepath.Join(cfg.Home, "inbox")
	}
	cli.SetTUIConfig(&cli.TUIConfig{
		InboxDir: inboxDir,
		NewInbox: func(dir string) driven.DropWatcher { return inbox.New(dir) },
	})
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}
