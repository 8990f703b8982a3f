package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/podcast-archiver/internal/catalog"
	"github.com/handiism/podcast-archiver/internal/config"
	"github.com/handiism/podcast-archiver/internal/download"
	"github.com/handiism/podcast-archiver/internal/logging"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args)
	if err != nil {
		if errors.Is(err, errHelp) {
			return exitOK
		}
		return exitFailure
	}

	settings, err := config.Read(opts.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitFailure
	}
	opts.apply(settings)
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitFailure
	}

	logger, err := logging.New(logging.Options{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Writer: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error configuring logging: %v\n", err)
		return exitFailure
	}

	store, err := catalog.Open(settings.CatalogPath)
	if err != nil {
		logger.Error("cannot open catalog", "path", settings.CatalogPath, "err", err)
		return exitFailure
	}
	defer store.Close()

	cat, err := store.Load()
	if err != nil {
		logger.Error("cannot load catalog", "path", settings.CatalogPath, "err", err)
		return exitFailure
	}

	manager := download.NewManager(settings, store, logger, download.WithDryRun(opts.DryRun))
	report, err := manager.Run(ctx, cat)
	fmt.Fprintln(stdout, renderSummary(report))

	if err != nil {
		if download.IsInterrupted(err) {
			logger.Warn("interrupted, catalog is saved up to the last committed episode",
				slog.String("catalog", store.Path()))
			return exitInterrupted
		}
		logger.Error("run failed", "err", err)
		return exitFailure
	}
	return exitOK
}
