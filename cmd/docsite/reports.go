package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ComPWA/compwa-org/internal/config"
	"github.com/ComPWA/compwa-org/internal/reports"
)

func runReports(ctx context.Context, cfg *config.Config, dirOverride string, watch bool) error {
	dir := cfg.Reports.Dir
	if dirOverride != "" {
		dir = dirOverride
	}
	index := cfg.Reports.Index

	regenerate := func() error {
		found, err := reports.Scan(dir)
		if err != nil {
			return err
		}
		if err := reports.WriteIndex(index, found); err != nil {
			return err
		}
		slog.Info("Report index written", "path", index, "reports", len(found))
		return nil
	}

	if !watch {
		return regenerate()
	}

	watcher, err := reports.NewWatcher(dir, regenerate)
	if err != nil {
		return err
	}
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
