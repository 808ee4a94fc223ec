package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ComPWA/compwa-org/internal/config"
	"github.com/ComPWA/compwa-org/internal/execution"
	"github.com/ComPWA/compwa-org/internal/site"
)

// runResolve evaluates the environment-dependent configuration once and
// writes the result for the renderer. The kernel install runs first so a
// later notebook-execution pass finds its kernel, matching the historical
// startup order.
func runResolve(ctx context.Context, cfg *config.Config, root, output string, skipInstall bool) error {
	env := execution.SystemEnv()

	if !skipInstall {
		installer := execution.NewInstaller(env, root, cfg.Execution.KernelManifest)
		if err := installer.Run(ctx); err != nil {
			return err
		}
	}

	resolved, err := site.NewResolver(cfg, env, root).Resolve()
	if err != nil {
		return err
	}

	slog.Info("Configuration resolved",
		"execution_mode", resolved.ExecutionMode,
		"excluded", len(resolved.ExecutionExclude),
		"branch", resolved.Branch)

	if output == "-" {
		return resolved.WriteYAML(os.Stdout)
	}
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()
	if err := resolved.WriteYAML(file); err != nil {
		return err
	}
	slog.Info("Resolved configuration written", "path", output)
	return nil
}
