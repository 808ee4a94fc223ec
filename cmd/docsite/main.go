package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ComPWA/compwa-org/internal/config"
	"github.com/ComPWA/compwa-org/internal/execution"
	"github.com/ComPWA/compwa-org/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"docsite.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Resolve struct {
		Output      string `short:"o" help:"Resolved configuration output path (- for stdout)" default:"-"`
		Root        string `help:"Repository root" default:"."`
		SkipInstall bool   `help:"Skip the IJulia kernel install step"`
	} `cmd:"" help:"Resolve the renderer configuration from config, environment and repository state"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Reports struct {
		Dir   string `help:"Report directory (overrides config)"`
		Watch bool   `short:"w" help:"Keep running and regenerate the index on changes"`
	} `cmd:"" help:"Generate the technical-report index"`

	Linkcheck struct {
		Site  string `help:"Rendered site directory to extract HTML links from"`
		Docs  string `help:"Documentation source directory to extract Markdown links from"`
		Cache string `help:"Link result cache path (overrides config)"`
	} `cmd:"" help:"Check external links against the configured ignore patterns"`

	InstallKernel struct {
		Root string `help:"Directory containing the kernel manifest" default:"."`
	} `cmd:"" help:"Install the IJulia kernel when notebook execution is requested"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	runCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch ctx.Command() {
	case "resolve":
		cfg := loadConfig()
		if err := runResolve(runCtx, cfg, CLI.Resolve.Root, CLI.Resolve.Output, CLI.Resolve.SkipInstall); err != nil {
			slog.Error("Resolve failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Configuration written", "path", CLI.Config)
	case "reports":
		cfg := loadConfig()
		if err := runReports(runCtx, cfg, CLI.Reports.Dir, CLI.Reports.Watch); err != nil {
			slog.Error("Report index generation failed", "error", err)
			os.Exit(1)
		}
	case "linkcheck":
		cfg := loadConfig()
		broken, err := runLinkcheck(runCtx, cfg, CLI.Linkcheck.Site, CLI.Linkcheck.Docs, CLI.Linkcheck.Cache)
		if err != nil {
			slog.Error("Link check failed", "error", err)
			os.Exit(1)
		}
		if broken > 0 {
			slog.Error("Broken links found", "count", broken)
			os.Exit(1)
		}
	case "install-kernel":
		cfg := loadConfig()
		installer := execution.NewInstaller(execution.SystemEnv(), CLI.InstallKernel.Root, cfg.Execution.KernelManifest)
		if err := installer.Run(runCtx); err != nil {
			slog.Error("Kernel install failed", "error", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("docsite %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}
