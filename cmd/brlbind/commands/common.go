package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/brlbind/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"brlbind.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Install InstallCmd `cmd:"" help:"Generate BRL-CAD bindings (post-install hook)"`
	Plan    PlanCmd    `cmd:"" help:"Validate configuration and print the resolved generation order"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Clean   CleanCmd   `cmd:"" help:"Remove generated bindings and/or the cache directory"`
	Watch   WatchCmd   `cmd:"" help:"Regenerate bindings whenever watched headers change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ResolveOutputDir determines the final bindings directory from the CLI flag
// and the configuration. Priority: CLI flag > config directory.
func ResolveOutputDir(cliOutput string, cfg *config.Config) string {
	if cliOutput != "" {
		return filepath.Clean(cliOutput)
	}
	return filepath.Clean(cfg.Output.Directory)
}
