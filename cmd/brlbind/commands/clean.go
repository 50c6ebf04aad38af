package commands

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/brlbind/internal/config"
)

// CleanCmd implements the 'clean' command. With no selector flags both the
// bindings directory and the cache are removed.
type CleanCmd struct {
	Output bool `help:"Remove only the bindings output directory"`
	Cache  bool `help:"Remove only the cache directory"`
}

// Run executes the clean command.
func (cmd *CleanCmd) Run(_ *Global, cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	all := !cmd.Output && !cmd.Cache
	if cmd.Output || all {
		slog.Info("Removing bindings directory", "path", cfg.Output.Directory)
		if err := os.RemoveAll(cfg.Output.Directory); err != nil {
			return fmt.Errorf("remove bindings directory: %w", err)
		}
	}
	if cmd.Cache || all {
		slog.Info("Removing cache directory", "path", cfg.Cache.Dir)
		if err := os.RemoveAll(cfg.Cache.Dir); err != nil {
			return fmt.Errorf("remove cache directory: %w", err)
		}
	}
	return nil
}
