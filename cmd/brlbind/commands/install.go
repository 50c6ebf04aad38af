package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/brlbind/internal/bindgen"
	"git.home.luguber.info/inful/brlbind/internal/brlcad"
	"git.home.luguber.info/inful/brlbind/internal/config"
	"git.home.luguber.info/inful/brlbind/internal/install"
)

// InstallCmd implements the 'install' command, the post-install entry point.
type InstallCmd struct {
	Output string `short:"o" help:"Bindings output directory (overrides config)"`
	Force  bool   `help:"Regenerate even when cached bindings could be reused"`
}

// Run executes the install command.
func (cmd *InstallCmd) Run(_ *Global, cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	info, err := brlcad.Discover(ctx, cfg.BRLCAD.Prefix)
	if err != nil {
		return err
	}
	slog.Info("Found BRL-CAD installation", "prefix", info.Prefix, "version", info.Version)

	gen := bindgen.NewExec(cfg.Generator.Command, cfg.Generator.ExtraFlags...)
	outputDir := ResolveOutputDir(cmd.Output, cfg)

	installer := install.New(cfg, gen, info, outputDir).WithForce(cmd.Force)
	if err := installer.Run(ctx); err != nil {
		return fmt.Errorf("install bindings: %w", err)
	}

	slog.Info("Bindings ready", "output", outputDir)
	return nil
}
