package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/brlbind/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

// Run executes the init command.
func (cmd *InitCmd) Run(_ *Global, cli *CLI) error {
	slog.Info("Initializing configuration", "path", cli.Config, "force", cmd.Force)
	return config.Init(cli.Config, cmd.Force)
}
