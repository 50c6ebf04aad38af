package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/brlbind/cmd/brlbind/commands"
	"git.home.luguber.info/inful/brlbind/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("brlbind"),
		kong.Description("Post-install generator for BRL-CAD language bindings."),
		kong.Vars{"version": version.Version},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global, &cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
