package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/brlbind/internal/config"
)

// PlanCmd implements the 'plan' command: validate the configuration and print
// the generation order without touching the filesystem.
type PlanCmd struct{}

// Run executes the plan command.
//
//nolint:forbidigo // fmt is used for user-facing output
func (cmd *PlanCmd) Run(_ *Global, cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("Generation order (%d libraries):\n", len(cfg.Libraries))
	for i, lib := range cfg.Libraries {
		deps := "-"
		if len(lib.Deps) > 0 {
			deps = strings.Join(lib.Deps, ", ")
		}
		fmt.Printf("  %2d. %-10s deps: %-20s headers: %s\n",
			i+1, lib.Name, deps, strings.Join(lib.Headers, ", "))
	}
	return nil
}
