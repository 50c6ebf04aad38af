package bindgen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/brlbind/internal/logfields"
)

// Exec runs an external ctypesgen-style generator binary. The tool owns the
// full parse/process/print pipeline; one invocation covers all three stages
// for a single library.
type Exec struct {
	command    string
	extraFlags []string
}

// NewExec creates a generator that shells out to the given command.
func NewExec(command string, extraFlags ...string) *Exec {
	return &Exec{command: command, extraFlags: extraFlags}
}

// Generate invokes the external generator for one library and harvests the
// export list from the emitted source.
func (e *Exec) Generate(ctx context.Context, opts Options) (Result, error) {
	args := e.buildArgs(opts)

	slog.Debug("Invoking binding generator",
		logfields.Library(opts.Library),
		logfields.Stage("generate"),
		"command", e.command,
		logfields.Headers(len(opts.Headers)))

	cmd := exec.CommandContext(ctx, e.command, args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("generator failed for library %s: %w", opts.Library, err)
	}

	symbols, err := HarvestSymbols(opts.Output)
	if err != nil {
		return Result{}, fmt.Errorf("harvest symbols for library %s: %w", opts.Library, err)
	}

	return Result{Output: opts.Output, Symbols: symbols}, nil
}

func (e *Exec) buildArgs(opts Options) []string {
	args := []string{"--output", opts.Output}
	for _, dir := range opts.IncludeDirs {
		args = append(args, "-I", dir)
	}
	for _, mod := range opts.DependencyModules {
		args = append(args, "--module", mod)
	}
	if len(opts.KnownSymbols) > 0 {
		args = append(args, "--other-known-names", strings.Join(opts.KnownSymbols, ","))
	}
	args = append(args, "-l", opts.Library)
	args = append(args, e.extraFlags...)
	args = append(args, opts.Headers...)
	return args
}
