package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/brlbind/internal/bindgen"
	"git.home.luguber.info/inful/brlbind/internal/brlcad"
	"git.home.luguber.info/inful/brlbind/internal/config"
	"git.home.luguber.info/inful/brlbind/internal/install"
	"git.home.luguber.info/inful/brlbind/internal/util/sets"
)

// WatchCmd implements the 'watch' command: a development loop that regenerates
// the bindings whenever a watched header changes. Changes are debounced so a
// burst of edits triggers a single regeneration.
type WatchCmd struct {
	Output   string        `short:"o" help:"Bindings output directory (overrides config)"`
	Debounce time.Duration `help:"Quiet window before regenerating after a change" default:"2s"`
}

// Run executes the watch command. It blocks until interrupted.
func (cmd *WatchCmd) Run(_ *Global, cli *CLI) error {
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

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			slog.Warn("Failed to close watcher", "error", err)
		}
	}()

	// Watch the directories containing the headers (more reliable than
	// watching individual files, which editors replace on save).
	for _, dir := range headerDirs(cfg, info) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		slog.Debug("Watching header directory", "path", dir)
	}

	gen := bindgen.NewExec(cfg.Generator.Command, cfg.Generator.ExtraFlags...)
	outputDir := ResolveOutputDir(cmd.Output, cfg)
	regenerate := func() {
		// Always a full regeneration; the cache would hand back the very
		// bindings the edit is trying to change.
		installer := install.New(cfg, gen, info, outputDir).WithForce(true)
		if err := installer.Run(ctx); err != nil {
			slog.Error("Regeneration failed", "error", err)
			return
		}
		slog.Info("Bindings regenerated", "output", outputDir)
	}

	slog.Info("Generating initial bindings", "output", outputDir)
	regenerate()
	slog.Info("Watching for header changes (Ctrl-C to stop)")

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			slog.Info("Watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("Header change detected", "path", event.Name, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(cmd.Debounce, regenerate)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}

// headerDirs returns the unique directories of all configured headers after
// prefix resolution.
func headerDirs(cfg *config.Config, info *brlcad.Info) []string {
	dirs := sets.New[string]()
	for _, lib := range cfg.Libraries {
		for _, h := range lib.Headers {
			dirs.Add(filepath.Dir(info.ResolveHeader(h)))
		}
	}
	return sets.SortedStrings(dirs)
}
